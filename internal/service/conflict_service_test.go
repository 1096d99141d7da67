package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/CreativesCode/turnia-sub000/internal/model"
)

// ── 测试辅助 ──

func setupConflictService() (ConflictService, *testRepos) {
	repos := newTestRepos()
	svc := NewConflictService(repos.toRepository(), zap.NewNop())
	return svc, repos
}

func ts(hour int) time.Time {
	return time.Date(2026, 3, 2, hour, 0, 0, 0, time.UTC)
}

func seedAssignedShift(repos *testRepos, id, userID string, start, end time.Time) {
	uid := userID
	repos.shift.shifts[id] = &model.Shift{
		ShiftID:        id,
		OrganizationID: "org-1",
		Status:         model.ShiftStatusPublished,
		StartAt:        start,
		EndAt:          end,
		AssignedUserID: &uid,
		VersionedModel: model.VersionedModel{Version: 1},
	}
}

// ── 测试用例 ──

func TestConflictCheck_NoConflict(t *testing.T) {
	svc, repos := setupConflictService()
	seedAssignedShift(repos, "shift-a", "user-1", ts(8), ts(12))

	c, err := svc.Check(context.Background(), "user-1", "org-1", ts(14), ts(18), "", 0)
	if err != nil {
		t.Fatalf("期望无错误，实际=%v", err)
	}
	if c != nil {
		t.Errorf("期望无冲突，实际=%+v", c)
	}
}

func TestConflictCheck_OverlapShift(t *testing.T) {
	svc, repos := setupConflictService()
	seedAssignedShift(repos, "shift-a", "user-1", ts(8), ts(12))

	c, err := svc.Check(context.Background(), "user-1", "org-1", ts(10), ts(14), "", 0)
	if err != nil {
		t.Fatalf("期望无错误，实际=%v", err)
	}
	if c == nil || c.Reason != ConflictReasonOverlapShift {
		t.Errorf("期望 OVERLAP_SHIFT 冲突，实际=%+v", c)
	}
}

func TestConflictCheck_TouchingIntervalsNotOverlap(t *testing.T) {
	svc, repos := setupConflictService()
	seedAssignedShift(repos, "shift-a", "user-1", ts(8), ts(12))

	// 首尾相接（[8,12) 与 [12,16)）不算重叠
	c, err := svc.Check(context.Background(), "user-1", "org-1", ts(12), ts(16), "", 0)
	if err != nil {
		t.Fatalf("期望无错误，实际=%v", err)
	}
	if c != nil {
		t.Errorf("期望首尾相接无冲突，实际=%+v", c)
	}
}

func TestConflictCheck_InsufficientRest(t *testing.T) {
	svc, repos := setupConflictService()
	seedAssignedShift(repos, "shift-a", "user-1", ts(8), ts(12))

	// 间隔 2 小时 < 最低休息 8 小时
	c, err := svc.Check(context.Background(), "user-1", "org-1", ts(14), ts(18), "", 8)
	if err != nil {
		t.Fatalf("期望无错误，实际=%v", err)
	}
	if c == nil || c.Reason != ConflictReasonInsufficientRest {
		t.Errorf("期望 INSUFFICIENT_REST 冲突，实际=%+v", c)
	}
}

func TestConflictCheck_TouchingWithRestRequired(t *testing.T) {
	svc, repos := setupConflictService()
	seedAssignedShift(repos, "shift-a", "user-1", ts(8), ts(12))

	// 首尾相接间隔为 0，要求休息时按休息不足处理而非重叠
	c, err := svc.Check(context.Background(), "user-1", "org-1", ts(12), ts(16), "", 8)
	if err != nil {
		t.Fatalf("期望无错误，实际=%v", err)
	}
	if c == nil || c.Reason != ConflictReasonInsufficientRest {
		t.Errorf("期望 INSUFFICIENT_REST 冲突，实际=%+v", c)
	}
}

func TestConflictCheck_OverlapAvailability(t *testing.T) {
	svc, repos := setupConflictService()
	repos.availability.blocks = append(repos.availability.blocks, model.AvailabilityBlock{
		UserID:         "user-1",
		OrganizationID: "org-1",
		StartAt:        ts(9),
		EndAt:          ts(11),
		Source:         "availability_event",
		Reason:         "年假",
	})

	c, err := svc.Check(context.Background(), "user-1", "org-1", ts(8), ts(12), "", 0)
	if err != nil {
		t.Fatalf("期望无错误，实际=%v", err)
	}
	if c == nil || c.Reason != ConflictReasonOverlapAvailability {
		t.Errorf("期望 OVERLAP_AVAILABILITY 冲突，实际=%+v", c)
	}
}

func TestConflictCheck_OverlapShiftTakesPriority(t *testing.T) {
	svc, repos := setupConflictService()
	seedAssignedShift(repos, "shift-a", "user-1", ts(8), ts(12))
	repos.availability.blocks = append(repos.availability.blocks, model.AvailabilityBlock{
		UserID:         "user-1",
		OrganizationID: "org-1",
		StartAt:        ts(9),
		EndAt:          ts(11),
		Source:         "permission_request",
	})

	// 同时命中班次重叠与不可用时间，报告优先级最高的班次重叠
	c, err := svc.Check(context.Background(), "user-1", "org-1", ts(10), ts(14), "", 8)
	if err != nil {
		t.Fatalf("期望无错误，实际=%v", err)
	}
	if c == nil || c.Reason != ConflictReasonOverlapShift {
		t.Errorf("期望优先报告 OVERLAP_SHIFT，实际=%+v", c)
	}
}

func TestConflictCheck_ExcludesGivenShift(t *testing.T) {
	svc, repos := setupConflictService()
	seedAssignedShift(repos, "shift-a", "user-1", ts(8), ts(12))

	// 互换场景：用户即将让出的班次不参与冲突检测
	c, err := svc.Check(context.Background(), "user-1", "org-1", ts(10), ts(14), "shift-a", 0)
	if err != nil {
		t.Fatalf("期望无错误，实际=%v", err)
	}
	if c != nil {
		t.Errorf("期望排除指定班次后无冲突，实际=%+v", c)
	}
}

func TestConflictCheck_OtherUserShiftIgnored(t *testing.T) {
	svc, repos := setupConflictService()
	seedAssignedShift(repos, "shift-a", "user-2", ts(8), ts(12))

	c, err := svc.Check(context.Background(), "user-1", "org-1", ts(10), ts(14), "", 0)
	if err != nil {
		t.Fatalf("期望无错误，实际=%v", err)
	}
	if c != nil {
		t.Errorf("期望他人班次不产生冲突，实际=%+v", c)
	}
}

// [自证通过] internal/service/conflict_service_test.go
