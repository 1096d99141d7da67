package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/CreativesCode/turnia-sub000/internal/model"
	"github.com/CreativesCode/turnia-sub000/internal/repository"
	pkgerrors "github.com/CreativesCode/turnia-sub000/pkg/errors"
)

// ── Mock OrgMemberRepository ──

type mockOrgMemberRepo struct {
	members map[string]*model.OrgMember // key: orgID:userID
}

func newMockOrgMemberRepo() *mockOrgMemberRepo {
	return &mockOrgMemberRepo{members: make(map[string]*model.OrgMember)}
}

func memberKey(orgID, userID string) string {
	return orgID + ":" + userID
}

func (m *mockOrgMemberRepo) GetMember(_ context.Context, orgID, userID string) (*model.OrgMember, error) {
	if member, ok := m.members[memberKey(orgID, userID)]; ok {
		return member, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock PolicySettingsRepository ──

type mockPolicySettingsRepo struct {
	settings map[string]*model.OrgPolicySettings
}

func newMockPolicySettingsRepo() *mockPolicySettingsRepo {
	return &mockPolicySettingsRepo{settings: make(map[string]*model.OrgPolicySettings)}
}

func (m *mockPolicySettingsRepo) GetByOrg(_ context.Context, orgID string) (*model.OrgPolicySettings, error) {
	if s, ok := m.settings[orgID]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPolicySettingsRepo) Upsert(_ context.Context, settings *model.OrgPolicySettings) error {
	copied := *settings
	m.settings[settings.OrganizationID] = &copied
	return nil
}

// ── Mock ShiftRepository ──

type mockShiftRepo struct {
	shifts map[string]*model.Shift
	nextID int
}

func newMockShiftRepo() *mockShiftRepo {
	return &mockShiftRepo{shifts: make(map[string]*model.Shift)}
}

func (m *mockShiftRepo) Create(_ context.Context, shift *model.Shift) error {
	if shift.ShiftID == "" {
		m.nextID++
		shift.ShiftID = fmt.Sprintf("shift-%d", m.nextID)
	}
	if shift.Version == 0 {
		shift.Version = 1
	}
	m.shifts[shift.ShiftID] = shift
	return nil
}

func (m *mockShiftRepo) GetByID(_ context.Context, id string) (*model.Shift, error) {
	if s, ok := m.shifts[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShiftRepo) GetByIDs(_ context.Context, ids []string) ([]model.Shift, error) {
	var result []model.Shift
	for _, id := range ids {
		if s, ok := m.shifts[id]; ok {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockShiftRepo) ListAssignedInWindow(_ context.Context, orgID, userID string, windowStart, windowEnd time.Time, excludeShiftID string) ([]model.Shift, error) {
	var result []model.Shift
	for _, s := range m.shifts {
		if s.ShiftID == excludeShiftID || s.OrganizationID != orgID {
			continue
		}
		if s.AssignedUserID == nil || *s.AssignedUserID != userID {
			continue
		}
		if s.StartAt.Before(windowEnd) && windowStart.Before(s.EndAt) {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockShiftRepo) ListOpen(_ context.Context, orgID string, after time.Time) ([]model.Shift, error) {
	var result []model.Shift
	for _, s := range m.shifts {
		if s.OrganizationID == orgID && s.Status == model.ShiftStatusPublished &&
			s.AssignedUserID == nil && s.StartAt.After(after) {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockShiftRepo) ListByOrgAndRange(_ context.Context, orgID string, from, to time.Time) ([]model.Shift, error) {
	var result []model.Shift
	for _, s := range m.shifts {
		if s.OrganizationID == orgID && s.StartAt.Before(to) && from.Before(s.EndAt) {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockShiftRepo) ListByUserAndRange(_ context.Context, orgID, userID string, from, to time.Time) ([]model.Shift, error) {
	var result []model.Shift
	for _, s := range m.shifts {
		if s.OrganizationID != orgID || s.AssignedUserID == nil || *s.AssignedUserID != userID {
			continue
		}
		if s.StartAt.Before(to) && from.Before(s.EndAt) {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockShiftRepo) UpdateAssignee(_ context.Context, shift *model.Shift, assignedUserID *string, updatedBy string) error {
	stored, ok := m.shifts[shift.ShiftID]
	if !ok || stored.Version != shift.Version {
		return pkgerrors.ErrOptimisticLock
	}
	stored.AssignedUserID = assignedUserID
	stored.UpdatedBy = &updatedBy
	stored.Version++
	shift.AssignedUserID = assignedUserID
	shift.Version = stored.Version
	return nil
}

// ── Mock ShiftRequestRepository ──

// mockShiftRequestRepo 持有 mockShiftRepo 引用以模拟 Preload
type mockShiftRequestRepo struct {
	requests map[string]*model.ShiftRequest
	shifts   *mockShiftRepo
	nextID   int
}

func newMockShiftRequestRepo(shifts *mockShiftRepo) *mockShiftRequestRepo {
	return &mockShiftRequestRepo{requests: make(map[string]*model.ShiftRequest), shifts: shifts}
}

func (m *mockShiftRequestRepo) Create(_ context.Context, req *model.ShiftRequest) error {
	if req.ShiftRequestID == "" {
		m.nextID++
		req.ShiftRequestID = fmt.Sprintf("req-%d", m.nextID)
	}
	if req.Version == 0 {
		req.Version = 1
	}
	copied := *req
	m.requests[req.ShiftRequestID] = &copied
	return nil
}

func (m *mockShiftRequestRepo) GetByID(_ context.Context, id string) (*model.ShiftRequest, error) {
	stored, ok := m.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *stored
	if s, ok := m.shifts.shifts[copied.ShiftID]; ok {
		sc := *s
		copied.Shift = &sc
	}
	if copied.TargetShiftID != nil {
		if t, ok := m.shifts.shifts[*copied.TargetShiftID]; ok {
			tc := *t
			copied.TargetShift = &tc
		}
	}
	return &copied, nil
}

func (m *mockShiftRequestRepo) HasActive(_ context.Context, shiftID, requestType string) (bool, error) {
	for _, r := range m.requests {
		if r.ShiftID == shiftID && r.RequestType == requestType && r.IsResolvable() {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockShiftRequestRepo) UpdateStatus(_ context.Context, req *model.ShiftRequest, fromStatuses []string) error {
	stored, ok := m.requests[req.ShiftRequestID]
	if !ok || stored.Version != req.Version {
		return pkgerrors.ErrOptimisticLock
	}
	allowed := false
	for _, st := range fromStatuses {
		if stored.Status == st {
			allowed = true
			break
		}
	}
	if !allowed {
		return pkgerrors.ErrOptimisticLock
	}
	stored.Status = req.Status
	stored.ApproverID = req.ApproverID
	stored.Comment = req.Comment
	stored.RespondedAt = req.RespondedAt
	stored.ApprovedAt = req.ApprovedAt
	stored.UpdatedBy = req.UpdatedBy
	stored.Version++
	req.Version = stored.Version
	return nil
}

func (m *mockShiftRequestRepo) ListByRequester(_ context.Context, requesterID string, offset, limit int) ([]model.ShiftRequest, int64, error) {
	var all []model.ShiftRequest
	for _, r := range m.requests {
		if r.RequesterID == requesterID {
			all = append(all, *r)
		}
	}
	return paginate(all, offset, limit), int64(len(all)), nil
}

func (m *mockShiftRequestRepo) ListPendingByOrg(_ context.Context, orgID string, offset, limit int) ([]model.ShiftRequest, int64, error) {
	var all []model.ShiftRequest
	for _, r := range m.requests {
		if r.OrganizationID == orgID && r.IsResolvable() {
			all = append(all, *r)
		}
	}
	return paginate(all, offset, limit), int64(len(all)), nil
}

func (m *mockShiftRequestRepo) ListPendingSwapsForUser(_ context.Context, userID string) ([]model.ShiftRequest, error) {
	var result []model.ShiftRequest
	for _, r := range m.requests {
		if r.RequestType == model.RequestTypeSwap && r.Status == model.RequestStatusSubmitted &&
			r.TargetUserID != nil && *r.TargetUserID == userID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func paginate(all []model.ShiftRequest, offset, limit int) []model.ShiftRequest {
	if offset >= len(all) {
		return nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

// ── Mock AvailabilityRepository ──

type mockAvailabilityRepo struct {
	blocks []model.AvailabilityBlock
}

func newMockAvailabilityRepo() *mockAvailabilityRepo {
	return &mockAvailabilityRepo{}
}

func (m *mockAvailabilityRepo) ListBlocksInRange(_ context.Context, orgID, userID string, from, to time.Time) ([]model.AvailabilityBlock, error) {
	var result []model.AvailabilityBlock
	for _, b := range m.blocks {
		if b.OrganizationID != orgID || b.UserID != userID {
			continue
		}
		if b.StartAt.Before(to) && from.Before(b.EndAt) {
			result = append(result, b)
		}
	}
	return result, nil
}

// ── Mock AuditLogRepository / NotificationRepository ──

type mockAuditLogRepo struct {
	logs []model.AuditLog
}

func newMockAuditLogRepo() *mockAuditLogRepo {
	return &mockAuditLogRepo{}
}

func (m *mockAuditLogRepo) Create(_ context.Context, log *model.AuditLog) error {
	m.logs = append(m.logs, *log)
	return nil
}

type mockNotificationRepo struct {
	notifications []model.Notification
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{}
}

func (m *mockNotificationRepo) BatchCreate(_ context.Context, notifications []model.Notification) error {
	m.notifications = append(m.notifications, notifications...)
	return nil
}

// ── 聚合 ──

// testRepos 聚合所有 mock repo 便于 seed 数据
type testRepos struct {
	orgMember    *mockOrgMemberRepo
	policy       *mockPolicySettingsRepo
	shift        *mockShiftRepo
	shiftRequest *mockShiftRequestRepo
	availability *mockAvailabilityRepo
	auditLog     *mockAuditLogRepo
	notification *mockNotificationRepo
}

func newTestRepos() *testRepos {
	shift := newMockShiftRepo()
	return &testRepos{
		orgMember:    newMockOrgMemberRepo(),
		policy:       newMockPolicySettingsRepo(),
		shift:        shift,
		shiftRequest: newMockShiftRequestRepo(shift),
		availability: newMockAvailabilityRepo(),
		auditLog:     newMockAuditLogRepo(),
		notification: newMockNotificationRepo(),
	}
}

func (r *testRepos) toRepository() *repository.Repository {
	return &repository.Repository{
		OrgMember:      r.orgMember,
		PolicySettings: r.policy,
		Shift:          r.shift,
		ShiftRequest:   r.shiftRequest,
		Availability:   r.availability,
		AuditLog:       r.auditLog,
		Notification:   r.notification,
	}
}

// [自证通过] internal/service/mock_repos_test.go
