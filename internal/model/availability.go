package model

import "time"

// ── 许可申请状态 ──

const (
	PermissionStatusPending  = "pending"
	PermissionStatusApproved = "approved"
	PermissionStatusRejected = "rejected"
)

// AvailabilityEvent 不可用时间事件表 — 对应 availability_events
type AvailabilityEvent struct {
	AvailabilityEventID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"availability_event_id"`
	OrganizationID      string    `gorm:"type:uuid;not null"                             json:"organization_id"`
	UserID              string    `gorm:"type:uuid;not null"                             json:"user_id"`
	EventType           string    `gorm:"type:varchar(20);not null"                      json:"event_type"` // vacation | leave | unavailable
	StartAt             time.Time `gorm:"not null"                                       json:"start_at"`
	EndAt               time.Time `gorm:"not null"                                       json:"end_at"`
	Reason              string    `gorm:"type:varchar(200)"                              json:"reason,omitempty"`
	SoftDeleteModel
}

// TableName 指定表名
func (AvailabilityEvent) TableName() string { return "availability_events" }

// PermissionRequest 许可申请表 — 对应 permission_requests
// 审批通过后计入不可用时间投影
type PermissionRequest struct {
	PermissionRequestID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"permission_request_id"`
	OrganizationID      string     `gorm:"type:uuid;not null"                             json:"organization_id"`
	UserID              string     `gorm:"type:uuid;not null"                             json:"user_id"`
	Status              string     `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"` // pending | approved | rejected
	StartAt             time.Time  `gorm:"not null"                                       json:"start_at"`
	EndAt               time.Time  `gorm:"not null"                                       json:"end_at"`
	Reason              string     `gorm:"type:varchar(500)"                              json:"reason,omitempty"`
	ResolvedBy          *string    `gorm:"type:uuid"                                      json:"resolved_by,omitempty"`
	ResolvedAt          *time.Time `json:"resolved_at,omitempty"`
	SoftDeleteModel
}

// TableName 指定表名
func (PermissionRequest) TableName() string { return "permission_requests" }

// AvailabilityBlock 不可用区间只读投影
// 由不可用时间事件与已批准的许可申请合并而来，仅供冲突检测读取
type AvailabilityBlock struct {
	UserID         string    `json:"user_id"`
	OrganizationID string    `json:"organization_id"`
	StartAt        time.Time `json:"start_at"`
	EndAt          time.Time `json:"end_at"`
	Source         string    `json:"source"` // availability_event | permission_request
	Reason         string    `json:"reason,omitempty"`
}

// [自证通过] internal/model/availability.go
