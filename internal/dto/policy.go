package dto

// ── 组织策略模块 DTO ──

// UpdatePolicySettingsRequest 更新组织策略请求（字段为 nil 时保持不变）
type UpdatePolicySettingsRequest struct {
	AllowSelfAssignOpenShifts   *bool    `json:"allow_self_assign_open_shifts"`
	RequireApprovalForGiveAways *bool    `json:"require_approval_for_give_aways"`
	RequireApprovalForSwaps     *bool    `json:"require_approval_for_swaps"`
	MinRestHours                *float64 `json:"min_rest_hours" binding:"omitempty,gte=0"`
}

// PolicySettingsResponse 组织策略响应
type PolicySettingsResponse struct {
	OrganizationID              string  `json:"organization_id"`
	AllowSelfAssignOpenShifts   bool    `json:"allow_self_assign_open_shifts"`
	RequireApprovalForGiveAways bool    `json:"require_approval_for_give_aways"`
	RequireApprovalForSwaps     bool    `json:"require_approval_for_swaps"`
	MinRestHours                float64 `json:"min_rest_hours"`
}
