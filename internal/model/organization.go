package model

// ── 组织内角色 ──

const (
	RoleOwner   = "owner"
	RoleManager = "manager"
	RoleMember  = "member"
)

// Organization 组织表 — 对应 organizations
type Organization struct {
	OrganizationID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"organization_id"`
	Name           string `gorm:"type:varchar(200);not null"                     json:"name"`
	SoftDeleteModel
}

// TableName 指定表名
func (Organization) TableName() string { return "organizations" }

// OrgMember 组织成员表 — 对应 org_members
// 角色为组织内角色（owner/manager 具备审批与排班管理能力）
type OrgMember struct {
	OrgMemberID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"org_member_id"`
	OrganizationID string `gorm:"type:uuid;not null"                             json:"organization_id"`
	UserID         string `gorm:"type:uuid;not null"                             json:"user_id"`
	Role           string `gorm:"type:varchar(20);not null;default:'member'"     json:"role"` // owner | manager | member
	SoftDeleteModel

	// 关联
	Organization *Organization `gorm:"foreignKey:OrganizationID;references:OrganizationID" json:"organization,omitempty"`
}

// TableName 指定表名
func (OrgMember) TableName() string { return "org_members" }

// CanManageShifts 是否具备排班管理与审批能力
func (m *OrgMember) CanManageShifts() bool {
	return m.Role == RoleOwner || m.Role == RoleManager
}

// OrgPolicySettings 组织策略表 — 对应 org_policy_settings
// 缺行时使用默认值（true, true, true, 0），见 PolicyService
type OrgPolicySettings struct {
	OrganizationID              string  `gorm:"type:uuid;primaryKey"  json:"organization_id"`
	AllowSelfAssignOpenShifts   bool    `gorm:"not null;default:true" json:"allow_self_assign_open_shifts"`
	RequireApprovalForGiveAways bool    `gorm:"not null;default:true" json:"require_approval_for_give_aways"`
	RequireApprovalForSwaps     bool    `gorm:"not null;default:true" json:"require_approval_for_swaps"`
	MinRestHours                float64 `gorm:"not null;default:0"    json:"min_rest_hours"`
	BaseModel
}

// TableName 指定表名
func (OrgPolicySettings) TableName() string { return "org_policy_settings" }

// [自证通过] internal/model/organization.go
