// Package entity 定义领域实体
package entity

// UserRole 用户角色
// 身份与会话由外部协作方提供，引擎只消费 ID 与角色
type UserRole string

const (
	UserRoleSuperAdmin UserRole = "SUPER_ADMIN"
	UserRoleAdmin      UserRole = "ADMIN"
	UserRoleMember     UserRole = "MEMBER"
)

// User 用户实体
type User struct {
	ID    string   `json:"id"`
	Email string   `json:"email"`
	Name  string   `json:"name"`
	Role  UserRole `json:"role"`
}

// IsSuperAdmin 检查是否为超级管理员（权限矩阵全量放行）
func (u *User) IsSuperAdmin() bool {
	return u.Role == UserRoleSuperAdmin
}
