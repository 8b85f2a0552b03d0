package models

import "time"

// AppRole is a named permission grant on a user identity.
// A user may hold several roles at once.
type AppRole string

const (
	RoleSuperAdmin      AppRole = "super_admin"
	RoleDepartmentAdmin AppRole = "department_admin"
	RoleEditor          AppRole = "editor"
	RoleLecturer        AppRole = "lecturer"
	RoleStudent         AppRole = "student"
)

// AdminRoles is the fixed set of roles that grant access to the admin back-office
var AdminRoles = []AppRole{RoleSuperAdmin, RoleDepartmentAdmin, RoleEditor, RoleLecturer}

// ValidAppRole reports whether the given role is a known role
func ValidAppRole(role AppRole) bool {
	switch role {
	case RoleSuperAdmin, RoleDepartmentAdmin, RoleEditor, RoleLecturer, RoleStudent:
		return true
	}
	return false
}

// UserRole is a single role grant row
type UserRole struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Role      AppRole   `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}
