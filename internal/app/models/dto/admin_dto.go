package dto

import (
	"time"

	"github.com/sesa/portal/internal/pkg/sysinfo"
)

// AdminStatsResponse aggregates the dashboard counters and a host
// health snapshot.
type AdminStatsResponse struct {
	Departments int64          `json:"departments"`
	Resources   int64          `json:"resources"`
	Articles    int64          `json:"articles"`
	Users       int64          `json:"users"`
	System      sysinfo.Sample `json:"system"`
}

// GrantRoleRequest represents a role grant for a user
type GrantRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// AdminUserResponse combines account, profile and role data for the
// back-office user listing.
type AdminUserResponse struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	FullName    *string    `json:"fullName,omitempty"`
	IsActive    bool       `json:"isActive"`
	Roles       []string   `json:"roles"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// AdminUserListResponse represents a paginated back-office user listing
type AdminUserListResponse struct {
	Users      []AdminUserResponse `json:"users"`
	Pagination PaginationInfo      `json:"pagination"`
}

// SetUserActiveRequest toggles whether an account can sign in
type SetUserActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}
