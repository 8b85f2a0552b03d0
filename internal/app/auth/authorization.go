package auth

import (
	"context"

	"github.com/sesa/portal/internal/app/models"
)

// RoleReader fetches role grants for authorization checks
type RoleReader interface {
	GetRolesByUserID(ctx context.Context, userID int64) ([]models.AppRole, error)
	HasAnyRole(ctx context.Context, userID int64, roles []models.AppRole) (bool, error)
}

// Authorizer answers permission questions from the role table. Checks
// always hit the current grants rather than trusting token claims, so
// a revoked role takes effect on the next request.
type Authorizer struct {
	roles RoleReader
}

// NewAuthorizer creates a new Authorizer
func NewAuthorizer(roles RoleReader) *Authorizer {
	return &Authorizer{
		roles: roles,
	}
}

// IsAdmin reports whether the user holds any back-office role
func (a *Authorizer) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	return a.roles.HasAnyRole(ctx, userID, models.AdminRoles)
}

// HasRole reports whether the user holds the given role
func (a *Authorizer) HasRole(ctx context.Context, userID int64, role models.AppRole) (bool, error) {
	return a.roles.HasAnyRole(ctx, userID, []models.AppRole{role})
}

// RolesOf returns all roles granted to the user
func (a *Authorizer) RolesOf(ctx context.Context, userID int64) ([]models.AppRole, error) {
	return a.roles.GetRolesByUserID(ctx, userID)
}
