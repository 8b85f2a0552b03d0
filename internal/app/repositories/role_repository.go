package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sesa/portal/internal/app/models"
	"github.com/sesa/portal/internal/pkg/dberrors"
)

// RoleRepository handles role grant database operations
type RoleRepository struct {
	db *pgxpool.Pool
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(db *pgxpool.Pool) *RoleRepository {
	return &RoleRepository{
		db: db,
	}
}

// GetRolesByUserID returns all roles granted to a user
func (r *RoleRepository) GetRolesByUserID(ctx context.Context, userID int64) ([]models.AppRole, error) {
	rows, err := r.db.Query(ctx, `SELECT role FROM user_roles WHERE user_id = $1 ORDER BY role`, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying user roles: %w", err)
	}
	defer rows.Close()

	var roles []models.AppRole
	for rows.Next() {
		var role models.AppRole
		if err := rows.Scan(&role); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return roles, nil
}

// HasAnyRole reports whether the user holds at least one of the given roles
func (r *RoleRepository) HasAnyRole(ctx context.Context, userID int64, roles []models.AppRole) (bool, error) {
	if len(roles) == 0 {
		return false, nil
	}

	roleNames := make([]string, 0, len(roles))
	for _, role := range roles {
		roleNames = append(roleNames, string(role))
	}

	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM user_roles WHERE user_id = $1 AND role = ANY($2))`,
		userID, roleNames).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking user roles: %w", err)
	}

	return exists, nil
}

// Grant adds a role to a user. Granting an already held role is a no-op.
func (r *RoleRepository) Grant(ctx context.Context, userID int64, role models.AppRole) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_roles (user_id, role) VALUES ($1, $2)`, userID, role)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil
		}
		return fmt.Errorf("error granting role: %w", err)
	}
	return nil
}

// Revoke removes a role from a user
func (r *RoleRepository) Revoke(ctx context.Context, userID int64, role models.AppRole) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM user_roles WHERE user_id = $1 AND role = $2`, userID, role)
	if err != nil {
		return fmt.Errorf("error revoking role: %w", err)
	}
	return nil
}
