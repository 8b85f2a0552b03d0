package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sesa/portal/internal/app/models"
	"github.com/sesa/portal/internal/pkg/apperrors"
)

// ProfileRepository handles member profile database operations
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{
		db: db,
	}
}

// Create creates a profile for a user
func (r *ProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (user_id, full_name, avatar_url, department_id, level)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		profile.UserID, profile.FullName, profile.AvatarURL,
		profile.DepartmentID, profile.Level,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating profile: %w", err)
	}

	return nil
}

// GetByUserID retrieves a profile with its department by user ID
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	query := `
		SELECT p.id, p.user_id, p.full_name, p.avatar_url, p.department_id, p.level,
		       p.created_at, p.updated_at,
		       d.id, d.name, d.slug
		FROM profiles p
		LEFT JOIN departments d ON p.department_id = d.id
		WHERE p.user_id = $1
	`

	var profile models.Profile
	var deptID *int64
	var deptName, deptSlug *string

	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.ID, &profile.UserID, &profile.FullName, &profile.AvatarURL,
		&profile.DepartmentID, &profile.Level, &profile.CreatedAt, &profile.UpdatedAt,
		&deptID, &deptName, &deptSlug,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("error retrieving profile: %w", err)
	}

	if deptID != nil {
		profile.Department = &models.Department{
			ID:   *deptID,
			Name: *deptName,
			Slug: *deptSlug,
		}
	}

	return &profile, nil
}

// Update updates a profile. The user link never changes.
func (r *ProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	query := `
		UPDATE profiles
		SET full_name = $1, avatar_url = $2, department_id = $3, level = $4, updated_at = NOW()
		WHERE user_id = $5
	`

	cmdTag, err := r.db.Exec(ctx, query,
		profile.FullName, profile.AvatarURL, profile.DepartmentID,
		profile.Level, profile.UserID)
	if err != nil {
		return fmt.Errorf("error updating profile: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProfileNotFound
	}

	return nil
}

// MemberRow pairs account and profile data for the member directory
type MemberRow struct {
	UserID         int64
	Email          string
	FullName       *string
	AvatarURL      *string
	DepartmentID   *int64
	DepartmentName *string
	Level          *models.ResourceLevel
}

// GetMembers retrieves the member directory, optionally filtered by
// department, ordered by full name
func (r *ProfileRepository) GetMembers(ctx context.Context, page, pageSize int, departmentID *int64) ([]MemberRow, int64, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM profiles p
		JOIN users u ON p.user_id = u.id
		WHERE u.is_active AND ($1::bigint IS NULL OR p.department_id = $1)
	`

	var totalItems int64
	if err := r.db.QueryRow(ctx, countQuery, departmentID).Scan(&totalItems); err != nil {
		return nil, 0, fmt.Errorf("error counting members: %w", err)
	}

	if totalItems == 0 {
		return []MemberRow{}, 0, nil
	}

	offset := (page - 1) * pageSize
	query := `
		SELECT p.user_id, u.email, p.full_name, p.avatar_url,
		       p.department_id, d.name, p.level
		FROM profiles p
		JOIN users u ON p.user_id = u.id
		LEFT JOIN departments d ON p.department_id = d.id
		WHERE u.is_active AND ($1::bigint IS NULL OR p.department_id = $1)
		ORDER BY p.full_name ASC NULLS LAST
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, departmentID, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying members: %w", err)
	}
	defer rows.Close()

	var members []MemberRow
	for rows.Next() {
		var m MemberRow
		if err := rows.Scan(
			&m.UserID, &m.Email, &m.FullName, &m.AvatarURL,
			&m.DepartmentID, &m.DepartmentName, &m.Level,
		); err != nil {
			return nil, 0, err
		}
		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return members, totalItems, nil
}
