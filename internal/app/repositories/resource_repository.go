package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sesa/portal/internal/app/models"
	"github.com/sesa/portal/internal/pkg/apperrors"
	"github.com/sesa/portal/internal/pkg/logger"
)

// ResourceFilters narrows the resource listing. Search matches title,
// description and course code case-insensitively.
type ResourceFilters struct {
	DepartmentID *int64
	Level        *models.ResourceLevel
	Type         *models.ResourceType
	Search       *string
}

// ResourceRepository handles library resource database operations
type ResourceRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewResourceRepository creates a new ResourceRepository
func NewResourceRepository(db *pgxpool.Pool) *ResourceRepository {
	return &ResourceRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var resourceSelectColumns = []string{
	"r.id", "r.department_id", "r.title", "r.description", "r.level", "r.type",
	"r.file_url", "r.file_type", "r.file_size", "r.course_code", "r.author",
	"r.supervisor", "r.year", "r.download_count", "r.created_by",
	"r.created_at", "r.updated_at",
	"d.name as department_name", "d.slug as department_slug",
}

func scanResource(row pgx.Row) (*models.Resource, error) {
	var resource models.Resource
	var departmentName, departmentSlug string

	err := row.Scan(
		&resource.ID, &resource.DepartmentID, &resource.Title, &resource.Description,
		&resource.Level, &resource.Type, &resource.FileURL, &resource.FileType,
		&resource.FileSize, &resource.CourseCode, &resource.Author,
		&resource.Supervisor, &resource.Year, &resource.DownloadCount,
		&resource.CreatedBy, &resource.CreatedAt, &resource.UpdatedAt,
		&departmentName, &departmentSlug,
	)
	if err != nil {
		return nil, err
	}

	resource.Department = &models.Department{
		ID:   resource.DepartmentID,
		Name: departmentName,
		Slug: departmentSlug,
	}
	return &resource, nil
}

func resourceWhereCondition(filters ResourceFilters) squirrel.And {
	where := squirrel.And{}
	if filters.DepartmentID != nil && *filters.DepartmentID > 0 {
		where = append(where, squirrel.Eq{"r.department_id": *filters.DepartmentID})
	}
	if filters.Level != nil && *filters.Level != "" {
		where = append(where, squirrel.Eq{"r.level": string(*filters.Level)})
	}
	if filters.Type != nil && *filters.Type != "" {
		where = append(where, squirrel.Eq{"r.type": string(*filters.Type)})
	}
	if filters.Search != nil && strings.TrimSpace(*filters.Search) != "" {
		pattern := "%" + strings.TrimSpace(*filters.Search) + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"r.title": pattern},
			squirrel.ILike{"r.description": pattern},
			squirrel.ILike{"r.course_code": pattern},
		})
	}
	return where
}

// GetAll retrieves resources with pagination and optional filtering,
// newest first
func (r *ResourceRepository) GetAll(ctx context.Context, page, pageSize int, filters ResourceFilters) ([]models.Resource, int64, error) {
	offset := uint64((page - 1) * pageSize)
	where := resourceWhereCondition(filters)

	countSelect := r.sb.Select("COUNT(*)").
		From("resources r").
		Join("departments d ON r.department_id = d.id").
		Where(where)

	countSql, countArgs, err := countSelect.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count resources SQL")
		return nil, 0, fmt.Errorf("failed to build count resources query: %w", err)
	}

	var totalItems int64
	err = r.db.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing count resources query")
		return nil, 0, fmt.Errorf("failed to count resources: %w", err)
	}

	if totalItems == 0 {
		return []models.Resource{}, 0, nil
	}

	baseSelect := r.sb.Select(resourceSelectColumns...).
		From("resources r").
		Join("departments d ON r.department_id = d.id").
		Where(where).
		OrderBy("r.created_at DESC").
		Limit(uint64(pageSize)).
		Offset(offset)

	querySql, queryArgs, err := baseSelect.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all resources SQL")
		return nil, 0, fmt.Errorf("failed to build get resources query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySql, queryArgs...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all resources query")
		return nil, 0, fmt.Errorf("failed to query resources: %w", err)
	}
	defer rows.Close()

	var resources []models.Resource
	for rows.Next() {
		resource, err := scanResource(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan resource row: %w", err)
		}
		resources = append(resources, *resource)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return resources, totalItems, nil
}

// GetByID retrieves a resource by ID with its department
func (r *ResourceRepository) GetByID(ctx context.Context, id int64) (*models.Resource, error) {
	querySql, args, err := r.sb.Select(resourceSelectColumns...).
		From("resources r").
		Join("departments d ON r.department_id = d.id").
		Where(squirrel.Eq{"r.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get resource query: %w", err)
	}

	resource, err := scanResource(r.db.QueryRow(ctx, querySql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving resource: %w", err)
	}

	return resource, nil
}

// Create creates a new resource
func (r *ResourceRepository) Create(ctx context.Context, resource *models.Resource) error {
	query := `
		INSERT INTO resources (
			department_id, title, description, level, type, file_url, file_type,
			file_size, course_code, author, supervisor, year, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, download_count, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		resource.DepartmentID, resource.Title, resource.Description,
		resource.Level, resource.Type, resource.FileURL, resource.FileType,
		resource.FileSize, resource.CourseCode, resource.Author,
		resource.Supervisor, resource.Year, resource.CreatedBy,
	).Scan(&resource.ID, &resource.DownloadCount, &resource.CreatedAt, &resource.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Str("title", resource.Title).Msg("Error creating resource")
		return fmt.Errorf("error creating resource: %w", err)
	}

	return nil
}

// Update updates an existing resource
func (r *ResourceRepository) Update(ctx context.Context, resource *models.Resource) error {
	query := `
		UPDATE resources
		SET department_id = $1, title = $2, description = $3, level = $4, type = $5,
		    file_url = $6, file_type = $7, file_size = $8, course_code = $9,
		    author = $10, supervisor = $11, year = $12, updated_at = NOW()
		WHERE id = $13
	`

	cmdTag, err := r.db.Exec(ctx, query,
		resource.DepartmentID, resource.Title, resource.Description,
		resource.Level, resource.Type, resource.FileURL, resource.FileType,
		resource.FileSize, resource.CourseCode, resource.Author,
		resource.Supervisor, resource.Year, resource.ID)
	if err != nil {
		return fmt.Errorf("error updating resource: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}

// Delete deletes a resource by ID
func (r *ResourceRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM resources WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting resource: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}

// IncrementDownloadCount bumps the stored counter and returns the new value
func (r *ResourceRepository) IncrementDownloadCount(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		UPDATE resources SET download_count = download_count + 1
		WHERE id = $1
		RETURNING download_count`, id).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrResourceNotFound
		}
		return 0, fmt.Errorf("error incrementing download count: %w", err)
	}
	return count, nil
}

// Count returns the total number of resources
func (r *ResourceRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM resources`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting resources: %w", err)
	}
	return count, nil
}
