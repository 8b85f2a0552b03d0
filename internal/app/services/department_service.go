package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sesa/portal/internal/app/models"
	"github.com/sesa/portal/internal/pkg/apperrors"
)

// ErrDepartmentValidation marks invalid department input
var ErrDepartmentValidation = errors.New("department validation failed")

// DepartmentStore is the department persistence used by DepartmentService
type DepartmentStore interface {
	Create(ctx context.Context, department *models.Department) error
	GetByID(ctx context.Context, id int64) (*models.Department, error)
	GetBySlug(ctx context.Context, slug string) (*models.Department, error)
	GetAll(ctx context.Context) ([]*models.Department, error)
	ExistsByNameOrSlug(ctx context.Context, name, slug string, excludeID int64) (bool, error)
	HasRelations(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, department *models.Department) error
	Delete(ctx context.Context, id int64) error
}

// DepartmentService handles department-related operations
type DepartmentService struct {
	departmentStore DepartmentStore
}

// NewDepartmentService creates a new department service instance
func NewDepartmentService(departmentStore DepartmentStore) *DepartmentService {
	return &DepartmentService{
		departmentStore: departmentStore,
	}
}

// validateDepartment validates department data before database operations
func (s *DepartmentService) validateDepartment(department *models.Department) error {
	if department == nil {
		return fmt.Errorf("%w: department is nil", ErrDepartmentValidation)
	}

	if strings.TrimSpace(department.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrDepartmentValidation)
	}

	if !isValidSlug(department.Slug) {
		return fmt.Errorf("%w: slug must be lowercase letters, digits and hyphens", ErrDepartmentValidation)
	}

	return nil
}

// isValidSlug checks if a department slug is URL safe
func isValidSlug(slug string) bool {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return false
	}

	for _, char := range slug {
		if !((char >= 'a' && char <= 'z') || (char >= '0' && char <= '9') || char == '-') {
			return false
		}
	}

	return !strings.HasPrefix(slug, "-") && !strings.HasSuffix(slug, "-")
}

// CreateDepartment creates a new department
func (s *DepartmentService) CreateDepartment(ctx context.Context, department *models.Department) error {
	if err := s.validateDepartment(department); err != nil {
		return err
	}

	exists, err := s.departmentStore.ExistsByNameOrSlug(ctx, department.Name, department.Slug, 0)
	if err != nil {
		return fmt.Errorf("error checking department uniqueness: %w", err)
	}
	if exists {
		return apperrors.ErrDepartmentAlreadyExists
	}

	if err := s.departmentStore.Create(ctx, department); err != nil {
		return fmt.Errorf("error creating department: %w", err)
	}
	return nil
}

// GetDepartmentByID retrieves a department by ID
func (s *DepartmentService) GetDepartmentByID(ctx context.Context, id int64) (*models.Department, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid department ID", ErrDepartmentValidation)
	}

	return s.departmentStore.GetByID(ctx, id)
}

// GetDepartmentBySlug retrieves a department by its URL slug
func (s *DepartmentService) GetDepartmentBySlug(ctx context.Context, slug string) (*models.Department, error) {
	if !isValidSlug(slug) {
		return nil, fmt.Errorf("%w: invalid department slug", ErrDepartmentValidation)
	}

	return s.departmentStore.GetBySlug(ctx, slug)
}

// GetAllDepartments retrieves all departments
func (s *DepartmentService) GetAllDepartments(ctx context.Context) ([]*models.Department, error) {
	departments, err := s.departmentStore.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving departments: %w", err)
	}

	return departments, nil
}

// UpdateDepartment updates an existing department. The slug is frozen
// while resources, articles or profiles still reference the department,
// since member bookmarks and shared links embed it.
func (s *DepartmentService) UpdateDepartment(ctx context.Context, department *models.Department) error {
	if err := s.validateDepartment(department); err != nil {
		return err
	}

	if department.ID <= 0 {
		return fmt.Errorf("%w: invalid department ID", ErrDepartmentValidation)
	}

	existing, err := s.departmentStore.GetByID(ctx, department.ID)
	if err != nil {
		return err
	}

	if department.Slug != existing.Slug {
		hasRelations, err := s.departmentStore.HasRelations(ctx, department.ID)
		if err != nil {
			return fmt.Errorf("error checking department relations: %w", err)
		}
		if hasRelations {
			return apperrors.ErrSlugImmutable
		}
	}

	exists, err := s.departmentStore.ExistsByNameOrSlug(ctx, department.Name, department.Slug, department.ID)
	if err != nil {
		return fmt.Errorf("error checking department uniqueness: %w", err)
	}
	if exists {
		return apperrors.ErrDepartmentAlreadyExists
	}

	return s.departmentStore.Update(ctx, department)
}

// DeleteDepartment deletes a department by ID
func (s *DepartmentService) DeleteDepartment(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid department ID", ErrDepartmentValidation)
	}

	return s.departmentStore.Delete(ctx, id)
}
