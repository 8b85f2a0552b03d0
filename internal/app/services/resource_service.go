package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sesa/portal/internal/app/models"
	"github.com/sesa/portal/internal/app/models/dto"
	"github.com/sesa/portal/internal/app/repositories"
	"github.com/sesa/portal/internal/pkg/apperrors"
	"github.com/sesa/portal/internal/pkg/cache"
)

// ErrResourceValidation marks invalid resource input
var ErrResourceValidation = errors.New("resource validation failed")

// ResourceStore is the resource persistence used by ResourceService
type ResourceStore interface {
	GetAll(ctx context.Context, page, pageSize int, filters repositories.ResourceFilters) ([]models.Resource, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Resource, error)
	Create(ctx context.Context, resource *models.Resource) error
	Update(ctx context.Context, resource *models.Resource) error
	Delete(ctx context.Context, id int64) error
	IncrementDownloadCount(ctx context.Context, id int64) (int64, error)
}

// DownloadRecorder stores download events
type DownloadRecorder interface {
	CreateDownloadRecord(ctx context.Context, resourceID int64, userID *int64) error
}

// FileSaver stores and removes uploaded files
type FileSaver interface {
	SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error)
	DeleteFile(filePath string) error
}

// ResourceService handles library resource operations
type ResourceService struct {
	resourceStore  ResourceStore
	downloads      DownloadRecorder
	departmentRepo DepartmentChecker
	storage        FileSaver
	counters       *cache.CounterCache
	logger         zerolog.Logger
}

// NewResourceService creates a new resource service
func NewResourceService(
	resourceStore ResourceStore,
	downloads DownloadRecorder,
	departmentRepo DepartmentChecker,
	storage FileSaver,
	counters *cache.CounterCache,
	logger zerolog.Logger,
) *ResourceService {
	return &ResourceService{
		resourceStore:  resourceStore,
		downloads:      downloads,
		departmentRepo: departmentRepo,
		storage:        storage,
		counters:       counters,
		logger:         logger,
	}
}

func parseResourceFilters(req dto.ResourceFilterRequest) (repositories.ResourceFilters, error) {
	filters := repositories.ResourceFilters{
		DepartmentID: req.DepartmentID,
		Search:       req.Search,
	}

	if req.Level != nil && *req.Level != "" {
		level := models.ResourceLevel(*req.Level)
		if !models.ValidResourceLevel(level) {
			return filters, fmt.Errorf("%w: unknown level %q", ErrResourceValidation, *req.Level)
		}
		filters.Level = &level
	}

	if req.Type != nil && *req.Type != "" {
		resourceType := models.ResourceType(*req.Type)
		if !models.ValidResourceType(resourceType) {
			return filters, fmt.Errorf("%w: unknown type %q", ErrResourceValidation, *req.Type)
		}
		filters.Type = &resourceType
	}

	return filters, nil
}

// ListResources retrieves resources with filtering and pagination
func (s *ResourceService) ListResources(ctx context.Context, page, pageSize int, req dto.ResourceFilterRequest) ([]models.Resource, int64, error) {
	filters, err := parseResourceFilters(req)
	if err != nil {
		return nil, 0, err
	}

	return s.resourceStore.GetAll(ctx, page, pageSize, filters)
}

// GetResourceByID retrieves a resource by ID
func (s *ResourceService) GetResourceByID(ctx context.Context, id int64) (*models.Resource, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid resource ID", ErrResourceValidation)
	}

	resource, err := s.resourceStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Prefer the hot counter when one exists
	if count, ok := s.counters.GetDownloads(ctx, id); ok && count > resource.DownloadCount {
		resource.DownloadCount = count
	}

	return resource, nil
}

func (s *ResourceService) validateResourceInput(ctx context.Context, departmentID int64, title, level, resourceType string) (models.ResourceLevel, models.ResourceType, error) {
	if strings.TrimSpace(title) == "" {
		return "", "", fmt.Errorf("%w: title cannot be empty", ErrResourceValidation)
	}

	parsedLevel := models.ResourceLevel(level)
	if !models.ValidResourceLevel(parsedLevel) {
		return "", "", fmt.Errorf("%w: unknown level %q", ErrResourceValidation, level)
	}

	parsedType := models.ResourceType(resourceType)
	if !models.ValidResourceType(parsedType) {
		return "", "", fmt.Errorf("%w: unknown type %q", ErrResourceValidation, resourceType)
	}

	exists, err := s.departmentRepo.ExistsByID(ctx, departmentID)
	if err != nil {
		return "", "", fmt.Errorf("error checking department: %w", err)
	}
	if !exists {
		return "", "", apperrors.ErrDepartmentNotFound
	}

	return parsedLevel, parsedType, nil
}

// CreateResource stores a new resource with an optional uploaded file
func (s *ResourceService) CreateResource(ctx context.Context, req *dto.CreateResourceRequest, file *multipart.FileHeader, createdBy int64) (*models.Resource, error) {
	level, resourceType, err := s.validateResourceInput(ctx, req.DepartmentID, req.Title, req.Level, req.Type)
	if err != nil {
		return nil, err
	}

	resource := &models.Resource{
		DepartmentID: req.DepartmentID,
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		Level:        level,
		Type:         resourceType,
		CourseCode:   req.CourseCode,
		Author:       req.Author,
		Supervisor:   req.Supervisor,
		Year:         req.Year,
		CreatedBy:    &createdBy,
	}

	if file != nil {
		fileURL, err := s.storage.SaveFileWithPath(file, "resources")
		if err != nil {
			return nil, fmt.Errorf("error saving resource file: %w", err)
		}
		resource.FileURL = &fileURL

		contentType := file.Header.Get("Content-Type")
		if contentType != "" {
			resource.FileType = &contentType
		}
		size := formatFileSize(file.Size)
		resource.FileSize = &size
	}

	if err := s.resourceStore.Create(ctx, resource); err != nil {
		if resource.FileURL != nil {
			_ = s.storage.DeleteFile(*resource.FileURL)
		}
		return nil, err
	}

	return resource, nil
}

// UpdateResource updates resource metadata. An uploaded file replaces
// the stored one.
func (s *ResourceService) UpdateResource(ctx context.Context, id int64, req *dto.UpdateResourceRequest, file *multipart.FileHeader) (*models.Resource, error) {
	level, resourceType, err := s.validateResourceInput(ctx, req.DepartmentID, req.Title, req.Level, req.Type)
	if err != nil {
		return nil, err
	}

	resource, err := s.resourceStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldFileURL := resource.FileURL

	resource.DepartmentID = req.DepartmentID
	resource.Title = strings.TrimSpace(req.Title)
	resource.Description = req.Description
	resource.Level = level
	resource.Type = resourceType
	resource.CourseCode = req.CourseCode
	resource.Author = req.Author
	resource.Supervisor = req.Supervisor
	resource.Year = req.Year

	if file != nil {
		fileURL, err := s.storage.SaveFileWithPath(file, "resources")
		if err != nil {
			return nil, fmt.Errorf("error saving resource file: %w", err)
		}
		resource.FileURL = &fileURL

		contentType := file.Header.Get("Content-Type")
		if contentType != "" {
			resource.FileType = &contentType
		}
		size := formatFileSize(file.Size)
		resource.FileSize = &size
	}

	if err := s.resourceStore.Update(ctx, resource); err != nil {
		return nil, err
	}

	if file != nil && oldFileURL != nil {
		if err := s.storage.DeleteFile(*oldFileURL); err != nil {
			s.logger.Warn().Err(err).Str("fileURL", *oldFileURL).Msg("Failed to delete replaced resource file")
		}
	}

	return resource, nil
}

// DeleteResource removes a resource and its stored file
func (s *ResourceService) DeleteResource(ctx context.Context, id int64) error {
	resource, err := s.resourceStore.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.resourceStore.Delete(ctx, id); err != nil {
		return err
	}

	if resource.FileURL != nil {
		if err := s.storage.DeleteFile(*resource.FileURL); err != nil {
			s.logger.Warn().Err(err).Str("fileURL", *resource.FileURL).Msg("Failed to delete resource file")
		}
	}

	return nil
}

// RecordDownload logs a download event and bumps the counter. The two
// writes are deliberately separate: the event row is the source of
// truth, and a failed counter bump only means the displayed total may
// briefly undercount.
func (s *ResourceService) RecordDownload(ctx context.Context, resourceID int64, userID *int64) (*dto.DownloadResponse, error) {
	resource, err := s.resourceStore.GetByID(ctx, resourceID)
	if err != nil {
		return nil, err
	}

	if resource.FileURL == nil {
		return nil, apperrors.NewNotFoundError("resource has no downloadable file")
	}

	if err := s.downloads.CreateDownloadRecord(ctx, resourceID, userID); err != nil {
		return nil, err
	}

	count := resource.DownloadCount
	newCount, err := s.resourceStore.IncrementDownloadCount(ctx, resourceID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("resourceID", resourceID).Msg("Failed to increment download count")
	} else {
		count = newCount
	}

	s.counters.IncrementDownloads(ctx, resourceID)

	return &dto.DownloadResponse{
		FileURL:       *resource.FileURL,
		DownloadCount: count,
	}, nil
}

// formatFileSize renders a byte count the way the library cards show it
func formatFileSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
