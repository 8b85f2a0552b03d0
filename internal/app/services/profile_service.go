package services

import (
	"context"
	"fmt"

	"github.com/sesa/portal/internal/app/models"
	"github.com/sesa/portal/internal/app/models/dto"
	"github.com/sesa/portal/internal/app/repositories"
	"github.com/sesa/portal/internal/pkg/apperrors"
)

// MemberStore is the directory persistence used by ProfileService
type MemberStore interface {
	ProfileStore
	Update(ctx context.Context, profile *models.Profile) error
	GetMembers(ctx context.Context, page, pageSize int, departmentID *int64) ([]repositories.MemberRow, int64, error)
}

// ProfileService handles member profile operations
type ProfileService struct {
	profiles       MemberStore
	departmentRepo DepartmentChecker
}

// NewProfileService creates a new profile service
func NewProfileService(profiles MemberStore, departmentRepo DepartmentChecker) *ProfileService {
	return &ProfileService{
		profiles:       profiles,
		departmentRepo: departmentRepo,
	}
}

// GetProfile retrieves the member profile for a user
func (s *ProfileService) GetProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: invalid user ID", apperrors.ErrValidationFailed)
	}

	return s.profiles.GetByUserID(ctx, userID)
}

// UpdateProfile applies the requested profile changes. Fields left nil
// in the request keep their stored value.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*models.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		profile.FullName = req.FullName
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = req.AvatarURL
	}
	if req.DepartmentID != nil {
		exists, err := s.departmentRepo.ExistsByID(ctx, *req.DepartmentID)
		if err != nil {
			return nil, fmt.Errorf("error checking department: %w", err)
		}
		if !exists {
			return nil, apperrors.ErrDepartmentNotFound
		}
		profile.DepartmentID = req.DepartmentID
		profile.Department = nil
	}
	if req.Level != nil {
		level := models.ResourceLevel(*req.Level)
		if !models.ValidResourceLevel(level) {
			return nil, fmt.Errorf("%w: unknown level %q", apperrors.ErrValidationFailed, *req.Level)
		}
		profile.Level = &level
	}

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}

	return s.profiles.GetByUserID(ctx, userID)
}

// GetMembers retrieves the member directory with optional department filter
func (s *ProfileService) GetMembers(ctx context.Context, page, pageSize int, departmentID *int64) ([]dto.MemberResponse, int64, error) {
	rows, total, err := s.profiles.GetMembers(ctx, page, pageSize, departmentID)
	if err != nil {
		return nil, 0, err
	}

	members := make([]dto.MemberResponse, 0, len(rows))
	for _, row := range rows {
		member := dto.MemberResponse{
			UserID:       row.UserID,
			Email:        row.Email,
			FullName:     row.FullName,
			AvatarURL:    row.AvatarURL,
			DepartmentID: row.DepartmentID,
		}
		if row.DepartmentName != nil {
			member.DepartmentName = *row.DepartmentName
		}
		if row.Level != nil {
			level := string(*row.Level)
			member.Level = &level
		}
		members = append(members, member)
	}

	return members, total, nil
}
