package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sesa/portal/internal/app/models"
	"github.com/sesa/portal/internal/app/models/dto"
	"github.com/sesa/portal/internal/pkg/apperrors"
	"github.com/sesa/portal/internal/pkg/sysinfo"
)

// EntityCounter returns the total row count for one content type
type EntityCounter interface {
	Count(ctx context.Context) (int64, error)
}

// AdminUserStore is the account persistence used by AdminService
type AdminUserStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetAllPaginated(ctx context.Context, page, pageSize int) ([]models.User, int64, error)
	SetActive(ctx context.Context, id int64, isActive bool) error
	Count(ctx context.Context) (int64, error)
}

// AdminRoleStore is the role persistence used by AdminService
type AdminRoleStore interface {
	GetRolesByUserID(ctx context.Context, userID int64) ([]models.AppRole, error)
	Grant(ctx context.Context, userID int64, role models.AppRole) error
	Revoke(ctx context.Context, userID int64, role models.AppRole) error
}

// AdminService backs the back-office dashboard and user management
type AdminService struct {
	users        AdminUserStore
	roles        AdminRoleStore
	profiles     ProfileStore
	tokens       TokenStore
	departments  EntityCounter
	resources    EntityCounter
	articles     EntityCounter
	statsDiskDir string
	logger       zerolog.Logger
}

// NewAdminService creates a new admin service. statsDiskDir is the
// mount inspected for the dashboard disk gauge, normally the uploads
// directory.
func NewAdminService(
	users AdminUserStore,
	roles AdminRoleStore,
	profiles ProfileStore,
	tokens TokenStore,
	departments EntityCounter,
	resources EntityCounter,
	articles EntityCounter,
	statsDiskDir string,
	logger zerolog.Logger,
) *AdminService {
	return &AdminService{
		users:        users,
		roles:        roles,
		profiles:     profiles,
		tokens:       tokens,
		departments:  departments,
		resources:    resources,
		articles:     articles,
		statsDiskDir: statsDiskDir,
		logger:       logger,
	}
}

// GetStats aggregates the dashboard counters and a host health sample
func (s *AdminService) GetStats(ctx context.Context) (*dto.AdminStatsResponse, error) {
	stats := &dto.AdminStatsResponse{}

	var err error
	if stats.Departments, err = s.departments.Count(ctx); err != nil {
		return nil, fmt.Errorf("error counting departments: %w", err)
	}
	if stats.Resources, err = s.resources.Count(ctx); err != nil {
		return nil, fmt.Errorf("error counting resources: %w", err)
	}
	if stats.Articles, err = s.articles.Count(ctx); err != nil {
		return nil, fmt.Errorf("error counting articles: %w", err)
	}
	if stats.Users, err = s.users.Count(ctx); err != nil {
		return nil, fmt.Errorf("error counting users: %w", err)
	}

	stats.System = sysinfo.Capture(s.statsDiskDir)

	return stats, nil
}

// ListUsers retrieves the back-office user listing with profile names
// and role grants attached
func (s *AdminService) ListUsers(ctx context.Context, page, pageSize int) ([]dto.AdminUserResponse, int64, error) {
	users, total, err := s.users.GetAllPaginated(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]dto.AdminUserResponse, 0, len(users))
	for _, user := range users {
		resp := dto.AdminUserResponse{
			ID:          user.ID,
			Email:       user.Email,
			IsActive:    user.IsActive,
			LastLoginAt: user.LastLoginAt,
			CreatedAt:   user.CreatedAt,
		}

		if profile, err := s.profiles.GetByUserID(ctx, user.ID); err == nil {
			resp.FullName = profile.FullName
		}

		roles, err := s.roles.GetRolesByUserID(ctx, user.ID)
		if err != nil {
			s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to load roles for user listing")
		}
		resp.Roles = rolesToStrings(roles)

		responses = append(responses, resp)
	}

	return responses, total, nil
}

// GrantRole grants a role to a user
func (s *AdminService) GrantRole(ctx context.Context, userID int64, roleName string) error {
	role := models.AppRole(roleName)
	if !models.ValidAppRole(role) {
		return fmt.Errorf("%w: unknown role %q", apperrors.ErrValidationFailed, roleName)
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}

	if err := s.roles.Grant(ctx, userID, role); err != nil {
		return err
	}

	s.logger.Info().Int64("userID", userID).Str("role", roleName).Msg("Role granted")
	return nil
}

// RevokeRole revokes a role from a user
func (s *AdminService) RevokeRole(ctx context.Context, userID int64, roleName string) error {
	role := models.AppRole(roleName)
	if !models.ValidAppRole(role) {
		return fmt.Errorf("%w: unknown role %q", apperrors.ErrValidationFailed, roleName)
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}

	if err := s.roles.Revoke(ctx, userID, role); err != nil {
		return err
	}

	s.logger.Info().Int64("userID", userID).Str("role", roleName).Msg("Role revoked")
	return nil
}

// SetUserActive enables or disables an account. Disabling revokes all
// outstanding refresh tokens so the lockout is immediate.
func (s *AdminService) SetUserActive(ctx context.Context, userID int64, isActive bool) error {
	if err := s.users.SetActive(ctx, userID, isActive); err != nil {
		return err
	}

	if !isActive {
		if err := s.tokens.RevokeAllUserTokens(ctx, userID); err != nil {
			s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to revoke tokens for disabled account")
		}
	}

	s.logger.Info().Int64("userID", userID).Bool("isActive", isActive).Msg("Account active flag updated")
	return nil
}
