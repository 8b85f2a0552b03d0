package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/sesa/portal/internal/app/models"
	"github.com/sesa/portal/internal/app/models/dto"
	"github.com/sesa/portal/internal/pkg/apperrors"
	"github.com/sesa/portal/internal/pkg/auth"
)

// Auth service errors
var (
	ErrInvalidEmail    = errors.New("invalid email format")
	ErrInvalidPassword = errors.New("invalid password format")
	ErrAuthValidation  = errors.New("auth validation failed")
)

// UserStore is the account persistence needed by AuthService
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
}

// ProfileStore is the profile persistence needed by AuthService
type ProfileStore interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByUserID(ctx context.Context, userID int64) (*models.Profile, error)
}

// RoleStore is the role persistence needed by AuthService
type RoleStore interface {
	GetRolesByUserID(ctx context.Context, userID int64) ([]models.AppRole, error)
	Grant(ctx context.Context, userID int64, role models.AppRole) error
}

// TokenStore is the refresh token persistence needed by AuthService
type TokenStore interface {
	CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error
	GetTokenByValue(ctx context.Context, token string) (int64, time.Time, error)
	RevokeToken(ctx context.Context, token string) error
	RevokeAllUserTokens(ctx context.Context, userID int64) error
}

// DepartmentChecker validates department references during registration
type DepartmentChecker interface {
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

// AuthService handles authentication operations
type AuthService struct {
	userStore      UserStore
	profileStore   ProfileStore
	roleStore      RoleStore
	tokenStore     TokenStore
	departmentRepo DepartmentChecker
	jwtService     *auth.JWTService
	logger         zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userStore UserStore,
	profileStore ProfileStore,
	roleStore RoleStore,
	tokenStore TokenStore,
	departmentRepo DepartmentChecker,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userStore:      userStore,
		profileStore:   profileStore,
		roleStore:      roleStore,
		tokenStore:     tokenStore,
		departmentRepo: departmentRepo,
		jwtService:     jwtService,
		logger:         logger,
	}
}

var emailRegex = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)

// validateEmail validates an email address
func (s *AuthService) validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email cannot be empty", ErrAuthValidation)
	}

	if !emailRegex.MatchString(strings.ToLower(email)) {
		return ErrInvalidEmail
	}

	return nil
}

// validatePassword checks if password meets requirements
func (s *AuthService) validatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("%w: password cannot be empty", ErrAuthValidation)
	}

	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters long", ErrInvalidPassword)
	}

	hasLetter := false
	hasDigit := false
	for _, char := range password {
		if unicode.IsLetter(char) {
			hasLetter = true
		}
		if unicode.IsDigit(char) {
			hasDigit = true
		}
	}
	if !hasLetter {
		return fmt.Errorf("%w: password must contain at least one letter", ErrInvalidPassword)
	}
	if !hasDigit {
		return fmt.Errorf("%w: password must contain at least one digit", ErrInvalidPassword)
	}

	return nil
}

// Register creates a new member account with its profile and the
// student role, then signs the member in
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := s.validateEmail(req.Email); err != nil {
		return nil, err
	}

	if err := s.validatePassword(req.Password); err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.FullName) == "" {
		return nil, fmt.Errorf("%w: full name cannot be empty", ErrAuthValidation)
	}

	if req.Level != nil && !models.ValidResourceLevel(*req.Level) {
		return nil, fmt.Errorf("%w: unknown level %q", ErrAuthValidation, *req.Level)
	}

	if req.DepartmentID != nil {
		exists, err := s.departmentRepo.ExistsByID(ctx, *req.DepartmentID)
		if err != nil {
			return nil, fmt.Errorf("error checking department: %w", err)
		}
		if !exists {
			return nil, apperrors.ErrDepartmentNotFound
		}
	}

	exists, err := s.userStore.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking if email exists: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:    strings.ToLower(req.Email),
		Password: hashedPassword,
		IsActive: true,
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("user creation error: %w", err)
	}

	fullName := strings.TrimSpace(req.FullName)
	profile := &models.Profile{
		UserID:       user.ID,
		FullName:     &fullName,
		DepartmentID: req.DepartmentID,
		Level:        req.Level,
	}

	if err := s.profileStore.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("profile creation error: %w", err)
	}

	if err := s.roleStore.Grant(ctx, user.ID, models.RoleStudent); err != nil {
		return nil, fmt.Errorf("role grant error: %w", err)
	}

	s.logger.Info().Int64("userID", user.ID).Str("email", user.Email).Msg("New member registered")

	return s.generateAuthResponse(ctx, user)
}

// Login authenticates a member
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if err := s.validateEmail(req.Email); err != nil {
		return nil, err
	}

	if req.Password == "" {
		return nil, fmt.Errorf("%w: password cannot be empty", ErrAuthValidation)
	}

	user, err := s.userStore.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	now := time.Now()
	if err := s.userStore.UpdateLastLogin(ctx, user.ID, now); err != nil {
		// Sign-in still succeeds; the stamp is informational
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to update last login")
	}
	user.LastLoginAt = &now

	return s.generateAuthResponse(ctx, user)
}

// RefreshToken rotates a refresh token and issues a new access token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	userID, expiryDate, err := s.tokenStore.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	if expiryDate.Before(time.Now()) {
		_ = s.tokenStore.RevokeToken(ctx, refreshToken)
		return nil, apperrors.ErrTokenExpired
	}

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	// Rotation: the old token must not be reusable
	if err := s.tokenStore.RevokeToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to revoke old token: %w", err)
	}

	return s.generateAuthResponse(ctx, user)
}

// Logout revokes the refresh token. Revocation failures are logged but
// never block the sign-out; the client discards its tokens either way.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) {
	if strings.TrimSpace(refreshToken) == "" {
		return
	}

	if err := s.tokenStore.RevokeToken(ctx, refreshToken); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to revoke refresh token on logout")
	}
}

// generateAuthResponse issues a token pair and builds the session payload
func (s *AuthService) generateAuthResponse(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	roles, err := s.roleStore.GetRolesByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("error loading roles: %w", err)
	}

	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user, roles)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}

	tokenExpiry := s.jwtService.GetRefreshTokenExpiry()

	if err := s.tokenStore.CreateToken(ctx, refreshToken, user.ID, tokenExpiry); err != nil {
		return nil, fmt.Errorf("token saving error: %w", err)
	}

	userResp := dto.UserResponse{
		ID:       user.ID,
		Email:    user.Email,
		IsActive: user.IsActive,
		Roles:    rolesToStrings(roles),
	}

	if profile, err := s.profileStore.GetByUserID(ctx, user.ID); err == nil {
		if profile.FullName != nil {
			userResp.FullName = *profile.FullName
		}
		if profile.AvatarURL != nil {
			userResp.AvatarURL = *profile.AvatarURL
		}
		userResp.DepartmentID = profile.DepartmentID
	}

	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken:           accessToken,
			RefreshToken:          refreshToken,
			TokenType:             "Bearer",
			ExpiresIn:             int64(expiresIn),
			RefreshTokenExpiresIn: int64(refreshExpiresIn),
		},
		User: userResp,
	}, nil
}

func rolesToStrings(roles []models.AppRole) []string {
	out := make([]string, 0, len(roles))
	for _, role := range roles {
		out = append(out, string(role))
	}
	return out
}
