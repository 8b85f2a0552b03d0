package dto

import "github.com/sesa/portal/internal/app/models"

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken           string `json:"accessToken"`
	TokenType             string `json:"tokenType" example:"Bearer"`
	ExpiresIn             int64  `json:"expiresIn"`
	RefreshToken          string `json:"refreshToken,omitempty"`
	RefreshTokenExpiresIn int64  `json:"refreshTokenExpiresIn,omitempty"`
}

// RefreshTokenRequest represents refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// LogoutRequest carries the refresh token to revoke
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RegisterRequest represents a member registration request.
// New accounts always start with the student role; elevated roles are
// granted through the admin back-office.
type RegisterRequest struct {
	Email        string               `json:"email" binding:"required,email"`
	Password     string               `json:"password" binding:"required,min=8"`
	FullName     string               `json:"fullName" binding:"required"`
	DepartmentID *int64               `json:"departmentId,omitempty" binding:"omitempty,min=1"`
	Level        *models.ResourceLevel `json:"level,omitempty"`
}

// UserResponse represents basic user information
type UserResponse struct {
	ID           int64    `json:"id"`
	Email        string   `json:"email"`
	FullName     string   `json:"fullName,omitempty"`
	Roles        []string `json:"roles"`
	DepartmentID *int64   `json:"departmentId,omitempty"`
	AvatarURL    string   `json:"avatarUrl,omitempty"`
	IsActive     bool     `json:"isActive"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}
