package dto

import (
	"time"

	"github.com/sesa/portal/internal/app/models"
)

// UpdateProfileRequest represents profile update data
type UpdateProfileRequest struct {
	FullName     *string `json:"fullName"`
	DepartmentID *int64  `json:"departmentId" binding:"omitempty,min=1"`
	Level        *string `json:"level"`
	AvatarURL    *string `json:"avatarUrl"`
}

// ProfileResponse represents member profile information
type ProfileResponse struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"userId"`
	FullName       *string   `json:"fullName,omitempty"`
	AvatarURL      *string   `json:"avatarUrl,omitempty"`
	DepartmentID   *int64    `json:"departmentId,omitempty"`
	DepartmentName string    `json:"departmentName,omitempty"`
	Level          *string   `json:"level,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// MemberResponse is a directory entry combining account and profile data
type MemberResponse struct {
	UserID         int64   `json:"userId"`
	Email          string  `json:"email"`
	FullName       *string `json:"fullName,omitempty"`
	AvatarURL      *string `json:"avatarUrl,omitempty"`
	DepartmentID   *int64  `json:"departmentId,omitempty"`
	DepartmentName string  `json:"departmentName,omitempty"`
	Level          *string `json:"level,omitempty"`
}

// MemberListResponse represents a paginated member directory
type MemberListResponse struct {
	Members    []MemberResponse `json:"members"`
	Pagination PaginationInfo   `json:"pagination"`
}

// FromProfile converts a models.Profile to a ProfileResponse
func FromProfile(p *models.Profile) ProfileResponse {
	if p == nil {
		return ProfileResponse{}
	}

	departmentName := ""
	if p.Department != nil {
		departmentName = p.Department.Name
	}

	var level *string
	if p.Level != nil {
		l := string(*p.Level)
		level = &l
	}

	return ProfileResponse{
		ID:             p.ID,
		UserID:         p.UserID,
		FullName:       p.FullName,
		AvatarURL:      p.AvatarURL,
		DepartmentID:   p.DepartmentID,
		DepartmentName: departmentName,
		Level:          level,
		CreatedAt:      p.CreatedAt,
	}
}
