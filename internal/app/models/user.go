package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID          int64      `json:"id" example:"1"`
	Email       string     `json:"email" example:"member@sesa.edu.ng"`
	Password    string     `json:"-"` // hashed, excluded from JSON
	IsActive    bool       `json:"isActive" example:"true"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Profile holds the member-facing details for a user, created automatically
// at registration. UserID is immutable once set.
type Profile struct {
	ID           int64          `json:"id"`
	UserID       int64          `json:"userId"`
	FullName     *string        `json:"fullName,omitempty"`
	AvatarURL    *string        `json:"avatarUrl,omitempty"`
	DepartmentID *int64         `json:"departmentId,omitempty"`
	Level        *ResourceLevel `json:"level,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`

	// Relations
	Department *Department `json:"department,omitempty"`
}
