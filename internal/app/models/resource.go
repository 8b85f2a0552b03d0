package models

import "time"

// Resource represents a downloadable academic file record
type Resource struct {
	ID            int64         `json:"id"`
	DepartmentID  int64         `json:"departmentId"`
	Title         string        `json:"title"`
	Description   *string       `json:"description,omitempty"`
	Level         ResourceLevel `json:"level"`
	Type          ResourceType  `json:"type"`
	FileURL       *string       `json:"fileUrl,omitempty"`
	FileType      *string       `json:"fileType,omitempty"`
	FileSize      *string       `json:"fileSize,omitempty"`
	CourseCode    *string       `json:"courseCode,omitempty"`
	Author        *string       `json:"author,omitempty"`
	Year          *int          `json:"year,omitempty"`
	Supervisor    *string       `json:"supervisor,omitempty"`
	DownloadCount int64         `json:"downloadCount"`
	CreatedBy     *int64        `json:"createdBy,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`

	// Relations
	Department *Department `json:"department,omitempty"`
}

// ResourceDownload is an append-only audit record of a resource download.
// UserID is nil for anonymous downloads.
type ResourceDownload struct {
	ID           int64     `json:"id"`
	ResourceID   int64     `json:"resourceId"`
	UserID       *int64    `json:"userId,omitempty"`
	DownloadedAt time.Time `json:"downloadedAt"`

	// Relations
	Resource *Resource `json:"resource,omitempty"`
}

// Bookmark is a user's saved reference to a resource, unique per (user, resource)
type Bookmark struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	ResourceID int64     `json:"resourceId"`
	CreatedAt  time.Time `json:"createdAt"`

	// Relations
	Resource *Resource `json:"resource,omitempty"`
}
