package dto

import (
	"time"

	"github.com/sesa/portal/internal/app/models"
)

// CreateResourceRequest represents the request to create a library resource.
// The file itself arrives as a multipart upload alongside these fields.
type CreateResourceRequest struct {
	Title        string  `form:"title" binding:"required"`
	Description  *string `form:"description"`
	DepartmentID int64   `form:"departmentId" binding:"required,min=1"`
	Level        string  `form:"level" binding:"required"`
	Type         string  `form:"type" binding:"required"`
	CourseCode   *string `form:"courseCode"`
	Author       *string `form:"author"`
	Supervisor   *string `form:"supervisor"`
	Year         *int    `form:"year" binding:"omitempty,min=1980,max=2100"`
}

// UpdateResourceRequest represents the request to update a library resource
type UpdateResourceRequest struct {
	Title        string  `json:"title" binding:"required"`
	Description  *string `json:"description"`
	DepartmentID int64   `json:"departmentId" binding:"required,min=1"`
	Level        string  `json:"level" binding:"required"`
	Type         string  `json:"type" binding:"required"`
	CourseCode   *string `json:"courseCode"`
	Author       *string `json:"author"`
	Supervisor   *string `json:"supervisor"`
	Year         *int    `json:"year" binding:"omitempty,min=1980,max=2100"`
}

// ResourceFilterRequest carries the listing filters. All fields are
// optional; Search matches title, description and course code.
type ResourceFilterRequest struct {
	DepartmentID *int64  `form:"departmentId"`
	Level        *string `form:"level"`
	Type         *string `form:"type"`
	Search       *string `form:"search"`
}

// ResourceResponse represents the response for a library resource
type ResourceResponse struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Description    *string   `json:"description,omitempty"`
	DepartmentID   int64     `json:"departmentId"`
	DepartmentName string    `json:"departmentName,omitempty"`
	Level          string    `json:"level"`
	Type           string    `json:"type"`
	FileURL        *string   `json:"fileUrl,omitempty"`
	FileType       *string   `json:"fileType,omitempty"`
	FileSize       *string   `json:"fileSize,omitempty"`
	CourseCode     *string   `json:"courseCode,omitempty"`
	Author         *string   `json:"author,omitempty"`
	Supervisor     *string   `json:"supervisor,omitempty"`
	Year           *int      `json:"year,omitempty"`
	DownloadCount  int64     `json:"downloadCount"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ResourceListResponse represents the response for a list of resources with pagination
type ResourceListResponse struct {
	Resources  []ResourceResponse `json:"resources"`
	Pagination PaginationInfo     `json:"pagination"`
}

// DownloadResponse is returned after a download is recorded
type DownloadResponse struct {
	FileURL       string `json:"fileUrl"`
	DownloadCount int64  `json:"downloadCount"`
}

// DownloadHistoryItem is one entry in a member's download history
type DownloadHistoryItem struct {
	ID           int64            `json:"id"`
	DownloadedAt time.Time        `json:"downloadedAt"`
	Resource     ResourceResponse `json:"resource"`
}

// FromDownload converts a models.ResourceDownload to a DownloadHistoryItem
func FromDownload(d *models.ResourceDownload) DownloadHistoryItem {
	if d == nil {
		return DownloadHistoryItem{}
	}
	return DownloadHistoryItem{
		ID:           d.ID,
		DownloadedAt: d.DownloadedAt,
		Resource:     FromResource(d.Resource),
	}
}

// FromResource converts a models.Resource to a ResourceResponse
func FromResource(r *models.Resource) ResourceResponse {
	if r == nil {
		return ResourceResponse{}
	}

	departmentName := ""
	if r.Department != nil {
		departmentName = r.Department.Name
	}

	return ResourceResponse{
		ID:             r.ID,
		Title:          r.Title,
		Description:    r.Description,
		DepartmentID:   r.DepartmentID,
		DepartmentName: departmentName,
		Level:          string(r.Level),
		Type:           string(r.Type),
		FileURL:        r.FileURL,
		FileType:       r.FileType,
		FileSize:       r.FileSize,
		CourseCode:     r.CourseCode,
		Author:         r.Author,
		Supervisor:     r.Supervisor,
		Year:           r.Year,
		DownloadCount:  r.DownloadCount,
		CreatedAt:      r.CreatedAt,
	}
}
