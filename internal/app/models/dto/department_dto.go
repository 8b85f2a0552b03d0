package dto

import "github.com/sesa/portal/internal/app/models"

// DepartmentResponse represents basic department information
type DepartmentResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	Color       *string `json:"color,omitempty"`
}

// CreateDepartmentRequest represents department creation data
type CreateDepartmentRequest struct {
	Name        string  `json:"name" binding:"required"`
	Slug        string  `json:"slug" binding:"required,lowercase"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	Color       *string `json:"color,omitempty"`
}

// UpdateDepartmentRequest represents department update data.
// Slug changes are rejected while any resource or article still
// references the department.
type UpdateDepartmentRequest struct {
	Name        string  `json:"name" binding:"required"`
	Slug        string  `json:"slug" binding:"required,lowercase"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	Color       *string `json:"color,omitempty"`
}

// DepartmentListResponse represents a list of departments
type DepartmentListResponse struct {
	Departments []DepartmentResponse `json:"departments"`
}

// FromDepartment converts a models.Department to a DepartmentResponse
func FromDepartment(d *models.Department) DepartmentResponse {
	if d == nil {
		return DepartmentResponse{}
	}
	return DepartmentResponse{
		ID:          d.ID,
		Name:        d.Name,
		Slug:        d.Slug,
		Description: d.Description,
		Icon:        d.Icon,
		Color:       d.Color,
	}
}
