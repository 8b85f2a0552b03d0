package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sesa/portal/internal/app/models"
	"github.com/sesa/portal/internal/app/models/dto"
	"github.com/sesa/portal/internal/app/services"
	"github.com/sesa/portal/internal/middleware"
)

// DepartmentController handles department endpoints
type DepartmentController struct {
	departmentService *services.DepartmentService
}

// NewDepartmentController creates a new DepartmentController
func NewDepartmentController(departmentService *services.DepartmentService) *DepartmentController {
	return &DepartmentController{
		departmentService: departmentService,
	}
}

// GetAllDepartments godoc
// @Summary List departments
// @Description Returns all departments ordered by name
// @Tags departments
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.DepartmentListResponse}
// @Router /departments [get]
func (co *DepartmentController) GetAllDepartments(c *gin.Context) {
	departments, err := co.departmentService.GetAllDepartments(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	responses := make([]dto.DepartmentResponse, 0, len(departments))
	for _, department := range departments {
		responses = append(responses, dto.FromDepartment(department))
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.DepartmentListResponse{Departments: responses},
		Timestamp: time.Now(),
	})
}

// GetDepartment godoc
// @Summary Get a department
// @Description Looks up a department by numeric ID or by URL slug
// @Tags departments
// @Produce json
// @Param id path string true "Department ID or slug"
// @Success 200 {object} dto.APIResponse{data=dto.DepartmentResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /departments/{id} [get]
func (co *DepartmentController) GetDepartment(c *gin.Context) {
	key := c.Param("id")

	var department *models.Department
	var err error
	if id, convErr := strconv.ParseInt(key, 10, 64); convErr == nil && id > 0 {
		department, err = co.departmentService.GetDepartmentByID(c.Request.Context(), id)
	} else {
		department, err = co.departmentService.GetDepartmentBySlug(c.Request.Context(), key)
	}
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromDepartment(department),
		Timestamp: time.Now(),
	})
}

// CreateDepartment godoc
// @Summary Create a department
// @Tags departments
// @Accept json
// @Produce json
// @Param request body dto.CreateDepartmentRequest true "Department data"
// @Success 201 {object} dto.APIResponse{data=dto.DepartmentResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/departments [post]
func (co *DepartmentController) CreateDepartment(c *gin.Context) {
	var req dto.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	department := &models.Department{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
	}

	if err := co.departmentService.CreateDepartment(c.Request.Context(), department); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.FromDepartment(department),
		Timestamp: time.Now(),
	})
}

// UpdateDepartment godoc
// @Summary Update a department
// @Description Updates a department. The slug is frozen while content still references the department.
// @Tags departments
// @Accept json
// @Produce json
// @Param id path int true "Department ID"
// @Param request body dto.UpdateDepartmentRequest true "Department data"
// @Success 200 {object} dto.APIResponse{data=dto.DepartmentResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/departments/{id} [put]
func (co *DepartmentController) UpdateDepartment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	department := &models.Department{
		ID:          id,
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
	}

	if err := co.departmentService.UpdateDepartment(c.Request.Context(), department); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromDepartment(department),
		Timestamp: time.Now(),
	})
}

// DeleteDepartment godoc
// @Summary Delete a department
// @Description Deletes a department with no associated content
// @Tags departments
// @Produce json
// @Param id path int true "Department ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/departments/{id} [delete]
func (co *DepartmentController) DeleteDepartment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := co.departmentService.DeleteDepartment(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Department deleted"},
		Timestamp: time.Now(),
	})
}
