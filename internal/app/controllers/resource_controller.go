package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sesa/portal/internal/app/models/dto"
	"github.com/sesa/portal/internal/app/services"
	"github.com/sesa/portal/internal/middleware"
	"github.com/sesa/portal/internal/pkg/helpers"
)

// ResourceController handles library resource endpoints
type ResourceController struct {
	resourceService *services.ResourceService
}

// NewResourceController creates a new ResourceController
func NewResourceController(resourceService *services.ResourceService) *ResourceController {
	return &ResourceController{
		resourceService: resourceService,
	}
}

// ListResources godoc
// @Summary List library resources
// @Description Returns resources filtered by department, level, type and free text search
// @Tags resources
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Param departmentId query int false "Department filter"
// @Param level query string false "Level filter (100L..400L)"
// @Param type query string false "Type filter"
// @Param search query string false "Matches title, description and course code"
// @Success 200 {object} dto.APIResponse{data=dto.ResourceListResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Router /resources [get]
func (co *ResourceController) ListResources(c *gin.Context) {
	var filter dto.ResourceFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		bindError(c, err)
		return
	}

	page, size := helpers.ParsePaginationParams(c)

	resources, total, err := co.resourceService.ListResources(c.Request.Context(), page, size, filter)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	responses := make([]dto.ResourceResponse, 0, len(resources))
	for i := range resources {
		responses = append(responses, dto.FromResource(&resources[i]))
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.ResourceListResponse{
			Resources:  responses,
			Pagination: helpers.NewPaginationInfo(total, page, size),
		},
		Timestamp: time.Now(),
	})
}

// GetResource godoc
// @Summary Get a resource
// @Tags resources
// @Produce json
// @Param id path int true "Resource ID"
// @Success 200 {object} dto.APIResponse{data=dto.ResourceResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /resources/{id} [get]
func (co *ResourceController) GetResource(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	resource, err := co.resourceService.GetResourceByID(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromResource(resource),
		Timestamp: time.Now(),
	})
}

// DownloadResource godoc
// @Summary Record a download
// @Description Logs a download event, bumps the counter and returns the file location
// @Tags resources
// @Produce json
// @Param id path int true "Resource ID"
// @Success 200 {object} dto.APIResponse{data=dto.DownloadResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /resources/{id}/download [post]
func (co *ResourceController) DownloadResource(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := co.resourceService.RecordDownload(c.Request.Context(), id, optionalUserID(c))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// CreateResource godoc
// @Summary Create a resource
// @Description Stores a new library resource with an optional multipart file upload
// @Tags resources
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param departmentId formData int true "Department ID"
// @Param level formData string true "Level (100L..400L)"
// @Param type formData string true "Resource type"
// @Param file formData file false "Resource file"
// @Success 201 {object} dto.APIResponse{data=dto.ResourceResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/resources [post]
func (co *ResourceController) CreateResource(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateResourceRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}

	// The file is optional; link-only resources carry no upload
	file, err := c.FormFile("file")
	if err != nil {
		file = nil
	}

	resource, err := co.resourceService.CreateResource(c.Request.Context(), &req, file, userID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.FromResource(resource),
		Timestamp: time.Now(),
	})
}

// UpdateResource godoc
// @Summary Update a resource
// @Description Updates resource metadata. An uploaded file replaces the stored one.
// @Tags resources
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Resource ID"
// @Success 200 {object} dto.APIResponse{data=dto.ResourceResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/resources/{id} [put]
func (co *ResourceController) UpdateResource(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resource, err := co.resourceService.UpdateResource(c.Request.Context(), id, &req, nil)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromResource(resource),
		Timestamp: time.Now(),
	})
}

// ReplaceResourceFile godoc
// @Summary Replace a resource file
// @Description Uploads a new file for the resource, keeping its metadata
// @Tags resources
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Resource ID"
// @Param file formData file true "Resource file"
// @Success 200 {object} dto.APIResponse{data=dto.ResourceResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/resources/{id}/file [put]
func (co *ResourceController) ReplaceResourceFile(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "File upload required")
		errorDetail = errorDetail.WithField("file")
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resource, err := co.resourceService.GetResourceByID(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	req := dto.UpdateResourceRequest{
		Title:        resource.Title,
		Description:  resource.Description,
		DepartmentID: resource.DepartmentID,
		Level:        string(resource.Level),
		Type:         string(resource.Type),
		CourseCode:   resource.CourseCode,
		Author:       resource.Author,
		Supervisor:   resource.Supervisor,
		Year:         resource.Year,
	}

	updated, err := co.resourceService.UpdateResource(c.Request.Context(), id, &req, file)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromResource(updated),
		Timestamp: time.Now(),
	})
}

// DeleteResource godoc
// @Summary Delete a resource
// @Description Removes a resource and its stored file
// @Tags resources
// @Produce json
// @Param id path int true "Resource ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/resources/{id} [delete]
func (co *ResourceController) DeleteResource(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := co.resourceService.DeleteResource(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Resource deleted"},
		Timestamp: time.Now(),
	})
}
