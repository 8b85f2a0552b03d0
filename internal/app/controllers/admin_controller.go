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

// AdminController handles back-office endpoints
type AdminController struct {
	adminService *services.AdminService
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService *services.AdminService) *AdminController {
	return &AdminController{
		adminService: adminService,
	}
}

// GetStats godoc
// @Summary Dashboard statistics
// @Description Returns content counters and a host health snapshot
// @Tags admin
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.AdminStatsResponse}
// @Security BearerAuth
// @Router /admin/stats [get]
func (co *AdminController) GetStats(c *gin.Context) {
	stats, err := co.adminService.GetStats(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Data:      stats,
		Timestamp: time.Now(),
	})
}

// ListUsers godoc
// @Summary List user accounts
// @Description Back-office user listing with profile names and role grants
// @Tags admin
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.AdminUserListResponse}
// @Security BearerAuth
// @Router /admin/users [get]
func (co *AdminController) ListUsers(c *gin.Context) {
	page, size := helpers.ParsePaginationParams(c)

	users, total, err := co.adminService.ListUsers(c.Request.Context(), page, size)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.AdminUserListResponse{
			Users:      users,
			Pagination: helpers.NewPaginationInfo(total, page, size),
		},
		Timestamp: time.Now(),
	})
}

// GrantRole godoc
// @Summary Grant a role
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body dto.GrantRoleRequest true "Role to grant"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{id}/roles [post]
func (co *AdminController) GrantRole(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.GrantRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := co.adminService.GrantRole(c.Request.Context(), userID, req.Role); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Role granted"},
		Timestamp: time.Now(),
	})
}

// RevokeRole godoc
// @Summary Revoke a role
// @Tags admin
// @Produce json
// @Param id path int true "User ID"
// @Param role path string true "Role to revoke"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{id}/roles/{role} [delete]
func (co *AdminController) RevokeRole(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := co.adminService.RevokeRole(c.Request.Context(), userID, c.Param("role")); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Role revoked"},
		Timestamp: time.Now(),
	})
}

// SetUserActive godoc
// @Summary Enable or disable an account
// @Description Disabling an account revokes all of its refresh tokens
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body dto.SetUserActiveRequest true "Active flag"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{id}/active [put]
func (co *AdminController) SetUserActive(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.SetUserActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := co.adminService.SetUserActive(c.Request.Context(), userID, *req.IsActive); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Account updated"},
		Timestamp: time.Now(),
	})
}
