package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sesa/portal/internal/app/models/dto"
	"github.com/sesa/portal/internal/app/services"
	"github.com/sesa/portal/internal/middleware"
	"github.com/sesa/portal/internal/pkg/helpers"
)

// ProfileController handles member profile and directory endpoints
type ProfileController struct {
	profileService *services.ProfileService
}

// NewProfileController creates a new ProfileController
func NewProfileController(profileService *services.ProfileService) *ProfileController {
	return &ProfileController{
		profileService: profileService,
	}
}

// GetMyProfile godoc
// @Summary Get the signed-in member's profile
// @Tags profile
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /me/profile [get]
func (co *ProfileController) GetMyProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := co.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromProfile(profile),
		Timestamp: time.Now(),
	})
}

// UpdateMyProfile godoc
// @Summary Update the signed-in member's profile
// @Description Applies a partial update. Omitted fields keep their stored value.
// @Tags profile
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Profile changes"
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /me/profile [put]
func (co *ProfileController) UpdateMyProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	profile, err := co.profileService.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromProfile(profile),
		Timestamp: time.Now(),
	})
}

// GetMembers godoc
// @Summary List the member directory
// @Description Returns active members, optionally filtered by department
// @Tags profile
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Param departmentId query int false "Department filter"
// @Success 200 {object} dto.APIResponse{data=dto.MemberListResponse}
// @Security BearerAuth
// @Router /members [get]
func (co *ProfileController) GetMembers(c *gin.Context) {
	page, size := helpers.ParsePaginationParams(c)

	var departmentID *int64
	if raw := c.Query("departmentId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid departmentId parameter")
			errorDetail = errorDetail.WithField("departmentId")
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		departmentID = &id
	}

	members, total, err := co.profileService.GetMembers(c.Request.Context(), page, size, departmentID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.MemberListResponse{
			Members:    members,
			Pagination: helpers.NewPaginationInfo(total, page, size),
		},
		Timestamp: time.Now(),
	})
}
