package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	appauth "github.com/sesa/portal/internal/app/auth"
	"github.com/sesa/portal/internal/app/models/dto"
	"github.com/sesa/portal/internal/app/services"
	"github.com/sesa/portal/internal/middleware"
)

// InteractionController handles likes, bookmarks and comments
type InteractionController struct {
	interactionService *services.InteractionService
	authorizer         *appauth.Authorizer
}

// NewInteractionController creates a new InteractionController
func NewInteractionController(interactionService *services.InteractionService, authorizer *appauth.Authorizer) *InteractionController {
	return &InteractionController{
		interactionService: interactionService,
		authorizer:         authorizer,
	}
}

// ToggleLike godoc
// @Summary Toggle a like on an article
// @Description Likes the article if not yet liked, removes the like otherwise
// @Tags interactions
// @Produce json
// @Param id path int true "Article ID"
// @Success 200 {object} dto.APIResponse{data=dto.LikeToggleResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /articles/{id}/like [post]
func (co *InteractionController) ToggleLike(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	articleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := co.interactionService.ToggleLike(c.Request.Context(), articleID, userID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// GetComments godoc
// @Summary List comments on an article
// @Description Returns all comments in posting order
// @Tags interactions
// @Produce json
// @Param id path int true "Article ID"
// @Success 200 {object} dto.APIResponse{data=dto.CommentListResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /articles/{id}/comments [get]
func (co *InteractionController) GetComments(c *gin.Context) {
	articleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	comments, err := co.interactionService.GetComments(c.Request.Context(), articleID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, dto.FromComment(&comments[i]))
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.CommentListResponse{Comments: responses},
		Timestamp: time.Now(),
	})
}

// AddComment godoc
// @Summary Comment on an article
// @Tags interactions
// @Accept json
// @Produce json
// @Param id path int true "Article ID"
// @Param request body dto.CreateCommentRequest true "Comment content"
// @Success 201 {object} dto.APIResponse{data=dto.CommentResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /articles/{id}/comments [post]
func (co *InteractionController) AddComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	articleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	comment, err := co.interactionService.AddComment(c.Request.Context(), articleID, userID, req.Content)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.FromComment(comment),
		Timestamp: time.Now(),
	})
}

// DeleteComment godoc
// @Summary Delete a comment
// @Description Removes a comment. Only its author or an admin may delete it.
// @Tags interactions
// @Produce json
// @Param id path int true "Comment ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /comments/{id} [delete]
func (co *InteractionController) DeleteComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	commentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	isAdmin, err := co.authorizer.IsAdmin(c.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := co.interactionService.DeleteComment(c.Request.Context(), commentID, userID, isAdmin); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Comment deleted"},
		Timestamp: time.Now(),
	})
}

// ToggleBookmark godoc
// @Summary Toggle a bookmark on a resource
// @Tags interactions
// @Produce json
// @Param id path int true "Resource ID"
// @Success 200 {object} dto.APIResponse{data=map[string]bool}
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /resources/{id}/bookmark [post]
func (co *InteractionController) ToggleBookmark(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	resourceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	bookmarked, err := co.interactionService.ToggleBookmark(c.Request.Context(), resourceID, userID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Data:      gin.H{"bookmarked": bookmarked},
		Timestamp: time.Now(),
	})
}

// GetBookmarks godoc
// @Summary List bookmarked resources
// @Description Returns the member's bookmarked resources, most recently saved first
// @Tags interactions
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.ResourceResponse}
// @Security BearerAuth
// @Router /me/bookmarks [get]
func (co *InteractionController) GetBookmarks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	resources, err := co.interactionService.GetBookmarkedResources(c.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	responses := make([]dto.ResourceResponse, 0, len(resources))
	for i := range resources {
		responses = append(responses, dto.FromResource(&resources[i]))
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Data:      responses,
		Timestamp: time.Now(),
	})
}

// GetDownloads godoc
// @Summary List recent downloads
// @Description Returns the member's latest recorded downloads, newest first
// @Tags interactions
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.DownloadHistoryItem}
// @Security BearerAuth
// @Router /me/downloads [get]
func (co *InteractionController) GetDownloads(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	downloads, err := co.interactionService.GetDownloadHistory(c.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	responses := make([]dto.DownloadHistoryItem, 0, len(downloads))
	for i := range downloads {
		responses = append(responses, dto.FromDownload(&downloads[i]))
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Data:      responses,
		Timestamp: time.Now(),
	})
}
