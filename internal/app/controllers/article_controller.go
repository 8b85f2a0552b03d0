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

// ArticleController handles newspaper article endpoints
type ArticleController struct {
	articleService *services.ArticleService
}

// NewArticleController creates a new ArticleController
func NewArticleController(articleService *services.ArticleService) *ArticleController {
	return &ArticleController{
		articleService: articleService,
	}
}

// ListArticles godoc
// @Summary List published articles
// @Description Returns the public feed, newest publication first
// @Tags articles
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Param departmentId query int false "Department filter"
// @Param search query string false "Matches title and content"
// @Success 200 {object} dto.APIResponse{data=dto.ArticleListResponse}
// @Router /articles [get]
func (co *ArticleController) ListArticles(c *gin.Context) {
	var filter dto.ArticleFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		bindError(c, err)
		return
	}

	page, size := helpers.ParsePaginationParams(c)

	articles, total, err := co.articleService.ListPublished(c.Request.Context(), page, size, filter, optionalUserID(c))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.ArticleListResponse{
			Articles:   articles,
			Pagination: helpers.NewPaginationInfo(total, page, size),
		},
		Timestamp: time.Now(),
	})
}

// GetArticle godoc
// @Summary Get a published article
// @Tags articles
// @Produce json
// @Param id path int true "Article ID"
// @Success 200 {object} dto.APIResponse{data=dto.ArticleResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /articles/{id} [get]
func (co *ArticleController) GetArticle(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	article, err := co.articleService.GetArticle(c.Request.Context(), id, optionalUserID(c), false)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Data:      article,
		Timestamp: time.Now(),
	})
}

// ListAllArticles godoc
// @Summary List articles in any status
// @Description Back-office listing including drafts and pieces in review
// @Tags articles
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Param departmentId query int false "Department filter"
// @Param status query string false "Status filter (draft, review, published)"
// @Success 200 {object} dto.APIResponse{data=dto.ArticleListResponse}
// @Security BearerAuth
// @Router /admin/articles [get]
func (co *ArticleController) ListAllArticles(c *gin.Context) {
	var filter dto.ArticleFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		bindError(c, err)
		return
	}

	page, size := helpers.ParsePaginationParams(c)

	articles, total, err := co.articleService.ListAll(c.Request.Context(), page, size, filter)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.ArticleListResponse{
			Articles:   articles,
			Pagination: helpers.NewPaginationInfo(total, page, size),
		},
		Timestamp: time.Now(),
	})
}

// GetArticleDraft godoc
// @Summary Get an article in any status
// @Tags articles
// @Produce json
// @Param id path int true "Article ID"
// @Success 200 {object} dto.APIResponse{data=dto.ArticleResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/articles/{id} [get]
func (co *ArticleController) GetArticleDraft(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	article, err := co.articleService.GetArticle(c.Request.Context(), id, optionalUserID(c), true)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Data:      article,
		Timestamp: time.Now(),
	})
}

// CreateArticle godoc
// @Summary Create an article
// @Description Stores a new article. Creating in published status stamps the publication time.
// @Tags articles
// @Accept json
// @Produce json
// @Param request body dto.CreateArticleRequest true "Article data"
// @Success 201 {object} dto.APIResponse{data=dto.ArticleResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/articles [post]
func (co *ArticleController) CreateArticle(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	article, err := co.articleService.CreateArticle(c.Request.Context(), &req, userID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.FromArticle(article),
		Timestamp: time.Now(),
	})
}

// UpdateArticle godoc
// @Summary Update an article
// @Description Updates an article. The first transition to published stamps the publication time; later edits keep it.
// @Tags articles
// @Accept json
// @Produce json
// @Param id path int true "Article ID"
// @Param request body dto.UpdateArticleRequest true "Article data"
// @Success 200 {object} dto.APIResponse{data=dto.ArticleResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/articles/{id} [put]
func (co *ArticleController) UpdateArticle(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	article, err := co.articleService.UpdateArticle(c.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromArticle(article),
		Timestamp: time.Now(),
	})
}

// DeleteArticle godoc
// @Summary Delete an article
// @Tags articles
// @Produce json
// @Param id path int true "Article ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/articles/{id} [delete]
func (co *ArticleController) DeleteArticle(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := co.articleService.DeleteArticle(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Article deleted"},
		Timestamp: time.Now(),
	})
}
