package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sesa/portal/internal/app/models"
	"github.com/sesa/portal/internal/app/models/dto"
	"github.com/sesa/portal/internal/app/repositories"
	"github.com/sesa/portal/internal/pkg/apperrors"
	"github.com/sesa/portal/internal/pkg/cache"
)

// ErrArticleValidation marks invalid article input
var ErrArticleValidation = errors.New("article validation failed")

// ArticleStore is the article persistence used by ArticleService
type ArticleStore interface {
	GetAll(ctx context.Context, page, pageSize int, filters repositories.ArticleFilters) ([]models.Article, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Article, error)
	Create(ctx context.Context, article *models.Article) error
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, id int64) error
}

// EngagementCounter reads like and comment tallies for articles
type EngagementCounter interface {
	CountLikes(ctx context.Context, articleID int64) (int64, error)
	CountComments(ctx context.Context, articleID int64) (int64, error)
	LikeExists(ctx context.Context, articleID, userID int64) (bool, error)
}

// ArticleService handles newspaper article operations
type ArticleService struct {
	articleStore   ArticleStore
	engagement     EngagementCounter
	departmentRepo DepartmentChecker
	counters       *cache.CounterCache
	logger         zerolog.Logger
}

// NewArticleService creates a new article service
func NewArticleService(
	articleStore ArticleStore,
	engagement EngagementCounter,
	departmentRepo DepartmentChecker,
	counters *cache.CounterCache,
	logger zerolog.Logger,
) *ArticleService {
	return &ArticleService{
		articleStore:   articleStore,
		engagement:     engagement,
		departmentRepo: departmentRepo,
		counters:       counters,
		logger:         logger,
	}
}

// ListPublished retrieves published articles for the public feed.
// Whatever status the caller asked for, only published pieces leave
// this method.
func (s *ArticleService) ListPublished(ctx context.Context, page, pageSize int, req dto.ArticleFilterRequest, viewerID *int64) ([]dto.ArticleResponse, int64, error) {
	published := models.StatusPublished
	filters := repositories.ArticleFilters{
		DepartmentID: req.DepartmentID,
		Status:       &published,
		Search:       req.Search,
	}

	articles, total, err := s.articleStore.GetAll(ctx, page, pageSize, filters)
	if err != nil {
		return nil, 0, err
	}

	return s.decorate(ctx, articles, viewerID), total, nil
}

// ListAll retrieves articles in any status for the back-office
func (s *ArticleService) ListAll(ctx context.Context, page, pageSize int, req dto.ArticleFilterRequest) ([]dto.ArticleResponse, int64, error) {
	filters := repositories.ArticleFilters{
		DepartmentID: req.DepartmentID,
		Search:       req.Search,
	}

	if req.Status != nil && *req.Status != "" {
		status := models.ArticleStatus(*req.Status)
		if !models.ValidArticleStatus(status) {
			return nil, 0, fmt.Errorf("%w: unknown status %q", ErrArticleValidation, *req.Status)
		}
		filters.Status = &status
	}

	articles, total, err := s.articleStore.GetAll(ctx, page, pageSize, filters)
	if err != nil {
		return nil, 0, err
	}

	return s.decorate(ctx, articles, nil), total, nil
}

// GetArticle retrieves one article. Unpublished pieces are only
// visible when includeUnpublished is set (back-office callers).
func (s *ArticleService) GetArticle(ctx context.Context, id int64, viewerID *int64, includeUnpublished bool) (*dto.ArticleResponse, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid article ID", ErrArticleValidation)
	}

	article, err := s.articleStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if article.Status != models.StatusPublished && !includeUnpublished {
		return nil, apperrors.ErrArticleNotFound
	}

	resp := s.decorateOne(ctx, article, viewerID)
	return &resp, nil
}

func (s *ArticleService) validateArticleInput(ctx context.Context, departmentID int64, title, author, status string) (models.ArticleStatus, error) {
	if strings.TrimSpace(title) == "" {
		return "", fmt.Errorf("%w: title cannot be empty", ErrArticleValidation)
	}

	if strings.TrimSpace(author) == "" {
		return "", fmt.Errorf("%w: author cannot be empty", ErrArticleValidation)
	}

	parsedStatus := models.ArticleStatus(status)
	if !models.ValidArticleStatus(parsedStatus) {
		return "", fmt.Errorf("%w: unknown status %q", ErrArticleValidation, status)
	}

	exists, err := s.departmentRepo.ExistsByID(ctx, departmentID)
	if err != nil {
		return "", fmt.Errorf("error checking department: %w", err)
	}
	if !exists {
		return "", apperrors.ErrDepartmentNotFound
	}

	return parsedStatus, nil
}

// CreateArticle stores a new article
func (s *ArticleService) CreateArticle(ctx context.Context, req *dto.CreateArticleRequest, createdBy int64) (*models.Article, error) {
	status, err := s.validateArticleInput(ctx, req.DepartmentID, req.Title, req.Author, req.Status)
	if err != nil {
		return nil, err
	}

	article := &models.Article{
		DepartmentID: req.DepartmentID,
		Title:        strings.TrimSpace(req.Title),
		Content:      req.Content,
		Excerpt:      req.Excerpt,
		ImageURL:     req.ImageURL,
		Author:       strings.TrimSpace(req.Author),
		Status:       status,
		ReadTime:     req.ReadTime,
		Tags:         req.Tags,
		CreatedBy:    &createdBy,
	}

	if err := s.articleStore.Create(ctx, article); err != nil {
		return nil, err
	}

	return article, nil
}

// UpdateArticle updates an existing article
func (s *ArticleService) UpdateArticle(ctx context.Context, id int64, req *dto.UpdateArticleRequest) (*models.Article, error) {
	status, err := s.validateArticleInput(ctx, req.DepartmentID, req.Title, req.Author, req.Status)
	if err != nil {
		return nil, err
	}

	article, err := s.articleStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	article.DepartmentID = req.DepartmentID
	article.Title = strings.TrimSpace(req.Title)
	article.Content = req.Content
	article.Excerpt = req.Excerpt
	article.ImageURL = req.ImageURL
	article.Author = strings.TrimSpace(req.Author)
	article.Status = status
	article.ReadTime = req.ReadTime
	article.Tags = req.Tags

	if err := s.articleStore.Update(ctx, article); err != nil {
		return nil, err
	}

	return article, nil
}

// DeleteArticle removes an article
func (s *ArticleService) DeleteArticle(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid article ID", ErrArticleValidation)
	}

	return s.articleStore.Delete(ctx, id)
}

// decorate fills engagement counters for a page of articles
func (s *ArticleService) decorate(ctx context.Context, articles []models.Article, viewerID *int64) []dto.ArticleResponse {
	responses := make([]dto.ArticleResponse, 0, len(articles))
	for i := range articles {
		responses = append(responses, s.decorateOne(ctx, &articles[i], viewerID))
	}
	return responses
}

func (s *ArticleService) decorateOne(ctx context.Context, article *models.Article, viewerID *int64) dto.ArticleResponse {
	resp := dto.FromArticle(article)

	likeCount, ok := s.counters.GetArticleLikes(ctx, article.ID)
	if !ok {
		var err error
		likeCount, err = s.engagement.CountLikes(ctx, article.ID)
		if err != nil {
			s.logger.Warn().Err(err).Int64("articleID", article.ID).Msg("Failed to count likes")
		} else {
			s.counters.SetArticleLikes(ctx, article.ID, likeCount)
		}
	}
	resp.LikeCount = likeCount

	commentCount, err := s.engagement.CountComments(ctx, article.ID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("articleID", article.ID).Msg("Failed to count comments")
	}
	resp.CommentCount = commentCount

	if viewerID != nil {
		liked, err := s.engagement.LikeExists(ctx, article.ID, *viewerID)
		if err == nil {
			resp.LikedByMe = liked
		}
	}

	return resp
}
