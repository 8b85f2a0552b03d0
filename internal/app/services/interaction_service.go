package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sesa/portal/internal/app/models"
	"github.com/sesa/portal/internal/app/models/dto"
	"github.com/sesa/portal/internal/pkg/apperrors"
	"github.com/sesa/portal/internal/pkg/cache"
)

// InteractionStore is the engagement persistence used by InteractionService
type InteractionStore interface {
	LikeExists(ctx context.Context, articleID, userID int64) (bool, error)
	CreateLike(ctx context.Context, articleID, userID int64) error
	DeleteLike(ctx context.Context, articleID, userID int64) error
	CountLikes(ctx context.Context, articleID int64) (int64, error)

	BookmarkExists(ctx context.Context, resourceID, userID int64) (bool, error)
	CreateBookmark(ctx context.Context, resourceID, userID int64) error
	DeleteBookmark(ctx context.Context, resourceID, userID int64) error
	GetBookmarkedResourceIDs(ctx context.Context, userID int64) ([]int64, error)

	GetRecentDownloadsByUser(ctx context.Context, userID int64, limit int) ([]models.ResourceDownload, error)

	CreateComment(ctx context.Context, comment *models.ArticleComment) error
	GetCommentByID(ctx context.Context, id int64) (*models.ArticleComment, error)
	GetCommentsByArticleID(ctx context.Context, articleID int64) ([]models.ArticleComment, error)
	DeleteComment(ctx context.Context, id int64) error
}

// ArticleReader fetches articles for interaction checks
type ArticleReader interface {
	GetByID(ctx context.Context, id int64) (*models.Article, error)
}

// ResourceReader fetches resources for interaction checks
type ResourceReader interface {
	GetByID(ctx context.Context, id int64) (*models.Resource, error)
}

// InteractionService handles likes, bookmarks and comments
type InteractionService struct {
	interactions InteractionStore
	articles     ArticleReader
	resources    ResourceReader
	counters     *cache.CounterCache
	logger       zerolog.Logger
}

// NewInteractionService creates a new interaction service
func NewInteractionService(
	interactions InteractionStore,
	articles ArticleReader,
	resources ResourceReader,
	counters *cache.CounterCache,
	logger zerolog.Logger,
) *InteractionService {
	return &InteractionService{
		interactions: interactions,
		articles:     articles,
		resources:    resources,
		counters:     counters,
		logger:       logger,
	}
}

// requirePublishedArticle loads an article and hides unpublished ones
func (s *InteractionService) requirePublishedArticle(ctx context.Context, articleID int64) (*models.Article, error) {
	article, err := s.articles.GetByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if article.Status != models.StatusPublished {
		return nil, apperrors.ErrArticleNotFound
	}
	return article, nil
}

// ToggleLike flips the like state for a member on a published article
// and returns the resulting state and count
func (s *InteractionService) ToggleLike(ctx context.Context, articleID, userID int64) (*dto.LikeToggleResponse, error) {
	if _, err := s.requirePublishedArticle(ctx, articleID); err != nil {
		return nil, err
	}

	liked, err := s.interactions.LikeExists(ctx, articleID, userID)
	if err != nil {
		return nil, err
	}

	if liked {
		err = s.interactions.DeleteLike(ctx, articleID, userID)
	} else {
		err = s.interactions.CreateLike(ctx, articleID, userID)
	}
	if err != nil {
		return nil, err
	}

	cached, cachedOK := s.counters.GetArticleLikes(ctx, articleID)
	s.counters.InvalidateArticleLikes(ctx, articleID)

	resp := &dto.LikeToggleResponse{Liked: !liked}

	count, err := s.interactions.CountLikes(ctx, articleID)
	switch {
	case err == nil:
		s.counters.SetArticleLikes(ctx, articleID, count)
		resp.LikeCount = &count
	case cachedOK:
		// Estimate from the pre-toggle cached value rather than
		// reporting zero on a liked article
		estimate := cached + 1
		if liked {
			estimate = cached - 1
		}
		if estimate < 0 {
			estimate = 0
		}
		resp.LikeCount = &estimate
		s.logger.Warn().Err(err).Int64("articleID", articleID).Msg("Failed to count likes after toggle, using cached estimate")
	default:
		s.logger.Warn().Err(err).Int64("articleID", articleID).Msg("Failed to count likes after toggle")
	}

	return resp, nil
}

// ToggleBookmark flips the bookmark state for a member on a resource
func (s *InteractionService) ToggleBookmark(ctx context.Context, resourceID, userID int64) (bool, error) {
	if _, err := s.resources.GetByID(ctx, resourceID); err != nil {
		return false, err
	}

	bookmarked, err := s.interactions.BookmarkExists(ctx, resourceID, userID)
	if err != nil {
		return false, err
	}

	if bookmarked {
		err = s.interactions.DeleteBookmark(ctx, resourceID, userID)
	} else {
		err = s.interactions.CreateBookmark(ctx, resourceID, userID)
	}
	if err != nil {
		return false, err
	}

	return !bookmarked, nil
}

// GetBookmarkedResources returns the member's bookmarked resources,
// most recently saved first
func (s *InteractionService) GetBookmarkedResources(ctx context.Context, userID int64) ([]models.Resource, error) {
	ids, err := s.interactions.GetBookmarkedResourceIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	resources := make([]models.Resource, 0, len(ids))
	for _, id := range ids {
		resource, err := s.resources.GetByID(ctx, id)
		if err != nil {
			// A bookmark can outlive its resource; skip the orphan
			s.logger.Debug().Err(err).Int64("resourceID", id).Msg("Skipping bookmarked resource")
			continue
		}
		resources = append(resources, *resource)
	}

	return resources, nil
}

// DownloadHistoryLimit bounds how many events the profile history shows
const DownloadHistoryLimit = 50

// GetDownloadHistory returns the member's latest resource downloads,
// newest first
func (s *InteractionService) GetDownloadHistory(ctx context.Context, userID int64) ([]models.ResourceDownload, error) {
	return s.interactions.GetRecentDownloadsByUser(ctx, userID, DownloadHistoryLimit)
}

// AddComment posts a comment on a published article
func (s *InteractionService) AddComment(ctx context.Context, articleID, userID int64, content string) (*models.ArticleComment, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: comment cannot be empty", apperrors.ErrValidationFailed)
	}

	if _, err := s.requirePublishedArticle(ctx, articleID); err != nil {
		return nil, err
	}

	comment := &models.ArticleComment{
		ArticleID: articleID,
		UserID:    userID,
		Content:   content,
	}

	if err := s.interactions.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// GetComments returns all comments on an article in posting order
func (s *InteractionService) GetComments(ctx context.Context, articleID int64) ([]models.ArticleComment, error) {
	if _, err := s.requirePublishedArticle(ctx, articleID); err != nil {
		return nil, err
	}

	return s.interactions.GetCommentsByArticleID(ctx, articleID)
}

// DeleteComment removes a comment. Only the author or an admin may
// delete it.
func (s *InteractionService) DeleteComment(ctx context.Context, commentID, userID int64, isAdmin bool) error {
	comment, err := s.interactions.GetCommentByID(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.UserID != userID && !isAdmin {
		return apperrors.ErrPermissionDenied
	}

	return s.interactions.DeleteComment(ctx, commentID)
}
