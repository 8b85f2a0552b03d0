package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sesa/portal/internal/app/models"
	"github.com/sesa/portal/internal/pkg/apperrors"
)

func newInteractionServiceForTest(interactions *interactionStoreStub, articles *articleStoreStub, resources *resourceStoreStub) *InteractionService {
	if articles == nil {
		articles = newArticleStoreStub()
	}
	if resources == nil {
		resources = newResourceStoreStub()
	}
	return NewInteractionService(interactions, articles, resources, nil, zerolog.Nop())
}

func publishedArticle(id int64) *models.Article {
	return &models.Article{ID: id, DepartmentID: 1, Title: "Published", Author: "Ada", Status: models.StatusPublished}
}

func TestToggleLikeFlipsState(t *testing.T) {
	interactions := newInteractionStoreStub()
	articles := newArticleStoreStub(publishedArticle(1))
	svc := newInteractionServiceForTest(interactions, articles, nil)

	resp, err := svc.ToggleLike(context.Background(), 1, 42)
	require.NoError(t, err)
	assert.True(t, resp.Liked)
	require.NotNil(t, resp.LikeCount)
	assert.Equal(t, int64(1), *resp.LikeCount)

	resp, err = svc.ToggleLike(context.Background(), 1, 42)
	require.NoError(t, err)
	assert.False(t, resp.Liked)
	require.NotNil(t, resp.LikeCount)
	assert.Equal(t, int64(0), *resp.LikeCount)
	assert.Len(t, interactions.deletedLikes, 1)
}

func TestToggleLikeCountFailureOmitsCount(t *testing.T) {
	interactions := newInteractionStoreStub()
	interactions.countLikesErr = errors.New("count query timed out")
	articles := newArticleStoreStub(publishedArticle(1))
	svc := newInteractionServiceForTest(interactions, articles, nil)

	resp, err := svc.ToggleLike(context.Background(), 1, 42)
	require.NoError(t, err)

	assert.True(t, resp.Liked)
	assert.Nil(t, resp.LikeCount)
	assert.True(t, interactions.likes[likePair{1, 42}])
}

func TestToggleLikeHiddenForUnpublished(t *testing.T) {
	interactions := newInteractionStoreStub()
	articles := newArticleStoreStub(&models.Article{ID: 1, Status: models.StatusDraft})
	svc := newInteractionServiceForTest(interactions, articles, nil)

	_, err := svc.ToggleLike(context.Background(), 1, 42)
	assert.ErrorIs(t, err, apperrors.ErrArticleNotFound)
	assert.Empty(t, interactions.likes)
}

func TestToggleBookmarkFlipsState(t *testing.T) {
	interactions := newInteractionStoreStub()
	resources := newResourceStoreStub(&models.Resource{ID: 3, Title: "Notes", Level: models.Level100, Type: models.TypeStudyMaterial})
	svc := newInteractionServiceForTest(interactions, nil, resources)

	bookmarked, err := svc.ToggleBookmark(context.Background(), 3, 42)
	require.NoError(t, err)
	assert.True(t, bookmarked)

	bookmarked, err = svc.ToggleBookmark(context.Background(), 3, 42)
	require.NoError(t, err)
	assert.False(t, bookmarked)
	assert.Empty(t, interactions.bookmarks)
}

func TestToggleBookmarkMissingResource(t *testing.T) {
	svc := newInteractionServiceForTest(newInteractionStoreStub(), nil, newResourceStoreStub())

	_, err := svc.ToggleBookmark(context.Background(), 404, 42)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestGetBookmarkedResourcesSkipsOrphans(t *testing.T) {
	interactions := newInteractionStoreStub()
	interactions.bookmarkIDs = []int64{3, 404, 5}
	resources := newResourceStoreStub(
		&models.Resource{ID: 3, Title: "First", Level: models.Level100, Type: models.TypeStudyMaterial},
		&models.Resource{ID: 5, Title: "Second", Level: models.Level200, Type: models.TypePastQuestion},
	)
	svc := newInteractionServiceForTest(interactions, nil, resources)

	out, err := svc.GetBookmarkedResources(context.Background(), 42)
	require.NoError(t, err)

	require.Len(t, out, 2)
	assert.Equal(t, "First", out[0].Title)
	assert.Equal(t, "Second", out[1].Title)
}

func TestGetDownloadHistoryUsesLimit(t *testing.T) {
	interactions := newInteractionStoreStub()
	interactions.downloadHistory = []models.ResourceDownload{
		{ID: 2, ResourceID: 5, Resource: &models.Resource{ID: 5, Title: "Latest"}},
		{ID: 1, ResourceID: 3, Resource: &models.Resource{ID: 3, Title: "Older"}},
	}
	svc := newInteractionServiceForTest(interactions, nil, nil)

	out, err := svc.GetDownloadHistory(context.Background(), 42)
	require.NoError(t, err)

	require.Len(t, out, 2)
	assert.Equal(t, "Latest", out[0].Resource.Title)
	assert.Equal(t, DownloadHistoryLimit, interactions.lastHistoryLimit)
}

func TestAddCommentValidation(t *testing.T) {
	articles := newArticleStoreStub(publishedArticle(1))
	svc := newInteractionServiceForTest(newInteractionStoreStub(), articles, nil)

	_, err := svc.AddComment(context.Background(), 1, 42, "")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestAddCommentOnDraft(t *testing.T) {
	articles := newArticleStoreStub(&models.Article{ID: 1, Status: models.StatusReview})
	svc := newInteractionServiceForTest(newInteractionStoreStub(), articles, nil)

	_, err := svc.AddComment(context.Background(), 1, 42, "First!")
	assert.ErrorIs(t, err, apperrors.ErrArticleNotFound)
}

func TestAddCommentStoresAuthor(t *testing.T) {
	interactions := newInteractionStoreStub()
	articles := newArticleStoreStub(publishedArticle(1))
	svc := newInteractionServiceForTest(interactions, articles, nil)

	comment, err := svc.AddComment(context.Background(), 1, 42, "Great piece")
	require.NoError(t, err)

	assert.NotZero(t, comment.ID)
	assert.Equal(t, int64(1), comment.ArticleID)
	assert.Equal(t, int64(42), comment.UserID)
	assert.Equal(t, "Great piece", comment.Content)
}

func TestDeleteCommentPermissions(t *testing.T) {
	tests := []struct {
		name    string
		caller  int64
		isAdmin bool
		wantErr error
	}{
		{name: "author can delete", caller: 42},
		{name: "admin can delete", caller: 7, isAdmin: true},
		{name: "stranger cannot delete", caller: 7, wantErr: apperrors.ErrPermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			interactions := newInteractionStoreStub()
			articles := newArticleStoreStub(publishedArticle(1))
			svc := newInteractionServiceForTest(interactions, articles, nil)

			comment, err := svc.AddComment(context.Background(), 1, 42, "Great piece")
			require.NoError(t, err)

			err = svc.DeleteComment(context.Background(), comment.ID, tt.caller, tt.isAdmin)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Contains(t, interactions.comments, comment.ID)
			} else {
				assert.NoError(t, err)
				assert.NotContains(t, interactions.comments, comment.ID)
			}
		})
	}
}

func TestDeleteCommentNotFound(t *testing.T) {
	svc := newInteractionServiceForTest(newInteractionStoreStub(), nil, nil)

	err := svc.DeleteComment(context.Background(), 404, 42, true)
	assert.ErrorIs(t, err, apperrors.ErrCommentNotFound)
}

func TestGetCommentsRequiresPublishedArticle(t *testing.T) {
	articles := newArticleStoreStub(&models.Article{ID: 1, Status: models.StatusDraft})
	svc := newInteractionServiceForTest(newInteractionStoreStub(), articles, nil)

	_, err := svc.GetComments(context.Background(), 1)
	assert.ErrorIs(t, err, apperrors.ErrArticleNotFound)
}
