package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sesa/portal/internal/app/models"
	"github.com/sesa/portal/internal/app/models/dto"
	"github.com/sesa/portal/internal/pkg/apperrors"
)

func newArticleServiceForTest(store *articleStoreStub, engagement *engagementStub, departments *departmentCheckerStub) *ArticleService {
	if engagement == nil {
		engagement = &engagementStub{
			likes:    map[int64]int64{},
			comments: map[int64]int64{},
			likedBy:  map[int64]int64{},
		}
	}
	if departments == nil {
		departments = &departmentCheckerStub{exists: true}
	}
	return NewArticleService(store, engagement, departments, nil, zerolog.Nop())
}

func TestListPublishedForcesPublishedStatus(t *testing.T) {
	store := newArticleStoreStub()
	svc := newArticleServiceForTest(store, nil, nil)

	draft := "draft"
	req := dto.ArticleFilterRequest{Status: &draft}

	_, _, err := svc.ListPublished(context.Background(), 1, 10, req, nil)
	require.NoError(t, err)

	require.NotNil(t, store.lastFilters.Status)
	assert.Equal(t, models.StatusPublished, *store.lastFilters.Status)
}

func TestListAllRejectsUnknownStatus(t *testing.T) {
	store := newArticleStoreStub()
	svc := newArticleServiceForTest(store, nil, nil)

	bogus := "archived"
	req := dto.ArticleFilterRequest{Status: &bogus}

	_, _, err := svc.ListAll(context.Background(), 1, 10, req)
	assert.ErrorIs(t, err, ErrArticleValidation)
}

func TestListAllPassesStatusThrough(t *testing.T) {
	store := newArticleStoreStub()
	svc := newArticleServiceForTest(store, nil, nil)

	review := "review"
	req := dto.ArticleFilterRequest{Status: &review}

	_, _, err := svc.ListAll(context.Background(), 1, 10, req)
	require.NoError(t, err)

	require.NotNil(t, store.lastFilters.Status)
	assert.Equal(t, models.StatusReview, *store.lastFilters.Status)
}

func TestGetArticleHidesUnpublished(t *testing.T) {
	draft := &models.Article{ID: 5, DepartmentID: 1, Title: "Draft piece", Author: "Ada", Status: models.StatusDraft}
	store := newArticleStoreStub(draft)
	svc := newArticleServiceForTest(store, nil, nil)

	_, err := svc.GetArticle(context.Background(), 5, nil, false)
	assert.ErrorIs(t, err, apperrors.ErrArticleNotFound)

	resp, err := svc.GetArticle(context.Background(), 5, nil, true)
	require.NoError(t, err)
	assert.Equal(t, "Draft piece", resp.Title)
	assert.Equal(t, string(models.StatusDraft), resp.Status)
}

func TestGetArticleRejectsInvalidID(t *testing.T) {
	svc := newArticleServiceForTest(newArticleStoreStub(), nil, nil)

	_, err := svc.GetArticle(context.Background(), 0, nil, true)
	assert.ErrorIs(t, err, ErrArticleValidation)
}

func TestGetArticleDecoratesEngagement(t *testing.T) {
	published := &models.Article{ID: 7, DepartmentID: 1, Title: "Week in review", Author: "Ada", Status: models.StatusPublished}
	store := newArticleStoreStub(published)
	engagement := &engagementStub{
		likes:    map[int64]int64{7: 3},
		comments: map[int64]int64{7: 2},
		likedBy:  map[int64]int64{7: 42},
	}
	svc := newArticleServiceForTest(store, engagement, nil)

	viewer := int64(42)
	resp, err := svc.GetArticle(context.Background(), 7, &viewer, false)
	require.NoError(t, err)

	assert.Equal(t, int64(3), resp.LikeCount)
	assert.Equal(t, int64(2), resp.CommentCount)
	assert.True(t, resp.LikedByMe)

	stranger := int64(99)
	resp, err = svc.GetArticle(context.Background(), 7, &stranger, false)
	require.NoError(t, err)
	assert.False(t, resp.LikedByMe)
}

func TestCreateArticleValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.CreateArticleRequest
		deptOK  bool
		wantErr error
	}{
		{
			name:    "empty title",
			req:     dto.CreateArticleRequest{DepartmentID: 1, Title: "   ", Author: "Ada", Status: "draft"},
			deptOK:  true,
			wantErr: ErrArticleValidation,
		},
		{
			name:    "empty author",
			req:     dto.CreateArticleRequest{DepartmentID: 1, Title: "Title", Author: "", Status: "draft"},
			deptOK:  true,
			wantErr: ErrArticleValidation,
		},
		{
			name:    "unknown status",
			req:     dto.CreateArticleRequest{DepartmentID: 1, Title: "Title", Author: "Ada", Status: "archived"},
			deptOK:  true,
			wantErr: ErrArticleValidation,
		},
		{
			name:    "missing department",
			req:     dto.CreateArticleRequest{DepartmentID: 9, Title: "Title", Author: "Ada", Status: "draft"},
			deptOK:  false,
			wantErr: apperrors.ErrDepartmentNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newArticleStoreStub()
			svc := newArticleServiceForTest(store, nil, &departmentCheckerStub{exists: tt.deptOK})

			_, err := svc.CreateArticle(context.Background(), &tt.req, 1)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, store.created)
		})
	}
}

func TestCreateArticleTrimsAndStampsAuthor(t *testing.T) {
	store := newArticleStoreStub()
	svc := newArticleServiceForTest(store, nil, nil)

	req := &dto.CreateArticleRequest{
		DepartmentID: 1,
		Title:        "  Exam timetable released  ",
		Author:       " Editorial Board ",
		Status:       "published",
		Tags:         []string{"exams"},
	}

	article, err := svc.CreateArticle(context.Background(), req, 42)
	require.NoError(t, err)

	assert.Equal(t, "Exam timetable released", article.Title)
	assert.Equal(t, "Editorial Board", article.Author)
	assert.Equal(t, models.StatusPublished, article.Status)
	require.NotNil(t, article.CreatedBy)
	assert.Equal(t, int64(42), *article.CreatedBy)
	assert.Len(t, store.created, 1)
}

func TestUpdateArticleNotFound(t *testing.T) {
	store := newArticleStoreStub()
	svc := newArticleServiceForTest(store, nil, nil)

	req := &dto.UpdateArticleRequest{DepartmentID: 1, Title: "Title", Author: "Ada", Status: "draft"}
	_, err := svc.UpdateArticle(context.Background(), 404, req)
	assert.ErrorIs(t, err, apperrors.ErrArticleNotFound)
}

func TestUpdateArticleAppliesChanges(t *testing.T) {
	existing := &models.Article{ID: 3, DepartmentID: 1, Title: "Old", Author: "Ada", Status: models.StatusDraft}
	store := newArticleStoreStub(existing)
	svc := newArticleServiceForTest(store, nil, nil)

	req := &dto.UpdateArticleRequest{DepartmentID: 2, Title: "New title", Author: "Ada", Status: "published"}
	article, err := svc.UpdateArticle(context.Background(), 3, req)
	require.NoError(t, err)

	assert.Equal(t, int64(2), article.DepartmentID)
	assert.Equal(t, "New title", article.Title)
	assert.Equal(t, models.StatusPublished, article.Status)
	assert.Len(t, store.updated, 1)
}

func TestDeleteArticle(t *testing.T) {
	store := newArticleStoreStub(&models.Article{ID: 3, Status: models.StatusDraft})
	svc := newArticleServiceForTest(store, nil, nil)

	require.NoError(t, svc.DeleteArticle(context.Background(), 3))
	assert.Equal(t, []int64{3}, store.deleted)

	err := svc.DeleteArticle(context.Background(), -1)
	assert.ErrorIs(t, err, ErrArticleValidation)
}

func TestListPublishedPropagatesStoreError(t *testing.T) {
	store := newArticleStoreStub()
	store.getAllErr = errors.New("connection reset")
	svc := newArticleServiceForTest(store, nil, nil)

	_, _, err := svc.ListPublished(context.Background(), 1, 10, dto.ArticleFilterRequest{}, nil)
	assert.Error(t, err)
}
