package dto

import (
	"time"

	"github.com/sesa/portal/internal/app/models"
)

// CreateArticleRequest represents the request to create a newspaper article
type CreateArticleRequest struct {
	Title        string   `json:"title" binding:"required"`
	Content      *string  `json:"content"`
	Excerpt      *string  `json:"excerpt"`
	DepartmentID int64    `json:"departmentId" binding:"required,min=1"`
	Author       string   `json:"author" binding:"required"`
	Status       string   `json:"status" binding:"required"`
	ReadTime     *string  `json:"readTime"`
	Tags         []string `json:"tags"`
	ImageURL     *string  `json:"imageUrl"`
}

// UpdateArticleRequest represents the request to update a newspaper article
type UpdateArticleRequest struct {
	Title        string   `json:"title" binding:"required"`
	Content      *string  `json:"content"`
	Excerpt      *string  `json:"excerpt"`
	DepartmentID int64    `json:"departmentId" binding:"required,min=1"`
	Author       string   `json:"author" binding:"required"`
	Status       string   `json:"status" binding:"required"`
	ReadTime     *string  `json:"readTime"`
	Tags         []string `json:"tags"`
	ImageURL     *string  `json:"imageUrl"`
}

// ArticleFilterRequest carries the listing filters for articles
type ArticleFilterRequest struct {
	DepartmentID *int64  `form:"departmentId"`
	Status       *string `form:"status"`
	Search       *string `form:"search"`
}

// ArticleResponse represents the response for a newspaper article
type ArticleResponse struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	Content        *string    `json:"content,omitempty"`
	Excerpt        *string    `json:"excerpt,omitempty"`
	DepartmentID   int64      `json:"departmentId"`
	DepartmentName string     `json:"departmentName,omitempty"`
	Author         string     `json:"author"`
	Status         string     `json:"status"`
	ReadTime       *string    `json:"readTime,omitempty"`
	Tags           []string   `json:"tags,omitempty"`
	ImageURL       *string    `json:"imageUrl,omitempty"`
	LikeCount      int64      `json:"likeCount"`
	CommentCount   int64      `json:"commentCount"`
	LikedByMe      bool       `json:"likedByMe"`
	PublishedAt    *time.Time `json:"publishedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// ArticleListResponse represents the response for a list of articles with pagination
type ArticleListResponse struct {
	Articles   []ArticleResponse `json:"articles"`
	Pagination PaginationInfo    `json:"pagination"`
}

// CreateCommentRequest represents the request to comment on an article
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// CommentResponse represents a single article comment
type CommentResponse struct {
	ID         int64     `json:"id"`
	ArticleID  int64     `json:"articleId"`
	UserID     int64     `json:"userId"`
	AuthorName string    `json:"authorName,omitempty"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CommentListResponse represents all comments on an article
type CommentListResponse struct {
	Comments []CommentResponse `json:"comments"`
}

// LikeToggleResponse reports the state after a like toggle. LikeCount
// is omitted when the count could not be determined.
type LikeToggleResponse struct {
	Liked     bool   `json:"liked"`
	LikeCount *int64 `json:"likeCount,omitempty"`
}

// FromArticle converts a models.Article to an ArticleResponse
func FromArticle(a *models.Article) ArticleResponse {
	if a == nil {
		return ArticleResponse{}
	}

	departmentName := ""
	if a.Department != nil {
		departmentName = a.Department.Name
	}

	return ArticleResponse{
		ID:             a.ID,
		Title:          a.Title,
		Content:        a.Content,
		Excerpt:        a.Excerpt,
		DepartmentID:   a.DepartmentID,
		DepartmentName: departmentName,
		Author:         a.Author,
		Status:         string(a.Status),
		ReadTime:       a.ReadTime,
		Tags:           a.Tags,
		ImageURL:       a.ImageURL,
		PublishedAt:    a.PublishedAt,
		CreatedAt:      a.CreatedAt,
	}
}

// FromComment converts a models.ArticleComment to a CommentResponse
func FromComment(c *models.ArticleComment) CommentResponse {
	if c == nil {
		return CommentResponse{}
	}
	return CommentResponse{
		ID:         c.ID,
		ArticleID:  c.ArticleID,
		UserID:     c.UserID,
		AuthorName: c.AuthorName,
		Content:    c.Content,
		CreatedAt:  c.CreatedAt,
	}
}
