package models

import "time"

// Article represents a newspaper article scoped to a department
type Article struct {
	ID           int64         `json:"id"`
	DepartmentID int64         `json:"departmentId"`
	Title        string        `json:"title"`
	Content      *string       `json:"content,omitempty"`
	Excerpt      *string       `json:"excerpt,omitempty"`
	ImageURL     *string       `json:"imageUrl,omitempty"`
	Author       string        `json:"author"`
	Status       ArticleStatus `json:"status"`
	ReadTime     *string       `json:"readTime,omitempty"`
	Tags         []string      `json:"tags,omitempty"`
	CreatedBy    *int64        `json:"createdBy,omitempty"`
	PublishedAt  *time.Time    `json:"publishedAt,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`

	// Relations
	Department *Department `json:"department,omitempty"`
}

// ArticleLike marks that a user liked an article, unique per (article, user).
// Toggled by insert/delete, never by an update flag.
type ArticleLike struct {
	ID        int64     `json:"id"`
	ArticleID int64     `json:"articleId"`
	UserID    int64     `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// ArticleComment is a user comment on an article, immutable once posted
// except deletion by its author.
type ArticleComment struct {
	ID         int64     `json:"id"`
	ArticleID  int64     `json:"articleId"`
	UserID     int64     `json:"userId"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	AuthorName string    `json:"authorName,omitempty"`
}
