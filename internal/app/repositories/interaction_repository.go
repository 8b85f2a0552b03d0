package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sesa/portal/internal/app/models"
	"github.com/sesa/portal/internal/pkg/apperrors"
	"github.com/sesa/portal/internal/pkg/dberrors"
)

// InteractionRepository handles likes, bookmarks, comments and
// download records
type InteractionRepository struct {
	db *pgxpool.Pool
}

// NewInteractionRepository creates a new interaction repository
func NewInteractionRepository(db *pgxpool.Pool) *InteractionRepository {
	return &InteractionRepository{
		db: db,
	}
}

// --- Article likes ---

// LikeExists reports whether the user already likes the article
func (r *InteractionRepository) LikeExists(ctx context.Context, articleID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM article_likes WHERE article_id = $1 AND user_id = $2)`,
		articleID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking like existence: %w", err)
	}
	return exists, nil
}

// CreateLike records a like. A concurrent duplicate insert is treated
// as already liked.
func (r *InteractionRepository) CreateLike(ctx context.Context, articleID, userID int64) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO article_likes (article_id, user_id) VALUES ($1, $2)`, articleID, userID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil
		}
		return fmt.Errorf("error creating like: %w", err)
	}
	return nil
}

// DeleteLike removes a like
func (r *InteractionRepository) DeleteLike(ctx context.Context, articleID, userID int64) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM article_likes WHERE article_id = $1 AND user_id = $2`, articleID, userID)
	if err != nil {
		return fmt.Errorf("error deleting like: %w", err)
	}
	return nil
}

// CountLikes returns the number of likes on an article
func (r *InteractionRepository) CountLikes(ctx context.Context, articleID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM article_likes WHERE article_id = $1`, articleID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting likes: %w", err)
	}
	return count, nil
}

// --- Resource bookmarks ---

// BookmarkExists reports whether the user already bookmarked the resource
func (r *InteractionRepository) BookmarkExists(ctx context.Context, resourceID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM bookmarks WHERE resource_id = $1 AND user_id = $2)`,
		resourceID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking bookmark existence: %w", err)
	}
	return exists, nil
}

// CreateBookmark records a bookmark
func (r *InteractionRepository) CreateBookmark(ctx context.Context, resourceID, userID int64) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO bookmarks (resource_id, user_id) VALUES ($1, $2)`, resourceID, userID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil
		}
		return fmt.Errorf("error creating bookmark: %w", err)
	}
	return nil
}

// DeleteBookmark removes a bookmark
func (r *InteractionRepository) DeleteBookmark(ctx context.Context, resourceID, userID int64) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM bookmarks WHERE resource_id = $1 AND user_id = $2`, resourceID, userID)
	if err != nil {
		return fmt.Errorf("error deleting bookmark: %w", err)
	}
	return nil
}

// GetBookmarkedResourceIDs returns the IDs of all resources the user bookmarked
func (r *InteractionRepository) GetBookmarkedResourceIDs(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT resource_id FROM bookmarks WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying bookmarks: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}

// --- Article comments ---

// CreateComment stores a comment on an article
func (r *InteractionRepository) CreateComment(ctx context.Context, comment *models.ArticleComment) error {
	query := `
		INSERT INTO article_comments (article_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, comment.ArticleID, comment.UserID, comment.Content).
		Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating comment: %w", err)
	}

	return nil
}

// GetCommentByID retrieves a comment
func (r *InteractionRepository) GetCommentByID(ctx context.Context, id int64) (*models.ArticleComment, error) {
	query := `
		SELECT id, article_id, user_id, content, created_at
		FROM article_comments
		WHERE id = $1
	`

	var comment models.ArticleComment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&comment.ID, &comment.ArticleID, &comment.UserID,
		&comment.Content, &comment.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("error retrieving comment: %w", err)
	}

	return &comment, nil
}

// GetCommentsByArticleID returns all comments on an article in posting
// order with the commenter's display name resolved
func (r *InteractionRepository) GetCommentsByArticleID(ctx context.Context, articleID int64) ([]models.ArticleComment, error) {
	query := `
		SELECT c.id, c.article_id, c.user_id, c.content, c.created_at,
		       COALESCE(p.full_name, '') as author_name
		FROM article_comments c
		LEFT JOIN profiles p ON c.user_id = p.user_id
		WHERE c.article_id = $1
		ORDER BY c.created_at ASC
	`

	rows, err := r.db.Query(ctx, query, articleID)
	if err != nil {
		return nil, fmt.Errorf("error querying comments: %w", err)
	}
	defer rows.Close()

	var comments []models.ArticleComment
	for rows.Next() {
		var comment models.ArticleComment
		if err := rows.Scan(
			&comment.ID, &comment.ArticleID, &comment.UserID,
			&comment.Content, &comment.CreatedAt, &comment.AuthorName,
		); err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}

// DeleteComment removes a comment
func (r *InteractionRepository) DeleteComment(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM article_comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting comment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCommentNotFound
	}

	return nil
}

// CountComments returns the number of comments on an article
func (r *InteractionRepository) CountComments(ctx context.Context, articleID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM article_comments WHERE article_id = $1`, articleID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting comments: %w", err)
	}
	return count, nil
}

// --- Resource downloads ---

// CreateDownloadRecord stores a download event. UserID is nil for
// anonymous downloads.
func (r *InteractionRepository) CreateDownloadRecord(ctx context.Context, resourceID int64, userID *int64) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO resource_downloads (resource_id, user_id) VALUES ($1, $2)`, resourceID, userID)
	if err != nil {
		return fmt.Errorf("error recording download: %w", err)
	}
	return nil
}

// GetRecentDownloadsByUser returns the user's latest download events
// with the resource embedded, newest first
func (r *InteractionRepository) GetRecentDownloadsByUser(ctx context.Context, userID int64, limit int) ([]models.ResourceDownload, error) {
	rows, err := r.db.Query(ctx, `
		SELECT d.id, d.resource_id, d.user_id, d.created_at,
		       r.id, r.department_id, r.title, r.level, r.type, r.file_url, r.download_count
		FROM resource_downloads d
		JOIN resources r ON r.id = d.resource_id
		WHERE d.user_id = $1
		ORDER BY d.created_at DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying download history: %w", err)
	}
	defer rows.Close()

	var downloads []models.ResourceDownload
	for rows.Next() {
		var download models.ResourceDownload
		var resource models.Resource
		if err := rows.Scan(
			&download.ID, &download.ResourceID, &download.UserID, &download.DownloadedAt,
			&resource.ID, &resource.DepartmentID, &resource.Title, &resource.Level,
			&resource.Type, &resource.FileURL, &resource.DownloadCount,
		); err != nil {
			return nil, err
		}
		download.Resource = &resource
		downloads = append(downloads, download)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return downloads, nil
}
