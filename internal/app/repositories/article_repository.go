package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sesa/portal/internal/app/models"
	"github.com/sesa/portal/internal/pkg/apperrors"
	"github.com/sesa/portal/internal/pkg/logger"
)

// ArticleFilters narrows the article listing
type ArticleFilters struct {
	DepartmentID *int64
	Status       *models.ArticleStatus
	Search       *string
}

// ArticleRepository handles newspaper article database operations
type ArticleRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewArticleRepository creates a new ArticleRepository
func NewArticleRepository(db *pgxpool.Pool) *ArticleRepository {
	return &ArticleRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var articleSelectColumns = []string{
	"a.id", "a.department_id", "a.title", "a.content", "a.excerpt", "a.image_url",
	"a.author", "a.status", "a.read_time", "a.tags", "a.created_by",
	"a.published_at", "a.created_at", "a.updated_at",
	"d.name as department_name", "d.slug as department_slug",
}

func scanArticle(row pgx.Row) (*models.Article, error) {
	var article models.Article
	var departmentName, departmentSlug string

	err := row.Scan(
		&article.ID, &article.DepartmentID, &article.Title, &article.Content,
		&article.Excerpt, &article.ImageURL, &article.Author, &article.Status,
		&article.ReadTime, &article.Tags, &article.CreatedBy,
		&article.PublishedAt, &article.CreatedAt, &article.UpdatedAt,
		&departmentName, &departmentSlug,
	)
	if err != nil {
		return nil, err
	}

	article.Department = &models.Department{
		ID:   article.DepartmentID,
		Name: departmentName,
		Slug: departmentSlug,
	}
	return &article, nil
}

func articleWhereCondition(filters ArticleFilters) squirrel.And {
	where := squirrel.And{}
	if filters.DepartmentID != nil && *filters.DepartmentID > 0 {
		where = append(where, squirrel.Eq{"a.department_id": *filters.DepartmentID})
	}
	if filters.Status != nil && *filters.Status != "" {
		where = append(where, squirrel.Eq{"a.status": string(*filters.Status)})
	}
	if filters.Search != nil && strings.TrimSpace(*filters.Search) != "" {
		pattern := "%" + strings.TrimSpace(*filters.Search) + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"a.title": pattern},
			squirrel.ILike{"a.content": pattern},
			squirrel.ILike{"a.excerpt": pattern},
		})
	}
	return where
}

// GetAll retrieves articles with pagination and optional filtering.
// Ordering puts the most recently published first; unpublished drafts
// sort after published pieces by creation date.
func (r *ArticleRepository) GetAll(ctx context.Context, page, pageSize int, filters ArticleFilters) ([]models.Article, int64, error) {
	offset := uint64((page - 1) * pageSize)
	where := articleWhereCondition(filters)

	countSql, countArgs, err := r.sb.Select("COUNT(*)").
		From("newspaper_articles a").
		Join("departments d ON a.department_id = d.id").
		Where(where).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count articles SQL")
		return nil, 0, fmt.Errorf("failed to build count articles query: %w", err)
	}

	var totalItems int64
	err = r.db.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing count articles query")
		return nil, 0, fmt.Errorf("failed to count articles: %w", err)
	}

	if totalItems == 0 {
		return []models.Article{}, 0, nil
	}

	querySql, queryArgs, err := r.sb.Select(articleSelectColumns...).
		From("newspaper_articles a").
		Join("departments d ON a.department_id = d.id").
		Where(where).
		OrderBy("a.published_at DESC NULLS LAST", "a.created_at DESC").
		Limit(uint64(pageSize)).
		Offset(offset).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all articles SQL")
		return nil, 0, fmt.Errorf("failed to build get articles query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySql, queryArgs...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all articles query")
		return nil, 0, fmt.Errorf("failed to query articles: %w", err)
	}
	defer rows.Close()

	var articles []models.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan article row: %w", err)
		}
		articles = append(articles, *article)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return articles, totalItems, nil
}

// GetByID retrieves an article by ID with its department
func (r *ArticleRepository) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	querySql, args, err := r.sb.Select(articleSelectColumns...).
		From("newspaper_articles a").
		Join("departments d ON a.department_id = d.id").
		Where(squirrel.Eq{"a.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get article query: %w", err)
	}

	article, err := scanArticle(r.db.QueryRow(ctx, querySql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrArticleNotFound
		}
		return nil, fmt.Errorf("error retrieving article: %w", err)
	}

	return article, nil
}

// Create creates a new article. published_at is set when the article
// is created already published.
func (r *ArticleRepository) Create(ctx context.Context, article *models.Article) error {
	query := `
		INSERT INTO newspaper_articles (
			department_id, title, content, excerpt, image_url, author,
			status, read_time, tags, created_by, published_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		        CASE WHEN $7 = 'published' THEN NOW() ELSE NULL END)
		RETURNING id, published_at, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		article.DepartmentID, article.Title, article.Content, article.Excerpt,
		article.ImageURL, article.Author, article.Status, article.ReadTime,
		article.Tags, article.CreatedBy,
	).Scan(&article.ID, &article.PublishedAt, &article.CreatedAt, &article.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Str("title", article.Title).Msg("Error creating article")
		return fmt.Errorf("error creating article: %w", err)
	}

	return nil
}

// Update updates an existing article. Transitioning into the published
// status stamps published_at once; later edits keep the original date.
func (r *ArticleRepository) Update(ctx context.Context, article *models.Article) error {
	query := `
		UPDATE newspaper_articles
		SET department_id = $1, title = $2, content = $3, excerpt = $4,
		    image_url = $5, author = $6, status = $7, read_time = $8, tags = $9,
		    published_at = CASE
		        WHEN $7 = 'published' AND published_at IS NULL THEN NOW()
		        ELSE published_at
		    END,
		    updated_at = NOW()
		WHERE id = $10
		RETURNING published_at
	`

	err := r.db.QueryRow(ctx, query,
		article.DepartmentID, article.Title, article.Content, article.Excerpt,
		article.ImageURL, article.Author, article.Status, article.ReadTime,
		article.Tags, article.ID,
	).Scan(&article.PublishedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrArticleNotFound
		}
		return fmt.Errorf("error updating article: %w", err)
	}

	return nil
}

// Delete deletes an article by ID
func (r *ArticleRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM newspaper_articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting article: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrArticleNotFound
	}

	return nil
}

// Count returns the total number of articles
func (r *ArticleRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM newspaper_articles`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting articles: %w", err)
	}
	return count, nil
}
