package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/trananh/clearpath/internal/app/models"
	"github.com/trananh/clearpath/internal/pkg/apperrors"
)

// ArticleRepository handles database operations for articles
type ArticleRepository struct {
	db *pgxpool.Pool
}

// NewArticleRepository creates a new ArticleRepository
func NewArticleRepository(db *pgxpool.Pool) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// List retrieves articles with pagination. Disabled articles are only
// included when includeDisabled is true.
func (r *ArticleRepository) List(ctx context.Context, includeDisabled bool, page, pageSize int) ([]*models.Article, int64, error) {
	offset := (page - 1) * pageSize

	query := `
		SELECT ar.id, ar.title, ar.content, ar.author_id, ar.published_at, ar.is_disabled,
			acc.id, acc.username, acc.email, acc.full_name,
			COUNT(*) OVER() AS total_count
		FROM articles ar
		JOIN accounts acc ON acc.id = ar.author_id
		WHERE ($1 OR ar.is_disabled = false)
		ORDER BY ar.published_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, includeDisabled, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying articles: %w", err)
	}
	defer rows.Close()

	articles := []*models.Article{}
	var total int64
	for rows.Next() {
		var a models.Article
		var auth models.Account
		err := rows.Scan(
			&a.ID, &a.Title, &a.Content, &a.AuthorID, &a.PublishedAt, &a.IsDisabled,
			&auth.ID, &auth.Username, &auth.Email, &auth.FullName,
			&total)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning article row: %w", err)
		}
		a.Author = &auth
		articles = append(articles, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating article rows: %w", err)
	}

	return articles, total, nil
}

// GetByID retrieves an article by id, including its author.
func (r *ArticleRepository) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	query := `
		SELECT ar.id, ar.title, ar.content, ar.author_id, ar.published_at, ar.is_disabled,
			acc.id, acc.username, acc.email, acc.full_name
		FROM articles ar
		JOIN accounts acc ON acc.id = ar.author_id
		WHERE ar.id = $1
	`
	var a models.Article
	var auth models.Account
	err := r.db.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.Title, &a.Content, &a.AuthorID, &a.PublishedAt, &a.IsDisabled,
		&auth.ID, &auth.Username, &auth.Email, &auth.FullName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrArticleNotFound
		}
		return nil, fmt.Errorf("error querying article: %w", err)
	}
	a.Author = &auth
	return &a, nil
}

// Create inserts a new article and returns its id.
func (r *ArticleRepository) Create(ctx context.Context, a *models.Article) (int64, error) {
	query := `
		INSERT INTO articles (title, content, author_id, published_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRow(ctx, query, a.Title, a.Content, a.AuthorID, a.PublishedAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error inserting article: %w", err)
	}
	return id, nil
}

// Update modifies an article's title and content.
func (r *ArticleRepository) Update(ctx context.Context, a *models.Article) error {
	query := `UPDATE articles SET title = $1, content = $2 WHERE id = $3`
	tag, err := r.db.Exec(ctx, query, a.Title, a.Content, a.ID)
	if err != nil {
		return fmt.Errorf("error updating article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrArticleNotFound
	}
	return nil
}

// SetDisabled toggles an article's disabled flag.
func (r *ArticleRepository) SetDisabled(ctx context.Context, id int64, disabled bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE articles SET is_disabled = $1 WHERE id = $2`, disabled, id)
	if err != nil {
		return fmt.Errorf("error updating article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrArticleNotFound
	}
	return nil
}
