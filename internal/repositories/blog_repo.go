package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/srpnetwork/realty-api/internal/database"
	"github.com/srpnetwork/realty-api/internal/models"
)

type BlogRepository struct {
	pool *pgxpool.Pool
}

func NewBlogRepository(db *database.DB) *BlogRepository {
	return &BlogRepository{pool: db.Pool}
}

const blogColumns = `id, title, excerpt, content, image, category, published_at, updated_at`

func scanBlogRow(scanner rowScanner) (*models.BlogPost, error) {
	var post models.BlogPost

	err := scanner.Scan(
		&post.ID, &post.Title, &post.Excerpt, &post.Content,
		&post.Image, &post.Category, &post.PublishedAt, &post.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &post, nil
}

func (r *BlogRepository) GetByID(ctx context.Context, id string) (*models.BlogPost, error) {
	query := `SELECT ` + blogColumns + ` FROM blog_posts WHERE id = $1`

	return scanBlogRow(r.pool.QueryRow(ctx, query, id))
}

func (r *BlogRepository) List(ctx context.Context) ([]*models.BlogPost, error) {
	query := `SELECT ` + blogColumns + ` FROM blog_posts ORDER BY published_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query blog posts: %w", err)
	}
	defer rows.Close()

	posts := make([]*models.BlogPost, 0)
	for rows.Next() {
		post, err := scanBlogRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan blog post: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return posts, nil
}

func (r *BlogRepository) Create(ctx context.Context, post *models.BlogPost) (*models.BlogPost, error) {
	post.ID = uuid.New().String()

	now := time.Now()
	if post.PublishedAt.IsZero() {
		post.PublishedAt = now
	}
	post.UpdatedAt = now

	query := `
		INSERT INTO blog_posts (id, title, excerpt, content, image, category, published_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + blogColumns

	return scanBlogRow(r.pool.QueryRow(ctx, query,
		post.ID, post.Title, post.Excerpt, post.Content,
		post.Image, post.Category, post.PublishedAt, post.UpdatedAt,
	))
}

func (r *BlogRepository) Update(ctx context.Context, id string, post *models.BlogPost) (*models.BlogPost, error) {
	post.UpdatedAt = time.Now()

	query := `
		UPDATE blog_posts SET title = $1, excerpt = $2, content = $3, image = $4, category = $5, updated_at = $6
		WHERE id = $7
		RETURNING ` + blogColumns

	return scanBlogRow(r.pool.QueryRow(ctx, query,
		post.Title, post.Excerpt, post.Content, post.Image, post.Category, post.UpdatedAt, id,
	))
}

func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
