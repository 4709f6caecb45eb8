package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/srpnetwork/realty-api/internal/models"
)

// BlogRepository defines the interface for blog post persistence
type BlogRepository interface {
	GetByID(ctx context.Context, id string) (*models.BlogPost, error)
	List(ctx context.Context) ([]*models.BlogPost, error)
	Create(ctx context.Context, post *models.BlogPost) (*models.BlogPost, error)
	Update(ctx context.Context, id string, post *models.BlogPost) (*models.BlogPost, error)
	Delete(ctx context.Context, id string) error
}

// BlogPostResponse represents an article in HTTP responses
type BlogPostResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Excerpt     string `json:"excerpt"`
	Content     string `json:"content,omitempty"`
	Image       string `json:"image,omitempty"`
	Category    string `json:"category,omitempty"`
	PublishedAt string `json:"published_at"`
}

func blogModelToResponse(post *models.BlogPost, includeContent bool) *BlogPostResponse {
	resp := &BlogPostResponse{
		ID:          post.ID,
		Title:       post.Title,
		Excerpt:     post.Excerpt,
		Image:       post.Image,
		Category:    post.Category,
		PublishedAt: post.PublishedAt.Format(time.RFC3339),
	}
	if includeContent {
		resp.Content = post.Content
	}
	return resp
}

// BlogService serves published articles and the admin CRUD surface over them.
type BlogService struct {
	posts  BlogRepository
	logger *slog.Logger
}

// NewBlogService creates a new BlogService
func NewBlogService(posts BlogRepository, logger *slog.Logger) *BlogService {
	return &BlogService{posts: posts, logger: logger}
}

// List returns all articles, newest first, without full content.
func (s *BlogService) List(ctx context.Context) ([]*BlogPostResponse, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		s.logger.Error("failed to list blog posts", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	responses := make([]*BlogPostResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, blogModelToResponse(post, false))
	}

	return responses, nil
}

// Get returns one article with its full content.
func (s *BlogService) Get(ctx context.Context, id string) (*BlogPostResponse, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get blog post", slog.String("post_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return blogModelToResponse(post, true), nil
}

// Create publishes a new article. Admin-only.
func (s *BlogService) Create(ctx context.Context, actor *models.Profile, post *models.BlogPost) (*BlogPostResponse, error) {
	if actor == nil || actor.Role != models.RoleAdmin {
		return nil, models.ErrForbidden
	}
	if strings.TrimSpace(post.Title) == "" || strings.TrimSpace(post.Content) == "" {
		return nil, models.ErrBadRequest
	}

	created, err := s.posts.Create(ctx, post)
	if err != nil {
		s.logger.Error("failed to create blog post", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("blog post created",
		slog.String("post_id", created.ID),
		slog.String("actor_id", actor.ID))

	return blogModelToResponse(created, true), nil
}

// Update replaces an article's content. Admin-only.
func (s *BlogService) Update(ctx context.Context, actor *models.Profile, id string, post *models.BlogPost) (*BlogPostResponse, error) {
	if actor == nil || actor.Role != models.RoleAdmin {
		return nil, models.ErrForbidden
	}
	if strings.TrimSpace(post.Title) == "" || strings.TrimSpace(post.Content) == "" {
		return nil, models.ErrBadRequest
	}

	updated, err := s.posts.Update(ctx, id, post)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to update blog post", slog.String("post_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return blogModelToResponse(updated, true), nil
}

// Delete removes an article. Admin-only.
func (s *BlogService) Delete(ctx context.Context, actor *models.Profile, id string) error {
	if actor == nil || actor.Role != models.RoleAdmin {
		return models.ErrForbidden
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to delete blog post", slog.String("post_id", id), slog.Any("error", err))
		return models.ErrInternalServer
	}

	return nil
}
