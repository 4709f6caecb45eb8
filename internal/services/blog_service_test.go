package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srpnetwork/realty-api/internal/models"
)

func newBlogService(posts BlogRepository) *BlogService {
	return NewBlogService(posts, slog.Default())
}

func newTestPost(id, title string) *models.BlogPost {
	return &models.BlogPost{
		ID:          id,
		Title:       title,
		Excerpt:     "A short teaser",
		Content:     "The full article body",
		Category:    "Market Watch",
		PublishedAt: time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC),
	}
}

// ============================================================================
// List / Get Tests
// ============================================================================

func TestBlogService_List_OmitsContent(t *testing.T) {
	mockPosts := &MockBlogRepository{
		ListFunc: func(ctx context.Context) ([]*models.BlogPost, error) {
			return []*models.BlogPost{newTestPost("post_1", "Lagos Market Outlook")}, nil
		},
	}

	svc := newBlogService(mockPosts)

	resp, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, "Lagos Market Outlook", resp[0].Title)
	assert.Equal(t, "A short teaser", resp[0].Excerpt)
	assert.Empty(t, resp[0].Content, "list view should not carry article bodies")
}

func TestBlogService_List_RepositoryError(t *testing.T) {
	mockPosts := &MockBlogRepository{
		ListFunc: func(ctx context.Context) ([]*models.BlogPost, error) {
			return nil, errors.New("connection refused")
		},
	}

	svc := newBlogService(mockPosts)

	_, err := svc.List(context.Background())

	assert.ErrorIs(t, err, models.ErrInternalServer)
}

func TestBlogService_Get_IncludesContent(t *testing.T) {
	mockPosts := &MockBlogRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.BlogPost, error) {
			assert.Equal(t, "post_1", id)
			return newTestPost("post_1", "Lagos Market Outlook"), nil
		},
	}

	svc := newBlogService(mockPosts)

	resp, err := svc.Get(context.Background(), "post_1")

	require.NoError(t, err)
	assert.Equal(t, "The full article body", resp.Content)
	assert.Equal(t, "2026-02-10T09:00:00Z", resp.PublishedAt)
}

func TestBlogService_Get_NotFound(t *testing.T) {
	svc := newBlogService(&MockBlogRepository{})

	_, err := svc.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, models.ErrNotFound)
}

// ============================================================================
// Create / Update / Delete Tests
// ============================================================================

func TestBlogService_Create_Success(t *testing.T) {
	admin := NewTestAdmin("admin123", "admin@example.com", "Admin")

	mockPosts := &MockBlogRepository{
		CreateFunc: func(ctx context.Context, post *models.BlogPost) (*models.BlogPost, error) {
			post.ID = "post_new"
			return post, nil
		},
	}

	svc := newBlogService(mockPosts)

	resp, err := svc.Create(context.Background(), admin, newTestPost("", "Lagos Market Outlook"))

	require.NoError(t, err)
	assert.Equal(t, "post_new", resp.ID)
	assert.Equal(t, "The full article body", resp.Content)
}

func TestBlogService_Create_NonAdminForbidden(t *testing.T) {
	member := NewTestProfile("member123", "member@example.com", "Member")
	svc := newBlogService(&MockBlogRepository{})

	_, err := svc.Create(context.Background(), member, newTestPost("", "Lagos Market Outlook"))

	assert.ErrorIs(t, err, models.ErrForbidden)
}

func TestBlogService_Create_RequiresTitleAndContent(t *testing.T) {
	admin := NewTestAdmin("admin123", "admin@example.com", "Admin")
	svc := newBlogService(&MockBlogRepository{})

	noTitle := newTestPost("", "  ")
	_, err := svc.Create(context.Background(), admin, noTitle)
	assert.ErrorIs(t, err, models.ErrBadRequest)

	noContent := newTestPost("", "Lagos Market Outlook")
	noContent.Content = ""
	_, err = svc.Create(context.Background(), admin, noContent)
	assert.ErrorIs(t, err, models.ErrBadRequest)
}

func TestBlogService_Update_NotFound(t *testing.T) {
	admin := NewTestAdmin("admin123", "admin@example.com", "Admin")
	mockPosts := &MockBlogRepository{
		UpdateFunc: func(ctx context.Context, id string, post *models.BlogPost) (*models.BlogPost, error) {
			return nil, models.ErrNotFound
		},
	}

	svc := newBlogService(mockPosts)

	_, err := svc.Update(context.Background(), admin, "missing", newTestPost("", "Lagos Market Outlook"))

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestBlogService_Delete_Success(t *testing.T) {
	admin := NewTestAdmin("admin123", "admin@example.com", "Admin")

	var deletedID string
	mockPosts := &MockBlogRepository{
		DeleteFunc: func(ctx context.Context, id string) error {
			deletedID = id
			return nil
		},
	}

	svc := newBlogService(mockPosts)

	err := svc.Delete(context.Background(), admin, "post_1")

	require.NoError(t, err)
	assert.Equal(t, "post_1", deletedID)
}

func TestBlogService_Delete_NonAdminForbidden(t *testing.T) {
	member := NewTestProfile("member123", "member@example.com", "Member")
	svc := newBlogService(&MockBlogRepository{})

	err := svc.Delete(context.Background(), member, "post_1")

	assert.ErrorIs(t, err, models.ErrForbidden)
}
