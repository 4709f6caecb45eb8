package handlers_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/srpnetwork/realty-api/internal/handlers"
	"github.com/srpnetwork/realty-api/internal/models"
	"github.com/srpnetwork/realty-api/internal/services"
)

func TestBlogList_Success(t *testing.T) {
	blog := &handlers.MockBlogService{
		ListFunc: func(ctx context.Context) ([]*services.BlogPostResponse, error) {
			return []*services.BlogPostResponse{{ID: "post-1", Title: "Lagos Market Outlook"}}, nil
		},
	}

	handler := handlers.NewBlogHandler(blog, &handlers.MockIdentityService{})
	req := handlers.NewTestRequest(t, "GET", "/api/blog", nil)

	w := httptest.NewRecorder()
	handler.List(w, req)

	var resp map[string][]services.BlogPostResponse
	handlers.AssertJSONResponse(t, w, 200, &resp)
	assert.Len(t, resp["posts"], 1)
	assert.Equal(t, "post-1", resp["posts"][0].ID)
}

func TestBlogGet_NotFound(t *testing.T) {
	blog := &handlers.MockBlogService{
		GetFunc: func(ctx context.Context, id string) (*services.BlogPostResponse, error) {
			return nil, models.ErrNotFound
		},
	}

	handler := handlers.NewBlogHandler(blog, &handlers.MockIdentityService{})
	req := handlers.NewTestRequest(t, "GET", "/api/blog/missing", nil)
	req = handlers.WithChiRouteContext(req, map[string]string{"id": "missing"})

	w := httptest.NewRecorder()
	handler.Get(w, req)

	handlers.AssertErrorResponse(t, w, 404, "not_found")
}

func TestBlogCreate_Success(t *testing.T) {
	admin := services.NewTestAdmin("admin-1", "admin@example.com", "Admin")

	var got *models.BlogPost
	blog := &handlers.MockBlogService{
		CreateFunc: func(ctx context.Context, actor *models.Profile, post *models.BlogPost) (*services.BlogPostResponse, error) {
			got = post
			return &services.BlogPostResponse{ID: "post-1", Title: post.Title, Content: post.Content}, nil
		},
	}

	handler := handlers.NewBlogHandler(blog, handlers.IdentityForProfile(admin))
	req := handlers.NewTestRequest(t, "POST", "/api/blog", handlers.BlogPostRequest{
		Title:    "Lagos Market Outlook",
		Excerpt:  "A short teaser",
		Content:  "The full article body",
		Category: "Market Watch",
	})
	req = handlers.WithIdentityContext(req, admin.ID, admin.Email)

	w := httptest.NewRecorder()
	handler.Create(w, req)

	var resp services.BlogPostResponse
	handlers.AssertJSONResponse(t, w, 201, &resp)
	assert.Equal(t, "post-1", resp.ID)
	assert.Equal(t, "Lagos Market Outlook", got.Title)
}

func TestBlogCreate_MissingContent(t *testing.T) {
	admin := services.NewTestAdmin("admin-1", "admin@example.com", "Admin")

	handler := handlers.NewBlogHandler(&handlers.MockBlogService{}, handlers.IdentityForProfile(admin))
	req := handlers.NewTestRequest(t, "POST", "/api/blog", handlers.BlogPostRequest{
		Title: "Lagos Market Outlook",
	})
	req = handlers.WithIdentityContext(req, admin.ID, admin.Email)

	w := httptest.NewRecorder()
	handler.Create(w, req)

	handlers.AssertErrorResponse(t, w, 400, "bad_request")
}

func TestBlogCreate_NoClaims(t *testing.T) {
	handler := handlers.NewBlogHandler(&handlers.MockBlogService{}, &handlers.MockIdentityService{})
	req := handlers.NewTestRequest(t, "POST", "/api/blog", handlers.BlogPostRequest{
		Title:   "Lagos Market Outlook",
		Content: "The full article body",
	})

	w := httptest.NewRecorder()
	handler.Create(w, req)

	handlers.AssertErrorResponse(t, w, 401, "unauthorized")
}

func TestBlogUpdate_Success(t *testing.T) {
	admin := services.NewTestAdmin("admin-1", "admin@example.com", "Admin")

	var gotID string
	blog := &handlers.MockBlogService{
		UpdateFunc: func(ctx context.Context, actor *models.Profile, id string, post *models.BlogPost) (*services.BlogPostResponse, error) {
			gotID = id
			return &services.BlogPostResponse{ID: id, Title: post.Title}, nil
		},
	}

	handler := handlers.NewBlogHandler(blog, handlers.IdentityForProfile(admin))
	req := handlers.NewTestRequest(t, "PUT", "/api/blog/post-1", handlers.BlogPostRequest{
		Title:   "Revised Outlook",
		Content: "The revised article body",
	})
	req = handlers.WithIdentityContext(req, admin.ID, admin.Email)
	req = handlers.WithChiRouteContext(req, map[string]string{"id": "post-1"})

	w := httptest.NewRecorder()
	handler.Update(w, req)

	var resp services.BlogPostResponse
	handlers.AssertJSONResponse(t, w, 200, &resp)
	assert.Equal(t, "post-1", gotID)
	assert.Equal(t, "Revised Outlook", resp.Title)
}

func TestBlogDelete_Success(t *testing.T) {
	admin := services.NewTestAdmin("admin-1", "admin@example.com", "Admin")

	var deletedID string
	blog := &handlers.MockBlogService{
		DeleteFunc: func(ctx context.Context, actor *models.Profile, id string) error {
			deletedID = id
			return nil
		},
	}

	handler := handlers.NewBlogHandler(blog, handlers.IdentityForProfile(admin))
	req := handlers.NewTestRequest(t, "DELETE", "/api/blog/post-1", nil)
	req = handlers.WithIdentityContext(req, admin.ID, admin.Email)
	req = handlers.WithChiRouteContext(req, map[string]string{"id": "post-1"})

	w := httptest.NewRecorder()
	handler.Delete(w, req)

	assert.Equal(t, 204, w.Code)
	assert.Equal(t, "post-1", deletedID)
}

func TestBlogDelete_NonAdminForbidden(t *testing.T) {
	member := services.NewTestProfile("member-1", "member@example.com", "Member")

	blog := &handlers.MockBlogService{
		DeleteFunc: func(ctx context.Context, actor *models.Profile, id string) error {
			return models.ErrForbidden
		},
	}

	handler := handlers.NewBlogHandler(blog, handlers.IdentityForProfile(member))
	req := handlers.NewTestRequest(t, "DELETE", "/api/blog/post-1", nil)
	req = handlers.WithIdentityContext(req, member.ID, member.Email)
	req = handlers.WithChiRouteContext(req, map[string]string{"id": "post-1"})

	w := httptest.NewRecorder()
	handler.Delete(w, req)

	handlers.AssertErrorResponse(t, w, 403, "forbidden")
}
