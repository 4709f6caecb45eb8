package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/srpnetwork/realty-api/internal/models"
	"github.com/srpnetwork/realty-api/internal/services"
	pkghttp "github.com/srpnetwork/realty-api/pkg/http"
)

// BlogServiceInterface defines the interface for blog business logic
type BlogServiceInterface interface {
	List(ctx context.Context) ([]*services.BlogPostResponse, error)
	Get(ctx context.Context, id string) (*services.BlogPostResponse, error)
	Create(ctx context.Context, actor *models.Profile, post *models.BlogPost) (*services.BlogPostResponse, error)
	Update(ctx context.Context, actor *models.Profile, id string, post *models.BlogPost) (*services.BlogPostResponse, error)
	Delete(ctx context.Context, actor *models.Profile, id string) error
}

// BlogHandler handles article HTTP requests
type BlogHandler struct {
	blog     BlogServiceInterface
	identity IdentityServiceInterface
}

// NewBlogHandler creates a new BlogHandler
func NewBlogHandler(blog BlogServiceInterface, identity IdentityServiceInterface) *BlogHandler {
	return &BlogHandler{blog: blog, identity: identity}
}

// BlogPostRequest represents the request body for creating/updating a post
type BlogPostRequest struct {
	Title    string `json:"title" validate:"required,min=1,max=200"`
	Excerpt  string `json:"excerpt" validate:"max=500"`
	Content  string `json:"content" validate:"required,min=1"`
	Image    string `json:"image"`
	Category string `json:"category" validate:"max=100"`
}

func (req *BlogPostRequest) toModel() *models.BlogPost {
	return &models.BlogPost{
		Title:    req.Title,
		Excerpt:  req.Excerpt,
		Content:  req.Content,
		Image:    req.Image,
		Category: req.Category,
	}
}

// List serves all articles, newest first
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.blog.List(r.Context())
	if err != nil {
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"posts": posts,
	})
}

// Get serves one article with full content
func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	post, err := h.blog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "Post not found")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, post)
}

// Create publishes an article (admin)
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := resolveActor(w, r, h.identity)
	if !ok {
		return
	}

	var req BlogPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	created, err := h.blog.Create(r.Context(), actor, req.toModel())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, created)
}

// Update replaces an article (admin)
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := resolveActor(w, r, h.identity)
	if !ok {
		return
	}

	var req BlogPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	updated, err := h.blog.Update(r.Context(), actor, chi.URLParam(r, "id"), req.toModel())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, updated)
}

// Delete removes an article (admin)
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := resolveActor(w, r, h.identity)
	if !ok {
		return
	}

	if err := h.blog.Delete(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
