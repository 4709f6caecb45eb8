package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/srpnetwork/realty-api/internal/auth"
	"github.com/srpnetwork/realty-api/internal/listing"
	"github.com/srpnetwork/realty-api/internal/models"
	"github.com/srpnetwork/realty-api/internal/services"
	pkghttp "github.com/srpnetwork/realty-api/pkg/http"
)

// PropertyServiceInterface defines the interface for listing business logic
type PropertyServiceInterface interface {
	Browse(ctx context.Context, f listing.Filter, sortOrder string) ([]*services.PropertyResponse, error)
	Featured(ctx context.Context, limit int) ([]*services.PropertyResponse, error)
	Get(ctx context.Context, id string) (*services.PropertyResponse, error)
	Create(ctx context.Context, actor *models.Profile, property *models.Property) (*services.PropertyResponse, error)
	Update(ctx context.Context, actor *models.Profile, id string, property *models.Property) (*services.PropertyResponse, error)
	Delete(ctx context.Context, actor *models.Profile, id string) error
}

// FavoritesFanout is the fan-out subset used after a listing changes
type FavoritesFanout interface {
	NotifyPropertyUpdate(ctx context.Context, actor *models.Profile, propertyID string) (recipients, failures int, err error)
}

// PropertyHandler handles listing catalogue HTTP requests
type PropertyHandler struct {
	properties PropertyServiceInterface
	favorites  FavoritesFanout
	identity   IdentityServiceInterface
}

// NewPropertyHandler creates a new PropertyHandler
func NewPropertyHandler(properties PropertyServiceInterface, favorites FavoritesFanout, identity IdentityServiceInterface) *PropertyHandler {
	return &PropertyHandler{
		properties: properties,
		favorites:  favorites,
		identity:   identity,
	}
}

// PropertyRequest represents the request body for creating/updating a listing
type PropertyRequest struct {
	Title        string                     `json:"title" validate:"required,min=1,max=200"`
	Price        float64                    `json:"price" validate:"gte=0"`
	Location     string                     `json:"location" validate:"required,min=1,max=200"`
	Beds         int                        `json:"beds" validate:"gte=0"`
	Baths        int                        `json:"baths" validate:"gte=0"`
	Sqft         int                        `json:"sqft" validate:"gte=0"`
	SqmPrice     float64                    `json:"sqm_price" validate:"gte=0"`
	Image        string                     `json:"image"`
	Images       []string                   `json:"images"`
	Description  string                     `json:"description"`
	Type         string                     `json:"type"`
	Status       string                     `json:"status"`
	Featured     bool                       `json:"featured"`
	TitleType    string                     `json:"title_type"`
	Landmarks    []string                   `json:"landmarks"`
	Amenities    []string                   `json:"amenities"`
	Units        []models.PropertyUnit      `json:"units"`
	PaymentPlans []models.PaymentPlan       `json:"payment_plans"`
	Insights     *models.InvestmentInsights `json:"insights"`
}

func (req *PropertyRequest) toModel() *models.Property {
	return &models.Property{
		Title:        req.Title,
		Price:        req.Price,
		Location:     req.Location,
		Beds:         req.Beds,
		Baths:        req.Baths,
		Sqft:         req.Sqft,
		SqmPrice:     req.SqmPrice,
		Image:        req.Image,
		Images:       req.Images,
		Description:  req.Description,
		Type:         req.Type,
		Status:       req.Status,
		Featured:     req.Featured,
		TitleType:    req.TitleType,
		Landmarks:    req.Landmarks,
		Amenities:    req.Amenities,
		Units:        req.Units,
		PaymentPlans: req.PaymentPlans,
		Insights:     req.Insights,
	}
}

// List serves the catalogue with the filter and sort the frontend shows:
// ?type=Apartment&search=lekki&max_price=250000000&sort=Newest
func (h *PropertyHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := listing.Filter{
		Type:   q.Get("type"),
		Search: q.Get("search"),
	}
	if raw := q.Get("max_price"); raw != "" {
		maxPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			pkghttp.WriteBadRequest(w, "max_price must be a number")
			return
		}
		filter.MaxPrice = maxPrice
	}

	properties, err := h.properties.Browse(r.Context(), filter, q.Get("sort"))
	if err != nil {
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"properties": properties,
		"count":      len(properties),
	})
}

// Featured serves the landing-page strip
func (h *PropertyHandler) Featured(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	properties, err := h.properties.Featured(r.Context(), limit)
	if err != nil {
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"properties": properties,
	})
}

// Get serves a single listing
func (h *PropertyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	property, err := h.properties.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "Property not found")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, property)
}

// Create adds a listing (admin)
func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.resolveActor(w, r)
	if !ok {
		return
	}

	var req PropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	created, err := h.properties.Create(r.Context(), actor, req.toModel())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, created)
}

// Update replaces a listing (admin) and fans a best-effort update notice out
// to members who favorited it.
func (h *PropertyHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.resolveActor(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	var req PropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	updated, err := h.properties.Update(r.Context(), actor, id, req.toModel())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	// Fan-out is best-effort; the update already succeeded
	_, _, _ = h.favorites.NotifyPropertyUpdate(r.Context(), actor, id)

	pkghttp.WriteJSON(w, http.StatusOK, updated)
}

// Delete removes a listing (admin)
func (h *PropertyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.resolveActor(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.properties.Delete(r.Context(), actor, id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *PropertyHandler) resolveActor(w http.ResponseWriter, r *http.Request) (*models.Profile, bool) {
	return resolveActor(w, r, h.identity)
}

// resolveActor loads the acting profile for admin-gated handlers. Role and
// status checks stay in the services; this only establishes who is acting.
func resolveActor(w http.ResponseWriter, r *http.Request, identity IdentityServiceInterface) (*models.Profile, bool) {
	claims := auth.IdentityFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return nil, false
	}

	actor, err := identity.CurrentProfile(r.Context(), claims)
	if err != nil {
		pkghttp.WriteUnauthorized(w, "profile not found")
		return nil, false
	}

	return actor, true
}

// writeServiceError maps service sentinel errors to HTTP responses
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrBadRequest):
		pkghttp.WriteBadRequest(w, "Invalid request")
	case errors.Is(err, models.ErrUnauthorized):
		pkghttp.WriteUnauthorized(w, "unauthorized")
	case errors.Is(err, models.ErrForbidden):
		pkghttp.WriteForbidden(w, "insufficient permissions")
	case errors.Is(err, models.ErrNotFound):
		pkghttp.WriteNotFound(w, "Resource not found")
	case errors.Is(err, models.ErrConflict):
		pkghttp.WriteConflict(w, "Resource already exists")
	default:
		pkghttp.WriteInternalError(w, "Internal server error")
	}
}
