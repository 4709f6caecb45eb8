package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/srpnetwork/realty-api/internal/auth"
	"github.com/srpnetwork/realty-api/internal/models"
	"github.com/srpnetwork/realty-api/internal/services"
	pkghttp "github.com/srpnetwork/realty-api/pkg/http"
)

// FavoritesServiceInterface defines the interface for favorites and alerts
type FavoritesServiceInterface interface {
	Toggle(ctx context.Context, profileID, propertyID string) (*services.FavoritesResponse, error)
	List(ctx context.Context, profileID string) ([]string, error)
	AddAlert(ctx context.Context, profileID string, alert models.PropertyAlert) (*services.AlertsResponse, error)
	RemoveAlert(ctx context.Context, profileID, alertID string) (*services.AlertsResponse, error)
}

// FavoritesHandler handles a member's saved properties and alerts
type FavoritesHandler struct {
	favorites FavoritesServiceInterface
}

// NewFavoritesHandler creates a new FavoritesHandler
func NewFavoritesHandler(favorites FavoritesServiceInterface) *FavoritesHandler {
	return &FavoritesHandler{favorites: favorites}
}

// ToggleFavoriteRequest represents the request body for a favorite toggle
type ToggleFavoriteRequest struct {
	PropertyID string `json:"propertyId" validate:"required"`
}

// AlertRequest represents the request body for adding a saved-search alert
type AlertRequest struct {
	Type     string  `json:"type"`
	Location string  `json:"location"`
	MaxPrice float64 `json:"max_price" validate:"gte=0"`
	MinBeds  int     `json:"min_beds" validate:"gte=0"`
}

// Toggle adds or removes a property from the member's favorites
func (h *FavoritesHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	claims := auth.IdentityFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	var req ToggleFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	resp, err := h.favorites.Toggle(r.Context(), claims.ProfileID, req.PropertyID)
	if err != nil {
		if errors.Is(err, models.ErrProfileMissing) {
			pkghttp.WriteUnauthorized(w, "profile not found")
			return
		}
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, resp)
}

// List returns the member's favorite property ids
func (h *FavoritesHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := auth.IdentityFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	favorites, err := h.favorites.List(r.Context(), claims.ProfileID)
	if err != nil {
		if errors.Is(err, models.ErrProfileMissing) {
			pkghttp.WriteUnauthorized(w, "profile not found")
			return
		}
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"favorites": favorites,
	})
}

// AddAlert appends a saved-search alert
func (h *FavoritesHandler) AddAlert(w http.ResponseWriter, r *http.Request) {
	claims := auth.IdentityFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	var req AlertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	resp, err := h.favorites.AddAlert(r.Context(), claims.ProfileID, models.PropertyAlert{
		Type:     req.Type,
		Location: req.Location,
		MaxPrice: req.MaxPrice,
		MinBeds:  req.MinBeds,
	})
	if err != nil {
		if errors.Is(err, models.ErrProfileMissing) {
			pkghttp.WriteUnauthorized(w, "profile not found")
			return
		}
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, resp)
}

// RemoveAlert deletes a saved-search alert by id
func (h *FavoritesHandler) RemoveAlert(w http.ResponseWriter, r *http.Request) {
	claims := auth.IdentityFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	alertID := chi.URLParam(r, "alertID")

	resp, err := h.favorites.RemoveAlert(r.Context(), claims.ProfileID, alertID)
	if err != nil {
		if errors.Is(err, models.ErrProfileMissing) {
			pkghttp.WriteUnauthorized(w, "profile not found")
			return
		}
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, resp)
}
