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

func TestFavoritesToggle_Add(t *testing.T) {
	favorites := &handlers.MockFavoritesService{
		ToggleFunc: func(ctx context.Context, profileID, propertyID string) (*services.FavoritesResponse, error) {
			assert.Equal(t, "profile-1", profileID)
			assert.Equal(t, "prop-1", propertyID)
			return &services.FavoritesResponse{Favorited: true, Favorites: []string{"prop-1"}}, nil
		},
	}

	handler := handlers.NewFavoritesHandler(favorites)
	req := handlers.NewTestRequest(t, "POST", "/profiles/me/favorites", handlers.ToggleFavoriteRequest{
		PropertyID: "prop-1",
	})
	req = handlers.WithIdentityContext(req, "profile-1", "member@example.com")

	w := httptest.NewRecorder()
	handler.Toggle(w, req)

	var resp services.FavoritesResponse
	handlers.AssertJSONResponse(t, w, 200, &resp)
	assert.True(t, resp.Favorited)
	assert.Equal(t, []string{"prop-1"}, resp.Favorites)
}

func TestFavoritesToggle_MissingPropertyID(t *testing.T) {
	handler := handlers.NewFavoritesHandler(&handlers.MockFavoritesService{})
	req := handlers.NewTestRequest(t, "POST", "/profiles/me/favorites", handlers.ToggleFavoriteRequest{})
	req = handlers.WithIdentityContext(req, "profile-1", "member@example.com")

	w := httptest.NewRecorder()
	handler.Toggle(w, req)

	handlers.AssertErrorResponse(t, w, 400, "bad_request")
}

func TestFavoritesToggle_NoClaims(t *testing.T) {
	handler := handlers.NewFavoritesHandler(&handlers.MockFavoritesService{})
	req := handlers.NewTestRequest(t, "POST", "/profiles/me/favorites", handlers.ToggleFavoriteRequest{
		PropertyID: "prop-1",
	})

	w := httptest.NewRecorder()
	handler.Toggle(w, req)

	handlers.AssertErrorResponse(t, w, 401, "unauthorized")
}

func TestFavoritesToggle_ProfileMissing(t *testing.T) {
	favorites := &handlers.MockFavoritesService{
		ToggleFunc: func(ctx context.Context, profileID, propertyID string) (*services.FavoritesResponse, error) {
			return nil, models.ErrProfileMissing
		},
	}

	handler := handlers.NewFavoritesHandler(favorites)
	req := handlers.NewTestRequest(t, "POST", "/profiles/me/favorites", handlers.ToggleFavoriteRequest{
		PropertyID: "prop-1",
	})
	req = handlers.WithIdentityContext(req, "gone", "gone@example.com")

	w := httptest.NewRecorder()
	handler.Toggle(w, req)

	handlers.AssertErrorResponse(t, w, 401, "unauthorized")
}

func TestFavoritesList_Success(t *testing.T) {
	favorites := &handlers.MockFavoritesService{
		ListFunc: func(ctx context.Context, profileID string) ([]string, error) {
			return []string{"prop-1", "prop-2"}, nil
		},
	}

	handler := handlers.NewFavoritesHandler(favorites)
	req := handlers.NewTestRequest(t, "GET", "/profiles/me/favorites", nil)
	req = handlers.WithIdentityContext(req, "profile-1", "member@example.com")

	w := httptest.NewRecorder()
	handler.List(w, req)

	var resp map[string][]string
	handlers.AssertJSONResponse(t, w, 200, &resp)
	assert.Equal(t, []string{"prop-1", "prop-2"}, resp["favorites"])
}

func TestAddAlert_Success(t *testing.T) {
	favorites := &handlers.MockFavoritesService{
		AddAlertFunc: func(ctx context.Context, profileID string, alert models.PropertyAlert) (*services.AlertsResponse, error) {
			alert.ID = "alert-1"
			return &services.AlertsResponse{Alerts: []models.PropertyAlert{alert}}, nil
		},
	}

	handler := handlers.NewFavoritesHandler(favorites)
	req := handlers.NewTestRequest(t, "POST", "/profiles/me/alerts", handlers.AlertRequest{
		Type:     models.PropertyTypeApartment,
		Location: "Lekki",
		MaxPrice: 300_000_000,
		MinBeds:  3,
	})
	req = handlers.WithIdentityContext(req, "profile-1", "member@example.com")

	w := httptest.NewRecorder()
	handler.AddAlert(w, req)

	var resp services.AlertsResponse
	handlers.AssertJSONResponse(t, w, 201, &resp)
	assert.Len(t, resp.Alerts, 1)
	assert.Equal(t, "alert-1", resp.Alerts[0].ID)
}

func TestAddAlert_NegativeMaxPrice(t *testing.T) {
	handler := handlers.NewFavoritesHandler(&handlers.MockFavoritesService{})
	req := handlers.NewTestRequest(t, "POST", "/profiles/me/alerts", handlers.AlertRequest{
		MaxPrice: -1,
	})
	req = handlers.WithIdentityContext(req, "profile-1", "member@example.com")

	w := httptest.NewRecorder()
	handler.AddAlert(w, req)

	handlers.AssertErrorResponse(t, w, 400, "bad_request")
}

func TestAddAlert_EmptyCriteriaRejectedByService(t *testing.T) {
	favorites := &handlers.MockFavoritesService{
		AddAlertFunc: func(ctx context.Context, profileID string, alert models.PropertyAlert) (*services.AlertsResponse, error) {
			return nil, models.ErrBadRequest
		},
	}

	handler := handlers.NewFavoritesHandler(favorites)
	req := handlers.NewTestRequest(t, "POST", "/profiles/me/alerts", handlers.AlertRequest{})
	req = handlers.WithIdentityContext(req, "profile-1", "member@example.com")

	w := httptest.NewRecorder()
	handler.AddAlert(w, req)

	handlers.AssertErrorResponse(t, w, 400, "bad_request")
}

func TestRemoveAlert_Success(t *testing.T) {
	var removedID string
	favorites := &handlers.MockFavoritesService{
		RemoveAlertFunc: func(ctx context.Context, profileID, alertID string) (*services.AlertsResponse, error) {
			removedID = alertID
			return &services.AlertsResponse{Alerts: []models.PropertyAlert{}}, nil
		},
	}

	handler := handlers.NewFavoritesHandler(favorites)
	req := handlers.NewTestRequest(t, "DELETE", "/profiles/me/alerts/alert-1", nil)
	req = handlers.WithIdentityContext(req, "profile-1", "member@example.com")
	req = handlers.WithChiRouteContext(req, map[string]string{"alertID": "alert-1"})

	w := httptest.NewRecorder()
	handler.RemoveAlert(w, req)

	var resp services.AlertsResponse
	handlers.AssertJSONResponse(t, w, 200, &resp)
	assert.Equal(t, "alert-1", removedID)
	assert.Empty(t, resp.Alerts)
}
