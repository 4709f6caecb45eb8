package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/srpnetwork/realty-api/internal/models"
	"github.com/srpnetwork/realty-api/internal/notify"
)

// PropertyGetter resolves a single listing, used when a notification needs
// the property title.
type PropertyGetter interface {
	GetByID(ctx context.Context, id string) (*models.Property, error)
}

// FavoritesResponse is the result of a favorite toggle
type FavoritesResponse struct {
	Favorited bool     `json:"favorited"`
	Favorites []string `json:"favorites"`
}

// AlertsResponse wraps a profile's saved-search alert list
type AlertsResponse struct {
	Alerts []models.PropertyAlert `json:"alerts"`
}

// FavoritesService owns each member's saved-property set and saved-search
// alerts.
type FavoritesService struct {
	profiles   ProfileRepository
	properties PropertyGetter
	notifier   Notifier
	logger     *slog.Logger
}

// NewFavoritesService creates a new FavoritesService
func NewFavoritesService(profiles ProfileRepository, properties PropertyGetter, notifier Notifier, logger *slog.Logger) *FavoritesService {
	return &FavoritesService{
		profiles:   profiles,
		properties: properties,
		notifier:   notifier,
		logger:     logger,
	}
}

// Toggle adds the property to the profile's favorites if absent, removes it
// if present. The new set is persisted before it is returned; on a failed
// write the caller sees an error and the stored set is unchanged.
func (s *FavoritesService) Toggle(ctx context.Context, profileID, propertyID string) (*FavoritesResponse, error) {
	if propertyID = strings.TrimSpace(propertyID); propertyID == "" {
		return nil, models.ErrBadRequest
	}

	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrProfileMissing
		}
		s.logger.Error("failed to get profile for favorite toggle", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	favorited := false
	next := make([]string, 0, len(profile.Favorites)+1)
	for _, id := range profile.Favorites {
		if id != propertyID {
			next = append(next, id)
		}
	}
	if len(next) == len(profile.Favorites) {
		next = append(next, propertyID)
		favorited = true
	}

	if err := s.profiles.UpdateFavorites(ctx, profileID, next); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrProfileMissing
		}
		s.logger.Error("failed to persist favorites",
			slog.String("profile_id", profileID),
			slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("favorite toggled",
		slog.String("profile_id", profileID),
		slog.String("property_id", propertyID),
		slog.Bool("favorited", favorited))

	return &FavoritesResponse{Favorited: favorited, Favorites: next}, nil
}

// List returns the profile's current favorite set
func (s *FavoritesService) List(ctx context.Context, profileID string) ([]string, error) {
	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrProfileMissing
		}
		return nil, models.ErrInternalServer
	}

	if profile.Favorites == nil {
		return []string{}, nil
	}
	return profile.Favorites, nil
}

// AddAlert appends a saved-search alert to the profile. The alert id is
// assigned here and is unique within the owning profile's list.
func (s *FavoritesService) AddAlert(ctx context.Context, profileID string, alert models.PropertyAlert) (*AlertsResponse, error) {
	if alert.Type == "" && alert.Location == "" && alert.MaxPrice <= 0 && alert.MinBeds <= 0 {
		return nil, models.ErrBadRequest
	}
	if alert.Type != "" && !models.ValidPropertyType(alert.Type) {
		return nil, models.ErrBadRequest
	}

	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrProfileMissing
		}
		s.logger.Error("failed to get profile for alert", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	alert.ID = uuid.New().String()
	next := append(append([]models.PropertyAlert{}, profile.Alerts...), alert)

	if err := s.profiles.UpdateAlerts(ctx, profileID, next); err != nil {
		s.logger.Error("failed to persist alerts",
			slog.String("profile_id", profileID),
			slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("property alert added",
		slog.String("profile_id", profileID),
		slog.String("alert_id", alert.ID))

	return &AlertsResponse{Alerts: next}, nil
}

// RemoveAlert deletes one alert by id. Removing an unknown id is a no-op
// success so repeated deletes converge.
func (s *FavoritesService) RemoveAlert(ctx context.Context, profileID, alertID string) (*AlertsResponse, error) {
	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrProfileMissing
		}
		return nil, models.ErrInternalServer
	}

	next := make([]models.PropertyAlert, 0, len(profile.Alerts))
	for _, a := range profile.Alerts {
		if a.ID != alertID {
			next = append(next, a)
		}
	}

	if len(next) != len(profile.Alerts) {
		if err := s.profiles.UpdateAlerts(ctx, profileID, next); err != nil {
			s.logger.Error("failed to persist alerts",
				slog.String("profile_id", profileID),
				slog.Any("error", err))
			return nil, models.ErrInternalServer
		}
	}

	return &AlertsResponse{Alerts: next}, nil
}

// NotifyPropertyUpdate fans an update notice out to every member who has the
// property in their favorites. Admin-only. Send failures are counted and
// logged; the operation succeeds as long as the recipient set was resolved.
// Returns recipients attempted and per-recipient failures.
func (s *FavoritesService) NotifyPropertyUpdate(ctx context.Context, actor *models.Profile, propertyID string) (recipients, failures int, err error) {
	if actor == nil || actor.Role != models.RoleAdmin {
		return 0, 0, models.ErrForbidden
	}
	if propertyID = strings.TrimSpace(propertyID); propertyID == "" {
		return 0, 0, models.ErrBadRequest
	}

	profiles, err := s.profiles.FindByFavorite(ctx, propertyID)
	if err != nil {
		s.logger.Error("failed to resolve favorite holders",
			slog.String("property_id", propertyID),
			slog.Any("error", err))
		return 0, 0, models.ErrInternalServer
	}

	toNotify := make([]notify.Recipient, 0, len(profiles))
	for _, p := range profiles {
		toNotify = append(toNotify, notify.Recipient{Email: p.Email, Name: p.Name})
	}

	title := ""
	if property, err := s.properties.GetByID(ctx, propertyID); err == nil {
		title = property.Title
	}

	failures = s.notifier.FavoritePropertyUpdated(ctx, toNotify, propertyID, title)
	if failures > 0 {
		s.logger.Warn("favorite update fan-out had failures",
			slog.String("property_id", propertyID),
			slog.Int("failures", failures),
			slog.Int("recipients", len(toNotify)))
	}

	return len(toNotify), failures, nil
}
