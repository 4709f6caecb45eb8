package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/srpnetwork/realty-api/internal/listing"
	"github.com/srpnetwork/realty-api/internal/models"
)

// PropertyRepository defines the interface for listing data access
type PropertyRepository interface {
	GetByID(ctx context.Context, id string) (*models.Property, error)
	List(ctx context.Context) ([]*models.Property, error)
	ListFeatured(ctx context.Context, limit int) ([]*models.Property, error)
	Create(ctx context.Context, p *models.Property) (*models.Property, error)
	Update(ctx context.Context, id string, p *models.Property) (*models.Property, error)
	Delete(ctx context.Context, id string) error
}

// PropertyResponse represents a listing in HTTP responses
type PropertyResponse struct {
	ID           string                     `json:"id"`
	Title        string                     `json:"title"`
	Price        float64                    `json:"price"`
	Location     string                     `json:"location"`
	Beds         int                        `json:"beds"`
	Baths        int                        `json:"baths"`
	Sqft         int                        `json:"sqft"`
	SqmPrice     float64                    `json:"sqm_price,omitempty"`
	Image        string                     `json:"image"`
	Images       []string                   `json:"images"`
	Description  string                     `json:"description"`
	Type         string                     `json:"type"`
	Status       string                     `json:"status"`
	Featured     bool                       `json:"featured"`
	TitleType    string                     `json:"title_type,omitempty"`
	Landmarks    []string                   `json:"landmarks,omitempty"`
	Amenities    []string                   `json:"amenities,omitempty"`
	Units        []models.PropertyUnit      `json:"units,omitempty"`
	PaymentPlans []models.PaymentPlan       `json:"payment_plans,omitempty"`
	Insights     *models.InvestmentInsights `json:"insights,omitempty"`
	CreatedAt    string                     `json:"created_at"`
}

func propertyModelToResponse(p *models.Property) *PropertyResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return &PropertyResponse{
		ID:           p.ID,
		Title:        p.Title,
		Price:        p.Price,
		Location:     p.Location,
		Beds:         p.Beds,
		Baths:        p.Baths,
		Sqft:         p.Sqft,
		SqmPrice:     p.SqmPrice,
		Image:        p.Image,
		Images:       images,
		Description:  p.Description,
		Type:         p.Type,
		Status:       p.Status,
		Featured:     p.Featured,
		TitleType:    p.TitleType,
		Landmarks:    p.Landmarks,
		Amenities:    p.Amenities,
		Units:        p.Units,
		PaymentPlans: p.PaymentPlans,
		Insights:     p.Insights,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
	}
}

// PropertyService serves the public listing catalogue and the admin CRUD
// surface over it.
type PropertyService struct {
	properties PropertyRepository
	logger     *slog.Logger
}

// NewPropertyService creates a new PropertyService
func NewPropertyService(properties PropertyRepository, logger *slog.Logger) *PropertyService {
	return &PropertyService{properties: properties, logger: logger}
}

// Browse returns the catalogue filtered and sorted for display.
func (s *PropertyService) Browse(ctx context.Context, f listing.Filter, sortOrder string) ([]*PropertyResponse, error) {
	properties, err := s.properties.List(ctx)
	if err != nil {
		s.logger.Error("failed to list properties", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	results := listing.Query(properties, f, sortOrder)

	responses := make([]*PropertyResponse, 0, len(results))
	for _, p := range results {
		responses = append(responses, propertyModelToResponse(p))
	}

	return responses, nil
}

// Featured returns the featured listings for the landing page.
func (s *PropertyService) Featured(ctx context.Context, limit int) ([]*PropertyResponse, error) {
	if limit <= 0 || limit > 20 {
		limit = 6
	}

	properties, err := s.properties.ListFeatured(ctx, limit)
	if err != nil {
		s.logger.Error("failed to list featured properties", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	responses := make([]*PropertyResponse, 0, len(properties))
	for _, p := range properties {
		responses = append(responses, propertyModelToResponse(p))
	}

	return responses, nil
}

// Get returns a single listing by id.
func (s *PropertyService) Get(ctx context.Context, id string) (*PropertyResponse, error) {
	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get property", slog.String("property_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return propertyModelToResponse(property), nil
}

// Create adds a listing to the catalogue. Admin-only.
func (s *PropertyService) Create(ctx context.Context, actor *models.Profile, property *models.Property) (*PropertyResponse, error) {
	if actor == nil || actor.Role != models.RoleAdmin {
		return nil, models.ErrForbidden
	}
	if err := validateProperty(property); err != nil {
		return nil, err
	}

	created, err := s.properties.Create(ctx, property)
	if err != nil {
		s.logger.Error("failed to create property", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("property created",
		slog.String("property_id", created.ID),
		slog.String("actor_id", actor.ID))

	return propertyModelToResponse(created), nil
}

// Update replaces a listing's content. Admin-only.
func (s *PropertyService) Update(ctx context.Context, actor *models.Profile, id string, property *models.Property) (*PropertyResponse, error) {
	if actor == nil || actor.Role != models.RoleAdmin {
		return nil, models.ErrForbidden
	}
	if err := validateProperty(property); err != nil {
		return nil, err
	}

	updated, err := s.properties.Update(ctx, id, property)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to update property", slog.String("property_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("property updated",
		slog.String("property_id", id),
		slog.String("actor_id", actor.ID))

	return propertyModelToResponse(updated), nil
}

// Delete removes a listing. Admin-only.
func (s *PropertyService) Delete(ctx context.Context, actor *models.Profile, id string) error {
	if actor == nil || actor.Role != models.RoleAdmin {
		return models.ErrForbidden
	}

	if err := s.properties.Delete(ctx, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to delete property", slog.String("property_id", id), slog.Any("error", err))
		return models.ErrInternalServer
	}

	s.logger.Info("property deleted",
		slog.String("property_id", id),
		slog.String("actor_id", actor.ID))

	return nil
}

func validateProperty(p *models.Property) error {
	if p == nil {
		return models.ErrBadRequest
	}
	if strings.TrimSpace(p.Title) == "" || strings.TrimSpace(p.Location) == "" {
		return models.ErrBadRequest
	}
	if p.Price < 0 {
		return models.ErrBadRequest
	}
	if p.Type != "" && !models.ValidPropertyType(p.Type) {
		return models.ErrBadRequest
	}
	if p.Status != "" && !models.ValidPropertyStatus(p.Status) {
		return models.ErrBadRequest
	}
	return nil
}
