package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srpnetwork/realty-api/internal/listing"
	"github.com/srpnetwork/realty-api/internal/models"
)

func newPropertyService(properties PropertyRepository) *PropertyService {
	return NewPropertyService(properties, slog.Default())
}

// ============================================================================
// Browse Tests
// ============================================================================

func TestPropertyService_Browse_FiltersAndSorts(t *testing.T) {
	cheap := NewTestProperty("prop_a", "Ikoyi Duplex", 100_000_000)
	expensive := NewTestProperty("prop_b", "Banana Island Villa", 900_000_000)

	mockProperties := &MockPropertyRepository{
		ListFunc: func(ctx context.Context) ([]*models.Property, error) {
			return []*models.Property{expensive, cheap}, nil
		},
	}

	svc := newPropertyService(mockProperties)

	resp, err := svc.Browse(context.Background(), listing.Filter{}, listing.SortPriceLowHigh)

	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.Equal(t, "prop_a", resp[0].ID)
	assert.Equal(t, "prop_b", resp[1].ID)
}

func TestPropertyService_Browse_EmptyResultIsNotAnError(t *testing.T) {
	mockProperties := &MockPropertyRepository{
		ListFunc: func(ctx context.Context) ([]*models.Property, error) {
			return []*models.Property{NewTestProperty("prop_a", "Ikoyi Duplex", 100_000_000)}, nil
		},
	}

	svc := newPropertyService(mockProperties)

	resp, err := svc.Browse(context.Background(), listing.Filter{Search: "no such place"}, "")

	require.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Empty(t, resp)
}

func TestPropertyService_Browse_RepositoryError(t *testing.T) {
	mockProperties := &MockPropertyRepository{
		ListFunc: func(ctx context.Context) ([]*models.Property, error) {
			return nil, errors.New("connection refused")
		},
	}

	svc := newPropertyService(mockProperties)

	_, err := svc.Browse(context.Background(), listing.Filter{}, "")

	assert.ErrorIs(t, err, models.ErrInternalServer)
}

// ============================================================================
// Featured Tests
// ============================================================================

func TestPropertyService_Featured_ClampsLimit(t *testing.T) {
	var gotLimit int
	mockProperties := &MockPropertyRepository{
		ListFeaturedFunc: func(ctx context.Context, limit int) ([]*models.Property, error) {
			gotLimit = limit
			return []*models.Property{}, nil
		},
	}

	svc := newPropertyService(mockProperties)

	_, err := svc.Featured(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 6, gotLimit)

	_, err = svc.Featured(context.Background(), 500)
	require.NoError(t, err)
	assert.Equal(t, 6, gotLimit)

	_, err = svc.Featured(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, gotLimit)
}

// ============================================================================
// Get Tests
// ============================================================================

func TestPropertyService_Get_Success(t *testing.T) {
	property := NewTestProperty("prop_a", "Ikoyi Duplex", 100_000_000)
	property.CreatedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mockProperties := &MockPropertyRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.Property, error) {
			assert.Equal(t, "prop_a", id)
			return property, nil
		},
	}

	svc := newPropertyService(mockProperties)

	resp, err := svc.Get(context.Background(), "prop_a")

	require.NoError(t, err)
	assert.Equal(t, "Ikoyi Duplex", resp.Title)
	assert.Equal(t, "2026-03-01T12:00:00Z", resp.CreatedAt)
	assert.NotNil(t, resp.Images)
}

func TestPropertyService_Get_NotFound(t *testing.T) {
	svc := newPropertyService(&MockPropertyRepository{})

	_, err := svc.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, models.ErrNotFound)
}

// ============================================================================
// Create Tests
// ============================================================================

func TestPropertyService_Create_Success(t *testing.T) {
	admin := NewTestAdmin("admin123", "admin@example.com", "Admin")
	property := NewTestProperty("", "Ikoyi Duplex", 100_000_000)

	mockProperties := &MockPropertyRepository{
		CreateFunc: func(ctx context.Context, p *models.Property) (*models.Property, error) {
			p.ID = "prop_new"
			return p, nil
		},
	}

	svc := newPropertyService(mockProperties)

	resp, err := svc.Create(context.Background(), admin, property)

	require.NoError(t, err)
	assert.Equal(t, "prop_new", resp.ID)
}

func TestPropertyService_Create_NonAdminForbidden(t *testing.T) {
	member := NewTestProfile("member123", "member@example.com", "Member")
	svc := newPropertyService(&MockPropertyRepository{})

	_, err := svc.Create(context.Background(), member, NewTestProperty("", "Ikoyi Duplex", 100_000_000))

	assert.ErrorIs(t, err, models.ErrForbidden)
}

func TestPropertyService_Create_NilActorForbidden(t *testing.T) {
	svc := newPropertyService(&MockPropertyRepository{})

	_, err := svc.Create(context.Background(), nil, NewTestProperty("", "Ikoyi Duplex", 100_000_000))

	assert.ErrorIs(t, err, models.ErrForbidden)
}

func TestPropertyService_Create_Validation(t *testing.T) {
	admin := NewTestAdmin("admin123", "admin@example.com", "Admin")
	svc := newPropertyService(&MockPropertyRepository{})

	tests := []struct {
		name   string
		mutate func(p *models.Property)
	}{
		{"missing title", func(p *models.Property) { p.Title = "  " }},
		{"missing location", func(p *models.Property) { p.Location = "" }},
		{"negative price", func(p *models.Property) { p.Price = -1 }},
		{"unknown type", func(p *models.Property) { p.Type = "Castle" }},
		{"unknown status", func(p *models.Property) { p.Status = "On Hold" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			property := NewTestProperty("", "Ikoyi Duplex", 100_000_000)
			tt.mutate(property)

			_, err := svc.Create(context.Background(), admin, property)

			assert.ErrorIs(t, err, models.ErrBadRequest)
		})
	}
}

// ============================================================================
// Update / Delete Tests
// ============================================================================

func TestPropertyService_Update_NotFound(t *testing.T) {
	admin := NewTestAdmin("admin123", "admin@example.com", "Admin")
	mockProperties := &MockPropertyRepository{
		UpdateFunc: func(ctx context.Context, id string, p *models.Property) (*models.Property, error) {
			return nil, models.ErrNotFound
		},
	}

	svc := newPropertyService(mockProperties)

	_, err := svc.Update(context.Background(), admin, "missing", NewTestProperty("", "Ikoyi Duplex", 100_000_000))

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestPropertyService_Update_NonAdminForbidden(t *testing.T) {
	member := NewTestProfile("member123", "member@example.com", "Member")
	svc := newPropertyService(&MockPropertyRepository{})

	_, err := svc.Update(context.Background(), member, "prop_a", NewTestProperty("", "Ikoyi Duplex", 100_000_000))

	assert.ErrorIs(t, err, models.ErrForbidden)
}

func TestPropertyService_Delete_Success(t *testing.T) {
	admin := NewTestAdmin("admin123", "admin@example.com", "Admin")

	var deletedID string
	mockProperties := &MockPropertyRepository{
		DeleteFunc: func(ctx context.Context, id string) error {
			deletedID = id
			return nil
		},
	}

	svc := newPropertyService(mockProperties)

	err := svc.Delete(context.Background(), admin, "prop_a")

	require.NoError(t, err)
	assert.Equal(t, "prop_a", deletedID)
}

func TestPropertyService_Delete_NonAdminForbidden(t *testing.T) {
	member := NewTestProfile("member123", "member@example.com", "Member")
	svc := newPropertyService(&MockPropertyRepository{})

	err := svc.Delete(context.Background(), member, "prop_a")

	assert.ErrorIs(t, err, models.ErrForbidden)
}
