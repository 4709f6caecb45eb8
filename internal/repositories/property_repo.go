package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
	"github.com/srpnetwork/realty-api/internal/database"
	"github.com/srpnetwork/realty-api/internal/models"
)

type PropertyRepository struct {
	pool *pgxpool.Pool
}

func NewPropertyRepository(db *database.DB) *PropertyRepository {
	return &PropertyRepository{pool: db.Pool}
}

const propertyColumns = `id, title, price, location, beds, baths, sqft, sqm_price,
	image, images, description, type, status, featured, title_type,
	landmarks, amenities, units, payment_plans, insights, created_at, updated_at`

func scanPropertyRow(scanner rowScanner) (*models.Property, error) {
	var p models.Property
	var unitsJSON, plansJSON, insightsJSON []byte

	err := scanner.Scan(
		&p.ID, &p.Title, &p.Price, &p.Location, &p.Beds, &p.Baths, &p.Sqft, &p.SqmPrice,
		&p.Image, pq.Array(&p.Images), &p.Description, &p.Type, &p.Status, &p.Featured, &p.TitleType,
		pq.Array(&p.Landmarks), pq.Array(&p.Amenities), &unitsJSON, &plansJSON, &insightsJSON,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	if len(unitsJSON) > 0 {
		if err := json.Unmarshal(unitsJSON, &p.Units); err != nil {
			return nil, fmt.Errorf("failed to decode units: %w", err)
		}
	}
	if len(plansJSON) > 0 {
		if err := json.Unmarshal(plansJSON, &p.PaymentPlans); err != nil {
			return nil, fmt.Errorf("failed to decode payment plans: %w", err)
		}
	}
	if len(insightsJSON) > 0 {
		if err := json.Unmarshal(insightsJSON, &p.Insights); err != nil {
			return nil, fmt.Errorf("failed to decode insights: %w", err)
		}
	}

	return &p, nil
}

func scanPropertyRows(rows pgx.Rows) ([]*models.Property, error) {
	defer rows.Close()

	properties := make([]*models.Property, 0)

	for rows.Next() {
		p, err := scanPropertyRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		properties = append(properties, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return properties, nil
}

func (r *PropertyRepository) GetByID(ctx context.Context, id string) (*models.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`

	return scanPropertyRow(r.pool.QueryRow(ctx, query, id))
}

// List returns the full collection, newest first. Filtering and sorting for
// display happen in the listing package over this in-memory collection.
func (r *PropertyRepository) List(ctx context.Context) ([]*models.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}

	return scanPropertyRows(rows)
}

// ListFeatured returns featured listings for the home page
func (r *PropertyRepository) ListFeatured(ctx context.Context, limit int) ([]*models.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE featured = TRUE ORDER BY created_at DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query featured properties: %w", err)
	}

	return scanPropertyRows(rows)
}

func (r *PropertyRepository) Create(ctx context.Context, p *models.Property) (*models.Property, error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	unitsJSON, plansJSON, insightsJSON, err := encodePropertyJSON(p)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO properties (id, title, price, location, beds, baths, sqft, sqm_price,
			image, images, description, type, status, featured, title_type,
			landmarks, amenities, units, payment_plans, insights, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		RETURNING ` + propertyColumns

	return scanPropertyRow(r.pool.QueryRow(ctx, query,
		p.ID, p.Title, p.Price, p.Location, p.Beds, p.Baths, p.Sqft, p.SqmPrice,
		p.Image, pq.Array(p.Images), p.Description, p.Type, p.Status, p.Featured, p.TitleType,
		pq.Array(p.Landmarks), pq.Array(p.Amenities), unitsJSON, plansJSON, insightsJSON,
		p.CreatedAt, p.UpdatedAt,
	))
}

func (r *PropertyRepository) Update(ctx context.Context, id string, p *models.Property) (*models.Property, error) {
	p.UpdatedAt = time.Now()

	unitsJSON, plansJSON, insightsJSON, err := encodePropertyJSON(p)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE properties SET title = $1, price = $2, location = $3, beds = $4, baths = $5,
			sqft = $6, sqm_price = $7, image = $8, images = $9, description = $10,
			type = $11, status = $12, featured = $13, title_type = $14,
			landmarks = $15, amenities = $16, units = $17, payment_plans = $18,
			insights = $19, updated_at = $20
		WHERE id = $21
		RETURNING ` + propertyColumns

	return scanPropertyRow(r.pool.QueryRow(ctx, query,
		p.Title, p.Price, p.Location, p.Beds, p.Baths,
		p.Sqft, p.SqmPrice, p.Image, pq.Array(p.Images), p.Description,
		p.Type, p.Status, p.Featured, p.TitleType,
		pq.Array(p.Landmarks), pq.Array(p.Amenities), unitsJSON, plansJSON,
		insightsJSON, p.UpdatedAt, id,
	))
}

func (r *PropertyRepository) Delete(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

func encodePropertyJSON(p *models.Property) (units, plans, insights []byte, err error) {
	if p.Units == nil {
		p.Units = []models.PropertyUnit{}
	}
	if p.PaymentPlans == nil {
		p.PaymentPlans = []models.PaymentPlan{}
	}

	units, err = json.Marshal(p.Units)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to encode units: %w", err)
	}
	plans, err = json.Marshal(p.PaymentPlans)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to encode payment plans: %w", err)
	}
	if p.Insights != nil {
		insights, err = json.Marshal(p.Insights)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to encode insights: %w", err)
		}
	}
	return units, plans, insights, nil
}
