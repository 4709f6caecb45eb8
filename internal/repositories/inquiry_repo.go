package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/srpnetwork/realty-api/internal/database"
	"github.com/srpnetwork/realty-api/internal/models"
)

type InquiryRepository struct {
	pool *pgxpool.Pool
}

func NewInquiryRepository(db *database.DB) *InquiryRepository {
	return &InquiryRepository{pool: db.Pool}
}

const inquiryColumns = `id, name, email, phone, message, property_id, property_title, user_id, created_at`

func scanInquiryRow(scanner rowScanner) (*models.Inquiry, error) {
	var inquiry models.Inquiry
	var phone, propertyTitle *string

	err := scanner.Scan(
		&inquiry.ID, &inquiry.Name, &inquiry.Email, &phone, &inquiry.Message,
		&inquiry.PropertyID, &propertyTitle, &inquiry.UserID, &inquiry.CreatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	if phone != nil {
		inquiry.Phone = *phone
	}
	if propertyTitle != nil {
		inquiry.PropertyTitle = *propertyTitle
	}

	return &inquiry, nil
}

func (r *InquiryRepository) Create(ctx context.Context, inquiry *models.Inquiry) (*models.Inquiry, error) {
	inquiry.ID = uuid.New().String()
	inquiry.CreatedAt = time.Now()

	var phone, propertyTitle *string
	if inquiry.Phone != "" {
		phone = &inquiry.Phone
	}
	if inquiry.PropertyTitle != "" {
		propertyTitle = &inquiry.PropertyTitle
	}

	query := `
		INSERT INTO inquiries (id, name, email, phone, message, property_id, property_title, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + inquiryColumns

	return scanInquiryRow(r.pool.QueryRow(ctx, query,
		inquiry.ID, inquiry.Name, inquiry.Email, phone, inquiry.Message,
		inquiry.PropertyID, propertyTitle, inquiry.UserID, inquiry.CreatedAt,
	))
}

// ListByUser returns a member's own inquiry history, newest first
func (r *InquiryRepository) ListByUser(ctx context.Context, userID string) ([]*models.Inquiry, error) {
	query := `SELECT ` + inquiryColumns + ` FROM inquiries WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query inquiries: %w", err)
	}

	return scanInquiryRows(rows)
}

func scanInquiryRows(rows pgx.Rows) ([]*models.Inquiry, error) {
	defer rows.Close()

	inquiries := make([]*models.Inquiry, 0)

	for rows.Next() {
		inquiry, err := scanInquiryRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inquiry: %w", err)
		}
		inquiries = append(inquiries, inquiry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return inquiries, nil
}
