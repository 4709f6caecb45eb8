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

type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(db *database.DB) *ProfileRepository {
	return &ProfileRepository{pool: db.Pool}
}

const profileColumns = `id, name, email, role, status, favorites, alerts, created_at, updated_at`

// rowScanner interface for scanning profile rows (single row or rows)
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanProfileRow handles the array and jsonb columns and populates a Profile
func scanProfileRow(scanner rowScanner) (*models.Profile, error) {
	var profile models.Profile
	var alertsJSON []byte

	err := scanner.Scan(
		&profile.ID, &profile.Name, &profile.Email,
		&profile.Role, &profile.Status,
		pq.Array(&profile.Favorites), &alertsJSON,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	if len(alertsJSON) > 0 {
		if err := json.Unmarshal(alertsJSON, &profile.Alerts); err != nil {
			return nil, fmt.Errorf("failed to decode alerts: %w", err)
		}
	}
	if profile.Favorites == nil {
		profile.Favorites = []string{}
	}
	if profile.Alerts == nil {
		profile.Alerts = []models.PropertyAlert{}
	}

	return &profile, nil
}

func scanProfileRows(rows pgx.Rows) ([]*models.Profile, error) {
	defer rows.Close()

	profiles := make([]*models.Profile, 0)

	for rows.Next() {
		profile, err := scanProfileRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return profiles, nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`

	return scanProfileRow(r.pool.QueryRow(ctx, query, id))
}

func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE email = $1`

	return scanProfileRow(r.pool.QueryRow(ctx, query, email))
}

// List returns profiles with pending registrations first, newest within each status
func (r *ProfileRepository) List(ctx context.Context, limit, offset int) ([]*models.Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM profiles ORDER BY status DESC, created_at DESC LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}

	return scanProfileRows(rows)
}

func (r *ProfileRepository) Create(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}

	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	if profile.Role == "" {
		profile.Role = models.RoleMember
	}
	if profile.Status == "" {
		profile.Status = models.StatusPending
	}
	if profile.Favorites == nil {
		profile.Favorites = []string{}
	}
	if profile.Alerts == nil {
		profile.Alerts = []models.PropertyAlert{}
	}

	alertsJSON, err := json.Marshal(profile.Alerts)
	if err != nil {
		return nil, fmt.Errorf("failed to encode alerts: %w", err)
	}

	query := `
		INSERT INTO profiles (id, name, email, role, status, favorites, alerts, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + profileColumns

	return scanProfileRow(r.pool.QueryRow(ctx, query,
		profile.ID, profile.Name, profile.Email,
		profile.Role, profile.Status,
		pq.Array(profile.Favorites), alertsJSON,
		profile.CreatedAt, profile.UpdatedAt,
	))
}

func (r *ProfileRepository) Update(ctx context.Context, id string, profile *models.Profile) (*models.Profile, error) {
	profile.UpdatedAt = time.Now()

	query := `
		UPDATE profiles SET name = $1, role = $2, status = $3, updated_at = $4
		WHERE id = $5
		RETURNING ` + profileColumns

	return scanProfileRow(r.pool.QueryRow(ctx, query,
		profile.Name, profile.Role, profile.Status, profile.UpdatedAt, id,
	))
}

// UpdateFavorites overwrites the favorite set. Last writer wins: there is no
// version token, concurrent toggles from two devices race by design.
func (r *ProfileRepository) UpdateFavorites(ctx context.Context, id string, favorites []string) error {
	query := `UPDATE profiles SET favorites = $1, updated_at = $2 WHERE id = $3`

	result, err := r.pool.Exec(ctx, query, pq.Array(favorites), time.Now(), id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

// UpdateAlerts overwrites the saved-search alert list
func (r *ProfileRepository) UpdateAlerts(ctx context.Context, id string, alerts []models.PropertyAlert) error {
	alertsJSON, err := json.Marshal(alerts)
	if err != nil {
		return fmt.Errorf("failed to encode alerts: %w", err)
	}

	query := `UPDATE profiles SET alerts = $1, updated_at = $2 WHERE id = $3`

	result, err := r.pool.Exec(ctx, query, alertsJSON, time.Now(), id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

// FindByFavorite returns every profile that has the property in its favorites
func (r *ProfileRepository) FindByFavorite(ctx context.Context, propertyID string) ([]*models.Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM profiles WHERE $1 = ANY(favorites) ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles by favorite: %w", err)
	}

	return scanProfileRows(rows)
}

// CountByStatus returns the number of profiles in the given membership status
func (r *ProfileRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM profiles WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, database.MapPostgresError(err)
	}
	return count, nil
}
