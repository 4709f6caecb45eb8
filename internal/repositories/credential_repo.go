package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/srpnetwork/realty-api/internal/database"
	"github.com/srpnetwork/realty-api/internal/models"
)

// CredentialRepository is the credential store: email/password records,
// keyed by the identity id the profile row shares.
type CredentialRepository struct {
	pool *pgxpool.Pool
}

func NewCredentialRepository(db *database.DB) *CredentialRepository {
	return &CredentialRepository{pool: db.Pool}
}

func (r *CredentialRepository) GetByEmail(ctx context.Context, email string) (*models.Credential, error) {
	query := `SELECT id, email, password_hash, created_at FROM credentials WHERE email = $1`

	var cred models.Credential
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&cred.ID, &cred.Email, &cred.PasswordHash, &cred.CreatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &cred, nil
}

func (r *CredentialRepository) Create(ctx context.Context, cred *models.Credential) (*models.Credential, error) {
	if cred.ID == "" {
		cred.ID = uuid.New().String()
	}
	cred.CreatedAt = time.Now()

	query := `
		INSERT INTO credentials (id, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, password_hash, created_at
	`

	var created models.Credential
	err := r.pool.QueryRow(ctx, query,
		cred.ID, cred.Email, cred.PasswordHash, cred.CreatedAt,
	).Scan(&created.ID, &created.Email, &created.PasswordHash, &created.CreatedAt)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &created, nil
}
