package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/srpnetwork/realty-api/internal/database"
)

// TokenRevocationRepository is the JWT denylist. A token stays listed until
// its natural expiry, after which the background sweeper removes it.
type TokenRevocationRepository struct {
	pool *pgxpool.Pool
}

func NewTokenRevocationRepository(db *database.DB) *TokenRevocationRepository {
	return &TokenRevocationRepository{pool: db.Pool}
}

// RevokeToken denylists a token by its jti.
func (r *TokenRevocationRepository) RevokeToken(ctx context.Context, jti, profileID, tokenType string, expiresAt time.Time, reason string) error {
	const query = `
		INSERT INTO revoked_tokens (id, jti, profile_id, token_type, expires_at, reason)
		VALUES ($1, $2, $3, $4, $5, $6)`

	if _, err := r.pool.Exec(ctx, query, uuid.New().String(), jti, profileID, tokenType, expiresAt, reason); err != nil {
		return database.MapPostgresError(err)
	}
	return nil
}

// IsTokenRevoked reports whether the jti is on the denylist. Called on every
// authenticated request, hence the unique index on jti.
func (r *TokenRevocationRepository) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM revoked_tokens WHERE jti = $1)`

	var revoked bool
	if err := r.pool.QueryRow(ctx, query, jti).Scan(&revoked); err != nil {
		return false, database.MapPostgresError(err)
	}
	return revoked, nil
}

// CleanupExpiredTokens drops entries whose token has expired on its own.
func (r *TokenRevocationRepository) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	const query = `DELETE FROM revoked_tokens WHERE expires_at < $1`

	tag, err := r.pool.Exec(ctx, query, time.Now())
	if err != nil {
		return 0, database.MapPostgresError(err)
	}
	return tag.RowsAffected(), nil
}
