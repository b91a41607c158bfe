package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CachedResponse is a response recorded for an Idempotency-Key, replayed
// verbatim when the same user retries the same request.
type CachedResponse struct {
	Key          string
	UserID       uuid.UUID
	RequestHash  string
	StatusCode   int
	ResponseBody []byte
	CreatedAt    time.Time
	ExpiresAt    time.Time
}

type IdempotencyRepository struct {
	db *sql.DB
}

func NewIdempotencyRepository(db *sql.DB) *IdempotencyRepository {
	return &IdempotencyRepository{db: db}
}

// Lookup returns the unexpired response stored under key for userID, or nil
// when there is none.
func (r *IdempotencyRepository) Lookup(ctx context.Context, key string, userID uuid.UUID) (*CachedResponse, error) {
	var c CachedResponse
	err := r.db.QueryRowContext(ctx,
		`SELECT idempotency_key, user_id, request_hash, status_code, response_body, created_at, expires_at
		FROM idempotency_cache
		WHERE idempotency_key = $1 AND user_id = $2 AND expires_at > now()`,
		key, userID,
	).Scan(&c.Key, &c.UserID, &c.RequestHash, &c.StatusCode, &c.ResponseBody, &c.CreatedAt, &c.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Lookup: %w", err)
	}
	return &c, nil
}

// Save stores c. An expired entry under the same key is overwritten; a live
// one wins.
func (r *IdempotencyRepository) Save(ctx context.Context, c *CachedResponse) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO idempotency_cache (idempotency_key, user_id, request_hash, status_code, response_body, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (idempotency_key, user_id) DO UPDATE SET
			request_hash = EXCLUDED.request_hash,
			status_code = EXCLUDED.status_code,
			response_body = EXCLUDED.response_body,
			created_at = EXCLUDED.created_at,
			expires_at = EXCLUDED.expires_at
		WHERE idempotency_cache.expires_at <= now()`,
		c.Key, c.UserID, c.RequestHash, c.StatusCode, c.ResponseBody, c.CreatedAt, c.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("Save: %w", err)
	}
	return nil
}

// Purge deletes entries that expired before now and reports how many.
func (r *IdempotencyRepository) Purge(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM idempotency_cache WHERE expires_at < $1`, now,
	)
	if err != nil {
		return 0, fmt.Errorf("Purge: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("Purge: rows affected: %w", err)
	}
	return n, nil
}
