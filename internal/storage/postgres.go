package storage

import (
	"context"
	"errors"
	"fmt"

	"dashboard/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const preferencesSchema = `
	CREATE TABLE IF NOT EXISTS dashboard_preferences (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

// PostgresRepository implements the Repository interface using PostgreSQL
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository and makes sure
// the preferences table exists
func NewPostgresRepository(ctx context.Context, databaseURL string) (*PostgresRepository, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, preferencesSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create preferences table: %w", err)
	}

	return &PostgresRepository{
		pool: pool,
	}, nil
}

// GetConsent returns the stored consent, or ConsentUnset when none was saved
func (r *PostgresRepository) GetConsent(ctx context.Context) (models.Consent, error) {
	query := `SELECT value FROM dashboard_preferences WHERE key = $1`

	var raw string
	err := r.pool.QueryRow(ctx, query, consentKey).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ConsentUnset, nil
	}
	if err != nil {
		return models.ConsentUnset, fmt.Errorf("failed to read consent: %w", err)
	}

	return decodeConsent(raw)
}

// SaveConsent stores the consent choice
func (r *PostgresRepository) SaveConsent(ctx context.Context, consent models.Consent) error {
	if !consent.Valid() {
		return fmt.Errorf("invalid consent %q", consent)
	}

	query := `
		INSERT INTO dashboard_preferences (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`

	if _, err := r.pool.Exec(ctx, query, consentKey, string(consent)); err != nil {
		return fmt.Errorf("failed to save consent: %w", err)
	}
	return nil
}

// Ping checks database connectivity
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close closes the connection pool
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}
