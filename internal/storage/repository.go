package storage

import (
	"context"
	"fmt"
	"log/slog"

	"dashboard/internal/models"
)

// consentKey is the preference key holding the analytics consent choice
const consentKey = "pakana_consent"

// Repository persists the dashboard's client-side preferences.
// Fetched ledger and account data is never stored.
type Repository interface {
	GetConsent(ctx context.Context) (models.Consent, error)
	SaveConsent(ctx context.Context, consent models.Consent) error

	// Health & Maintenance
	Ping(ctx context.Context) error
	Close() error
}

// Open returns a Postgres repository when databaseURL is set and a local
// LevelDB repository at path otherwise.
func Open(ctx context.Context, databaseURL, path string) (Repository, error) {
	if databaseURL != "" {
		repo, err := NewPostgresRepository(ctx, databaseURL)
		if err != nil {
			return nil, err
		}
		slog.Info("Preferences stored in PostgreSQL")
		return repo, nil
	}

	repo, err := NewLevelDBRepository(path)
	if err != nil {
		return nil, err
	}
	slog.Info("Preferences stored in LevelDB", "path", path)
	return repo, nil
}

// decodeConsent accepts the current values and the legacy "true"/"false" flag
func decodeConsent(raw string) (models.Consent, error) {
	switch raw {
	case "", string(models.ConsentAccepted), string(models.ConsentDeclined):
		return models.Consent(raw), nil
	case "true":
		return models.ConsentAccepted, nil
	case "false":
		return models.ConsentDeclined, nil
	default:
		return models.ConsentUnset, fmt.Errorf("unknown consent value %q", raw)
	}
}
