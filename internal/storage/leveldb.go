package storage

import (
	"context"
	"errors"
	"fmt"

	"dashboard/internal/models"

	"github.com/syndtr/goleveldb/leveldb"
	lstorage "github.com/syndtr/goleveldb/leveldb/storage"
)

// LevelDBRepository implements Repository with an embedded LevelDB
type LevelDBRepository struct {
	db *leveldb.DB
}

// NewLevelDBRepository opens (or creates) a LevelDB at path
func NewLevelDBRepository(path string) (*LevelDBRepository, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open preferences at %s: %w", path, err)
	}
	return &LevelDBRepository{db: db}, nil
}

// NewMemLevelDBRepository opens a LevelDB held in memory
func NewMemLevelDBRepository() (*LevelDBRepository, error) {
	db, err := leveldb.Open(lstorage.NewMemStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory preferences: %w", err)
	}
	return &LevelDBRepository{db: db}, nil
}

// GetConsent returns the stored consent, or ConsentUnset when none was saved
func (r *LevelDBRepository) GetConsent(ctx context.Context) (models.Consent, error) {
	data, err := r.db.Get([]byte(consentKey), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return models.ConsentUnset, nil
	}
	if err != nil {
		return models.ConsentUnset, fmt.Errorf("failed to read consent: %w", err)
	}
	return decodeConsent(string(data))
}

// SaveConsent stores the consent choice
func (r *LevelDBRepository) SaveConsent(ctx context.Context, consent models.Consent) error {
	if !consent.Valid() {
		return fmt.Errorf("invalid consent %q", consent)
	}
	if err := r.db.Put([]byte(consentKey), []byte(consent), nil); err != nil {
		return fmt.Errorf("failed to save consent: %w", err)
	}
	return nil
}

// Ping checks the database is still open
func (r *LevelDBRepository) Ping(ctx context.Context) error {
	_, err := r.db.GetProperty("leveldb.stats")
	return err
}

// Close closes the database
func (r *LevelDBRepository) Close() error {
	return r.db.Close()
}
