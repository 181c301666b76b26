package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pkordes/moto-trip-planner/internal/clock"
	"github.com/pkordes/moto-trip-planner/internal/domain"
)

// StorageKey is the single key under which the Database aggregate is stored.
const StorageKey = "motoTripPlanner.db"

// ErrCorrupt is returned by Decode when a stored payload cannot be parsed or
// carries an unsupported version. Load never returns it: it re-seeds instead.
var ErrCorrupt = errors.New("stored database is corrupt")

// DatabaseRepo loads and saves the whole Database aggregate.
// The service layer depends on this interface, not the concrete
// implementation, which allows services to be unit-tested with a mock.
type DatabaseRepo interface {
	// Load returns the stored Database. An absent or corrupt payload is
	// replaced by freshly seeded data, which is saved before returning.
	Load(ctx context.Context) (domain.Database, error)

	// Save overwrites the stored Database in one write.
	Save(ctx context.Context, db domain.Database) error

	// Reset deletes the stored Database; the next Load re-seeds.
	Reset(ctx context.Context) error
}

// kvDatabaseRepo stores the Database as JSON under StorageKey in a KeyStore.
type kvDatabaseRepo struct {
	store KeyStore
	clock clock.Clock
	log   *slog.Logger
}

// NewDatabaseRepo constructs a DatabaseRepo on top of store. clk stamps the
// seed data; log receives seeding and recovery messages.
func NewDatabaseRepo(store KeyStore, clk clock.Clock, log *slog.Logger) DatabaseRepo {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &kvDatabaseRepo{store: store, clock: clk, log: log}
}

// Load reads and decodes the stored Database, seeding when needed.
// Storage I/O errors are returned; corruption is repaired silently.
func (r *kvDatabaseRepo) Load(ctx context.Context) (domain.Database, error) {
	raw, found, err := r.store.Get(ctx, StorageKey)
	if err != nil {
		return domain.Database{}, fmt.Errorf("repo.DatabaseRepo.Load: %w", err)
	}
	if !found {
		r.log.InfoContext(ctx, "no stored database, seeding", "key", StorageKey)
		return r.reseed(ctx)
	}

	db, err := Decode(raw)
	if err != nil {
		r.log.WarnContext(ctx, "discarding stored database", "key", StorageKey, "error", err)
		return r.reseed(ctx)
	}
	return db, nil
}

// reseed is the recovery path: build seed data and persist it.
func (r *kvDatabaseRepo) reseed(ctx context.Context) (domain.Database, error) {
	db := Seed(r.clock)
	if err := r.Save(ctx, db); err != nil {
		return domain.Database{}, fmt.Errorf("repo.DatabaseRepo.Load: seed: %w", err)
	}
	return db, nil
}

// Save encodes db as JSON and overwrites the stored value.
func (r *kvDatabaseRepo) Save(ctx context.Context, db domain.Database) error {
	raw, err := json.Marshal(db)
	if err != nil {
		return fmt.Errorf("repo.DatabaseRepo.Save: encode: %w", err)
	}
	if err := r.store.Set(ctx, StorageKey, raw); err != nil {
		return fmt.Errorf("repo.DatabaseRepo.Save: %w", err)
	}
	return nil
}

// Reset deletes the stored Database.
func (r *kvDatabaseRepo) Reset(ctx context.Context) error {
	if err := r.store.Delete(ctx, StorageKey); err != nil {
		return fmt.Errorf("repo.DatabaseRepo.Reset: %w", err)
	}
	return nil
}

// Decode parses a stored payload. It returns an error wrapping ErrCorrupt
// when raw is not a JSON Database object or its version is not
// domain.SchemaVersion. Collections are normalized to non-nil slices.
func Decode(raw []byte) (domain.Database, error) {
	var db domain.Database
	if err := json.Unmarshal(raw, &db); err != nil {
		return domain.Database{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if db.Version != domain.SchemaVersion {
		return domain.Database{}, fmt.Errorf("%w: unsupported version %d", ErrCorrupt, db.Version)
	}
	db.Normalize()
	return db, nil
}
