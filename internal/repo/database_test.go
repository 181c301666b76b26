package repo_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/moto-trip-planner/internal/clock"
	"github.com/pkordes/moto-trip-planner/internal/domain"
	"github.com/pkordes/moto-trip-planner/internal/repo"
)

var seedTime = time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

func newTestRepo(t *testing.T) (repo.DatabaseRepo, *repo.MemoryStore) {
	t.Helper()
	store := repo.NewMemoryStore()
	return repo.NewDatabaseRepo(store, clock.Fake(seedTime), nil), store
}

// ---- Load ------------------------------------------------------------------

func TestDatabaseRepo_Load_SeedsAndPersistsWhenAbsent(t *testing.T) {
	r, store := newTestRepo(t)
	ctx := context.Background()

	db, err := r.Load(ctx)

	require.NoError(t, err)
	require.Len(t, db.Users, 1)
	assert.Equal(t, repo.DemoEmail, db.Users[0].Email)

	_, found, err := store.Get(ctx, repo.StorageKey)
	require.NoError(t, err)
	assert.True(t, found, "seed data should be saved before Load returns")
}

func TestDatabaseRepo_Load_ReturnsStoredDatabase(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	first, err := r.Load(ctx)
	require.NoError(t, err)

	second, err := r.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, first.Users[0].ID, second.Users[0].ID, "second load must not re-seed")
}

func TestDatabaseRepo_Load_ReseedsCorruptPayload(t *testing.T) {
	r, store := newTestRepo(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, repo.StorageKey, []byte("{not json")))

	db, err := r.Load(ctx)

	require.NoError(t, err, "corruption is repaired, not reported")
	assert.Len(t, db.Users, 1)

	raw, _, err := store.Get(ctx, repo.StorageKey)
	require.NoError(t, err)
	_, err = repo.Decode(raw)
	assert.NoError(t, err, "the repaired payload should decode cleanly")
}

func TestDatabaseRepo_Load_ReseedsWrongVersion(t *testing.T) {
	r, store := newTestRepo(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, repo.StorageKey, []byte(`{"version":2,"users":[],"groups":[],"trips":[],"session":{"currentUserId":null}}`)))

	db, err := r.Load(ctx)

	require.NoError(t, err)
	assert.Equal(t, domain.SchemaVersion, db.Version)
	assert.Len(t, db.Trips, 3)
}

func TestDatabaseRepo_Load_LogsRecovery(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	store := repo.NewMemoryStore()
	r := repo.NewDatabaseRepo(store, clock.Fake(seedTime), logger)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, repo.StorageKey, []byte("null")))

	_, err := r.Load(ctx)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "discarding stored database", entry["msg"])
}

func TestDatabaseRepo_Load_PropagatesStoreErrors(t *testing.T) {
	boom := errors.New("disk on fire")
	r := repo.NewDatabaseRepo(&failingStore{err: boom}, clock.Fake(seedTime), nil)

	_, err := r.Load(context.Background())

	assert.ErrorIs(t, err, boom)
}

// ---- Save / round trip -----------------------------------------------------

func TestDatabaseRepo_SaveLoadRoundTrip(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	original, err := r.Load(ctx)
	require.NoError(t, err)
	id := original.Users[0].ID
	original.SetCurrentUser(&id)
	original.Trips[1].ParticipantIDs = []domain.UserID{}

	require.NoError(t, r.Save(ctx, original))
	reloaded, err := r.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, original, reloaded)
}

// ---- Reset -----------------------------------------------------------------

func TestDatabaseRepo_Reset(t *testing.T) {
	r, store := newTestRepo(t)
	ctx := context.Background()

	db, err := r.Load(ctx)
	require.NoError(t, err)
	db.Users[0].Profile.Name = "Changed"
	require.NoError(t, r.Save(ctx, db))

	require.NoError(t, r.Reset(ctx))
	_, found, err := store.Get(ctx, repo.StorageKey)
	require.NoError(t, err)
	assert.False(t, found, "reset deletes the key outright")

	fresh, err := r.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Demo Rider", fresh.Users[0].Profile.Name)
	assert.NotEqual(t, db.Users[0].ID, fresh.Users[0].ID)
}

// ---- Decode ----------------------------------------------------------------

func TestDecode(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		corrupt bool
	}{
		{"valid", `{"version":1,"users":[],"groups":[],"trips":[],"session":{"currentUserId":null}}`, false},
		{"missing collections are normalized", `{"version":1}`, false},
		{"garbage", `<<<`, true},
		{"null", `null`, true},
		{"array", `[]`, true},
		{"empty", ``, true},
		{"version zero", `{"version":0}`, true},
		{"future version", `{"version":99}`, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, err := repo.Decode([]byte(tc.raw))
			if tc.corrupt {
				assert.ErrorIs(t, err, repo.ErrCorrupt)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, db.Users)
			assert.NotNil(t, db.Groups)
			assert.NotNil(t, db.Trips)
		})
	}
}

// failingStore is a KeyStore whose every call fails with err.
type failingStore struct{ err error }

func (f *failingStore) Get(context.Context, string) ([]byte, bool, error) { return nil, false, f.err }
func (f *failingStore) Set(context.Context, string, []byte) error         { return f.err }
func (f *failingStore) Delete(context.Context, string) error              { return f.err }

var _ repo.KeyStore = (*failingStore)(nil)
