package repo_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/moto-trip-planner/internal/repo"
	"github.com/pkordes/moto-trip-planner/testutil"
)

// storeContract exercises the behaviour every KeyStore driver must share.
func storeContract(t *testing.T, s repo.KeyStore) {
	t.Helper()
	ctx := context.Background()

	_, found, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found, "absent key reports found=false without error")

	require.NoError(t, s.Set(ctx, "k", []byte(`{"a":1}`)))
	got, found, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, `{"a":1}`, string(got))

	require.NoError(t, s.Set(ctx, "k", []byte(`{"a":2}`)), "set overwrites")
	got, _, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, string(got))

	require.NoError(t, s.Delete(ctx, "k"))
	_, found, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Delete(ctx, "k"), "deleting an absent key is not an error")
}

func TestMemoryStore(t *testing.T) {
	storeContract(t, repo.NewMemoryStore())
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	s := repo.NewMemoryStore()

	buf := []byte("original")
	require.NoError(t, s.Set(ctx, "k", buf))
	buf[0] = 'X'

	got, _, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "original", string(got))
}

func openTestSQLite(t *testing.T) *repo.SQLiteStore {
	t.Helper()
	s, err := repo.OpenSQLite(repo.SQLiteConfig{Path: filepath.Join(t.TempDir(), "planner.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStore(t *testing.T) {
	storeContract(t, openTestSQLite(t))
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "planner.db")

	first, err := repo.OpenSQLite(repo.SQLiteConfig{Path: path})
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, repo.StorageKey, []byte(`{"version":1}`)))
	require.NoError(t, first.Close())

	second, err := repo.OpenSQLite(repo.SQLiteConfig{Path: path})
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	got, found, err := second.Get(ctx, repo.StorageKey)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, `{"version":1}`, string(got))
}

func TestOpenSQLite_RequiresPath(t *testing.T) {
	_, err := repo.OpenSQLite(repo.SQLiteConfig{})
	assert.ErrorContains(t, err, "Path is required")
}

// TestPostgresStore runs the shared contract inside a transaction that is
// rolled back afterwards. Requires TEST_DATABASE_URL.
func TestPostgresStore(t *testing.T) {
	storeContract(t, testutil.PostgresStore(t))
}
