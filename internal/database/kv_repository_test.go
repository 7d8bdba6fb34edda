package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *KVRepository {
	t.Helper()
	db, err := Connect(Options{Type: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewKVRepository(db)
}

func TestKVRepositoryMissingKey(t *testing.T) {
	repo := newTestRepository(t)

	v, ok, err := repo.Get("nope")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestKVRepositoryUpsert(t *testing.T) {
	repo := newTestRepository(t)

	require.NoError(t, repo.Set("users", `[]`))
	require.NoError(t, repo.Set("users", `[{"id":"a"}]`))

	v, ok, err := repo.Get("users")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"a"}]`, v)

	keys, err := repo.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"users"}, keys)
}

func TestKVRepositoryDelete(t *testing.T) {
	repo := newTestRepository(t)

	require.NoError(t, repo.Set("current_user_id", `"a"`))
	require.NoError(t, repo.Delete("current_user_id"))
	require.NoError(t, repo.Delete("current_user_id"))

	_, ok, err := repo.Get("current_user_id")
	require.NoError(t, err)
	assert.False(t, ok)
}
