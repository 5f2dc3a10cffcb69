package kvstore_test

import (
	"testing"

	"github.com/kafein-club/matchnight/internal/database"
	"github.com/kafein-club/matchnight/internal/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	Round int      `msgpack:"round"`
	Names []string `msgpack:"names"`
}

func setupTestStore(t *testing.T) (kvstore.Store, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	return kvstore.New(db), dbTeardown
}

func TestSaveAndLoad(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	in := doc{Round: 3, Names: []string{"Alice", "Bob"}}
	require.NoError(t, store.Save("session", in))

	var out doc
	found, err := store.Load("session", &out)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, in, out)
}

func TestSaveOverwrites(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	require.NoError(t, store.Save("session", doc{Round: 1}))
	require.NoError(t, store.Save("session", doc{Round: 2}))

	var out doc
	found, err := store.Load("session", &out)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 2, out.Round)
}

func TestLoadMissing(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	var out doc
	found, err := store.Load("missing", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRemove(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	require.NoError(t, store.Save("session", doc{Round: 1}))
	require.NoError(t, store.Remove("session"))

	var out doc
	found, err := store.Load("session", &out)
	require.NoError(t, err)
	assert.False(t, found)

	// Removing twice is a no-op.
	assert.NoError(t, store.Remove("session"))
}
