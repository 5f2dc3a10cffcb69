package history_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kafein-club/matchnight/internal/database"
	"github.com/kafein-club/matchnight/internal/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLedger(t *testing.T) (history.Ledger, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	return history.New(db), dbTeardown
}

func entryAt(ts time.Time, round int) history.Entry {
	return history.Entry{
		ID:          uuid.New().String(),
		Round:       round,
		Court:       1,
		Team1:       [2]string{"Alice", "Bob"},
		Team2:       [2]string{"Carol", "Dave"},
		Team1Score:  25,
		Team2Score:  10,
		Winner:      history.WinnerTeam1,
		CompletedAt: ts,
	}
}

func TestAppendAndList(t *testing.T) {
	ledger, teardown := setupTestLedger(t)
	defer teardown()

	now := time.Now().Truncate(time.Second)
	first := entryAt(now.Add(-time.Minute), 1)
	second := entryAt(now, 2)

	require.NoError(t, ledger.Append(first))
	require.NoError(t, ledger.Append(second))

	entries, err := ledger.List(0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Most recent first.
	assert.Equal(t, second.ID, entries[0].ID)
	assert.Equal(t, first.ID, entries[1].ID)
	assert.Equal(t, [2]string{"Alice", "Bob"}, entries[0].Team1)
	assert.Equal(t, history.WinnerTeam1, entries[0].Winner)
	assert.True(t, entries[0].CompletedAt.Equal(second.CompletedAt))
}

func TestListLimit(t *testing.T) {
	ledger, teardown := setupTestLedger(t)
	defer teardown()

	now := time.Now()
	for i := 0; i < 5; i++ {
		require.NoError(t, ledger.Append(entryAt(now.Add(time.Duration(i)*time.Minute), i+1)))
	}

	entries, err := ledger.List(3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, 5, entries[0].Round, "the newest entry comes first")
}

func TestSameTimestampOrdering(t *testing.T) {
	ledger, teardown := setupTestLedger(t)
	defer teardown()

	// Two matches submitted within the same second keep insertion order,
	// newest first.
	now := time.Now()
	first := entryAt(now, 1)
	second := entryAt(now, 1)
	require.NoError(t, ledger.Append(first))
	require.NoError(t, ledger.Append(second))

	entries, err := ledger.List(0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, second.ID, entries[0].ID)
}

func TestReset(t *testing.T) {
	ledger, teardown := setupTestLedger(t)
	defer teardown()

	require.NoError(t, ledger.Append(entryAt(time.Now(), 1)))
	require.NoError(t, ledger.Reset())

	entries, err := ledger.List(0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
