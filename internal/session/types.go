package session

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/kafein-club/matchnight/internal/assembly"
	"github.com/kafein-club/matchnight/internal/history"
	"github.com/kafein-club/matchnight/internal/kvstore"
	"github.com/kafein-club/matchnight/internal/metrics"
	"github.com/kafein-club/matchnight/internal/notifier"
	"github.com/kafein-club/matchnight/internal/roster"
)

var (
	// ErrAssemblyBlocked is returned when matches are generated while courts are occupied.
	ErrAssemblyBlocked = errors.New("matches are still in progress, complete or clear them first")
	// ErrMatchNotFound is returned when the referenced match is not ongoing.
	ErrMatchNotFound = errors.New("no ongoing match with that id")
	// ErrMatchNotReady is returned when a result is submitted before the win condition is met.
	ErrMatchNotReady = errors.New("match is not finished: first to 25 points, win by 2")
	// ErrInvalidTeam is returned when a score update names a team other than 1 or 2.
	ErrInvalidTeam = errors.New("team must be 1 or 2")
)

// SnapshotKey is the document key under which live state is persisted.
const SnapshotKey = "session-state"

// Controller owns the live matches, the waiting queue and the round counter.
// All mutations run to completion under one lock, so observers never see a
// half-applied submission.
type Controller struct {
	mu sync.Mutex

	roster   roster.Store
	ledger   history.Ledger
	docs     kvstore.Store
	metrics  metrics.Metrics
	notifier notifier.Notifier

	courts int
	target int

	round   int
	matches []assembly.Match
	queue   []assembly.QueueItem

	now func() time.Time
	rng *rand.Rand
}

// State is a copy of the live session for rendering.
type State struct {
	Round   int                  `json:"round"`
	Matches []assembly.Match     `json:"matches"`
	Queue   []assembly.QueueItem `json:"queue"`
}

// snapshot is the persisted form of the live state.
type snapshot struct {
	Round   int                  `msgpack:"round"`
	Matches []assembly.Match     `msgpack:"matches"`
	Queue   []assembly.QueueItem `msgpack:"queue"`
}
