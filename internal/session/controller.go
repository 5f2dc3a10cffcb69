package session

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/kafein-club/matchnight/internal/assembly"
	"github.com/kafein-club/matchnight/internal/history"
	"github.com/kafein-club/matchnight/internal/kvstore"
	"github.com/kafein-club/matchnight/internal/metrics"
	"github.com/kafein-club/matchnight/internal/notifier"
	"github.com/kafein-club/matchnight/internal/roster"
)

// Option overrides a Controller dependency, used by tests.
type Option func(*Controller)

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithRand replaces the shuffle source.
func WithRand(rng *rand.Rand) Option {
	return func(c *Controller) { c.rng = rng }
}

// New creates a new session Controller. The round counter starts at 1.
func New(rosterStore roster.Store, ledger history.Ledger, docs kvstore.Store, metricsSvc metrics.Metrics, notif notifier.Notifier, courts, target int, opts ...Option) *Controller {
	c := &Controller{
		roster:   rosterStore,
		ledger:   ledger,
		docs:     docs,
		metrics:  metricsSvc,
		notifier: notif,
		courts:   courts,
		target:   target,
		round:    1,
		now:      time.Now,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Completable reports whether a score pair satisfies the win condition:
// first to target, win by 2.
func Completable(team1Score, team2Score, target int) bool {
	hi, lo := team1Score, team2Score
	if lo > hi {
		hi, lo = lo, hi
	}
	return hi >= target && hi-lo >= 2
}

// Generate draws the active roster into live matches and a waiting queue for
// the current round. It is rejected while any match is ongoing.
func (c *Controller) Generate() (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, m := range c.matches {
		if m.Status == assembly.StatusOngoing {
			return State{}, ErrAssemblyBlocked
		}
	}

	players, err := c.roster.ActivePlayers()
	if err != nil {
		return State{}, fmt.Errorf("failed to load active players: %w", err)
	}
	active := make([]assembly.Player, len(players))
	for i, p := range players {
		active[i] = assembly.Player{ID: p.ID, Name: p.Name}
	}

	matches, queue, err := assembly.Generate(active, c.round, c.courts, c.now(), c.rng)
	if err != nil {
		return State{}, err
	}

	c.matches = matches
	c.queue = queue
	c.metrics.IncMatchesGenerated(len(matches))
	c.saveSnapshotLocked()

	log.Info("Generated matches", "round", c.round, "matches", len(matches), "queued", len(queue), "active_players", len(active))
	return c.stateLocked(), nil
}

// ClearAll discards all live matches and queued items. Roster and history are untouched.
func (c *Controller) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.matches = nil
	c.queue = nil
	c.saveSnapshotLocked()
	log.Info("Cleared live matches and queue")
}

// UpdateScore overwrites one team's score on an ongoing match. Input is
// clamped to [0, target]; once either side has reached the target the upper
// clamp lifts so win-by-2 extensions past the target stay reachable.
func (c *Controller) UpdateScore(matchID string, team, score int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if team != 1 && team != 2 {
		return ErrInvalidTeam
	}

	m := c.findOngoingLocked(matchID)
	if m == nil {
		return ErrMatchNotFound
	}

	if score < 0 {
		score = 0
	}
	if score > c.target && m.Team1Score < c.target && m.Team2Score < c.target {
		score = c.target
	}

	if team == 1 {
		m.Team1Score = score
	} else {
		m.Team2Score = score
	}
	c.saveSnapshotLocked()
	return nil
}

// SubmitResult finalizes an ongoing match: it is recorded in history, the
// four participants' stats are updated, the round advances when this was the
// round's last match with an empty queue, and the queue head (if any) is
// promoted onto the freed court. The steps commit as one unit; a rejected
// submission leaves all state untouched.
func (c *Controller) SubmitResult(matchID string, dryRun bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := -1
	for i, m := range c.matches {
		if m.ID == matchID && m.Status == assembly.StatusOngoing {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrMatchNotFound
	}
	m := c.matches[idx]

	if !Completable(m.Team1Score, m.Team2Score, c.target) {
		return ErrMatchNotReady
	}

	endTime := c.now()
	winner := history.WinnerTeam1
	winningTeam := m.Team1
	margin := m.Team1Score - m.Team2Score
	if m.Team2Score > m.Team1Score {
		winner = history.WinnerTeam2
		winningTeam = m.Team2
		margin = m.Team2Score - m.Team1Score
	}

	entry := history.Entry{
		ID:          uuid.New().String(),
		Round:       m.Round,
		Court:       m.Court,
		Team1:       [2]string{m.Team1[0].Name, m.Team1[1].Name},
		Team2:       [2]string{m.Team2[0].Name, m.Team2[1].Name},
		Team1Score:  m.Team1Score,
		Team2Score:  m.Team2Score,
		Winner:      winner,
		CompletedAt: endTime,
	}

	// Persist the durable records first; in-memory state only moves once
	// both writes succeed.
	if err := c.ledger.Append(entry); err != nil {
		return fmt.Errorf("failed to record match in history: %w", err)
	}

	playerIDs := []string{m.Team1[0].ID, m.Team1[1].ID, m.Team2[0].ID, m.Team2[1].ID}
	winnerIDs := []string{winningTeam[0].ID, winningTeam[1].ID}
	if err := c.roster.ApplyMatchResult(playerIDs, winnerIDs, margin); err != nil {
		return fmt.Errorf("failed to apply match result to roster: %w", err)
	}

	// Remove the completed match from the live set.
	c.matches = append(c.matches[:idx:idx], c.matches[idx+1:]...)

	// Advance the round when this was the last ongoing match of its round
	// and nothing is waiting.
	if !c.roundStillRunningLocked(m.Round) && len(c.queue) == 0 {
		c.round = m.Round + 1
		c.metrics.IncRoundsAdvanced()
		log.Info("Round complete", "finished_round", m.Round, "next_round", c.round)
	}

	// Promote the queue head onto the court that just freed up, whatever
	// court label the item was generated with.
	if len(c.queue) > 0 {
		next := c.queue[0]
		c.queue = c.queue[1:]
		c.matches = append(c.matches, assembly.Match{
			ID:        uuid.New().String(),
			Court:     m.Court,
			Round:     next.Round,
			Team1:     next.Team1,
			Team2:     next.Team2,
			Status:    assembly.StatusOngoing,
			StartTime: endTime,
		})
		c.metrics.IncQueuePromotions()
		log.Info("Promoted queued match", "queueItemID", next.ID, "court", m.Court)
	}

	c.metrics.IncMatchesCompleted()
	c.metrics.ObserveMatchDuration(endTime.Sub(m.StartTime).Seconds())
	c.saveSnapshotLocked()

	log.Info("Match submitted", "matchID", m.ID, "round", m.Round, "court", m.Court,
		"score", fmt.Sprintf("%d-%d", m.Team1Score, m.Team2Score), "winner", winner)

	// Announcements are best-effort and never fail a submission.
	if err := c.notifier.SendResultNotification(entry, dryRun); err != nil {
		log.Error("Failed to send result notification", "error", err, "matchID", m.ID)
	}

	return nil
}

// State returns a copy of the live session.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// Round returns the current round number.
func (c *Controller) Round() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.round
}

// Reset wipes the whole session: live state, roster, history and the
// persisted snapshot.
func (c *Controller) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.matches = nil
	c.queue = nil
	c.round = 1

	if err := c.roster.Reset(); err != nil {
		return fmt.Errorf("failed to reset roster: %w", err)
	}
	if err := c.ledger.Reset(); err != nil {
		return fmt.Errorf("failed to reset history: %w", err)
	}
	if err := c.docs.Remove(SnapshotKey); err != nil {
		log.Error("Failed to remove session snapshot", "error", err)
	}
	log.Info("Session reset")
	return nil
}

// Restore loads the persisted live state, if any. Called once at startup.
func (c *Controller) Restore() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var snap snapshot
	found, err := c.docs.Load(SnapshotKey, &snap)
	if err != nil {
		return fmt.Errorf("failed to load session snapshot: %w", err)
	}
	if !found {
		return nil
	}

	c.round = snap.Round
	if c.round < 1 {
		c.round = 1
	}
	c.matches = snap.Matches
	c.queue = snap.Queue
	log.Info("Restored session snapshot", "round", c.round, "matches", len(c.matches), "queued", len(c.queue))
	return nil
}

func (c *Controller) findOngoingLocked(matchID string) *assembly.Match {
	for i := range c.matches {
		if c.matches[i].ID == matchID && c.matches[i].Status == assembly.StatusOngoing {
			return &c.matches[i]
		}
	}
	return nil
}

func (c *Controller) roundStillRunningLocked(round int) bool {
	for _, m := range c.matches {
		if m.Round == round && m.Status == assembly.StatusOngoing {
			return true
		}
	}
	return false
}

func (c *Controller) stateLocked() State {
	return State{
		Round:   c.round,
		Matches: append([]assembly.Match(nil), c.matches...),
		Queue:   append([]assembly.QueueItem(nil), c.queue...),
	}
}

// saveSnapshotLocked persists the live state. Persistence is best-effort:
// a failed write is logged and the in-memory state stays authoritative.
func (c *Controller) saveSnapshotLocked() {
	snap := snapshot{
		Round:   c.round,
		Matches: c.matches,
		Queue:   c.queue,
	}
	if err := c.docs.Save(SnapshotKey, snap); err != nil {
		log.Error("Failed to save session snapshot", "error", err)
	}
}
