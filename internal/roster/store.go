package roster

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// New creates a new roster Store. A cap of 0 disables the capacity check.
func New(db *sql.DB, cap int) Store {
	return &store{
		db:  db,
		cap: cap,
	}
}

// AddPlayer creates a new active player with zeroed stats. The name is
// trimmed; duplicates are matched exactly and case-sensitively.
func (s *store) AddPlayer(name string) (*Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	if s.cap > 0 {
		var count int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM players").Scan(&count); err != nil {
			return nil, fmt.Errorf("failed to count players: %w", err)
		}
		if count >= s.cap {
			return nil, ErrRosterFull
		}
	}

	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM players WHERE name = ?)", name).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check for duplicate name: %w", err)
	}
	if exists {
		return nil, ErrDuplicateName
	}

	player := &Player{
		ID:     uuid.New().String(),
		Name:   name,
		Status: StatusActive,
	}
	_, err = s.db.Exec(
		"INSERT INTO players (id, name, status, created_at) VALUES (?, ?, ?, ?)",
		player.ID, player.Name, string(player.Status), time.Now().Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add player: %w", err)
	}

	log.Info("Added player to roster", "playerID", player.ID, "name", player.Name)
	return player, nil
}

// RemovePlayer deletes a player. Removing an absent id is a no-op; history
// entries are name snapshots and are never touched.
func (s *store) RemovePlayer(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM players WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to remove player: %w", err)
	}
	return nil
}

// ToggleStatus flips a player between active and inactive. Unknown ids are a no-op.
func (s *store) ToggleStatus(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		UPDATE players
		SET status = CASE status WHEN ? THEN ? ELSE ? END
		WHERE id = ?`,
		string(StatusActive), string(StatusInactive), string(StatusActive), id,
	)
	if err != nil {
		return fmt.Errorf("failed to toggle player status: %w", err)
	}
	return nil
}

func (s *store) GetPlayer(id string) (*Player, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(
		"SELECT id, name, status, total_games, wins, losses, points_diff FROM players WHERE id = ?", id,
	)
	player, err := scanPlayer(row)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Error("Failed to get player", "error", err, "playerID", id)
		}
		return nil, false
	}
	return player, true
}

func (s *store) ListPlayers() ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryPlayers("SELECT id, name, status, total_games, wins, losses, points_diff FROM players ORDER BY created_at, name")
}

// ActivePlayers returns the players eligible for match assembly.
func (s *store) ActivePlayers() ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryPlayers(
		"SELECT id, name, status, total_games, wins, losses, points_diff FROM players WHERE status = ? ORDER BY created_at, name",
		string(StatusActive),
	)
}

func (s *store) queryPlayers(query string, args ...any) ([]Player, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query players", "error", err)
		return nil, err
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		players = append(players, *player)
	}
	return players, rows.Err()
}

func scanPlayer(scanner interface{ Scan(...any) error }) (*Player, error) {
	var p Player
	var status string
	err := scanner.Scan(&p.ID, &p.Name, &status, &p.TotalGames, &p.Wins, &p.Losses, &p.PointsDiff)
	if err != nil {
		return nil, err
	}
	p.Status = PlayerStatus(status)
	return &p, nil
}

// ApplyMatchResult records a completed match for all four participants in one
// transaction: every player gains a game, winners gain a win and +margin
// points differential, losers a loss and -margin.
func (s *store) ApplyMatchResult(playerIDs []string, winnerIDs []string, margin int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if margin < 0 {
		return fmt.Errorf("margin must be non-negative, got %d", margin)
	}

	winners := make(map[string]bool, len(winnerIDs))
	for _, id := range winnerIDs {
		winners[id] = true
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction for match result: %w", err)
	}
	defer tx.Rollback()

	for _, id := range playerIDs {
		var res sql.Result
		if winners[id] {
			res, err = tx.Exec(`
				UPDATE players
				SET total_games = total_games + 1, wins = wins + 1, points_diff = points_diff + ?
				WHERE id = ?`, margin, id)
		} else {
			res, err = tx.Exec(`
				UPDATE players
				SET total_games = total_games + 1, losses = losses + 1, points_diff = points_diff - ?
				WHERE id = ?`, margin, id)
		}
		if err != nil {
			return fmt.Errorf("failed to update stats for player %s: %w", id, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			// Player was removed from the roster mid-match; the history
			// snapshot still records them by name.
			log.Warn("Match result for unknown player", "playerID", id)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit match result: %w", err)
	}
	return nil
}

// Leaderboard returns all players with their win rate, ordered by win rate,
// then total games, then points differential.
func (s *store) Leaderboard() ([]LeaderboardEntry, error) {
	players, err := s.ListPlayers()
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(players))
	for _, p := range players {
		entry := LeaderboardEntry{Player: p}
		if p.TotalGames > 0 {
			entry.WinRate = (float64(p.Wins) / float64(p.TotalGames)) * 100
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.WinRate != b.WinRate {
			return a.WinRate > b.WinRate
		}
		if a.Player.TotalGames != b.Player.TotalGames {
			return a.Player.TotalGames > b.Player.TotalGames
		}
		return a.Player.PointsDiff > b.Player.PointsDiff
	})
	return entries, nil
}

// Reset clears the entire roster.
func (s *store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM players"); err != nil {
		return fmt.Errorf("failed to clear players table: %w", err)
	}
	log.Info("Roster cleared")
	return nil
}
