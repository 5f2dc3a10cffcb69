package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// New creates a new history Ledger.
func New(db *sql.DB) Ledger {
	return &store{
		db: db,
	}
}

// Append records a completed match.
func (s *store) Append(entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO history (id, round, court, team1_player1, team1_player2, team2_player1, team2_player2, team1_score, team2_score, winner, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Round, entry.Court,
		entry.Team1[0], entry.Team1[1], entry.Team2[0], entry.Team2[1],
		entry.Team1Score, entry.Team2Score, string(entry.Winner), entry.CompletedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to append history entry: %w", err)
	}

	log.Info("Recorded match in history", "entryID", entry.ID, "round", entry.Round, "court", entry.Court, "winner", entry.Winner)
	return nil
}

// List returns entries most-recent-first. A limit of 0 returns everything.
func (s *store) List(limit int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, round, court, team1_player1, team1_player2, team2_player1, team2_player2, team1_score, team2_score, winner, completed_at
		FROM history ORDER BY completed_at DESC, seq DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query history", "error", err)
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var winner string
		var completedAt int64
		err := rows.Scan(
			&e.ID, &e.Round, &e.Court,
			&e.Team1[0], &e.Team1[1], &e.Team2[0], &e.Team2[1],
			&e.Team1Score, &e.Team2Score, &winner, &completedAt,
		)
		if err != nil {
			log.Error("Failed to scan history row", "error", err)
			continue
		}
		e.Winner = Winner(winner)
		e.CompletedAt = time.Unix(completedAt, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Reset clears the ledger. Only a full session reset calls this.
func (s *store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM history"); err != nil {
		return fmt.Errorf("failed to clear history table: %w", err)
	}
	log.Info("History cleared")
	return nil
}
