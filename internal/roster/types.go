package roster

import (
	"database/sql"
	"errors"
	"sync"
)

// store handles all database operations for the player roster.
type store struct {
	db  *sql.DB
	cap int
	mu  sync.RWMutex
}

// PlayerStatus marks whether a player is drawn into new matches.
type PlayerStatus string

const (
	StatusActive   PlayerStatus = "active"
	StatusInactive PlayerStatus = "inactive"
)

var (
	// ErrEmptyName is returned when a player is added with a blank name.
	ErrEmptyName = errors.New("player name must not be empty")
	// ErrDuplicateName is returned when a player with the same trimmed name already exists.
	ErrDuplicateName = errors.New("a player with that name already exists")
	// ErrRosterFull is returned when the roster capacity has been reached.
	ErrRosterFull = errors.New("roster is at capacity")
)

// Player is a roster member with cumulative statistics.
// TotalGames always equals Wins + Losses.
type Player struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Status     PlayerStatus `json:"status"`
	TotalGames int          `json:"total_games"`
	Wins       int          `json:"wins"`
	Losses     int          `json:"losses"`
	PointsDiff int          `json:"points_diff"`
}

// LeaderboardEntry is a player plus their derived win rate.
type LeaderboardEntry struct {
	Player  Player  `json:"player"`
	WinRate float64 `json:"win_rate"`
}
