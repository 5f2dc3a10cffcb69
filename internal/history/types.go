package history

import (
	"database/sql"
	"sync"
	"time"
)

// store handles database operations for the completed-match ledger.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Winner identifies which team took a match.
type Winner string

const (
	WinnerTeam1 Winner = "team1"
	WinnerTeam2 Winner = "team2"
)

// Entry is a snapshot of a completed match. Players are recorded by name as
// they were at completion time, so later roster edits never rewrite history.
type Entry struct {
	ID          string    `json:"id"`
	Round       int       `json:"round"`
	Court       int       `json:"court"`
	Team1       [2]string `json:"team1"`
	Team2       [2]string `json:"team2"`
	Team1Score  int       `json:"team1_score"`
	Team2Score  int       `json:"team2_score"`
	Winner      Winner    `json:"winner"`
	CompletedAt time.Time `json:"completed_at"`
}
