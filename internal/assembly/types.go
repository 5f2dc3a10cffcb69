package assembly

import (
	"errors"
	"time"
)

// ErrInsufficientPlayers is returned when fewer than four active players are
// available for assembly.
var ErrInsufficientPlayers = errors.New("at least 4 active players are required to generate matches")

// PlayersPerMatch is the size of a doubles match group.
const PlayersPerMatch = 4

// Player identifies a roster member inside a match. Stats live in the roster
// store; matches only carry id and name.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Team is a doubles pairing. Membership is fixed at creation.
type Team [2]Player

// MatchStatus is the lifecycle state of a live match.
type MatchStatus string

const (
	StatusOngoing   MatchStatus = "ongoing"
	StatusCompleted MatchStatus = "completed"
)

// Match is a live game on a court.
type Match struct {
	ID         string      `json:"id"`
	Court      int         `json:"court"`
	Round      int         `json:"round"`
	Team1      Team        `json:"team1"`
	Team2      Team        `json:"team2"`
	Team1Score int         `json:"team1_score"`
	Team2Score int         `json:"team2_score"`
	Status     MatchStatus `json:"status"`
	StartTime  time.Time   `json:"start_time"`
	EndTime    *time.Time  `json:"end_time,omitempty"`
}

// QueueItem is a match-in-waiting with no scores yet. The court field is the
// label assigned at generation time; promotion installs the item on whichever
// court actually frees up.
type QueueItem struct {
	ID    string `json:"id"`
	Court int    `json:"court"`
	Round int    `json:"round"`
	Team1 Team   `json:"team1"`
	Team2 Team   `json:"team2"`
}
