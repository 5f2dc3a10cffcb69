package roster

// Store defines the interface for interacting with the player roster.
type Store interface {
	AddPlayer(name string) (*Player, error)
	RemovePlayer(id string) error
	ToggleStatus(id string) error
	GetPlayer(id string) (*Player, bool)
	ListPlayers() ([]Player, error)
	ActivePlayers() ([]Player, error)
	ApplyMatchResult(playerIDs []string, winnerIDs []string, margin int) error
	Leaderboard() ([]LeaderboardEntry, error)
	Reset() error
}
