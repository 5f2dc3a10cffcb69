package notifier

import (
	"github.com/kafein-club/matchnight/internal/history"
	"github.com/kafein-club/matchnight/internal/roster"
)

// Notifier defines a high-level interface for announcing business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For completed matches
	SendResultNotification(entry history.Entry, dryRun bool) error
	// For the current standings
	SendLeaderboard(entries []roster.LeaderboardEntry, dryRun bool) error
}

// Noop is a Notifier that does nothing. Used when no provider is configured;
// announcements are strictly optional.
type Noop struct{}

func NewNoop() Noop { return Noop{} }

func (Noop) SendResultNotification(history.Entry, bool) error      { return nil }
func (Noop) SendLeaderboard([]roster.LeaderboardEntry, bool) error { return nil }
