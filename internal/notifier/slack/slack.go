package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/kafein-club/matchnight/internal/history"
	"github.com/kafein-club/matchnight/internal/metrics"
	"github.com/kafein-club/matchnight/internal/notifier"
	"github.com/kafein-club/matchnight/internal/roster"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// SendResultNotification announces a completed match.
func (s *Notifier) SendResultNotification(entry history.Entry, dryRun bool) error {
	msg := formatResultNotification(entry)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// SendLeaderboard announces the current standings.
func (s *Notifier) SendLeaderboard(entries []roster.LeaderboardEntry, dryRun bool) error {
	msg := formatLeaderboard(entries)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// formatResultNotification creates the Slack message for a finished match using Block Kit.
func formatResultNotification(entry history.Entry) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏸 Match finished! 🏸", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	winners, losers := entry.Team1, entry.Team2
	winScore, loseScore := entry.Team1Score, entry.Team2Score
	if entry.Winner == history.WinnerTeam2 {
		winners, losers = entry.Team2, entry.Team1
		winScore, loseScore = entry.Team2Score, entry.Team1Score
	}

	detailsText := fmt.Sprintf("Round %d, Court %d\n%s & %s def. %s & %s  %d-%d",
		entry.Round, entry.Court,
		winners[0], winners[1], losers[0], losers[1],
		winScore, loseScore,
	)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	contextText := slack.NewTextBlockObject("plain_text", entry.CompletedAt.Format("Monday 02 Jan, 15:04"), true, false)
	blocks = append(blocks, slack.NewContextBlock("", contextText))

	return slack.NewBlockMessage(blocks...)
}

// formatLeaderboard creates the Slack message for the standings using Block Kit.
func formatLeaderboard(entries []roster.LeaderboardEntry) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏆 Leaderboard 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	var lines []string
	for i, e := range entries {
		diff := fmt.Sprintf("%+d", e.Player.PointsDiff)
		lines = append(lines, fmt.Sprintf("%d. %s — %d-%d (%.0f%%), %s",
			i+1, e.Player.Name, e.Player.Wins, e.Player.Losses, e.WinRate, diff))
	}
	if len(lines) == 0 {
		lines = append(lines, "No games recorded yet.")
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", strings.Join(lines, "\n"), true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}
