package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu               sync.Mutex
	matchesGenerated int
	matchesCompleted int
	queuePromotions  int
	roundsAdvanced   int
	matchDurations   []float64
	slackNotifSent   int
	slackNotifFailed int
	startupTime      float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		matchDurations: make([]float64, 0),
	}
}

func (m *Mock) IncMatchesGenerated(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesGenerated += count
}

func (m *Mock) IncMatchesCompleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesCompleted++
}

func (m *Mock) IncQueuePromotions() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queuePromotions++
}

func (m *Mock) IncRoundsAdvanced() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roundsAdvanced++
}

func (m *Mock) ObserveMatchDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchDurations = append(m.matchDurations, seconds)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// MatchesGenerated returns the count recorded via IncMatchesGenerated.
func (m *Mock) MatchesGenerated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesGenerated
}

// MatchesCompleted returns the count recorded via IncMatchesCompleted.
func (m *Mock) MatchesCompleted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesCompleted
}

// QueuePromotions returns the count recorded via IncQueuePromotions.
func (m *Mock) QueuePromotions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queuePromotions
}

// RoundsAdvanced returns the count recorded via IncRoundsAdvanced.
func (m *Mock) RoundsAdvanced() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.roundsAdvanced
}

// SlackNotifSent returns the count recorded via IncSlackNotifSent.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the count recorded via IncSlackNotifFailed.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
