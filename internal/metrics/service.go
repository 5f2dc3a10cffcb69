package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		MatchesGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchnight_matches_generated_total",
			Help: "The total number of live matches created by the assembly engine.",
		}),
		MatchesCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchnight_matches_completed_total",
			Help: "The total number of matches submitted with a final result.",
		}),
		QueuePromotions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchnight_queue_promotions_total",
			Help: "The total number of queued matches promoted onto a free court.",
		}),
		RoundsAdvanced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchnight_rounds_advanced_total",
			Help: "The total number of times the round counter advanced.",
		}),
		MatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "matchnight_match_duration_seconds",
			Help:    "Wall-clock duration of completed matches.",
			Buckets: []float64{60, 120, 300, 600, 900, 1200, 1800, 2700, 3600},
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchnight_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchnight_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "matchnight_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.MatchesGenerated,
		s.MatchesCompleted,
		s.QueuePromotions,
		s.RoundsAdvanced,
		s.MatchDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncMatchesGenerated(count int) {
	s.MatchesGenerated.Add(float64(count))
}

func (s *Service) IncMatchesCompleted() {
	s.MatchesCompleted.Inc()
}

func (s *Service) IncQueuePromotions() {
	s.QueuePromotions.Inc()
}

func (s *Service) IncRoundsAdvanced() {
	s.RoundsAdvanced.Inc()
}

func (s *Service) ObserveMatchDuration(seconds float64) {
	s.MatchDuration.Observe(seconds)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
