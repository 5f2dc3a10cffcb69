package http

import (
	"net/http"

	"github.com/kafein-club/matchnight/internal/config"
	"github.com/kafein-club/matchnight/internal/history"
	"github.com/kafein-club/matchnight/internal/metrics"
	"github.com/kafein-club/matchnight/internal/notifier"
	"github.com/kafein-club/matchnight/internal/roster"
	"github.com/kafein-club/matchnight/internal/session"
)

func NewServer(rosterStore roster.Store, ledger history.Ledger, controller *session.Controller, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier) *Server {
	server := &Server{
		Roster:         rosterStore,
		Ledger:         ledger,
		Session:        controller,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("GET /players", Chain(s.ListPlayersHandler(), paramsMiddleware))
	s.Router.Handle("POST /players", Chain(s.AddPlayerHandler(), paramsMiddleware))
	s.Router.Handle("DELETE /players", Chain(s.RemovePlayerHandler(), paramsMiddleware))
	s.Router.Handle("POST /players/toggle", Chain(s.TogglePlayerHandler(), paramsMiddleware))
	s.Router.Handle("POST /generate", Chain(s.GenerateMatchesHandler(), paramsMiddleware))
	s.Router.Handle("GET /state", Chain(s.StateHandler(), paramsMiddleware))
	s.Router.Handle("POST /score", Chain(s.UpdateScoreHandler(), paramsMiddleware))
	s.Router.Handle("POST /submit", Chain(s.SubmitResultHandler(), paramsMiddleware))
	s.Router.Handle("POST /clear", Chain(s.ClearMatchesHandler(), paramsMiddleware))
	s.Router.Handle("GET /leaderboard", Chain(s.LeaderboardHandler(), paramsMiddleware))
	s.Router.Handle("GET /history", Chain(s.HistoryHandler(), paramsMiddleware))
	s.Router.Handle("POST /reset", Chain(s.ResetHandler(), paramsMiddleware))
	s.Router.Handle("POST /notify-leaderboard", Chain(s.NotifyLeaderboardHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
