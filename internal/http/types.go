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

type Server struct {
	Roster         roster.Store
	Ledger         history.Ledger
	Session        *session.Controller
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Router         *http.ServeMux
}
