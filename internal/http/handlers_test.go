package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kafein-club/matchnight/internal/config"
	"github.com/kafein-club/matchnight/internal/database"
	"github.com/kafein-club/matchnight/internal/history"
	"github.com/kafein-club/matchnight/internal/kvstore"
	"github.com/kafein-club/matchnight/internal/metrics"
	"github.com/kafein-club/matchnight/internal/notifier"
	"github.com/kafein-club/matchnight/internal/roster"
	"github.com/kafein-club/matchnight/internal/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestServer initializes a new server over a test database and a mock notifier.
func setupTestServer(t *testing.T, notif notifier.Notifier) (*Server, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	rosterStore := roster.New(db, 0)
	ledger := history.New(db)
	docs := kvstore.New(db)
	cfg := config.Config{Courts: 2, TargetScore: 25}

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)
	controller := session.New(rosterStore, ledger, docs, metricsSvc, notif, cfg.Courts, cfg.TargetScore)

	server := NewServer(rosterStore, ledger, controller, metricsSvc, metricsHandler, cfg, notif)

	teardown := func() {
		if dbTeardown != nil {
			dbTeardown()
		}
	}
	return server, teardown
}

// doJSON issues a request with a JSON body against the server's router.
func doJSON(t *testing.T, server *Server, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, target, &buf)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	return rr
}

// addPlayers seeds the roster through the API and returns the created players.
func addPlayers(t *testing.T, server *Server, count int) []roster.Player {
	t.Helper()

	players := make([]roster.Player, 0, count)
	for i := 0; i < count; i++ {
		rr := doJSON(t, server, "POST", "/players", map[string]string{"name": fmt.Sprintf("Player %d", i)})
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		var p roster.Player
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
		players = append(players, p)
	}
	return players
}

// liveState fetches and decodes /state.
func liveState(t *testing.T, server *Server) session.State {
	t.Helper()

	rr := doJSON(t, server, "GET", "/state", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var state session.State
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &state))
	return state
}

func TestHealthCheckHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	rr := doJSON(t, server, "GET", "/health", nil)

	assert.Equal(t, http.StatusOK, rr.Code, "handler returned wrong status code")
	assert.Equal(t, "OK!", rr.Body.String(), "handler returned unexpected body")
}

func TestAddPlayerHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	rr := doJSON(t, server, "POST", "/players", map[string]string{"name": "Alice"})
	require.Equal(t, http.StatusCreated, rr.Code)
	var p roster.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
	assert.Equal(t, "Alice", p.Name)
	assert.Equal(t, roster.StatusActive, p.Status)
	assert.NotEmpty(t, p.ID)

	t.Run("duplicate name conflicts", func(t *testing.T) {
		rr := doJSON(t, server, "POST", "/players", map[string]string{"name": "Alice"})
		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Contains(t, rr.Body.String(), "already exists")
	})

	t.Run("empty name rejected", func(t *testing.T) {
		rr := doJSON(t, server, "POST", "/players", map[string]string{"name": "   "})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("malformed body rejected", func(t *testing.T) {
		req, err := http.NewRequest("POST", "/players", bytes.NewBufferString("{"))
		require.NoError(t, err)
		rec := httptest.NewRecorder()
		server.Router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListPlayersHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	rr := doJSON(t, server, "GET", "/players", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())

	addPlayers(t, server, 3)

	rr = doJSON(t, server, "GET", "/players", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var players []roster.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &players))
	assert.Len(t, players, 3)
}

func TestRemovePlayerHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	players := addPlayers(t, server, 1)

	rr := doJSON(t, server, "DELETE", "/players?id="+players[0].ID, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = doJSON(t, server, "GET", "/players", nil)
	assert.JSONEq(t, "[]", rr.Body.String())

	t.Run("missing id rejected", func(t *testing.T) {
		rr := doJSON(t, server, "DELETE", "/players", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestTogglePlayerHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	players := addPlayers(t, server, 1)

	rr := doJSON(t, server, "POST", "/players/toggle?id="+players[0].ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	got, ok := server.Roster.GetPlayer(players[0].ID)
	require.True(t, ok)
	assert.Equal(t, roster.StatusInactive, got.Status)
}

func TestGenerateMatchesHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	t.Run("too few players", func(t *testing.T) {
		rr := doJSON(t, server, "POST", "/generate", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	addPlayers(t, server, 8)

	rr := doJSON(t, server, "POST", "/generate", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var state session.State
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &state))
	assert.Len(t, state.Matches, 2)
	assert.Equal(t, 1, state.Round)

	t.Run("blocked while matches are ongoing", func(t *testing.T) {
		rr := doJSON(t, server, "POST", "/generate", nil)
		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestScoreAndSubmitFlow(t *testing.T) {
	notif := notifier.NewMock()
	server, teardown := setupTestServer(t, notif)
	defer teardown()

	addPlayers(t, server, 4)
	rr := doJSON(t, server, "POST", "/generate", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	matchID := liveState(t, server).Matches[0].ID

	t.Run("unknown match is 404", func(t *testing.T) {
		rr := doJSON(t, server, "POST", "/score", map[string]any{"match_id": "missing", "team": 1, "score": 5})
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("invalid team is 400", func(t *testing.T) {
		rr := doJSON(t, server, "POST", "/score", map[string]any{"match_id": matchID, "team": 3, "score": 5})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	rr = doJSON(t, server, "POST", "/score", map[string]any{"match_id": matchID, "team": 1, "score": 25})
	require.Equal(t, http.StatusOK, rr.Code)

	t.Run("premature submit is 400", func(t *testing.T) {
		rr := doJSON(t, server, "POST", "/score", map[string]any{"match_id": matchID, "team": 2, "score": 24})
		require.Equal(t, http.StatusOK, rr.Code)
		rr = doJSON(t, server, "POST", "/submit", map[string]any{"match_id": matchID})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	rr = doJSON(t, server, "POST", "/score", map[string]any{"match_id": matchID, "team": 2, "score": 20})
	require.Equal(t, http.StatusOK, rr.Code)
	rr = doJSON(t, server, "POST", "/submit", map[string]any{"match_id": matchID})
	require.Equal(t, http.StatusOK, rr.Code)

	var state session.State
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &state))
	assert.Empty(t, state.Matches)
	assert.Equal(t, 2, state.Round)
	assert.Len(t, notif.SendResultNotificationCalls, 1)

	t.Run("history records the result", func(t *testing.T) {
		rr := doJSON(t, server, "GET", "/history", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var entries []history.Entry
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entries))
		require.Len(t, entries, 1)
		assert.Equal(t, 25, entries[0].Team1Score)
		assert.Equal(t, 20, entries[0].Team2Score)
		assert.Equal(t, history.WinnerTeam1, entries[0].Winner)
	})
}

func TestHistoryHandlerLimit(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	addPlayers(t, server, 4)
	for i := 0; i < 3; i++ {
		rr := doJSON(t, server, "POST", "/generate", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		matchID := liveState(t, server).Matches[0].ID
		rr = doJSON(t, server, "POST", "/score", map[string]any{"match_id": matchID, "team": 1, "score": 25})
		require.Equal(t, http.StatusOK, rr.Code)
		rr = doJSON(t, server, "POST", "/submit", map[string]any{"match_id": matchID})
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr := doJSON(t, server, "GET", "/history?limit=2", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var entries []history.Entry
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entries))
	assert.Len(t, entries, 2)
}

func TestLeaderboardHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	rr := doJSON(t, server, "GET", "/leaderboard", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())

	addPlayers(t, server, 4)
	rr = doJSON(t, server, "POST", "/generate", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	matchID := liveState(t, server).Matches[0].ID
	doJSON(t, server, "POST", "/score", map[string]any{"match_id": matchID, "team": 1, "score": 25})
	doJSON(t, server, "POST", "/submit", map[string]any{"match_id": matchID})

	rr = doJSON(t, server, "GET", "/leaderboard", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var entries []roster.LeaderboardEntry
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entries))
	require.Len(t, entries, 4)
	// Winners sort to the top.
	assert.Equal(t, 1, entries[0].Player.Wins)
	assert.Equal(t, 1, entries[1].Player.Wins)
	assert.Equal(t, 0, entries[2].Player.Wins)
	assert.Equal(t, 0, entries[3].Player.Wins)
}

func TestClearMatchesHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	addPlayers(t, server, 4)
	rr := doJSON(t, server, "POST", "/generate", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, server, "POST", "/clear", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Matches cleared!", rr.Body.String())
	assert.Empty(t, liveState(t, server).Matches)

	// The roster survives a clear.
	rr = doJSON(t, server, "GET", "/players", nil)
	var players []roster.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &players))
	assert.Len(t, players, 4)
}

func TestResetHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	addPlayers(t, server, 4)
	rr := doJSON(t, server, "POST", "/generate", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, server, "POST", "/reset", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	assert.Empty(t, liveState(t, server).Matches)
	rr = doJSON(t, server, "GET", "/players", nil)
	assert.JSONEq(t, "[]", rr.Body.String())
	rr = doJSON(t, server, "GET", "/history", nil)
	assert.JSONEq(t, "[]", rr.Body.String())
}

func TestNotifyLeaderboardHandler(t *testing.T) {
	notif := notifier.NewMock()
	server, teardown := setupTestServer(t, notif)
	defer teardown()

	addPlayers(t, server, 2)

	rr := doJSON(t, server, "POST", "/notify-leaderboard", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, notif.SendLeaderboardCalls, 1)
	assert.Len(t, notif.SendLeaderboardCalls[0], 2)
}

func TestMetricsEndpoint(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	addPlayers(t, server, 4)
	rr := doJSON(t, server, "POST", "/generate", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, server, "GET", "/metrics", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "matchnight_matches_generated_total")
}
