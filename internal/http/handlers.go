package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/kafein-club/matchnight/internal/assembly"
	"github.com/kafein-club/matchnight/internal/history"
	"github.com/kafein-club/matchnight/internal/roster"
	"github.com/kafein-club/matchnight/internal/session"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// respondJSON writes a JSON response body.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

// respondError maps a domain error onto an HTTP status with a JSON body.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, session.ErrMatchNotFound):
		status = http.StatusNotFound
	case errors.Is(err, session.ErrAssemblyBlocked),
		errors.Is(err, roster.ErrDuplicateName),
		errors.Is(err, roster.ErrRosterFull):
		status = http.StatusConflict
	case errors.Is(err, roster.ErrEmptyName),
		errors.Is(err, session.ErrInvalidTeam),
		errors.Is(err, session.ErrMatchNotReady),
		errors.Is(err, assembly.ErrInsufficientPlayers):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		log.Error("Request failed", "error", err)
	}
	respondJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.Roster.ListPlayers()
		if err != nil {
			respondError(w, err)
			return
		}
		if players == nil {
			players = []roster.Player{}
		}
		respondJSON(w, http.StatusOK, players)
	}
}

func (s *Server) AddPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}
		player, err := s.Roster.AddPlayer(req.Name)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, player)
	}
}

func (s *Server) RemovePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		if id == "" {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": "id is required"})
			return
		}
		if err := s.Roster.RemovePlayer(id); err != nil {
			respondError(w, err)
			return
		}
		log.Info("Removed player from roster", "playerID", id)
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) TogglePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		if id == "" {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": "id is required"})
			return
		}
		if err := s.Roster.ToggleStatus(id); err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	}
}

func (s *Server) GenerateMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := s.Session.Generate()
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, state)
	}
}

func (s *Server) StateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, s.Session.State())
	}
}

func (s *Server) UpdateScoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			MatchID string `json:"match_id"`
			Team    int    `json:"team"`
			Score   int    `json:"score"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}
		if err := s.Session.UpdateScore(req.MatchID, req.Team, req.Score); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, s.Session.State())
	}
}

func (s *Server) SubmitResultHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			MatchID string `json:"match_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}
		isDryRun := isDryRunFromContext(r)
		if err := s.Session.SubmitResult(req.MatchID, isDryRun); err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, s.Session.State())
	}
}

func (s *Server) ClearMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Received request to clear live matches")
		s.Session.ClearAll()
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Matches cleared!")
	}
}

// LeaderboardHandler returns a handler that serves the player statistics leaderboard.
func (s *Server) LeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := s.Roster.Leaderboard()
		if err != nil {
			respondError(w, err)
			return
		}
		if entries == nil {
			entries = []roster.LeaderboardEntry{}
		}
		respondJSON(w, http.StatusOK, entries)
	}
}

// HistoryHandler serves completed matches, most recent first. An optional
// 'limit' parameter caps the result; 0 or absent returns everything.
func (s *Server) HistoryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			parsed, err := strconv.Atoi(limitStr)
			if err == nil && parsed > 0 {
				limit = parsed
			} else {
				log.Warn("Invalid 'limit' parameter provided. Defaulting to 0.", "limit_param", limitStr)
			}
		}

		entries, err := s.Ledger.List(limit)
		if err != nil {
			respondError(w, err)
			return
		}
		if entries == nil {
			entries = []history.Entry{}
		}
		respondJSON(w, http.StatusOK, entries)
	}
}

func (s *Server) ResetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Received request to reset the session")
		if err := s.Session.Reset(); err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Session reset!")
	}
}

// NotifyLeaderboardHandler pushes the current leaderboard to the configured
// notification channel.
func (s *Server) NotifyLeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := s.Roster.Leaderboard()
		if err != nil {
			respondError(w, err)
			return
		}
		isDryRun := isDryRunFromContext(r)
		if err := s.Notifier.SendLeaderboard(entries, isDryRun); err != nil {
			log.Error("Failed to send leaderboard notification", "error", err)
			respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to send leaderboard"})
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Leaderboard sent!")
	}
}
