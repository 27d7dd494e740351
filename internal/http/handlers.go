package http

import (
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK!"))
	}
}

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.League.ListPlayers(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, players)
	}
}

func (s *Server) RegisterPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPlayerRequest
		if err := readJSON(w, r, &req); err != nil {
			badRequest(w, err)
			return
		}
		player, err := s.League.RegisterPlayer(r.Context(), req.Name)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, player)
	}
}

func (s *Server) GetPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		player, err := s.League.GetPlayer(r.Context(), chi.URLParam(r, "playerID"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, player)
	}
}

func (s *Server) FindPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))
		player, err := s.League.FindPlayer(r.Context(), query)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, player)
	}
}

func (s *Server) PlayerStandingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		standing, err := s.League.PlayerStanding(r.Context(), chi.URLParam(r, "playerID"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, standing)
	}
}

func (s *Server) ListMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := s.League.ListMatches(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, matches)
	}
}

func (s *Server) RecordMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req recordMatchRequest
		if err := readJSON(w, r, &req); err != nil {
			badRequest(w, err)
			return
		}
		in, err := req.input()
		if err != nil {
			badRequest(w, err)
			return
		}
		match, err := s.League.RecordMatch(r.Context(), in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		log.Info("Recorded match", "id", match.ID, "type", match.MatchType, "score", []int{match.Player1Score, match.Player2Score})
		writeJSON(w, http.StatusCreated, match)
	}
}

func (s *Server) EditMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req editMatchRequest
		if err := readJSON(w, r, &req); err != nil {
			badRequest(w, err)
			return
		}
		s1, s2, err := req.scores()
		if err != nil {
			badRequest(w, err)
			return
		}
		match, err := s.League.EditMatch(r.Context(), chi.URLParam(r, "matchID"), s1, s2)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, match)
	}
}

func (s *Server) DeleteMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.League.DeleteMatch(r.Context(), chi.URLParam(r, "matchID")); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) MigrateMatchTypesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := s.League.MigrateMatchTypes(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, migrateResponse{Migrated: n})
	}
}

// LeaderboardHandler returns the season standings. With post=true the
// leaderboard is also sent to the Slack channel.
func (s *Server) LeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		standings, err := s.League.SeasonLeaderboard(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		if r.URL.Query().Get("post") == "true" {
			if err := s.Notifier.SendLeaderboard(standings, isDryRunFromContext(r)); err != nil {
				log.Error("Failed to post leaderboard", "error", err)
			}
		}
		writeJSON(w, http.StatusOK, standings)
	}
}

func (s *Server) DashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dashboard, err := s.League.Dashboard(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, dashboard)
	}
}
