package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/kicker-league/internal/league"
	"github.com/slack-go/slack"
)

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg any) {
	slackMsg, ok := msg.(slack.Message)
	if !ok {
		http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
		log.Error("Failed to cast message to slack.Message")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(slackMsg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

func (s *Server) LeaderboardCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		standings, err := s.League.SeasonLeaderboard(r.Context())
		if err != nil {
			http.Error(w, "Failed to get leaderboard", http.StatusInternalServerError)
			log.Error("Failed to get leaderboard", "error", err)
			return
		}

		msg, err := s.Notifier.FormatLeaderboardResponse(standings)
		if err != nil {
			http.Error(w, "Failed to format leaderboard", http.StatusInternalServerError)
			log.Error("Failed to format leaderboard", "error", err)
			return
		}
		respondWithSlackMsg(w, msg)
	}
}

// PlayerStatsCommandHandler answers /player-stats <name>. The name is matched
// fuzzily, so "ann" finds Anna when no other player is a better fit.
func (s *Server) PlayerStatsCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Failed to parse form", http.StatusBadRequest)
			return
		}
		query := strings.TrimSpace(r.Form.Get("text"))
		if query == "" {
			http.Error(w, "Please provide a player name.", http.StatusBadRequest)
			return
		}
		log.Info("Player stats requested", "query", query, "user", r.Form.Get("user_name"))

		player, err := s.League.FindPlayer(r.Context(), query)
		if err != nil {
			if league.IsNotFound(err) || errors.Is(err, league.ErrAmbiguousPlayer) {
				msg, ferr := s.Notifier.FormatPlayerNotFoundResponse(query)
				if ferr != nil {
					http.Error(w, "Failed to format response", http.StatusInternalServerError)
					return
				}
				respondWithSlackMsg(w, msg)
				return
			}
			http.Error(w, "Failed to look up player", http.StatusInternalServerError)
			log.Error("Failed to look up player", "query", query, "error", err)
			return
		}

		standing, err := s.League.PlayerStanding(r.Context(), player.ID)
		if err != nil {
			http.Error(w, "Failed to get player stats", http.StatusInternalServerError)
			log.Error("Failed to get player standing", "player", player.ID, "error", err)
			return
		}

		msg, err := s.Notifier.FormatPlayerStatsResponse(standing, player, query)
		if err != nil {
			http.Error(w, "Failed to format player stats", http.StatusInternalServerError)
			log.Error("Failed to format player stats", "error", err)
			return
		}
		respondWithSlackMsg(w, msg)
	}
}
