package http

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/kicker-league/internal/league"
)

func tournamentID(r *http.Request) string {
	return chi.URLParam(r, "tournamentID")
}

// tournamentResponse writes the tournament returned by a mutation.
func tournamentResponse(w http.ResponseWriter, r *http.Request, t league.Tournament, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) ListTournamentsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tournaments, err := s.League.ListTournaments(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, tournaments)
	}
}

func (s *Server) CreateTournamentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createTournamentRequest
		if err := readJSON(w, r, &req); err != nil {
			badRequest(w, err)
			return
		}
		t, err := s.League.CreateTournament(r.Context(), req.Name)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, t)
	}
}

func (s *Server) GetTournamentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := s.League.GetTournament(r.Context(), tournamentID(r))
		tournamentResponse(w, r, t, err)
	}
}

func (s *Server) DeleteTournamentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.League.DeleteTournament(r.Context(), tournamentID(r)); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) AddParticipantsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addParticipantsRequest
		if err := readJSON(w, r, &req); err != nil {
			badRequest(w, err)
			return
		}
		t, err := s.League.AddParticipants(r.Context(), tournamentID(r), req.PlayerIDs)
		tournamentResponse(w, r, t, err)
	}
}

func (s *Server) RemoveParticipantHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := s.League.RemoveParticipant(r.Context(), tournamentID(r), chi.URLParam(r, "playerID"))
		tournamentResponse(w, r, t, err)
	}
}

func (s *Server) StartGroupStageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := s.League.StartGroupStage(r.Context(), tournamentID(r))
		tournamentResponse(w, r, t, err)
	}
}

func (s *Server) RecordGameScoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req scoreRequest
		if err := readJSON(w, r, &req); err != nil {
			badRequest(w, err)
			return
		}
		s1, s2, err := req.scores()
		if err != nil {
			badRequest(w, err)
			return
		}
		t, err := s.League.RecordGameScore(r.Context(), tournamentID(r), chi.URLParam(r, "gameID"), s1, s2)
		tournamentResponse(w, r, t, err)
	}
}

func (s *Server) ResetGameScoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := s.League.ResetGameScore(r.Context(), tournamentID(r), chi.URLParam(r, "gameID"))
		tournamentResponse(w, r, t, err)
	}
}

func (s *Server) GroupStandingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		standings, err := s.League.GroupStandings(r.Context(), tournamentID(r))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, standings)
	}
}

func (s *Server) TournamentStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := s.League.TournamentStats(r.Context(), tournamentID(r))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

func (s *Server) StartPlayoffsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := s.League.StartPlayoffs(r.Context(), tournamentID(r))
		tournamentResponse(w, r, t, err)
	}
}

// playoffGame parses the {slot} and {game} path parameters.
func playoffGame(r *http.Request) (league.Slot, int, error) {
	slot, err := league.ParseSlot(chi.URLParam(r, "slot"))
	if err != nil {
		return "", 0, err
	}
	game, err := intParam(chi.URLParam(r, "game"), "game")
	if err != nil {
		return "", 0, err
	}
	return slot, game, nil
}

func (s *Server) RecordPlayoffGameHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slot, game, err := playoffGame(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
			return
		}
		var req scoreRequest
		if err := readJSON(w, r, &req); err != nil {
			badRequest(w, err)
			return
		}
		s1, s2, err := req.scores()
		if err != nil {
			badRequest(w, err)
			return
		}
		t, err := s.League.RecordPlayoffGame(r.Context(), tournamentID(r), slot, game, s1, s2)
		tournamentResponse(w, r, t, err)
	}
}

func (s *Server) ResetPlayoffGameHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slot, game, err := playoffGame(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
			return
		}
		t, err := s.League.ResetPlayoffGame(r.Context(), tournamentID(r), slot, game)
		tournamentResponse(w, r, t, err)
	}
}

func (s *Server) AdvanceWinnersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := s.League.AdvanceWinners(r.Context(), tournamentID(r))
		tournamentResponse(w, r, t, err)
	}
}

func (s *Server) AwardTournamentPointsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := s.League.AwardTournamentPoints(r.Context(), tournamentID(r))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

// AwardPendingHandler awards every finished tournament still missing its points.
func (s *Server) AwardPendingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results, err := s.League.AwardPendingTournaments(r.Context())
		if err != nil {
			log.Error("Awarding pending tournaments failed", "awarded", len(results), "error", err)
			writeError(w, r, err)
			return
		}
		if results == nil {
			results = []league.AwardResult{}
		}
		writeJSON(w, http.StatusOK, results)
	}
}
