package league

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/kicker-league/internal/docstore"
)

// MinGroupParticipants is the smallest field a group stage can be played with.
const MinGroupParticipants = 2

func (s *Service) CreateTournament(ctx context.Context, name string) (Tournament, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Tournament{}, invalid(ErrNameRequired, "please enter a tournament name")
	}
	t := Tournament{
		ID:           uuid.NewString(),
		Name:         name,
		Status:       StatusSetup,
		Participants: []Participant{},
		CreatedAt:    s.now(),
	}
	if err := s.store.Set(ctx, tournamentPath(t.ID), t); err != nil {
		return Tournament{}, s.wrap("create tournament", err)
	}
	log.Info("Created tournament", "tournamentID", t.ID, "name", t.Name)
	return t, nil
}

func (s *Service) GetTournament(ctx context.Context, id string) (Tournament, error) {
	t, err := loadTournament(ctxReader{ctx, s.store}, id)
	return t, s.wrap("get tournament", err)
}

func (s *Service) ListTournaments(ctx context.Context) ([]Tournament, error) {
	tournaments, err := s.listTournaments(ctx)
	return tournaments, s.wrap("list tournaments", err)
}

// DeleteTournament removes a tournament. Points already awarded stay with
// the players.
func (s *Service) DeleteTournament(ctx context.Context, id string) error {
	err := s.store.RunTransaction(ctx, func(tx docstore.Tx) error {
		if _, err := loadTournament(tx, id); err != nil {
			return err
		}
		return tx.Delete(tournamentPath(id))
	})
	if err != nil {
		return s.wrap("delete tournament", err)
	}
	log.Info("Deleted tournament", "tournamentID", id)
	return nil
}

// mutateTournament loads a tournament inside a transaction, applies fn and
// writes the whole document back.
func (s *Service) mutateTournament(ctx context.Context, op, id string, fn func(tx docstore.Tx, t *Tournament) error) (Tournament, error) {
	var out Tournament
	err := s.store.RunTransaction(ctx, func(tx docstore.Tx) error {
		t, err := loadTournament(tx, id)
		if err != nil {
			return err
		}
		if err := fn(tx, &t); err != nil {
			return err
		}
		out = t
		return tx.Set(tournamentPath(id), t)
	})
	if err != nil {
		return Tournament{}, s.wrap(op, err)
	}
	return out, nil
}

// AddParticipants snapshots registered players onto a tournament roster.
func (s *Service) AddParticipants(ctx context.Context, id string, playerIDs []string) (Tournament, error) {
	if len(playerIDs) == 0 {
		return Tournament{}, invalid(ErrInsufficientParticipants, "select at least one player")
	}
	return s.mutateTournament(ctx, "add participants", id, func(tx docstore.Tx, t *Tournament) error {
		if t.Status != StatusSetup {
			return invalid(ErrInvalidStatus, "participants can only be added during setup (status is %s)", t.Status)
		}
		for _, pid := range playerIDs {
			if _, ok := t.participant(pid); ok {
				return invalid(ErrDuplicateParticipant, "player %q is already in the tournament", pid)
			}
			p, err := loadPlayer(tx, pid)
			if IsNotFound(err) {
				return invalid(ErrUnknownPlayer, "unknown player %q", pid)
			}
			if err != nil {
				return err
			}
			t.Participants = append(t.Participants, Participant{ID: p.ID, Name: p.Name})
		}
		log.Info("Added participants", "tournamentID", id, "count", len(playerIDs))
		return nil
	})
}

func (s *Service) RemoveParticipant(ctx context.Context, id, playerID string) (Tournament, error) {
	return s.mutateTournament(ctx, "remove participant", id, func(_ docstore.Tx, t *Tournament) error {
		if t.Status != StatusSetup {
			return invalid(ErrInvalidStatus, "participants can only be removed during setup (status is %s)", t.Status)
		}
		kept := t.Participants[:0]
		for _, p := range t.Participants {
			if p.ID != playerID {
				kept = append(kept, p)
			}
		}
		if len(kept) == len(t.Participants) {
			return notFound("participant", playerID)
		}
		t.Participants = kept
		return nil
	})
}

// StartGroupStage generates the double round robin and opens it for scores.
func (s *Service) StartGroupStage(ctx context.Context, id string) (Tournament, error) {
	return s.mutateTournament(ctx, "start group stage", id, func(_ docstore.Tx, t *Tournament) error {
		if t.Status != StatusSetup {
			return invalid(ErrInvalidStatus, "the group stage has already started (status is %s)", t.Status)
		}
		if len(t.Participants) < MinGroupParticipants {
			return invalid(ErrInsufficientParticipants, "at least %d participants are needed to start", MinGroupParticipants)
		}
		t.Games = DoubleRoundRobin(t.Participants)
		t.Status = StatusGroupStage
		log.Info("Started group stage", "tournamentID", t.ID, "participants", len(t.Participants), "games", len(t.Games))
		return nil
	})
}

// RecordGameScore enters or overwrites the score of a group stage game.
func (s *Service) RecordGameScore(ctx context.Context, id, gameID string, score1, score2 int) (Tournament, error) {
	defer s.observe("record_game_score", time.Now())
	if err := s.rules.ValidateMatchScore(score1, score2); err != nil {
		return Tournament{}, err
	}
	return s.setGameScore(ctx, "record game score", id, gameID, &score1, &score2)
}

// ResetGameScore clears a group stage game back to unplayed.
func (s *Service) ResetGameScore(ctx context.Context, id, gameID string) (Tournament, error) {
	return s.setGameScore(ctx, "reset game score", id, gameID, nil, nil)
}

func (s *Service) setGameScore(ctx context.Context, op, id, gameID string, score1, score2 *int) (Tournament, error) {
	return s.mutateTournament(ctx, op, id, func(_ docstore.Tx, t *Tournament) error {
		if t.Status != StatusGroupStage {
			return invalid(ErrInvalidStatus, "group games can only change during the group stage (status is %s)", t.Status)
		}
		g, ok := t.Games[gameID]
		if !ok || g == nil {
			return notFound("game", gameID)
		}
		g.Score1, g.Score2 = score1, score2
		return nil
	})
}

func (s *Service) GroupStandings(ctx context.Context, id string) ([]Standing, error) {
	t, err := s.GetTournament(ctx, id)
	if err != nil {
		return nil, err
	}
	return GroupStandings(t), nil
}

func (s *Service) TournamentStats(ctx context.Context, id string) (TournamentStats, error) {
	t, err := s.GetTournament(ctx, id)
	if err != nil {
		return TournamentStats{}, err
	}
	stats := TournamentStats{
		TournamentID: t.ID,
		Status:       t.Status,
		GamesTotal:   len(t.Games),
		Standings:    GroupStandings(t),
	}
	for _, g := range t.Games {
		if g != nil && g.Played() {
			stats.GamesPlayed++
		}
	}
	return stats, nil
}
