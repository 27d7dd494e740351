package league

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/kicker-league/internal/docstore"
	"github.com/mauv0809/kicker-league/internal/pubsub"
)

// StartPlayoffs seeds the bracket from the current group standings.
func (s *Service) StartPlayoffs(ctx context.Context, id string) (Tournament, error) {
	t, err := s.mutateTournament(ctx, "start playoffs", id, func(_ docstore.Tx, t *Tournament) error {
		return StartPlayoffs(t)
	})
	if err != nil {
		return Tournament{}, err
	}
	log.Info("Started playoffs", "tournamentID", id,
		"qualifier1", []string{t.Playoffs.Qualifier1.Player1.Name, t.Playoffs.Qualifier1.Player2.Name},
		"eliminator", []string{t.Playoffs.Eliminator.Player1.Name, t.Playoffs.Eliminator.Player2.Name})
	return t, nil
}

// playoffOutcome carries what happened inside a playoff transaction to the
// post-commit side effects.
type playoffOutcome struct {
	tournament Tournament
	adv        Advancement
	award      AwardResult
}

// RecordPlayoffGame enters one game of a playoff match and advances the
// bracket in the same transaction.
func (s *Service) RecordPlayoffGame(ctx context.Context, id string, slot Slot, game, score1, score2 int) (Tournament, error) {
	defer s.observe("record_playoff_game", time.Now())
	if game < 0 || game >= GamesPerPlayoffMatch {
		return Tournament{}, invalid(ErrInvalidGameIndex, "game index must be between 0 and %d", GamesPerPlayoffMatch-1)
	}
	if _, err := ParseSlot(string(slot)); err != nil {
		return Tournament{}, err
	}
	if err := s.rules.ValidateGameScore(score1, score2); err != nil {
		return Tournament{}, err
	}

	out, err := s.advanceInTx(ctx, "record playoff game", id, func(t *Tournament) ([]Slot, error) {
		m, err := openPlayoffMatch(t, slot)
		if err != nil {
			return nil, err
		}
		m.Games[game] = GameScore{Score1: &score1, Score2: &score2}
		return []Slot{slot}, nil
	})
	if err != nil {
		return Tournament{}, err
	}
	return out.tournament, nil
}

// ResetPlayoffGame clears one game of a match that has not completed yet.
func (s *Service) ResetPlayoffGame(ctx context.Context, id string, slot Slot, game int) (Tournament, error) {
	if game < 0 || game >= GamesPerPlayoffMatch {
		return Tournament{}, invalid(ErrInvalidGameIndex, "game index must be between 0 and %d", GamesPerPlayoffMatch-1)
	}
	if _, err := ParseSlot(string(slot)); err != nil {
		return Tournament{}, err
	}
	out, err := s.advanceInTx(ctx, "reset playoff game", id, func(t *Tournament) ([]Slot, error) {
		m, err := openPlayoffMatch(t, slot)
		if err != nil {
			return nil, err
		}
		m.Games[game] = GameScore{}
		return []Slot{slot}, nil
	})
	if err != nil {
		return Tournament{}, err
	}
	return out.tournament, nil
}

// AdvanceWinners re-runs advancement over the stored bracket. Concurrent
// calls for the same tournament share one run.
func (s *Service) AdvanceWinners(ctx context.Context, id string) (Tournament, error) {
	v, err, shared := s.advancing.Do(id, func() (any, error) {
		// Joined callers must not inherit the first caller's cancellation.
		out, err := s.advanceInTx(context.WithoutCancel(ctx), "advance winners", id, func(t *Tournament) ([]Slot, error) {
			if t.Status != StatusPlayoffs {
				return nil, invalid(ErrInvalidStatus, "tournament is not in the playoffs (status is %s)", t.Status)
			}
			return nil, nil
		})
		return out.tournament, err
	})
	if err != nil {
		return Tournament{}, err
	}
	if shared {
		log.Debug("Shared advancement result", "tournamentID", id)
	}
	return v.(Tournament), nil
}

// openPlayoffMatch returns the match in slot if it can take scores.
func openPlayoffMatch(t *Tournament, slot Slot) (*PlayoffMatch, error) {
	if t.Status != StatusPlayoffs {
		return nil, invalid(ErrInvalidStatus, "playoff games can only change during the playoffs (status is %s)", t.Status)
	}
	if t.Playoffs == nil {
		return nil, invalid(ErrMatchNotReady, "the bracket has not been seeded")
	}
	t.Playoffs.fillGaps()
	m := t.Playoffs.Match(slot)
	if !m.Ready() {
		return nil, invalid(ErrMatchNotReady, "%s is still waiting for its players", slot)
	}
	if m.Completed {
		return nil, invalid(ErrMatchCompleted, "%s is already decided", slot)
	}
	return m, nil
}

// advanceInTx applies edit, advances the bracket and writes every touched
// playoff match. Finishing the tournament awards points in the same
// transaction so a finished tournament is never left unawarded.
func (s *Service) advanceInTx(ctx context.Context, op, id string, edit func(t *Tournament) ([]Slot, error)) (playoffOutcome, error) {
	var out playoffOutcome
	err := s.store.RunTransaction(ctx, func(tx docstore.Tx) error {
		out = playoffOutcome{}
		t, err := loadTournament(tx, id)
		if err != nil {
			return err
		}
		edited, err := edit(&t)
		if err != nil {
			return err
		}
		adv := AdvanceWinners(&t, s.now())
		for _, slot := range edited {
			adv.touch(slot)
		}

		fields := make(map[string]any, len(adv.Touched)+6)
		for _, slot := range adv.Touched {
			fields["playoffs/"+string(slot)] = t.Playoffs.Match(slot)
		}
		if adv.Finished {
			fields["winner"] = t.Winner
			fields["runnerUp"] = t.RunnerUp
			fields["thirdPlace"] = t.ThirdPlace
			fields["finishedAt"] = t.FinishedAt
			fields["status"] = t.Status
		}
		if len(fields) > 0 {
			if err := tx.Update(tournamentPath(id), fields); err != nil {
				return err
			}
		}
		if adv.Finished {
			award, err := s.awardInTx(tx, &t)
			if err != nil {
				return err
			}
			out.award = award
		}
		out.tournament = t
		out.adv = adv
		return nil
	})
	if err != nil {
		return playoffOutcome{}, s.wrap(op, err)
	}

	if n := len(out.adv.Completed); n > 0 {
		s.metrics.IncPlayoffAdvancements(n)
		log.Info("Advanced playoff winners", "tournamentID", id, "completed", out.adv.Completed)
	}
	if out.adv.Finished {
		s.afterFinish(out.tournament, out.award)
	}
	return out, nil
}

// afterFinish runs the side effects of a committed tournament finish.
func (s *Service) afterFinish(t Tournament, award AwardResult) {
	s.metrics.IncTournamentsFinished()
	log.Info("Tournament finished", "tournamentID", t.ID, "winner", nameOf(t.Winner))
	if award.Awarded {
		s.afterAward(award)
	}
	s.publish(pubsub.EventTournamentFinished, TournamentFinishedEvent{
		TournamentID: t.ID,
		Name:         t.Name,
		Winner:       t.Winner,
		RunnerUp:     t.RunnerUp,
		ThirdPlace:   t.ThirdPlace,
		Awards:       award.Awards,
	})
}

func nameOf(p *Participant) string {
	if p == nil {
		return ""
	}
	return p.Name
}
