package league

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/kicker-league/internal/docstore"
	"github.com/mauv0809/kicker-league/internal/pubsub"
)

// AwardTournamentPoints credits a finished tournament's placements to the
// players. The pointsAwarded latch is checked and set in the same
// transaction as the credits, so points are handed out at most once and
// repeated calls report Awarded=false.
func (s *Service) AwardTournamentPoints(ctx context.Context, id string) (AwardResult, error) {
	defer s.observe("award_tournament_points", time.Now())
	var result AwardResult
	err := s.store.RunTransaction(ctx, func(tx docstore.Tx) error {
		t, err := loadTournament(tx, id)
		if err != nil {
			return err
		}
		result = AwardResult{TournamentID: t.ID, Name: t.Name}
		if t.PointsAwarded {
			return nil
		}
		if !eligibleForAwards(t) {
			return invalid(ErrInvalidStatus, "tournament %q has not finished", t.Name)
		}
		if t.Status != StatusFinished {
			// A winner is recorded but the status never caught up.
			now := s.now()
			t.Status = StatusFinished
			fields := map[string]any{"status": t.Status}
			if t.FinishedAt == nil {
				t.FinishedAt = &now
				fields["finishedAt"] = now
			}
			if err := tx.Update(tournamentPath(id), fields); err != nil {
				return err
			}
		}
		result, err = s.awardInTx(tx, &t)
		return err
	})
	if err != nil {
		return AwardResult{}, s.wrap("award tournament points", err)
	}
	if result.Awarded {
		s.afterAward(result)
	} else {
		log.Info("Tournament points already awarded", "tournamentID", id)
	}
	return result, nil
}

// awardInTx credits every participant and sets the latch. t must already be
// known to be eligible.
func (s *Service) awardInTx(tx docstore.Tx, t *Tournament) (AwardResult, error) {
	result := AwardResult{TournamentID: t.ID, Name: t.Name}
	if t.PointsAwarded {
		return result, nil
	}
	for _, award := range ComputeAwards(*t) {
		p, err := loadPlayer(tx, award.Participant.ID)
		if IsNotFound(err) {
			log.Warn("Skipping award for unknown player", "tournamentID", t.ID, "playerID", award.Participant.ID)
			result.Skipped = append(result.Skipped, award.Participant.ID)
			continue
		}
		if err != nil {
			return AwardResult{}, err
		}
		fields := map[string]any{"tournamentPoints": p.TournamentPoints + award.Points}
		if award.Placement == PlacementWinner {
			fields["tournamentWins"] = p.TournamentWins + 1
		}
		if err := tx.Update(playerPath(p.ID), fields); err != nil {
			return AwardResult{}, err
		}
		result.Awards = append(result.Awards, award)
	}

	now := s.now()
	t.PointsAwarded = true
	t.PointsAwardedAt = &now
	if err := tx.Update(tournamentPath(t.ID), map[string]any{
		"pointsAwarded":   true,
		"pointsAwardedAt": now,
	}); err != nil {
		return AwardResult{}, err
	}
	result.Awarded = true
	return result, nil
}

func (s *Service) afterAward(result AwardResult) {
	s.metrics.AddTournamentPointsAwarded(result.Total())
	log.Info("Awarded tournament points", "tournamentID", result.TournamentID, "total", result.Total(), "skipped", len(result.Skipped))
	s.publish(pubsub.EventPointsAwarded, result)
}

// AwardPendingTournaments awards every finished tournament that has not
// been credited yet. Each tournament is its own transaction; failures are
// collected and the rest still run.
func (s *Service) AwardPendingTournaments(ctx context.Context) ([]AwardResult, error) {
	tournaments, err := s.listTournaments(ctx)
	if err != nil {
		return nil, s.wrap("award pending tournaments", err)
	}
	var (
		results []AwardResult
		errs    []error
	)
	for _, t := range tournaments {
		if !eligibleForAwards(t) {
			continue
		}
		res, err := s.AwardTournamentPoints(ctx, t.ID)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if res.Awarded {
			results = append(results, res)
		}
	}
	log.Info("Awarded pending tournaments", "awarded", len(results), "failed", len(errs))
	return results, errors.Join(errs...)
}
