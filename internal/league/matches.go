package league

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/kicker-league/internal/docstore"
	"github.com/mauv0809/kicker-league/internal/pubsub"
	"golang.org/x/sync/errgroup"
)

// MatchInput is a season result as entered by a user.
type MatchInput struct {
	MatchType    MatchType `json:"matchType"`
	Player1ID    string    `json:"player1Id"`
	Player2ID    string    `json:"player2Id"`
	Team1        []string  `json:"team1,omitempty"`
	Team2        []string  `json:"team2,omitempty"`
	Player1Score int       `json:"player1Score"`
	Player2Score int       `json:"player2Score"`
}

// ValidateMatch checks a season result and builds the match it describes.
// Nothing is read or written.
func (r Rules) ValidateMatch(in MatchInput) (Match, error) {
	m := Match{
		MatchType:    in.MatchType,
		Player1ID:    in.Player1ID,
		Player2ID:    in.Player2ID,
		Player1Score: in.Player1Score,
		Player2Score: in.Player2Score,
	}
	switch in.MatchType {
	case "", MatchTypeSingles:
		m.MatchType = MatchTypeSingles
	case MatchTypeDoubles:
		if len(in.Team1) != 2 || len(in.Team2) != 2 {
			return Match{}, invalid(ErrInvalidTeam, "a doubles match needs two players per team")
		}
		m.Team1 = append([]string{}, in.Team1...)
		m.Team2 = append([]string{}, in.Team2...)
		m.Player1ID, m.Player2ID = in.Team1[0], in.Team2[0]
	default:
		return Match{}, invalid(ErrInvalidTeam, "unknown match type %q", in.MatchType)
	}

	if err := validateSides(m.Side1(), m.Side2()); err != nil {
		return Match{}, err
	}
	if err := r.ValidateMatchScore(m.Player1Score, m.Player2Score); err != nil {
		return Match{}, err
	}
	deriveOutcome(&m)
	return m, nil
}

// deriveOutcome names the winning and losing side by their first player.
// Draws have neither.
func deriveOutcome(m *Match) {
	m.WinnerID, m.LoserID = "", ""
	switch {
	case m.Player1Score > m.Player2Score:
		m.WinnerID, m.LoserID = m.Player1ID, m.Player2ID
	case m.Player2Score > m.Player1Score:
		m.WinnerID, m.LoserID = m.Player2ID, m.Player1ID
	}
}

// seasonPoints is what each player earns from m.
func seasonPoints(m Match) map[string]int {
	p1, p2 := 0, 0
	switch {
	case m.Player1Score > m.Player2Score:
		p1 = 3
	case m.Player2Score > m.Player1Score:
		p2 = 3
	default:
		p1, p2 = 1, 1
	}
	out := make(map[string]int)
	for _, id := range m.Side1() {
		out[id] += p1
	}
	for _, id := range m.Side2() {
		out[id] += p2
	}
	return out
}

// applySeasonPoints adds delta to each player's season points counter.
// Players that no longer exist are skipped.
func applySeasonPoints(tx docstore.Tx, delta map[string]int) error {
	ids := make([]string, 0, len(delta))
	for id := range delta {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if delta[id] == 0 {
			continue
		}
		p, err := loadPlayer(tx, id)
		if err != nil {
			if IsNotFound(err) {
				log.Warn("Skipping season points for missing player", "playerID", id)
				continue
			}
			return err
		}
		if err := tx.Update(playerPath(id), map[string]any{"seasonPoints": p.SeasonPoints + delta[id]}); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) RecordMatch(ctx context.Context, in MatchInput) (Match, error) {
	defer s.observe("record_match", time.Now())
	m, err := s.rules.ValidateMatch(in)
	if err != nil {
		return Match{}, err
	}
	m.ID = uuid.NewString()
	m.CreatedAt = s.now()

	names := make(map[string]string)
	err = s.store.RunTransaction(ctx, func(tx docstore.Tx) error {
		for _, id := range append(m.Side1(), m.Side2()...) {
			p, err := loadPlayer(tx, id)
			if IsNotFound(err) {
				return invalid(ErrUnknownPlayer, "unknown player %q", id)
			}
			if err != nil {
				return err
			}
			names[id] = p.Name
		}
		if err := tx.Set(matchPath(m.ID), m); err != nil {
			return err
		}
		return applySeasonPoints(tx, seasonPoints(m))
	})
	if err != nil {
		return Match{}, s.wrap("record match", err)
	}

	s.metrics.IncMatchesRecorded()
	log.Info("Recorded match", "matchID", m.ID, "type", m.MatchType, "score", []int{m.Player1Score, m.Player2Score})
	s.publish(pubsub.EventMatchRecorded, newMatchRecordedEvent(m, names))
	return m, nil
}

func newMatchRecordedEvent(m Match, names map[string]string) MatchRecordedEvent {
	lookup := func(ids []string) []string {
		out := make([]string, len(ids))
		for i, id := range ids {
			out[i] = names[id]
		}
		return out
	}
	ev := MatchRecordedEvent{Match: m, Side1Names: lookup(m.Side1()), Side2Names: lookup(m.Side2())}
	switch m.WinnerID {
	case "":
	case m.Player1ID:
		ev.WinnerNames = ev.Side1Names
	default:
		ev.WinnerNames = ev.Side2Names
	}
	return ev
}

// EditMatch replaces a match's scores, re-deriving the outcome and the
// players' season points.
func (s *Service) EditMatch(ctx context.Context, id string, score1, score2 int) (Match, error) {
	defer s.observe("edit_match", time.Now())
	if err := s.rules.ValidateMatchScore(score1, score2); err != nil {
		return Match{}, err
	}
	var updated Match
	err := s.store.RunTransaction(ctx, func(tx docstore.Tx) error {
		old, err := loadMatch(tx, id)
		if err != nil {
			return err
		}
		updated = old
		updated.Player1Score, updated.Player2Score = score1, score2
		deriveOutcome(&updated)

		delta := seasonPoints(updated)
		for pid, pts := range seasonPoints(old) {
			delta[pid] -= pts
		}
		if err := tx.Update(matchPath(id), map[string]any{
			"player1Score": score1,
			"player2Score": score2,
			"winnerId":     nilIfEmpty(updated.WinnerID),
			"loserId":      nilIfEmpty(updated.LoserID),
		}); err != nil {
			return err
		}
		return applySeasonPoints(tx, delta)
	})
	if err != nil {
		return Match{}, s.wrap("edit match", err)
	}
	log.Info("Edited match", "matchID", id, "score", []int{score1, score2})
	return updated, nil
}

func (s *Service) DeleteMatch(ctx context.Context, id string) error {
	err := s.store.RunTransaction(ctx, func(tx docstore.Tx) error {
		m, err := loadMatch(tx, id)
		if err != nil {
			return err
		}
		delta := make(map[string]int)
		for pid, pts := range seasonPoints(m) {
			delta[pid] = -pts
		}
		if err := tx.Delete(matchPath(id)); err != nil {
			return err
		}
		return applySeasonPoints(tx, delta)
	})
	if err != nil {
		return s.wrap("delete match", err)
	}
	log.Info("Deleted match", "matchID", id)
	return nil
}

func (s *Service) ListMatches(ctx context.Context) ([]Match, error) {
	matches, err := s.listMatches(ctx)
	return matches, s.wrap("list matches", err)
}

// SeasonLeaderboard ranks every player by their season matches.
func (s *Service) SeasonLeaderboard(ctx context.Context) ([]Standing, error) {
	defer s.observe("season_leaderboard", time.Now())
	var (
		players []Player
		matches []Match
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		players, err = s.listPlayers(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		matches, err = s.listMatches(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, s.wrap("season leaderboard", err)
	}
	return SeasonStandings(players, matches), nil
}

// PlayerStanding returns a single player's row of the season leaderboard.
func (s *Service) PlayerStanding(ctx context.Context, id string) (Standing, error) {
	standings, err := s.SeasonLeaderboard(ctx)
	if err != nil {
		return Standing{}, err
	}
	for _, st := range standings {
		if st.ID == id {
			return st, nil
		}
	}
	return Standing{}, notFound("player", id)
}

func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	var (
		players     []Player
		matches     []Match
		tournaments []Tournament
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		players, err = s.listPlayers(gCtx)
		return err
	})
	g.Go(func() (err error) {
		matches, err = s.listMatches(gCtx)
		return err
	})
	g.Go(func() (err error) {
		tournaments, err = s.listTournaments(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, s.wrap("dashboard", err)
	}

	d := Dashboard{
		TotalPlayers:     len(players),
		TotalMatches:     len(matches),
		TotalTournaments: len(tournaments),
	}
	if standings := SeasonStandings(players, matches); len(standings) > 0 {
		top := standings[0]
		d.TopPlayer = &top
	}
	return d, nil
}

// MigrateMatchTypes stamps a match type on matches stored without one.
// Matches carrying team fields become doubles, all others singles. Legacy
// per-slot team fields are folded into the team lists.
func (s *Service) MigrateMatchTypes(ctx context.Context) (int, error) {
	migrated := 0
	err := s.store.RunTransaction(ctx, func(tx docstore.Tx) error {
		migrated = 0
		snaps, err := tx.List(collectionMatches)
		if err != nil {
			return err
		}
		for _, snap := range snaps {
			data := snap.Data()
			if mt, _ := data["matchType"].(string); mt != "" {
				continue
			}
			fields := map[string]any{"matchType": MatchTypeSingles}
			team1 := legacyTeam(data, "team1")
			team2 := legacyTeam(data, "team2")
			if len(team1) > 0 || len(team2) > 0 {
				fields["matchType"] = MatchTypeDoubles
				fields["team1"] = team1
				fields["team2"] = team2
				if len(team1) > 0 {
					fields["player1Id"] = team1[0]
				}
				if len(team2) > 0 {
					fields["player2Id"] = team2[0]
				}
				for side, key := range map[string]string{"team1Score": "player1Score", "team2Score": "player2Score"} {
					if v, ok := data[side]; ok {
						fields[key] = v
					}
				}
			}
			if err := tx.Update(snap.Path, fields); err != nil {
				return err
			}
			log.Info("Stamped match type", "matchID", snap.ID(), "type", fields["matchType"])
			migrated++
		}
		return nil
	})
	if err != nil {
		return 0, s.wrap("migrate match types", err)
	}
	return migrated, nil
}

// legacyTeam reads a team either as a list under key or as the older
// key+"Player1Id"/key+"Player2Id" pair.
func legacyTeam(data map[string]any, key string) []string {
	if list, ok := data[key].([]any); ok {
		var team []string
		for _, v := range list {
			if id, ok := v.(string); ok && id != "" {
				team = append(team, id)
			}
		}
		return team
	}
	var team []string
	for _, suffix := range []string{"Player1Id", "Player2Id"} {
		if id, ok := data[key+suffix].(string); ok && strings.TrimSpace(id) != "" {
			team = append(team, id)
		}
	}
	return team
}

func nilIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
