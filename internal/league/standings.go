package league

import (
	"sort"

	"github.com/charmbracelet/log"
)

// Ranking selects the tiebreak chain used to sort standings.
type Ranking int

const (
	// RankSeason sorts by points, tournament wins, then goal difference.
	RankSeason Ranking = iota
	// RankGroup sorts by points, goal difference, then goals for.
	RankGroup
)

// Competitor is an entry in a standings table.
type Competitor struct {
	ID             string
	Name           string
	TournamentWins int
}

// Result is a scored fixture between two sides. Each side holds one or
// more competitor ids; nil scores mean the fixture has not been played.
type Result struct {
	Side1  []string
	Side2  []string
	Score1 *int
	Score2 *int
}

// CalculateStandings tallies results into standings for competitors.
// Wins earn 3 points and draws 1. Results naming an unknown competitor are
// skipped. The sort is stable, so ties keep the competitors' input order.
func CalculateStandings(competitors []Competitor, results []Result, ranking Ranking) []Standing {
	standings := make([]Standing, len(competitors))
	index := make(map[string]int, len(competitors))
	for i, c := range competitors {
		standings[i] = Standing{ID: c.ID, Name: c.Name, TournamentWins: c.TournamentWins}
		index[c.ID] = i
	}

	for _, r := range results {
		if r.Score1 == nil || r.Score2 == nil || len(r.Side1) == 0 || len(r.Side2) == 0 {
			continue
		}
		if !allKnown(index, r.Side1) || !allKnown(index, r.Side2) {
			log.Debug("Skipping result with unknown participant", "side1", r.Side1, "side2", r.Side2)
			continue
		}
		s1, s2 := *r.Score1, *r.Score2
		for _, id := range r.Side1 {
			tally(&standings[index[id]], s1, s2)
		}
		for _, id := range r.Side2 {
			tally(&standings[index[id]], s2, s1)
		}
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return ranksAbove(standings[i], standings[j], ranking)
	})
	return standings
}

func allKnown(index map[string]int, ids []string) bool {
	for _, id := range ids {
		if _, ok := index[id]; !ok {
			return false
		}
	}
	return true
}

func tally(s *Standing, own, other int) {
	s.Played++
	s.GoalsFor += own
	s.GoalsAgainst += other
	switch {
	case own > other:
		s.Wins++
		s.Points += 3
	case own == other:
		s.Draws++
		s.Points++
	default:
		s.Losses++
	}
}

func ranksAbove(a, b Standing, ranking Ranking) bool {
	if a.Points != b.Points {
		return a.Points > b.Points
	}
	if ranking == RankSeason {
		if a.TournamentWins != b.TournamentWins {
			return a.TournamentWins > b.TournamentWins
		}
		return a.GoalDifference() > b.GoalDifference()
	}
	if a.GoalDifference() != b.GoalDifference() {
		return a.GoalDifference() > b.GoalDifference()
	}
	return a.GoalsFor > b.GoalsFor
}

// GroupStandings ranks a tournament's participants by its group stage games.
func GroupStandings(t Tournament) []Standing {
	competitors := make([]Competitor, len(t.Participants))
	for i, p := range t.Participants {
		competitors[i] = Competitor{ID: p.ID, Name: p.Name}
	}
	games := t.OrderedGames()
	results := make([]Result, 0, len(games))
	for _, g := range games {
		results = append(results, Result{
			Side1:  []string{g.Player1.ID},
			Side2:  []string{g.Player2.ID},
			Score1: g.Score1,
			Score2: g.Score2,
		})
	}
	return CalculateStandings(competitors, results, RankGroup)
}

// SeasonStandings ranks players by their season matches.
func SeasonStandings(players []Player, matches []Match) []Standing {
	competitors := make([]Competitor, len(players))
	for i, p := range players {
		competitors[i] = Competitor{ID: p.ID, Name: p.Name, TournamentWins: p.TournamentWins}
	}
	results := make([]Result, 0, len(matches))
	for _, m := range matches {
		s1, s2 := m.Player1Score, m.Player2Score
		results = append(results, Result{Side1: m.Side1(), Side2: m.Side2(), Score1: &s1, Score2: &s2})
	}
	return CalculateStandings(competitors, results, RankSeason)
}
