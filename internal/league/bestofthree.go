package league

// GamesPerPlayoffMatch is the number of games in a best-of-three playoff match.
const GamesPerPlayoffMatch = 3

// Side identifies one side of a two-sided fixture.
type Side int

const (
	SideNone Side = iota
	Side1
	Side2
)

// GameScore is one game of a playoff match. Nil scores mean unplayed.
type GameScore struct {
	Score1 *int `json:"score1"`
	Score2 *int `json:"score2"`
}

func (g GameScore) Played() bool {
	return g.Score1 != nil && g.Score2 != nil
}

// IsMatchCompleted reports whether all three games have been played.
func IsMatchCompleted(games []GameScore) bool {
	if len(games) < GamesPerPlayoffMatch {
		return false
	}
	for _, g := range games[:GamesPerPlayoffMatch] {
		if !g.Played() {
			return false
		}
	}
	return true
}

// ResolveBestOfThree reports whether the match is complete and which side
// won a strict majority of its games. Tied games count for neither side,
// so a completed match can still have no winner.
//
// Game validity (first to the threshold, never both) is checked by
// Rules.ValidateGameScore when scores are entered, not here.
func ResolveBestOfThree(games []GameScore) (completed bool, winner Side) {
	completed = IsMatchCompleted(games)
	if !completed {
		return false, SideNone
	}
	var wins1, wins2 int
	for _, g := range games[:GamesPerPlayoffMatch] {
		switch {
		case *g.Score1 > *g.Score2:
			wins1++
		case *g.Score2 > *g.Score1:
			wins2++
		}
	}
	switch {
	case wins1 > wins2:
		return true, Side1
	case wins2 > wins1:
		return true, Side2
	default:
		return true, SideNone
	}
}
