package league

// Rules are the score limits applied wherever results are entered.
type Rules struct {
	// WinThreshold is the score that wins a game.
	WinThreshold int
	// MatchCeiling is the highest score either side may report.
	MatchCeiling int
}

func DefaultRules() Rules {
	return Rules{WinThreshold: 10, MatchCeiling: 10}
}

func (r Rules) checkRange(score1, score2 int) error {
	if score1 < 0 || score2 < 0 {
		return invalid(ErrScoreOutOfRange, "scores cannot be negative")
	}
	if score1 > r.MatchCeiling || score2 > r.MatchCeiling {
		return invalid(ErrScoreOutOfRange, "no side can score more than %d points", r.MatchCeiling)
	}
	return nil
}

// ValidateMatchScore checks a season match or group stage result.
// One side must reach the threshold; both exceeding it is rejected.
// Equal scores at the threshold are a valid draw.
func (r Rules) ValidateMatchScore(score1, score2 int) error {
	if err := r.checkRange(score1, score2); err != nil {
		return err
	}
	if score1 < r.WinThreshold && score2 < r.WinThreshold {
		return invalid(ErrNoWinnerReached, "a side must reach %d points", r.WinThreshold)
	}
	if score1 > r.WinThreshold && score2 > r.WinThreshold {
		return invalid(ErrBothReachedThreshold, "both sides cannot exceed %d points", r.WinThreshold)
	}
	return nil
}

// ValidateGameScore checks a single playoff game. The first side to the
// threshold wins, so exactly one side may have reached it.
func (r Rules) ValidateGameScore(score1, score2 int) error {
	if err := r.checkRange(score1, score2); err != nil {
		return err
	}
	if score1 < r.WinThreshold && score2 < r.WinThreshold {
		return invalid(ErrNoWinnerReached, "a side must reach %d points to win the game", r.WinThreshold)
	}
	if score1 >= r.WinThreshold && score2 >= r.WinThreshold {
		return invalid(ErrBothReachedThreshold, "only one side can reach %d points in a game", r.WinThreshold)
	}
	return nil
}

// validateSides checks that every referenced player is set and appears only once.
func validateSides(side1, side2 []string) error {
	seen := make(map[string]bool, len(side1)+len(side2))
	for _, id := range append(append([]string{}, side1...), side2...) {
		if id == "" {
			return invalid(ErrInvalidTeam, "every player slot must be filled")
		}
		if seen[id] {
			return invalid(ErrSamePlayer, "please select different players")
		}
		seen[id] = true
	}
	return nil
}
