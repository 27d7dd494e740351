package league

// MatchRecordedEvent is published after a season match is stored.
type MatchRecordedEvent struct {
	Match       Match    `msgpack:"match"`
	Side1Names  []string `msgpack:"side1Names"`
	Side2Names  []string `msgpack:"side2Names"`
	WinnerNames []string `msgpack:"winnerNames"`
}

// TournamentFinishedEvent is published once a tournament's final is decided.
type TournamentFinishedEvent struct {
	TournamentID string       `msgpack:"tournamentId"`
	Name         string       `msgpack:"name"`
	Winner       *Participant `msgpack:"winner"`
	RunnerUp     *Participant `msgpack:"runnerUp"`
	ThirdPlace   *Participant `msgpack:"thirdPlace"`
	Awards       []Award      `msgpack:"awards"`
}

// AwardResult reports the outcome of one points award attempt.
type AwardResult struct {
	TournamentID string   `json:"tournamentId" msgpack:"tournamentId"`
	Name         string   `json:"name" msgpack:"name"`
	Awarded      bool     `json:"awarded" msgpack:"awarded"`
	Awards       []Award  `json:"awards,omitempty" msgpack:"awards"`
	Skipped      []string `json:"skipped,omitempty" msgpack:"skipped"`
}

// Total is the sum of all points handed out.
func (r AwardResult) Total() int {
	total := 0
	for _, a := range r.Awards {
		total += a.Points
	}
	return total
}
