package league

import (
	"time"

	"github.com/charmbracelet/log"
)

// Slot names one of the four playoff matches.
type Slot string

const (
	SlotQualifier1 Slot = "qualifier1"
	SlotEliminator Slot = "eliminator"
	SlotQualifier2 Slot = "qualifier2"
	SlotFinal      Slot = "final"
)

// BracketOrder is the order advancement visits the playoff matches, so a
// winner produced early in a pass is already seated for later matches.
var BracketOrder = []Slot{SlotQualifier1, SlotEliminator, SlotQualifier2, SlotFinal}

// PlayoffSeeds is the number of group stage finishers that enter the playoffs.
const PlayoffSeeds = 4

func ParseSlot(s string) (Slot, error) {
	for _, slot := range BracketOrder {
		if string(slot) == s {
			return slot, nil
		}
	}
	return "", invalid(ErrUnknownSlot, "unknown playoff match %q", s)
}

type PlayoffMatch struct {
	Player1   *Participant `json:"player1"`
	Player2   *Participant `json:"player2"`
	Games     []GameScore  `json:"games"`
	Completed bool         `json:"completed"`
	Winner    *Participant `json:"winner"`
}

func newPlayoffMatch(p1, p2 *Participant) *PlayoffMatch {
	return &PlayoffMatch{
		Player1: p1,
		Player2: p2,
		Games:   make([]GameScore, GamesPerPlayoffMatch),
	}
}

// Ready reports whether both participants are known.
func (m *PlayoffMatch) Ready() bool {
	return m.Player1 != nil && m.Player2 != nil
}

// Loser returns the participant who did not win, or nil while there is no winner.
func (m *PlayoffMatch) Loser() *Participant {
	if m == nil || m.Winner == nil || !m.Ready() {
		return nil
	}
	if m.Winner.ID == m.Player1.ID {
		return clone(m.Player2)
	}
	return clone(m.Player1)
}

func (m *PlayoffMatch) on(side Side) *Participant {
	switch side {
	case Side1:
		return clone(m.Player1)
	case Side2:
		return clone(m.Player2)
	default:
		return nil
	}
}

type Playoffs struct {
	Qualifier1 *PlayoffMatch `json:"qualifier1"`
	Eliminator *PlayoffMatch `json:"eliminator"`
	Qualifier2 *PlayoffMatch `json:"qualifier2"`
	Final      *PlayoffMatch `json:"final"`
}

// Match returns the playoff match in slot.
func (p *Playoffs) Match(slot Slot) *PlayoffMatch {
	if p == nil {
		return nil
	}
	switch slot {
	case SlotQualifier1:
		return p.Qualifier1
	case SlotEliminator:
		return p.Eliminator
	case SlotQualifier2:
		return p.Qualifier2
	case SlotFinal:
		return p.Final
	}
	return nil
}

// fillGaps restores missing matches and game rows in partially stored brackets.
func (p *Playoffs) fillGaps() []Slot {
	var fixed []Slot
	for _, slot := range BracketOrder {
		var dst **PlayoffMatch
		switch slot {
		case SlotQualifier1:
			dst = &p.Qualifier1
		case SlotEliminator:
			dst = &p.Eliminator
		case SlotQualifier2:
			dst = &p.Qualifier2
		case SlotFinal:
			dst = &p.Final
		}
		if *dst == nil {
			*dst = newPlayoffMatch(nil, nil)
			fixed = append(fixed, slot)
			continue
		}
		if n := len((*dst).Games); n < GamesPerPlayoffMatch {
			(*dst).Games = append((*dst).Games, make([]GameScore, GamesPerPlayoffMatch-n)...)
			fixed = append(fixed, slot)
		}
	}
	return fixed
}

// StartPlayoffs seeds the bracket from the group standings: ranks 1 and 2
// meet in Qualifier 1, ranks 3 and 4 in the Eliminator. On error t is left
// untouched.
func StartPlayoffs(t *Tournament) error {
	if t.Status != StatusGroupStage {
		return invalid(ErrInvalidStatus, "playoffs can only start after the group stage (status is %s)", t.Status)
	}
	standings := GroupStandings(*t)
	if len(standings) < PlayoffSeeds {
		return invalid(ErrInsufficientParticipants, "playoffs need at least %d participants, got %d", PlayoffSeeds, len(standings))
	}
	seed := func(rank int) *Participant {
		return &Participant{ID: standings[rank].ID, Name: standings[rank].Name}
	}
	t.Playoffs = &Playoffs{
		Qualifier1: newPlayoffMatch(seed(0), seed(1)),
		Eliminator: newPlayoffMatch(seed(2), seed(3)),
		Qualifier2: newPlayoffMatch(nil, nil),
		Final:      newPlayoffMatch(nil, nil),
	}
	t.Status = StatusPlayoffs
	return nil
}

// Advancement describes what one AdvanceWinners pass changed.
type Advancement struct {
	// Completed lists matches marked completed during this pass.
	Completed []Slot
	// Touched lists every match whose stored state changed.
	Touched []Slot
	// Finished is set when this pass completed the tournament.
	Finished bool
}

func (a Advancement) Changed() bool {
	return len(a.Touched) > 0 || a.Finished
}

func (a *Advancement) touch(slot Slot) {
	for _, s := range a.Touched {
		if s == slot {
			return
		}
	}
	a.Touched = append(a.Touched, slot)
}

// AdvanceWinners marks finished playoff matches completed and seats their
// winners and losers downstream. Seats are only ever filled when empty, so
// calling it again on the same state changes nothing. When the final is
// decided the tournament is finished with its placements recorded.
func AdvanceWinners(t *Tournament, now time.Time) Advancement {
	var adv Advancement
	p := t.Playoffs
	if p == nil || t.Status != StatusPlayoffs {
		return adv
	}
	for _, slot := range p.fillGaps() {
		adv.touch(slot)
	}

	for _, slot := range BracketOrder {
		m := p.Match(slot)
		if m == nil || !m.Ready() {
			continue
		}
		if !m.Completed {
			completed, side := ResolveBestOfThree(m.Games)
			if !completed {
				continue
			}
			m.Completed = true
			m.Winner = m.on(side)
			adv.Completed = append(adv.Completed, slot)
			adv.touch(slot)
			if m.Winner == nil {
				log.Warn("Playoff match completed without a winner", "tournamentID", t.ID, "match", slot)
			}
		}
		if m.Winner == nil {
			continue
		}

		switch slot {
		case SlotQualifier1:
			if seat(&p.Final.Player1, m.Winner) {
				adv.touch(SlotFinal)
			}
			if seat(&p.Qualifier2.Player1, m.Loser()) {
				adv.touch(SlotQualifier2)
			}
		case SlotEliminator:
			if seat(&p.Qualifier2.Player2, m.Winner) {
				adv.touch(SlotQualifier2)
			}
		case SlotQualifier2:
			if seat(&p.Final.Player2, m.Winner) {
				adv.touch(SlotFinal)
			}
		case SlotFinal:
			finish(t, now)
			adv.Finished = true
		}
	}
	return adv
}

// seat fills an empty bracket position. Occupied positions are never overwritten.
func seat(dst **Participant, p *Participant) bool {
	if *dst != nil || p == nil {
		return false
	}
	*dst = clone(p)
	return true
}

func finish(t *Tournament, now time.Time) {
	final := t.Playoffs.Final
	t.Winner = clone(final.Winner)
	t.RunnerUp = final.Loser()
	t.ThirdPlace = thirdPlace(t.Playoffs)
	t.FinishedAt = &now
	t.Status = StatusFinished
}

// thirdPlace is the loser of Qualifier 2. When that cannot be determined
// the loser of Qualifier 1 is used instead, as the earliest second-chance
// loser has the next best claim.
func thirdPlace(p *Playoffs) *Participant {
	if loser := p.Qualifier2.Loser(); loser != nil {
		return loser
	}
	return p.Qualifier1.Loser()
}

func clone(p *Participant) *Participant {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
