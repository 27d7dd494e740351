package league

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	anna = Participant{ID: "a", Name: "Anna"}
	ben  = Participant{ID: "b", Name: "Ben"}
	cleo = Participant{ID: "c", Name: "Cleo"}
	dina = Participant{ID: "d", Name: "Dina"}
)

// groupStage returns a tournament whose group stage ranks the participants
// in the order given: every game is won 10:5 by the earlier participant.
func groupStage(participants ...Participant) *Tournament {
	rank := make(map[string]int, len(participants))
	for i, p := range participants {
		rank[p.ID] = i
	}
	games := DoubleRoundRobin(participants)
	for _, g := range games {
		if rank[g.Player1.ID] < rank[g.Player2.ID] {
			g.Score1, g.Score2 = ip(10), ip(5)
		} else {
			g.Score1, g.Score2 = ip(5), ip(10)
		}
	}
	return &Tournament{
		ID:           "t1",
		Name:         "Friday Cup",
		Status:       StatusGroupStage,
		Participants: participants,
		Games:        games,
	}
}

// play fills all three games so that side wins two of them.
func play(m *PlayoffMatch, side Side) {
	if side == Side1 {
		m.Games = []GameScore{game(10, 7), game(3, 10), game(10, 8)}
		return
	}
	m.Games = []GameScore{game(7, 10), game(10, 3), game(8, 10)}
}

func copyPlayoffs(t *testing.T, p *Playoffs) *Playoffs {
	t.Helper()
	raw, err := json.Marshal(p)
	require.NoError(t, err)
	var out Playoffs
	require.NoError(t, json.Unmarshal(raw, &out))
	return &out
}

func TestStartPlayoffs(t *testing.T) {
	tour := groupStage(anna, ben, cleo, dina)
	require.NoError(t, StartPlayoffs(tour))

	assert.Equal(t, StatusPlayoffs, tour.Status)
	p := tour.Playoffs
	assert.Equal(t, &anna, p.Qualifier1.Player1)
	assert.Equal(t, &ben, p.Qualifier1.Player2)
	assert.Equal(t, &cleo, p.Eliminator.Player1)
	assert.Equal(t, &dina, p.Eliminator.Player2)
	assert.False(t, p.Qualifier2.Ready())
	assert.False(t, p.Final.Ready())
	for _, slot := range BracketOrder {
		assert.Len(t, p.Match(slot).Games, GamesPerPlayoffMatch, slot)
	}
}

func TestStartPlayoffs_Rejects(t *testing.T) {
	t.Run("three participants", func(t *testing.T) {
		tour := groupStage(anna, ben, cleo)
		err := StartPlayoffs(tour)
		assert.ErrorIs(t, err, ErrInsufficientParticipants)
		assert.Nil(t, tour.Playoffs)
		assert.Equal(t, StatusGroupStage, tour.Status)
	})

	t.Run("still in setup", func(t *testing.T) {
		tour := &Tournament{Status: StatusSetup, Participants: []Participant{anna, ben, cleo, dina}}
		assert.ErrorIs(t, StartPlayoffs(tour), ErrInvalidStatus)
	})
}

func TestAdvanceWinners_FullBracket(t *testing.T) {
	now := time.Date(2026, 3, 6, 18, 0, 0, 0, time.UTC)
	tour := groupStage(anna, ben, cleo, dina)
	require.NoError(t, StartPlayoffs(tour))
	p := tour.Playoffs

	play(p.Qualifier1, Side1)
	adv := AdvanceWinners(tour, now)
	assert.Equal(t, []Slot{SlotQualifier1}, adv.Completed)
	assert.ElementsMatch(t, []Slot{SlotQualifier1, SlotFinal, SlotQualifier2}, adv.Touched)
	assert.Equal(t, &anna, p.Final.Player1)
	assert.Equal(t, &ben, p.Qualifier2.Player1)

	play(p.Eliminator, Side1)
	AdvanceWinners(tour, now)
	assert.Equal(t, &cleo, p.Qualifier2.Player2)

	// Cleo beats Ben in Qualifier 2.
	play(p.Qualifier2, Side2)
	AdvanceWinners(tour, now)
	assert.Equal(t, &cleo, p.Final.Player2)
	assert.Equal(t, StatusPlayoffs, tour.Status)

	play(p.Final, Side1)
	adv = AdvanceWinners(tour, now)
	assert.True(t, adv.Finished)
	assert.Equal(t, StatusFinished, tour.Status)
	assert.Equal(t, &anna, tour.Winner)
	assert.Equal(t, &cleo, tour.RunnerUp)
	assert.Equal(t, &ben, tour.ThirdPlace)
	require.NotNil(t, tour.FinishedAt)
	assert.True(t, now.Equal(*tour.FinishedAt))
}

func TestAdvanceWinners_IsIdempotent(t *testing.T) {
	tour := groupStage(anna, ben, cleo, dina)
	require.NoError(t, StartPlayoffs(tour))
	play(tour.Playoffs.Qualifier1, Side2)

	first := AdvanceWinners(tour, time.Now())
	require.True(t, first.Changed())
	before := copyPlayoffs(t, tour.Playoffs)

	again := AdvanceWinners(tour, time.Now())
	assert.False(t, again.Changed())
	if diff := cmp.Diff(before, tour.Playoffs); diff != "" {
		t.Errorf("second pass changed the bracket (-before +after):\n%s", diff)
	}
	assert.Equal(t, &ben, tour.Playoffs.Final.Player1)
	assert.Equal(t, &anna, tour.Playoffs.Qualifier2.Player1)
}

func TestAdvanceWinners_NeverOverwritesSeats(t *testing.T) {
	tour := groupStage(anna, ben, cleo, dina)
	require.NoError(t, StartPlayoffs(tour))
	p := tour.Playoffs
	p.Final.Player1 = &dina

	play(p.Qualifier1, Side1)
	AdvanceWinners(tour, time.Now())
	assert.Equal(t, &dina, p.Final.Player1)
}

func TestAdvanceWinners_TiedMatchDoesNotAdvance(t *testing.T) {
	tour := groupStage(anna, ben, cleo, dina)
	require.NoError(t, StartPlayoffs(tour))
	p := tour.Playoffs
	p.Qualifier1.Games = []GameScore{game(10, 7), game(3, 10), game(10, 10)}

	adv := AdvanceWinners(tour, time.Now())
	assert.Equal(t, []Slot{SlotQualifier1}, adv.Completed)
	assert.True(t, p.Qualifier1.Completed)
	assert.Nil(t, p.Qualifier1.Winner)
	assert.Nil(t, p.Final.Player1)
	assert.Nil(t, p.Qualifier2.Player1)
}

func TestAdvanceWinners_RepairsPartialBracket(t *testing.T) {
	tour := groupStage(anna, ben, cleo, dina)
	require.NoError(t, StartPlayoffs(tour))
	tour.Playoffs.Final = nil
	tour.Playoffs.Eliminator.Games = nil

	adv := AdvanceWinners(tour, time.Now())
	assert.ElementsMatch(t, []Slot{SlotEliminator, SlotFinal}, adv.Touched)
	require.NotNil(t, tour.Playoffs.Final)
	assert.Len(t, tour.Playoffs.Eliminator.Games, GamesPerPlayoffMatch)
}

func TestThirdPlaceFallsBackToQualifier1Loser(t *testing.T) {
	tour := groupStage(anna, ben, cleo, dina)
	require.NoError(t, StartPlayoffs(tour))
	p := tour.Playoffs
	play(p.Qualifier1, Side1)
	AdvanceWinners(tour, time.Now())

	// Final decided without a recorded Qualifier 2.
	p.Final.Player2 = &cleo
	play(p.Final, Side1)
	AdvanceWinners(tour, time.Now())

	assert.Equal(t, &ben, tour.ThirdPlace)
	assert.Equal(t, &cleo, tour.RunnerUp)
}

func TestParseSlot(t *testing.T) {
	slot, err := ParseSlot("qualifier2")
	require.NoError(t, err)
	assert.Equal(t, SlotQualifier2, slot)

	_, err = ParseSlot("semifinal")
	assert.ErrorIs(t, err, ErrUnknownSlot)
}
