package league

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeAwards(t *testing.T) {
	tour := Tournament{
		Status:       StatusFinished,
		Participants: []Participant{anna, ben, cleo, dina},
		Winner:       &anna,
		RunnerUp:     &cleo,
		ThirdPlace:   &ben,
	}

	awards := ComputeAwards(tour)
	got := make(map[string]int, len(awards))
	total := 0
	for _, a := range awards {
		got[a.Participant.Name] = a.Points
		total += a.Points
	}
	assert.Equal(t, map[string]int{"Anna": 20, "Cleo": 15, "Ben": 10, "Dina": 5}, got)
	assert.Equal(t, 50, total)
	assert.Equal(t, PlacementRunnerUp, PlacementOf(tour, "c"))
	assert.Equal(t, PlacementParticipant, PlacementOf(tour, "nobody"))
}

func TestComputeAwards_WithoutPlacements(t *testing.T) {
	tour := Tournament{Participants: []Participant{anna, ben}}
	for _, a := range ComputeAwards(tour) {
		assert.Equal(t, PlacementParticipant, a.Placement)
		assert.Equal(t, 5, a.Points)
	}
}

func TestPlacementPoints_PanicsOnUnknown(t *testing.T) {
	assert.Panics(t, func() { _ = Placement(9).Points() })
	assert.Equal(t, "Placement(9)", Placement(9).String())
	assert.Equal(t, "runner-up", PlacementRunnerUp.String())
}

func TestEligibleForAwards(t *testing.T) {
	tests := []struct {
		name string
		tour Tournament
		want bool
	}{
		{"finished", Tournament{Status: StatusFinished, Participants: []Participant{anna}}, true},
		{"winner recorded in playoffs", Tournament{Status: StatusPlayoffs, Winner: &anna, Participants: []Participant{anna}}, true},
		{"already awarded", Tournament{Status: StatusFinished, PointsAwarded: true, Participants: []Participant{anna}}, false},
		{"no participants", Tournament{Status: StatusFinished}, false},
		{"still playing", Tournament{Status: StatusPlayoffs, Participants: []Participant{anna}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, eligibleForAwards(tt.tour))
		})
	}
}
