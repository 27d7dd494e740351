package league

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func game(s1, s2 int) GameScore {
	return GameScore{Score1: ip(s1), Score2: ip(s2)}
}

func TestResolveBestOfThree(t *testing.T) {
	tests := []struct {
		name          string
		games         []GameScore
		wantCompleted bool
		wantWinner    Side
	}{
		{
			name:          "side one wins two of three",
			games:         []GameScore{game(10, 7), game(3, 10), game(10, 8)},
			wantCompleted: true,
			wantWinner:    Side1,
		},
		{
			name:          "side two wins the first two",
			games:         []GameScore{game(4, 10), game(9, 10), game(10, 2)},
			wantCompleted: true,
			wantWinner:    Side2,
		},
		{
			name:          "two games are not enough",
			games:         []GameScore{game(10, 7), game(10, 3), {}},
			wantCompleted: false,
			wantWinner:    SideNone,
		},
		{
			name:          "missing rows",
			games:         []GameScore{game(10, 7)},
			wantCompleted: false,
			wantWinner:    SideNone,
		},
		{
			name:          "half entered game",
			games:         []GameScore{game(10, 7), game(3, 10), {Score1: ip(10)}},
			wantCompleted: false,
			wantWinner:    SideNone,
		},
		{
			name:          "tied games count for nobody",
			games:         []GameScore{game(10, 7), game(3, 10), game(10, 10)},
			wantCompleted: true,
			wantWinner:    SideNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completed, winner := ResolveBestOfThree(tt.games)
			assert.Equal(t, tt.wantCompleted, completed)
			assert.Equal(t, tt.wantWinner, winner)
			assert.Equal(t, tt.wantCompleted, IsMatchCompleted(tt.games))
		})
	}
}
