package league

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoubleRoundRobin(t *testing.T) {
	games := DoubleRoundRobin([]Participant{anna, ben, cleo, dina})
	require.Len(t, games, 12)

	pairs := make(map[[2]string]int)
	orders := make(map[int]bool)
	for id, g := range games {
		assert.Equal(t, id, g.ID)
		assert.NotEqual(t, g.Player1.ID, g.Player2.ID)
		assert.False(t, g.Played())
		pairs[[2]string{g.Player1.ID, g.Player2.ID}]++
		orders[g.Order] = true
	}
	assert.Len(t, pairs, 12, "every ordered pairing appears once")
	for i := 0; i < 12; i++ {
		assert.True(t, orders[i], "order %d", i)
	}

	// The return leg follows the whole first leg with sides swapped.
	tour := Tournament{Games: games}
	ordered := tour.OrderedGames()
	for i := 0; i < 6; i++ {
		first, second := ordered[i], ordered[i+6]
		assert.Equal(t, first.Player1, second.Player2)
		assert.Equal(t, first.Player2, second.Player1)
	}
}

func TestDoubleRoundRobin_TwoPlayers(t *testing.T) {
	games := DoubleRoundRobin([]Participant{anna, ben})
	assert.Len(t, games, 2)
}
