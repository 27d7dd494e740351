package league

import "github.com/google/uuid"

// DoubleRoundRobin pairs every two participants twice, the second leg with
// the sides swapped. Games are numbered so the first leg is played first.
func DoubleRoundRobin(participants []Participant) map[string]*Game {
	n := len(participants)
	legSize := n * (n - 1) / 2
	games := make(map[string]*Game, 2*legSize)

	order := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			first := &Game{
				ID:      uuid.NewString(),
				Order:   order,
				Player1: participants[i],
				Player2: participants[j],
			}
			second := &Game{
				ID:      uuid.NewString(),
				Order:   order + legSize,
				Player1: participants[j],
				Player2: participants[i],
			}
			games[first.ID] = first
			games[second.ID] = second
			order++
		}
	}
	return games
}
