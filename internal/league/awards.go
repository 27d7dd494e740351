package league

import "fmt"

// Placement is a participant's final standing in a tournament.
type Placement int

const (
	PlacementParticipant Placement = iota
	PlacementThirdPlace
	PlacementRunnerUp
	PlacementWinner
)

func (p Placement) String() string {
	switch p {
	case PlacementWinner:
		return "winner"
	case PlacementRunnerUp:
		return "runner-up"
	case PlacementThirdPlace:
		return "third place"
	case PlacementParticipant:
		return "participant"
	}
	return fmt.Sprintf("Placement(%d)", int(p))
}

// Points is the tournament points a placement is worth.
func (p Placement) Points() int {
	switch p {
	case PlacementWinner:
		return 20
	case PlacementRunnerUp:
		return 15
	case PlacementThirdPlace:
		return 10
	case PlacementParticipant:
		return 5
	}
	panic(fmt.Sprintf("league: unhandled placement %d", int(p)))
}

// PlacementOf resolves where participantID finished in t.
func PlacementOf(t Tournament, participantID string) Placement {
	switch {
	case t.Winner != nil && t.Winner.ID == participantID:
		return PlacementWinner
	case t.RunnerUp != nil && t.RunnerUp.ID == participantID:
		return PlacementRunnerUp
	case t.ThirdPlace != nil && t.ThirdPlace.ID == participantID:
		return PlacementThirdPlace
	default:
		return PlacementParticipant
	}
}

// Award is the points one participant receives for a tournament.
type Award struct {
	Participant Participant `json:"participant" msgpack:"participant"`
	Placement   Placement   `json:"placement" msgpack:"placement"`
	Points      int         `json:"points" msgpack:"points"`
}

// ComputeAwards returns one award per participant in roster order.
// Without recorded placements everyone receives participation points.
func ComputeAwards(t Tournament) []Award {
	awards := make([]Award, 0, len(t.Participants))
	for _, p := range t.Participants {
		placement := PlacementOf(t, p.ID)
		awards = append(awards, Award{Participant: p, Placement: placement, Points: placement.Points()})
	}
	return awards
}

// eligibleForAwards reports whether a tournament's points are due.
func eligibleForAwards(t Tournament) bool {
	if t.PointsAwarded || len(t.Participants) == 0 {
		return false
	}
	return t.Status == StatusFinished || t.Winner != nil
}
