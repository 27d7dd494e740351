package notifier

import (
	"github.com/mauv0809/kicker-league/internal/league"
)

// Notifier defines a high-level interface for sending notifications about league events.
type Notifier interface {
	// For recorded season matches
	SendMatchResult(event league.MatchRecordedEvent, dryRun bool) error
	// For finished tournaments
	SendTournamentResult(event league.TournamentFinishedEvent, dryRun bool) error
	SendLeaderboard(standings []league.Standing, dryRun bool) error

	// For formatting responses for slash commands
	FormatLeaderboardResponse(standings []league.Standing) (any, error)
	FormatPlayerStatsResponse(standing league.Standing, player league.Player, query string) (any, error)
	FormatPlayerNotFoundResponse(query string) (any, error)
}
