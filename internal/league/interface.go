package league

import "context"

// League is the set of operations the HTTP layer and CLI drive.
type League interface {
	RegisterPlayer(ctx context.Context, name string) (Player, error)
	GetPlayer(ctx context.Context, id string) (Player, error)
	ListPlayers(ctx context.Context) ([]Player, error)
	FindPlayer(ctx context.Context, query string) (Player, error)

	RecordMatch(ctx context.Context, in MatchInput) (Match, error)
	EditMatch(ctx context.Context, id string, score1, score2 int) (Match, error)
	DeleteMatch(ctx context.Context, id string) error
	ListMatches(ctx context.Context) ([]Match, error)
	SeasonLeaderboard(ctx context.Context) ([]Standing, error)
	PlayerStanding(ctx context.Context, id string) (Standing, error)
	Dashboard(ctx context.Context) (Dashboard, error)
	MigrateMatchTypes(ctx context.Context) (int, error)

	CreateTournament(ctx context.Context, name string) (Tournament, error)
	GetTournament(ctx context.Context, id string) (Tournament, error)
	ListTournaments(ctx context.Context) ([]Tournament, error)
	DeleteTournament(ctx context.Context, id string) error
	AddParticipants(ctx context.Context, id string, playerIDs []string) (Tournament, error)
	RemoveParticipant(ctx context.Context, id, playerID string) (Tournament, error)
	StartGroupStage(ctx context.Context, id string) (Tournament, error)
	RecordGameScore(ctx context.Context, id, gameID string, score1, score2 int) (Tournament, error)
	ResetGameScore(ctx context.Context, id, gameID string) (Tournament, error)
	GroupStandings(ctx context.Context, id string) ([]Standing, error)
	TournamentStats(ctx context.Context, id string) (TournamentStats, error)

	StartPlayoffs(ctx context.Context, id string) (Tournament, error)
	RecordPlayoffGame(ctx context.Context, id string, slot Slot, game, score1, score2 int) (Tournament, error)
	ResetPlayoffGame(ctx context.Context, id string, slot Slot, game int) (Tournament, error)
	AdvanceWinners(ctx context.Context, id string) (Tournament, error)

	AwardTournamentPoints(ctx context.Context, id string) (AwardResult, error)
	AwardPendingTournaments(ctx context.Context) ([]AwardResult, error)
}
