package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/kicker-league/internal/config"
	"github.com/mauv0809/kicker-league/internal/league"
	"github.com/mauv0809/kicker-league/internal/metrics"
	"github.com/mauv0809/kicker-league/internal/notifier"
	"github.com/mauv0809/kicker-league/internal/pubsub"
)

type Server struct {
	League         league.League
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Hub            *Hub
	Router         *chi.Mux
	pubsub         pubsub.PubSubClient
}

type errorBody struct {
	Error string `json:"error"`
}

type createPlayerRequest struct {
	Name string `json:"name"`
}

// Scores are pointers so an omitted field is rejected instead of read as 0.
type scoreRequest struct {
	Score1 *int `json:"score1"`
	Score2 *int `json:"score2"`
}

func (req scoreRequest) scores() (int, int, error) {
	return requiredScores("score1", req.Score1, "score2", req.Score2)
}

type editMatchRequest struct {
	Player1Score *int `json:"player1Score"`
	Player2Score *int `json:"player2Score"`
}

func (req editMatchRequest) scores() (int, int, error) {
	return requiredScores("player1Score", req.Player1Score, "player2Score", req.Player2Score)
}

type recordMatchRequest struct {
	MatchType    league.MatchType `json:"matchType"`
	Player1ID    string           `json:"player1Id"`
	Player2ID    string           `json:"player2Id"`
	Team1        []string         `json:"team1,omitempty"`
	Team2        []string         `json:"team2,omitempty"`
	Player1Score *int             `json:"player1Score"`
	Player2Score *int             `json:"player2Score"`
}

func (req recordMatchRequest) input() (league.MatchInput, error) {
	s1, s2, err := requiredScores("player1Score", req.Player1Score, "player2Score", req.Player2Score)
	if err != nil {
		return league.MatchInput{}, err
	}
	return league.MatchInput{
		MatchType:    req.MatchType,
		Player1ID:    req.Player1ID,
		Player2ID:    req.Player2ID,
		Team1:        req.Team1,
		Team2:        req.Team2,
		Player1Score: s1,
		Player2Score: s2,
	}, nil
}

type createTournamentRequest struct {
	Name string `json:"name"`
}

type addParticipantsRequest struct {
	PlayerIDs []string `json:"playerIds"`
}

type migrateResponse struct {
	Migrated int `json:"migrated"`
}
