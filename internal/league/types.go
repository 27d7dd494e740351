package league

import (
	"sort"
	"time"
)

// Storage collections.
const (
	collectionPlayers     = "players"
	collectionMatches     = "globalMatches"
	collectionTournaments = "tournaments"
)

type Player struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	CreatedAt        time.Time `json:"createdAt"`
	SeasonPoints     int       `json:"seasonPoints"`
	TournamentPoints int       `json:"tournamentPoints"`
	TournamentWins   int       `json:"tournamentWins"`
}

type MatchType string

const (
	MatchTypeSingles MatchType = "singles"
	MatchTypeDoubles MatchType = "doubles"
)

// Match is a season result outside of any tournament. For doubles matches
// Team1 and Team2 hold both players of each side and Player1ID/Player2ID
// hold the first player of each team.
type Match struct {
	ID           string    `json:"id"`
	MatchType    MatchType `json:"matchType"`
	Player1ID    string    `json:"player1Id"`
	Player2ID    string    `json:"player2Id"`
	Team1        []string  `json:"team1,omitempty"`
	Team2        []string  `json:"team2,omitempty"`
	Player1Score int       `json:"player1Score"`
	Player2Score int       `json:"player2Score"`
	WinnerID     string    `json:"winnerId,omitempty"`
	LoserID      string    `json:"loserId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Side1 returns the player ids on the first side of the match.
func (m Match) Side1() []string {
	if m.MatchType == MatchTypeDoubles && len(m.Team1) > 0 {
		return m.Team1
	}
	return []string{m.Player1ID}
}

func (m Match) Side2() []string {
	if m.MatchType == MatchTypeDoubles && len(m.Team2) > 0 {
		return m.Team2
	}
	return []string{m.Player2ID}
}

// IsDraw reports whether neither side won.
func (m Match) IsDraw() bool {
	return m.Player1Score == m.Player2Score
}

type Status string

const (
	StatusSetup      Status = "setup"
	StatusGroupStage Status = "group_stage"
	StatusPlayoffs   Status = "playoffs"
	StatusFinished   Status = "finished"
)

var statusRank = map[Status]int{
	StatusSetup:      0,
	StatusGroupStage: 1,
	StatusPlayoffs:   2,
	StatusFinished:   3,
}

// Before reports whether s comes strictly earlier than other in the lifecycle.
func (s Status) Before(other Status) bool {
	return statusRank[s] < statusRank[other]
}

// Participant is a tournament-scoped snapshot of a player.
type Participant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Game is a single-leg group stage fixture. Nil scores mean unplayed.
type Game struct {
	ID      string      `json:"id"`
	Order   int         `json:"order"`
	Player1 Participant `json:"player1"`
	Player2 Participant `json:"player2"`
	Score1  *int        `json:"score1"`
	Score2  *int        `json:"score2"`
}

func (g Game) Played() bool {
	return g.Score1 != nil && g.Score2 != nil
}

type Tournament struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Status          Status           `json:"status"`
	Participants    []Participant    `json:"participants"`
	Games           map[string]*Game `json:"games,omitempty"`
	Playoffs        *Playoffs        `json:"playoffs,omitempty"`
	Winner          *Participant     `json:"winner,omitempty"`
	RunnerUp        *Participant     `json:"runnerUp,omitempty"`
	ThirdPlace      *Participant     `json:"thirdPlace,omitempty"`
	PointsAwarded   bool             `json:"pointsAwarded"`
	PointsAwardedAt *time.Time       `json:"pointsAwardedAt,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	FinishedAt      *time.Time       `json:"finishedAt,omitempty"`
}

// OrderedGames returns the group stage games in fixture order.
func (t Tournament) OrderedGames() []*Game {
	games := make([]*Game, 0, len(t.Games))
	for _, g := range t.Games {
		games = append(games, g)
	}
	sort.Slice(games, func(i, j int) bool {
		if games[i].Order != games[j].Order {
			return games[i].Order < games[j].Order
		}
		return games[i].ID < games[j].ID
	})
	return games
}

func (t Tournament) participant(id string) (Participant, bool) {
	for _, p := range t.Participants {
		if p.ID == id {
			return p, true
		}
	}
	return Participant{}, false
}

// Standing is a derived ranking row for a player or participant.
type Standing struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Points         int    `json:"points"`
	Wins           int    `json:"wins"`
	Draws          int    `json:"draws"`
	Losses         int    `json:"losses"`
	GoalsFor       int    `json:"goalsFor"`
	GoalsAgainst   int    `json:"goalsAgainst"`
	Played         int    `json:"played"`
	TournamentWins int    `json:"tournamentWins,omitempty"`
}

func (s Standing) GoalDifference() int {
	return s.GoalsFor - s.GoalsAgainst
}

// TournamentStats summarizes group stage progress.
type TournamentStats struct {
	TournamentID string     `json:"tournamentId"`
	Status       Status     `json:"status"`
	GamesPlayed  int        `json:"gamesPlayed"`
	GamesTotal   int        `json:"gamesTotal"`
	Standings    []Standing `json:"standings"`
}

// Dashboard is the landing page summary of the league.
type Dashboard struct {
	TotalPlayers     int       `json:"totalPlayers"`
	TotalMatches     int       `json:"totalMatches"`
	TotalTournaments int       `json:"totalTournaments"`
	TopPlayer        *Standing `json:"topPlayer,omitempty"`
}
