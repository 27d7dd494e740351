package http

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mauv0809/kicker-league/internal/config"
	"github.com/mauv0809/kicker-league/internal/database"
	"github.com/mauv0809/kicker-league/internal/docstore"
	"github.com/mauv0809/kicker-league/internal/league"
	"github.com/mauv0809/kicker-league/internal/metrics"
	"github.com/mauv0809/kicker-league/internal/notifier"
	"github.com/mauv0809/kicker-league/internal/pubsub"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSlackSigningSecret = "test-signing-secret"

// setupTestServer initializes a new server on a temporary database with mock clients.
func setupTestServer(t *testing.T, notifier notifier.Notifier, slackSigningSecret string) *Server {
	t.Helper()

	db, dbTeardown, err := database.InitDB(filepath.Join(t.TempDir(), "kicker.db"), "", "")
	require.NoError(t, err)
	t.Cleanup(dbTeardown)

	store := docstore.New(db)
	cfg := config.Config{Slack: config.SlackConfig{SigningSecret: slackSigningSecret}}
	metricsSvc := metrics.NewMock()
	metricsHandler := metrics.NewMetricsHandler(prometheus.NewRegistry())
	events := pubsub.NewMock()
	lg := league.New(store, league.DefaultRules(), metricsSvc, events)

	return NewServer(lg, NewHub(store), metricsSvc, metricsHandler, cfg, notifier, events)
}

// createSlackCommandRequest creates an http.Request suitable for testing Slack slash commands,
// including the necessary signature and timestamp headers for verification.
func createSlackCommandRequest(t *testing.T, targetURL string, form url.Values, signingSecret string) *http.Request {
	t.Helper()

	bodyBytes := []byte(form.Encode())
	req, err := http.NewRequest("POST", targetURL, bytes.NewReader(bodyBytes))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	timestamp := time.Now().Unix()
	req.Header.Set("X-Slack-Request-Timestamp", strconv.FormatInt(timestamp, 10))

	baseString := fmt.Sprintf("v0:%d:%s", timestamp, string(bodyBytes))
	h := hmac.New(sha256.New, []byte(signingSecret))
	h.Write([]byte(baseString))
	req.Header.Set("X-Slack-Signature", "v0="+hex.EncodeToString(h.Sum(nil)))

	return req
}

// doJSON sends a JSON request through the router and returns the recorder.
func doJSON(t *testing.T, server *Server, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, target, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func createPlayers(t *testing.T, server *Server, names ...string) []league.Player {
	t.Helper()
	players := make([]league.Player, len(names))
	for i, name := range names {
		rr := doJSON(t, server, "POST", "/api/players", createPlayerRequest{Name: name})
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		players[i] = decode[league.Player](t, rr)
	}
	return players
}

func intp(n int) *int { return &n }

func score(s1, s2 int) scoreRequest {
	return scoreRequest{Score1: intp(s1), Score2: intp(s2)}
}

func TestHealthCheckHandler(t *testing.T) {
	server := setupTestServer(t, notifier.NewMock(), "")

	req, err := http.NewRequest("GET", "/health", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code, "handler returned wrong status code")
	assert.Equal(t, "OK!", rr.Body.String(), "handler returned unexpected body")
}

func TestPlayersAPI(t *testing.T) {
	server := setupTestServer(t, notifier.NewMock(), "")
	anna := createPlayers(t, server, "Anna", "Jonas")[0]

	t.Run("duplicate names conflict", func(t *testing.T) {
		rr := doJSON(t, server, "POST", "/api/players", createPlayerRequest{Name: "anna"})
		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Contains(t, decode[errorBody](t, rr).Error, "already exists")
	})

	t.Run("unknown fields are rejected", func(t *testing.T) {
		rr := doJSON(t, server, "POST", "/api/players", map[string]any{"name": "Cleo", "age": 31})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, decode[errorBody](t, rr).Error, "unknown key")
	})

	t.Run("list", func(t *testing.T) {
		rr := doJSON(t, server, "GET", "/api/players", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Len(t, decode[[]league.Player](t, rr), 2)
	})

	t.Run("get and find", func(t *testing.T) {
		rr := doJSON(t, server, "GET", "/api/players/"+anna.ID, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Anna", decode[league.Player](t, rr).Name)

		rr = doJSON(t, server, "GET", "/api/players/find?q=ann", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, anna.ID, decode[league.Player](t, rr).ID)

		rr = doJSON(t, server, "GET", "/api/players/nobody", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestMatchesAPI(t *testing.T) {
	server := setupTestServer(t, notifier.NewMock(), "")
	p := createPlayers(t, server, "Anna", "Ben")

	rr := doJSON(t, server, "POST", "/api/matches", league.MatchInput{
		Player1ID: p[0].ID, Player2ID: p[1].ID, Player1Score: 10, Player2Score: 7,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	match := decode[league.Match](t, rr)
	assert.Equal(t, league.MatchTypeSingles, match.MatchType)
	assert.Equal(t, p[0].ID, match.WinnerID)

	rr = doJSON(t, server, "POST", "/api/matches", league.MatchInput{
		Player1ID: p[0].ID, Player2ID: p[1].ID, Player1Score: 7, Player2Score: 7,
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doJSON(t, server, "GET", "/api/leaderboard", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	standings := decode[[]league.Standing](t, rr)
	require.Len(t, standings, 2)
	assert.Equal(t, p[0].ID, standings[0].ID)
	assert.Equal(t, 3, standings[0].Points)

	rr = doJSON(t, server, "PUT", "/api/matches/"+match.ID, editMatchRequest{Player1Score: intp(4), Player2Score: intp(10)})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, p[1].ID, decode[league.Match](t, rr).WinnerID)

	rr = doJSON(t, server, "DELETE", "/api/matches/"+match.ID, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	rr = doJSON(t, server, "DELETE", "/api/matches/"+match.ID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doJSON(t, server, "GET", "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	dashboard := decode[league.Dashboard](t, rr)
	assert.Equal(t, 2, dashboard.TotalPlayers)
	assert.Equal(t, 0, dashboard.TotalMatches)
}

func TestScoreFieldsAreRequired(t *testing.T) {
	server := setupTestServer(t, notifier.NewMock(), "")
	p := createPlayers(t, server, "Anna", "Ben")

	rr := doJSON(t, server, "POST", "/api/matches", map[string]any{
		"player1Id": p[0].ID, "player2Id": p[1].ID, "player2Score": 10,
	})
	require.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
	assert.Equal(t, "player1Score is required", decode[errorBody](t, rr).Error)

	rr = doJSON(t, server, "GET", "/api/matches", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decode[[]league.Match](t, rr), "a rejected result must not be stored")

	rr = doJSON(t, server, "POST", "/api/matches", league.MatchInput{
		Player1ID: p[0].ID, Player2ID: p[1].ID, Player1Score: 10, Player2Score: 7,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	match := decode[league.Match](t, rr)

	rr = doJSON(t, server, "PUT", "/api/matches/"+match.ID, map[string]any{"player1Score": 3})
	require.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
	assert.Equal(t, "player2Score is required", decode[errorBody](t, rr).Error)

	rr = doJSON(t, server, "POST", "/api/tournaments", createTournamentRequest{Name: "Friday Cup"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	base := "/api/tournaments/" + decode[league.Tournament](t, rr).ID
	rr = doJSON(t, server, "POST", base+"/participants", addParticipantsRequest{PlayerIDs: []string{p[0].ID, p[1].ID}})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	rr = doJSON(t, server, "POST", base+"/start", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	games := decode[league.Tournament](t, rr).OrderedGames()
	require.NotEmpty(t, games)

	rr = doJSON(t, server, "PUT", base+"/games/"+games[0].ID, map[string]any{"score1": 10})
	require.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
	assert.Equal(t, "score2 is required", decode[errorBody](t, rr).Error)

	rr = doJSON(t, server, "GET", base, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	for _, g := range decode[league.Tournament](t, rr).Games {
		assert.False(t, g.Played(), "game %s must stay unplayed", g.ID)
	}
}

func TestLeaderboardHandler_PostsToSlack(t *testing.T) {
	mockNotifier := notifier.NewMock()
	server := setupTestServer(t, mockNotifier, "")
	createPlayers(t, server, "Anna")

	rr := doJSON(t, server, "GET", "/api/leaderboard?post=true&dry_run=true", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, mockNotifier.SendLeaderboardCalls, 1)
	assert.Len(t, mockNotifier.SendLeaderboardCalls[0], 1)
}

func TestTournamentAPI(t *testing.T) {
	server := setupTestServer(t, notifier.NewMock(), "")
	ctx := context.Background()
	p := createPlayers(t, server, "Anna", "Ben", "Cleo", "Dina")

	rr := doJSON(t, server, "POST", "/api/tournaments", createTournamentRequest{Name: "Friday Cup"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	tour := decode[league.Tournament](t, rr)
	base := "/api/tournaments/" + tour.ID

	ids := []string{p[0].ID, p[1].ID, p[2].ID, p[3].ID}
	rr = doJSON(t, server, "POST", base+"/participants", addParticipantsRequest{PlayerIDs: ids})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Len(t, decode[league.Tournament](t, rr).Participants, 4)

	rr = doJSON(t, server, "POST", base+"/playoffs", nil)
	assert.Equal(t, http.StatusConflict, rr.Code, "playoffs need a finished group stage")

	rr = doJSON(t, server, "POST", base+"/start", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	tour = decode[league.Tournament](t, rr)
	assert.Equal(t, league.StatusGroupStage, tour.Status)

	// Anna beats everyone, Ben everyone but Anna, and so on.
	rank := map[string]int{p[0].ID: 0, p[1].ID: 1, p[2].ID: 2, p[3].ID: 3}
	for _, g := range tour.OrderedGames() {
		req := score(10, 5)
		if rank[g.Player1.ID] > rank[g.Player2.ID] {
			req = score(5, 10)
		}
		rr = doJSON(t, server, "PUT", base+"/games/"+g.ID, req)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	}

	rr = doJSON(t, server, "GET", base+"/standings", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	standings := decode[[]league.Standing](t, rr)
	require.Len(t, standings, 4)
	assert.Equal(t, p[0].ID, standings[0].ID)

	rr = doJSON(t, server, "POST", base+"/playoffs", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = doJSON(t, server, "PUT", base+"/playoffs/semifinal/games/0", score(10, 3))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	rr = doJSON(t, server, "PUT", base+"/playoffs/final/games/0", score(10, 3))
	assert.Equal(t, http.StatusConflict, rr.Code, "final is still waiting for its players")

	for _, slot := range league.BracketOrder {
		for i, s := range []scoreRequest{score(10, 7), score(3, 10), score(10, 8)} {
			target := fmt.Sprintf("%s/playoffs/%s/games/%d", base, slot, i)
			rr = doJSON(t, server, "PUT", target, s)
			require.Equal(t, http.StatusOK, rr.Code, "%s game %d: %s", slot, i, rr.Body.String())
		}
	}

	rr = doJSON(t, server, "GET", base, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	tour = decode[league.Tournament](t, rr)
	assert.Equal(t, league.StatusFinished, tour.Status)
	require.NotNil(t, tour.Winner)
	assert.Equal(t, p[0].ID, tour.Winner.ID)
	assert.True(t, tour.PointsAwarded)

	rr = doJSON(t, server, "POST", base+"/award", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.False(t, decode[league.AwardResult](t, rr).Awarded, "points are only awarded once")

	rr = doJSON(t, server, "POST", "/api/tournaments/award-pending", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decode[[]league.AwardResult](t, rr))

	winner, err := server.League.GetPlayer(ctx, p[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 20, winner.TournamentPoints)
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"validation", &league.ValidationError{Err: league.ErrScoreOutOfRange, Msg: "scores must be between 0 and 20"}, http.StatusBadRequest, "scores must be between 0 and 20"},
		{"conflict", &league.ValidationError{Err: league.ErrInvalidStatus, Msg: "wrong status"}, http.StatusConflict, "wrong status"},
		{"not found", fmt.Errorf("player %q: %w", "x", league.ErrNotFound), http.StatusNotFound, "player \"x\""},
		{"storage", fmt.Errorf("get: %w: %w", league.ErrStorage, errors.New("disk I/O error")), http.StatusServiceUnavailable, "Storage unavailable, please retry"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/", nil)
			writeError(rr, req, tt.err)
			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Contains(t, decode[errorBody](t, rr).Error, tt.wantBody)
		})
	}
}

func TestLeaderboardCommandHandler(t *testing.T) {
	mockNotifier := notifier.NewMock()
	expected := slack.NewBlockMessage(slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "board", false, false), nil, nil))
	mockNotifier.FormatLeaderboardResponseFunc = func(standings []league.Standing) (any, error) {
		return expected, nil
	}
	server := setupTestServer(t, mockNotifier, testSlackSigningSecret)

	t.Run("signed request", func(t *testing.T) {
		req := createSlackCommandRequest(t, "/slack/command/leaderboard", url.Values{}, testSlackSigningSecret)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		var got slack.Message
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Len(t, got.Blocks.BlockSet, 1)
	})

	t.Run("bad signature", func(t *testing.T) {
		req := createSlackCommandRequest(t, "/slack/command/leaderboard", url.Values{}, "wrong-secret")
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestPlayerStatsCommandHandler(t *testing.T) {
	mockNotifier := notifier.NewMock()
	mockNotifier.FormatPlayerStatsResponseFunc = func(standing league.Standing, player league.Player, query string) (any, error) {
		return slack.NewBlockMessage(), nil
	}
	mockNotifier.FormatPlayerNotFoundResponseFunc = func(query string) (any, error) {
		return slack.NewBlockMessage(), nil
	}
	server := setupTestServer(t, mockNotifier, testSlackSigningSecret)
	p := createPlayers(t, server, "Anna", "Ben")
	_, err := server.League.RecordMatch(context.Background(), league.MatchInput{
		Player1ID: p[0].ID, Player2ID: p[1].ID, Player1Score: 10, Player2Score: 2,
	})
	require.NoError(t, err)

	t.Run("player found", func(t *testing.T) {
		form := url.Values{"text": {"ann"}}
		req := createSlackCommandRequest(t, "/slack/command/player-stats", form, testSlackSigningSecret)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		require.IsType(t, slack.Message{}, mockNotifier.LastPlayerStatsResponse)
	})

	t.Run("player not found", func(t *testing.T) {
		form := url.Values{"text": {"Zed"}}
		req := createSlackCommandRequest(t, "/slack/command/player-stats", form, testSlackSigningSecret)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.NotNil(t, mockNotifier.LastPlayerNotFoundResponse)
	})

	t.Run("missing name", func(t *testing.T) {
		req := createSlackCommandRequest(t, "/slack/command/player-stats", url.Values{}, testSlackSigningSecret)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestMatchRecordedPushHandler(t *testing.T) {
	mockNotifier := notifier.NewMock()
	var gotDryRun bool
	mockNotifier.SendMatchResultFunc = func(event league.MatchRecordedEvent, dryRun bool) error {
		gotDryRun = dryRun
		return nil
	}
	server := setupTestServer(t, mockNotifier, "")

	event := league.MatchRecordedEvent{
		Match:       league.Match{ID: "m1", MatchType: league.MatchTypeSingles, Player1Score: 10, Player2Score: 4},
		Side1Names:  []string{"Anna"},
		Side2Names:  []string{"Ben"},
		WinnerNames: []string{"Anna"},
	}
	body, err := pubsub.EncodePushRequest("projects/p/subscriptions/match-recorded", event)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/pubsub/match-recorded?dry_run=true", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.Len(t, mockNotifier.SendMatchResultCalls, 1)
	assert.Equal(t, "m1", mockNotifier.SendMatchResultCalls[0].Match.ID)
	assert.Equal(t, []string{"Anna"}, mockNotifier.SendMatchResultCalls[0].WinnerNames)
	assert.True(t, gotDryRun)

	t.Run("invalid envelope", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/pubsub/match-recorded", strings.NewReader("{"))
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestTournamentFinishedPushHandler_RetriesOnFailure(t *testing.T) {
	mockNotifier := notifier.NewMock()
	mockNotifier.SendTournamentResultFunc = func(event league.TournamentFinishedEvent, dryRun bool) error {
		return errors.New("slack is down")
	}
	server := setupTestServer(t, mockNotifier, "")

	body, err := pubsub.EncodePushRequest("sub", league.TournamentFinishedEvent{TournamentID: "t1", Name: "Friday Cup"})
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/pubsub/tournament-finished", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	require.Len(t, mockNotifier.SendTournamentResultCalls, 1)
	assert.Equal(t, "Friday Cup", mockNotifier.SendTournamentResultCalls[0].Name)
}

type wsSnapshot struct {
	Type    string `json:"type"`
	Payload struct {
		Path   string         `json:"path"`
		Exists bool           `json:"exists"`
		Value  map[string]any `json:"value"`
	} `json:"payload"`
}

func readSnapshot(t *testing.T, conn *websocket.Conn) wsSnapshot {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg wsSnapshot
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestSubscribeHandler(t *testing.T) {
	server := setupTestServer(t, notifier.NewMock(), "")
	ctx := context.Background()
	p := createPlayers(t, server, "Anna")
	tour, err := server.League.CreateTournament(ctx, "Friday Cup")
	require.NoError(t, err)

	ts := httptest.NewServer(server)
	defer ts.Close()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/subscribe?path=tournaments/" + tour.ID

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	initial := readSnapshot(t, conn)
	assert.Equal(t, "snapshot", initial.Type)
	assert.Equal(t, "tournaments/"+tour.ID, initial.Payload.Path)
	assert.True(t, initial.Payload.Exists)
	assert.Equal(t, "Friday Cup", initial.Payload.Value["name"])

	_, err = server.League.AddParticipants(ctx, tour.ID, []string{p[0].ID})
	require.NoError(t, err)

	update := readSnapshot(t, conn)
	participants, ok := update.Payload.Value["participants"].([]any)
	require.True(t, ok)
	assert.Len(t, participants, 1)
	assert.Equal(t, 1, server.Hub.Clients("tournaments/"+tour.ID))

	conn.Close()
	assert.Eventually(t, func() bool {
		return server.Hub.Clients("tournaments/"+tour.ID) == 0
	}, 5*time.Second, 20*time.Millisecond)
}

func TestSubscribeHandler_RequiresPath(t *testing.T) {
	server := setupTestServer(t, notifier.NewMock(), "")
	rr := doJSON(t, server, "GET", "/ws/subscribe", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
