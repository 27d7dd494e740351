package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/kicker-league/internal/league"
	"github.com/mauv0809/kicker-league/internal/metrics"
	"github.com/mauv0809/kicker-league/internal/notifier"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
	// offline is set when no bot token is configured; every send becomes a dry run.
	offline bool
}

// NewNotifier creates a new Notifier. Without a token messages are only logged.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	if token == "" {
		log.Warn("No Slack token configured, notifications will only be logged")
		return &Notifier{channelID: channelID, metrics: metrics, offline: true}
	}
	return &Notifier{
		api:       slack.New(token),
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun || s.offline {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// Implement the Notifier interface
func (s *Notifier) SendMatchResult(event league.MatchRecordedEvent, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatMatchResult(event), dryRun)
	return err
}

func (s *Notifier) SendTournamentResult(event league.TournamentFinishedEvent, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatTournamentResult(event), dryRun)
	return err
}

func (s *Notifier) SendLeaderboard(standings []league.Standing, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatLeaderboard(standings), dryRun)
	return err
}

// FormatLeaderboardResponse formats a leaderboard message for a slash command response.
func (s *Notifier) FormatLeaderboardResponse(standings []league.Standing) (any, error) {
	return s.formatLeaderboard(standings), nil
}

// FormatPlayerStatsResponse formats a player stats message for a slash command response.
func (s *Notifier) FormatPlayerStatsResponse(standing league.Standing, player league.Player, query string) (any, error) {
	return s.formatPlayerStats(standing, player, query), nil
}

// FormatPlayerNotFoundResponse formats a player not found message for a slash command response.
func (s *Notifier) FormatPlayerNotFoundResponse(query string) (any, error) {
	return s.formatPlayerNotFound(query), nil
}

func plainSection(text string) *slack.SectionBlock {
	return slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", text, true, false), nil, nil)
}

// formatMatchResult creates the Slack message for a recorded season match using Block Kit.
func (s *Notifier) formatMatchResult(event league.MatchRecordedEvent) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "⚽ Match recorded! ⚽", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	m := event.Match
	side1 := strings.Join(event.Side1Names, " & ")
	side2 := strings.Join(event.Side2Names, " & ")
	blocks = append(blocks, plainSection(fmt.Sprintf("%s %d : %d %s", side1, m.Player1Score, m.Player2Score, side2)))

	result := "Result: Draw 🤝"
	if len(event.WinnerNames) > 0 {
		result = fmt.Sprintf("Result: %s won! 🏆", strings.Join(event.WinnerNames, " & "))
	}
	blocks = append(blocks, plainSection(result))

	if m.MatchType == league.MatchTypeDoubles {
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", "Doubles match", true, false)))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatTournamentResult creates the Slack message announcing a finished tournament.
func (s *Notifier) formatTournamentResult(event league.TournamentFinishedEvent) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("🏆 %s is over! 🏆", event.Name), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	var podium []string
	if event.Winner != nil {
		podium = append(podium, "🥇 "+event.Winner.Name)
	}
	if event.RunnerUp != nil {
		podium = append(podium, "🥈 "+event.RunnerUp.Name)
	}
	if event.ThirdPlace != nil {
		podium = append(podium, "🥉 "+event.ThirdPlace.Name)
	}
	if len(podium) > 0 {
		blocks = append(blocks, plainSection(strings.Join(podium, "\n")))
	}

	if len(event.Awards) > 0 {
		var lines []string
		for _, a := range event.Awards {
			lines = append(lines, fmt.Sprintf("• %s: +%d (%s)", a.Participant.Name, a.Points, a.Placement))
		}
		blocks = append(blocks, plainSection("Tournament points:\n"+strings.Join(lines, "\n")))
	}

	return slack.NewBlockMessage(blocks...)
}

func medal(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	}
	return ""
}

// formatLeaderboard creates a Slack message to display the season leaderboard.
func (s *Notifier) formatLeaderboard(standings []league.Standing) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏆 Season Leaderboard 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(standings) == 0 {
		blocks = append(blocks, plainSection("No players yet. Go play some matches!"))
		return slack.NewBlockMessage(blocks...)
	}

	for i, st := range standings {
		rank := i + 1
		playerText := fmt.Sprintf("%d. %s %s\n> Points: %d | W/D/L: %d/%d/%d | Goals: %d:%d",
			rank,
			medal(rank),
			st.Name,
			st.Points,
			st.Wins,
			st.Draws,
			st.Losses,
			st.GoalsFor,
			st.GoalsAgainst,
		)
		blocks = append(blocks, plainSection(playerText))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerStats creates a Slack message to display a single player's stats.
func (s *Notifier) formatPlayerStats(st league.Standing, player league.Player, query string) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := fmt.Sprintf("🏆 Stats for %s 🏆", player.Name)
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", headerText, true, false)))

	playerText := fmt.Sprintf("> *Points*: %d (%d played)\n> *W/D/L*: %d/%d/%d\n> *Goal difference*: %+d\n> *Tournament points*: %d\n> *Tournament wins*: %d",
		st.Points,
		st.Played,
		st.Wins,
		st.Draws,
		st.Losses,
		st.GoalDifference(),
		player.TournamentPoints,
		player.TournamentWins,
	)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", playerText, false, false), nil, nil))

	if !strings.EqualFold(query, player.Name) {
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", fmt.Sprintf("Closest match for %q", query), true, false)))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerNotFound creates a Slack message for when a player's stats are not found.
func (s *Notifier) formatPlayerNotFound(query string) slack.Message {
	text := fmt.Sprintf("Sorry, I couldn't find a player matching *%s*. Try a different name.", query)
	return slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil),
	)
}
