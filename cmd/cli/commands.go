package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(tournamentsCmd)
	rootCmd.AddCommand(advanceCmd)
	rootCmd.AddCommand(awardCmd)
	rootCmd.AddCommand(awardPendingCmd)
	rootCmd.AddCommand(migrateCmd)

	playersCmd.AddCommand(addPlayerCmd)
	playersCmd.AddCommand(findPlayerCmd)
	leaderboardCmd.Flags().Bool("post", false, "Also post the leaderboard to Slack")
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List registered players",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/api/players")
	},
}

var addPlayerCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Register a new player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/api/players", map[string]string{"name": args[0]})
	},
}

var findPlayerCmd = &cobra.Command{
	Use:   "find <query>",
	Short: "Find the player whose name best matches query",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/api/players/find?q=" + url.QueryEscape(args[0]))
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the season leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		post, _ := cmd.Flags().GetBool("post")
		return performGetRequest("/api/leaderboard?post=" + strconv.FormatBool(post))
	},
}

var recordCmd = &cobra.Command{
	Use:   "record <player1-id> <player2-id> <score1> <score2>",
	Short: "Record a singles season match",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		s1, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid score %q: %w", args[2], err)
		}
		s2, err := strconv.Atoi(args[3])
		if err != nil {
			return fmt.Errorf("invalid score %q: %w", args[3], err)
		}
		return performRequest(http.MethodPost, "/api/matches", map[string]any{
			"player1Id":    args[0],
			"player2Id":    args[1],
			"player1Score": s1,
			"player2Score": s2,
		})
	},
}

var tournamentsCmd = &cobra.Command{
	Use:   "tournaments",
	Short: "List tournaments",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/api/tournaments")
	},
}

var advanceCmd = &cobra.Command{
	Use:   "advance <tournament-id>",
	Short: "Move completed playoff winners into their next match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/api/tournaments/"+url.PathEscape(args[0])+"/playoffs/advance", nil)
	},
}

var awardCmd = &cobra.Command{
	Use:   "award <tournament-id>",
	Short: "Award tournament points for a finished tournament",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/api/tournaments/"+url.PathEscape(args[0])+"/award", nil)
	},
}

var awardPendingCmd = &cobra.Command{
	Use:   "award-pending",
	Short: "Award points for every finished tournament that has not been awarded yet",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/api/tournaments/award-pending", nil)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate-match-types",
	Short: "Stamp a match type on matches recorded before doubles existed",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/api/matches/migrate-types", nil)
	},
}

func performGetRequest(endpoint string) error {
	return performRequest(http.MethodGet, endpoint, nil)
}

func performRequest(method, endpoint string, payload any) error {
	target, err := url.Parse(host + endpoint)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if dryRun {
		q := target.Query()
		q.Set("dry_run", "true")
		target.RawQuery = q.Encode()
	}
	fmt.Printf("Making %s request to %s\n", method, target)

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, target.String(), body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(respBody))

	return nil
}
