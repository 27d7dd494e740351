package config

import (
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const defaultScoreLimit = 10

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}

	cfg := Config{
		DBName: getEnv("DB_NAME"),
		Port:   getEnv("PORT"),
		Slack: SlackConfig{
			Token:         os.Getenv("SLACK_BOT_TOKEN"),
			ChannelID:     os.Getenv("SLACK_CHANNEL_ID"),
			SigningSecret: os.Getenv("SLACK_SIGNING_SECRET"),
		},
		Turso: TursoConfig{
			PrimaryURL: os.Getenv("TURSO_PRIMARY_URL"),
			AuthToken:  os.Getenv("TURSO_AUTH_TOKEN"),
		},
		ProjectID: os.Getenv("GCP_PROJECT"),
		Scoring: ScoringConfig{
			WinThreshold: getInt("WIN_THRESHOLD", defaultScoreLimit),
			MatchCeiling: getInt("MATCH_SCORE_CEILING", defaultScoreLimit),
		},
	}
	cfg.Scoring = checkScoring(cfg.Scoring)
	return cfg
}

// checkScoring falls back to the default limits when no reportable score
// could reach the win threshold.
func checkScoring(s ScoringConfig) ScoringConfig {
	if s.WinThreshold <= s.MatchCeiling {
		return s
	}
	log.Warn("Win threshold is above the score ceiling, using defaults",
		"win_threshold", s.WinThreshold, "match_ceiling", s.MatchCeiling, "default", defaultScoreLimit)
	return ScoringConfig{WinThreshold: defaultScoreLimit, MatchCeiling: defaultScoreLimit}
}

// getInt reads an optional integer variable, falling back to def when unset or malformed.
func getInt(key string, def int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		log.Warn("Ignoring invalid integer setting", "key", key, "value", raw, "default", def)
		return def
	}
	return v
}
