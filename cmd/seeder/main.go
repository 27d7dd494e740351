package main

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/kicker-league/internal/database"
	"github.com/mauv0809/kicker-league/internal/docstore"
	"github.com/mauv0809/kicker-league/internal/league"
	"github.com/mauv0809/kicker-league/internal/metrics"
	"github.com/mauv0809/kicker-league/internal/pubsub"
	"github.com/prometheus/client_golang/prometheus"
)

const numMatches = 200

var seedNames = []string{"Anna", "Ben", "Cleo", "Dina", "Emil", "Frida"}

// Simplified config loading for the script
func loadConfig() (dbName, primaryURL, authToken string) {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}
	dbName, ok := os.LookupEnv("DB_NAME")
	if !ok {
		log.Fatalf("Error: Required environment variable %s is not set.", "DB_NAME")
	}
	return dbName, os.Getenv("TURSO_PRIMARY_URL"), os.Getenv("TURSO_AUTH_TOKEN")
}

// randomScore returns a finished kicker result: one side on 10, or the rare 10:10 draw.
func randomScore(rng *rand.Rand) (int, int) {
	if rng.Intn(20) == 0 {
		return 10, 10
	}
	loser := rng.Intn(10)
	if rng.Intn(2) == 0 {
		return 10, loser
	}
	return loser, 10
}

func main() {
	log.Info("Starting database seeder...")
	dbName, primaryURL, authToken := loadConfig()

	db, teardown, err := database.InitDB(dbName, primaryURL, authToken)
	if err != nil {
		log.Fatalf("Failed to open database: %s", err)
	}
	defer teardown()

	ctx := context.Background()
	// Events are only logged, nothing should reach Slack while seeding.
	svc := league.New(docstore.New(db), league.DefaultRules(), metrics.NewService(prometheus.NewRegistry()), pubsub.New(""))
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	players := make([]league.Player, 0, len(seedNames))
	for _, name := range seedNames {
		p, err := svc.RegisterPlayer(ctx, name)
		if errors.Is(err, league.ErrNameTaken) {
			p, err = svc.FindPlayer(ctx, name)
		}
		if err != nil {
			log.Fatalf("Failed to register player %s: %s", name, err)
		}
		players = append(players, p)
	}
	log.Info("Registered players", "count", len(players))

	startTime := time.Now()
	for i := 0; i < numMatches; i++ {
		perm := rng.Perm(len(players))
		s1, s2 := randomScore(rng)
		in := league.MatchInput{Player1ID: players[perm[0]].ID, Player2ID: players[perm[1]].ID, Player1Score: s1, Player2Score: s2}
		if i%4 == 0 {
			in = league.MatchInput{
				MatchType:    league.MatchTypeDoubles,
				Team1:        []string{players[perm[0]].ID, players[perm[1]].ID},
				Team2:        []string{players[perm[2]].ID, players[perm[3]].ID},
				Player1Score: s1,
				Player2Score: s2,
			}
		}
		if _, err := svc.RecordMatch(ctx, in); err != nil {
			log.Fatalf("Failed to record match %d: %s", i, err)
		}
	}
	log.Info("Recorded season matches", "count", numMatches, "duration", time.Since(startTime))

	seedTournament(ctx, svc, rng, players[:4])
	log.Info("Seeding complete")
}

// seedTournament runs a tournament through its group stage and leaves the
// playoffs seeded but unplayed.
func seedTournament(ctx context.Context, svc *league.Service, rng *rand.Rand, players []league.Player) {
	t, err := svc.CreateTournament(ctx, "Seeder Cup")
	if err != nil {
		log.Fatalf("Failed to create tournament: %s", err)
	}
	ids := make([]string, len(players))
	for i, p := range players {
		ids[i] = p.ID
	}
	if _, err := svc.AddParticipants(ctx, t.ID, ids); err != nil {
		log.Fatalf("Failed to add participants: %s", err)
	}
	if t, err = svc.StartGroupStage(ctx, t.ID); err != nil {
		log.Fatalf("Failed to start group stage: %s", err)
	}
	for _, g := range t.OrderedGames() {
		s1, s2 := randomScore(rng)
		if _, err := svc.RecordGameScore(ctx, t.ID, g.ID, s1, s2); err != nil {
			log.Fatalf("Failed to record game %s: %s", g.ID, err)
		}
	}
	if _, err := svc.StartPlayoffs(ctx, t.ID); err != nil {
		log.Fatalf("Failed to seed playoffs: %s", err)
	}
	log.Info("Seeded tournament", "id", t.ID, "games", len(t.Games))
}
