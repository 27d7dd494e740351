package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/kicker-league/internal/config"
	"github.com/mauv0809/kicker-league/internal/database"
	"github.com/mauv0809/kicker-league/internal/docstore"
	server "github.com/mauv0809/kicker-league/internal/http"
	"github.com/mauv0809/kicker-league/internal/league"
	"github.com/mauv0809/kicker-league/internal/metrics"
	"github.com/mauv0809/kicker-league/internal/notifier/slack"
	"github.com/mauv0809/kicker-league/internal/pubsub"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.SetFormatter(log.JSONFormatter)
	if err := run(config.Load()); err != nil {
		log.Fatal("Kicker league server failed", "error", err)
	}
	log.Info("Server process shutting down")
}

// run serves the league API until SIGINT/SIGTERM, then drains open requests.
func run(cfg config.Config) error {
	startTime := time.Now()
	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	if err != nil {
		return err
	}
	log.Info("Database ready", "duration_ms", time.Since(startTime).Milliseconds())
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	store := docstore.New(db)
	metricsSvc := metrics.NewService()
	events := pubsub.New(cfg.ProjectID)
	defer events.Close()

	leagueSvc := league.New(store, league.Rules{
		WinThreshold: cfg.Scoring.WinThreshold,
		MatchCeiling: cfg.Scoring.MatchCeiling,
	}, metricsSvc, events)

	s := server.NewServer(
		leagueSvc,
		server.NewHub(store),
		metricsSvc,
		metrics.NewMetricsHandler(),
		cfg,
		slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc),
		events,
	)
	metricsSvc.SetStartupTime(time.Since(startTime).Seconds())
	log.Info("Startup time recorded", "duration_ms", time.Since(startTime).Milliseconds())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", "error", err)
		return err
	}
	log.Info("Server gracefully stopped")
	return nil
}
