package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/mauv0809/kicker-league/internal/config"
	"github.com/mauv0809/kicker-league/internal/league"
	"github.com/mauv0809/kicker-league/internal/metrics"
	"github.com/mauv0809/kicker-league/internal/notifier"
	"github.com/mauv0809/kicker-league/internal/pubsub"
)

func NewServer(lg league.League, hub *Hub, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		League:         lg,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Hub:            hub,
		Router:         chi.NewRouter(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	r := s.Router
	r.Use(chiMiddleware.Recoverer)
	r.Use(paramsMiddleware)

	r.Handle("/metrics", s.MetricsHandler)
	r.Get("/health", s.HealthCheckHandler())
	r.Get("/ws/subscribe", s.SubscribeHandler())

	// Slash commands are signed by Slack, push deliveries come from Pub/Sub.
	r.Post("/slack/command/leaderboard", Chain(s.LeaderboardCommandHandler(), s.slackVerifyMiddleware).ServeHTTP)
	r.Post("/slack/command/player-stats", Chain(s.PlayerStatsCommandHandler(), s.slackVerifyMiddleware).ServeHTTP)
	r.Post("/pubsub/match-recorded", s.MatchRecordedPushHandler())
	r.Post("/pubsub/tournament-finished", s.TournamentFinishedPushHandler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/leaderboard", s.LeaderboardHandler())
		r.Get("/dashboard", s.DashboardHandler())

		r.Route("/players", func(r chi.Router) {
			r.Get("/", s.ListPlayersHandler())
			r.Post("/", s.RegisterPlayerHandler())
			r.Get("/find", s.FindPlayerHandler())
			r.Get("/{playerID}", s.GetPlayerHandler())
			r.Get("/{playerID}/standing", s.PlayerStandingHandler())
		})

		r.Route("/matches", func(r chi.Router) {
			r.Get("/", s.ListMatchesHandler())
			r.Post("/", s.RecordMatchHandler())
			r.Post("/migrate-types", s.MigrateMatchTypesHandler())
			r.Put("/{matchID}", s.EditMatchHandler())
			r.Delete("/{matchID}", s.DeleteMatchHandler())
		})

		r.Route("/tournaments", func(r chi.Router) {
			r.Get("/", s.ListTournamentsHandler())
			r.Post("/", s.CreateTournamentHandler())
			r.Post("/award-pending", s.AwardPendingHandler())

			r.Route("/{tournamentID}", func(r chi.Router) {
				r.Get("/", s.GetTournamentHandler())
				r.Delete("/", s.DeleteTournamentHandler())
				r.Post("/participants", s.AddParticipantsHandler())
				r.Delete("/participants/{playerID}", s.RemoveParticipantHandler())
				r.Post("/start", s.StartGroupStageHandler())
				r.Put("/games/{gameID}", s.RecordGameScoreHandler())
				r.Delete("/games/{gameID}", s.ResetGameScoreHandler())
				r.Get("/standings", s.GroupStandingsHandler())
				r.Get("/stats", s.TournamentStatsHandler())
				r.Post("/playoffs", s.StartPlayoffsHandler())
				r.Post("/playoffs/advance", s.AdvanceWinnersHandler())
				r.Put("/playoffs/{slot}/games/{game}", s.RecordPlayoffGameHandler())
				r.Delete("/playoffs/{slot}/games/{game}", s.ResetPlayoffGameHandler())
				r.Post("/award", s.AwardTournamentPointsHandler())
			})
		})
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
