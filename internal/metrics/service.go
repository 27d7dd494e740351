package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		MatchesRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kicker_matches_recorded_total",
			Help: "The total number of season matches recorded.",
		}),
		PlayoffAdvancements: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kicker_playoff_advancements_total",
			Help: "The total number of playoff matches completed and advanced through the bracket.",
		}),
		TournamentsFinished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kicker_tournaments_finished_total",
			Help: "The total number of tournaments that reached the finished status.",
		}),
		TournamentPointsAwarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kicker_tournament_points_awarded_total",
			Help: "The total number of tournament points distributed to players.",
		}),
		StorageFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kicker_storage_failures_total",
			Help: "The total number of failed storage reads or writes.",
		}),
		OperationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kicker_operation_duration_seconds",
			Help:    "The duration of league operations.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kicker_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kicker_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kicker_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.MatchesRecorded,
		s.PlayoffAdvancements,
		s.TournamentsFinished,
		s.TournamentPointsAwarded,
		s.StorageFailures,
		s.OperationDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncMatchesRecorded() {
	s.MatchesRecorded.Inc()
}

func (s *Service) IncPlayoffAdvancements(n int) {
	s.PlayoffAdvancements.Add(float64(n))
}

func (s *Service) IncTournamentsFinished() {
	s.TournamentsFinished.Inc()
}

func (s *Service) AddTournamentPointsAwarded(points int) {
	s.TournamentPointsAwarded.Add(float64(points))
}

func (s *Service) IncStorageFailures() {
	s.StorageFailures.Inc()
}

func (s *Service) ObserveOperationDuration(operation string, duration float64) {
	s.OperationDuration.WithLabelValues(operation).Observe(duration)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
