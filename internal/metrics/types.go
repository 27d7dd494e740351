package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	MatchesRecorded         prometheus.Counter
	PlayoffAdvancements     prometheus.Counter
	TournamentsFinished     prometheus.Counter
	TournamentPointsAwarded prometheus.Counter
	StorageFailures         prometheus.Counter
	OperationDuration       *prometheus.HistogramVec
	SlackNotifSent          prometheus.Counter
	SlackNotifFailed        prometheus.Counter
	StartupTimeSeconds      prometheus.Gauge
}
