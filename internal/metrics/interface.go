package metrics

// Metrics defines the interface for collecting application metrics.
type Metrics interface {
	IncMatchesRecorded()
	IncPlayoffAdvancements(n int)
	IncTournamentsFinished()
	AddTournamentPointsAwarded(points int)
	IncStorageFailures()
	ObserveOperationDuration(operation string, duration float64)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}
