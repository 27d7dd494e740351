package metrics

import "sync"

var _ Metrics = (*Mock)(nil)

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	matchesRecorded     int
	playoffAdvancements int
	tournamentsFinished int
	pointsAwarded       int
	storageFailures     int
	operations          map[string]int
	slackNotifSent      int
	slackNotifFailed    int
	startupTime         float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		operations: make(map[string]int),
	}
}

func (m *Mock) IncMatchesRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesRecorded++
}

func (m *Mock) IncPlayoffAdvancements(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playoffAdvancements += n
}

func (m *Mock) IncTournamentsFinished() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tournamentsFinished++
}

func (m *Mock) AddTournamentPointsAwarded(points int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pointsAwarded += points
}

func (m *Mock) IncStorageFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.storageFailures++
}

func (m *Mock) ObserveOperationDuration(operation string, duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.operations[operation]++
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// MatchesRecorded returns the number of times IncMatchesRecorded was called.
func (m *Mock) MatchesRecorded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesRecorded
}

// PlayoffAdvancements returns the accumulated advancement count.
func (m *Mock) PlayoffAdvancements() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playoffAdvancements
}

func (m *Mock) TournamentsFinished() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tournamentsFinished
}

// PointsAwarded returns the sum passed to AddTournamentPointsAwarded.
func (m *Mock) PointsAwarded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pointsAwarded
}

func (m *Mock) StorageFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.storageFailures
}

// Operations returns how many durations were observed for operation.
func (m *Mock) Operations(operation string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.operations[operation]
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
