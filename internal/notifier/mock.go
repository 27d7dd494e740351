package notifier

import (
	"sync"

	"github.com/mauv0809/kicker-league/internal/league"
)

var _ Notifier = (*Mock)(nil)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for send functions
	SendMatchResultFunc      func(event league.MatchRecordedEvent, dryRun bool) error
	SendTournamentResultFunc func(event league.TournamentFinishedEvent, dryRun bool) error

	// Call records
	SendMatchResultCalls      []league.MatchRecordedEvent
	SendTournamentResultCalls []league.TournamentFinishedEvent
	SendLeaderboardCalls      [][]league.Standing

	// Spies for format functions
	FormatLeaderboardResponseFunc    func(standings []league.Standing) (any, error)
	FormatPlayerStatsResponseFunc    func(standing league.Standing, player league.Player, query string) (any, error)
	FormatPlayerNotFoundResponseFunc func(query string) (any, error)

	// Call records for format functions
	LastLeaderboardResponse    any
	LastPlayerStatsResponse    any
	LastPlayerNotFoundResponse any
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchResultCalls = nil
	m.SendTournamentResultCalls = nil
	m.SendLeaderboardCalls = nil
	m.LastLeaderboardResponse = nil
	m.LastPlayerStatsResponse = nil
	m.LastPlayerNotFoundResponse = nil
}

func (m *Mock) SendMatchResult(event league.MatchRecordedEvent, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchResultCalls = append(m.SendMatchResultCalls, event)
	if m.SendMatchResultFunc != nil {
		return m.SendMatchResultFunc(event, dryRun)
	}
	return nil
}

func (m *Mock) SendTournamentResult(event league.TournamentFinishedEvent, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendTournamentResultCalls = append(m.SendTournamentResultCalls, event)
	if m.SendTournamentResultFunc != nil {
		return m.SendTournamentResultFunc(event, dryRun)
	}
	return nil
}

func (m *Mock) SendLeaderboard(standings []league.Standing, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendLeaderboardCalls = append(m.SendLeaderboardCalls, standings)
	return nil
}

func (m *Mock) FormatLeaderboardResponse(standings []league.Standing) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatLeaderboardResponseFunc != nil {
		resp, err := m.FormatLeaderboardResponseFunc(standings)
		m.LastLeaderboardResponse = resp
		return resp, err
	}
	m.LastLeaderboardResponse = standings
	return map[string]string{"text": "leaderboard"}, nil
}

func (m *Mock) FormatPlayerStatsResponse(standing league.Standing, player league.Player, query string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatPlayerStatsResponseFunc != nil {
		resp, err := m.FormatPlayerStatsResponseFunc(standing, player, query)
		m.LastPlayerStatsResponse = resp
		return resp, err
	}
	m.LastPlayerStatsResponse = standing
	return map[string]string{"text": "stats for " + player.Name}, nil
}

func (m *Mock) FormatPlayerNotFoundResponse(query string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatPlayerNotFoundResponseFunc != nil {
		resp, err := m.FormatPlayerNotFoundResponseFunc(query)
		m.LastPlayerNotFoundResponse = resp
		return resp, err
	}
	m.LastPlayerNotFoundResponse = query
	return map[string]string{"text": "not found: " + query}, nil
}
