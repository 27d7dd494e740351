package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	svc := NewService(reg)

	svc.IncMatchesRecorded()
	svc.IncMatchesRecorded()
	svc.IncPlayoffAdvancements(3)
	svc.AddTournamentPointsAwarded(50)
	svc.IncTournamentsFinished()
	svc.IncStorageFailures()
	svc.ObserveOperationDuration("record_match", 0.01)

	assert.Equal(t, 2.0, testutil.ToFloat64(svc.MatchesRecorded))
	assert.Equal(t, 3.0, testutil.ToFloat64(svc.PlayoffAdvancements))
	assert.Equal(t, 50.0, testutil.ToFloat64(svc.TournamentPointsAwarded))
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.TournamentsFinished))
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.StorageFailures))
	assert.Equal(t, 1, testutil.CollectAndCount(svc.OperationDuration))
}

func TestMetricsHandler_ExposesRegisteredMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	svc := NewService(reg)
	svc.SetStartupTime(1.5)

	rr := httptest.NewRecorder()
	NewMetricsHandler(reg).ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "kicker_startup_duration_seconds 1.5")
	assert.Contains(t, string(body), "kicker_matches_recorded_total 0")
}
