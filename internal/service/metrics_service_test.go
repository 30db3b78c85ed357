package service

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsServiceSnapshot(t *testing.T) {
	m := NewMetricsService()
	m.ObserveHTTPRequest(http.MethodPost, "/api/v1/timetables/exam", http.StatusCreated, 20*time.Millisecond)
	m.ObserveGeneration(KindExam, OutcomeSuccess, time.Millisecond)
	m.ObserveGeneration(KindWeekly, OutcomeInvalid, time.Millisecond)
	m.RecordExamDiagnostics(2, 1)
	m.RecordWeeklyDiagnostics(3, 1, 0)
	m.RecordExport("classes", "pdf")
	m.RecordCacheOperation(true, time.Millisecond)
	m.RecordCacheOperation(false, time.Millisecond)

	snapshot := m.Snapshot()
	assert.EqualValues(t, 1, snapshot.RequestsTotal)
	assert.InDelta(t, 20.0, snapshot.AverageRequestDurationMs, 0.001)
	assert.EqualValues(t, 2, snapshot.Generations)
	assert.EqualValues(t, 1, snapshot.GenerationFailures)
	assert.EqualValues(t, 2, snapshot.ExamClashes)
	assert.EqualValues(t, 3, snapshot.Displaced)
	assert.EqualValues(t, 1, snapshot.Dropped)
	assert.EqualValues(t, 1, snapshot.Exports)
	assert.InDelta(t, 0.5, snapshot.CacheHitRatio, 0.001)
}

func TestMetricsServiceHandlerExposesCollectors(t *testing.T) {
	m := NewMetricsService()
	m.ObserveGeneration(KindRoster, OutcomeSuccess, time.Millisecond)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `timetable_generations_total{kind="roster",outcome="success"} 1`))
}

func TestNilMetricsServiceIsSafe(t *testing.T) {
	var m *MetricsService
	m.ObserveGeneration(KindExam, OutcomeSuccess, time.Millisecond)
	m.RecordExport("exam", "csv")
	assert.Zero(t, m.Snapshot().Generations)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
