package poll

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vdimko/claude-api-controller/internal/models"
)

// logServer serves GET /logs from a swappable record set, honoring the
// agent_name filter and limit the way the real backend does.
type logServer struct {
	mu      sync.Mutex
	records []models.Log
	failing bool
}

func (s *logServer) set(records ...models.Log) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = records
}

func (s *logServer) fail(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing = on
}

func (s *logServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("agent_name")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	s.mu.Lock()
	records := make([]models.Log, 0, len(s.records))
	for _, rec := range s.records {
		if filter == "" || rec.AgentName == filter {
			records = append(records, rec)
		}
	}
	failing := s.failing
	s.mu.Unlock()

	if failing {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"backend unavailable"}`))
		return
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	_ = json.NewEncoder(w).Encode(models.LogListResponse{
		Count: len(records),
		Logs:  records,
	})
}

func logRecord(id, agent string, level models.LogLevel, msg string) models.Log {
	return models.Log{
		LogID:     id,
		AgentName: agent,
		Level:     level,
		Message:   msg,
		Timestamp: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestLogFeedPicksUpNewRecords(t *testing.T) {
	srv := &logServer{}
	srv.set(logRecord("l-1", "reviewer", models.LogLevelInfo, "task accepted"))

	client := newTestClient(t, srv)
	s := NewLogSync(client, LogConfig{Interval: testInterval})
	s.Start()
	defer s.Stop()

	require.Eventually(t, func() bool {
		snap := s.Snapshot()
		return !snap.Loading && len(snap.Logs) == 1
	}, time.Second, time.Millisecond)

	srv.set(
		logRecord("l-2", "reviewer", models.LogLevelInfo, "task started"),
		logRecord("l-1", "reviewer", models.LogLevelInfo, "task accepted"),
	)

	require.Eventually(t, func() bool {
		return len(s.Snapshot().Logs) == 2
	}, time.Second, time.Millisecond)
	assert.Equal(t, "l-2", s.Snapshot().Logs[0].LogID)
}

func TestLogFeedDegradesOnErrorKeepsRecords(t *testing.T) {
	srv := &logServer{}
	srv.set(logRecord("l-1", "reviewer", models.LogLevelWarning, "retrying"))

	client := newTestClient(t, srv)
	s := NewLogSync(client, LogConfig{Interval: testInterval})
	s.Start()
	defer s.Stop()

	require.Eventually(t, func() bool {
		return len(s.Snapshot().Logs) == 1
	}, time.Second, time.Millisecond)

	srv.fail(true)
	require.Eventually(t, func() bool {
		return s.Snapshot().Err != nil
	}, time.Second, time.Millisecond)

	snap := s.Snapshot()
	assert.Len(t, snap.Logs, 1, "cached records survive a failed poll")
	assert.ErrorContains(t, snap.Err, "backend unavailable")

	srv.fail(false)
	require.Eventually(t, func() bool {
		return s.Snapshot().Err == nil
	}, time.Second, time.Millisecond)
}

func TestLogFeedFilterSwitch(t *testing.T) {
	srv := &logServer{}
	srv.set(
		logRecord("l-1", "reviewer", models.LogLevelInfo, "task accepted"),
		logRecord("l-2", "planner", models.LogLevelInfo, "task accepted"),
	)

	client := newTestClient(t, srv)
	s := NewLogSync(client, LogConfig{Interval: testInterval})
	s.Start()
	defer s.Stop()

	require.Eventually(t, func() bool {
		return len(s.Snapshot().Logs) == 2
	}, time.Second, time.Millisecond)

	s.SetFilter("planner")
	require.Eventually(t, func() bool {
		snap := s.Snapshot()
		return len(snap.Logs) == 1 && snap.Logs[0].AgentName == "planner"
	}, time.Second, time.Millisecond)
}

func TestLogFeedHonorsLimit(t *testing.T) {
	records := make([]models.Log, 0, 5)
	for i := 5; i >= 1; i-- {
		records = append(records, logRecord("l-"+strconv.Itoa(i), "reviewer", models.LogLevelDebug, "tick"))
	}
	srv := &logServer{}
	srv.set(records...)

	client := newTestClient(t, srv)
	s := NewLogSync(client, LogConfig{Interval: testInterval, Limit: 3})
	s.Start()
	defer s.Stop()

	require.Eventually(t, func() bool {
		return len(s.Snapshot().Logs) == 3
	}, time.Second, time.Millisecond)
	assert.Equal(t, "l-5", s.Snapshot().Logs[0].LogID)
}

func TestLogFeedStartStopIdempotent(t *testing.T) {
	srv := &logServer{}
	client := newTestClient(t, srv)
	s := NewLogSync(client, LogConfig{Interval: testInterval})

	s.Start()
	s.Start()
	require.Eventually(t, func() bool {
		return !s.Snapshot().Loading
	}, time.Second, time.Millisecond)
	s.Stop()
	s.Stop()
}
