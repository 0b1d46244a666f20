package poll

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vdimko/claude-api-controller/internal/api"
	"github.com/vdimko/claude-api-controller/internal/config"
	"github.com/vdimko/claude-api-controller/internal/models"
)

const testInterval = 15 * time.Millisecond

func newTestClient(t *testing.T, handler http.Handler) *api.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return api.NewClient(&config.Config{
		BaseURL:           srv.URL,
		APIKey:            "test-key",
		RequestTimeoutSec: 5,
	})
}

func taskJSON(status models.TaskStatus) []byte {
	now := time.Now().UTC()
	data, _ := json.Marshal(models.Task{
		TaskID:    "t-1",
		AgentName: "reviewer",
		Status:    status,
		Prompt:    "fix the bug",
		CreatedAt: now,
		UpdatedAt: now,
	})
	return data
}

// statusScript serves /status responses from a queue, repeating the last
// entry once the queue runs out, and counts every hit.
type statusScript struct {
	statuses []models.TaskStatus
	hits     atomic.Int64
}

func (s *statusScript) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	n := s.hits.Add(1)
	idx := int(n) - 1
	if idx >= len(s.statuses) {
		idx = len(s.statuses) - 1
	}
	_, _ = w.Write(taskJSON(s.statuses[idx]))
}

func TestExpandTerminalTaskFetchesOnceNoTimer(t *testing.T) {
	script := &statusScript{statuses: []models.TaskStatus{models.TaskStatusCompleted}}
	client := newTestClient(t, script)

	s := NewDetailSync(client, "t-1", DetailConfig{Interval: testInterval})
	s.Expand()

	require.Eventually(t, func() bool {
		return s.State() == StateExpandedSettled
	}, time.Second, time.Millisecond)

	// Give a would-be timer several intervals to misfire.
	time.Sleep(5 * testInterval)
	assert.Equal(t, int64(1), script.hits.Load(), "terminal detail needs exactly one fetch")
	assert.Equal(t, StateExpandedSettled, s.State())
}

func TestExpandPollsUntilTerminalThenStops(t *testing.T) {
	script := &statusScript{statuses: []models.TaskStatus{
		models.TaskStatusPending,
		models.TaskStatusRunning,
		models.TaskStatusRunning,
		models.TaskStatusCompleted,
	}}
	client := newTestClient(t, script)

	s := NewDetailSync(client, "t-1", DetailConfig{Interval: testInterval})
	s.Expand()

	require.Eventually(t, func() bool {
		return s.State() == StateExpandedSettled
	}, time.Second, time.Millisecond)

	snap := s.Snapshot()
	require.NotNil(t, snap.Task)
	assert.Equal(t, models.TaskStatusCompleted, snap.Task.Status)

	// Once settled the timer is gone; no further fetches may occur.
	settled := script.hits.Load()
	time.Sleep(5 * testInterval)
	assert.Equal(t, settled, script.hits.Load(), "poll timer must be torn down at the settle transition")
	assert.Equal(t, StateExpandedSettled, s.State(), "a settled view never re-enters polling")
}

func TestCollapseDiscardsLateResponse(t *testing.T) {
	release := make(chan struct{})
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		_, _ = w.Write(taskJSON(models.TaskStatusRunning))
	}))

	s := NewDetailSync(client, "t-1", DetailConfig{Interval: testInterval})
	s.Expand()
	require.Equal(t, StateFetchingInitial, s.State())

	s.Collapse()
	close(release)

	// The response lands after the collapse; it must not be applied.
	time.Sleep(5 * testInterval)
	snap := s.Snapshot()
	assert.Equal(t, StateCollapsed, snap.State)
	assert.Nil(t, snap.Task)
}

func TestCollapseIsIdempotentAndTearsDownTimer(t *testing.T) {
	script := &statusScript{statuses: []models.TaskStatus{models.TaskStatusRunning}}
	client := newTestClient(t, script)

	s := NewDetailSync(client, "t-1", DetailConfig{Interval: testInterval})
	s.Expand()

	require.Eventually(t, func() bool {
		return s.State() == StateExpandedPolling
	}, time.Second, time.Millisecond)

	s.Collapse()
	s.Collapse() // second collapse must be harmless

	stopped := script.hits.Load()
	time.Sleep(5 * testInterval)
	assert.Equal(t, stopped, script.hits.Load(), "collapse must stop future ticks")
	assert.Equal(t, StateCollapsed, s.State())
}

func TestReExpandRefetches(t *testing.T) {
	script := &statusScript{statuses: []models.TaskStatus{models.TaskStatusCompleted}}
	client := newTestClient(t, script)

	s := NewDetailSync(client, "t-1", DetailConfig{Interval: testInterval})
	s.Expand()
	require.Eventually(t, func() bool {
		return s.State() == StateExpandedSettled
	}, time.Second, time.Millisecond)

	s.Collapse()
	s.Expand()
	require.Eventually(t, func() bool {
		return s.State() == StateExpandedSettled
	}, time.Second, time.Millisecond)

	assert.Equal(t, int64(2), script.hits.Load(),
		"cached detail is stale after collapse; re-expand must refetch")
}

func TestInitialFetchErrorSurfacesAndStaysRetryable(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Task not found"}`))
	}))

	s := NewDetailSync(client, "t-404", DetailConfig{Interval: testInterval})
	s.Expand()

	require.Eventually(t, func() bool {
		return s.Snapshot().Err != nil
	}, time.Second, time.Millisecond)

	snap := s.Snapshot()
	assert.Equal(t, StateCollapsed, snap.State, "failed expand returns to collapsed for retry")
	assert.EqualError(t, snap.Err, "Task not found")
}

func TestPollTickErrorKeepsCachedDetail(t *testing.T) {
	var hits atomic.Int64
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			_, _ = w.Write(taskJSON(models.TaskStatusRunning))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"db down"}`))
	}))

	s := NewDetailSync(client, "t-1", DetailConfig{Interval: testInterval})
	s.Expand()

	require.Eventually(t, func() bool {
		snap := s.Snapshot()
		return snap.State == StateExpandedPolling && snap.Err != nil
	}, time.Second, time.Millisecond)

	snap := s.Snapshot()
	require.NotNil(t, snap.Task, "degrade, don't blank: cached detail survives tick failures")
	assert.Equal(t, models.TaskStatusRunning, snap.Task.Status)
	assert.EqualError(t, snap.Err, "db down")
}
