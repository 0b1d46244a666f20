package poll

import (
	"encoding/json"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vdimko/claude-api-controller/internal/models"
)

// listServer serves GET /tasks from a swappable set of items and can be
// told to fail, optionally delaying responses for a named filter.
type listServer struct {
	mu      sync.Mutex
	items   []models.TaskListItem
	failing bool
	delay   map[string]time.Duration // filter value -> response delay
}

func (s *listServer) set(items ...models.TaskListItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
}

func (s *listServer) fail(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing = on
}

func (s *listServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("agent_name")

	s.mu.Lock()
	items := make([]models.TaskListItem, 0, len(s.items))
	for _, it := range s.items {
		if filter == "" || it.AgentName == filter {
			items = append(items, it)
		}
	}
	failing := s.failing
	delay := s.delay[filter]
	s.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if failing {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"backend unavailable"}`))
		return
	}
	_ = json.NewEncoder(w).Encode(models.TaskListResponse{
		Count: len(items),
		Tasks: items,
	})
}

func listItem(id, agent string, status models.TaskStatus, created time.Time) models.TaskListItem {
	return models.TaskListItem{
		TaskID:    id,
		AgentName: agent,
		Status:    status,
		CreatedAt: created,
	}
}

func TestListStatusChangeAppearsWithinInterval(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	srv := &listServer{}
	srv.set(listItem("t-1", "reviewer", models.TaskStatusPending, base))

	client := newTestClient(t, srv)
	s := NewListSync(client, ListConfig{Interval: testInterval})
	s.Start()
	defer s.Stop()

	require.Eventually(t, func() bool {
		snap := s.Snapshot()
		return !snap.Loading && len(snap.Items) == 1
	}, time.Second, time.Millisecond)

	srv.set(listItem("t-1", "reviewer", models.TaskStatusCompleted, base))

	require.Eventually(t, func() bool {
		snap := s.Snapshot()
		return len(snap.Items) == 1 && snap.Items[0].Status == models.TaskStatusCompleted
	}, time.Second, time.Millisecond, "status change must surface within a poll interval")
}

func TestListDegradesOnErrorKeepsItems(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	srv := &listServer{}
	srv.set(listItem("t-1", "reviewer", models.TaskStatusRunning, base))

	client := newTestClient(t, srv)
	s := NewListSync(client, ListConfig{Interval: testInterval})
	s.Start()
	defer s.Stop()

	require.Eventually(t, func() bool {
		return len(s.Snapshot().Items) == 1
	}, time.Second, time.Millisecond)

	srv.fail(true)
	require.Eventually(t, func() bool {
		return s.Snapshot().Err != nil
	}, time.Second, time.Millisecond)

	snap := s.Snapshot()
	assert.Len(t, snap.Items, 1, "failed tick must not blank the list")
	assert.EqualError(t, snap.Err, "backend unavailable")

	// Recovery clears the error on the next good tick.
	srv.fail(false)
	require.Eventually(t, func() bool {
		return s.Snapshot().Err == nil
	}, time.Second, time.Millisecond)
}

func TestListOrdersNewestFirst(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	srv := &listServer{}
	srv.set(
		listItem("t-old", "reviewer", models.TaskStatusCompleted, base.Add(-time.Hour)),
		listItem("t-new", "reviewer", models.TaskStatusPending, base),
		listItem("t-mid", "reviewer", models.TaskStatusRunning, base.Add(-time.Minute)),
	)

	client := newTestClient(t, srv)
	s := NewListSync(client, ListConfig{Interval: testInterval})
	s.Start()
	defer s.Stop()

	require.Eventually(t, func() bool {
		return len(s.Snapshot().Items) == 3
	}, time.Second, time.Millisecond)

	snap := s.Snapshot()
	assert.Equal(t, "t-new", snap.Items[0].TaskID)
	assert.Equal(t, "t-mid", snap.Items[1].TaskID)
	assert.Equal(t, "t-old", snap.Items[2].TaskID)
}

func TestSetFilterDiscardsStaleResponse(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	srv := &listServer{
		// The unfiltered response straggles; the filtered one is instant.
		delay: map[string]time.Duration{"": 100 * time.Millisecond},
	}
	srv.set(
		listItem("t-a", "reviewer", models.TaskStatusRunning, base),
		listItem("t-b", "planner", models.TaskStatusRunning, base),
	)

	client := newTestClient(t, srv)
	s := NewListSync(client, ListConfig{Interval: time.Minute})
	s.Start()
	defer s.Stop()

	// Switch filters while the unfiltered fetch is still in flight. Its
	// late response carries both agents and must be discarded.
	s.SetFilter("planner")

	require.Eventually(t, func() bool {
		snap := s.Snapshot()
		return !snap.Loading && len(snap.Items) == 1
	}, time.Second, time.Millisecond)

	// Outlast the straggler, then confirm it never got applied.
	time.Sleep(200 * time.Millisecond)
	snap := s.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "planner", snap.Items[0].AgentName)
}

func TestSetFilterSameValueIsNoop(t *testing.T) {
	srv := &listServer{}
	client := newTestClient(t, srv)
	s := NewListSync(client, ListConfig{Filter: "reviewer", Interval: testInterval})
	s.Start()
	defer s.Stop()

	require.Eventually(t, func() bool {
		return !s.Snapshot().Loading
	}, time.Second, time.Millisecond)

	s.SetFilter("reviewer")
	assert.False(t, s.Snapshot().Loading, "re-setting the same filter must not flip to loading")
}

func TestStartStopIdempotent(t *testing.T) {
	srv := &listServer{}
	client := newTestClient(t, srv)
	s := NewListSync(client, ListConfig{Interval: testInterval})

	s.Start()
	s.Start() // second start is a no-op, not a second loop
	require.Eventually(t, func() bool {
		return !s.Snapshot().Loading
	}, time.Second, time.Millisecond)

	s.Stop()
	s.Stop() // second stop must not close the channel twice
}
