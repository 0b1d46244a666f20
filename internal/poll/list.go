package poll

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/vdimko/claude-api-controller/internal/api"
	"github.com/vdimko/claude-api-controller/internal/models"
)

// ListSnapshot is the list view's state at one point in time. On fetch
// failure Items retains the last good collection and Err carries the
// latest failure; the view degrades, it never blanks.
type ListSnapshot struct {
	Items   []models.TaskListItem
	Loading bool
	Err     error
}

// ListConfig configures a ListSync. Zero values get sensible defaults.
type ListConfig struct {
	// Filter restricts the list to one agent; empty means all agents.
	Filter string

	// Interval between refreshes. Defaults to DefaultListInterval.
	Interval time.Duration

	// Less orders the fetched items. The server's ordering is not a
	// documented contract, so the comparator is explicit; the default is
	// created_at descending.
	Less func(a, b models.TaskListItem) bool

	// Logger receives swallowed per-tick failures.
	Logger *log.Logger

	// Notify fires after every applied snapshot change.
	Notify func()
}

// NewestFirst is the default list ordering: created_at descending, task id
// as a stable tie-break.
func NewestFirst(a, b models.TaskListItem) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.TaskID < b.TaskID
}

// ListSync maintains the filtered collection of task summaries by polling
// on a fixed interval.
type ListSync struct {
	client   *api.Client
	interval time.Duration
	less     func(a, b models.TaskListItem) bool
	logger   *log.Logger
	notify   func()

	kick chan struct{}

	mu      sync.Mutex
	gen     uint64
	filter  string
	items   []models.TaskListItem
	loading bool
	err     error
	running bool
	stop    chan struct{}
}

// NewListSync creates a list synchronizer. Call Start to begin polling.
func NewListSync(client *api.Client, cfg ListConfig) *ListSync {
	less := cfg.Less
	if less == nil {
		less = NewestFirst
	}
	return &ListSync{
		client:   client,
		interval: orInterval(cfg.Interval, DefaultListInterval),
		less:     less,
		logger:   orDiscard(cfg.Logger),
		notify:   cfg.Notify,
		kick:     make(chan struct{}, 1),
		filter:   cfg.Filter,
		loading:  true,
	}
}

// Start launches the polling loop: one immediate fetch, then one per
// interval. Starting a running synchronizer is a no-op.
func (s *ListSync) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.stop = make(chan struct{})
	stop := s.stop
	s.mu.Unlock()

	go s.loop(stop)
}

// Stop silences the loop. Idempotent, and the only path that silences it;
// an in-flight fetch is not aborted but its response will be discarded.
func (s *ListSync) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	s.gen++
	close(s.stop)
}

// Refresh requests an immediate re-fetch, used after create/stop/delete
// actions. Coalesces when a refresh is already pending.
func (s *ListSync) Refresh() {
	select {
	case s.kick <- struct{}{}:
	default:
	}
}

// SetFilter switches the agent filter. The generation bump means a
// response for the stale filter can never overwrite the new filter's
// state, whichever order the responses arrive in.
func (s *ListSync) SetFilter(agentName string) {
	s.mu.Lock()
	if s.filter == agentName {
		s.mu.Unlock()
		return
	}
	s.filter = agentName
	s.gen++
	s.loading = true
	s.mu.Unlock()
	s.Refresh()
}

// Snapshot returns the current list state.
func (s *ListSync) Snapshot() ListSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ListSnapshot{
		Items:   s.items,
		Loading: s.loading,
		Err:     s.err,
	}
}

func (s *ListSync) loop(stop chan struct{}) {
	s.fetch()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.fetch()
		case <-s.kick:
			s.fetch()
		}
	}
}

func (s *ListSync) fetch() {
	s.mu.Lock()
	gen := s.gen
	filter := s.filter
	s.mu.Unlock()

	items, err := s.client.ListTasks(context.Background(), filter)

	s.mu.Lock()
	if gen != s.gen {
		// Filter changed or loop stopped while this was in flight.
		s.mu.Unlock()
		return
	}
	s.loading = false
	if err != nil {
		s.err = err
		s.logger.Printf("task list poll failed: %v", err)
	} else {
		sort.SliceStable(items, func(i, j int) bool { return s.less(items[i], items[j]) })
		s.items = items
		s.err = nil
	}
	notify := s.notify
	s.mu.Unlock()

	if notify != nil {
		notify()
	}
}
