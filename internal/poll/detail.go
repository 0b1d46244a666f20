package poll

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/vdimko/claude-api-controller/internal/api"
	"github.com/vdimko/claude-api-controller/internal/models"
)

// DetailState is the detail synchronizer's state machine position.
type DetailState int

const (
	// StateCollapsed: no detail shown, no timer, nothing in flight that
	// will be applied.
	StateCollapsed DetailState = iota

	// StateFetchingInitial: the expand fetch is in flight.
	StateFetchingInitial

	// StateExpandedPolling: detail shown, task not yet terminal, timer
	// re-fetching every interval.
	StateExpandedPolling

	// StateExpandedSettled: detail shown, task terminal, timer torn down.
	StateExpandedSettled
)

func (s DetailState) String() string {
	switch s {
	case StateCollapsed:
		return "collapsed"
	case StateFetchingInitial:
		return "fetching"
	case StateExpandedPolling:
		return "polling"
	case StateExpandedSettled:
		return "settled"
	}
	return "unknown"
}

// Expanded reports whether detail content should be visible.
func (s DetailState) Expanded() bool {
	return s == StateExpandedPolling || s == StateExpandedSettled
}

// DetailSnapshot is the detail view's state at one point in time.
type DetailSnapshot struct {
	State DetailState
	Task  *models.Task
	Err   error
}

// DetailConfig configures a DetailSync. Zero values get defaults.
type DetailConfig struct {
	Interval time.Duration
	Logger   *log.Logger
	Notify   func()
}

// DetailSync tracks one task's full detail while it is expanded. It polls
// only while the task is non-terminal; once a terminal status is observed
// the timer is torn down and never restarted for this expansion. Collapse
// is the cancellation point: it is idempotent and the only way to silence
// the loop short of settling.
type DetailSync struct {
	client   *api.Client
	taskID   string
	interval time.Duration
	logger   *log.Logger
	notify   func()

	mu    sync.Mutex
	gen   uint64
	state DetailState
	task  *models.Task
	err   error
	stop  chan struct{} // non-nil exactly while the poll loop runs
}

// NewDetailSync creates a detail synchronizer for one task id, starting
// collapsed. Call Expand to begin.
func NewDetailSync(client *api.Client, taskID string, cfg DetailConfig) *DetailSync {
	return &DetailSync{
		client:   client,
		taskID:   taskID,
		interval: orInterval(cfg.Interval, DefaultDetailInterval),
		logger:   orDiscard(cfg.Logger),
		notify:   cfg.Notify,
	}
}

// TaskID returns the tracked task id.
func (s *DetailSync) TaskID() string { return s.taskID }

// Expand issues a fresh detail fetch. Cached detail from a previous
// expansion is never trusted; collapsing marks it stale. No-op unless
// currently collapsed.
func (s *DetailSync) Expand() {
	s.mu.Lock()
	if s.state != StateCollapsed {
		s.mu.Unlock()
		return
	}
	s.state = StateFetchingInitial
	s.err = nil
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	go s.initialFetch(gen)
}

// Collapse tears down the view: any polling timer stops, and a response
// still in flight will be discarded when it lands. Idempotent.
func (s *DetailSync) Collapse() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateCollapsed {
		return
	}
	s.gen++
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
	s.state = StateCollapsed
	s.err = nil
}

// State returns the current state machine position.
func (s *DetailSync) State() DetailState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snapshot returns the current detail state.
func (s *DetailSync) Snapshot() DetailSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return DetailSnapshot{State: s.state, Task: s.task, Err: s.err}
}

func (s *DetailSync) initialFetch(gen uint64) {
	task, err := s.client.GetTask(context.Background(), s.taskID)

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	if err != nil {
		// The initial fetch surfaces its error to the caller and leaves
		// the view collapsed so expanding can be retried.
		s.state = StateCollapsed
		s.err = err
	} else {
		s.task = task
		s.err = nil
		if task.Status.IsTerminal() {
			s.state = StateExpandedSettled
		} else {
			s.state = StateExpandedPolling
			s.stop = make(chan struct{})
			go s.pollLoop(gen, s.stop)
		}
	}
	notify := s.notify
	s.mu.Unlock()

	if notify != nil {
		notify()
	}
}

func (s *DetailSync) pollLoop(gen uint64, stop chan struct{}) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if s.pollOnce(gen) {
				return
			}
		}
	}
}

// pollOnce re-fetches detail. It returns true when the loop must end:
// either the task settled or the expansion this loop belongs to is gone.
func (s *DetailSync) pollOnce(gen uint64) bool {
	task, err := s.client.GetTask(context.Background(), s.taskID)

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return true
	}

	settled := false
	if err != nil {
		// Tick failures are swallowed: keep cached detail, surface the
		// latest error, let the next tick retry.
		s.err = err
		s.logger.Printf("detail poll for task %s failed: %v", s.taskID, err)
	} else {
		s.err = nil
		// Status is monotonic; a read that would revert a terminal status
		// to a non-terminal one is stale and must not be applied.
		if s.task == nil || !s.task.Status.IsTerminal() || task.Status.IsTerminal() {
			s.task = task
		}
		if s.task.Status.IsTerminal() {
			s.state = StateExpandedSettled
			s.stop = nil
			settled = true
		}
	}
	notify := s.notify
	s.mu.Unlock()

	if notify != nil {
		notify()
	}
	return settled
}
