package poll

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/vdimko/claude-api-controller/internal/api"
	"github.com/vdimko/claude-api-controller/internal/models"
)

// LogSnapshot is the log feed's state at one point in time. The feed is a
// sliding window: newest records first, capped at the configured limit.
type LogSnapshot struct {
	Logs    []models.Log
	Loading bool
	Err     error
}

// LogConfig configures a LogSync. Zero values get defaults.
type LogConfig struct {
	Filter   string // agent name; empty means all agents
	Limit    int    // window size; defaults to api.DefaultLogLimit
	Interval time.Duration
	Logger   *log.Logger
	Notify   func()
}

// LogSync maintains a bounded feed of append-only log records by polling
// on a fixed interval.
type LogSync struct {
	client   *api.Client
	interval time.Duration
	limit    int
	logger   *log.Logger
	notify   func()

	kick chan struct{}

	mu      sync.Mutex
	gen     uint64
	filter  string
	logs    []models.Log
	loading bool
	err     error
	running bool
	stop    chan struct{}
}

// NewLogSync creates a log synchronizer. Call Start to begin polling.
func NewLogSync(client *api.Client, cfg LogConfig) *LogSync {
	limit := cfg.Limit
	if limit <= 0 {
		limit = api.DefaultLogLimit
	}
	return &LogSync{
		client:   client,
		interval: orInterval(cfg.Interval, DefaultLogInterval),
		limit:    limit,
		logger:   orDiscard(cfg.Logger),
		notify:   cfg.Notify,
		kick:     make(chan struct{}, 1),
		filter:   cfg.Filter,
		loading:  true,
	}
}

// Start launches the polling loop. No-op when already running.
func (s *LogSync) Start() {
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

// Stop silences the loop. Idempotent.
func (s *LogSync) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	s.gen++
	close(s.stop)
}

// Refresh requests an immediate re-fetch.
func (s *LogSync) Refresh() {
	select {
	case s.kick <- struct{}{}:
	default:
	}
}

// SetFilter switches the agent filter, discarding any in-flight response
// for the old filter.
func (s *LogSync) SetFilter(agentName string) {
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

// Snapshot returns the current feed state.
func (s *LogSync) Snapshot() LogSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return LogSnapshot{Logs: s.logs, Loading: s.loading, Err: s.err}
}

func (s *LogSync) loop(stop chan struct{}) {
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

func (s *LogSync) fetch() {
	s.mu.Lock()
	gen := s.gen
	filter := s.filter
	s.mu.Unlock()

	logs, err := s.client.ListLogs(context.Background(), filter, s.limit)

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.loading = false
	if err != nil {
		s.err = err
		s.logger.Printf("log poll failed: %v", err)
	} else {
		s.logs = logs
		s.err = nil
	}
	notify := s.notify
	s.mu.Unlock()

	if notify != nil {
		notify()
	}
}
