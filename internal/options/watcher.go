package options

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports when a per-agent options file changes on disk outside the
// running client (for example, edited by hand or by a second instance).
// Consumers reload that agent's options through the store on each event.
type Watcher struct {
	fsWatcher  *fsnotify.Watcher
	agentsChan chan string
	done       chan struct{}

	debounceMu sync.Mutex
	debounce   map[string]*time.Timer
}

// debounceWindow coalesces the write bursts editors produce for one save.
const debounceWindow = 200 * time.Millisecond

// WatchDir creates a watcher over the options directory and starts
// delivering changed agent names.
func WatchDir(dir string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatcher.Add(dir); err != nil {
		_ = fsWatcher.Close()
		return nil, err
	}

	w := &Watcher{
		fsWatcher:  fsWatcher,
		agentsChan: make(chan string, 16),
		done:       make(chan struct{}),
		debounce:   make(map[string]*time.Timer),
	}
	go w.loop()
	return w, nil
}

// Agents returns the channel of agent names whose options files changed.
func (w *Watcher) Agents() <-chan string {
	return w.agentsChan
}

// Close stops the watcher. Idempotent.
func (w *Watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	return w.fsWatcher.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			agent := agentFromPath(ev.Name)
			if agent == "" {
				continue
			}
			w.emitDebounced(agent)
		case _, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			// Watch errors are not actionable here; the store re-reads
			// from disk on every load anyway.
		}
	}
}

func (w *Watcher) emitDebounced(agent string) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if t, ok := w.debounce[agent]; ok {
		t.Stop()
	}
	w.debounce[agent] = time.AfterFunc(debounceWindow, func() {
		select {
		case w.agentsChan <- agent:
		case <-w.done:
		}
	})
}

// agentFromPath extracts the agent name from an options file path, or ""
// when the file is not an options blob.
func agentFromPath(path string) string {
	name := filepath.Base(path)
	if !strings.HasSuffix(name, ".json") {
		return ""
	}
	return AgentFromKey(strings.TrimSuffix(name, ".json"))
}
