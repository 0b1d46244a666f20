// Package poll implements the synchronizers that keep local views of
// remote task state current. There is no server-push channel; each
// synchronizer owns a recurring timer, fetches through the api gateway,
// and folds responses into a snapshot the UI reads.
//
// The three loop kinds (task list, task detail, log feed) are independent
// and uncoordinated; their snapshots are each eventually consistent but
// never form a single coherent picture. Every synchronizer guards against
// late responses with a generation counter: a fetch result is applied only
// if the generation captured before the request still matches when the
// response lands. Stopping a loop, changing its filter, or collapsing a
// detail view bumps the generation, so an in-flight request finishes
// harmlessly instead of writing into torn-down state. In-flight requests
// are never aborted and no per-request timeout is imposed here; transport
// timeouts belong to the gateway.
package poll

import (
	"io"
	"log"
	"time"
)

// Default intervals. List refreshes are cheaper than they look (summary
// projection only), so the list runs slower than detail and logs.
const (
	DefaultListInterval   = 3 * time.Second
	DefaultDetailInterval = 2 * time.Second
	DefaultLogInterval    = 2 * time.Second
)

func orDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return log.New(io.Discard, "", 0)
	}
	return l
}

func orInterval(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}
