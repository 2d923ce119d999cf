package watch

import (
	"sync"
	"time"
)

// debouncer coalesces triggers arriving within the quiet window into a
// single request on out.
type debouncer struct {
	mu     sync.Mutex
	timer  *time.Timer
	window time.Duration
	out    chan<- struct{}
}

func newDebouncer(window time.Duration, out chan<- struct{}) *debouncer {
	return &debouncer{window: window, out: out}
}

func (d *debouncer) trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, func() { request(d.out) })
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
}

// request does a non-blocking send; a request already queued absorbs it.
func request(ch chan<- struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}
