// Package schedule abstracts timed callbacks so game timers can run against
// the wall clock in play and against a manual clock in tests.
package schedule

import (
	"sync"
	"time"
)

// Handle cancels a scheduled task. Cancel is idempotent and safe to call
// after the task has fired.
type Handle interface {
	Cancel()
}

// Scheduler runs callbacks after a delay or on a fixed interval. Callbacks
// run on a goroutine owned by the scheduler.
type Scheduler interface {
	After(d time.Duration, fn func()) Handle
	Every(d time.Duration, fn func()) Handle
}

// Clock is a Scheduler backed by real timers. Scale speeds time up: a
// scale of 2 fires every timer in half the wall-clock time.
type Clock struct {
	Scale float64
}

// NewClock returns a real-time scheduler. Non-positive scales mean 1.
func NewClock(scale float64) *Clock {
	if scale <= 0 {
		scale = 1
	}
	return &Clock{Scale: scale}
}

func (c *Clock) scaled(d time.Duration) time.Duration {
	if c.Scale <= 0 || c.Scale == 1 {
		return d
	}
	return max(time.Millisecond, time.Duration(float64(d)/c.Scale))
}

type timerHandle struct {
	t *time.Timer
}

func (h timerHandle) Cancel() {
	h.t.Stop()
}

// After runs fn once after d.
func (c *Clock) After(d time.Duration, fn func()) Handle {
	return timerHandle{t: time.AfterFunc(c.scaled(d), fn)}
}

type tickerHandle struct {
	stopChan chan struct{}
	once     sync.Once
}

func (h *tickerHandle) Cancel() {
	h.once.Do(func() { close(h.stopChan) })
}

// Every runs fn each d until cancelled. A tick is never delivered after
// Cancel returns on the ticking goroutine.
func (c *Clock) Every(d time.Duration, fn func()) Handle {
	h := &tickerHandle{stopChan: make(chan struct{})}
	ticker := time.NewTicker(c.scaled(d))

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-h.stopChan:
				return
			case <-ticker.C:
				select {
				case <-h.stopChan:
					return
				default:
				}
				fn()
			}
		}
	}()
	return h
}

// Group collects handles so a whole phase's timers can be cancelled at once.
type Group struct {
	mu      sync.Mutex
	handles []Handle
}

// Add tracks h and returns it.
func (g *Group) Add(h Handle) Handle {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.handles = append(g.handles, h)
	return h
}

// CancelAll cancels every tracked handle and forgets them.
func (g *Group) CancelAll() {
	g.mu.Lock()
	handles := g.handles
	g.handles = nil
	g.mu.Unlock()

	for _, h := range handles {
		h.Cancel()
	}
}
