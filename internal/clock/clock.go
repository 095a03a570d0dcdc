// Package clock abstracts time so the focus timer can run against a real
// event loop in the TUI and against simulated time in tests.
package clock

import (
	"sync"
	"sync/atomic"
	"time"
)

// Handle cancels a scheduled callback. Stop on an already stopped or fired
// handle is a no-op.
type Handle interface {
	Stop()
}

// Scheduler runs callbacks later. Callbacks are always delivered on the
// owner's goroutine, never concurrently with each other.
type Scheduler interface {
	After(d time.Duration, fn func()) Handle
	Every(d time.Duration, fn func()) Handle
}

// Loop is a Scheduler backed by real timers. Fired callbacks are queued on C
// and run by whoever drains it, which keeps all state changes on one
// goroutine.
type Loop struct {
	ch chan func()
}

func NewLoop() *Loop {
	return &Loop{ch: make(chan func(), 16)}
}

// C yields due callbacks. The receiver must call each one.
func (l *Loop) C() <-chan func() { return l.ch }

type loopHandle struct {
	stopped atomic.Bool
	once    sync.Once
	stop    func()
}

func (h *loopHandle) Stop() {
	h.stopped.Store(true)
	h.once.Do(h.stop)
}

// guard drops callbacks that were queued before the handle was stopped.
func (l *Loop) guard(h *loopHandle, fn func()) func() {
	return func() {
		if h.stopped.Load() {
			return
		}
		fn()
	}
}

func (l *Loop) After(d time.Duration, fn func()) Handle {
	h := &loopHandle{}
	t := time.AfterFunc(d, func() { l.ch <- l.guard(h, fn) })
	h.stop = func() { t.Stop() }
	return h
}

func (l *Loop) Every(d time.Duration, fn func()) Handle {
	h := &loopHandle{}
	done := make(chan struct{})
	ticker := time.NewTicker(d)
	h.stop = func() {
		ticker.Stop()
		close(done)
	}
	go func() {
		for {
			select {
			case <-ticker.C:
				select {
				case l.ch <- l.guard(h, fn):
				case <-done:
					return
				}
			case <-done:
				return
			}
		}
	}()
	return h
}

// Manual is a Scheduler driven by Advance. Used in tests.
type Manual struct {
	now  time.Duration
	seq  int
	jobs []*manualJob
}

type manualJob struct {
	at      time.Duration
	every   time.Duration
	seq     int
	fn      func()
	stopped bool
}

func (j *manualJob) Stop() { j.stopped = true }

func NewManual() *Manual { return &Manual{} }

// Elapsed returns the simulated time since the Manual was created.
func (m *Manual) Elapsed() time.Duration { return m.now }

func (m *Manual) After(d time.Duration, fn func()) Handle {
	return m.add(d, 0, fn)
}

func (m *Manual) Every(d time.Duration, fn func()) Handle {
	return m.add(d, d, fn)
}

func (m *Manual) add(d, every time.Duration, fn func()) *manualJob {
	m.seq++
	j := &manualJob{at: m.now + d, every: every, seq: m.seq, fn: fn}
	m.jobs = append(m.jobs, j)
	return j
}

// Pending counts live scheduled callbacks.
func (m *Manual) Pending() int {
	n := 0
	for _, j := range m.jobs {
		if !j.stopped {
			n++
		}
	}
	return n
}

// Advance moves simulated time forward, firing due callbacks in time order.
// Callbacks may schedule or stop other callbacks.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		next := m.nextDue(target)
		if next == nil {
			break
		}
		m.now = next.at
		if next.every > 0 {
			next.at += next.every
		} else {
			next.stopped = true
		}
		next.fn()
		m.compact()
	}
	m.now = target
}

func (m *Manual) nextDue(target time.Duration) *manualJob {
	var best *manualJob
	for _, j := range m.jobs {
		if j.stopped || j.at > target {
			continue
		}
		if best == nil || j.at < best.at || (j.at == best.at && j.seq < best.seq) {
			best = j
		}
	}
	return best
}

func (m *Manual) compact() {
	live := m.jobs[:0]
	for _, j := range m.jobs {
		if !j.stopped {
			live = append(live, j)
		}
	}
	m.jobs = live
}
