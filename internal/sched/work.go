// internal/sched/work.go
package sched

import "sync"

// Work is a coalescing, cancellable unit of background work.
//
// Schedule queues the function to run on its own goroutine. While a run
// is queued or executing, further Schedule calls coalesce into a single
// re-run, so at most one instance is ever in flight per Work. A function
// that calls Schedule on its own Work before returning therefore loops
// indefinitely without stacking goroutines.
//
// CancelWait stops the loop for good: it suppresses any pending re-run,
// blocks until the in-flight run (if any) returns, and turns later
// Schedule calls into no-ops.
type Work struct {
	fn func()

	mu        sync.Mutex
	cond      *sync.Cond
	pending   bool // queued or running
	rearm     bool // run again after the current run returns
	cancelled bool
}

// New binds fn to a fresh Work. fn runs with no locks held.
func New(fn func()) *Work {
	w := &Work{fn: fn}
	w.cond = sync.NewCond(&w.mu)
	return w
}

// Schedule queues the work to run. Returns false when the call coalesced
// into an already-pending run or the work is cancelled.
func (w *Work) Schedule() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cancelled {
		return false
	}
	if w.pending {
		w.rearm = true
		return false
	}
	w.pending = true
	go w.run()
	return true
}

func (w *Work) run() {
	for {
		w.fn()

		w.mu.Lock()
		again := w.rearm && !w.cancelled
		w.rearm = false
		if !again {
			w.pending = false
			w.cond.Broadcast()
			w.mu.Unlock()
			return
		}
		w.mu.Unlock()
	}
}

// CancelWait cancels the work and blocks until any in-flight run has
// fully returned. After CancelWait the function will never run again.
// Safe to call more than once.
func (w *Work) CancelWait() {
	w.mu.Lock()
	w.cancelled = true
	w.rearm = false
	for w.pending {
		w.cond.Wait()
	}
	w.mu.Unlock()
}
