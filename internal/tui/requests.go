package tui

import "context"

// Request slots. A new request in a slot supersedes the previous one.
const (
	slotView = "view"
	slotAuth = "auth"
)

type inflight struct {
	gen    uint64
	cancel context.CancelFunc
}

// requestTracker hands out request generations and cancels superseded requests.
// It is owned by the Update loop and not safe for concurrent use.
type requestTracker struct {
	next  uint64
	slots map[string]inflight
}

func newRequestTracker() *requestTracker {
	return &requestTracker{slots: make(map[string]inflight)}
}

// begin starts a request in slot, cancelling whatever was in flight there
func (t *requestTracker) begin(parent context.Context, slot string) (context.Context, uint64) {
	t.cancel(slot)

	t.next++
	ctx, cancel := context.WithCancel(parent)
	t.slots[slot] = inflight{gen: t.next, cancel: cancel}
	return ctx, t.next
}

// current reports whether gen is the latest request in slot
func (t *requestTracker) current(slot string, gen uint64) bool {
	f, ok := t.slots[slot]
	return ok && f.gen == gen
}

// finish releases a completed request. Stale generations are ignored.
func (t *requestTracker) finish(slot string, gen uint64) bool {
	f, ok := t.slots[slot]
	if !ok || f.gen != gen {
		return false
	}
	f.cancel()
	delete(t.slots, slot)
	return true
}

// cancel aborts the request in slot, if any
func (t *requestTracker) cancel(slot string) {
	if f, ok := t.slots[slot]; ok {
		f.cancel()
		delete(t.slots, slot)
	}
}

// cancelAll aborts every in-flight request
func (t *requestTracker) cancelAll() {
	for slot := range t.slots {
		t.cancel(slot)
	}
}
