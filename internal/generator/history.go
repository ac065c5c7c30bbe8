package generator

import "sync"

// History is the append-only set of identifiers the generator has minted.
// It lives as long as the process and is never pruned.
//
// Callers that read Len and then At/Append are not atomic with respect to
// each other; the Generator serializes whole batches so its own use is.
type History struct {
	mu  sync.RWMutex
	ids []string
}

func NewHistory() *History {
	return &History{}
}

func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.ids)
}

// At returns the i-th identifier in insertion order.
func (h *History) At(i int) string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.ids[i]
}

func (h *History) Append(id string) {
	h.mu.Lock()
	h.ids = append(h.ids, id)
	h.mu.Unlock()
}

// Snapshot returns a copy of every identifier seen so far.
func (h *History) Snapshot() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]string, len(h.ids))
	copy(out, h.ids)
	return out
}
