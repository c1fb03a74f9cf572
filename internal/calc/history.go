package calc

import (
	"sync"
	"time"
)

// DefaultHistoryLimit caps History when no limit is given.
const DefaultHistoryLimit = 200

// Entry is one recorded calculation.
type Entry struct {
	Op     Op
	Line   string
	Result string
	At     time.Time
}

// History is an in-memory, newest-first log of successful calculations.
// It is safe for concurrent use.
type History struct {
	mu      sync.Mutex
	limit   int
	entries []Entry
	onAdd   func(Entry)
}

// NewHistory returns a history holding at most limit entries.
// A non-positive limit selects DefaultHistoryLimit.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// OnAdd registers fn to be called after every Add, outside the lock.
func (h *History) OnAdd(fn func(Entry)) {
	h.mu.Lock()
	h.onAdd = fn
	h.mu.Unlock()
}

// Add prepends e, dropping the oldest entry when the limit is reached.
func (h *History) Add(e Entry) {
	h.mu.Lock()
	limit := h.limit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	h.entries = append(h.entries, Entry{})
	copy(h.entries[1:], h.entries)
	h.entries[0] = e
	if len(h.entries) > limit {
		h.entries = h.entries[:limit]
	}
	fn := h.onAdd
	h.mu.Unlock()

	if fn != nil {
		fn(e)
	}
}

// Load replaces the contents with entries, which must be newest first.
func (h *History) Load(entries []Entry) {
	h.mu.Lock()
	defer h.mu.Unlock()
	limit := h.limit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}
	h.entries = append([]Entry(nil), entries...)
}

// Entries returns a copy of the recorded entries, newest first.
func (h *History) Entries() []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Entry(nil), h.entries...)
}

// Len returns the number of recorded entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Clear removes all entries.
func (h *History) Clear() {
	h.mu.Lock()
	h.entries = nil
	h.mu.Unlock()
}
