package store

import (
	"fmt"
	"os"
	"sync"
	"time"

	"fortio.org/safecast"

	"github.com/kpgusev/calculator/internal/calc"
)

const historySchemaVersion uint16 = 1

// Record is one persisted history entry.
type Record struct {
	ID    uint32
	Op    string
	Entry string
	Text  string
	At    time.Time
}

type historyPayload struct {
	Schema  uint16
	NextID  uint32
	Records []Record // newest first
}

// History is a msgpack-backed calculation log capped at a fixed number of
// records. Thread-safe for concurrent access.
type History struct {
	mu    sync.RWMutex
	path  string
	limit int
}

// OpenHistory returns the history stored at path. The file is created on
// the first Append. A non-positive limit selects calc.DefaultHistoryLimit.
func OpenHistory(path string, limit int) *History {
	if limit <= 0 {
		limit = calc.DefaultHistoryLimit
	}
	return &History{path: path, limit: limit}
}

// Path returns the backing file.
func (h *History) Path() string { return h.path }

func (h *History) load() (historyPayload, error) {
	var p historyPayload
	ok, err := readFile(h.path, &p)
	if err != nil {
		return historyPayload{}, err
	}
	if !ok || p.Schema != historySchemaVersion {
		return historyPayload{Schema: historySchemaVersion, NextID: 1}, nil
	}
	return p, nil
}

// List returns up to n records, newest first. n <= 0 lists everything.
func (h *History) List(n int) ([]Record, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	p, err := h.load()
	if err != nil {
		return nil, err
	}
	if n > 0 && len(p.Records) > n {
		p.Records = p.Records[:n]
	}
	return p.Records, nil
}

// Append records e and trims the log to the limit.
func (h *History) Append(e calc.Entry) (Record, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	p, err := h.load()
	if err != nil {
		return Record{}, err
	}
	if p.NextID == 0 {
		p.NextID = 1
	}
	rec := Record{ID: p.NextID, Op: e.Op.String(), Entry: e.Line, Text: e.Result, At: e.At.UTC()}
	next, err := safecast.Conv[uint32](uint64(p.NextID) + 1)
	if err != nil {
		return Record{}, fmt.Errorf("history id overflow: %w", err)
	}
	p.NextID = next

	p.Records = append([]Record{rec}, p.Records...)
	if len(p.Records) > h.limit {
		p.Records = p.Records[:h.limit]
	}
	if err := writeAtomic(h.path, &p); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Clear removes the history file.
func (h *History) Clear() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := os.Remove(h.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Entries converts records back to calculator entries.
func Entries(records []Record) []calc.Entry {
	out := make([]calc.Entry, 0, len(records))
	for _, r := range records {
		op, _ := calc.LookupOp(r.Op)
		out = append(out, calc.Entry{Op: op, Line: r.Entry, Result: r.Text, At: r.At})
	}
	return out
}

// Attach loads the persisted records into mem and appends every entry later
// added to mem. Write failures are passed to onErr, which may be nil.
func (h *History) Attach(mem *calc.History, onErr func(error)) error {
	records, err := h.List(0)
	if err != nil {
		return err
	}
	mem.Load(Entries(records))
	mem.OnAdd(func(e calc.Entry) {
		if _, err := h.Append(e); err != nil && onErr != nil {
			onErr(err)
		}
	})
	return nil
}
