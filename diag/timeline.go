package diag

import (
	"sync"
	"time"

	"github.com/nexbase-io/nexbase-go/clock"
)

// EntryType classifies a timeline entry.
type EntryType string

const (
	// EntryMark is a zero-duration entry recording that a named event occurred.
	EntryMark EntryType = "mark"
	// EntryMeasure is an entry recording elapsed time between two boundaries.
	EntryMeasure EntryType = "measure"
)

// PerformanceEntry is one instrumentation record. Entries are immutable once
// returned; names may repeat and carry no identity.
type PerformanceEntry struct {
	Name      string        `json:"name"`
	Type      EntryType     `json:"entry_type"`
	StartTime time.Time     `json:"start_time"`
	Duration  time.Duration `json:"duration"`
	Detail    Value         `json:"detail"`
}

// PerformanceTimeline is an append-only log of marks and measures. It is safe
// for concurrent use; entries appear in the order their mutation acquired the
// timeline lock. Recorded timestamps feed duration math only and never reorder
// the sequence.
type PerformanceTimeline struct {
	mu      sync.RWMutex
	clock   clock.Clock
	origin  time.Time
	entries []PerformanceEntry
}

// NewPerformanceTimeline creates an empty timeline. The creation instant
// becomes the default start boundary for measures with no start mark.
func NewPerformanceTimeline(clk clock.Clock) *PerformanceTimeline {
	if clk == nil {
		clk = clock.System()
	}
	return &PerformanceTimeline{
		clock:  clk,
		origin: clk.Now(),
	}
}

// Mark appends a mark entry named name at the current instant and returns a
// copy of it. At most one detail value is attached; extras are ignored. Any
// name is accepted, including "" and duplicates of existing entries.
func (t *PerformanceTimeline) Mark(name string, detail ...Value) PerformanceEntry {
	d := NullValue()
	if len(detail) > 0 {
		d = detail[0]
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	entry := PerformanceEntry{
		Name:      name,
		Type:      EntryMark,
		StartTime: t.clock.Now(),
		Detail:    d,
	}
	t.entries = append(t.entries, entry)
	return entry
}

// Measure appends a measure entry spanning two boundary instants and returns
// a copy of it. A boundary named by startMark or endMark resolves to the most
// recently added entry with that name, of any type. Unresolved or empty
// boundaries are not errors: an empty startMark falls back to the timeline
// origin, everything else falls back to the current instant. The duration is
// clamped to be non-negative.
func (t *PerformanceTimeline) Measure(name, startMark, endMark string) PerformanceEntry {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock.Now()

	start := t.origin
	if startMark != "" {
		start = now
		if e, ok := t.lastByName(startMark); ok {
			start = e.StartTime
		}
	}

	end := now
	if endMark != "" {
		if e, ok := t.lastByName(endMark); ok {
			end = e.StartTime
		}
	}

	dur := end.Sub(start)
	if dur < 0 {
		dur = 0
	}

	entry := PerformanceEntry{
		Name:      name,
		Type:      EntryMeasure,
		StartTime: start,
		Duration:  dur,
		Detail:    NullValue(),
	}
	t.entries = append(t.entries, entry)
	return entry
}

// lastByName returns the most recently added entry with the given name.
// Callers must hold at least a read lock.
func (t *PerformanceTimeline) lastByName(name string) (PerformanceEntry, bool) {
	for i := len(t.entries) - 1; i >= 0; i-- {
		if t.entries[i].Name == name {
			return t.entries[i], true
		}
	}
	return PerformanceEntry{}, false
}

// Entries returns a snapshot of the full sequence in insertion order.
// Later mutations do not affect a returned snapshot.
func (t *PerformanceTimeline) Entries() []PerformanceEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]PerformanceEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// EntriesByName returns a snapshot of entries of any type whose name equals
// name, in insertion order.
func (t *PerformanceTimeline) EntriesByName(name string) []PerformanceEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var out []PerformanceEntry
	for _, e := range t.entries {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

// EntriesByType returns a snapshot of entries of the given type, in
// insertion order.
func (t *PerformanceTimeline) EntriesByType(et EntryType) []PerformanceEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var out []PerformanceEntry
	for _, e := range t.entries {
		if e.Type == et {
			out = append(out, e)
		}
	}
	return out
}

// ClearMarks removes all mark entries, leaving measures untouched.
func (t *PerformanceTimeline) ClearMarks() {
	t.removeType(EntryMark)
}

// ClearMeasures removes all measure entries, leaving marks untouched.
func (t *PerformanceTimeline) ClearMeasures() {
	t.removeType(EntryMeasure)
}

func (t *PerformanceTimeline) removeType(et EntryType) {
	t.mu.Lock()
	defer t.mu.Unlock()

	kept := t.entries[:0]
	for _, e := range t.entries {
		if e.Type != et {
			kept = append(kept, e)
		}
	}
	// Zero the tail so dropped entries are not retained by the backing array.
	for i := len(kept); i < len(t.entries); i++ {
		t.entries[i] = PerformanceEntry{}
	}
	t.entries = kept
}

// Clear removes every entry.
func (t *PerformanceTimeline) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = nil
}
