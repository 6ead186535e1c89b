package diag

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nexbase-io/nexbase-go/clock"
)

const (
	// DefaultHistoryCapacity is the number of completed outages retained.
	DefaultHistoryCapacity = 50
	// DefaultLongDisconnectThreshold is the outage duration at which an
	// ongoing disconnect is considered long.
	DefaultLongDisconnectThreshold = 30 * time.Second
)

// DisconnectRecord is one completed outage. It only ever describes an outage
// whose end is known; the ongoing outage, if any, lives on the ledger itself.
type DisconnectRecord struct {
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`
}

// Duration returns the length of the outage.
func (r DisconnectRecord) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}

// DisconnectLedger tracks the client's connectivity state and a bounded
// history of completed outages. The transport layer reports transitions via
// RecordDisconnect and RecordReconnect; duplicate signals are safe no-ops.
// History is a fixed-capacity ring that evicts the oldest record first.
// All methods are safe for concurrent use.
type DisconnectLedger struct {
	mu            sync.RWMutex
	clock         clock.Clock
	logger        *slog.Logger
	longThreshold time.Duration

	disconnected bool
	activeStart  time.Time

	ring []DisconnectRecord
	head int
	size int
}

// NewDisconnectLedger creates a connected ledger. capacity must be positive
// and longThreshold non-negative; anything else is a configuration error.
// A nil logger disables transition logging.
func NewDisconnectLedger(capacity int, longThreshold time.Duration, clk clock.Clock, logger *slog.Logger) (*DisconnectLedger, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("diag: history capacity must be positive, got %d", capacity)
	}
	if longThreshold < 0 {
		return nil, fmt.Errorf("diag: long disconnect threshold must not be negative, got %s", longThreshold)
	}
	if clk == nil {
		clk = clock.System()
	}
	return &DisconnectLedger{
		clock:         clk,
		logger:        logger,
		longThreshold: longThreshold,
		ring:          make([]DisconnectRecord, capacity),
	}, nil
}

// RecordDisconnect transitions the ledger to disconnected, opening an outage
// at the current instant. When already disconnected it is a no-op: repeated
// low-level failure signals must not move the outage's logical start.
func (l *DisconnectLedger) RecordDisconnect() {
	l.mu.Lock()
	if l.disconnected {
		l.mu.Unlock()
		return
	}
	l.disconnected = true
	l.activeStart = l.clock.Now()
	started := l.activeStart
	l.mu.Unlock()

	if l.logger != nil {
		l.logger.Debug("connection lost", "started_at", started)
	}
}

// RecordReconnect transitions the ledger back to connected, closing the
// active outage at the current instant and appending it to history. When
// already connected it is a no-op.
func (l *DisconnectLedger) RecordReconnect() {
	l.mu.Lock()
	if !l.disconnected {
		l.mu.Unlock()
		return
	}
	rec := DisconnectRecord{
		StartedAt: l.activeStart,
		EndedAt:   l.clock.Now(),
	}
	l.append(rec)
	l.disconnected = false
	l.activeStart = time.Time{}
	l.mu.Unlock()

	if l.logger != nil {
		l.logger.Info("connection restored", "outage_duration", rec.Duration())
	}
}

// append inserts a completed record, evicting the oldest when full.
// Callers must hold the write lock.
func (l *DisconnectLedger) append(rec DisconnectRecord) {
	if l.size < len(l.ring) {
		l.ring[(l.head+l.size)%len(l.ring)] = rec
		l.size++
		return
	}
	l.ring[l.head] = rec
	l.head = (l.head + 1) % len(l.ring)
}

// IsDisconnected reports whether the ledger currently tracks an open outage.
func (l *DisconnectLedger) IsDisconnected() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.disconnected
}

// CurrentDisconnectDuration returns how long the ongoing outage has lasted.
// The second return is false while connected.
func (l *DisconnectLedger) CurrentDisconnectDuration() (time.Duration, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if !l.disconnected {
		return 0, false
	}
	return l.clock.Now().Sub(l.activeStart), true
}

// IsLongDisconnect reports whether the ongoing outage has met or exceeded the
// configured threshold. Always false while connected.
func (l *DisconnectLedger) IsLongDisconnect() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if !l.disconnected {
		return false
	}
	return l.clock.Now().Sub(l.activeStart) >= l.longThreshold
}

// History returns a snapshot of completed outages, oldest to newest. Its
// length never exceeds the configured capacity.
func (l *DisconnectLedger) History() []DisconnectRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]DisconnectRecord, l.size)
	for i := 0; i < l.size; i++ {
		out[i] = l.ring[(l.head+i)%len(l.ring)]
	}
	return out
}
