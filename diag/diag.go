package diag

import (
	"log/slog"
	"time"

	"github.com/nexbase-io/nexbase-go/clock"
)

// Config configures the diagnostics facade.
type Config struct {
	// HistoryCapacity bounds the disconnect history ring. Must be positive.
	HistoryCapacity int
	// LongDisconnectThreshold is the outage duration at which
	// IsLongDisconnect starts reporting true. Must not be negative.
	LongDisconnectThreshold time.Duration
	// Clock supplies timestamps; nil means the system clock.
	Clock clock.Clock
	// Logger receives connectivity transition logs; nil means silent.
	Logger *slog.Logger
}

// DefaultConfig returns the default diagnostics configuration.
func DefaultConfig() Config {
	return Config{
		HistoryCapacity:         DefaultHistoryCapacity,
		LongDisconnectThreshold: DefaultLongDisconnectThreshold,
		Clock:                   clock.System(),
	}
}

// Diagnostics owns one performance timeline and one disconnect ledger for
// the lifetime of the client that created it. It holds no external resource
// and needs no teardown.
type Diagnostics struct {
	perf *PerformanceTimeline
	conn *DisconnectLedger
}

// New creates the diagnostics facade. The only possible failure is a
// configuration error from the ledger bounds.
func New(cfg Config) (*Diagnostics, error) {
	clk := cfg.Clock
	if clk == nil {
		clk = clock.System()
	}
	conn, err := NewDisconnectLedger(cfg.HistoryCapacity, cfg.LongDisconnectThreshold, clk, cfg.Logger)
	if err != nil {
		return nil, err
	}
	return &Diagnostics{
		perf: NewPerformanceTimeline(clk),
		conn: conn,
	}, nil
}

// Performance returns the instrumentation timeline handle.
func (d *Diagnostics) Performance() *PerformanceTimeline { return d.perf }

// Disconnects returns the connectivity ledger handle.
func (d *Diagnostics) Disconnects() *DisconnectLedger { return d.conn }
