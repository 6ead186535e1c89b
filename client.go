// Package nexbase is the Go client SDK for the Nexbase backend service.
//
// This module currently carries the client-side diagnostics core: each
// Client owns a diag.Diagnostics facade for its entire lifetime and threads
// it to its collaborators. The transport layer reports connectivity
// transitions to Diagnostics().Disconnects(); instrumented subsystems and
// applications use Diagnostics().Performance().
package nexbase

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nexbase-io/nexbase-go/clock"
	"github.com/nexbase-io/nexbase-go/diag"
)

// Client is a Nexbase client instance. It is safe for concurrent use.
type Client struct {
	id          string
	logger      *slog.Logger
	diagnostics *diag.Diagnostics
}

// Option customizes a Client.
type Option func(*options)

type options struct {
	logger        *slog.Logger
	clock         clock.Clock
	historyCap    int
	longThreshold time.Duration
}

// WithLogger sets the logger used by the client and its diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithClock overrides the time source. Intended for tests.
func WithClock(c clock.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithHistoryCapacity bounds the disconnect history ring.
func WithHistoryCapacity(n int) Option {
	return func(o *options) { o.historyCap = n }
}

// WithLongDisconnectThreshold sets the duration at which an ongoing outage
// counts as a long disconnect.
func WithLongDisconnectThreshold(d time.Duration) Option {
	return func(o *options) { o.longThreshold = d }
}

// NewClient creates a client. The only possible failure is a diagnostics
// configuration error (non-positive history capacity or negative threshold).
func NewClient(opts ...Option) (*Client, error) {
	o := options{
		clock:         clock.System(),
		historyCap:    diag.DefaultHistoryCapacity,
		longThreshold: diag.DefaultLongDisconnectThreshold,
	}
	for _, opt := range opts {
		opt(&o)
	}

	id := uuid.NewString()
	logger := o.logger
	if logger != nil {
		logger = logger.With("client_id", id)
	}

	d, err := diag.New(diag.Config{
		HistoryCapacity:         o.historyCap,
		LongDisconnectThreshold: o.longThreshold,
		Clock:                   o.clock,
		Logger:                  logger,
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		id:          id,
		logger:      logger,
		diagnostics: d,
	}, nil
}

// ID returns the client's unique instance ID.
func (c *Client) ID() string { return c.id }

// Diagnostics returns the client's diagnostics facade. The facade lives
// exactly as long as the client.
func (c *Client) Diagnostics() *diag.Diagnostics { return c.diagnostics }

// Close releases the client. Diagnostics hold no external resources, so
// Close exists for lifecycle symmetry and future transport teardown.
func (c *Client) Close() error { return nil }
