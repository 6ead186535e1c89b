// Package diag is the client-side diagnostics core of the Nexbase SDK.
//
// It records two kinds of client health data without depending on any
// external telemetry system:
//
//   - PerformanceTimeline: an append-only log of instrumentation marks and
//     measures, queryable by name or type, with explicit clearing.
//
//   - DisconnectLedger: a connected/disconnected state machine plus a
//     bounded FIFO history of completed outages.
//
// Diagnostics composes both into one object owned by the client for its
// entire lifetime. The transport layer reports connectivity transitions to
// the ledger, SDK subsystems mark and measure around the work they
// instrument, and applications read either handle at any time; all three
// surfaces are safe to use concurrently.
package diag
