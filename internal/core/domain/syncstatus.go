package domain

import "time"

// SyncState identifies where the sync pipeline currently is.
type SyncState string

// Sync pipeline states.
const (
	// SyncIdle means no sync is running and the last one, if any, succeeded.
	SyncIdle SyncState = "idle"

	// SyncRunning means a refresh is currently in flight.
	SyncRunning SyncState = "running"

	// SyncFailed means the last refresh failed; the previously published
	// snapshot remains authoritative.
	SyncFailed SyncState = "failed"
)

// IsValid returns true if the state is recognised.
func (s SyncState) IsValid() bool {
	switch s {
	case SyncIdle, SyncRunning, SyncFailed:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s SyncState) String() string {
	return string(s)
}

// SyncStatus is the observable state of the sync engine. Exactly one
// logical instance exists; transitions drive loading indicators.
type SyncStatus struct {
	// State is the current pipeline state.
	State SyncState

	// Err carries the failure cause when State is SyncFailed, nil otherwise.
	Err error

	// LastSync is when the last successful refresh completed.
	// Zero if no refresh has succeeded yet.
	LastSync time.Time
}
