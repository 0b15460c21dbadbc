package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	// From the local store it marks the first-ever launch (no persisted
	// catalog yet) and is an expected condition, not a failure.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNetwork indicates a transient network failure (timeout,
	// connection refused). Safe to retry.
	ErrNetwork = errors.New("network failure")

	// ErrRemote indicates the remote service rejected the request.
	// Not retried beyond the gateway's bounded backoff.
	ErrRemote = errors.New("remote service error")

	// ErrStorage indicates a local persistence failure. Fatal to the
	// current operation, but prior persisted state stays intact.
	ErrStorage = errors.New("storage failure")

	// ErrSyncInProgress indicates a sync is already running.
	// Callers normally never see it: concurrent refreshes coalesce
	// onto the in-flight operation instead.
	ErrSyncInProgress = errors.New("sync in progress")
)
