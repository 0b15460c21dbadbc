package services

import (
	"sync"
	"sync/atomic"

	"github.com/forgeworks-labs/craftdex-cli/internal/core/domain"
	"github.com/forgeworks-labs/craftdex-cli/internal/core/ports/driving"
)

// subscriberBuffer is the per-subscriber event channel capacity.
// A subscriber that falls this far behind loses intermediate events;
// it always receives the latest one eventually.
const subscriberBuffer = 16

// SnapshotCache holds the current published snapshot and sync status
// and fans changes out to subscribers.
//
// The snapshot lives behind an atomic pointer: a reader either sees the
// fully-old or fully-new snapshot, never a mix, and reads never block
// on a writer. No business logic lives here.
type SnapshotCache struct {
	snap atomic.Pointer[domain.Snapshot]

	mu      sync.RWMutex
	status  domain.SyncStatus
	subs    map[int]chan driving.SnapshotEvent
	nextSub int
}

// NewSnapshotCache creates an empty cache in the idle state.
func NewSnapshotCache() *SnapshotCache {
	return &SnapshotCache{
		status: domain.SyncStatus{State: domain.SyncIdle},
		subs:   make(map[int]chan driving.SnapshotEvent),
	}
}

// Snapshot returns the current snapshot, or nil before the first publish.
func (c *SnapshotCache) Snapshot() *domain.Snapshot {
	return c.snap.Load()
}

// Status returns the current sync status.
func (c *SnapshotCache) Status() domain.SyncStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

// Publish replaces the current snapshot and status atomically from the
// reader's point of view, then notifies subscribers.
func (c *SnapshotCache) Publish(snap *domain.Snapshot, status domain.SyncStatus) {
	c.snap.Store(snap)

	c.mu.Lock()
	c.status = status
	c.notifyLocked(driving.SnapshotEvent{Snapshot: snap, Status: status})
	c.mu.Unlock()
}

// SetStatus updates only the sync status, leaving the snapshot as is.
func (c *SnapshotCache) SetStatus(status domain.SyncStatus) {
	c.mu.Lock()
	c.status = status
	c.notifyLocked(driving.SnapshotEvent{Snapshot: c.snap.Load(), Status: status})
	c.mu.Unlock()
}

// Subscribe registers an observer. The returned cancel function
// unregisters it and closes the channel.
func (c *SnapshotCache) Subscribe() (<-chan driving.SnapshotEvent, func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	ch := make(chan driving.SnapshotEvent, subscriberBuffer)
	c.subs[id] = ch
	c.mu.Unlock()

	cancel := func() {
		c.mu.Lock()
		if sub, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(sub)
		}
		c.mu.Unlock()
	}
	return ch, cancel
}

// notifyLocked fans an event out without ever blocking the writer.
// Callers must hold c.mu.
func (c *SnapshotCache) notifyLocked(ev driving.SnapshotEvent) {
	for _, ch := range c.subs {
		select {
		case ch <- ev:
		default:
			// Subscriber is not keeping up; drop the event.
		}
	}
}
