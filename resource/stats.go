package resource

import "sync/atomic"

// Stats is an Observer that counts lifecycle events.
// Subscribe it to a table to detect leaks and double releases.
type Stats struct {
	created    atomic.Int64
	dropped    atomic.Int64
	staleDrops atomic.Int64
}

// StatsSnapshot is a point-in-time copy of Stats counters.
type StatsSnapshot struct {
	Created    int64
	Dropped    int64
	StaleDrops int64
}

// Live returns the number of resources created and not yet dropped.
func (s StatsSnapshot) Live() int64 {
	return s.Created - s.Dropped
}

// OnResourceEvent implements Observer.
func (s *Stats) OnResourceEvent(e Event) {
	switch e.Type {
	case EventCreated:
		s.created.Add(1)
	case EventDropped:
		s.dropped.Add(1)
	case EventStaleDrop:
		s.staleDrops.Add(1)
	}
}

// Snapshot returns the current counters.
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Created:    s.created.Load(),
		Dropped:    s.dropped.Load(),
		StaleDrops: s.staleDrops.Load(),
	}
}
