package coro

import "sync/atomic"

// schedulerMetrics holds the atomic counters a [Scheduler] updates as it
// runs. It is deliberately minimal compared to a full-blown event loop's
// metrics surface, but a scheduler embedded in a larger host still
// benefits from basic occupancy counters.
type schedulerMetrics struct {
	steps      atomic.Int64
	started    atomic.Int64
	terminated atomic.Int64
}

// Metrics is a point-in-time snapshot of [Scheduler.Metrics].
type Metrics struct {
	// Steps is the number of times the scheduler has resumed a coroutine.
	Steps int64
	// Started is the number of coroutines ever started via
	// [Scheduler.StartCoroutine] or [Scheduler.PrepareCoroutine].
	Started int64
	// Terminated is the number of coroutines that have run to completion
	// (normally or via a captured panic).
	Terminated int64
}
