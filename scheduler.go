package coro

import (
	"sync"
	"sync/atomic"
	"time"
)

// Scheduler is a single-threaded, cooperative run queue. It is pinned to
// whatever goroutine calls [Scheduler.Run] or [Scheduler.RunOnce]: every
// method that mutates the ready queue, the stack pool, or the tick counter
// is meant to be called from that goroutine (directly, or from the body of
// a coroutine it is currently resuming — which, by this package's
// rendezvous design, never runs concurrently with the driver goroutine).
// The only state genuinely shared across goroutines is the staging list,
// guarded by stagingMu.
type Scheduler struct {
	cfg  Config
	pool *StackPool

	ready []*Coroutine

	stagingMu sync.Mutex
	staging   []*Coroutine

	terminateRequested atomic.Bool

	tickCounter int
	idle        int

	logger  Logger
	metrics schedulerMetrics
}

// NewScheduler constructs a Scheduler with the given Config and options.
func NewScheduler(cfg Config, opts ...SchedulerOption) *Scheduler {
	cfg = cfg.withDefaults()
	resolved := resolveSchedulerOptions(opts)
	return &Scheduler{
		cfg:    cfg,
		pool:   NewStackPool(cfg.DefaultStackSize, cfg.MaxPoolSize),
		logger: resolved.logger,
	}
}

// NewDefaultScheduler constructs a Scheduler with default Config and no
// options.
func NewDefaultScheduler() *Scheduler {
	return NewScheduler(Config{})
}

// StartCoroutine allocates a stack, constructs a [Coroutine] running entry,
// and appends it to the ready queue tail.
func (s *Scheduler) StartCoroutine(entry func(*Yielder)) (*Coroutine, error) {
	stack, err := s.pool.Get()
	if err != nil {
		return nil, err
	}
	co := New(stack, entry)
	co.onLeak = s.leakWarning
	s.enqueueLocal(co)
	s.metrics.started.Add(1)
	return co, nil
}

// ValueEntry is the signature [Scheduler.PrepareCoroutine] accepts: an
// entry closure that produces a result or an error instead of returning
// nothing.
type ValueEntry func(*Yielder) (any, error)

// PrepareCoroutine is like [Scheduler.StartCoroutine], but wraps entry so
// its outcome (return value or panic) is delivered through the returned
// [ValuePromise] instead of being logged-and-swallowed by the scheduler
// loop.
func (s *Scheduler) PrepareCoroutine(entry ValueEntry) (*ValuePromise, error) {
	pending := &pendingNotify{}
	vp := NewValuePromise(func(h NotifyHandle) {
		if pending.done {
			h.Notify()
			return
		}
		pending.handle = &h
	})

	// wrapped stashes entry's outcome on y's core rather than closing over
	// the returned *Coroutine handle, so the handle stays out of the
	// coroutine's own goroutine closure chain (see coroCore's doc comment
	// in coroutine.go).
	wrapped := func(y *Yielder) {
		value, err := entry(y)
		y.core.resultValue = value
		y.core.resultErr = err
	}

	co, err := s.StartCoroutine(wrapped)
	if err != nil {
		return nil, err
	}
	co.onValueDone = func(value any, err error) {
		vp.resolve(value, err)
		pending.done = true
		if pending.handle != nil {
			pending.handle.Notify()
		}
	}
	return vp, nil
}

// pendingNotify bridges a [ValuePromise]'s initializer (run whenever a
// consumer yields on it) with the producer coroutine's eventual
// completion, whichever happens first. It needs no lock: both sides run
// on the scheduler's driver goroutine, never concurrently (see the
// [Scheduler] doc comment).
type pendingNotify struct {
	handle *NotifyHandle
	done   bool
}

// enqueueLocal appends co to the ready queue tail. Called from the
// scheduler's own goroutine only (a local [NotifyHandle], or internal
// bookkeeping); cross-goroutine wake-ups go through stageSendable instead.
func (s *Scheduler) enqueueLocal(co *Coroutine) {
	s.ready = append(s.ready, co)
}

// stageSendable pushes co into the mutex-guarded cross-thread staging
// list, drained into the ready queue every 60 scheduler ticks.
func (s *Scheduler) stageSendable(co *Coroutine) {
	s.stagingMu.Lock()
	s.staging = append(s.staging, co)
	s.stagingMu.Unlock()
}

func (s *Scheduler) drainStaging() {
	s.stagingMu.Lock()
	pending := s.staging
	s.staging = nil
	s.stagingMu.Unlock()
	if len(pending) > 0 {
		s.ready = append(s.ready, pending...)
	}
}

func (s *Scheduler) popReady() *Coroutine {
	if len(s.ready) == 0 {
		return nil
	}
	co := s.ready[0]
	s.ready[0] = nil
	s.ready = s.ready[1:]
	if len(s.ready) == 0 {
		s.ready = nil
	}
	return co
}

// Terminate requests that the scheduler stop once its ready queue is next
// observed empty, letting outstanding work complete first.
func (s *Scheduler) Terminate() {
	s.terminateRequested.Store(true)
}

// Run drives the scheduling loop until termination is requested and the
// ready queue is empty.
func (s *Scheduler) Run() {
	s.runLoop(-1)
}

// RunOnce drains at most maxSteps ready-queue pops and returns, for a host
// event loop that wants to interleave coroutine steps with its own work
// rather than block in [Scheduler.Run]. It still honors the global 60-tick
// staging drain and the termination flag.
func (s *Scheduler) RunOnce(maxSteps int) {
	s.runLoop(maxSteps)
}

// runLoop implements the scheduler's core loop. maxSteps<0 means unbounded
// (Run); maxSteps>=0 bounds how many ready-queue pops this call performs
// before returning control to the caller, which is also what happens as
// soon as the ready queue is observed empty.
func (s *Scheduler) runLoop(maxSteps int) {
	if maxSteps == 0 {
		return
	}
	steps := 0
	for {
		s.tickCounter = (s.tickCounter + 1) % 60
		if s.tickCounter == 0 {
			s.drainStaging()
		}

		term := s.terminateRequested.Load()
		co := s.popReady()
		if co == nil {
			if term {
				s.terminateRequested.Store(false)
				return
			}
			if maxSteps >= 0 {
				return
			}
			s.idleBackoff()
			continue
		}
		s.idle = 0

		s.step(co)

		if maxSteps >= 0 {
			steps++
			if steps >= maxSteps {
				return
			}
		}
	}
}

// idleBackoff is the scheduler's adaptive idle backoff: a tight spin for
// the first 100 empty iterations, then a sleep that grows (doubling, then
// by fixed increments) to bound worst-case wake latency under sustained
// idleness.
func (s *Scheduler) idleBackoff() {
	if s.idle < 100 {
		s.idle++
		return
	}
	time.Sleep(time.Duration(s.idle/1000) * time.Millisecond)
	switch {
	case s.idle < 5000:
		s.idle *= 2
	case s.idle < 50000:
		s.idle += 100
	}
}

// step resumes co and interprets what it yielded.
func (s *Scheduler) step(co *Coroutine) {
	var yielded *Promise
	var failure *CoroutinePanic
	func() {
		defer func() {
			if r := recover(); r != nil {
				failure = r.(*CoroutinePanic)
			}
		}()
		yielded = co.Resume()
	}()
	s.metrics.steps.Add(1)

	if failure != nil {
		s.finishTerminated(co, failure)
		return
	}
	if yielded == nil {
		s.finishTerminated(co, nil)
		return
	}
	if yielded.IsStarted() {
		s.enqueueLocal(co)
		return
	}

	begin := yielded.BuildBegin()
	begin.Run(newNotifyHandle(s, co))
}

func (s *Scheduler) finishTerminated(co *Coroutine, failure *CoroutinePanic) {
	if stack, ok := co.TakeStack(); ok {
		s.pool.Put(stack)
	}
	s.metrics.terminated.Add(1)

	if co.onValueDone != nil {
		if failure != nil {
			co.onValueDone(nil, failure)
		} else {
			co.onValueDone(co.core.resultValue, co.core.resultErr)
		}
		return
	}
	if failure != nil {
		s.logger.Log(LogEntry{
			Level:    LevelError,
			Category: "coroutine",
			Message:  "coroutine panicked; swallowed by scheduler loop",
			Err:      failure,
		})
	}
}

func (s *Scheduler) leakWarning() {
	s.logger.Log(LogEntry{
		Level:    LevelWarn,
		Category: "coroutine",
		Message:  "coroutine garbage collected before terminating; its stack was leaked",
	})
}

// RunValuePromiseToEnd starts a driver coroutine that yields on vp, calls
// [Scheduler.Terminate] once notified, then runs the scheduler to
// completion and returns vp's resolved value.
func (s *Scheduler) RunValuePromiseToEnd(vp *ValuePromise) (any, error) {
	if _, err := s.StartCoroutine(func(y *Yielder) {
		y.Yield(vp.Promise)
		s.Terminate()
	}); err != nil {
		return nil, err
	}
	s.Run()
	value, err, _ := vp.TakeValue()
	return value, err
}

// Metrics reports a snapshot of lightweight scheduler loop instrumentation.
func (s *Scheduler) Metrics() Metrics {
	return Metrics{
		Steps:      s.metrics.steps.Load(),
		Started:    s.metrics.started.Load(),
		Terminated: s.metrics.terminated.Load(),
	}
}
