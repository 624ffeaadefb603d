package coro

import "runtime"

// LifecycleState is a [Coroutine]'s position in its NotStarted → Running →
// Terminated lifecycle.
type LifecycleState int32

const (
	NotStarted LifecycleState = iota
	Running
	Terminated
)

func (s LifecycleState) String() string {
	switch s {
	case NotStarted:
		return "NotStarted"
	case Running:
		return "Running"
	case Terminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}

// Yielder is the capability an entry closure uses to suspend its
// [Coroutine]. It is passed explicitly as an argument rather than fetched
// from thread-local-style ambient state: the entry closure's signature is
// the coroutine's dynamic scope, enforced by the compiler instead of by
// convention.
//
// Yielder closes over the coroutine's internal [coroCore], never over the
// [Coroutine] handle itself — see coroCore's doc comment for why that
// split matters.
type Yielder struct {
	core *coroCore
}

// Yield suspends the calling coroutine, recording p as the promise the
// driver should inspect. Control returns to this call only once the
// driver resumes the coroutine again.
func (y *Yielder) Yield(p *Promise) {
	y.core.yieldNow(p)
}

// coroCore is a coroutine's internal state: everything its own goroutine
// (runCore, yieldNow) and its [Yielder] touch.
//
// It is split out from [Coroutine] so that a finalizer on the
// driver-facing handle can actually detect a forgotten, still-parked
// coroutine. A coroutine's goroutine blocks on <-core.resumeCh for as long
// as it is parked, which keeps core reachable (it's a GC root via that
// goroutine's stack) regardless of what the driver does. If the finalizer
// were attached to an object the running goroutine also references —
// including the [Coroutine] handle itself, were it the receiver of
// runCore/yieldNow — it could never fire while that goroutine exists,
// which is exactly the "driver forgot about a parked coroutine" case leak
// detection exists to catch. Attaching the finalizer to the handle
// instead, and keeping the handle out of the running goroutine's closure
// chain entirely, lets the handle become unreachable (and finalized) the
// moment the driver drops its last reference, independent of core's
// goroutine still being parked.
type coroCore struct {
	stack   Stack
	entry   func(*Yielder)
	state   LifecycleState
	yielded *Promise
	failure any

	resumeCh chan struct{}
	yieldCh  chan struct{}

	// resultValue and resultErr are set up by [Scheduler.PrepareCoroutine];
	// a plain [Scheduler.StartCoroutine] coroutine never populates them.
	resultValue any
	resultErr   error
}

// Coroutine is a driver-facing handle to an independently resumable flow
// of control with its own [Stack]. Its body runs on a dedicated goroutine
// that rendezvous with the driver over a pair of unbuffered channels — the
// Go-native stand-in for a machine-level context switch.
//
// Coroutine itself holds only a pointer to its [coroCore] plus fields the
// driver alone reads or writes; it is deliberately never referenced by the
// coroutine's own goroutine (see coroCore's doc comment).
type Coroutine struct {
	core *coroCore

	onLeak func()

	// onValueDone is set up by [Scheduler.PrepareCoroutine]; it lives on
	// the handle rather than on core because it is only ever read by the
	// driver, after the coroutine's goroutine has already exited.
	onValueDone func(value any, err error)
}

// New constructs a Coroutine owning stack, running entry at first Resume.
func New(stack Stack, entry func(*Yielder)) *Coroutine {
	core := &coroCore{
		stack:    stack,
		entry:    entry,
		state:    NotStarted,
		resumeCh: make(chan struct{}),
		yieldCh:  make(chan struct{}),
	}
	c := &Coroutine{core: core}
	runtime.SetFinalizer(c, func(c *Coroutine) {
		if c.core.state != Terminated && c.onLeak != nil {
			c.onLeak()
		}
	})
	return c
}

// Resume dispatches on the coroutine's lifecycle state:
//
//   - NotStarted: starts the coroutine's goroutine and waits for its first
//     yield or termination.
//   - Running: hands control back to the coroutine's goroutine and waits
//     for its next yield or termination.
//   - Terminated: returns nil immediately.
//
// If the coroutine terminated by panicking, the captured value is
// re-raised here, wrapped in [CoroutinePanic].
func (c *Coroutine) Resume() *Promise {
	core := c.core
	switch core.state {
	case Terminated:
		return nil
	case NotStarted:
		core.state = Running
		go runCore(core)
		<-core.yieldCh
	default:
		core.resumeCh <- struct{}{}
		<-core.yieldCh
	}

	yielded := core.yielded
	core.yielded = nil

	if core.state == Terminated && core.failure != nil {
		f := core.failure
		core.failure = nil
		panic(&CoroutinePanic{Value: f})
	}
	return yielded
}

// runCore is the coroutine's dedicated goroutine body. It closes only over
// core, never over a [Coroutine] handle, so a handle can become
// unreachable — and finalized — independent of this goroutine's own
// lifetime. Any panic from entry is captured rather than crashing the
// process — unwinding across this channel-based "context switch" is no
// more supported than it would be across a machine-level one.
func runCore(core *coroCore) {
	defer func() {
		if r := recover(); r != nil {
			core.failure = r
		}
		core.state = Terminated
		core.yielded = nil
		core.yieldCh <- struct{}{}
	}()

	y := &Yielder{core: core}
	entry := core.entry
	core.entry = nil
	entry(y)
}

// yieldNow is the coroutine-side half of a suspend: record the promise,
// hand control back to the driver, block until resumed.
func (core *coroCore) yieldNow(p *Promise) {
	core.yielded = p
	core.yieldCh <- struct{}{}
	<-core.resumeCh
}

// TakeStack reclaims the coroutine's Stack. Legal only once the coroutine
// has terminated; panics otherwise. Returns ok=false if the stack was
// already taken — a Stack may be reclaimed exactly once.
func (c *Coroutine) TakeStack() (stack Stack, ok bool) {
	if c.core.state != Terminated {
		panic(misuse("Coroutine.TakeStack", "coroutine has not terminated"))
	}
	if !c.core.stack.valid() {
		return Stack{}, false
	}
	s := c.core.stack
	c.core.stack = Stack{}
	return s, true
}

// State reports the coroutine's current lifecycle state.
func (c *Coroutine) State() LifecycleState { return c.core.state }
