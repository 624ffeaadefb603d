// Package coro provides a stackful-style coroutine runtime with a
// cooperative scheduler and promise-based suspension.
//
// # Architecture
//
// A [Coroutine] is an independently resumable flow of control, created with
// [New] from an entry closure. The closure receives a [Yielder] it uses to
// suspend itself on a [Promise]. A [Scheduler] owns a FIFO ready queue of
// coroutines, drives them via [Scheduler.Run], and interprets what each one
// yields: an already-started promise ([Promise.IsStarted]) means "reschedule
// me", a still-waiting one is handed a [NotifyHandle] that re-enqueues the
// coroutine when invoked.
//
// Every coroutine owns a [Stack]: a real guard-paged memory mapping obtained
// from a [StackPool], so the runtime's stack-allocation and stack-reuse
// behavior can be observed and bounded exactly as a native implementation's
// would be, even though the coroutine body actually executes on its own
// dedicated goroutine rather than atop that mapping (hand-written assembly
// context switching is out of scope; see the package comment for
// [platform.Switcher]).
//
// # Cross-thread wake-up
//
// External work (timers, I/O, other goroutines) completes by calling
// [NotifyHandle.Notify]. A handle created on the scheduler's own goroutine
// must first be converted with [NotifyHandle.IntoSendable] before it is
// invoked from any other goroutine.
//
// # Usage
//
//	sched := coro.NewScheduler(coro.Config{})
//	sched.StartCoroutine(func(y *coro.Yielder) {
//	    fmt.Println("hello from a coroutine")
//	    y.Yield(coro.NewStartedPromise())
//	    fmt.Println("resumed")
//	    sched.Terminate()
//	})
//	sched.Run()
//
// # Error types
//
//   - [APIMisuseError]: programmer errors (double BuildBegin, TakeStack on a
//     non-terminated coroutine, double ValuePromise resolve) — these panic
//     immediately, they are not recoverable runtime conditions.
//   - [StackAllocError]: wraps an underlying mmap/mprotect failure.
//   - a captured coroutine panic is re-raised on the driver side by
//     [Coroutine.Resume], wrapped so [errors.Unwrap] recovers the original
//     value when it was an error.
//   - a coroutine dropped before it terminates has no deterministic point
//     at which to panic: Go collects it at an arbitrary future GC, on a
//     separate finalizer goroutine, where a panic would crash the process
//     rather than signal the embedder. This case is instead reported
//     best-effort: a finalizer logs at [LevelWarn] through the owning
//     [Scheduler]'s [Logger] (see [WithLogger]) and the coroutine's [Stack]
//     is leaked.
package coro
