// Package coro: typed errors, with cause chain support.
package coro

import (
	"errors"
	"fmt"
)

// ErrAPIMisuse is the sentinel matched by [errors.Is] against every
// [APIMisuseError]. Misuse errors are programmer errors, not runtime
// conditions: callers are expected to let them panic rather than recover.
var ErrAPIMisuse = errors.New("coro: api misuse")

// APIMisuseError reports a violation of a component's single-use or
// lifecycle contract: a double [PromiseBegin] on a promise,
// [Coroutine.TakeStack] called before termination, or a [ValuePromise]
// resolved twice.
//
// Dropping a coroutine before it terminates is not one of these cases: Go
// gives no deterministic point at which to observe the drop and panic, so
// it is instead reported best-effort and asynchronously, via a GC
// finalizer and the owning [Scheduler]'s [Logger] (see the package doc's
// "Error types" section).
type APIMisuseError struct {
	Op      string
	Message string
}

func (e *APIMisuseError) Error() string {
	return fmt.Sprintf("coro: %s: %s", e.Op, e.Message)
}

func (e *APIMisuseError) Unwrap() error {
	return ErrAPIMisuse
}

func misuse(op, message string) *APIMisuseError {
	return &APIMisuseError{Op: op, Message: message}
}

// ErrStackAlloc is the sentinel matched by [errors.Is] against every
// [StackAllocError].
var ErrStackAlloc = errors.New("coro: stack allocation failed")

// StackAllocError wraps a failure to map (or guard) a coroutine stack,
// surfaced to the caller of [Scheduler.StartCoroutine] /
// [Scheduler.PrepareCoroutine].
type StackAllocError struct {
	Size int
	Err  error
}

func (e *StackAllocError) Error() string {
	return fmt.Sprintf("coro: allocate %d-byte stack: %v", e.Size, e.Err)
}

func (e *StackAllocError) Unwrap() error {
	return e.Err
}

func (e *StackAllocError) Is(target error) bool {
	return target == ErrStackAlloc
}

// CoroutinePanic wraps a value recovered from a panic inside a coroutine's
// entry closure. [Coroutine.Resume] re-raises it (via panic) on the driver's
// goroutine at the next resume past the point of failure; [ValuePromise]
// instead surfaces it as the Err half of its result, letting the embedder
// choose whether to re-raise.
//
// [errors.Unwrap] recovers the original value when it was itself an error,
// so [errors.Is] / [errors.As] see through the wrapper.
type CoroutinePanic struct {
	Value any
}

func (e *CoroutinePanic) Error() string {
	if err, ok := e.Value.(error); ok {
		return fmt.Sprintf("coro: coroutine panic: %v", err)
	}
	return fmt.Sprintf("coro: coroutine panic: %v", e.Value)
}

func (e *CoroutinePanic) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
