package coro

// promiseState is a [Promise]'s position in its Waiting → Started
// lifecycle. Unlike an event-loop Promise/A+ implementation, this promise
// carries no value and no rejection reason: it is a pure one-shot signal,
// with value transport layered on top by [ValuePromise] or the embedder.
type promiseState int32

const (
	promiseWaiting promiseState = iota
	promiseStarted
)

// Initializer is a deferred, exactly-once callable that arranges for the
// given [NotifyHandle] to be notified when some external event completes.
// It is free to retain the handle across any number of goroutine hops,
// including handing it to another goroutine after converting it with
// [NotifyHandle.IntoSendable], and to call [NotifyHandle.Notify]
// synchronously if the event has already completed.
type Initializer func(NotifyHandle)

// Promise is a one-shot suspension token: either already Started (no
// suspension needed) or Waiting on a deferred [Initializer] that will
// receive a [NotifyHandle] once the scheduler begins it.
//
// A Promise is created by a coroutine, yielded by reference via
// [Yielder.Yield], and is meaningful only until the coroutine that created
// it resumes past the yield point.
type Promise struct {
	state promiseState
	init  Initializer
}

// NewPromise constructs a Waiting Promise wrapping init.
func NewPromise(init Initializer) *Promise {
	if init == nil {
		panic(misuse("NewPromise", "initializer must not be nil"))
	}
	return &Promise{state: promiseWaiting, init: init}
}

// NewStartedPromise constructs an already-Started Promise: yielding it is
// semantically just a reschedule, with no suspension.
func NewStartedPromise() *Promise {
	return &Promise{state: promiseStarted}
}

// IsStarted reports whether the Promise needs no suspension.
func (p *Promise) IsStarted() bool {
	return p.state == promiseStarted
}

// PromiseBegin is the result of [Promise.BuildBegin]: the extracted,
// not-yet-invoked initializer, waiting for a [NotifyHandle] to run with.
type PromiseBegin struct {
	init Initializer
}

// BuildBegin transitions a Waiting promise to Started and returns its
// initializer, ready to [PromiseBegin.Run]. Legal only on a Waiting
// promise that has not already been begun; panics otherwise, since calling
// it twice is a programmer error, not a runtime condition.
func (p *Promise) BuildBegin() *PromiseBegin {
	if p.state != promiseWaiting || p.init == nil {
		panic(misuse("Promise.BuildBegin", "promise is not in the Waiting state"))
	}
	init := p.init
	p.init = nil
	p.state = promiseStarted
	return &PromiseBegin{init: init}
}

// Run consumes the PromiseBegin and the handle, invoking the initializer
// with it. Calling Run twice on the same PromiseBegin panics.
func (b *PromiseBegin) Run(h NotifyHandle) {
	if b.init == nil {
		panic(misuse("PromiseBegin.Run", "already run"))
	}
	init := b.init
	b.init = nil
	init(h)
}
