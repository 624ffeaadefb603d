package coro

import (
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestStack(t *testing.T) Stack {
	t.Helper()
	s, err := newStack(DefaultStackSize)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.free() })
	return s
}

// S1 — single yield value observable.
func TestCoroutine_SingleYieldThenTerminate(t *testing.T) {
	co := New(newTestStack(t), func(y *Yielder) {
		y.Yield(NewStartedPromise())
	})

	p := co.Resume()
	require.NotNil(t, p)
	require.True(t, p.IsStarted())

	p = co.Resume()
	require.Nil(t, p)
	require.Equal(t, Terminated, co.State())
}

// Invariant 1: after resume returns nil, further resumes return nil;
// take_stack returns Some exactly once, then None.
func TestCoroutine_ResumeAfterTerminatedIsIdempotent(t *testing.T) {
	co := New(newTestStack(t), func(y *Yielder) {})

	require.Nil(t, co.Resume())
	require.Nil(t, co.Resume())
	require.Nil(t, co.Resume())

	_, ok := co.TakeStack()
	require.True(t, ok)
	_, ok = co.TakeStack()
	require.False(t, ok)
}

// Invariant 2: the pointer returned by Resume equals the promise passed to
// the corresponding Yield.
func TestCoroutine_YieldedPromiseIdentity(t *testing.T) {
	want := NewStartedPromise()
	co := New(newTestStack(t), func(y *Yielder) {
		y.Yield(want)
	})

	got := co.Resume()
	require.Same(t, want, got)
	co.Resume() // let the coroutine's goroutine finish so goleak checks in later tests see no leftover
}

// Boundary: a coroutine that yields zero times terminates on first resume.
func TestCoroutine_ZeroYields(t *testing.T) {
	ran := false
	co := New(newTestStack(t), func(y *Yielder) {
		ran = true
	})

	p := co.Resume()
	require.Nil(t, p)
	require.True(t, ran)
}

func TestCoroutine_TakeStackBeforeTerminationPanics(t *testing.T) {
	co := New(newTestStack(t), func(y *Yielder) {
		y.Yield(NewStartedPromise())
	})
	co.Resume()

	require.PanicsWithValue(t, misuse("Coroutine.TakeStack", "coroutine has not terminated"), func() {
		co.TakeStack()
	})
	co.Resume() // let the coroutine's goroutine finish so goleak checks in later tests see no leftover
}

// S3 — panic capture: Resume re-raises the coroutine's panic, wrapped.
func TestCoroutine_PanicIsCapturedAndReraised(t *testing.T) {
	co := New(newTestStack(t), func(y *Yielder) {
		panic("boom")
	})

	require.PanicsWithValue(t, true, func() {
		defer func() {
			r := recover()
			cp, ok := r.(*CoroutinePanic)
			require.True(t, ok)
			require.Equal(t, "boom", cp.Value)
			panic(ok)
		}()
		co.Resume()
	})
	require.Equal(t, Terminated, co.State())
}

func TestCoroutinePanic_UnwrapsErrorValue(t *testing.T) {
	cause := errors.New("root cause")
	cp := &CoroutinePanic{Value: cause}
	require.ErrorIs(t, cp, cause)
}

// Leak detection must fire for a coroutine parked mid-run — goroutine
// blocked forever on an un-notified Waiting promise — not merely a
// NotStarted one never Resumed at all: that parked-forever case is
// exactly the "driver forgot about it" scenario the finalizer exists to
// catch. Once the finalizer has fired, the parked goroutine is released
// through its core (which holds no reference back to the handle), so it
// does not outlive this test and trip goleak checks in later tests.
func TestCoroutine_LeakFinalizerFiresForParkedCoroutine(t *testing.T) {
	leaked := make(chan struct{}, 1)
	var core *coroCore

	func() {
		co := New(newTestStack(t), func(y *Yielder) {
			y.Yield(NewPromise(func(NotifyHandle) {}))
		})
		core = co.core
		co.onLeak = func() {
			select {
			case leaked <- struct{}{}:
			default:
			}
		}
		co.Resume() // starts the goroutine, parks it on an un-notified Waiting promise
		// co, the only reference to the handle, goes out of scope here.
	}()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		runtime.GC()
		select {
		case <-leaked:
			core.resumeCh <- struct{}{}
			<-core.yieldCh
			return
		case <-time.After(20 * time.Millisecond):
		}
	}
	t.Fatal("leak finalizer never fired for a dropped, still-parked coroutine")
}
