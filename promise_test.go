package coro

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPromise_StartedNeedsNoBegin(t *testing.T) {
	p := NewStartedPromise()
	require.True(t, p.IsStarted())
}

func TestPromise_BuildBeginTransitionsToStarted(t *testing.T) {
	var ranWith NotifyHandle
	p := NewPromise(func(h NotifyHandle) {
		ranWith = h
	})
	require.False(t, p.IsStarted())

	begin := p.BuildBegin()
	require.True(t, p.IsStarted())

	h := NotifyHandle{}
	begin.Run(h)
	require.Equal(t, h, ranWith)
}

func TestPromise_DoubleBuildBeginPanics(t *testing.T) {
	p := NewPromise(func(NotifyHandle) {})
	p.BuildBegin()

	require.Panics(t, func() {
		p.BuildBegin()
	})
}

func TestPromise_BuildBeginOnStartedPanics(t *testing.T) {
	p := NewStartedPromise()
	require.Panics(t, func() {
		p.BuildBegin()
	})
}

func TestPromiseBegin_DoubleRunPanics(t *testing.T) {
	p := NewPromise(func(NotifyHandle) {})
	begin := p.BuildBegin()
	begin.Run(NotifyHandle{})

	require.Panics(t, func() {
		begin.Run(NotifyHandle{})
	})
}
