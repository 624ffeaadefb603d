package coro

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValuePromise_TakeValueBeforeResolveIsNotOk(t *testing.T) {
	vp := NewValuePromise(func(NotifyHandle) {})

	_, _, ok := vp.TakeValue()
	require.False(t, ok)
}

func TestValuePromise_ResolveThenTakeValue(t *testing.T) {
	vp := NewValuePromise(func(NotifyHandle) {})

	vp.resolve(42, nil)

	value, err, ok := vp.TakeValue()
	require.True(t, ok)
	require.Equal(t, 42, value)
	require.NoError(t, err)
}

func TestValuePromise_ResolveWithErr(t *testing.T) {
	vp := NewValuePromise(func(NotifyHandle) {})
	cause := errors.New("failed")

	vp.resolve(nil, cause)

	value, err, ok := vp.TakeValue()
	require.True(t, ok)
	require.Nil(t, value)
	require.Equal(t, cause, err)
}

func TestValuePromise_DoubleResolvePanics(t *testing.T) {
	vp := NewValuePromise(func(NotifyHandle) {})
	vp.resolve(1, nil)

	require.Panics(t, func() {
		vp.resolve(2, nil)
	})
}
