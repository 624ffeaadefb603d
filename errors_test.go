package coro

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAPIMisuseError_IsErrAPIMisuse(t *testing.T) {
	err := misuse("Thing.Op", "bad call")
	require.ErrorIs(t, err, ErrAPIMisuse)
	require.Contains(t, err.Error(), "Thing.Op")
	require.Contains(t, err.Error(), "bad call")
}

func TestStackAllocError_IsErrStackAlloc(t *testing.T) {
	cause := errors.New("mmap: cannot allocate memory")
	err := &StackAllocError{Size: 4096, Err: cause}

	require.ErrorIs(t, err, ErrStackAlloc)
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "4096")
}

func TestCoroutinePanic_NonErrorValueUnwrapsToNil(t *testing.T) {
	cp := &CoroutinePanic{Value: "boom"}
	require.Nil(t, cp.Unwrap())
	require.Contains(t, cp.Error(), "boom")
}

func TestCoroutinePanic_ErrorValueUnwraps(t *testing.T) {
	cause := errors.New("boom")
	cp := &CoroutinePanic{Value: cause}

	require.ErrorIs(t, cp, cause)
	require.Contains(t, cp.Error(), "boom")
}
