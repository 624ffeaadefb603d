package coro

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Stack is a private execution stack region with a low-address guard page.
//
// It is a genuine memory mapping obtained via mmap/mprotect, sized
// requested+pageSize, with the lowest page marked PROT_NONE. Touching that
// page faults the process immediately rather than silently corrupting
// adjacent memory; the runtime does not (and cannot, from pure Go) catch
// that fault, matching the documented boundary behavior.
//
// A Stack is not actually used as the execution stack of the goroutine
// driving its coroutine — Go does not expose stack-pointer control to
// user code — but it is allocated, guarded, and released exactly as a
// native implementation's stack would be, so pool-reuse accounting and
// allocation-failure behavior are real rather than simulated.
type Stack struct {
	region []byte
	size   int
}

// newStack maps a region of size+pageSize bytes and guards its lowest page.
func newStack(size int) (Stack, error) {
	if size <= 0 {
		size = DefaultStackSize
	}
	pageSize := unix.Getpagesize()
	total := size + pageSize
	region, err := unix.Mmap(-1, 0, total, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return Stack{}, fmt.Errorf("mmap %d bytes: %w", total, err)
	}
	if err := unix.Mprotect(region[:pageSize], unix.PROT_NONE); err != nil {
		_ = unix.Munmap(region)
		return Stack{}, fmt.Errorf("mprotect guard page: %w", err)
	}
	return Stack{region: region, size: size}, nil
}

// initialTop returns the highest 16-byte-aligned address in the mapping,
// the point a native implementation would seed as the fresh stack pointer.
func (s Stack) initialTop() uintptr {
	if len(s.region) == 0 {
		return 0
	}
	top := uintptr(unsafe.Pointer(&s.region[len(s.region)-1]))
	return top &^ 15
}

// Size returns the usable (non-guard-page) size this Stack was allocated
// with, the value a reused Stack from a [StackPool] reports back as-is.
func (s Stack) Size() int { return s.size }

// valid reports whether the Stack still owns a live mapping.
func (s Stack) valid() bool { return s.region != nil }

// free unmaps the region. Called by [StackPool.Put] when the pool is at
// capacity, and by anything discarding a Stack outright.
func (s Stack) free() error {
	if s.region == nil {
		return nil
	}
	return unix.Munmap(s.region)
}
