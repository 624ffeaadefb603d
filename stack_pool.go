package coro

// StackPool is a bounded free-list of reusable [Stack] values, owned by a
// [Scheduler]'s shared state. It requires no locking of its own: the
// scheduler thread is its sole caller.
type StackPool struct {
	free        []Stack
	stackSize   int
	maxPoolSize int
	allocs      int
}

// NewStackPool constructs a StackPool that allocates stacks of stackSize
// bytes and retains at most maxPoolSize idle stacks for reuse.
func NewStackPool(stackSize, maxPoolSize int) *StackPool {
	if stackSize <= 0 {
		stackSize = DefaultStackSize
	}
	if maxPoolSize <= 0 {
		maxPoolSize = DefaultMaxPoolSize
	}
	return &StackPool{stackSize: stackSize, maxPoolSize: maxPoolSize}
}

// Get pops an idle Stack off the pool or allocates a fresh one of the
// pool's default size.
func (p *StackPool) Get() (Stack, error) {
	if n := len(p.free); n > 0 {
		s := p.free[n-1]
		p.free[n-1] = Stack{}
		p.free = p.free[:n-1]
		return s, nil
	}
	s, err := newStack(p.stackSize)
	if err != nil {
		return Stack{}, &StackAllocError{Size: p.stackSize, Err: err}
	}
	p.allocs++
	return s, nil
}

// Put returns a terminated coroutine's Stack to the pool if there is
// capacity, otherwise unmaps it immediately.
func (p *StackPool) Put(s Stack) {
	if !s.valid() {
		return
	}
	if len(p.free) < p.maxPoolSize {
		p.free = append(p.free, s)
		return
	}
	_ = s.free()
}

// Len reports the number of idle stacks currently retained.
func (p *StackPool) Len() int { return len(p.free) }

// Allocs reports how many times Get has fallen through to a real
// newStack call, as opposed to reusing a pooled Stack.
func (p *StackPool) Allocs() int { return p.allocs }
