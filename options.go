package coro

const (
	// DefaultStackSize is the stack size used when a [Config] leaves
	// DefaultStackSize unset.
	DefaultStackSize = 64 * 1024
	// DefaultMaxPoolSize is the pool bound used when a [Config] leaves
	// MaxPoolSize unset.
	DefaultMaxPoolSize = 32
)

// Config configures a [Scheduler]. It is a plain in-process value: there is
// no wire protocol and no persisted configuration.
type Config struct {
	// DefaultStackSize is the size (in bytes, excluding the guard page) that
	// the scheduler's [StackPool] allocates for a fresh [Stack]. Zero
	// selects [DefaultStackSize].
	DefaultStackSize int
	// MaxPoolSize bounds how many idle stacks the scheduler's [StackPool]
	// retains for reuse. Zero selects [DefaultMaxPoolSize].
	MaxPoolSize int
}

func (c Config) withDefaults() Config {
	if c.DefaultStackSize <= 0 {
		c.DefaultStackSize = DefaultStackSize
	}
	if c.MaxPoolSize <= 0 {
		c.MaxPoolSize = DefaultMaxPoolSize
	}
	return c
}

// schedulerOptions holds configuration set via [SchedulerOption], layered on
// top of [Config] for the ambient, non-spec concerns (logging).
type schedulerOptions struct {
	logger Logger
}

// SchedulerOption configures ambient (non-spec) Scheduler behavior, such as
// the [Logger] used for swallowed per-coroutine failures.
type SchedulerOption interface {
	applyScheduler(*schedulerOptions)
}

type schedulerOptionFunc func(*schedulerOptions)

func (f schedulerOptionFunc) applyScheduler(o *schedulerOptions) { f(o) }

// WithLogger sets the [Logger] a [Scheduler] uses to report failures caught
// around [Coroutine.Resume]: logged and swallowed, not fatal to the
// scheduler loop.
func WithLogger(l Logger) SchedulerOption {
	return schedulerOptionFunc(func(o *schedulerOptions) {
		o.logger = l
	})
}

func resolveSchedulerOptions(opts []SchedulerOption) schedulerOptions {
	cfg := schedulerOptions{logger: NewNoOpLogger()}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyScheduler(&cfg)
	}
	return cfg
}
