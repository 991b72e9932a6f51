package resilience

import "time"

// Option configures the executor.
type Option func(*ExecutorConfig)

// WithMaxConcurrent sets the maximum concurrent executions.
func WithMaxConcurrent(n int) Option {
	return func(c *ExecutorConfig) {
		c.MaxConcurrent = n
	}
}

// WithMaxQueue sets how many calls may wait for a slot.
func WithMaxQueue(n int) Option {
	return func(c *ExecutorConfig) {
		c.MaxQueue = n
	}
}

// WithRetryAttempts sets the maximum retry attempts.
func WithRetryAttempts(n int) Option {
	return func(c *ExecutorConfig) {
		c.RetryMaxAttempts = n
	}
}

// WithRetryDelay sets the initial retry delay.
func WithRetryDelay(d time.Duration) Option {
	return func(c *ExecutorConfig) {
		c.RetryInitialDelay = d
	}
}

// WithTimeout sets how long a call may wait before it starts.
func WithTimeout(d time.Duration) Option {
	return func(c *ExecutorConfig) {
		c.Timeout = d
	}
}

// WithClassifier sets the transient error classifier.
func WithClassifier(fn Classifier) Option {
	return func(c *ExecutorConfig) {
		c.IsTransient = fn
	}
}

// NewExecutorWithOptions creates an executor with the given options.
func NewExecutorWithOptions(opts ...Option) *Executor {
	config := DefaultExecutorConfig()
	for _, opt := range opts {
		opt(&config)
	}
	return NewExecutor(config)
}
