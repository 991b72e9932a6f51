// Package resilience guards tool execution using fortify.
package resilience

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/felixgeelhaar/fortify/bulkhead"
	"github.com/felixgeelhaar/fortify/retry"

	"github.com/felixgeelhaar/agent-fs/domain/tool"
	"github.com/felixgeelhaar/agent-fs/infrastructure/logging"
)

// Classifier reports whether an error is transient and worth retrying.
type Classifier func(err error) bool

// Executor bounds concurrent tool executions, limits how long a call may wait
// for a slot, and retries transient failures of read-only or idempotent tools.
type Executor struct {
	bulkhead    bulkhead.Bulkhead[tool.Result]
	retry       retry.Retry[tool.Result]
	retries     bool
	timeout     time.Duration
	isTransient Classifier
}

// ExecutorConfig configures the resilient executor.
type ExecutorConfig struct {
	// MaxConcurrent limits concurrent tool executions. Zero means no limit.
	MaxConcurrent int

	// MaxQueue limits calls waiting for a slot. Calls beyond it are rejected
	// at once. Zero means MaxConcurrent.
	MaxQueue int

	// Timeout bounds the wait before a call starts. A call that has started
	// runs to completion. Zero means wait as long as the caller's context.
	Timeout time.Duration

	// RetryMaxAttempts is the total number of attempts for retryable tools.
	// Zero or one disables retries.
	RetryMaxAttempts int

	// RetryInitialDelay is the initial delay between retries.
	RetryInitialDelay time.Duration

	// RetryBackoffMultiplier is the exponential backoff multiplier.
	RetryBackoffMultiplier float64

	// IsTransient classifies errors. Defaults to TransientOSError.
	IsTransient Classifier
}

// DefaultExecutorConfig returns a configuration with sensible defaults.
func DefaultExecutorConfig() ExecutorConfig {
	return ExecutorConfig{
		MaxConcurrent:          16,
		Timeout:                30 * time.Second,
		RetryMaxAttempts:       3,
		RetryInitialDelay:      50 * time.Millisecond,
		RetryBackoffMultiplier: 2.0,
		IsTransient:            TransientOSError,
	}
}

// unboundedConcurrency stands in for "no limit" since the bulkhead needs a size.
const unboundedConcurrency = 1 << 20

// NewExecutor creates a new resilient executor.
func NewExecutor(config ExecutorConfig) *Executor {
	maxConcurrent := config.MaxConcurrent
	maxQueue := config.MaxQueue
	if maxConcurrent <= 0 {
		maxConcurrent = unboundedConcurrency
		maxQueue = 0
	} else if maxQueue <= 0 {
		maxQueue = maxConcurrent
	}
	multiplier := config.RetryBackoffMultiplier
	if multiplier <= 0 {
		multiplier = 2.0
	}
	classify := config.IsTransient
	if classify == nil {
		classify = TransientOSError
	}

	e := &Executor{
		// QueueTimeout stays unset: the fortify queue timer keeps running
		// after a queued call starts, so the wait is bounded in Execute.
		bulkhead: bulkhead.New[tool.Result](bulkhead.Config{
			MaxConcurrent: maxConcurrent,
			MaxQueue:      maxQueue,
		}),
		retries:     config.RetryMaxAttempts > 1,
		timeout:     config.Timeout,
		isTransient: classify,
	}
	if e.retries {
		e.retry = retry.New[tool.Result](retry.Config{
			MaxAttempts:   config.RetryMaxAttempts,
			InitialDelay:  config.RetryInitialDelay,
			BackoffPolicy: retry.BackoffExponential,
			Multiplier:    multiplier,
		})
	}
	return e
}

// NewDefaultExecutor creates an executor with default configuration.
func NewDefaultExecutor() *Executor {
	return NewExecutor(DefaultExecutorConfig())
}

// Call states for the bounded wait in Execute.
const (
	callWaiting int32 = iota
	callStarted
	callAbandoned
)

// Execute runs a tool with the guards applied.
// Composition order: Bulkhead (bounded wait) → Retry (read-only or idempotent only).
func (e *Executor) Execute(ctx context.Context, t tool.Tool, input json.RawMessage) (tool.Result, error) {
	start := time.Now()

	// Queued calls run on the bulkhead worker's goroutine.
	var state atomic.Int32
	var timedOut atomic.Bool

	waitCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if e.timeout > 0 {
		timer := time.AfterFunc(e.timeout, func() {
			if state.CompareAndSwap(callWaiting, callAbandoned) {
				timedOut.Store(true)
				cancel()
			}
		})
		defer timer.Stop()
	}

	result, err := e.bulkhead.Execute(waitCtx, func(context.Context) (tool.Result, error) {
		if waitCtx.Err() != nil || !state.CompareAndSwap(callWaiting, callStarted) {
			return tool.Result{}, context.Canceled
		}
		// The call runs on the caller's context: the timeout only applies
		// to the wait for a slot.
		return e.run(ctx, t, input)
	})
	state.CompareAndSwap(callWaiting, callAbandoned)

	if state.Load() != callStarted {
		if timedOut.Load() {
			return tool.Result{}, fmt.Errorf("%w: %s waited longer than %s", tool.ErrExecutionTimeout, t.Name(), e.timeout)
		}
		if ctx.Err() != nil {
			return tool.Result{}, ctx.Err()
		}
		return tool.Result{}, fmt.Errorf("%w: %s: %v", tool.ErrExecutionRejected, t.Name(), err)
	}

	if err == nil {
		result.Duration = time.Since(start)
	}
	return result, err
}

// run executes the tool, retrying transient failures when the tool allows it.
func (e *Executor) run(ctx context.Context, t tool.Tool, input json.RawMessage) (tool.Result, error) {
	if !e.retries || !t.Annotations().CanRetry() {
		return t.Execute(ctx, input)
	}

	// Permanent failures are smuggled out as a success so the retry loop
	// stops at the first attempt that cannot improve.
	var permanent error
	attempt := 0
	result, err := e.retry.Do(ctx, func(ctx context.Context) (tool.Result, error) {
		attempt++
		res, err := t.Execute(ctx, input)
		if err != nil && !e.isTransient(err) {
			permanent = err
			return tool.Result{}, nil
		}
		if err != nil {
			logging.Debug().
				Add(logging.ToolName(t.Name())).
				Add(logging.Attempt(attempt)).
				Add(logging.ErrorField(err)).
				Msg("transient tool failure")
		}
		return res, err
	})
	if permanent != nil {
		return tool.Result{}, permanent
	}
	return result, err
}

// ExecuteSimple runs a tool without guards.
func (e *Executor) ExecuteSimple(ctx context.Context, t tool.Tool, input json.RawMessage) (tool.Result, error) {
	start := time.Now()
	result, err := t.Execute(ctx, input)
	if err == nil {
		result.Duration = time.Since(start)
	}
	return result, err
}

// TransientOSError reports whether err is an OS condition that may clear on
// its own, such as an interrupted system call or a busy resource.
func TransientOSError(err error) bool {
	return errors.Is(err, syscall.EINTR) ||
		errors.Is(err, syscall.EAGAIN) ||
		errors.Is(err, syscall.EBUSY)
}
