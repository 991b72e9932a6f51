package tool

import (
	"encoding/json"
	"fmt"
	"time"
)

// Result contains the output of a tool execution.
type Result struct {
	// Output is the JSON result document.
	Output json.RawMessage `json:"output"`

	// Duration is how long the execution took.
	Duration time.Duration `json:"duration"`

	// Error is a tool-level error (distinct from execution error).
	Error error `json:"-"`
}

// NewResult creates a successful result with the given output.
func NewResult(output json.RawMessage) Result {
	return Result{Output: output}
}

// JSONResult marshals v into a successful result.
func JSONResult(v any) (Result, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return Result{}, fmt.Errorf("encode tool output: %w", err)
	}
	return Result{Output: raw}, nil
}

// NewErrorResult creates a result representing an error.
func NewErrorResult(err error) Result {
	return Result{Error: err}
}

// IsError returns true if the result represents an error.
func (r Result) IsError() bool {
	return r.Error != nil
}

// OutputString returns the output as a string for convenience.
func (r Result) OutputString() string {
	return string(r.Output)
}
