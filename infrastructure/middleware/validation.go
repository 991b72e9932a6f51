// Package middleware provides pre-built middleware implementations.
package middleware

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/felixgeelhaar/agent-fs/domain/middleware"
	"github.com/felixgeelhaar/agent-fs/domain/tool"
)

// ValidationConfig configures the validation middleware.
type ValidationConfig struct {
	// ValidateInput checks inputs against the tool's input schema before the
	// call reaches the executor.
	ValidateInput bool

	// ValidateOutput checks outputs against the tool's output schema.
	ValidateOutput bool
}

// DefaultValidationConfig returns a sensible default configuration.
func DefaultValidationConfig() ValidationConfig {
	return ValidationConfig{
		ValidateInput:  true,
		ValidateOutput: false,
	}
}

// Validation returns middleware that validates tool inputs and outputs
// against their declared JSON schemas.
func Validation(cfg ValidationConfig) middleware.Middleware {
	return func(next middleware.Handler) middleware.Handler {
		return func(ctx context.Context, execCtx *middleware.ExecutionContext) (tool.Result, error) {
			t := execCtx.Tool

			if cfg.ValidateInput {
				if err := validateInput(t, execCtx.Input); err != nil {
					return tool.Result{}, err
				}
			}

			result, err := next(ctx, execCtx)
			if err != nil {
				return result, err
			}

			if cfg.ValidateOutput {
				if err := validateOutput(t, result.Output); err != nil {
					return tool.Result{}, fmt.Errorf("%w: %v", tool.ErrInvalidOutput, err)
				}
			}

			return result, nil
		}
	}
}

// validateInput rejects syntactically broken JSON and inputs that miss
// required parameters. Empty input is treated as an empty object.
func validateInput(t tool.Tool, input json.RawMessage) error {
	if len(input) > 0 && !json.Valid(input) {
		return fmt.Errorf("%w: input is not valid JSON", tool.ErrInvalidInput)
	}
	return t.InputSchema().Validate(input)
}

// validateOutput validates tool output against the tool's output schema.
func validateOutput(t tool.Tool, output json.RawMessage) error {
	if len(output) == 0 {
		return nil
	}
	if !json.Valid(output) {
		return fmt.Errorf("output is not valid JSON")
	}
	return t.OutputSchema().Validate(output)
}
