// Package middleware provides composable middleware for tool execution.
package middleware

import (
	"context"
	"encoding/json"
	"time"

	"github.com/felixgeelhaar/agent-fs/domain/tool"
)

// ExecutionContext carries one tool call through the middleware chain.
type ExecutionContext struct {
	// CallID uniquely identifies this call.
	CallID string
	// Tool is the tool being executed.
	Tool tool.Tool
	// Input is the JSON input for the tool.
	Input json.RawMessage
	// Source names the surface that issued the call, such as "mcp" or "cli".
	Source string
	// StartedAt is when the dispatcher accepted the call.
	StartedAt time.Time
}

// Handler executes a tool and returns its result.
type Handler func(ctx context.Context, execCtx *ExecutionContext) (tool.Result, error)

// Middleware wraps a Handler with additional behavior.
// Middleware can:
// - Execute code before and after the next handler
// - Short-circuit by not calling next
// - Transform results or errors
type Middleware func(next Handler) Handler

// Chain composes multiple middleware into a single middleware.
// Chain(A, B, C) produces: A -> B -> C -> handler
func Chain(middlewares ...Middleware) Middleware {
	return func(final Handler) Handler {
		handler := final
		for i := len(middlewares) - 1; i >= 0; i-- {
			handler = middlewares[i](handler)
		}
		return handler
	}
}

// Noop returns a middleware that passes through.
func Noop() Middleware {
	return func(next Handler) Handler {
		return next
	}
}

// Execute is the terminal handler: it runs the tool on the call input.
func Execute(ctx context.Context, execCtx *ExecutionContext) (tool.Result, error) {
	return execCtx.Tool.Execute(ctx, execCtx.Input)
}
