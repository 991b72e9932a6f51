package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/felixgeelhaar/agent-fs/domain/middleware"
	"github.com/felixgeelhaar/agent-fs/domain/tool"
	"github.com/felixgeelhaar/agent-fs/infrastructure/logging"
)

// ErrToolPanic indicates a tool handler panicked.
var ErrToolPanic = errors.New("tool panicked")

// Recovery returns middleware that converts a panic in the rest of the chain
// into an error wrapping ErrToolPanic.
func Recovery() middleware.Middleware {
	return func(next middleware.Handler) middleware.Handler {
		return func(ctx context.Context, execCtx *middleware.ExecutionContext) (result tool.Result, err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: %s: %v", ErrToolPanic, execCtx.Tool.Name(), r)
					result = tool.Result{}
					logging.Error().
						Add(logging.CallID(execCtx.CallID)).
						Add(logging.ToolName(execCtx.Tool.Name())).
						Add(logging.ErrorField(err)).
						Msg("recovered from tool panic")
				}
			}()
			return next(ctx, execCtx)
		}
	}
}
