package middleware

import (
	"context"
	"time"

	"github.com/felixgeelhaar/agent-fs/domain/middleware"
	"github.com/felixgeelhaar/agent-fs/domain/tool"
	"github.com/felixgeelhaar/agent-fs/infrastructure/logging"
)

// maxLoggedOutput caps the output recorded by the logging middleware.
const maxLoggedOutput = 500

// LoggingConfig configures the logging middleware.
type LoggingConfig struct {
	// LogInput logs the tool input (may contain file content).
	LogInput bool
	// LogOutput logs the tool output (may be large).
	LogOutput bool
}

// Logging returns middleware that logs tool execution.
func Logging(cfg LoggingConfig) middleware.Middleware {
	return func(next middleware.Handler) middleware.Handler {
		return func(ctx context.Context, execCtx *middleware.ExecutionContext) (tool.Result, error) {
			start := time.Now()
			name := execCtx.Tool.Name()

			entry := logging.Debug().
				Add(logging.CallID(execCtx.CallID)).
				Add(logging.ToolName(name)).
				Add(logging.Source(execCtx.Source))

			if cfg.LogInput && len(execCtx.Input) > 0 {
				entry = entry.Add(logging.Str("input", string(execCtx.Input)))
			}

			entry.Msg("executing tool")

			result, err := next(ctx, execCtx)
			duration := time.Since(start)

			if err != nil {
				logging.Error().
					Add(logging.CallID(execCtx.CallID)).
					Add(logging.ToolName(name)).
					Add(logging.ErrorField(err)).
					Add(logging.Duration(duration)).
					Msg("tool execution failed")
				return result, err
			}

			logEntry := logging.Info().
				Add(logging.CallID(execCtx.CallID)).
				Add(logging.ToolName(name)).
				Add(logging.Duration(duration))

			if cfg.LogOutput && len(result.Output) > 0 {
				output := string(result.Output)
				if len(output) > maxLoggedOutput {
					output = output[:maxLoggedOutput] + "..."
				}
				logEntry = logEntry.Add(logging.Str("output", output))
			}

			logEntry.Msg("tool executed")
			return result, nil
		}
	}
}
