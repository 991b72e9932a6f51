package middleware

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/fortify/ratelimit"

	"github.com/felixgeelhaar/agent-fs/domain/middleware"
	"github.com/felixgeelhaar/agent-fs/domain/tool"
	"github.com/felixgeelhaar/agent-fs/infrastructure/logging"
)

// RateLimitScope defines how calls share rate limit buckets.
type RateLimitScope string

const (
	// ScopeGlobal applies one bucket to every call.
	ScopeGlobal RateLimitScope = "global"

	// ScopePerTool gives each tool its own bucket.
	ScopePerTool RateLimitScope = "per_tool"

	// ScopePerSource gives each calling surface (mcp, cli) its own bucket.
	ScopePerSource RateLimitScope = "per_source"
)

// RateLimitConfig configures the rate limiting middleware.
type RateLimitConfig struct {
	// Limiter is the rate limiter to use.
	// If nil, a token bucket is created from Rate and Burst.
	Limiter ratelimit.RateLimiter

	// Scope determines how rate limiting keys are generated.
	// Default is ScopeGlobal.
	Scope RateLimitScope

	// Rate is the number of calls allowed per second.
	Rate int

	// Burst is the bucket capacity. Defaults to Rate.
	Burst int

	// Wait blocks until capacity is available instead of failing the call.
	Wait bool

	// OnLimitExceeded is called when a call is rejected.
	OnLimitExceeded func(ctx context.Context, execCtx *middleware.ExecutionContext)
}

// DefaultRateLimitConfig returns a permissive global limit.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Scope: ScopeGlobal,
		Rate:  100,
		Burst: 100,
	}
}

// RateLimit returns middleware that enforces a token bucket on tool calls.
// Rejected calls fail with tool.ErrRateLimited.
func RateLimit(cfg RateLimitConfig) middleware.Middleware {
	limiter := cfg.Limiter
	if limiter == nil {
		rate := cfg.Rate
		if rate <= 0 {
			rate = 100
		}
		burst := cfg.Burst
		if burst <= 0 {
			burst = rate
		}
		limiter = ratelimit.New(&ratelimit.Config{
			Rate:  rate,
			Burst: burst,
		})
	}

	scope := cfg.Scope
	if scope == "" {
		scope = ScopeGlobal
	}

	return func(next middleware.Handler) middleware.Handler {
		return func(ctx context.Context, execCtx *middleware.ExecutionContext) (tool.Result, error) {
			key := rateLimitKey(scope, execCtx)

			if cfg.Wait {
				if err := limiter.Wait(ctx, key); err != nil {
					logging.Warn().
						Add(logging.CallID(execCtx.CallID)).
						Add(logging.ToolName(execCtx.Tool.Name())).
						Add(logging.ErrorField(err)).
						Msg("rate limit wait failed")
					return tool.Result{}, fmt.Errorf("%w: %v", tool.ErrRateLimited, err)
				}
				return next(ctx, execCtx)
			}

			if !limiter.Allow(ctx, key) {
				logging.Warn().
					Add(logging.CallID(execCtx.CallID)).
					Add(logging.ToolName(execCtx.Tool.Name())).
					Add(logging.Str("scope", string(scope))).
					Add(logging.Str("key", key)).
					Msg("rate limit exceeded")

				if cfg.OnLimitExceeded != nil {
					cfg.OnLimitExceeded(ctx, execCtx)
				}
				return tool.Result{}, fmt.Errorf("%w: %s", tool.ErrRateLimited, execCtx.Tool.Name())
			}

			return next(ctx, execCtx)
		}
	}
}

func rateLimitKey(scope RateLimitScope, execCtx *middleware.ExecutionContext) string {
	switch scope {
	case ScopePerTool:
		return "tool:" + execCtx.Tool.Name()
	case ScopePerSource:
		return "source:" + execCtx.Source
	default:
		return "global"
	}
}
