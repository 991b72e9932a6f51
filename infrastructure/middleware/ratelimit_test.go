package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/fortify/ratelimit"

	domainmw "github.com/felixgeelhaar/agent-fs/domain/middleware"
	"github.com/felixgeelhaar/agent-fs/domain/tool"
	mw "github.com/felixgeelhaar/agent-fs/infrastructure/middleware"
)

func successHandler(_ context.Context, _ *domainmw.ExecutionContext) (tool.Result, error) {
	return tool.Result{Output: json.RawMessage(`{"success":true}`)}, nil
}

func tightLimiter() ratelimit.RateLimiter {
	return ratelimit.New(&ratelimit.Config{Rate: 1, Burst: 1})
}

func callFrom(toolName, source string) *domainmw.ExecutionContext {
	ec := newExecCtx(&mockTool{name: toolName}, `{}`)
	ec.Source = source
	return ec
}

func TestRateLimit_WithinLimit(t *testing.T) {
	t.Parallel()

	handler := mw.RateLimit(mw.RateLimitConfig{Rate: 100, Burst: 100})(successHandler)
	for i := 0; i < 10; i++ {
		if _, err := handler(context.Background(), callFrom("is_file", "mcp")); err != nil {
			t.Fatalf("call %d should succeed: %v", i, err)
		}
	}
}

func TestRateLimit_Exceeded(t *testing.T) {
	t.Parallel()

	var limited string
	handler := mw.RateLimit(mw.RateLimitConfig{
		Limiter: tightLimiter(),
		OnLimitExceeded: func(_ context.Context, ec *domainmw.ExecutionContext) {
			limited = ec.Tool.Name()
		},
	})(successHandler)

	if _, err := handler(context.Background(), callFrom("is_file", "mcp")); err != nil {
		t.Fatalf("first call should succeed: %v", err)
	}
	_, err := handler(context.Background(), callFrom("is_file", "mcp"))
	if !errors.Is(err, tool.ErrRateLimited) {
		t.Fatalf("error = %v, want ErrRateLimited", err)
	}
	if limited != "is_file" {
		t.Errorf("OnLimitExceeded saw %q, want is_file", limited)
	}
}

func TestRateLimit_Scopes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		scope       mw.RateLimitScope
		first       *domainmw.ExecutionContext
		second      *domainmw.ExecutionContext
		wantLimited bool
	}{
		{"global shares a bucket", mw.ScopeGlobal, callFrom("is_file", "mcp"), callFrom("is_directory", "cli"), true},
		{"per tool separates tools", mw.ScopePerTool, callFrom("is_file", "mcp"), callFrom("is_directory", "mcp"), false},
		{"per tool limits same tool", mw.ScopePerTool, callFrom("is_file", "mcp"), callFrom("is_file", "cli"), true},
		{"per source separates sources", mw.ScopePerSource, callFrom("is_file", "mcp"), callFrom("is_file", "cli"), false},
		{"per source limits same source", mw.ScopePerSource, callFrom("is_file", "cli"), callFrom("is_directory", "cli"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler := mw.RateLimit(mw.RateLimitConfig{Limiter: tightLimiter(), Scope: tt.scope})(successHandler)
			if _, err := handler(context.Background(), tt.first); err != nil {
				t.Fatalf("first call should succeed: %v", err)
			}
			_, err := handler(context.Background(), tt.second)
			if got := errors.Is(err, tool.ErrRateLimited); got != tt.wantLimited {
				t.Errorf("limited = %v, want %v (err = %v)", got, tt.wantLimited, err)
			}
		})
	}
}

func TestRateLimit_WaitHonorsContext(t *testing.T) {
	t.Parallel()

	handler := mw.RateLimit(mw.RateLimitConfig{Limiter: tightLimiter(), Wait: true})(successHandler)
	if _, err := handler(context.Background(), callFrom("is_file", "mcp")); err != nil {
		t.Fatalf("first call should succeed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := handler(ctx, callFrom("is_file", "mcp")); !errors.Is(err, tool.ErrRateLimited) {
		t.Fatalf("error = %v, want ErrRateLimited", err)
	}
}

func TestDefaultRateLimitConfig(t *testing.T) {
	t.Parallel()

	cfg := mw.DefaultRateLimitConfig()
	if cfg.Scope != mw.ScopeGlobal || cfg.Rate != 100 || cfg.Burst != 100 {
		t.Errorf("DefaultRateLimitConfig() = %+v", cfg)
	}
}
