package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"testing"

	"github.com/felixgeelhaar/agent-fs/domain/middleware"
	"github.com/felixgeelhaar/agent-fs/domain/tool"
)

// mockTool implements tool.Tool for testing
type mockTool struct {
	name   string
	output json.RawMessage
}

func (m mockTool) Name() string                  { return m.name }
func (m mockTool) Description() string           { return "mock tool" }
func (m mockTool) Annotations() tool.Annotations { return tool.Annotations{} }
func (m mockTool) InputSchema() tool.Schema      { return tool.Schema{} }
func (m mockTool) OutputSchema() tool.Schema     { return tool.Schema{} }
func (m mockTool) Execute(_ context.Context, input json.RawMessage) (tool.Result, error) {
	if m.output != nil {
		return tool.Result{Output: m.output}, nil
	}
	return tool.Result{Output: input}, nil
}

func recorder(order *[]string, name string) middleware.Middleware {
	return func(next middleware.Handler) middleware.Handler {
		return func(ctx context.Context, ec *middleware.ExecutionContext) (tool.Result, error) {
			*order = append(*order, "before-"+name)
			result, err := next(ctx, ec)
			*order = append(*order, "after-"+name)
			return result, err
		}
	}
}

func TestChain(t *testing.T) {
	t.Parallel()

	t.Run("chains middleware in order", func(t *testing.T) {
		t.Parallel()

		var order []string
		final := func(ctx context.Context, ec *middleware.ExecutionContext) (tool.Result, error) {
			order = append(order, "handler")
			return tool.Result{}, nil
		}

		handler := middleware.Chain(recorder(&order, "1"), recorder(&order, "2"), recorder(&order, "3"))(final)
		if _, err := handler(context.Background(), &middleware.ExecutionContext{CallID: "c1"}); err != nil {
			t.Fatalf("handler error = %v", err)
		}

		want := []string{"before-1", "before-2", "before-3", "handler", "after-3", "after-2", "after-1"}
		if !slices.Equal(order, want) {
			t.Errorf("order = %v, want %v", order, want)
		}
	})

	t.Run("middleware can short-circuit", func(t *testing.T) {
		t.Parallel()

		block := func(next middleware.Handler) middleware.Handler {
			return func(ctx context.Context, ec *middleware.ExecutionContext) (tool.Result, error) {
				return tool.Result{}, tool.ErrExecutionRejected
			}
		}

		called := false
		final := func(ctx context.Context, ec *middleware.ExecutionContext) (tool.Result, error) {
			called = true
			return tool.Result{}, nil
		}

		_, err := middleware.Chain(block)(final)(context.Background(), &middleware.ExecutionContext{})
		if !errors.Is(err, tool.ErrExecutionRejected) {
			t.Errorf("error = %v, want ErrExecutionRejected", err)
		}
		if called {
			t.Error("final handler should not have been called")
		}
	})

	t.Run("empty chain passes through", func(t *testing.T) {
		t.Parallel()

		ec := &middleware.ExecutionContext{
			Tool:  mockTool{name: "is_file"},
			Input: json.RawMessage(`{"path":"x"}`),
		}
		result, err := middleware.Chain()(middleware.Execute)(context.Background(), ec)
		if err != nil {
			t.Fatalf("handler error = %v", err)
		}
		if result.OutputString() != `{"path":"x"}` {
			t.Errorf("Output = %s", result.Output)
		}
	})
}

func TestExecute(t *testing.T) {
	t.Parallel()

	ec := &middleware.ExecutionContext{Tool: mockTool{name: "t", output: json.RawMessage(`{"result":true}`)}}
	result, err := middleware.Execute(context.Background(), ec)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.OutputString() != `{"result":true}` {
		t.Errorf("Output = %s", result.Output)
	}
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	t.Run("empty registry is noop", func(t *testing.T) {
		t.Parallel()

		reg := middleware.NewRegistry()
		if reg.Len() != 0 {
			t.Errorf("Len() = %d, want 0", reg.Len())
		}

		ec := &middleware.ExecutionContext{Tool: mockTool{name: "t"}, Input: json.RawMessage(`1`)}
		result, err := reg.Then(middleware.Execute)(context.Background(), ec)
		if err != nil || result.OutputString() != "1" {
			t.Errorf("Then() = %s, %v", result.Output, err)
		}
	})

	t.Run("keeps registration order", func(t *testing.T) {
		t.Parallel()

		var order []string
		reg := middleware.NewRegistry(recorder(&order, "a"))
		if got := reg.Use(recorder(&order, "b"), recorder(&order, "c")); got != reg {
			t.Error("Use() should return the registry for chaining")
		}
		if reg.Len() != 3 {
			t.Errorf("Len() = %d, want 3", reg.Len())
		}

		ec := &middleware.ExecutionContext{Tool: mockTool{name: "t"}}
		if _, err := reg.Then(middleware.Execute)(context.Background(), ec); err != nil {
			t.Fatalf("handler error = %v", err)
		}

		want := []string{"before-a", "before-b", "before-c", "after-c", "after-b", "after-a"}
		if !slices.Equal(order, want) {
			t.Errorf("order = %v, want %v", order, want)
		}
	})
}
