package pack_test

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"testing"

	"github.com/felixgeelhaar/agent-fs/domain/pack"
	"github.com/felixgeelhaar/agent-fs/domain/tool"
)

// mockTool implements tool.Tool for testing
type mockTool struct {
	name string
}

func (m mockTool) Name() string                  { return m.name }
func (m mockTool) Description() string           { return "mock tool" }
func (m mockTool) Annotations() tool.Annotations { return tool.Annotations{} }
func (m mockTool) InputSchema() tool.Schema      { return tool.Schema{} }
func (m mockTool) OutputSchema() tool.Schema     { return tool.Schema{} }
func (m mockTool) Execute(context.Context, json.RawMessage) (tool.Result, error) {
	return tool.Result{}, nil
}

func testPack(t *testing.T) *pack.Pack {
	t.Helper()

	p, err := pack.NewBuilder("filesystem").
		WithDescription("files").
		WithVersion("1.0.0").
		WithMetadata("category", "io").
		AddTools(mockTool{"read_text_file"}, mockTool{"write_text_file"}, mockTool{"delete_file"}).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return p
}

func TestBuilder(t *testing.T) {
	t.Parallel()

	p := testPack(t)
	if p.Name != "filesystem" || p.Description != "files" || p.Version != "1.0.0" {
		t.Errorf("pack = %+v", p)
	}
	if p.Metadata["category"] != "io" {
		t.Errorf("Metadata = %v", p.Metadata)
	}
	want := []string{"read_text_file", "write_text_file", "delete_file"}
	if !slices.Equal(p.ToolNames(), want) {
		t.Errorf("ToolNames() = %v, want %v", p.ToolNames(), want)
	}
}

func TestBuilder_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		builder *pack.Builder
	}{
		{"empty name", pack.NewBuilder("")},
		{"duplicate tool", pack.NewBuilder("p").AddTools(mockTool{"a"}, mockTool{"a"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := tt.builder.Build(); !errors.Is(err, pack.ErrInvalidPack) {
				t.Errorf("Build() error = %v, want ErrInvalidPack", err)
			}
		})
	}
}

func TestPack_GetTool(t *testing.T) {
	t.Parallel()

	p := testPack(t)
	if got, ok := p.GetTool("delete_file"); !ok || got.Name() != "delete_file" {
		t.Errorf("GetTool(delete_file) = %v, %v", got, ok)
	}
	if _, ok := p.GetTool("missing"); ok {
		t.Error("GetTool(missing) should report false")
	}
}

func TestPack_Select(t *testing.T) {
	t.Parallel()

	p := testPack(t)

	tests := []struct {
		name    string
		sel     pack.Selection
		want    []string
		wantErr error
	}{
		{"all by default", pack.Selection{}, []string{"read_text_file", "write_text_file", "delete_file"}, nil},
		{"enabled subset keeps pack order", pack.Selection{Enabled: []string{"delete_file", "read_text_file"}}, []string{"read_text_file", "delete_file"}, nil},
		{"disabled removed", pack.Selection{Disabled: []string{"delete_file"}}, []string{"read_text_file", "write_text_file"}, nil},
		{"disabled wins", pack.Selection{Enabled: []string{"delete_file"}, Disabled: []string{"delete_file"}}, []string{}, nil},
		{"unknown enabled", pack.Selection{Enabled: []string{"format_disk"}}, nil, pack.ErrUnknownTool},
		{"unknown disabled", pack.Selection{Disabled: []string{"format_disk"}}, nil, pack.ErrUnknownTool},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := p.Select(tt.sel)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Select() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}

			names := make([]string, len(got))
			for i, t := range got {
				names[i] = t.Name()
			}
			if !slices.Equal(names, tt.want) {
				t.Errorf("Select() = %v, want %v", names, tt.want)
			}
		})
	}
}
