package filesystem

import (
	"context"
	"encoding/json"
	"slices"
	"strings"

	"github.com/felixgeelhaar/agent-fs/domain/tool"
)

// handle decodes the input into In, then encodes whatever fn returns as the
// JSON result.
func handle[In any](fn func(ctx context.Context, in In) (any, error)) tool.Handler {
	return func(ctx context.Context, input json.RawMessage) (tool.Result, error) {
		var in In
		if err := tool.DecodeInput(input, &in); err != nil {
			return tool.Result{}, err
		}
		if err := ctx.Err(); err != nil {
			return tool.Result{}, err
		}

		out, err := fn(ctx, in)
		if err != nil {
			return tool.Result{}, err
		}
		return tool.JSONResult(out)
	}
}

var pathParam = tool.Param{
	Name:        "path",
	Type:        tool.TypeString,
	Description: "File or directory path; relative paths use the base directory",
	Required:    true,
}

// outputSchema builds an object schema from property name to raw JSON
// schema. Properties that cannot be null are required.
func outputSchema(props map[string]string) tool.Schema {
	raw := make(map[string]json.RawMessage, len(props))
	var required []string
	for name, schema := range props {
		raw[name] = json.RawMessage(schema)
		if !strings.Contains(schema, `"null"`) {
			required = append(required, name)
		}
	}
	slices.Sort(required)
	return tool.ObjectSchema(raw, required)
}

const (
	stringSchema         = `{"type":"string"}`
	nullableStringSchema = `{"type":["string","null"]}`
	integerSchema        = `{"type":"integer"}`
	nullableIntSchema    = `{"type":["integer","null"]}`
	booleanSchema        = `{"type":"boolean"}`
)

type pathInput struct {
	Path string `json:"path"`
}

type pathOutput struct {
	Path string `json:"path"`
}

type boolOutput struct {
	Result bool `json:"result"`
}

type successOutput struct {
	Success bool `json:"success"`
}
