package mcp

import (
	"encoding/json"

	"github.com/felixgeelhaar/agent-fs/domain/tool"
)

// ToolDef is the MCP tools/list shape of one tool.
type ToolDef struct {
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	InputSchema  json.RawMessage `json:"inputSchema,omitempty"`
	OutputSchema json.RawMessage `json:"outputSchema,omitempty"`
	Annotations  ToolHints       `json:"annotations"`
}

// ToolHints are the MCP behavior hints plus the tool's risk level.
type ToolHints struct {
	ReadOnlyHint    bool   `json:"readOnlyHint"`
	DestructiveHint bool   `json:"destructiveHint"`
	IdempotentHint  bool   `json:"idempotentHint"`
	OpenWorldHint   bool   `json:"openWorldHint"`
	RiskLevel       string `json:"riskLevel"`
}

// ToolToDef converts a tool to its MCP definition. Filesystem tools never
// reach outside the host, so OpenWorldHint is always false.
func ToolToDef(t tool.Tool) ToolDef {
	a := t.Annotations()
	def := ToolDef{
		Name:        t.Name(),
		Description: t.Description(),
		Annotations: ToolHints{
			ReadOnlyHint:    a.ReadOnly,
			DestructiveHint: a.Destructive,
			IdempotentHint:  a.Idempotent,
			RiskLevel:       a.RiskLevel.String(),
		},
	}
	if s := t.InputSchema(); !s.IsEmpty() {
		def.InputSchema = s.Raw()
	}
	if s := t.OutputSchema(); !s.IsEmpty() {
		def.OutputSchema = s.Raw()
	}
	return def
}

// ToolDefs converts tools in order.
func ToolDefs(tools []tool.Tool) []ToolDef {
	defs := make([]ToolDef, len(tools))
	for i, t := range tools {
		defs[i] = ToolToDef(t)
	}
	return defs
}
