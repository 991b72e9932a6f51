package config

import (
	"encoding/json"

	domainconfig "github.com/felixgeelhaar/agent-fs/domain/config"
)

// JSONSchema represents a JSON Schema document.
type JSONSchema struct {
	Schema               string                 `json:"$schema,omitempty"`
	ID                   string                 `json:"$id,omitempty"`
	Title                string                 `json:"title,omitempty"`
	Description          string                 `json:"description,omitempty"`
	Type                 string                 `json:"type,omitempty"`
	Properties           map[string]*JSONSchema `json:"properties,omitempty"`
	Required             []string               `json:"required,omitempty"`
	Items                *JSONSchema            `json:"items,omitempty"`
	AdditionalProperties *bool                  `json:"additionalProperties,omitempty"`
	Enum                 []string               `json:"enum,omitempty"`
	Default              any                    `json:"default,omitempty"`
	Minimum              *float64               `json:"minimum,omitempty"`
	Maximum              *float64               `json:"maximum,omitempty"`
	Pattern              string                 `json:"pattern,omitempty"`
	Format               string                 `json:"format,omitempty"`
}

// GenerateSchema generates a JSON Schema for ServerConfig. Unknown keys are
// rejected, matching the loader.
func GenerateSchema() *JSONSchema {
	def := domainconfig.Default()
	return &JSONSchema{
		Schema:               "https://json-schema.org/draft/2020-12/schema",
		ID:                   "https://github.com/felixgeelhaar/agent-fs/agentfs-config.schema.json",
		Title:                "agentfs Configuration",
		Description:          "Configuration schema for the agentfs tool server",
		Type:                 "object",
		AdditionalProperties: boolPtr(false),
		Properties: map[string]*JSONSchema{
			"name": {
				Type:        "string",
				Description: "Server name advertised to clients",
				Default:     def.Name,
			},
			"version": {
				Type:        "string",
				Description: "The configuration schema version",
				Default:     def.Version,
			},
			"filesystem": generateFilesystemSchema(def),
			"tools":      generateToolsSchema(),
			"server":     generateServerSchema(def),
			"logging":    generateLoggingSchema(def),
			"resilience": generateResilienceSchema(def),
			"tracing":    generateTracingSchema(def),
		},
	}
}

func generateFilesystemSchema(def *domainconfig.ServerConfig) *JSONSchema {
	return object("File operation settings", map[string]*JSONSchema{
		"base_dir": {
			Type:        "string",
			Description: "Directory that relative tool paths resolve against (default: working directory)",
		},
		"file_mode": {
			Type:        "string",
			Description: "Octal permission for created files, before umask",
			Pattern:     "^0?[0-7]{3}$",
			Default:     def.Filesystem.FileMode.String(),
		},
		"dir_mode": {
			Type:        "string",
			Description: "Octal permission for created directories, before umask",
			Pattern:     "^0?[0-7]{3}$",
			Default:     def.Filesystem.DirMode.String(),
		},
		"atomic_rewrite": {
			Type:        "boolean",
			Description: "Replace files through a temp file and rename in chunk writes",
			Default:     false,
		},
		"parallel_walk": {
			Type:        "boolean",
			Description: "Walk recursive listings concurrently; results are sorted by path",
			Default:     false,
		},
		"detect_charset": {
			Type:        "boolean",
			Description: "Guess the encoding of files that are not valid UTF-8",
			Default:     true,
		},
	})
}

func generateToolsSchema() *JSONSchema {
	return object("Tool selection", map[string]*JSONSchema{
		"enabled": {
			Type:        "array",
			Description: "Tools to expose (empty means all)",
			Items:       &JSONSchema{Type: "string"},
		},
		"disabled": {
			Type:        "array",
			Description: "Tools to hide, applied after enabled",
			Items:       &JSONSchema{Type: "string"},
		},
	})
}

func generateServerSchema(def *domainconfig.ServerConfig) *JSONSchema {
	return object("MCP transport settings", map[string]*JSONSchema{
		"transport": {
			Type:    "string",
			Enum:    []string{domainconfig.TransportStdio, domainconfig.TransportHTTP},
			Default: def.Server.Transport,
		},
		"address": {
			Type:        "string",
			Description: "Listen address for the http transport",
			Default:     def.Server.Address,
		},
		"instructions": {
			Type:        "string",
			Description: "Usage instructions sent to clients on initialization",
		},
	})
}

func generateLoggingSchema(def *domainconfig.ServerConfig) *JSONSchema {
	return object("Logging settings", map[string]*JSONSchema{
		"level": {
			Type:    "string",
			Enum:    []string{"trace", "debug", "info", "warn", "error"},
			Default: def.Logging.Level,
		},
		"format": {
			Type:    "string",
			Enum:    []string{"console", "json"},
			Default: def.Logging.Format,
		},
	})
}

func generateResilienceSchema(def *domainconfig.ServerConfig) *JSONSchema {
	r := def.Resilience
	return object("Execution guards", map[string]*JSONSchema{
		"max_concurrent": {
			Type:        "integer",
			Description: "Maximum concurrent tool executions (0 means unbounded)",
			Minimum:     floatPtr(0),
			Default:     r.MaxConcurrent,
		},
		"timeout": {
			Type:        "string",
			Description: "How long a call may wait to start (e.g., '30s'); 0s disables",
			Format:      "duration",
			Default:     r.Timeout.Duration().String(),
		},
		"retry_attempts": {
			Type:        "integer",
			Description: "Total attempts for read-only or idempotent tools on transient errors",
			Minimum:     floatPtr(0),
			Default:     r.RetryAttempts,
		},
		"retry_delay": {
			Type:        "string",
			Description: "Delay before the first retry",
			Format:      "duration",
			Default:     r.RetryDelay.Duration().String(),
		},
		"rate_limit": generateRateLimitSchema(r.RateLimit),
	})
}

func generateRateLimitSchema(def domainconfig.RateLimitConfig) *JSONSchema {
	return object("Token bucket limit on tool calls", map[string]*JSONSchema{
		"enabled": {
			Type:    "boolean",
			Default: false,
		},
		"rate": {
			Type:        "integer",
			Description: "Calls allowed per second",
			Minimum:     floatPtr(1),
			Default:     def.Rate,
		},
		"burst": {
			Type:        "integer",
			Description: "Bucket capacity (0 means rate)",
			Minimum:     floatPtr(0),
			Default:     def.Burst,
		},
		"scope": {
			Type:        "string",
			Description: "How calls share buckets",
			Enum:        []string{domainconfig.ScopeGlobal, domainconfig.ScopePerTool, domainconfig.ScopePerSource},
			Default:     def.Scope,
		},
		"wait": {
			Type:        "boolean",
			Description: "Delay calls over the limit instead of rejecting them",
			Default:     false,
		},
	})
}

func generateTracingSchema(def *domainconfig.ServerConfig) *JSONSchema {
	return object("OpenTelemetry tracing", map[string]*JSONSchema{
		"enabled": {
			Type:    "boolean",
			Default: false,
		},
		"exporter": {
			Type:    "string",
			Enum:    []string{domainconfig.ExporterStdout, domainconfig.ExporterOTLP, domainconfig.ExporterNoop},
			Default: def.Tracing.Exporter,
		},
		"endpoint": {
			Type:        "string",
			Description: "OTLP gRPC endpoint, required for the otlp exporter",
		},
		"insecure": {
			Type:        "boolean",
			Description: "Disable TLS for the OTLP endpoint",
			Default:     false,
		},
		"sample_rate": {
			Type:        "number",
			Description: "Fraction of traces sampled",
			Minimum:     floatPtr(0),
			Maximum:     floatPtr(1),
			Default:     def.Tracing.SampleRate,
		},
	})
}

func object(desc string, props map[string]*JSONSchema) *JSONSchema {
	return &JSONSchema{
		Type:                 "object",
		Description:          desc,
		Properties:           props,
		AdditionalProperties: boolPtr(false),
	}
}

func floatPtr(f float64) *float64 {
	return &f
}

func boolPtr(b bool) *bool {
	return &b
}

// SchemaJSON returns the JSON Schema as a JSON string.
func SchemaJSON() (string, error) {
	data, err := json.MarshalIndent(GenerateSchema(), "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
