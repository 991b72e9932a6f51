package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Path is the dotted path to the invalid field.
	Path string
	// Message describes the validation error.
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("%d validation errors:\n  - %s", len(e), strings.Join(msgs, "\n  - "))
}

// HasErrors returns true if there are any validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Paths returns the paths of all errors, in order.
func (e ValidationErrors) Paths() []string {
	paths := make([]string, len(e))
	for i, err := range e {
		paths[i] = err.Path
	}
	return paths
}

// Validator validates server configuration.
type Validator struct {
	errors ValidationErrors
}

// NewValidator creates a new validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate validates the configuration and returns any errors.
func (v *Validator) Validate(config *ServerConfig) ValidationErrors {
	v.errors = nil

	v.validateFilesystem(config.Filesystem)
	v.validateTools(config.Tools)
	v.validateServer(config.Server)
	v.validateLogging(config.Logging)
	v.validateResilience(config.Resilience)
	v.validateTracing(config.Tracing)

	return v.errors
}

func (v *Validator) addError(path, message string) {
	v.errors = append(v.errors, ValidationError{Path: path, Message: message})
}

func (v *Validator) validateFilesystem(c FilesystemConfig) {
	if c.FileMode > 0o777 {
		v.addError("filesystem.file_mode", fmt.Sprintf("invalid permission bits: %s", c.FileMode))
	}
	if c.DirMode > 0o777 {
		v.addError("filesystem.dir_mode", fmt.Sprintf("invalid permission bits: %s", c.DirMode))
	}
}

func (v *Validator) validateTools(c ToolsConfig) {
	for i, name := range c.Enabled {
		if strings.TrimSpace(name) == "" {
			v.addError(fmt.Sprintf("tools.enabled[%d]", i), "tool name is required")
		}
	}
	for i, name := range c.Disabled {
		if strings.TrimSpace(name) == "" {
			v.addError(fmt.Sprintf("tools.disabled[%d]", i), "tool name is required")
		}
	}
}

func (v *Validator) validateServer(c TransportConfig) {
	switch c.Transport {
	case "", TransportStdio:
	case TransportHTTP:
		if c.Address == "" {
			v.addError("server.address", "address is required for http transport")
		}
	default:
		v.addError("server.transport", fmt.Sprintf("invalid transport: %s", c.Transport))
	}
}

func (v *Validator) validateLogging(c LoggingConfig) {
	if c.Level != "" {
		validLevels := map[string]bool{
			"trace": true, "debug": true, "info": true, "warn": true, "error": true,
		}
		if !validLevels[strings.ToLower(c.Level)] {
			v.addError("logging.level", fmt.Sprintf("invalid level: %s", c.Level))
		}
	}
	if c.Format != "" && c.Format != "console" && c.Format != "json" {
		v.addError("logging.format", fmt.Sprintf("invalid format: %s", c.Format))
	}
}

func (v *Validator) validateResilience(c ResilienceConfig) {
	if c.MaxConcurrent < 0 {
		v.addError("resilience.max_concurrent", "max_concurrent must be non-negative")
	}
	if c.Timeout < 0 {
		v.addError("resilience.timeout", "timeout must be non-negative")
	}
	if c.RetryAttempts < 0 {
		v.addError("resilience.retry_attempts", "retry_attempts must be non-negative")
	}
	if c.RetryDelay < 0 {
		v.addError("resilience.retry_delay", "retry_delay must be non-negative")
	}
	v.validateRateLimit(c.RateLimit)
}

func (v *Validator) validateRateLimit(c RateLimitConfig) {
	switch c.Scope {
	case "", ScopeGlobal, ScopePerTool, ScopePerSource:
	default:
		v.addError("resilience.rate_limit.scope", fmt.Sprintf("invalid scope: %s", c.Scope))
	}
	if c.Burst < 0 {
		v.addError("resilience.rate_limit.burst", "burst must be non-negative")
	}
	if c.Enabled && c.Rate <= 0 {
		v.addError("resilience.rate_limit.rate", "rate must be positive when the limit is enabled")
	}
}

func (v *Validator) validateTracing(c TracingConfig) {
	if c.SampleRate < 0 || c.SampleRate > 1 {
		v.addError("tracing.sample_rate", "sample_rate must be between 0 and 1")
	}
	if !c.Enabled {
		return
	}
	switch c.Exporter {
	case "", ExporterStdout, ExporterNoop:
	case ExporterOTLP:
		if c.Endpoint == "" {
			v.addError("tracing.endpoint", "endpoint is required for otlp exporter")
		}
	default:
		v.addError("tracing.exporter", fmt.Sprintf("invalid exporter: %s", c.Exporter))
	}
}
