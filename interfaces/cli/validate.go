package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	infraconfig "github.com/felixgeelhaar/agent-fs/infrastructure/config"
)

// validateOptions holds options for the validate command.
type validateOptions struct {
	configPath string
	strict     bool
	showSchema bool
}

// newValidateCmd creates the validate command.
func (a *App) newValidateCmd() *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a configuration file",
		Long: `Validate an agentfs configuration file for correctness.

This command checks:
  - File format (YAML or JSON)
  - Unknown keys
  - Field types and constraints
  - Environment variable references (in strict mode)

Examples:
  # Validate a configuration file
  agentfs validate -c agentfs.yaml

  # Strict validation (fail on missing env vars)
  agentfs validate -c agentfs.yaml --strict

  # Show the JSON schema for configuration
  agentfs validate --schema`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.showSchema {
				return a.showConfigSchema()
			}
			return a.validateConfig(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Enable strict validation (fail on missing env vars)")
	cmd.Flags().BoolVar(&opts.showSchema, "schema", false, "Show JSON schema for configuration")

	return cmd
}

// validateConfig validates the configuration file.
func (a *App) validateConfig(opts *validateOptions) error {
	if opts.configPath == "" {
		return fmt.Errorf("configuration file path is required (-c flag)")
	}

	config, err := loadConfig(opts.configPath, opts.strict)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if _, err := infraconfig.NewBuilder(config).Build(); err != nil {
		return fmt.Errorf("configuration build failed: %w", err)
	}

	fmt.Fprintf(a.stdout, "✓ Configuration is valid\n")
	fmt.Fprintf(a.stdout, "  Name: %s\n", config.Name)
	fmt.Fprintf(a.stdout, "  Version: %s\n", config.Version)

	fmt.Fprintf(a.stdout, "\nConfiguration summary:\n")
	baseDir := config.Filesystem.BaseDir
	if baseDir == "" {
		baseDir = "(working directory)"
	}
	fmt.Fprintf(a.stdout, "  Base directory: %s\n", baseDir)
	fmt.Fprintf(a.stdout, "  File mode: %s, dir mode: %s\n", config.Filesystem.FileMode, config.Filesystem.DirMode)
	fmt.Fprintf(a.stdout, "  Transport: %s", config.Server.Transport)
	if config.Server.Transport == "http" {
		fmt.Fprintf(a.stdout, " (%s)", config.Server.Address)
	}
	fmt.Fprintln(a.stdout)

	if len(config.Tools.Enabled) > 0 {
		fmt.Fprintf(a.stdout, "  Enabled tools: %s\n", strings.Join(config.Tools.Enabled, ", "))
	}
	if len(config.Tools.Disabled) > 0 {
		fmt.Fprintf(a.stdout, "  Disabled tools: %s\n", strings.Join(config.Tools.Disabled, ", "))
	}

	fmt.Fprintf(a.stdout, "  Max concurrent: %d, timeout: %s, retry attempts: %d\n",
		config.Resilience.MaxConcurrent, config.Resilience.Timeout.Duration(), config.Resilience.RetryAttempts)

	if config.Tracing.Enabled {
		fmt.Fprintf(a.stdout, "  Tracing: enabled (exporter=%s, sample_rate=%g)\n",
			config.Tracing.Exporter, config.Tracing.SampleRate)
	}

	return nil
}

// showConfigSchema displays the JSON schema for configuration.
func (a *App) showConfigSchema() error {
	schemaJSON, err := infraconfig.SchemaJSON()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	fmt.Fprintln(a.stdout, schemaJSON)
	return nil
}
