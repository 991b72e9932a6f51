package cli

import (
	"fmt"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	infraconfig "github.com/felixgeelhaar/agent-fs/infrastructure/config"
)

// exportSchemaOptions holds options for the export-schema command.
type exportSchemaOptions struct {
	outputPath string
}

// newExportSchemaCmd creates the export-schema command.
func (a *App) newExportSchemaCmd() *cobra.Command {
	opts := &exportSchemaOptions{}

	cmd := &cobra.Command{
		Use:   "export-schema",
		Short: "Export the configuration JSON schema",
		Long: `Export the JSON Schema for agentfs configuration files.

The exported schema can be used for IDE validation and autocompletion,
or to check configuration files in CI.

Examples:
  # Export schema to stdout
  agentfs export-schema

  # Export schema to a file
  agentfs export-schema -o agentfs.schema.json

  # Use with VS Code
  # Add to .vscode/settings.json:
  # "yaml.schemas": {
  #   "./agentfs.schema.json": ["agentfs*.yaml"]
  # }`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.exportSchema(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "", "Output file path (default: stdout)")

	return cmd
}

// exportSchema exports the configuration JSON schema.
func (a *App) exportSchema(opts *exportSchemaOptions) error {
	schemaJSON, err := infraconfig.SchemaJSON()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	if opts.outputPath == "" {
		_, _ = fmt.Fprintln(a.stdout, schemaJSON)
		return nil
	}

	if err := atomic.WriteFile(opts.outputPath, strings.NewReader(schemaJSON+"\n")); err != nil {
		return fmt.Errorf("failed to write schema file: %w", err)
	}

	_, _ = fmt.Fprintf(a.stdout, "Schema exported to %s\n", opts.outputPath)
	return nil
}
