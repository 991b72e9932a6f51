package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/agent-fs/infrastructure/mcp"
)

// listToolsOptions holds options for the list-tools command.
type listToolsOptions struct {
	configPath string
	verbose    bool
	jsonOutput bool
}

// newListToolsCmd creates the list-tools command.
func (a *App) newListToolsCmd() *cobra.Command {
	opts := &listToolsOptions{}

	cmd := &cobra.Command{
		Use:   "list-tools",
		Short: "List the tools this server exposes",
		Long: `List the filesystem tools after the configured selection is applied.

Examples:
  # Names and risk levels
  agentfs list-tools

  # Descriptions and input schemas
  agentfs list-tools -v

  # MCP tool definitions as JSON
  agentfs list-tools --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.listTools(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Show descriptions and input schemas")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Print MCP tool definitions as JSON")

	return cmd
}

func (a *App) listTools(cmd *cobra.Command, opts *listToolsOptions) (err error) {
	ctx := cmd.Context()

	rt, err := a.bootstrap(ctx, opts.configPath, nil)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, rt.close(ctx))
	}()

	tools := rt.dispatcher.Tools()

	if opts.jsonOutput {
		data, err := json.MarshalIndent(mcp.ToolDefs(tools), "", "  ")
		if err != nil {
			return fmt.Errorf("encode tool definitions: %w", err)
		}
		_, err = fmt.Fprintln(a.stdout, string(data))
		return err
	}

	fmt.Fprintf(a.stdout, "Pack %s v%s: %d tools\n\n", rt.pack.Name, rt.pack.Version, len(tools))

	if opts.verbose {
		for _, t := range tools {
			fmt.Fprintf(a.stdout, "%s (risk: %s)\n", t.Name(), t.Annotations().RiskLevel)
			fmt.Fprintf(a.stdout, "  %s\n", t.Description())
			if s := t.InputSchema(); !s.IsEmpty() {
				fmt.Fprintf(a.stdout, "  Input: %s\n", s.Raw())
			}
			fmt.Fprintln(a.stdout)
		}
		return nil
	}

	w := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tRISK\tREAD-ONLY\tIDEMPOTENT")
	for _, t := range tools {
		ann := t.Annotations()
		fmt.Fprintf(w, "%s\t%s\t%t\t%t\n", t.Name(), ann.RiskLevel, ann.ReadOnly, ann.Idempotent)
	}
	return w.Flush()
}
