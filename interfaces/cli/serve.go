package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	domainconfig "github.com/felixgeelhaar/agent-fs/domain/config"
	"github.com/felixgeelhaar/agent-fs/infrastructure/mcp"
)

// serveOptions holds options for the serve command.
type serveOptions struct {
	configPath string
	transport  string
	address    string
}

// newServeCmd creates the serve command.
func (a *App) newServeCmd() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the filesystem tools over MCP",
		Long: `Serve the filesystem tools to an MCP client.

The stdio transport speaks the protocol on stdin and stdout, so logs and
stdout traces are written to stderr. The http transport listens on --addr.

Examples:
  # Serve over stdio with defaults
  agentfs serve

  # Serve over HTTP with a configuration file
  agentfs serve -c agentfs.yaml --transport http --addr :9090`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file")
	cmd.Flags().StringVar(&opts.transport, "transport", "", "Transport: stdio or http (overrides config)")
	cmd.Flags().StringVar(&opts.address, "addr", "", "Listen address for the http transport (overrides config)")

	return cmd
}

func (a *App) serve(cmd *cobra.Command, opts *serveOptions) (err error) {
	ctx := cmd.Context()

	var override func(*domainconfig.ServerConfig)
	if opts.transport != "" || opts.address != "" {
		override = func(c *domainconfig.ServerConfig) {
			if opts.transport != "" {
				c.Server.Transport = opts.transport
			}
			if opts.address != "" {
				c.Server.Address = opts.address
			}
		}
	}

	rt, err := a.bootstrap(ctx, opts.configPath, override)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, rt.close(ctx))
	}()

	srv, err := mcp.NewServer(mcp.ServerConfig{
		Name:         rt.settings.Server.Name,
		Version:      Version,
		Description:  rt.pack.Description,
		Instructions: rt.settings.Server.Instructions,
		Dispatcher:   rt.dispatcher,
	})
	if err != nil {
		return fmt.Errorf("create mcp server: %w", err)
	}

	return srv.Serve(ctx, rt.settings.Server.Transport, rt.settings.Server.Address)
}
