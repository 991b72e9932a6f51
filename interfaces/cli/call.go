package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// SourceCLI tags calls made from the command line.
const SourceCLI = "cli"

// callOptions holds options for the call command.
type callOptions struct {
	configPath string
	compact    bool
}

// newCallCmd creates the call command.
func (a *App) newCallCmd() *cobra.Command {
	opts := &callOptions{}

	cmd := &cobra.Command{
		Use:   "call <tool> [input]",
		Short: "Call a tool once and print its output",
		Long: `Call a single tool with a JSON input object and print the JSON output.

The input defaults to {}. Pass - to read it from stdin.

Examples:
  agentfs call list_directory_contents '{"path": ".", "recursive": true}'
  agentfs call read_text_file_chunk '{"path": "notes.txt", "offset": 10, "chunk_size": 20}'
  echo '{"path": "notes.txt"}' | agentfs call get_file_size -`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "{}"
			if len(args) == 2 {
				input = args[1]
			}
			return a.call(cmd, opts, args[0], input)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file")
	cmd.Flags().BoolVar(&opts.compact, "compact", false, "Print output without indentation")

	return cmd
}

func (a *App) call(cmd *cobra.Command, opts *callOptions, name, input string) (err error) {
	ctx := cmd.Context()

	raw, err := a.readInput(input)
	if err != nil {
		return err
	}

	rt, err := a.bootstrap(ctx, opts.configPath, nil)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, rt.close(ctx))
	}()

	result, err := rt.dispatcher.Call(ctx, name, raw, SourceCLI)
	if err != nil {
		return err
	}
	if result.Error != nil {
		return result.Error
	}

	out := []byte(result.Output)
	if !opts.compact {
		var buf bytes.Buffer
		if err := json.Indent(&buf, result.Output, "", "  "); err == nil {
			out = buf.Bytes()
		}
	}
	_, err = fmt.Fprintln(a.stdout, string(out))
	return err
}

// readInput returns the tool input, reading stdin for "-".
func (a *App) readInput(input string) (json.RawMessage, error) {
	if input == "-" {
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		input = string(data)
	}
	input = strings.TrimSpace(input)
	if !json.Valid([]byte(input)) {
		return nil, fmt.Errorf("input is not valid JSON: %q", input)
	}
	return json.RawMessage(input), nil
}
