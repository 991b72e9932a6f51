package filesystem

import (
	"context"

	"github.com/felixgeelhaar/agent-fs/domain/tool"
	"github.com/felixgeelhaar/agent-fs/infrastructure/fsys"
)

type listInput struct {
	Path      string `json:"path"`
	Recursive bool   `json:"recursive"`
	Pattern   string `json:"pattern"`
}

type listOutput struct {
	Paths []string `json:"paths"`
}

func listDirectoryTool(cfg *Config) tool.Tool {
	return tool.NewBuilder("list_directory_contents").
		WithDescription("List the entries of a directory. Recursive listings walk top-down: subdirectories, then files, then each subdirectory in turn.").
		ReadOnly().
		Idempotent().
		WithParams(
			pathParam,
			tool.Param{Name: "recursive", Type: tool.TypeBoolean, Description: "Walk the whole tree", Default: false},
			tool.Param{Name: "pattern", Type: tool.TypeString, Description: "Glob relative to path, such as *.txt or **/*.go"},
		).
		WithOutputSchema(outputSchema(map[string]string{
			"paths": `{"type":"array","items":{"type":"string"}}`,
		})).
		WithHandler(handle(func(_ context.Context, in listInput) (any, error) {
			var opts []fsys.ListOption
			if in.Pattern != "" {
				opts = append(opts, fsys.WithPattern(in.Pattern))
			}
			paths, err := cfg.FS.ListDirectoryContents(in.Path, in.Recursive, opts...)
			if err != nil {
				return nil, err
			}
			if paths == nil {
				paths = []string{}
			}
			return listOutput{Paths: paths}, nil
		})).
		MustBuild()
}

func createDirectoryTool(cfg *Config) tool.Tool {
	return tool.NewBuilder("create_directory").
		WithDescription("Create a directory and any missing parents. An existing directory is not an error.").
		Idempotent().
		WithRiskLevel(tool.RiskLow).
		WithParams(pathParam).
		WithOutputSchema(outputSchema(map[string]string{"path": stringSchema})).
		WithHandler(handle(func(_ context.Context, in pathInput) (any, error) {
			if err := cfg.FS.CreateDirectory(in.Path); err != nil {
				return nil, err
			}
			return pathOutput{Path: in.Path}, nil
		})).
		MustBuild()
}

func deleteDirectoryTool(cfg *Config) tool.Tool {
	return tool.NewBuilder("delete_directory").
		WithDescription("Delete an empty directory.").
		Destructive().
		WithRiskLevel(tool.RiskMedium).
		WithParams(pathParam).
		WithOutputSchema(outputSchema(map[string]string{"path": stringSchema})).
		WithHandler(handle(func(_ context.Context, in pathInput) (any, error) {
			if err := cfg.FS.DeleteDirectory(in.Path); err != nil {
				return nil, err
			}
			return pathOutput{Path: in.Path}, nil
		})).
		MustBuild()
}
