package filesystem

import (
	"context"

	"github.com/felixgeelhaar/agent-fs/domain/tool"
)

type writeInput struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

type writeOutput struct {
	Path  string `json:"path"`
	Bytes int    `json:"bytes"`
}

type readOutput struct {
	Content string `json:"content"`
}

var contentParam = tool.Param{
	Name:        "content",
	Type:        tool.TypeString,
	Description: "UTF-8 text to write",
	Default:     "",
}

var writeOutputSchema = outputSchema(map[string]string{
	"path":  stringSchema,
	"bytes": integerSchema,
})

func createFileTool(cfg *Config) tool.Tool {
	return tool.NewBuilder("create_file").
		WithDescription("Create a file with the given content, replacing any existing content.").
		Destructive().
		Idempotent().
		WithRiskLevel(tool.RiskMedium).
		WithParams(pathParam, contentParam).
		WithOutputSchema(writeOutputSchema).
		WithHandler(handle(func(_ context.Context, in writeInput) (any, error) {
			if err := cfg.FS.CreateFile(in.Path, in.Content); err != nil {
				return nil, err
			}
			return writeOutput{Path: in.Path, Bytes: len(in.Content)}, nil
		})).
		MustBuild()
}

func writeTextFileTool(cfg *Config) tool.Tool {
	return tool.NewBuilder("write_text_file").
		WithDescription("Write text to a file, truncating it first. The file is created if absent.").
		Destructive().
		Idempotent().
		WithRiskLevel(tool.RiskMedium).
		WithParams(pathParam, contentParam).
		WithOutputSchema(writeOutputSchema).
		WithHandler(handle(func(_ context.Context, in writeInput) (any, error) {
			if err := cfg.FS.WriteTextFile(in.Path, in.Content); err != nil {
				return nil, err
			}
			return writeOutput{Path: in.Path, Bytes: len(in.Content)}, nil
		})).
		MustBuild()
}

func readTextFileTool(cfg *Config) tool.Tool {
	return tool.NewBuilder("read_text_file").
		WithDescription("Read the whole content of a UTF-8 text file.").
		ReadOnly().
		Idempotent().
		WithParams(pathParam).
		WithOutputSchema(outputSchema(map[string]string{"content": stringSchema})).
		WithHandler(handle(func(_ context.Context, in pathInput) (any, error) {
			content, err := cfg.FS.ReadTextFile(in.Path)
			if err != nil {
				return nil, err
			}
			return readOutput{Content: content}, nil
		})).
		MustBuild()
}

func deleteFileTool(cfg *Config) tool.Tool {
	return tool.NewBuilder("delete_file").
		WithDescription("Delete a file. Directories are refused.").
		Destructive().
		WithParams(pathParam).
		WithOutputSchema(outputSchema(map[string]string{"path": stringSchema})).
		WithHandler(handle(func(_ context.Context, in pathInput) (any, error) {
			if err := cfg.FS.DeleteFile(in.Path); err != nil {
				return nil, err
			}
			return pathOutput{Path: in.Path}, nil
		})).
		MustBuild()
}

// predicateTool builds a read-only tool reporting {"result": bool}.
func predicateTool(name, desc string, check func(string) (bool, error)) tool.Tool {
	return tool.NewBuilder(name).
		WithDescription(desc).
		ReadOnly().
		Idempotent().
		WithParams(pathParam).
		WithOutputSchema(outputSchema(map[string]string{"result": booleanSchema})).
		WithHandler(handle(func(_ context.Context, in pathInput) (any, error) {
			ok, err := check(in.Path)
			if err != nil {
				return nil, err
			}
			return boolOutput{Result: ok}, nil
		})).
		MustBuild()
}

func isDirectoryTool(cfg *Config) tool.Tool {
	return predicateTool("is_directory", "Report whether the path is a directory. Missing paths are false.", cfg.FS.IsDirectory)
}

func isFileTool(cfg *Config) tool.Tool {
	return predicateTool("is_file", "Report whether the path is a regular file. Missing paths are false.", cfg.FS.IsFile)
}

func pathExistsTool(cfg *Config) tool.Tool {
	return predicateTool("does_path_exist", "Report whether anything exists at the path.", cfg.FS.PathExists)
}
