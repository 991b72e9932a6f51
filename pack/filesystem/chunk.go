package filesystem

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/agent-fs/domain/tool"
	"github.com/felixgeelhaar/agent-fs/infrastructure/fsys"
)

type readChunkInput struct {
	Path      string `json:"path"`
	Offset    int    `json:"offset"`
	ChunkSize int    `json:"chunk_size"`
}

type readChunkOutput struct {
	Chunk *string `json:"chunk"`
}

type writeChunkInput struct {
	Path       string `json:"path"`
	Data       string `json:"data"`
	CharOffset int    `json:"char_offset"`
}

type setLengthInput struct {
	Path   string `json:"path"`
	Length int    `json:"length"`
}

type sizeOutput struct {
	Size *int64 `json:"size"`
}

var successSchema = outputSchema(map[string]string{"success": booleanSchema})

func readChunkTool(cfg *Config) tool.Tool {
	return tool.NewBuilder("read_text_file_chunk").
		WithDescription("Read chunk_size characters starting at a character offset. Offsets past the end return an empty chunk; failures return null.").
		ReadOnly().
		Idempotent().
		WithParams(
			pathParam,
			tool.Param{Name: "offset", Type: tool.TypeInteger, Description: "Start position in characters", Required: true},
			tool.Param{Name: "chunk_size", Type: tool.TypeInteger, Description: "Number of characters to read", Required: true},
		).
		WithOutputSchema(outputSchema(map[string]string{"chunk": nullableStringSchema})).
		WithHandler(handle(func(_ context.Context, in readChunkInput) (any, error) {
			chunk, err := cfg.FS.ReadTextFileChunk(in.Path, in.Offset, in.ChunkSize)
			if err != nil {
				cfg.warnFailed("read_text_file_chunk", in.Path, err)
				return readChunkOutput{}, nil
			}
			return readChunkOutput{Chunk: &chunk}, nil
		})).
		MustBuild()
}

func writeChunkTool(cfg *Config) tool.Tool {
	return tool.NewBuilder("write_text_file_chunk").
		WithDescription("Keep the first char_offset characters of an existing file, append data, and drop the rest.").
		Destructive().
		WithRiskLevel(tool.RiskMedium).
		WithParams(
			pathParam,
			tool.Param{Name: "data", Type: tool.TypeString, Description: "Text written at char_offset", Required: true},
			tool.Param{Name: "char_offset", Type: tool.TypeInteger, Description: "Characters of existing content to keep", Required: true},
		).
		WithOutputSchema(successSchema).
		WithHandler(handle(func(_ context.Context, in writeChunkInput) (any, error) {
			if err := cfg.FS.WriteTextFileChunk(in.Path, in.Data, in.CharOffset); err != nil {
				cfg.warnFailed("write_text_file_chunk", in.Path, err)
				return successOutput{Success: false}, nil
			}
			return successOutput{Success: true}, nil
		})).
		MustBuild()
}

func setFileLengthTool(cfg *Config) tool.Tool {
	return tool.NewBuilder("set_file_length").
		WithDescription("Truncate a text file or pad it with spaces to exactly length characters.").
		Destructive().
		Idempotent().
		WithRiskLevel(tool.RiskMedium).
		WithParams(
			pathParam,
			tool.Param{Name: "length", Type: tool.TypeInteger, Description: "Target length in characters", Required: true},
		).
		WithOutputSchema(successSchema).
		WithHandler(handle(func(_ context.Context, in setLengthInput) (any, error) {
			if err := cfg.FS.SetFileLength(in.Path, in.Length); err != nil {
				cfg.warnFailed("set_file_length", in.Path, err)
				return successOutput{Success: false}, nil
			}
			return successOutput{Success: true}, nil
		})).
		MustBuild()
}

func fileSizeTool(cfg *Config) tool.Tool {
	return tool.NewBuilder("get_file_size").
		WithDescription("Return the size of a regular file in bytes, or null if it cannot be determined.").
		ReadOnly().
		Idempotent().
		WithParams(pathParam).
		WithOutputSchema(outputSchema(map[string]string{"size": nullableIntSchema})).
		WithHandler(handle(func(_ context.Context, in pathInput) (any, error) {
			size, err := cfg.FS.FileSize(in.Path)
			if err != nil {
				if !errors.Is(err, fsys.ErrNotRegularFile) {
					cfg.warnFailed("get_file_size", in.Path, err)
				}
				return sizeOutput{}, nil
			}
			return sizeOutput{Size: &size}, nil
		})).
		MustBuild()
}
