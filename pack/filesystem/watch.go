package filesystem

import (
	"context"
	"time"

	"github.com/felixgeelhaar/agent-fs/domain/tool"
	"github.com/felixgeelhaar/agent-fs/infrastructure/fsys"
)

type watchInput struct {
	Path            string `json:"path"`
	DurationSeconds int    `json:"duration_seconds"`
}

type watchOutput struct {
	Path   string            `json:"path"`
	Events []fsys.WatchEvent `json:"events"`
	Count  int               `json:"count"`
}

func watchDirectoryTool(cfg *Config) tool.Tool {
	return tool.NewBuilder("watch_directory").
		WithDescription("Collect change events on a directory, or a single file, for duration_seconds.").
		ReadOnly().
		WithParams(
			pathParam,
			tool.Param{
				Name:        "duration_seconds",
				Type:        tool.TypeInteger,
				Description: "How long to watch; capped at the configured maximum",
				Default:     int(cfg.DefaultWatchDuration / time.Second),
			},
		).
		WithOutputSchema(outputSchema(map[string]string{
			"path":   stringSchema,
			"events": `{"type":"array","items":{"type":"object","properties":{"path":{"type":"string"},"op":{"type":"string"},"time":{"type":"string"}}}}`,
			"count":  integerSchema,
		})).
		WithHandler(handle(func(ctx context.Context, in watchInput) (any, error) {
			var d time.Duration
			switch {
			case in.DurationSeconds == 0:
				d = cfg.DefaultWatchDuration
			case in.DurationSeconds > int(cfg.MaxWatchDuration/time.Second):
				d = cfg.MaxWatchDuration
			default:
				d = time.Duration(in.DurationSeconds) * time.Second
			}

			events, err := cfg.FS.WatchDirectory(ctx, in.Path, d, cfg.WatchLimit)
			if err != nil {
				return nil, err
			}
			return watchOutput{Path: in.Path, Events: events, Count: len(events)}, nil
		})).
		MustBuild()
}
