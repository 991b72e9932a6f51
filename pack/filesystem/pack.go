// Package filesystem exposes the fsys operations as agent tools.
//
// Directory, whole-file, and predicate tools return library errors as
// execution errors. The chunk tools and get_file_size log the failure and
// return a null or false value instead.
package filesystem

import (
	"errors"
	"time"

	"github.com/felixgeelhaar/bolt/v3"

	"github.com/felixgeelhaar/agent-fs/domain/pack"
	"github.com/felixgeelhaar/agent-fs/infrastructure/fsys"
	"github.com/felixgeelhaar/agent-fs/infrastructure/logging"
)

// PackName is the name the pack registers under.
const PackName = "filesystem"

// ErrInvalidConfig indicates a pack option out of range.
var ErrInvalidConfig = errors.New("invalid filesystem pack config")

// Config configures the filesystem pack.
type Config struct {
	// FS performs the operations. Nil means fsys.New(FSOptions...).
	FS *fsys.FS

	// FSOptions are used when FS is nil.
	FSOptions []fsys.Option

	// Logger receives sentinel warnings. Nil means the default logger at
	// the time of the call.
	Logger *bolt.Logger

	// WatchLimit caps the events returned by one watch_directory call.
	WatchLimit int

	// MaxWatchDuration caps duration_seconds.
	MaxWatchDuration time.Duration

	// DefaultWatchDuration applies when duration_seconds is omitted or zero.
	DefaultWatchDuration time.Duration
}

// Option configures the filesystem pack.
type Option func(*Config)

// WithFS uses an existing filesystem.
func WithFS(f *fsys.FS) Option {
	return func(c *Config) {
		c.FS = f
	}
}

// WithFilesystemOptions configures the filesystem the pack creates.
func WithFilesystemOptions(opts ...fsys.Option) Option {
	return func(c *Config) {
		c.FSOptions = append(c.FSOptions, opts...)
	}
}

// WithLogger sets the logger for sentinel warnings.
func WithLogger(l *bolt.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithWatchLimit sets the maximum number of events per watch call.
func WithWatchLimit(n int) Option {
	return func(c *Config) {
		c.WatchLimit = n
	}
}

// WithWatchDuration sets the default and maximum watch durations.
func WithWatchDuration(def, max time.Duration) Option {
	return func(c *Config) {
		c.DefaultWatchDuration = def
		c.MaxWatchDuration = max
	}
}

// New creates the filesystem pack.
func New(opts ...Option) (*pack.Pack, error) {
	cfg := Config{
		WatchLimit:           100,
		MaxWatchDuration:     60 * time.Second,
		DefaultWatchDuration: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.WatchLimit <= 0 {
		return nil, errors.Join(ErrInvalidConfig, errors.New("watch limit must be positive"))
	}
	if cfg.DefaultWatchDuration <= 0 || cfg.MaxWatchDuration < cfg.DefaultWatchDuration {
		return nil, errors.Join(ErrInvalidConfig, errors.New("watch durations must satisfy 0 < default <= max"))
	}
	if cfg.FS == nil {
		cfg.FS = fsys.New(cfg.FSOptions...)
	}

	return pack.NewBuilder(PackName).
		WithDescription("Local filesystem: directories, whole files, and character-offset text chunks").
		WithVersion("1.0.0").
		WithMetadata("base_dir", cfg.FS.Config().BaseDir).
		AddTools(
			listDirectoryTool(&cfg),
			createDirectoryTool(&cfg),
			deleteDirectoryTool(&cfg),
			createFileTool(&cfg),
			writeTextFileTool(&cfg),
			readTextFileTool(&cfg),
			readChunkTool(&cfg),
			writeChunkTool(&cfg),
			setFileLengthTool(&cfg),
			deleteFileTool(&cfg),
			isDirectoryTool(&cfg),
			isFileTool(&cfg),
			pathExistsTool(&cfg),
			fileSizeTool(&cfg),
			watchDirectoryTool(&cfg),
		).
		Build()
}

// warnFailed logs a failure that a sentinel tool turns into a null result.
func (c *Config) warnFailed(op, path string, err error) {
	ev := logging.Warn()
	if c.Logger != nil {
		ev = logging.NewEvent(c.Logger.Warn())
	}
	ev.Add(
		logging.Component(PackName),
		logging.Operation(op),
		logging.Path(path),
		logging.ErrorField(err),
	).Msg("filesystem operation failed")
}
