// Package fsys implements the filesystem operations behind the agent tools.
//
// Every method is a thin pass-through to the os package: one or two system
// calls, no caching, no locking. All failures are returned as errors; the
// tool layer decides which of them become sentinel results.
//
// Text content is always UTF-8. Chunk operations address content by
// character offset (see package text) and decode the file once per call.
package fsys

import (
	"errors"
	"io/fs"
	"path/filepath"
	"syscall"
)

// Domain errors for filesystem operations.
var (
	// ErrInvalidArgument indicates a negative offset, size, or length.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotRegularFile indicates the path exists but is not a regular file.
	ErrNotRegularFile = errors.New("not a regular file")

	// ErrNotDirectory indicates the path exists but is not a directory.
	ErrNotDirectory = errors.New("not a directory")

	// ErrIsDirectory indicates a file operation was given a directory.
	ErrIsDirectory = errors.New("is a directory")

	// ErrBadPattern indicates a malformed glob pattern.
	ErrBadPattern = errors.New("invalid glob pattern")
)

// Config configures filesystem behavior.
type Config struct {
	// BaseDir resolves relative paths. Empty means the working directory.
	BaseDir string

	// FileMode is the permission used when creating files (before umask).
	FileMode fs.FileMode

	// DirMode is the permission used when creating directories (before umask).
	DirMode fs.FileMode

	// AtomicRewrite replaces files via temp file + rename in chunk writes.
	AtomicRewrite bool

	// ParallelWalk uses a concurrent walker for recursive listings.
	ParallelWalk bool

	// DetectCharset guesses the real encoding when decoding fails.
	DetectCharset bool
}

// DefaultConfig returns the configuration used by New.
func DefaultConfig() Config {
	return Config{
		FileMode:      0o666,
		DirMode:       0o777,
		DetectCharset: true,
	}
}

// Option configures an FS.
type Option func(*Config)

// WithBaseDir resolves relative paths against dir.
func WithBaseDir(dir string) Option {
	return func(c *Config) {
		c.BaseDir = dir
	}
}

// WithFileMode sets the permission for created files.
func WithFileMode(mode fs.FileMode) Option {
	return func(c *Config) {
		c.FileMode = mode
	}
}

// WithDirMode sets the permission for created directories.
func WithDirMode(mode fs.FileMode) Option {
	return func(c *Config) {
		c.DirMode = mode
	}
}

// WithAtomicRewrite enables temp-file-and-rename rewrites.
func WithAtomicRewrite(enabled bool) Option {
	return func(c *Config) {
		c.AtomicRewrite = enabled
	}
}

// WithParallel enables the concurrent walker for recursive listings.
func WithParallel(enabled bool) Option {
	return func(c *Config) {
		c.ParallelWalk = enabled
	}
}

// WithCharsetDetection toggles charset guessing on decode failures.
func WithCharsetDetection(enabled bool) Option {
	return func(c *Config) {
		c.DetectCharset = enabled
	}
}

// FS runs filesystem operations against the host OS.
type FS struct {
	cfg Config
}

// New creates an FS.
func New(opts ...Option) *FS {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &FS{cfg: cfg}
}

// Config returns the effective configuration.
func (f *FS) Config() Config {
	return f.cfg
}

// resolve maps a caller path onto the host filesystem.
func (f *FS) resolve(path string) string {
	if f.cfg.BaseDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(f.cfg.BaseDir, path)
}

// isMissing reports errors that mean "nothing is at this path".
// ENOTDIR covers a parent component that is a regular file.
func isMissing(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}
