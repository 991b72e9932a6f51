package fsys

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
)

// ListOption configures ListDirectoryContents.
type ListOption func(*listOptions)

type listOptions struct {
	pattern  string
	parallel bool
}

// WithPattern keeps only entries whose path relative to the listed
// directory matches a doublestar glob ("*.txt", "**/*.go").
func WithPattern(pattern string) ListOption {
	return func(o *listOptions) {
		o.pattern = pattern
	}
}

// WithParallelWalk overrides the configured walker for one recursive call.
// Parallel results are sorted by path.
func WithParallelWalk(enabled bool) ListOption {
	return func(o *listOptions) {
		o.parallel = enabled
	}
}

// ListDirectoryContents returns the paths of the entries under path, each
// joined onto path as given.
//
// Non-recursive mode returns the immediate children. Recursive mode walks
// top-down: for every directory it emits the subdirectories, then the files,
// then descends into each subdirectory. Symlinks to directories are listed as
// directories but not followed. Unreadable subdirectories are skipped; an
// unreadable, missing, or non-directory root is an error.
func (f *FS) ListDirectoryContents(path string, recursive bool, opts ...ListOption) ([]string, error) {
	lo := listOptions{parallel: f.cfg.ParallelWalk}
	for _, opt := range opts {
		opt(&lo)
	}
	if lo.pattern != "" && !doublestar.ValidatePattern(lo.pattern) {
		return nil, fmt.Errorf("%w: %q", ErrBadPattern, lo.pattern)
	}

	root := f.resolve(path)

	var (
		rels []string
		err  error
	)
	switch {
	case !recursive:
		rels, err = listImmediate(root)
	case lo.parallel:
		rels, err = walkParallel(root)
	default:
		rels, err = walkTopDown(root)
	}
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(rels))
	for _, rel := range rels {
		if lo.pattern != "" {
			// Pattern validated above, Match cannot fail.
			if ok, _ := doublestar.Match(lo.pattern, filepath.ToSlash(rel)); !ok {
				continue
			}
		}
		paths = append(paths, filepath.Join(path, rel))
	}
	return paths, nil
}

func listImmediate(root string) ([]string, error) {
	if err := requireDir(root); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names, nil
}

func walkTopDown(root string) ([]string, error) {
	if err := requireDir(root); err != nil {
		return nil, err
	}

	var out []string
	var visit func(rel string) error
	visit = func(rel string) error {
		entries, err := os.ReadDir(filepath.Join(root, rel))
		if err != nil {
			return err
		}

		var dirs, files []string
		var follow []string
		for _, e := range entries {
			child := filepath.Join(rel, e.Name())
			isDir, isLink := classify(filepath.Join(root, child), e)
			switch {
			case isDir:
				dirs = append(dirs, child)
				if !isLink {
					follow = append(follow, child)
				}
			default:
				files = append(files, child)
			}
		}
		out = append(out, dirs...)
		out = append(out, files...)

		for _, d := range follow {
			// Subdirectories that vanish or cannot be read are skipped.
			_ = visit(d)
		}
		return nil
	}

	if err := visit(""); err != nil {
		return nil, err
	}
	return out, nil
}

// classify reports whether an entry is a directory, following symlinks for
// the classification only.
func classify(full string, e fs.DirEntry) (isDir, isLink bool) {
	if e.Type()&fs.ModeSymlink == 0 {
		return e.IsDir(), false
	}
	info, err := os.Stat(full)
	if err != nil {
		return false, true
	}
	return info.IsDir(), true
}

func walkParallel(root string) ([]string, error) {
	if err := requireDir(root); err != nil {
		return nil, err
	}

	var (
		mu  sync.Mutex
		out []string
	)
	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		rel, relErr := filepath.Rel(root, p)
		if relErr != nil || rel == "." {
			return nil
		}
		mu.Lock()
		out = append(out, rel)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(out)
	return out, nil
}

func requireDir(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return &fs.PathError{Op: "readdir", Path: root, Err: ErrNotDirectory}
	}
	return nil
}

// CreateDirectory creates path and any missing parents. An existing
// directory is not an error.
func (f *FS) CreateDirectory(path string) error {
	return os.MkdirAll(f.resolve(path), f.cfg.DirMode)
}

// DeleteDirectory removes an empty directory.
func (f *FS) DeleteDirectory(path string) error {
	p := f.resolve(path)
	info, err := os.Lstat(p)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return &fs.PathError{Op: "rmdir", Path: p, Err: ErrNotDirectory}
	}
	return os.Remove(p)
}
