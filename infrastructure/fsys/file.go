package fsys

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/saintfish/chardet"

	"github.com/felixgeelhaar/agent-fs/domain/text"
)

// CreateFile creates path, truncating existing content, and writes content.
func (f *FS) CreateFile(path, content string) error {
	return f.WriteTextFile(path, content)
}

// WriteTextFile opens path for writing, truncating it, and writes content.
// The file is created if absent.
func (f *FS) WriteTextFile(path, content string) error {
	return writeFile(f.resolve(path), content, f.cfg.FileMode)
}

func writeFile(p, content string, mode fs.FileMode) error {
	file, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode) // #nosec G304 -- caller-supplied path by contract
	if err != nil {
		return err
	}
	if _, err := file.WriteString(content); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// ReadTextFile returns the whole content of path.
// Content that is not valid UTF-8 fails with text.ErrInvalidEncoding.
func (f *FS) ReadTextFile(path string) (string, error) {
	doc, err := f.readDocument(f.resolve(path))
	if err != nil {
		return "", err
	}
	return doc.String(), nil
}

// DeleteFile removes a file. Directories are refused.
func (f *FS) DeleteFile(path string) error {
	p := f.resolve(path)
	info, err := os.Lstat(p)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return &fs.PathError{Op: "remove", Path: p, Err: ErrIsDirectory}
	}
	return os.Remove(p)
}

// IsDirectory reports whether path is a directory, following symlinks.
// A missing path is false, not an error.
func (f *FS) IsDirectory(path string) (bool, error) {
	info, err := os.Stat(f.resolve(path))
	if err != nil {
		if isMissing(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

// IsFile reports whether path is a regular file, following symlinks.
// A missing path is false, not an error.
func (f *FS) IsFile(path string) (bool, error) {
	info, err := os.Stat(f.resolve(path))
	if err != nil {
		if isMissing(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// PathExists reports whether anything exists at path. Broken symlinks
// count as missing.
func (f *FS) PathExists(path string) (bool, error) {
	_, err := os.Stat(f.resolve(path))
	if err != nil {
		if isMissing(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// FileSize returns the size in bytes of the regular file at path.
func (f *FS) FileSize(path string) (int64, error) {
	p := f.resolve(path)
	info, err := os.Stat(p)
	if err != nil {
		return 0, err
	}
	if !info.Mode().IsRegular() {
		return 0, &fs.PathError{Op: "size", Path: p, Err: ErrNotRegularFile}
	}
	return info.Size(), nil
}

// readDocument reads and decodes p in one pass.
func (f *FS) readDocument(p string) (text.Document, error) {
	data, err := os.ReadFile(p) // #nosec G304 -- caller-supplied path by contract
	if err != nil {
		return text.Document{}, err
	}
	doc, err := text.Decode(data)
	if err != nil {
		var decErr *text.DecodeError
		if f.cfg.DetectCharset && errors.As(err, &decErr) {
			decErr.Charset = detectCharset(data)
		}
		return text.Document{}, &fs.PathError{Op: "decode", Path: p, Err: err}
	}
	return doc, nil
}

// rewrite replaces the content of p.
func (f *FS) rewrite(p, content string) error {
	if f.cfg.AtomicRewrite {
		return atomic.WriteFile(p, strings.NewReader(content))
	}
	return writeFile(p, content, f.cfg.FileMode)
}

// detectCharset guesses the encoding of data that failed UTF-8 decoding.
func detectCharset(data []byte) string {
	result, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil || result == nil {
		return ""
	}
	if strings.EqualFold(result.Charset, "UTF-8") {
		return ""
	}
	return result.Charset
}
