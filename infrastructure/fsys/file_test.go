package fsys_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/felixgeelhaar/agent-fs/domain/text"
	"github.com/felixgeelhaar/agent-fs/infrastructure/fsys"
)

func TestWriteReadRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"ascii", "hello world\n"},
		{"multi-byte", "naïve café — 日本語 😀"},
		{"carriage returns kept", "a\r\nb\rc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := fsys.New()
			path := filepath.Join(t.TempDir(), "f.txt")

			if err := f.WriteTextFile(path, tt.content); err != nil {
				t.Fatalf("WriteTextFile() error = %v", err)
			}
			got, err := f.ReadTextFile(path)
			if err != nil {
				t.Fatalf("ReadTextFile() error = %v", err)
			}
			if got != tt.content {
				t.Errorf("ReadTextFile() = %q, want %q", got, tt.content)
			}
		})
	}
}

func TestCreateFile_Truncates(t *testing.T) {
	t.Parallel()

	f := fsys.New()
	path := filepath.Join(t.TempDir(), "f.txt")

	if err := f.CreateFile(path, "a much longer first version"); err != nil {
		t.Fatalf("CreateFile() error = %v", err)
	}
	if err := f.CreateFile(path, "short"); err != nil {
		t.Fatalf("CreateFile() error = %v", err)
	}

	got, _ := os.ReadFile(path)
	if string(got) != "short" {
		t.Errorf("content = %q, want short", got)
	}
}

func TestWriteTextFile_MissingParent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "no", "such", "f.txt")
	if err := fsys.New().WriteTextFile(path, "x"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error = %v, want ErrNotExist", err)
	}
}

func TestReadTextFile_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	f := fsys.New()

	if _, err := f.ReadTextFile(filepath.Join(dir, "missing")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing: error = %v, want ErrNotExist", err)
	}

	bad := filepath.Join(dir, "latin1.txt")
	if err := os.WriteFile(bad, []byte("caf\xe9 cr\xe8me br\xfbl\xe9e"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := f.ReadTextFile(bad)
	if !errors.Is(err, text.ErrInvalidEncoding) {
		t.Fatalf("invalid utf-8: error = %v, want ErrInvalidEncoding", err)
	}
	var decErr *text.DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("error %T does not wrap *text.DecodeError", err)
	}
	if decErr.Offset != 3 {
		t.Errorf("Offset = %d, want 3", decErr.Offset)
	}
}

func TestReadTextFile_CharsetGuess(t *testing.T) {
	t.Parallel()

	latin1 := []byte("Le gar\xe7on a r\xe9serv\xe9 une table pr\xe8s de la fen\xeatre pour le d\xe9jeuner de l'\xe9t\xe9, et la cr\xe8me br\xfbl\xe9e \xe9tait d\xe9licieuse.")

	tests := []struct {
		name        string
		detect      bool
		wantCharset bool
	}{
		{"detection on", true, true},
		{"detection off", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "latin1.txt")
			if err := os.WriteFile(path, latin1, 0o644); err != nil {
				t.Fatal(err)
			}

			f := fsys.New(fsys.WithCharsetDetection(tt.detect))
			_, err := f.ReadTextFile(path)
			var decErr *text.DecodeError
			if !errors.As(err, &decErr) {
				t.Fatalf("error = %v, want *text.DecodeError", err)
			}
			if decErr.Offset != 6 {
				t.Errorf("Offset = %d, want 6", decErr.Offset)
			}
			if got := decErr.Charset != ""; got != tt.wantCharset {
				t.Errorf("Charset = %q, want guess %v", decErr.Charset, tt.wantCharset)
			}
			if tt.wantCharset && strings.EqualFold(decErr.Charset, "UTF-8") {
				t.Errorf("Charset = %q, want a non UTF-8 guess", decErr.Charset)
			}
		})
	}
}

func TestDeleteFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	f := fsys.New()
	path := filepath.Join(dir, "f.txt")
	if err := f.CreateFile(path, ""); err != nil {
		t.Fatal(err)
	}

	if err := f.DeleteFile(path); err != nil {
		t.Fatalf("DeleteFile() error = %v", err)
	}
	if ok, _ := f.PathExists(path); ok {
		t.Error("file still exists")
	}

	if err := f.DeleteFile(path); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("second DeleteFile() error = %v, want ErrNotExist", err)
	}

	sub := filepath.Join(dir, "sub")
	if err := f.CreateDirectory(sub); err != nil {
		t.Fatal(err)
	}
	if err := f.DeleteFile(sub); !errors.Is(err, fsys.ErrIsDirectory) {
		t.Errorf("directory: error = %v, want ErrIsDirectory", err)
	}
	if ok, _ := f.IsDirectory(sub); !ok {
		t.Error("directory was removed by DeleteFile")
	}
}

func TestPredicates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	f := fsys.New()

	tests := []struct {
		name   string
		path   string
		isDir  bool
		isFile bool
		exists bool
	}{
		{"directory", dir, true, false, true},
		{"file", file, false, true, true},
		{"missing", filepath.Join(dir, "missing"), false, false, false},
		{"under a file", filepath.Join(file, "child"), false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got, err := f.IsDirectory(tt.path); err != nil || got != tt.isDir {
				t.Errorf("IsDirectory() = %v, %v, want %v", got, err, tt.isDir)
			}
			if got, err := f.IsFile(tt.path); err != nil || got != tt.isFile {
				t.Errorf("IsFile() = %v, %v, want %v", got, err, tt.isFile)
			}
			if got, err := f.PathExists(tt.path); err != nil || got != tt.exists {
				t.Errorf("PathExists() = %v, %v, want %v", got, err, tt.exists)
			}
		})
	}
}

func TestFileSize(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	f := fsys.New()
	path := filepath.Join(dir, "f.txt")
	content := "héllo" // 6 bytes, 5 characters
	if err := f.WriteTextFile(path, content); err != nil {
		t.Fatal(err)
	}

	size, err := f.FileSize(path)
	if err != nil {
		t.Fatalf("FileSize() error = %v", err)
	}
	if size != 6 {
		t.Errorf("FileSize() = %d, want 6", size)
	}

	if _, err := f.FileSize(filepath.Join(dir, "missing")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing: error = %v, want ErrNotExist", err)
	}
	if _, err := f.FileSize(dir); !errors.Is(err, fsys.ErrNotRegularFile) {
		t.Errorf("directory: error = %v, want ErrNotRegularFile", err)
	}
}

func TestBaseDirResolution(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	f := fsys.New(fsys.WithBaseDir(dir))

	if err := f.WriteTextFile("rel.txt", "relative"); err != nil {
		t.Fatalf("WriteTextFile() error = %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "rel.txt"))
	if err != nil {
		t.Fatalf("file not created under base dir: %v", err)
	}
	if string(data) != "relative" {
		t.Errorf("content = %q", data)
	}

	abs := filepath.Join(t.TempDir(), "abs.txt")
	if err := f.WriteTextFile(abs, "absolute"); err != nil {
		t.Fatalf("WriteTextFile(abs) error = %v", err)
	}
	if ok, _ := fsys.New().IsFile(abs); !ok {
		t.Error("absolute path was rewritten against base dir")
	}
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := fsys.DefaultConfig()
	if cfg.FileMode != 0o666 {
		t.Errorf("FileMode = %o, want 666", cfg.FileMode)
	}
	if cfg.DirMode != 0o777 {
		t.Errorf("DirMode = %o, want 777", cfg.DirMode)
	}
	if cfg.AtomicRewrite || cfg.ParallelWalk {
		t.Error("optional behaviors should be off by default")
	}

	f := fsys.New(fsys.WithAtomicRewrite(true), fsys.WithParallel(true), fsys.WithCharsetDetection(false), fsys.WithFileMode(0o600), fsys.WithDirMode(0o700))
	got := f.Config()
	if !got.AtomicRewrite || !got.ParallelWalk || got.DetectCharset || got.FileMode != 0o600 || got.DirMode != 0o700 {
		t.Errorf("options not applied: %+v", got)
	}
}
