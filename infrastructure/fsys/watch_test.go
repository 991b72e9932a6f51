package fsys_test

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/felixgeelhaar/agent-fs/infrastructure/fsys"
)

// touchUntil keeps creating files in dir until stop is closed, so the test
// does not depend on when the watcher is registered.
func touchUntil(dir string, stop <-chan struct{}) {
	for i := 0; ; i++ {
		select {
		case <-stop:
			return
		case <-time.After(20 * time.Millisecond):
			_ = os.WriteFile(filepath.Join(dir, fmt.Sprintf("f%d.txt", i)), []byte("x"), 0o644)
		}
	}
}

func TestWatchDirectory_Events(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	stop := make(chan struct{})
	go touchUntil(dir, stop)
	defer close(stop)

	events, err := fsys.New().WatchDirectory(context.Background(), dir, 5*time.Second, 1)
	if err != nil {
		t.Fatalf("WatchDirectory() error = %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("events = %v, want exactly 1", events)
	}
	if !strings.HasPrefix(events[0].Path, dir) || events[0].Op == "" || events[0].Time.IsZero() {
		t.Errorf("event = %+v", events[0])
	}
}

func TestWatchDirectory_RelativeToBaseDir(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	if err := os.Mkdir(filepath.Join(base, "inbox"), 0o755); err != nil {
		t.Fatal(err)
	}
	stop := make(chan struct{})
	go touchUntil(filepath.Join(base, "inbox"), stop)
	defer close(stop)

	events, err := fsys.New(fsys.WithBaseDir(base)).WatchDirectory(context.Background(), "inbox", 5*time.Second, 1)
	if err != nil {
		t.Fatalf("WatchDirectory() error = %v", err)
	}
	if len(events) != 1 || !strings.HasPrefix(events[0].Path, "inbox"+string(filepath.Separator)) {
		t.Errorf("events = %+v, want paths under inbox/", events)
	}
}

func TestWatchDirectory_Timeout(t *testing.T) {
	t.Parallel()

	events, err := fsys.New().WatchDirectory(context.Background(), t.TempDir(), 30*time.Millisecond, 0)
	if err != nil {
		t.Fatalf("WatchDirectory() error = %v", err)
	}
	if len(events) != 0 {
		t.Errorf("events = %v, want none", events)
	}
	if events == nil {
		t.Error("events should be empty, not nil")
	}
}

func TestWatchDirectory_ContextDone(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	if _, err := fsys.New().WatchDirectory(ctx, t.TempDir(), time.Minute, 0); err != nil {
		t.Fatalf("WatchDirectory() error = %v", err)
	}
	if time.Since(start) > 10*time.Second {
		t.Error("WatchDirectory() ignored a canceled context")
	}
}

func TestWatchDirectory_FileTarget(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "watched.txt")
	if err := os.WriteFile(target, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	stop := make(chan struct{})
	go func() {
		for {
			select {
			case <-stop:
				return
			case <-time.After(20 * time.Millisecond):
				_ = os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644)
				_ = os.WriteFile(target, []byte("y"), 0o644)
			}
		}
	}()
	defer close(stop)

	events, err := fsys.New().WatchDirectory(context.Background(), target, 5*time.Second, 3)
	if err != nil {
		t.Fatalf("WatchDirectory() error = %v", err)
	}
	for _, ev := range events {
		if ev.Path != target {
			t.Errorf("event for %s, want only %s", ev.Path, target)
		}
	}
}

func TestWatchDirectory_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	if _, err := fsys.New().WatchDirectory(context.Background(), filepath.Join(dir, "missing"), time.Second, 0); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing path error = %v, want fs.ErrNotExist", err)
	}
	if _, err := fsys.New().WatchDirectory(context.Background(), dir, -time.Second, 0); !errors.Is(err, fsys.ErrInvalidArgument) {
		t.Errorf("negative duration error = %v, want ErrInvalidArgument", err)
	}
}
