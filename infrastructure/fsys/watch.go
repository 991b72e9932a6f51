package fsys

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/felixgeelhaar/agent-fs/infrastructure/logging"
)

// WatchEvent is one change observed by WatchDirectory.
type WatchEvent struct {
	// Path is the changed entry, joined onto the watched path as given.
	Path string `json:"path"`
	// Op lists the change kinds, such as CREATE or WRITE|CHMOD.
	Op string `json:"op"`
	// Time is when the event was received.
	Time time.Time `json:"time"`
}

// WatchDirectory collects changes to the entries of path (not recursive)
// until d elapses, limit events arrive, or ctx is done. A file path watches
// that file alone. A limit of zero or less means no cap.
func (f *FS) WatchDirectory(ctx context.Context, path string, d time.Duration, limit int) ([]WatchEvent, error) {
	if d < 0 {
		return nil, fmt.Errorf("%w: negative duration %s", ErrInvalidArgument, d)
	}

	p := f.resolve(path)
	info, err := os.Stat(p)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	target := p
	if !info.IsDir() {
		target = filepath.Dir(p)
	}
	if err := watcher.Add(target); err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	events := []WatchEvent{}
	for {
		select {
		case <-ctx.Done():
			return events, nil
		case <-timer.C:
			return events, nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return events, nil
			}
			if !info.IsDir() && ev.Name != p {
				continue
			}
			events = append(events, WatchEvent{
				Path: f.callerPath(path, p, ev.Name),
				Op:   ev.Op.String(),
				Time: time.Now(),
			})
			if limit > 0 && len(events) >= limit {
				return events, nil
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return events, nil
			}
			logging.Warn().
				Add(logging.Operation("watch")).
				Add(logging.Path(path)).
				Add(logging.ErrorField(werr)).
				Msg("watcher error")
		}
	}
}

// callerPath re-expresses an event name in terms of the path the caller used.
func (f *FS) callerPath(path, resolved, name string) string {
	if name == resolved {
		return path
	}
	rel, err := filepath.Rel(resolved, name)
	if err != nil {
		return name
	}
	return filepath.Join(path, rel)
}
