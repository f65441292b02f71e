package vault

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/dtnitsch/mindsync/models"
)

// Watch reports file changes under userID's directory, including edits
// made outside this process. Atomic rewrites of a known file are
// reported as updates. The channel is closed when ctx is done.
func (v *Vault) Watch(ctx context.Context, userID string) (<-chan models.Event, error) {
	dir, err := v.userDir(userID)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create user directory: %w", err)
	}
	if !doublestar.ValidatePattern(v.pattern) {
		return nil, fmt.Errorf("invalid watch pattern %q", v.pattern)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	known, err := v.knownIDs(dir)
	if err != nil {
		_ = watcher.Close()
		return nil, err
	}

	events := make(chan models.Event)
	go v.watchLoop(ctx, watcher, known, events)
	return events, nil
}

func (v *Vault) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, known map[string]bool, events chan<- models.Event) {
	defer close(events)
	defer watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			ev, ok := v.mapEvent(event, known)
			if !ok {
				continue
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			v.logger.Error("fsnotify error", "error", err)
		}
	}
}

// mapEvent turns a filesystem event into a store event, tracking which
// ids exist so renames over a file count as updates.
func (v *Vault) mapEvent(event fsnotify.Event, known map[string]bool) (models.Event, bool) {
	if v.shouldIgnore(event.Name) {
		return models.Event{}, false
	}

	id := strings.TrimSuffix(filepath.Base(event.Name), fileExt)
	ev := models.Event{ID: id, Timestamp: v.now().UTC()}

	switch {
	case event.Has(fsnotify.Create):
		ev.Type = models.EventCreate
		if known[id] {
			ev.Type = models.EventUpdate
		}
		known[id] = true
	case event.Has(fsnotify.Write):
		ev.Type = models.EventUpdate
		known[id] = true
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		ev.Type = models.EventDelete
		delete(known, id)
	default:
		return models.Event{}, false
	}

	v.logger.Debug("vault change", "type", ev.Type, "id", id)
	return ev, true
}

// shouldIgnore drops temp files and anything outside the watch pattern.
func (v *Vault) shouldIgnore(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || !strings.HasSuffix(base, fileExt) {
		return true
	}

	rel, err := filepath.Rel(v.root, path)
	if err != nil {
		return true
	}
	ok, err := doublestar.Match(v.pattern, filepath.ToSlash(rel))
	return err != nil || !ok
}

func (v *Vault) knownIDs(dir string) (map[string]bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read vault: %w", err)
	}
	known := make(map[string]bool, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() && strings.HasSuffix(name, fileExt) {
			known[strings.TrimSuffix(name, fileExt)] = true
		}
	}
	return known, nil
}
