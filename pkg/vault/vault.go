// Package vault stores bookmarks as Markdown files with YAML
// frontmatter, one file per item under <root>/<user>/<id>.md. The
// directory can be edited by hand or synced; Watch picks up changes made
// by any process.
package vault

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dtnitsch/mindsync/models"
)

const (
	fileExt = ".md"

	// tempFilePrefix marks in-flight atomic writes.
	tempFilePrefix = ".mindsync-tmp-"
)

// Vault is a directory-backed bookmark store.
type Vault struct {
	root    string
	pattern string
	now     func() time.Time
	logger  *slog.Logger

	mu sync.Mutex // serialises writes
}

// Option configures a Vault.
type Option func(*Vault)

// WithClock sets the clock used for created/updated timestamps.
func WithClock(now func() time.Time) Option {
	return func(v *Vault) { v.now = now }
}

// WithLogger sets the vault logger.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Vault) { v.logger = logger }
}

// WithWatchPattern limits Watch to paths (relative to the root, slash
// separated) matching a doublestar glob.
func WithWatchPattern(pattern string) Option {
	return func(v *Vault) { v.pattern = pattern }
}

// Open creates root if needed and returns a Vault on it.
func Open(root string, opts ...Option) (*Vault, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("vault directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create vault directory: %w", err)
	}

	v := &Vault{
		root:    root,
		pattern: "**/*" + fileExt,
		now:     time.Now,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Root returns the vault directory.
func (v *Vault) Root() string {
	return v.root
}

// Insert writes a new item file. A zero CreatedAt is set to now.
func (v *Vault) Insert(ctx context.Context, item models.ContentItem) (models.ContentItem, error) {
	if err := ctx.Err(); err != nil {
		return models.ContentItem{}, err
	}
	path, err := v.itemPath(item.UserID, item.ID)
	if err != nil {
		return models.ContentItem{}, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if _, err := os.Stat(path); err == nil {
		return models.ContentItem{}, fmt.Errorf("bookmark %s already exists", item.ID)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return models.ContentItem{}, fmt.Errorf("failed to check bookmark: %w", err)
	}

	now := v.now().UTC()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.CreatedAt = item.CreatedAt.UTC()
	item.UpdatedAt = now
	item.Tags = nonNil(item.Tags)
	item.AITags = nonNil(item.AITags)

	if err := v.write(path, item); err != nil {
		return models.ContentItem{}, err
	}
	v.logger.Debug("vault item written", "path", path)
	return item, nil
}

// Get reads one item.
func (v *Vault) Get(ctx context.Context, userID, id string) (models.ContentItem, error) {
	if err := ctx.Err(); err != nil {
		return models.ContentItem{}, err
	}
	path, err := v.itemPath(userID, id)
	if err != nil {
		return models.ContentItem{}, models.ErrNotFound
	}
	return v.read(path, userID)
}

// List reads every item of userID and filters in memory, newest first.
func (v *Vault) List(ctx context.Context, userID string, params models.SearchParams) (models.SearchResult, error) {
	params = params.Normalized()
	items, err := v.readAll(ctx, userID)
	if err != nil {
		return models.SearchResult{}, err
	}

	matched := items[:0]
	for _, item := range items {
		if matches(item, params) {
			matched = append(matched, item)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := len(matched)
	start := min(params.Offset, total)
	end := min(start+params.Limit, total)
	page := append([]models.ContentItem{}, matched[start:end]...)

	return models.SearchResult{
		Items:      page,
		TotalCount: total,
		HasMore:    end < total,
	}, nil
}

// Update applies patch and rewrites the file.
func (v *Vault) Update(ctx context.Context, userID, id string, patch models.ContentPatch) (models.ContentItem, error) {
	if err := ctx.Err(); err != nil {
		return models.ContentItem{}, err
	}
	path, err := v.itemPath(userID, id)
	if err != nil {
		return models.ContentItem{}, models.ErrNotFound
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	item, err := v.read(path, userID)
	if err != nil {
		return models.ContentItem{}, err
	}

	patch.Apply(&item)
	item.UpdatedAt = v.now().UTC()

	if err := v.write(path, item); err != nil {
		return models.ContentItem{}, err
	}
	return item, nil
}

// Delete removes the item file.
func (v *Vault) Delete(ctx context.Context, userID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := v.itemPath(userID, id)
	if err != nil {
		return models.ErrNotFound
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.ErrNotFound
		}
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}
	return nil
}

func (v *Vault) userDir(userID string) (string, error) {
	if !safeSegment(userID) {
		return "", fmt.Errorf("invalid user id %q", userID)
	}
	return filepath.Join(v.root, userID), nil
}

func (v *Vault) itemPath(userID, id string) (string, error) {
	dir, err := v.userDir(userID)
	if err != nil {
		return "", err
	}
	if !safeSegment(id) {
		return "", fmt.Errorf("invalid bookmark id %q", id)
	}
	return filepath.Join(dir, id+fileExt), nil
}

// safeSegment accepts names that stay a single path element.
func safeSegment(s string) bool {
	if s == "" || s == "." || s == ".." || strings.HasPrefix(s, ".") {
		return false
	}
	return !strings.ContainsAny(s, `/\`)
}

func (v *Vault) read(path, userID string) (models.ContentItem, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return models.ContentItem{}, models.ErrNotFound
	}
	if err != nil {
		return models.ContentItem{}, fmt.Errorf("failed to read bookmark: %w", err)
	}

	item, err := decodeDocument(data, userID)
	if err != nil {
		return models.ContentItem{}, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	if item.ID == "" {
		item.ID = strings.TrimSuffix(filepath.Base(path), fileExt)
	}
	return item, nil
}

func (v *Vault) readAll(ctx context.Context, userID string) ([]models.ContentItem, error) {
	dir, err := v.userDir(userID)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []models.ContentItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read vault: %w", err)
	}

	items := make([]models.ContentItem, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, fileExt) || strings.HasPrefix(name, ".") {
			continue
		}

		item, err := v.read(filepath.Join(dir, name), userID)
		if err != nil {
			// Hand-edited files may be broken; skip rather than fail the listing
			v.logger.Warn("skipping unreadable vault file", "file", name, "error", err)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (v *Vault) write(path string, item models.ContentItem) error {
	data, err := encodeDocument(item)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create user directory: %w", err)
	}
	return writeFileAtomic(path, data, 0o644)
}

// matches applies the SearchParams filters to one item.
func matches(item models.ContentItem, params models.SearchParams) bool {
	if len(params.ContentTypes) > 0 && !containsType(params.ContentTypes, item.Type) {
		return false
	}
	if len(params.Tags) > 0 && !anyTag(item.Tags, params.Tags) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(params.Query)); q != "" {
		haystack := strings.ToLower(strings.Join(append([]string{item.Title, item.Content, item.URL}, item.Tags...), "\n"))
		if !strings.Contains(haystack, q) {
			return false
		}
	}
	return true
}

func containsType(types []models.ContentType, ct models.ContentType) bool {
	for _, t := range types {
		if t == ct {
			return true
		}
	}
	return false
}

func anyTag(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

// writeFileAtomic writes data to a temp file in the same directory and
// renames it over filename.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(filename), tempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name()) // Clean up if we fail before rename

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpFile.Name(), perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := os.Rename(tmpFile.Name(), filename); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", filename, err)
	}
	return nil
}
