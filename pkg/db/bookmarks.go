package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dtnitsch/mindsync/models"
)

const bookmarkColumns = `id, user_id, content_type, title, content, url, image_url, tags, ai_tags, metadata, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// Insert stores a new item, stamping UpdatedAt and, when unset, CreatedAt.
func (db *DB) Insert(ctx context.Context, item models.ContentItem) (models.ContentItem, error) {
	if item.ID == "" || item.UserID == "" {
		return models.ContentItem{}, errors.New("bookmark id and user id are required")
	}

	now := db.now().UTC()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.CreatedAt = item.CreatedAt.UTC()
	item.UpdatedAt = now
	if item.Tags == nil {
		item.Tags = []string{}
	}
	if item.AITags == nil {
		item.AITags = []string{}
	}

	tags, aiTags, metadata, err := encodeItem(item)
	if err != nil {
		return models.ContentItem{}, err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO bookmarks (`+bookmarkColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, item.ID, item.UserID, string(item.Type), item.Title, item.Content, item.URL, item.ImageURL,
		tags, aiTags, metadata, item.CreatedAt.UnixNano(), item.UpdatedAt.UnixNano())
	if err != nil {
		return models.ContentItem{}, fmt.Errorf("failed to insert bookmark: %w", err)
	}

	db.notify(item.UserID, models.EventCreate, item.ID)
	return item, nil
}

// Get returns an item owned by userID.
func (db *DB) Get(ctx context.Context, userID, id string) (models.ContentItem, error) {
	row := db.QueryRowContext(ctx, `
		SELECT `+bookmarkColumns+`
		FROM bookmarks
		WHERE user_id = ? AND id = ?
	`, userID, id)

	item, err := scanBookmark(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ContentItem{}, models.ErrNotFound
	}
	if err != nil {
		return models.ContentItem{}, fmt.Errorf("failed to get bookmark: %w", err)
	}
	return item, nil
}

// List returns a page of userID's items, newest first.
func (db *DB) List(ctx context.Context, userID string, params models.SearchParams) (models.SearchResult, error) {
	params = params.Normalized()
	where, args := buildFilter(userID, params)

	var total int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM bookmarks b WHERE "+where, args...).Scan(&total); err != nil {
		return models.SearchResult{}, fmt.Errorf("failed to count bookmarks: %w", err)
	}

	rows, err := db.QueryContext(ctx, `
		SELECT `+bookmarkColumns+`
		FROM bookmarks b
		WHERE `+where+`
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, append(args, params.Limit, params.Offset)...)
	if err != nil {
		return models.SearchResult{}, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := []models.ContentItem{}
	for rows.Next() {
		item, err := scanBookmark(rows)
		if err != nil {
			return models.SearchResult{}, fmt.Errorf("failed to scan bookmark: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return models.SearchResult{}, fmt.Errorf("failed to iterate bookmarks: %w", err)
	}

	return models.SearchResult{
		Items:      items,
		TotalCount: total,
		HasMore:    params.Offset+len(items) < total,
	}, nil
}

// buildFilter turns SearchParams into a WHERE clause over alias b.
func buildFilter(userID string, params models.SearchParams) (string, []any) {
	clauses := []string{"b.user_id = ?"}
	args := []any{userID}

	if q := strings.TrimSpace(params.Query); q != "" {
		like := "%" + likeEscaper.Replace(q) + "%"
		clauses = append(clauses, `(b.title LIKE ? ESCAPE '\' OR b.content LIKE ? ESCAPE '\' OR b.url LIKE ? ESCAPE '\' OR b.tags LIKE ? ESCAPE '\')`)
		args = append(args, like, like, like, like)
	}

	if len(params.ContentTypes) > 0 {
		clauses = append(clauses, "b.content_type IN ("+placeholders(len(params.ContentTypes))+")")
		for _, ct := range params.ContentTypes {
			args = append(args, string(ct))
		}
	}

	if len(params.Tags) > 0 {
		clauses = append(clauses, "EXISTS (SELECT 1 FROM json_each(b.tags) WHERE json_each.value IN ("+placeholders(len(params.Tags))+"))")
		for _, tag := range params.Tags {
			args = append(args, tag)
		}
	}

	return strings.Join(clauses, " AND "), args
}

// likeEscaper makes % and _ in a query match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// Update applies patch to an item owned by userID.
func (db *DB) Update(ctx context.Context, userID, id string, patch models.ContentPatch) (models.ContentItem, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return models.ContentItem{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // No-op after commit

	row := tx.QueryRowContext(ctx, `
		SELECT `+bookmarkColumns+`
		FROM bookmarks
		WHERE user_id = ? AND id = ?
	`, userID, id)
	item, err := scanBookmark(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ContentItem{}, models.ErrNotFound
	}
	if err != nil {
		return models.ContentItem{}, fmt.Errorf("failed to get bookmark: %w", err)
	}

	patch.Apply(&item)
	item.UpdatedAt = db.now().UTC()

	tags, aiTags, metadata, err := encodeItem(item)
	if err != nil {
		return models.ContentItem{}, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE bookmarks
		SET title = ?, content = ?, image_url = ?, tags = ?, ai_tags = ?, metadata = ?, updated_at = ?
		WHERE user_id = ? AND id = ?
	`, item.Title, item.Content, item.ImageURL, tags, aiTags, metadata, item.UpdatedAt.UnixNano(), userID, id)
	if err != nil {
		return models.ContentItem{}, fmt.Errorf("failed to update bookmark: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.ContentItem{}, fmt.Errorf("failed to commit update: %w", err)
	}

	db.notify(userID, models.EventUpdate, id)
	return item, nil
}

// Delete removes an item owned by userID.
func (db *DB) Delete(ctx context.Context, userID, id string) error {
	result, err := db.ExecContext(ctx, "DELETE FROM bookmarks WHERE user_id = ? AND id = ?", userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if n == 0 {
		return models.ErrNotFound
	}

	db.notify(userID, models.EventDelete, id)
	return nil
}

func encodeItem(item models.ContentItem) (tags, aiTags, metadata string, err error) {
	t, err := json.Marshal(item.Tags)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to marshal tags: %w", err)
	}
	a, err := json.Marshal(item.AITags)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to marshal ai tags: %w", err)
	}
	m, err := json.Marshal(item.Metadata)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to marshal metadata: %w", err)
	}
	return string(t), string(a), string(m), nil
}

func scanBookmark(row rowScanner) (models.ContentItem, error) {
	var (
		item                   models.ContentItem
		contentType            string
		url, imageURL          sql.NullString
		tags, aiTags, metadata string
		createdAt, updatedAt   int64
	)

	err := row.Scan(&item.ID, &item.UserID, &contentType, &item.Title, &item.Content, &url, &imageURL,
		&tags, &aiTags, &metadata, &createdAt, &updatedAt)
	if err != nil {
		return models.ContentItem{}, err
	}

	item.Type = models.ContentType(contentType)
	item.URL = url.String
	item.ImageURL = imageURL.String
	item.CreatedAt = time.Unix(0, createdAt).UTC()
	item.UpdatedAt = time.Unix(0, updatedAt).UTC()

	if err := json.Unmarshal([]byte(tags), &item.Tags); err != nil {
		return models.ContentItem{}, fmt.Errorf("failed to unmarshal tags: %w", err)
	}
	if err := json.Unmarshal([]byte(aiTags), &item.AITags); err != nil {
		return models.ContentItem{}, fmt.Errorf("failed to unmarshal ai tags: %w", err)
	}
	if err := json.Unmarshal([]byte(metadata), &item.Metadata); err != nil {
		return models.ContentItem{}, fmt.Errorf("failed to unmarshal metadata: %w", err)
	}

	return item, nil
}
