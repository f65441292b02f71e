package db

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dtnitsch/mindsync/models"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	sqlDB, err := openDB(memoryPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	database := newDB(sqlDB, memoryPath)

	if err := database.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	// Strictly increasing timestamps keep ordering deterministic
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	database.SetClock(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	})

	return database
}

func testItem(id, userID string, ct models.ContentType, tags ...string) models.ContentItem {
	return models.ContentItem{
		ID:      id,
		UserID:  userID,
		Type:    ct,
		Title:   "Title " + id,
		Content: "Body of " + id,
		URL:     "https://example.com/" + id,
		Tags:    tags,
		AITags:  []string{"reference"},
		Metadata: models.Metadata{
			Domain:    "example.com",
			SourceURL: "https://example.com/" + id,
		},
	}
}

func TestInsertAndGet(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	item := testItem("b1", "alice", models.ContentBook, "fiction")
	item.Metadata.Details = &models.BookDetails{ISBN: "0316769487", Author: "J. D. Salinger"}

	saved, err := db.Insert(ctx, item)
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if saved.CreatedAt.IsZero() || !saved.CreatedAt.Equal(saved.UpdatedAt) {
		t.Errorf("Insert() timestamps = %v / %v, want equal and set", saved.CreatedAt, saved.UpdatedAt)
	}

	got, err := db.Get(ctx, "alice", "b1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if got.Type != models.ContentBook {
		t.Errorf("Get().Type = %v, want %v", got.Type, models.ContentBook)
	}
	if got.Metadata.Domain != "example.com" {
		t.Errorf("Get().Metadata.Domain = %q, want %q", got.Metadata.Domain, "example.com")
	}
	book, ok := got.Metadata.Details.(*models.BookDetails)
	if !ok {
		t.Fatalf("Get().Metadata.Details = %T, want *models.BookDetails", got.Metadata.Details)
	}
	if book.ISBN != "0316769487" || book.Author != "J. D. Salinger" {
		t.Errorf("Get() book details = %+v", book)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "fiction" {
		t.Errorf("Get().Tags = %v, want [fiction]", got.Tags)
	}
	if !got.CreatedAt.Equal(saved.CreatedAt) {
		t.Errorf("Get().CreatedAt = %v, want %v", got.CreatedAt, saved.CreatedAt)
	}
}

func TestInsert_Errors(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	if _, err := db.Insert(ctx, testItem("", "alice", models.ContentWebsite)); err == nil {
		t.Error("Insert() with empty id, want error")
	}
	if _, err := db.Insert(ctx, testItem("w1", "", models.ContentWebsite)); err == nil {
		t.Error("Insert() with empty user, want error")
	}

	if _, err := db.Insert(ctx, testItem("w1", "alice", models.ContentWebsite)); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if _, err := db.Insert(ctx, testItem("w1", "alice", models.ContentWebsite)); err == nil {
		t.Error("Insert() duplicate id, want error")
	}
}

func TestInsert_NilTags(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	item := testItem("n1", "alice", models.ContentNote)
	item.Tags, item.AITags = nil, nil
	if _, err := db.Insert(ctx, item); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	got, err := db.Get(ctx, "alice", "n1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Tags == nil || got.AITags == nil {
		t.Errorf("Get() tags = %v / %v, want empty non-nil slices", got.Tags, got.AITags)
	}
	if got.Metadata.Details != nil {
		t.Errorf("Get().Metadata.Details = %v, want nil", got.Metadata.Details)
	}
}

func TestGet_NotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	if _, err := db.Insert(ctx, testItem("w1", "alice", models.ContentWebsite)); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	tests := []struct {
		name   string
		userID string
		id     string
	}{
		{name: "missing id", userID: "alice", id: "nope"},
		{name: "other user", userID: "bob", id: "w1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := db.Get(ctx, tt.userID, tt.id)
			if !errors.Is(err, models.ErrNotFound) {
				t.Errorf("Get() error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestList(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	seed := []models.ContentItem{
		testItem("a1", "alice", models.ContentArticle, "go", "reading"),
		testItem("p1", "alice", models.ContentProduct, "desk"),
		testItem("a2", "alice", models.ContentArticle, "rust"),
		testItem("w1", "alice", models.ContentWebsite),
		testItem("x1", "bob", models.ContentArticle, "go"),
	}
	seed[3].Title = "Golang weekly"
	for _, item := range seed {
		if _, err := db.Insert(ctx, item); err != nil {
			t.Fatalf("Insert(%s) error = %v", item.ID, err)
		}
	}

	tests := []struct {
		name      string
		params    models.SearchParams
		wantIDs   []string
		wantTotal int
		wantMore  bool
	}{
		{
			name:      "all newest first",
			params:    models.SearchParams{},
			wantIDs:   []string{"w1", "a2", "p1", "a1"},
			wantTotal: 4,
		},
		{
			name:      "by content type",
			params:    models.SearchParams{ContentTypes: []models.ContentType{models.ContentArticle}},
			wantIDs:   []string{"a2", "a1"},
			wantTotal: 2,
		},
		{
			name:      "by tag",
			params:    models.SearchParams{Tags: []string{"go", "desk"}},
			wantIDs:   []string{"p1", "a1"},
			wantTotal: 2,
		},
		{
			name:      "by query",
			params:    models.SearchParams{Query: "golang"},
			wantIDs:   []string{"w1"},
			wantTotal: 1,
		},
		{
			name:      "paged",
			params:    models.SearchParams{Limit: 2, Offset: 1},
			wantIDs:   []string{"a2", "p1"},
			wantTotal: 4,
			wantMore:  true,
		},
		{
			name:      "last page",
			params:    models.SearchParams{Limit: 2, Offset: 2},
			wantIDs:   []string{"p1", "a1"},
			wantTotal: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := db.List(ctx, "alice", tt.params)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}

			if got := ids(res.Items); fmt.Sprint(got) != fmt.Sprint(tt.wantIDs) {
				t.Errorf("List() ids = %v, want %v", got, tt.wantIDs)
			}
			if res.TotalCount != tt.wantTotal {
				t.Errorf("List() TotalCount = %d, want %d", res.TotalCount, tt.wantTotal)
			}
			if res.HasMore != tt.wantMore {
				t.Errorf("List() HasMore = %v, want %v", res.HasMore, tt.wantMore)
			}
		})
	}
}

func ids(items []models.ContentItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func TestUpdate(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	saved, err := db.Insert(ctx, testItem("w1", "alice", models.ContentWebsite, "old"))
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	title := "New title"
	md := models.Metadata{Domain: "example.com", Details: &models.WebsiteDetails{SiteName: "Example"}}
	updated, err := db.Update(ctx, "alice", "w1", models.ContentPatch{
		Title:    &title,
		Tags:     []string{},
		Metadata: &md,
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if !updated.UpdatedAt.After(saved.CreatedAt) {
		t.Errorf("Update().UpdatedAt = %v, want after %v", updated.UpdatedAt, saved.CreatedAt)
	}

	got, err := db.Get(ctx, "alice", "w1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Title != "New title" {
		t.Errorf("Get().Title = %q, want %q", got.Title, "New title")
	}
	if len(got.Tags) != 0 {
		t.Errorf("Get().Tags = %v, want empty", got.Tags)
	}
	if got.Content != saved.Content {
		t.Errorf("Get().Content = %q, want unchanged %q", got.Content, saved.Content)
	}
	if got.Metadata.Kind() != models.ContentWebsite {
		t.Errorf("Get().Metadata.Kind() = %q, want %q", got.Metadata.Kind(), models.ContentWebsite)
	}
	if !got.CreatedAt.Equal(saved.CreatedAt) {
		t.Errorf("Get().CreatedAt = %v, want %v", got.CreatedAt, saved.CreatedAt)
	}

	if _, err := db.Update(ctx, "bob", "w1", models.ContentPatch{Title: &title}); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Update() other user error = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	if _, err := db.Insert(ctx, testItem("w1", "alice", models.ContentWebsite)); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	if err := db.Delete(ctx, "bob", "w1"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Delete() other user error = %v, want ErrNotFound", err)
	}
	if err := db.Delete(ctx, "alice", "w1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := db.Get(ctx, "alice", "w1"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
	if err := db.Delete(ctx, "alice", "w1"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Delete() twice error = %v, want ErrNotFound", err)
	}
}

func TestWatch(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := db.Watch(ctx, "alice")
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	if _, err := db.Insert(ctx, testItem("x1", "bob", models.ContentWebsite)); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if _, err := db.Insert(ctx, testItem("w1", "alice", models.ContentWebsite)); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := db.Delete(ctx, "alice", "w1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	want := []models.Event{
		{Type: models.EventCreate, ID: "w1"},
		{Type: models.EventDelete, ID: "w1"},
	}
	for _, w := range want {
		select {
		case ev := <-events:
			if ev.Type != w.Type || ev.ID != w.ID {
				t.Errorf("Watch() event = %s %s, want %s %s", ev.Type, ev.ID, w.Type, w.ID)
			}
		case <-time.After(time.Second):
			t.Fatalf("Watch() timed out waiting for %s %s", w.Type, w.ID)
		}
	}

	cancel()
	select {
	case _, ok := <-events:
		if ok {
			t.Error("Watch() channel delivered unexpected event after cancel")
		}
	case <-time.After(time.Second):
		t.Error("Watch() channel not closed after cancel")
	}
}

func TestOpen_File(t *testing.T) {
	path := t.TempDir() + "/test.db"

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if db.Path() != path {
		t.Errorf("Path() = %q, want %q", db.Path(), path)
	}
	if _, err := db.Insert(context.Background(), testItem("w1", "alice", models.ContentWebsite)); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// Reopen finds the existing schema and data
	db, err = Open(path)
	if err != nil {
		t.Fatalf("Open() second time error = %v", err)
	}
	defer db.Close()
	if _, err := db.Get(context.Background(), "alice", "w1"); err != nil {
		t.Errorf("Get() after reopen error = %v", err)
	}
}

func TestList_QueryWildcardsAreLiteral(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	titles := map[string]string{
		"c1": "100% cotton",
		"c2": "1000 cotton threads",
		"s1": "snake_case names",
		"s2": "snakeXcase names",
	}
	for _, id := range []string{"c1", "c2", "s1", "s2"} {
		item := testItem(id, "alice", models.ContentProduct)
		item.Title = titles[id]
		if _, err := db.Insert(ctx, item); err != nil {
			t.Fatalf("Insert(%s) error = %v", id, err)
		}
	}

	tests := []struct {
		query   string
		wantIDs []string
	}{
		{"100%", []string{"c1"}},
		{"e_c", []string{"s1"}},
		{"cotton", []string{"c2", "c1"}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			res, err := db.List(ctx, "alice", models.SearchParams{Query: tt.query})
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if got := ids(res.Items); fmt.Sprint(got) != fmt.Sprint(tt.wantIDs) {
				t.Errorf("List(%q) ids = %v, want %v", tt.query, got, tt.wantIDs)
			}
		})
	}
}

func TestInsert_KeepsCreatedAt(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	added := time.Date(2019, 6, 1, 8, 30, 0, 0, time.UTC)
	item := testItem("old", "alice", models.ContentWebsite)
	item.CreatedAt = added

	saved, err := db.Insert(ctx, item)
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	got, err := db.Get(ctx, "alice", "old")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !got.CreatedAt.Equal(added) {
		t.Errorf("Get().CreatedAt = %v, want %v", got.CreatedAt, added)
	}
	if !got.UpdatedAt.Equal(saved.UpdatedAt) || got.UpdatedAt.Equal(added) {
		t.Errorf("Get().UpdatedAt = %v, want insert time %v", got.UpdatedAt, saved.UpdatedAt)
	}
}

func TestWatch_CloseReleasesSubscribers(t *testing.T) {
	db := setupTestDB(t)

	events, err := db.Watch(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	select {
	case _, ok := <-events:
		if ok {
			t.Error("Watch() channel delivered an event after Close")
		}
	case <-time.After(time.Second):
		t.Fatal("Watch() channel not closed after Close")
	}

	select {
	case <-db.events.done:
	default:
		t.Error("broker done channel still open after Close")
	}
	if n := len(db.events.subs); n != 0 {
		t.Errorf("subscribers after Close = %d, want 0", n)
	}
}
