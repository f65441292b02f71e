package models

import (
	"errors"
	"time"
)

// ErrNotFound is returned by stores when an item does not exist or
// belongs to another user.
var ErrNotFound = errors.New("content item not found")

// ContentItem is a saved bookmark.
type ContentItem struct {
	ID        string      `json:"id"`
	UserID    string      `json:"userId"`
	Type      ContentType `json:"type"`
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	URL       string      `json:"url,omitempty"`
	ImageURL  string      `json:"imageUrl,omitempty"`
	Tags      []string    `json:"tags"`
	AITags    []string    `json:"aiTags"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
	Metadata  Metadata    `json:"metadata"`
}

// ContentPatch lists the fields that may change after creation.
// Nil pointers are left untouched.
type ContentPatch struct {
	Title    *string
	Content  *string
	Tags     []string // nil = unchanged, empty = cleared
	ImageURL *string
	Metadata *Metadata
}

// IsEmpty reports whether the patch changes nothing.
func (p ContentPatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.Tags == nil && p.ImageURL == nil && p.Metadata == nil
}

// Apply writes the patch onto item. UpdatedAt is left to the store.
func (p ContentPatch) Apply(item *ContentItem) {
	if p.Title != nil {
		item.Title = *p.Title
	}
	if p.Content != nil {
		item.Content = *p.Content
	}
	if p.Tags != nil {
		item.Tags = append([]string{}, p.Tags...)
	}
	if p.ImageURL != nil {
		item.ImageURL = *p.ImageURL
	}
	if p.Metadata != nil {
		item.Metadata = p.Metadata.Clone()
	}
}

// DefaultSearchLimit is used when SearchParams.Limit is zero.
const DefaultSearchLimit = 50

// SearchParams filters a listing. All filters are conjunctive; Tags
// matches items carrying any of the given tags.
type SearchParams struct {
	Query        string
	ContentTypes []ContentType
	Tags         []string
	Limit        int
	Offset       int
}

// Normalized returns a copy with defaults applied.
func (p SearchParams) Normalized() SearchParams {
	if p.Limit <= 0 {
		p.Limit = DefaultSearchLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// SearchResult is one page of a listing, newest first.
type SearchResult struct {
	Items      []ContentItem `json:"items"`
	TotalCount int           `json:"totalCount"`
	HasMore    bool          `json:"hasMore"`
}

// EventType is the kind of change a store reports.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventUpdate EventType = "UPDATE"
	EventDelete EventType = "DELETE"
)

// Event is a change notification from a store.
type Event struct {
	Type      EventType `json:"type"`
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

// ImportedBookmark is an entry read from a browser bookmark export.
type ImportedBookmark struct {
	URL     string    `json:"url"`
	Title   string    `json:"title"`
	Folder  string    `json:"folder,omitempty"`
	Tags    []string  `json:"tags,omitempty"`
	AddedAt time.Time `json:"addedAt,omitempty"`
}
