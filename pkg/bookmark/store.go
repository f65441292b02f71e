package bookmark

import (
	"context"

	"github.com/dtnitsch/mindsync/models"
)

// Store persists content items for a user. Implementations set
// UpdatedAt, set CreatedAt unless the item already carries one, reject
// duplicate IDs, and return
// models.ErrNotFound for items that are missing or owned by someone else.
type Store interface {
	Insert(ctx context.Context, item models.ContentItem) (models.ContentItem, error)
	Get(ctx context.Context, userID, id string) (models.ContentItem, error)
	List(ctx context.Context, userID string, params models.SearchParams) (models.SearchResult, error)
	Update(ctx context.Context, userID, id string, patch models.ContentPatch) (models.ContentItem, error)
	Delete(ctx context.Context, userID, id string) error
}

// Watcher is implemented by stores that can report changes. The channel
// is closed when ctx is done.
type Watcher interface {
	Watch(ctx context.Context, userID string) (<-chan models.Event, error)
}

// UserResolver returns the authenticated user for a request.
type UserResolver interface {
	CurrentUser(ctx context.Context) (string, error)
}
