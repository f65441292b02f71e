package db

import (
	"context"
	"sync"

	"github.com/dtnitsch/mindsync/models"
)

// eventBuffer is how many changes a slow subscriber may fall behind
// before further events for it are dropped.
const eventBuffer = 16

type subscriber struct {
	userID string
	ch     chan models.Event
}

// broker fans store changes out to Watch subscribers in this process.
type broker struct {
	mu     sync.Mutex
	subs   map[*subscriber]struct{}
	closed bool
	done   chan struct{} // closed by close
}

func newBroker() *broker {
	return &broker{
		subs: make(map[*subscriber]struct{}),
		done: make(chan struct{}),
	}
}

func (b *broker) subscribe(ctx context.Context, userID string) <-chan models.Event {
	sub := &subscriber{userID: userID, ch: make(chan models.Event, eventBuffer)}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(sub.ch)
		return sub.ch
	}
	b.subs[sub] = struct{}{}
	b.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			b.remove(sub)
		case <-b.done:
		}
	}()
	return sub.ch
}

func (b *broker) remove(sub *subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[sub]; ok {
		delete(b.subs, sub)
		close(sub.ch)
	}
}

func (b *broker) publish(userID string, ev models.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for sub := range b.subs {
		if sub.userID != userID {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
		}
	}
}

func (b *broker) close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	close(b.done)
	for sub := range b.subs {
		delete(b.subs, sub)
		close(sub.ch)
	}
}

// Watch reports changes made through this DB handle for userID. The
// channel is closed when ctx is done or the DB is closed. Writes from
// other processes are not seen.
func (db *DB) Watch(ctx context.Context, userID string) (<-chan models.Event, error) {
	return db.events.subscribe(ctx, userID), nil
}

func (db *DB) notify(userID string, typ models.EventType, id string) {
	db.events.publish(userID, models.Event{Type: typ, ID: id, Timestamp: db.now().UTC()})
}
