// Package livequery shares one underlying feed per logical query
// (collection + season filter) among any number of consumers. The
// first subscriber opens the feed, later ones synchronously receive
// the cached snapshot, and the last unsubscribe tears the feed down.
package livequery

import (
	"context"
	"errors"
	"sync"
)

// FetchFunc loads the current snapshot for a feed.
type FetchFunc func(ctx context.Context) (any, error)

// Key builds the feed key for a collection scoped to a season filter.
func Key(collection, seasonID string) string {
	return collection + ":" + seasonID
}

type Hub struct {
	mu     sync.Mutex
	feeds  map[string]*feed
	closed bool
}

type feed struct {
	fetch    FetchFunc
	refs     int
	snapshot any
	loaded   bool
	subs     map[int]chan any
	nextID   int
}

func New() *Hub {
	return &Hub{feeds: make(map[string]*feed)}
}

var ErrClosed = errors.New("livequery: hub is closed")

// Subscribe registers interest in a keyed query and returns a channel
// of snapshots plus the unsubscribe func, the only cancellation
// mechanism. The channel carries the current snapshot immediately and
// every subsequent update; a slow consumer only ever misses
// intermediate snapshots, never the latest one.
func (h *Hub) Subscribe(ctx context.Context, key string, fetch FetchFunc) (<-chan any, func(), error) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil, nil, ErrClosed
	}
	f, ok := h.feeds[key]
	if !ok {
		f = &feed{fetch: fetch, subs: make(map[int]chan any)}
		h.feeds[key] = f
	}
	f.refs++
	id := f.nextID
	f.nextID++
	ch := make(chan any, 1)
	f.subs[id] = ch
	needsLoad := !f.loaded
	if f.loaded {
		ch <- f.snapshot
	}
	h.mu.Unlock()

	unsubscribe := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		f, ok := h.feeds[key]
		if !ok {
			return
		}
		if _, live := f.subs[id]; !live {
			return
		}
		delete(f.subs, id)
		f.refs--
		if f.refs <= 0 {
			delete(h.feeds, key)
		}
	}

	if needsLoad {
		if err := h.refresh(ctx, key); err != nil {
			unsubscribe()
			return nil, nil, err
		}
	}

	return ch, unsubscribe, nil
}

// Invalidate re-runs the fetch for a key and fans the fresh snapshot
// out to every subscriber. Unknown keys are a no-op: nobody is
// watching, so there is nothing to keep current.
func (h *Hub) Invalidate(ctx context.Context, key string) error {
	h.mu.Lock()
	_, ok := h.feeds[key]
	closed := h.closed
	h.mu.Unlock()
	if closed || !ok {
		return nil
	}
	return h.refresh(ctx, key)
}

func (h *Hub) refresh(ctx context.Context, key string) error {
	h.mu.Lock()
	f, ok := h.feeds[key]
	if !ok {
		h.mu.Unlock()
		return nil
	}
	fetch := f.fetch
	h.mu.Unlock()

	// Fetch outside the lock; feeds for distinct keys never block each
	// other and carry no ordering guarantee between them.
	data, err := fetch(ctx)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	f, ok = h.feeds[key]
	if !ok {
		// Last subscriber left while the fetch was in flight.
		return nil
	}
	f.snapshot = data
	f.loaded = true
	for _, ch := range f.subs {
		// Replace a pending, now stale snapshot instead of blocking.
		select {
		case ch <- data:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- data
		}
	}
	return nil
}

// ActiveFeeds reports how many distinct feeds are open.
func (h *Hub) ActiveFeeds() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.feeds)
}

// Close tears down every feed; subsequent subscriptions fail with
// ErrClosed.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	h.feeds = make(map[string]*feed)
}
