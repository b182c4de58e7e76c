package store

import (
	"context"
	"sync"

	"blinds-orders/internal/models"
)

// Snapshot is the whole order collection at one point in time.
// Subscribers share it and must not modify it.
type Snapshot []models.Order

type subscriber struct {
	ch chan Snapshot
}

// hub fans snapshots out to subscribers. Each subscriber holds at most one
// pending snapshot; a newer one replaces it, so slow readers skip to the latest.
type hub struct {
	mu       sync.Mutex
	subs     map[*subscriber]struct{}
	onChange func(n int)

	done      chan struct{}
	closeOnce sync.Once
}

func newHub(onChange func(n int)) *hub {
	if onChange == nil {
		onChange = func(int) {}
	}
	return &hub{
		subs:     make(map[*subscriber]struct{}),
		onChange: onChange,
		done:     make(chan struct{}),
	}
}

func (h *hub) subscribe(ctx context.Context, initial Snapshot) <-chan Snapshot {
	sub := &subscriber{ch: make(chan Snapshot, 1)}
	sub.ch <- initial

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	n := len(h.subs)
	h.mu.Unlock()
	h.onChange(n)

	go func() {
		select {
		case <-ctx.Done():
		case <-h.done:
		}
		h.remove(sub)
	}()
	return sub.ch
}

func (h *hub) remove(sub *subscriber) {
	h.mu.Lock()
	if _, ok := h.subs[sub]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.subs, sub)
	close(sub.ch)
	n := len(h.subs)
	h.mu.Unlock()
	h.onChange(n)
}

func (h *hub) publish(snap Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs {
		select {
		case sub.ch <- snap:
			continue
		default:
		}
		// drop the stale pending snapshot; only the hub sends, so the retry cannot block
		select {
		case <-sub.ch:
		default:
		}
		sub.ch <- snap
	}
}

// closeAll ends every subscription. Later subscriptions get the initial
// snapshot and are closed right after.
func (h *hub) closeAll() {
	h.closeOnce.Do(func() { close(h.done) })
	h.mu.Lock()
	for sub := range h.subs {
		delete(h.subs, sub)
		close(sub.ch)
	}
	h.mu.Unlock()
	h.onChange(0)
}

func (h *hub) len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
