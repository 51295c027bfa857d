// Package pubsub provides an in-process fan-out broadcaster used to push
// events to GraphQL subscription resolvers. Delivery is at-most-once and
// non-durable: events published while nobody is subscribed are dropped.
package pubsub

import (
	"context"
	"sync"
)

// subBuffer is the per-subscriber channel capacity. A subscriber that falls
// this far behind misses events rather than blocking publishers.
const subBuffer = 16

// Broadcaster delivers each published value to every current subscriber.
// Create one at startup and inject it wherever events are published or
// consumed.
type Broadcaster[T any] struct {
	mu   sync.Mutex
	subs map[int]chan T
	next int
}

func New[T any]() *Broadcaster[T] {
	return &Broadcaster[T]{subs: make(map[int]chan T)}
}

// Subscribe registers a subscriber and returns its event channel. The channel
// receives every event published while the subscription is active and is
// closed once ctx is done.
func (b *Broadcaster[T]) Subscribe(ctx context.Context) <-chan T {
	ch := make(chan T, subBuffer)

	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = ch
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, id)
		close(ch) // under the lock so Publish never sends on a closed channel
		b.mu.Unlock()
	}()

	return ch
}

// Publish fans v out to all current subscribers. It never blocks: a
// subscriber with a full buffer is skipped.
func (b *Broadcaster[T]) Publish(v T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- v:
		default:
		}
	}
}

// Len reports the number of active subscribers.
func (b *Broadcaster[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
