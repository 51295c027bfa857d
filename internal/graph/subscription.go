package graph

import (
	"context"
)

// bookAdded streams every book added after the subscription starts, for the
// lifetime of the connection. There is no replay: books added earlier, or
// while no subscription is active, are not delivered.
func (r *Resolver) bookAdded(ctx context.Context) <-chan Book {
	return r.bus.Subscribe(ctx)
}
