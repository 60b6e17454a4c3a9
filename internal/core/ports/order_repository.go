package ports

import (
	"context"

	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// The repository exclusively owns order records; the application layer never
// caches a mutable copy across requests.
type OrderRepository interface {
	// Add persists a new order aggregate and assigns its identifier.
	// The order must be valid and not yet persisted.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its identifier.
	// Returns an ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// TryTransition atomically moves the order's status from one value to
	// another. It mutates the record and reports true only when the stored
	// status equals from at the moment of the update; otherwise it reports
	// false without mutating anything. This compare-and-set is the only path
	// by which a stored status changes, and it is indivisible with respect
	// to concurrent callers on the same id.
	TryTransition(ctx context.Context, id int64, from order.Status, to order.Status) (bool, error)
}
