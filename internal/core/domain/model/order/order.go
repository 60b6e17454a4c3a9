package order

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder. This ensures all orders are
	// properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrOrderIDAlreadyAssigned is returned when AssignID is called on an
	// order that already carries a persistent identifier. Identifiers are
	// assigned exactly once and never reused.
	ErrOrderIDAlreadyAssigned = errors.New("order id is already assigned")
)

// Order represents a dispatch order: a request to move between two resolved
// locations, tracked through an assignment lifecycle.
//
// Order follows these invariants:
//   - Origin and destination are resolved locations, immutable after creation
//   - The identifier is assigned exactly once (by the store, at insert) and
//     never changes afterwards
//   - Status is the only mutable field and changes exactly once,
//     from Unassigned to Taken
//   - Can only be created through NewOrder or RestoreOrder
//
// The struct uses private fields to keep encapsulation and maintains its
// invariants through validated methods.
type Order struct {
	// id is the store-assigned identifier; zero until the order is persisted
	id int64

	// origin is the resolved pickup location
	origin kernel.Location

	// destination is the resolved drop-off location
	destination kernel.Location

	// status is the current state in the assignment lifecycle
	status Status

	// createdAt is the creation timestamp in UTC
	createdAt time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order for the given resolved locations.
// The order starts in Unassigned status with no identifier; the store
// assigns the identifier when the order is first persisted.
//
// Returns a validation error when either location was not properly
// constructed.
func NewOrder(origin kernel.Location, destination kernel.Location) (*Order, error) {
	o := &Order{
		status:        Unassigned,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setOrigin(origin),
		o.setDestination(destination),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence.
// Unlike NewOrder it requires a positive identifier and accepts any valid
// status, since stored orders may already be taken.
func RestoreOrder(
	id int64,
	origin kernel.Location,
	destination kernel.Location,
	status Status,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.AssignID(id),
		o.setOrigin(origin),
		o.setDestination(destination),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
// This prevents bypassing validation by directly instantiating the struct
// and should be called when reconstructing orders from persistence.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// AssignID attaches the store-assigned identifier to a freshly inserted
// order. It fails when the identifier is not positive or when the order
// already has one: identifiers are never reused or replaced.
func (o *Order) AssignID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not greater than 0", id))
	}
	if o.id != 0 {
		return ErrOrderIDAlreadyAssigned
	}

	o.id = id
	return nil
}

// IsEqual compares two orders by their persistent identifiers.
// Orders without an assigned identifier are never equal to anything.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id != 0 && o.id == other.id
}

// ID returns the order's identifier, or zero when not yet persisted.
func (o *Order) ID() int64 {
	return o.id
}

// Origin returns the resolved pickup location.
func (o *Order) Origin() kernel.Location {
	return o.origin
}

// Destination returns the resolved drop-off location.
func (o *Order) Destination() kernel.Location {
	return o.destination
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Take transitions the order from Unassigned to Taken.
//
// Returns a PreconditionFailedError when the order is already taken. Note
// that this in-memory transition alone is not enough to claim an order under
// concurrency; the store's conditional update is the authoritative path and
// this method mirrors its rules for the aggregate.
func (o *Order) Take() error {
	newStatus, err := o.status.Take()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func (o *Order) setOrigin(origin kernel.Location) error {
	if err := origin.Validate(); err != nil {
		return err
	}
	o.origin = origin
	return nil
}

func (o *Order) setDestination(destination kernel.Location) error {
	if err := destination.Validate(); err != nil {
		return err
	}
	o.destination = destination
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
