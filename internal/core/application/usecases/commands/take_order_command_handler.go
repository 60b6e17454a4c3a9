package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// TakeOrderCommandHandler handles the concurrency-safe take-order transition.
//
// The repository's TryTransition is an atomic compare-and-set: for any order
// id, at most one concurrent caller observes success. The handler never does
// a read-then-write pair on the status; it only reads the order afterwards
// to tell an unknown id apart from a lost race.
//
// Example:
//
//	handler := NewTakeOrderCommandHandler(uowFactory)
//	cmd, _ := NewTakeOrderCommand(42, "TAKEN")
//
//	newStatus, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // no such order
//	case errors.Is(err, errs.ErrPreconditionFailed):
//	    // someone else took this order
//	case err != nil:
//	    // store failure
//	default:
//	    fmt.Println("order is now", newStatus) // TAKEN
//	}
type TakeOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewTakeOrderCommandHandler creates a handler for take-order operations.
// Requires an OrderUoWFactory for transactional access to the order store.
func NewTakeOrderCommandHandler(uowFactory OrderUoWFactory) TakeOrderCommandHandler {
	return TakeOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the take-order command and returns the order's new status
// on success. Failure outcomes are distinct and stable: ObjectNotFoundError
// for an unknown id, PreconditionFailedError when the order is already
// taken.
func (h TakeOrderCommandHandler) Handle(ctx context.Context, cmd TakeOrderCommand) (order.Status, error) {
	if err := cmd.Validate(); err != nil {
		return order.Unknown, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return order.Unknown, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	taken, err := repo.TryTransition(ctx, cmd.OrderID(), order.Unassigned, cmd.RequestedStatus())
	if err != nil {
		return order.Unknown, err
	}

	if !taken {
		// The update matched no row: either the order does not exist or its
		// status is no longer Unassigned. Get distinguishes the two.
		existing, getErr := repo.Get(ctx, cmd.OrderID())
		if getErr != nil {
			return order.Unknown, getErr
		}

		if takeErr := existing.Status().ValidateTake(); takeErr != nil {
			return order.Unknown, takeErr
		}

		// The order flipped back to a takeable state between the update and
		// the read, which no defined transition allows. Report the lost race.
		return order.Unknown, errs.NewPreconditionFailedError("order", cmd.OrderID())
	}

	if err = uow.Commit(ctx); err != nil {
		return order.Unknown, err
	}

	return cmd.RequestedStatus(), nil
}
