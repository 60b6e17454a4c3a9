package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrTakeOrderCommandIsNotConstructed = errors.New(
		"TakeOrderCommand must be created via NewTakeOrderCommand constructor",
	)
)

// TakeOrderCommand represents a worker's request to claim an order.
// The requested status must be present and must parse to Taken - the only
// meaningful target of the take operation. Status validation happens here,
// before any store access.
//
// Example:
//
//	cmd, err := NewTakeOrderCommand(42, "TAKEN")
//	if err != nil {
//	    return fmt.Errorf("invalid take request: %w", err)
//	}
//
//	newStatus, err := handler.Handle(ctx, cmd)
type TakeOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         int64
	requestedStatus order.Status

	guard guard.ConstructorGuard
}

// NewTakeOrderCommand creates a command to take the order with the given id.
// The raw status value must parse to a valid status and that status must be
// Taken; anything else is a validation error. The id itself is not checked
// for existence here - an unknown id surfaces as ObjectNotFoundError from
// the handler.
func NewTakeOrderCommand(orderID int64, statusValue string) (TakeOrderCommand, error) {
	takeCommand := TakeOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}

	if err := takeCommand.setRequestedStatus(statusValue); err != nil {
		return TakeOrderCommand{}, err
	}

	return takeCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrTakeOrderCommandIsNotConstructed if validation fails.
func (c TakeOrderCommand) Validate() error {
	return c.guard.Validate(ErrTakeOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to take.
func (c TakeOrderCommand) OrderID() int64 {
	return c.orderID
}

// RequestedStatus returns the parsed target status (always Taken for a
// constructed command).
func (c TakeOrderCommand) RequestedStatus() order.Status {
	return c.requestedStatus
}

func (c *TakeOrderCommand) setRequestedStatus(statusValue string) error {
	status, err := order.ParseStatus(statusValue)
	if err != nil {
		return err
	}

	if status != order.Taken {
		return errs.NewValueIsInvalidErrorWithCause("status",
			errors.New("only TAKEN can be requested"))
	}

	c.requestedStatus = status
	return nil
}
