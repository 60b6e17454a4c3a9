package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand represents a request to create a new dispatch order.
// It carries the raw origin and destination coordinate pairs, already
// validated for shape, so that no external lookup is paid for malformed
// input.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(
//	    []string{"48.8566", "2.3522"},
//	    []string{"45.7640", "4.8357"},
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid coordinates: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	origin      kernel.Coordinates
	destination kernel.Coordinates

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command from the raw coordinate payloads.
// Both sides must independently be a two-element sequence of non-blank
// tokens; violations on both sides are joined into a single error.
func NewCreateOrderCommand(origin []string, destination []string) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrigin(origin),
		orderCommand.setDestination(destination),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// Origin returns the validated pickup coordinate pair.
func (c CreateOrderCommand) Origin() kernel.Coordinates {
	return c.origin
}

// Destination returns the validated drop-off coordinate pair.
func (c CreateOrderCommand) Destination() kernel.Coordinates {
	return c.destination
}

func (c *CreateOrderCommand) setOrigin(values []string) error {
	coords, err := kernel.NewCoordinates(values)
	if err != nil {
		return err
	}

	c.origin = coords
	return nil
}

func (c *CreateOrderCommand) setDestination(values []string) error {
	coords, err := kernel.NewCoordinates(values)
	if err != nil {
		return err
	}

	c.destination = coords
	return nil
}
