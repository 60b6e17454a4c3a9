package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Resolves the submitted coordinates through the geocoding gateway, then
// persists a new order in Unassigned status. Nothing is persisted before
// geocoding succeeds, so a failed lookup leaves no partial state behind.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, geocoder)
//	cmd, _ := NewCreateOrderCommand(origin, destination)
//
//	created, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // coordinates could not be resolved
//	case errors.Is(err, errs.ErrGatewayFailure):
//	    // provider failed, surface as internal error
//	case err != nil:
//	    // validation or persistence failure
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	geocoder   ports.Geocoder
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence and a Geocoder
// for coordinate resolution.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, geocoder ports.Geocoder) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		geocoder:   geocoder,
	}
}

// Handle processes the order creation command and returns the created order
// with its store-assigned identifier. Geocoding errors propagate unchanged:
// ObjectNotFoundError when the coordinates cannot be resolved,
// GatewayFailureError when the provider fails.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	route, err := h.geocoder.Resolve(ctx, cmd.Origin(), cmd.Destination())
	if err != nil {
		return nil, err
	}

	newOrder, err := order.NewOrder(route.Origin, route.Destination)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return newOrder, nil
}
