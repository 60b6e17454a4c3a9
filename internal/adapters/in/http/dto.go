package http

import (
	"time"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// Stable machine-readable error identifiers carried in every error body.
const (
	errorCodeValidation         = "validation_error"
	errorCodeNotFound           = "not_found"
	errorCodePreconditionFailed = "precondition_failed"
	errorCodeInternal           = "internal_error"
)

// CreateOrderRequest is the POST /orders payload: raw coordinate pairs,
// each expected as [latitude, longitude].
type CreateOrderRequest struct {
	Origin      []string `json:"origin"`
	Destination []string `json:"destination"`
}

// TakeOrderRequest is the PATCH /orders/:id payload.
type TakeOrderRequest struct {
	Status string `json:"status"`
}

// TakeOrderResponse acknowledges a successful take.
type TakeOrderResponse struct {
	Status string `json:"status"`
}

// LocationResponse is the wire form of a resolved location.
type LocationResponse struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
	Address   string `json:"address,omitempty"`
}

// OrderResponse is the wire form of an order.
type OrderResponse struct {
	ID          int64            `json:"id"`
	Origin      LocationResponse `json:"origin"`
	Destination LocationResponse `json:"destination"`
	Status      string           `json:"status"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func locationResponse(location kernel.Location) LocationResponse {
	return LocationResponse{
		Latitude:  location.Latitude(),
		Longitude: location.Longitude(),
		Address:   location.Address(),
	}
}

func orderResponse(aggregate *order.Order) OrderResponse {
	return OrderResponse{
		ID:          aggregate.ID(),
		Origin:      locationResponse(aggregate.Origin()),
		Destination: locationResponse(aggregate.Destination()),
		Status:      aggregate.Status().String(),
		CreatedAt:   aggregate.CreatedAt(),
	}
}

func orderListResponse(rows []queries.GetOrdersQueryResponse) []OrderResponse {
	response := make([]OrderResponse, len(rows))
	for i, row := range rows {
		response[i] = OrderResponse{
			ID:          row.ID,
			Origin:      locationResponse(row.Origin),
			Destination: locationResponse(row.Destination),
			Status:      row.Status.String(),
			CreatedAt:   row.CreatedAt,
		}
	}
	return response
}
