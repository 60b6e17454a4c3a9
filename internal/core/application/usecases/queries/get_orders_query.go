// Package queries contains read-only operations over the order store.
// Query handlers read directly from the database and return plain response
// structs, bypassing the aggregate layer used by commands.
package queries

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrGetOrdersQueryIsNotConstructed = errors.New(
		"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
	)
)

// GetOrdersQuery retrieves one page of orders in a stable order.
// Both page and limit are 1-based and must be positive; a window beyond the
// available records yields an empty result, not an error.
//
// Example:
//
//	query, err := NewGetOrdersQuery(2, 20)
//	if err != nil {
//	    return fmt.Errorf("invalid paging: %w", err)
//	}
//
//	orders, err := handler.Handle(ctx, query)
type GetOrdersQuery struct { //nolint:recvcheck //using for validation
	page  int
	limit int

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates a query for the given page window.
// Page and limit must both be at least 1.
func NewGetOrdersQuery(page int, limit int) (GetOrdersQuery, error) {
	query := GetOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setPage(page),
		query.setLimit(limit),
	); err != nil {
		return GetOrdersQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrdersQueryIsNotConstructed if validation fails.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// Page returns the 1-based page number.
func (q GetOrdersQuery) Page() int {
	return q.page
}

// Limit returns the page size.
func (q GetOrdersQuery) Limit() int {
	return q.limit
}

// Offset returns the number of records to skip for this window.
// Computed in int64 so extreme page and limit combinations cannot overflow.
func (q GetOrdersQuery) Offset() int64 {
	return int64(q.page-1) * int64(q.limit)
}

func (q *GetOrdersQuery) setPage(page int) error {
	if page < 1 {
		return errs.NewValueIsInvalidErrorWithCause("page", fmt.Errorf("%d is not greater than or equal to 1", page))
	}
	q.page = page
	return nil
}

func (q *GetOrdersQuery) setLimit(limit int) error {
	if limit < 1 {
		return errs.NewValueIsInvalidErrorWithCause("limit", fmt.Errorf("%d is not greater than or equal to 1", limit))
	}
	q.limit = limit
	return nil
}

// GetOrdersQueryResponse represents one order row in a listing.
type GetOrdersQueryResponse struct {
	ID          int64
	Origin      kernel.Location
	Destination kernel.Location
	Status      order.Status
	CreatedAt   time.Time
}
