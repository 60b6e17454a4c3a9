package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var (
	ErrGetOrderStatsQueryIsNotConstructed = errors.New(
		"GetOrderStatsQuery must be created via NewGetOrderStatsQuery constructor",
	)
)

// GetOrderStatsQuery counts orders per status. It backs the periodic
// dispatch report and gives operators a cheap view of the backlog without
// touching individual records.
type GetOrderStatsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetOrderStatsQuery creates a parameterless stats query.
func NewGetOrderStatsQuery() GetOrderStatsQuery {
	return GetOrderStatsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderStatsQueryIsNotConstructed if validation fails.
func (q GetOrderStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatsQueryIsNotConstructed)
}

// GetOrderStatsQueryResponse represents the per-status order counts.
type GetOrderStatsQueryResponse struct {
	Counts map[order.Status]int64
}

// Unassigned returns the number of orders still waiting for a worker.
func (r GetOrderStatsQueryResponse) Unassigned() int64 {
	return r.Counts[order.Unassigned]
}

// Taken returns the number of orders already claimed.
func (r GetOrderStatsQueryResponse) Taken() int64 {
	return r.Counts[order.Taken]
}
