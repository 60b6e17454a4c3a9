package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetOrdersQueryHandler reads one page of orders from the database.
// Rows are ordered by id ascending, which matches creation order since
// identifiers are monotonic, so consecutive pages never overlap.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for paginated order listings.
// Requires a GORM database connection for query execution.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the query and returns the requested window.
// A window beyond the available records returns an empty slice.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) ([]GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetOrdersQueryResponse, 0, query.Limit())

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			origin_latitude,
			origin_longitude,
			origin_address,
			destination_latitude,
			destination_longitude,
			destination_address,
			status,
			created_at
		FROM orders
		ORDER BY id
		LIMIT ? OFFSET ?
	`, query.Limit(), query.Offset()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id                               int64
			originLat, originLon, originAddr string
			destLat, destLon, destAddr       string
			status                           int
			createdAt                        time.Time
		)

		if err = rows.Scan(
			&id,
			&originLat, &originLon, &originAddr,
			&destLat, &destLon, &destAddr,
			&status,
			&createdAt,
		); err != nil {
			return nil, err
		}

		origin, locErr := kernel.NewLocation(originLat, originLon, originAddr)
		if locErr != nil {
			return nil, locErr
		}

		destination, locErr := kernel.NewLocation(destLat, destLon, destAddr)
		if locErr != nil {
			return nil, locErr
		}

		orders = append(orders, GetOrdersQueryResponse{
			ID:          id,
			Origin:      origin,
			Destination: destination,
			Status:      order.Status(status),
			CreatedAt:   createdAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
