// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, handling the conversion between domain entities and database
// representations.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The identifier is a bigserial assigned by the database at insert, which
// gives orders a unique, monotonic, never-reused id.
type OrderDTO struct {
	ID          int64       `gorm:"primaryKey;autoIncrement"`
	Origin      LocationDTO `gorm:"embedded;embeddedPrefix:origin_"`
	Destination LocationDTO `gorm:"embedded;embeddedPrefix:destination_"`
	Status      int         `gorm:"index"`
	CreatedAt   time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// LocationDTO represents an embedded resolved location within the order table.
type LocationDTO struct {
	Latitude  string
	Longitude string
	Address   string
}

// fromDomain converts an order aggregate to its database representation.
// A zero id is left for the database to assign.
func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:          aggregate.ID(),
		Origin:      locationFromDomain(aggregate.Origin()),
		Destination: locationFromDomain(aggregate.Destination()),
		Status:      int(aggregate.Status()),
		CreatedAt:   aggregate.CreatedAt(),
	}
}

func locationFromDomain(loc kernel.Location) LocationDTO {
	return LocationDTO{
		Latitude:  loc.Latitude(),
		Longitude: loc.Longitude(),
		Address:   loc.Address(),
	}
}

// toDomain converts a database DTO to an order aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	origin, err := kernel.NewLocation(dto.Origin.Latitude, dto.Origin.Longitude, dto.Origin.Address)
	if err != nil {
		return nil, err
	}

	destination, err := kernel.NewLocation(
		dto.Destination.Latitude, dto.Destination.Longitude, dto.Destination.Address)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(dto.ID, origin, destination, order.Status(dto.Status), dto.CreatedAt)
}
