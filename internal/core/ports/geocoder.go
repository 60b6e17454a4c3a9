package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
)

// ResolvedRoute carries the geocoder's answer for one create request:
// both coordinate pairs resolved to normalized locations.
type ResolvedRoute struct {
	Origin      kernel.Location
	Destination kernel.Location
}

// Geocoder resolves raw coordinate pairs to normalized location data through
// an external provider. The core calls it synchronously once per create
// request and does not retry: an ObjectNotFoundError means the provider
// could not resolve the coordinates, a GatewayFailureError means the
// provider itself failed. Callers own timeout policy via ctx.
type Geocoder interface {
	Resolve(ctx context.Context, origin kernel.Coordinates, destination kernel.Coordinates) (ResolvedRoute, error)
}
