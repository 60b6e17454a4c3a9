// Package geocache adds a Redis read-through cache in front of a Geocoder.
// Geocoding results for a coordinate pair are stable, so a hit saves the
// external round trip on repeated create requests for popular routes.
package geocache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "geocode:"

type cachedLocation struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
	Address   string `json:"address"`
}

type cachedRoute struct {
	Origin      cachedLocation `json:"origin"`
	Destination cachedLocation `json:"destination"`
}

// CachedGeocoder decorates a Geocoder with a Redis cache. Cache failures
// never fail the request, the call falls through to the upstream provider.
type CachedGeocoder struct {
	client   redis.Cmdable
	upstream ports.Geocoder
	ttl      time.Duration
	logger   *slog.Logger
}

// NewCachedGeocoder creates the caching decorator. A non-positive ttl stores
// entries without expiration.
func NewCachedGeocoder(
	client redis.Cmdable,
	upstream ports.Geocoder,
	ttl time.Duration,
	logger *slog.Logger,
) (*CachedGeocoder, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("client")
	}
	if upstream == nil {
		return nil, errs.NewValueIsRequiredError("upstream")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CachedGeocoder{
		client:   client,
		upstream: upstream,
		ttl:      ttl,
		logger:   logger,
	}, nil
}

// Resolve serves the route from Redis when possible and falls back to the
// upstream geocoder otherwise. Successful upstream answers are written back;
// not-found answers are not cached so a later fix on the provider side is
// picked up immediately.
func (g *CachedGeocoder) Resolve(
	ctx context.Context,
	origin kernel.Coordinates,
	destination kernel.Coordinates,
) (ports.ResolvedRoute, error) {
	if err := origin.Validate(); err != nil {
		return ports.ResolvedRoute{}, err
	}
	if err := destination.Validate(); err != nil {
		return ports.ResolvedRoute{}, err
	}

	key := cacheKey(origin, destination)

	if route, ok := g.lookup(ctx, key); ok {
		return route, nil
	}

	route, err := g.upstream.Resolve(ctx, origin, destination)
	if err != nil {
		return ports.ResolvedRoute{}, err
	}

	g.store(ctx, key, route)

	return route, nil
}

func (g *CachedGeocoder) lookup(ctx context.Context, key string) (ports.ResolvedRoute, bool) {
	payload, err := g.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			g.logger.Warn("geocode cache read failed", "key", key, "error", err)
		}
		return ports.ResolvedRoute{}, false
	}

	var cached cachedRoute
	if err = json.Unmarshal(payload, &cached); err != nil {
		g.logger.Warn("geocode cache entry is corrupt", "key", key, "error", err)
		return ports.ResolvedRoute{}, false
	}

	origin, err := kernel.NewLocation(
		cached.Origin.Latitude, cached.Origin.Longitude, cached.Origin.Address)
	if err != nil {
		return ports.ResolvedRoute{}, false
	}

	destination, err := kernel.NewLocation(
		cached.Destination.Latitude, cached.Destination.Longitude, cached.Destination.Address)
	if err != nil {
		return ports.ResolvedRoute{}, false
	}

	return ports.ResolvedRoute{Origin: origin, Destination: destination}, true
}

func (g *CachedGeocoder) store(ctx context.Context, key string, route ports.ResolvedRoute) {
	payload, err := json.Marshal(cachedRoute{
		Origin:      locationToCache(route.Origin),
		Destination: locationToCache(route.Destination),
	})
	if err != nil {
		g.logger.Warn("geocode cache encode failed", "key", key, "error", err)
		return
	}

	ttl := g.ttl
	if ttl < 0 {
		ttl = 0
	}

	if err = g.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		g.logger.Warn("geocode cache write failed", "key", key, "error", err)
	}
}

func locationToCache(location kernel.Location) cachedLocation {
	return cachedLocation{
		Latitude:  location.Latitude(),
		Longitude: location.Longitude(),
		Address:   location.Address(),
	}
}

func cacheKey(origin kernel.Coordinates, destination kernel.Coordinates) string {
	return keyPrefix + origin.String() + "|" + destination.String()
}
