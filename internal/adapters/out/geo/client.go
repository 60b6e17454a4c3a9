// Package geo implements the Geocoder port against an external reverse
// geocoding HTTP provider (Pelias-compatible, such as OpenRouteService).
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

type reverseResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Label string `json:"label"`
		} `json:"properties"`
	} `json:"features"`
}

// Client resolves coordinate pairs through the provider's /geocode/reverse
// endpoint. It performs no retries: callers decide whether a failed create
// request is worth repeating.
type Client struct {
	baseURL string
	apiKey  string
	session *http.Client
}

// NewClient creates a geocoding client. The session's timeout is the only
// time bound applied on top of the request context.
func NewClient(baseURL string, apiKey string, session *http.Client) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	if session == nil {
		return nil, errs.NewValueIsRequiredError("session")
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		session: session,
	}, nil
}

// Resolve reverse-geocodes both coordinate pairs. It returns an
// ObjectNotFoundError when the provider has no result for a pair and a
// GatewayFailureError for transport or provider failures.
func (c *Client) Resolve(
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

	originLocation, err := c.reverse(ctx, origin)
	if err != nil {
		return ports.ResolvedRoute{}, err
	}

	destinationLocation, err := c.reverse(ctx, destination)
	if err != nil {
		return ports.ResolvedRoute{}, err
	}

	return ports.ResolvedRoute{
		Origin:      originLocation,
		Destination: destinationLocation,
	}, nil
}

func (c *Client) reverse(ctx context.Context, coordinates kernel.Coordinates) (kernel.Location, error) {
	req, err := c.newRequest(ctx, c.baseURL+"/geocode/reverse")
	if err != nil {
		return kernel.Location{}, errs.NewGatewayFailureErrorWithCause("geocoder", err)
	}

	q := req.URL.Query()
	q.Set("point.lat", coordinates.Latitude())
	q.Set("point.lon", coordinates.Longitude())
	q.Set("size", "1")
	req.URL.RawQuery = q.Encode()

	resp, err := c.do(req)
	if err != nil {
		var statusErr *httpStatusError
		if errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound {
			return kernel.Location{}, errs.NewObjectNotFoundErrorWithCause(
				"coordinates", coordinates.String(), statusErr)
		}
		return kernel.Location{}, errs.NewGatewayFailureErrorWithCause("geocoder", err)
	}
	defer resp.Body.Close()

	var decoded reverseResponse
	if err = json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return kernel.Location{}, errs.NewGatewayFailureErrorWithCause(
			"geocoder", fmt.Errorf("decode reverse response: %w", err))
	}

	if len(decoded.Features) == 0 {
		return kernel.Location{}, errs.NewObjectNotFoundError("coordinates", coordinates.String())
	}

	feature := decoded.Features[0]

	// Provider coordinates are authoritative when present, the request pair
	// stays as the fallback. GeoJSON order is lon, lat.
	latitude := coordinates.Latitude()
	longitude := coordinates.Longitude()
	if len(feature.Geometry.Coordinates) == 2 {
		longitude = formatCoordinate(feature.Geometry.Coordinates[0])
		latitude = formatCoordinate(feature.Geometry.Coordinates[1])
	}

	location, err := kernel.NewLocation(latitude, longitude, feature.Properties.Label)
	if err != nil {
		return kernel.Location{}, errs.NewGatewayFailureErrorWithCause("geocoder", err)
	}

	return location, nil
}

func (c *Client) newRequest(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if c.apiKey != "" {
		req.Header.Set("Authorization", c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	return req, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

func formatCoordinate(value float64) string {
	return fmt.Sprintf("%g", value)
}
