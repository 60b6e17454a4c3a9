package kernel

import (
	"errors"
	"fmt"
	"strings"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// coordinatesSize is the required number of elements in a coordinate pair.
const coordinatesSize = 2

// ErrCoordinatesAreNotConstructed is returned when attempting to use an
// improperly initialized Coordinates value. Coordinates must be created via
// the NewCoordinates constructor.
var ErrCoordinatesAreNotConstructed = errs.NewValueIsRequiredError(
	"coordinates must be created via NewCoordinates constructor")

// Coordinates represents a raw (latitude, longitude) pair as submitted by a
// client: exactly two non-blank string tokens. It is the structural check
// that runs before the geocoding provider is ever called, so malformed input
// is rejected without paying for an external lookup.
//
// Coordinates is an immutable value object. The zero value is invalid and
// will fail validation - use NewCoordinates to create instances.
//
// Example:
//
//	coords, err := kernel.NewCoordinates([]string{"48.8566", "2.3522"})
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(coords) // Output: 48.8566,2.3522
type Coordinates struct { //nolint:recvcheck //using for validation
	latitude  string
	longitude string

	guard guard.ConstructorGuard
}

// NewCoordinates creates a validated coordinate pair from a raw slice.
//
// The slice must contain exactly two elements, latitude first, and neither
// element may be empty or whitespace-only. Returns a ValueIsRequiredError
// for an absent or empty slice and a ValueIsInvalidError for a wrong length
// or a blank element.
func NewCoordinates(values []string) (Coordinates, error) {
	if len(values) == 0 {
		return Coordinates{}, errs.NewValueIsRequiredError("coordinates")
	}

	if len(values) != coordinatesSize {
		return Coordinates{}, errs.NewValueIsInvalidErrorWithCause("coordinates",
			fmt.Errorf("expected exactly %d elements, got %d", coordinatesSize, len(values)))
	}

	coords := Coordinates{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		coords.setLatitude(values[0]),
		coords.setLongitude(values[1]),
	); err != nil {
		return Coordinates{}, err
	}

	return coords, nil
}

// Validate checks that the Coordinates value was created via NewCoordinates.
// The zero value fails this check.
func (c Coordinates) Validate() error {
	return c.guard.Validate(ErrCoordinatesAreNotConstructed)
}

// Latitude returns the raw latitude token.
func (c Coordinates) Latitude() string {
	return c.latitude
}

// Longitude returns the raw longitude token.
func (c Coordinates) Longitude() string {
	return c.longitude
}

// String returns the pair as "latitude,longitude". Implements fmt.Stringer.
func (c Coordinates) String() string {
	return c.latitude + "," + c.longitude
}

// IsEqual compares two coordinate pairs token by token.
// Both values must be properly constructed for the comparison to succeed.
func (c Coordinates) IsEqual(other Coordinates) (bool, error) {
	if err := errors.Join(c.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return c.latitude == other.latitude && c.longitude == other.longitude, nil
}

// setLatitude sets the latitude token with validation.
// Note: pointer receiver on a value-object setter is intentional; private
// setters carry the construction-time validation.
func (c *Coordinates) setLatitude(latitude string) error {
	if strings.TrimSpace(latitude) == "" {
		return errs.NewValueIsInvalidErrorWithCause("coordinates", errors.New("latitude must not be blank"))
	}

	c.latitude = latitude
	return nil
}

// setLongitude sets the longitude token with validation.
func (c *Coordinates) setLongitude(longitude string) error {
	if strings.TrimSpace(longitude) == "" {
		return errs.NewValueIsInvalidErrorWithCause("coordinates", errors.New("longitude must not be blank"))
	}

	c.longitude = longitude
	return nil
}
