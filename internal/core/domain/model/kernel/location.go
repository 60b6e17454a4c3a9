package kernel

import (
	"errors"
	"fmt"
	"strings"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrLocationIsNotConstructed is returned when attempting to use an
// improperly initialized Location. Locations must be created via the
// NewLocation constructor.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation constructor")

// Location represents a normalized location as resolved by the geocoding
// provider: canonical latitude and longitude plus a human-readable address.
// Once attached to an order it never changes.
//
// Location is an immutable value object. The zero value is invalid and will
// fail validation - use NewLocation to create instances.
//
// Example:
//
//	loc, err := kernel.NewLocation("48.8566", "2.3522", "Paris, France")
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(loc) // Output: Paris, France (48.8566,2.3522)
type Location struct { //nolint:recvcheck //using for validation
	latitude  string
	longitude string
	address   string

	guard guard.ConstructorGuard
}

// NewLocation creates a resolved location from the geocoder's output.
// Latitude and longitude must be non-blank; the address is the provider's
// display label and may be empty when the provider has none.
func NewLocation(latitude string, longitude string, address string) (Location, error) {
	loc := Location{
		address: address,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		loc.setLatitude(latitude),
		loc.setLongitude(longitude),
	); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// Validate checks that the Location was created via NewLocation.
// The zero value fails this check.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// Latitude returns the normalized latitude.
func (l Location) Latitude() string {
	return l.latitude
}

// Longitude returns the normalized longitude.
func (l Location) Longitude() string {
	return l.longitude
}

// Address returns the human-readable address label.
func (l Location) Address() string {
	return l.address
}

// String returns a readable representation for logs. Implements fmt.Stringer.
func (l Location) String() string {
	if l.address == "" {
		return fmt.Sprintf("(%s,%s)", l.latitude, l.longitude)
	}
	return fmt.Sprintf("%s (%s,%s)", l.address, l.latitude, l.longitude)
}

// IsEqual compares two locations by coordinates and address.
// Both values must be properly constructed for the comparison to succeed.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l == other, nil
}

func (l *Location) setLatitude(latitude string) error {
	if strings.TrimSpace(latitude) == "" {
		return errs.NewValueIsRequiredError("latitude")
	}

	l.latitude = latitude
	return nil
}

func (l *Location) setLongitude(longitude string) error {
	if strings.TrimSpace(longitude) == "" {
		return errs.NewValueIsRequiredError("longitude")
	}

	l.longitude = longitude
	return nil
}
