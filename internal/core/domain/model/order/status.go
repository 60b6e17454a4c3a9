package order

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the assignment state of an order.
// It implements a state machine with a single defined transition so that an
// order can be claimed by exactly one worker.
//
// State transitions:
//
//	Unassigned ──> Taken
//
// Taken is terminal: no further transitions are defined.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Unassigned is the initial status when an order is created.
	// Orders in this status are waiting to be taken by a worker.
	Unassigned

	// Taken indicates a worker has claimed the order.
	// This is a final state for the dispatch lifecycle.
	Taken
)

// getStatusStrings returns the wire representation of every Status value,
// including Unknown, to support string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "UNKNOWN",
		Unassigned: "UNASSIGNED",
		Taken:      "TAKEN",
	}
}

// getValidStatusStrings returns only valid Status values to support
// validation and parsing.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Unassigned: "UNASSIGNED",
		Taken:      "TAKEN",
	}
}

// ParseStatus converts a wire value ("UNASSIGNED", "TAKEN") to a Status.
//
// Returns a ValueIsRequiredError for an empty string and a
// ValueIsInvalidError for an unrecognized value. Parsing is strict: status
// values are identifiers, not free text, so no case folding is applied.
func ParseStatus(value string) (Status, error) {
	if value == "" {
		return Unknown, errs.NewValueIsRequiredError("status")
	}

	for status, str := range getValidStatusStrings() {
		if str == value {
			return status, nil
		}
	}

	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a recognized status value", value))
}

// Validate checks if the Status value is valid.
// Valid statuses are Unassigned and Taken; Unknown and any other values fail.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status ("UNASSIGNED", "TAKEN") or
// "UNKNOWN" for invalid values. Implements fmt.Stringer and is safe to call
// on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// ValidateTake checks whether the status allows the take transition without
// performing it. Only Unassigned orders can be taken; a Taken order reports
// a PreconditionFailedError so callers can distinguish the lost-race outcome
// from plain validation failures.
func (s Status) ValidateTake() error {
	switch s {
	case Unassigned:
		return nil
	case Taken:
		return errs.NewPreconditionFailedErrorWithCause("status", s.String(),
			errors.New("order is already taken"))
	default:
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to take", s.String()))
	}
}

// Take transitions the status to Taken.
//
// Valid transitions:
//   - Unassigned -> Taken
//
// Any other source status fails: Taken -> Taken yields a
// PreconditionFailedError, everything else a ValueIsInvalidError.
func (s Status) Take() (Status, error) {
	if err := s.ValidateTake(); err != nil {
		return Unknown, err
	}

	return Taken, nil
}
