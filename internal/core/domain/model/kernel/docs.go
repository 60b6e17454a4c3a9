// Package kernel provides shared value objects for the dispatch domain.
//
// The package includes:
//   - Coordinates: a raw latitude/longitude pair as submitted by a client,
//     validated for shape (exactly two non-blank string tokens) before any
//     external lookup happens
//   - Location: a normalized location returned by the geocoding provider,
//     stored on an order as its resolved origin or destination
//
// Both types are immutable value objects protected by a constructor guard:
// the zero value fails validation and instances can only be obtained through
// the constructor functions. This keeps structural validation of client
// input cheap, transport-independent, and impossible to bypass.
package kernel
