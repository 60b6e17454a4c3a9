// Package order provides domain entities and business logic for order
// management in the dispatch system. It implements the Order aggregate root
// with lifecycle management and state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, resolved
//     locations, and the assignment lifecycle
//   - Status: A state machine that enforces the single valid transition
//
// Key business rules:
//   - Orders carry resolved origin and destination locations, immutable
//     after creation
//   - Order status follows a single transition: Unassigned -> Taken
//   - Taken is terminal; a second take attempt is a precondition failure,
//     not a generic error
//   - Identifiers are assigned by the store at insert and never reused
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
