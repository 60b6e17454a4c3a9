// Package errs provides standardized error types for the dispatch application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a numeric value is outside its bounds
//   - ObjectNotFoundError: For when an object cannot be found
//   - PreconditionFailedError: For when a conditional state transition loses
//     against a concurrent request (an order already taken by another worker)
//   - GatewayFailureError: For when a downstream dependency fails
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Because every typed error unwraps to its sentinel, callers classify errors
// with errors.Is and branch programmatically instead of matching messages.
// The HTTP boundary relies on this to map errors to stable status codes.
package errs
