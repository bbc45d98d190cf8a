// Package errs provides standardized error types for the print shop service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed input,
//     all of them match ErrValidation
//   - ConfigurationError: a reference to a service, material or rate that is not configured
//   - InvalidTransitionError: an order status change the lifecycle does not allow
//   - ObjectNotFoundError: nothing stored under the requested key
//   - VersionIsInvalidError: an optimistic write lost against a concurrent writer
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is works on the category
package errs
