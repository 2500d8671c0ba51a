// Package errs provides the standardized error types used across the
// fulfillment core. It implements a consistent pattern for error creation,
// formatting and unwrapping.
//
// The package covers the common failure categories:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value failed validation
//   - ValueIsOutOfRangeError: a value fell outside its allowed bounds
//   - ObjectNotFoundError: an object could not be located by its identifier
//   - VersionIsInvalidError: an aggregate version check failed
//
// Each error type follows the same shape:
//   - a sentinel error variable (e.g. ErrValueIsRequired)
//   - a struct type carrying the parameter name and optional cause
//   - constructor functions with and without cause
//   - Error() for formatting and Unwrap() returning the sentinel
//
// Callers classify failures with errors.Is against the sentinels, so the
// transport layer can map them onto status codes without knowing the
// concrete struct types.
package errs
