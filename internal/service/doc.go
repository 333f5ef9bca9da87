// Package service implements the application's use cases (features) on top
// of the domain entities and store contracts.
//
// Error handling principles:
//  1. Domain errors (validation failures, not-found conditions, business
//     rule violations) propagate to the caller unmodified.
//  2. Unexpected storage failures are wrapped with context via fmt.Errorf.
//  3. Callers use errors.Is/errors.As to check for specific conditions; the
//     API layer maps domain error kinds to HTTP status codes.
//  4. Nothing here retries automatically; transient storage failures are the
//     store adapter's concern.
package service
