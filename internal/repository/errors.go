// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios, for example mapping
// a duplicate unique field onto an HTTP 409 response.
package repository

import "errors"

// ErrConflict is returned when an insert or update cannot be performed
// because of conflicting state, such as registering an email that is
// already taken. Handlers should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")
