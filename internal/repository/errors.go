// Package repository defines error types that are reused across
// multiple repositories.  These sentinel values allow handlers to
// distinguish failure scenarios: ErrForbidden indicates the current
// user is not authorized to act on a resource owned by someone else,
// ErrConflict signals that an operation cannot proceed because of
// existing state (a taken slot, a pitch with future reservations).
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own.  Handlers translate this into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an insert or update cannot be performed
// because of conflicting state, such as booking an occupied slot or
// deleting a pitch that still has upcoming reservations.  Handlers
// translate this into HTTP 409.
var ErrConflict = errors.New("conflict")
