// Package services defines the business logic for the ticket lifecycle:
// updates, assignment, status toggling, deletion, and audit logging.
// This file centralizes common service-level error values so that they can
// be consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler layer.
package services

import "errors"

// Ticket-related errors.
var (
	// ErrTicketNotFound indicates that the requested ticket does not exist.
	ErrTicketNotFound = errors.New("ticket not found")

	// ErrNotAnAgent is returned when an update tries to assign the ticket
	// to a user whose role is not "agent". This is a business-rule
	// rejection, distinct from input validation: the referenced user
	// exists, it just is not eligible. The ticket is left unmodified.
	ErrNotAnAgent = errors.New("assigned user does not have the agent role")

	// ErrInvalidStatus indicates a stored ticket status outside the
	// open/close state machine. Toggling refuses to coerce such a value;
	// it is an invariant violation in the data, not user error.
	ErrInvalidStatus = errors.New("ticket status is neither open nor close")

	// ErrNoActor is returned when a mutating operation is attempted
	// without a resolved acting user. Mutations are always attributed in
	// the audit trail, so an anonymous mutation is refused outright.
	ErrNoActor = errors.New("no acting user resolved for this operation")
)
