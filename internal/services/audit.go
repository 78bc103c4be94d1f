// Package services – AuditLogger
//
// Every successful mutating operation on a ticket leaves exactly one
// audit trail row. The logger writes through the caller's transaction
// handle, so a failed append fails the surrounding mutation too: a log
// row exists if and only if the mutation was durably applied.
package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-helpdesk-backend/internal/repo"
)

// ActionUpdated is the audit action recorded for both field updates and
// status toggles, mirroring the single-verb trail of the admin workflow.
const ActionUpdated = "updated"

// AuditLogger appends immutable TicketLog rows. The zero value is ready
// to use; it carries no state of its own.
type AuditLogger struct{}

// Record appends one audit row attributing action on ticketID to
// actorID. tx must be the transaction in which the mutation itself runs.
// Errors propagate unwrapped so the transaction rolls back.
func (AuditLogger) Record(ctx context.Context, tx *gorm.DB, ticketID, actorID uint, action string) error {
	return repo.CreateTicketLog(ctx, tx, ticketID, actorID, action)
}
