// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// TicketLog audit trail.
//
// TicketLog rows are append-only: this file deliberately exposes no
// update or delete operation for them.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-helpdesk-backend/internal/domain"
)

// CreateTicketLog appends one audit trail row recording that actorID
// performed action on ticketID. CreatedAt is set to UTC.
//
// Callers performing a mutation must invoke this with their transaction
// handle so the log row commits or rolls back with the mutation itself.
func CreateTicketLog(ctx context.Context, db *gorm.DB, ticketID, actorID uint, action string) error {
	entry := &domain.TicketLog{
		TicketID:  ticketID,
		UserID:    actorID,
		Action:    action,
		CreatedAt: time.Now().UTC(),
	}
	return db.WithContext(ctx).Create(entry).Error
}

// ListTicketLogs returns the audit trail for a ticket, oldest first.
// It returns an empty slice when the ticket has no log entries (including
// when the ticket itself no longer exists — orphaned history remains
// readable).
func ListTicketLogs(ctx context.Context, db *gorm.DB, ticketID uint) ([]domain.TicketLog, error) {
	var out []domain.TicketLog
	err := db.WithContext(ctx).
		Where("ticket_id = ?", ticketID).
		Order("created_at asc").
		Find(&out).Error
	return out, err
}

// CountTicketLogs returns the number of audit rows for a ticket.
func CountTicketLogs(ctx context.Context, db *gorm.DB, ticketID uint) (int64, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.TicketLog{}).
		Where("ticket_id = ?", ticketID).
		Count(&n).Error
	return n, err
}
