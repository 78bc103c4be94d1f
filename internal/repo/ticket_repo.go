// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Ticket
// model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a ticket is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
//
// Functions:
//
//   - CountTickets(ctx, db, filter) -> (int64, error)
//     Returns the total number of tickets matching the filter.
//
//   - ListTicketsPage(ctx, db, filter, offset, limit) -> []domain.Ticket, error
//     Returns a filtered, paginated slice of tickets with their categories,
//     labels, and assigned agent preloaded, newest first.
//
//   - GetTicketDetail(ctx, db, id) -> *domain.Ticket, error
//     Fetches one ticket with categories, labels, assigned agent,
//     attachments, and comments (ascending, with authors).
//
//   - GetTicketForEdit(ctx, db, id) -> *domain.Ticket, error
//     Fetches one ticket with categories, labels, assigned agent, and
//     the owning user, as needed by the edit form.
//
//   - UpdateTicketFields(ctx, db, id, fields) -> error
//     Applies a column map to one ticket row.
//
//   - ReplaceTicketCategories / ReplaceTicketLabels(ctx, db, ticket, ids)
//     Destructively syncs the respective many-to-many association set.
//
//   - DeleteTicket(ctx, db, id) -> (int64, error)
//     Deletes a ticket and clears its association rows. Idempotent.
//
// This repository is designed to be wrapped by a higher-level service
// (see services.TicketService) which enforces validation, assignment
// rules, and audit logging.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-helpdesk-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// TicketFilter narrows ticket list queries. All clauses are conjunctive.
// A nil CategoryID means "any category". Priority and Status apply only
// when they hold a member of the respective enumeration; any other value
// (including "") leaves that clause out entirely, matching the deliberate
// leniency of the list view toward unrecognized query parameters.
type TicketFilter struct {
	CategoryID *uint
	Priority   string
	Status     string
}

// scopeTickets applies the filter clauses to a tickets query.
func scopeTickets(q *gorm.DB, f TicketFilter) *gorm.DB {
	if f.CategoryID != nil {
		q = q.Where(
			"EXISTS (SELECT 1 FROM ticket_categories tc WHERE tc.ticket_id = tickets.id AND tc.category_id = ?)",
			*f.CategoryID,
		)
	}
	if domain.ValidPriority(f.Priority) {
		q = q.Where("priority = ?", f.Priority)
	}
	if domain.ValidStatus(f.Status) {
		q = q.Where("status = ?", f.Status)
	}
	return q
}

// CountTickets returns the number of tickets matching f.
// On DB error, it returns the error.
func CountTickets(ctx context.Context, db *gorm.DB, f TicketFilter) (int64, error) {
	var total int64
	err := scopeTickets(db.WithContext(ctx).Model(&domain.Ticket{}), f).
		Count(&total).Error
	return total, err
}

// ListTicketsPage returns a filtered, paginated slice of tickets ordered by
// creation time descending (most recent first), with categories, labels,
// and the assigned agent preloaded for list rendering. Use CountTickets to
// obtain the total for pagination metadata.
//
// The caller is responsible for computing offset and limit (e.g., (page-1)*pageSize).
func ListTicketsPage(ctx context.Context, db *gorm.DB, f TicketFilter, offset, limit int) ([]domain.Ticket, error) {
	var out []domain.Ticket
	err := scopeTickets(db.WithContext(ctx), f).
		Preload("Categories").
		Preload("Labels").
		Preload("AssignedAgent").
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// GetTicketDetail fetches a single ticket by ID with everything the detail
// view renders: categories, labels, assigned agent, attachments, and
// comments ordered by creation time ascending, each with its author.
// If the record does not exist, it returns ErrNotFound.
func GetTicketDetail(ctx context.Context, db *gorm.DB, id uint) (*domain.Ticket, error) {
	var t domain.Ticket
	err := db.WithContext(ctx).
		Preload("Categories").
		Preload("Labels").
		Preload("AssignedAgent").
		Preload("Attachments").
		Preload("Comments", func(q *gorm.DB) *gorm.DB {
			return q.Order("comments.created_at asc")
		}).
		Preload("Comments.User").
		First(&t, id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetTicketForEdit fetches a single ticket by ID with the associations the
// edit form needs: categories, labels, assigned agent, and the owning
// user. If the record does not exist, it returns ErrNotFound.
func GetTicketForEdit(ctx context.Context, db *gorm.DB, id uint) (*domain.Ticket, error) {
	var t domain.Ticket
	err := db.WithContext(ctx).
		Preload("Categories").
		Preload("Labels").
		Preload("AssignedAgent").
		Preload("User").
		First(&t, id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetTicket fetches a bare ticket row by ID (no preloads). If the record
// does not exist, it returns ErrNotFound.
func GetTicket(ctx context.Context, db *gorm.DB, id uint) (*domain.Ticket, error) {
	var t domain.Ticket
	if err := db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateTicketFields applies the given column map to the ticket row
// identified by id. If no rows are affected (ticket missing), it returns
// ErrNotFound. On DB error, the raw error is returned.
func UpdateTicketFields(ctx context.Context, db *gorm.DB, id uint, fields map[string]any) error {
	res := db.WithContext(ctx).
		Model(&domain.Ticket{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ReplaceTicketCategories replaces the ticket's entire category
// association set with categoryIDs. This is a destructive sync: rows not
// in categoryIDs are removed, and no residue from the prior set remains.
func ReplaceTicketCategories(ctx context.Context, db *gorm.DB, t *domain.Ticket, categoryIDs []uint) error {
	cats := make([]domain.Category, len(categoryIDs))
	for i, id := range categoryIDs {
		cats[i] = domain.Category{ID: id}
	}
	return db.WithContext(ctx).Model(t).Association("Categories").Replace(cats)
}

// ReplaceTicketLabels replaces the ticket's entire label association set
// with labelIDs. Same destructive-sync semantics as ReplaceTicketCategories.
func ReplaceTicketLabels(ctx context.Context, db *gorm.DB, t *domain.Ticket, labelIDs []uint) error {
	labels := make([]domain.Label, len(labelIDs))
	for i, id := range labelIDs {
		labels[i] = domain.Label{ID: id}
	}
	return db.WithContext(ctx).Model(t).Association("Labels").Replace(labels)
}

// DeleteTicket removes the ticket row with the given ID along with its
// category and label association rows, and reports how many ticket rows
// were deleted. Deleting a nonexistent ID is a no-op, not an error.
//
// Audit log rows referencing the ticket are intentionally left in place.
func DeleteTicket(ctx context.Context, db *gorm.DB, id uint) (int64, error) {
	tdb := db.WithContext(ctx)
	if err := tdb.Exec("DELETE FROM ticket_categories WHERE ticket_id = ?", id).Error; err != nil {
		return 0, err
	}
	if err := tdb.Exec("DELETE FROM ticket_labels WHERE ticket_id = ?", id).Error; err != nil {
		return 0, err
	}
	res := tdb.Delete(&domain.Ticket{}, id)
	return res.RowsAffected, res.Error
}
