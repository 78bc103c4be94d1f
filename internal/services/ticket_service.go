// Package services – TicketService
//
// This file implements the TicketService, the workflow engine of the
// helpdesk: it validates edit submissions, enforces the agent-only
// assignment rule, toggles ticket status, deletes tickets, and keeps the
// audit trail in lockstep with every mutation. Service-level errors
// (*ValidationError, ErrNotAnAgent, ErrTicketNotFound, ErrInvalidStatus,
// ErrNoActor) are returned for predictable cases so handlers can map them
// to HTTP results consistently.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tbourn/go-helpdesk-backend/internal/domain"
	"github.com/tbourn/go-helpdesk-backend/internal/repo"
)

// TicketService implements the mutating use-cases of the ticket
// lifecycle. Reads (list/detail/edit lookups) go straight to the repo
// layer; every path through this service either commits a complete
// mutation plus its audit row or leaves the store untouched.
//
// Concurrency: operations are independent per request; concurrent
// updates to the same ticket resolve last-write-wins at the store.
type TicketService struct {
	// DB is the database handle used for all ticket operations.
	DB *gorm.DB

	// Audit appends the per-mutation trail row inside the same
	// transaction as the mutation.
	Audit AuditLogger
}

// Update applies a full edit to ticketID on behalf of actorID.
//
// Semantics and ordering:
//  1. Input validation first (*ValidationError, per field); nothing is
//     read or written when input is malformed.
//  2. If in.AssignedAgentID is set and resolves to a user, that user
//     must hold the agent role; otherwise ErrNotAnAgent and the ticket
//     is left unmodified. An AssignedAgentID that resolves to no user at
//     all is ignored, matching the original form's lookup-then-check
//     behavior.
//  3. The ticket is loaded (ErrTicketNotFound if absent), then in one
//     transaction: title, description, priority, and status are
//     updated — plus the assignment when step 2 produced a valid agent;
//     a nil AssignedAgentID leaves any existing assignment untouched
//     (explicit unassignment is not expressible through this call).
//  4. The category and label association sets are replaced wholesale
//     with the supplied sets.
//  5. One audit row (action "updated") is appended for actorID.
//
// Any persistence failure rolls back the entire transaction; no partial
// mutation remains visible.
func (s *TicketService) Update(ctx context.Context, actorID, ticketID uint, in UpdateTicketInput) error {
	if actorID == 0 {
		return ErrNoActor
	}
	if verr := in.validate(); verr != nil {
		return verr
	}

	// Resolve the optional assignee before touching the ticket.
	assign := false
	if in.AssignedAgentID != nil {
		agent, err := repo.GetUser(ctx, s.DB, *in.AssignedAgentID)
		switch {
		case err == nil && !agent.IsAgent():
			return ErrNotAnAgent
		case err == nil:
			assign = true
		case errors.Is(err, repo.ErrNotFound):
			// Unknown user id: skipped, assignment left as-is.
		default:
			return err
		}
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ticket, err := repo.GetTicket(ctx, tx, ticketID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrTicketNotFound
			}
			return err
		}

		fields := map[string]any{
			"title":       in.Title,
			"description": in.Description,
			"priority":    in.Priority,
			"status":      in.Status,
		}
		if assign {
			fields["assigned_agent_id"] = *in.AssignedAgentID
		}
		if err := repo.UpdateTicketFields(ctx, tx, ticket.ID, fields); err != nil {
			return err
		}

		if err := repo.ReplaceTicketCategories(ctx, tx, ticket, in.CategoryIDs); err != nil {
			return err
		}
		if err := repo.ReplaceTicketLabels(ctx, tx, ticket, in.LabelIDs); err != nil {
			return err
		}

		return s.Audit.Record(ctx, tx, ticket.ID, actorID, ActionUpdated)
	})
}

// ToggleStatus flips ticketID between open and close on behalf of
// actorID and appends one audit row, atomically.
//
// The toggle is strict: a stored status outside {open, close} is an
// invariant violation reported as ErrInvalidStatus, never silently
// coerced. Applying ToggleStatus twice returns the ticket to its
// original status.
func (s *TicketService) ToggleStatus(ctx context.Context, actorID, ticketID uint) (string, error) {
	if actorID == 0 {
		return "", ErrNoActor
	}

	var next string
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ticket, err := repo.GetTicket(ctx, tx, ticketID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrTicketNotFound
			}
			return err
		}

		switch ticket.Status {
		case domain.StatusOpen:
			next = domain.StatusClose
		case domain.StatusClose:
			next = domain.StatusOpen
		default:
			return ErrInvalidStatus
		}

		if err := repo.UpdateTicketFields(ctx, tx, ticket.ID, map[string]any{"status": next}); err != nil {
			return err
		}
		return s.Audit.Record(ctx, tx, ticket.ID, actorID, ActionUpdated)
	})
	if err != nil {
		return "", err
	}
	return next, nil
}

// Delete removes ticketID along with its category and label association
// rows. Deleting a nonexistent ID is an idempotent no-op. Audit rows for
// the ticket are retained as orphaned history. It returns whether a
// ticket row was actually removed.
func (s *TicketService) Delete(ctx context.Context, actorID, ticketID uint) (bool, error) {
	if actorID == 0 {
		return false, ErrNoActor
	}

	var removed bool
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := repo.DeleteTicket(ctx, tx, ticketID)
		if err != nil {
			return err
		}
		removed = n > 0
		return nil
	})
	return removed, err
}
