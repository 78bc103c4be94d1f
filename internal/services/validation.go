// Package services – update input validation.
//
// Validation runs before any persistence side effect and reports problems
// per field, so the edit form can attach each message to the offending
// input. Field keys match the JSON names of UpdateTicketInput.
package services

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/tbourn/go-helpdesk-backend/internal/domain"
)

// MinTitleLen is the minimum ticket title length in runes. The bound is
// inclusive: a 5-rune title is valid.
const MinTitleLen = 5

// ValidationError reports malformed or missing update fields. Fields maps
// a field name to a human-readable message. It is a distinct error type
// (rather than a sentinel) so handlers can unpack the field map with
// errors.As and render it per input.
type ValidationError struct {
	Fields map[string]string
}

// Error returns the field messages joined in field-name order, so the
// string form is deterministic in logs and tests.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	names := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, k := range names {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// UpdateTicketInput carries the full editable field set of a ticket.
// Category and label IDs replace the existing association sets wholesale.
//
// AssignedAgentID is a three-state optional: nil leaves the current
// assignment untouched; a non-nil value assigns that user (who must hold
// the agent role). Explicit unassignment is intentionally not expressible,
// preserving the conditional-field behavior of the original admin form.
type UpdateTicketInput struct {
	Title           string
	Description     string
	Priority        string
	Status          string
	CategoryIDs     []uint
	LabelIDs        []uint
	AssignedAgentID *uint
}

// validate checks in against the field rules and returns a
// *ValidationError carrying every violation, or nil when in is clean.
func (in *UpdateTicketInput) validate() *ValidationError {
	fields := map[string]string{}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		fields["title"] = "title is required"
	} else if utf8.RuneCountInString(title) < MinTitleLen {
		fields["title"] = fmt.Sprintf("title must be at least %d characters", MinTitleLen)
	}

	if strings.TrimSpace(in.Description) == "" {
		fields["description"] = "description is required"
	}
	if len(in.CategoryIDs) == 0 {
		fields["categories"] = "at least one category is required"
	}
	if len(in.LabelIDs) == 0 {
		fields["labels"] = "at least one label is required"
	}
	if !domain.ValidPriority(in.Priority) {
		fields["priority"] = "priority must be one of: low, normal, high, urgent"
	}
	if !domain.ValidStatus(in.Status) {
		fields["status"] = "status must be open or close"
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
