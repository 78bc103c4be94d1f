// Package handlers – view-models.
//
// This file is the presentation adapter between the ticket core and the
// admin UI: it maps domain entities to the JSON shapes the list, detail,
// and edit screens render. View-models are deliberately flat and carry
// pre-formatted display labels so the UI never re-derives them.
package handlers

import (
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tbourn/go-helpdesk-backend/internal/domain"
)

// titleCaser renders enum values as display labels ("high" -> "High").
var titleCaser = cases.Title(language.English)

// UserVM identifies a user on a view.
type UserVM struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// CategoryVM is a taxonomy entry on a view (list filter dropdown, edit
// form select, or a ticket's own category chips).
type CategoryVM struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// LabelVM is a label entry on a view.
type LabelVM struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// TicketVM is one ticket as rendered on the list and detail screens.
// PriorityLabel and StatusLabel are display-cased variants of the raw
// enum values.
type TicketVM struct {
	ID            uint         `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description,omitempty"`
	Priority      string       `json:"priority"       example:"high"`
	PriorityLabel string       `json:"priority_label" example:"High"`
	Status        string       `json:"status"         example:"open"`
	StatusLabel   string       `json:"status_label"   example:"Open"`
	Owner         *UserVM      `json:"owner,omitempty"`
	AssignedAgent *UserVM      `json:"assigned_agent,omitempty"`
	Categories    []CategoryVM `json:"categories"`
	Labels        []LabelVM    `json:"labels"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// CommentVM is a discussion entry on the detail screen, oldest first.
type CommentVM struct {
	ID        uint      `json:"id"`
	Author    UserVM    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// AttachmentVM is an uploaded file on the detail screen.
type AttachmentVM struct {
	ID       uint   `json:"id"`
	FileName string `json:"file_name"`
	FilePath string `json:"file_path"`
}

// TicketLogVM is one audit trail row on the detail screen.
type TicketLogVM struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"created_at"`
}

// PageVM carries offset-pagination metadata for the list screen.
type PageVM struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// ListTicketsResponse is the list screen: the filtered ticket page, the
// category set for the filter dropdown, and the echoed filter selection.
type ListTicketsResponse struct {
	Tickets    []TicketVM   `json:"tickets"`
	Pagination PageVM       `json:"pagination"`
	Categories []CategoryVM `json:"categories"`

	SelectedCategory string `json:"selected_category,omitempty"`
	SelectedPriority string `json:"selected_priority,omitempty"`
	SelectedStatus   string `json:"selected_status,omitempty"`
}

// TicketDetailResponse is the detail screen: the ticket with its
// discussion, attachments, and audit trail.
type TicketDetailResponse struct {
	Ticket      TicketVM       `json:"ticket"`
	Comments    []CommentVM    `json:"comments"`
	Attachments []AttachmentVM `json:"attachments"`
	AuditTrail  []TicketLogVM  `json:"audit_trail"`
}

// TicketEditResponse is the edit screen: the ticket plus the full
// category, label, and agent sets backing the form selects.
type TicketEditResponse struct {
	Ticket     TicketVM     `json:"ticket"`
	Categories []CategoryVM `json:"categories"`
	Labels     []LabelVM    `json:"labels"`
	Agents     []UserVM     `json:"agents"`
}

func userVM(u *domain.User) *UserVM {
	if u == nil || u.ID == 0 {
		return nil
	}
	return &UserVM{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func categoryVMs(cats []domain.Category) []CategoryVM {
	out := make([]CategoryVM, len(cats))
	for i, c := range cats {
		out[i] = CategoryVM{ID: c.ID, Name: c.CategoryName}
	}
	return out
}

func labelVMs(labels []domain.Label) []LabelVM {
	out := make([]LabelVM, len(labels))
	for i, l := range labels {
		out[i] = LabelVM{ID: l.ID, Name: l.LabelName}
	}
	return out
}

// ticketVM maps a ticket to its view-model. Owner is only populated when
// the association was preloaded (edit view); includeDescription is false
// on the list screen to keep row payloads small.
func ticketVM(t *domain.Ticket, includeDescription bool) TicketVM {
	vm := TicketVM{
		ID:            t.ID,
		Title:         t.Title,
		Priority:      t.Priority,
		PriorityLabel: titleCaser.String(t.Priority),
		Status:        t.Status,
		StatusLabel:   titleCaser.String(t.Status),
		Owner:         userVM(&t.User),
		AssignedAgent: userVM(t.AssignedAgent),
		Categories:    categoryVMs(t.Categories),
		Labels:        labelVMs(t.Labels),
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
	if includeDescription {
		vm.Description = t.Description
	}
	return vm
}

func commentVMs(comments []domain.Comment) []CommentVM {
	out := make([]CommentVM, len(comments))
	for i, cm := range comments {
		author := UserVM{ID: cm.UserID}
		if u := userVM(&cm.User); u != nil {
			author = *u
		}
		out[i] = CommentVM{
			ID:        cm.ID,
			Author:    author,
			Body:      cm.Body,
			CreatedAt: cm.CreatedAt,
		}
	}
	return out
}

func attachmentVMs(atts []domain.Attachment) []AttachmentVM {
	out := make([]AttachmentVM, len(atts))
	for i, a := range atts {
		out[i] = AttachmentVM{ID: a.ID, FileName: a.FileName, FilePath: a.FilePath}
	}
	return out
}

func ticketLogVMs(logs []domain.TicketLog) []TicketLogVM {
	out := make([]TicketLogVM, len(logs))
	for i, lg := range logs {
		out[i] = TicketLogVM{ID: lg.ID, UserID: lg.UserID, Action: lg.Action, CreatedAt: lg.CreatedAt}
	}
	return out
}
