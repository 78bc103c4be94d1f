// Package domain defines the persistence models for users, tickets,
// categories, labels, comments, attachments, and the ticket audit log.
// These types are mapped with GORM and form the core data layer of the
// helpdesk application.
package domain

import (
	"time"
)

// User roles. Role is the discriminator enabling role-gated behavior:
// only agent-role users are valid ticket assignees.
const (
	RoleAdmin    = "admin"
	RoleAgent    = "agent"
	RoleCustomer = "customer"
)

// Ticket priorities, ordered from least to most urgent.
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Ticket statuses. A ticket is a strict two-state machine: open or close.
const (
	StatusOpen  = "open"
	StatusClose = "close"
)

// ValidPriority reports whether p is a member of the priority enumeration.
// Callers that filter by priority treat anything else as "no filter".
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// ValidStatus reports whether s is a member of the status enumeration.
func ValidStatus(s string) bool {
	return s == StatusOpen || s == StatusClose
}

// User represents an account known to the helpdesk: administrators,
// support agents, and customers, discriminated by Role.
//
// Fields:
//   - ID: auto-increment primary key.
//   - Name / Email: identity; email is unique.
//   - Role: "admin", "agent", or "customer" (enforced by DB constraint).
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type User struct {
	ID        uint      `json:"id"         gorm:"primaryKey"`
	Name      string    `json:"name"       gorm:"type:varchar(255);not null"`
	Email     string    `json:"email"      gorm:"type:varchar(255);not null;uniqueIndex"`
	Role      string    `json:"role"       gorm:"type:varchar(16);not null;default:'customer';check:role IN ('admin','agent','customer')"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// IsAgent reports whether the user may be assigned tickets. This is the
// single capability check gating assignment; roles are never subclassed.
func (u *User) IsAgent() bool { return u.Role == RoleAgent }

// Ticket represents a support request. Tickets are created by an intake
// flow outside this core and are administered here: edited, prioritized,
// categorized, labeled, assigned to an agent, toggled open/close, and
// deleted.
//
// Fields:
//   - ID: auto-increment primary key.
//   - Title: short summary, minimum 5 characters (service-enforced).
//   - Description: full problem text, required.
//   - Priority: "low", "normal", "high", or "urgent"; defaults to normal.
//   - Status: "open" or "close"; defaults to open.
//   - UserID / User: the creator (customer); required.
//   - AssignedAgentID / AssignedAgent: optional; must reference an
//     agent-role user (service-enforced before persistence).
//   - Categories / Labels: many-to-many taxonomy, replaced wholesale on
//     each update rather than patched incrementally.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type Ticket struct {
	ID          uint   `json:"id"          gorm:"primaryKey"`
	Title       string `json:"title"       gorm:"type:varchar(255);not null"`
	Description string `json:"description" gorm:"type:text;not null"`
	Priority    string `json:"priority"    gorm:"type:varchar(16);not null;default:'normal';check:priority IN ('low','normal','high','urgent')"`
	Status      string `json:"status"      gorm:"type:varchar(16);not null;default:'open';index;check:status IN ('open','close')"`

	UserID uint `json:"user_id" gorm:"not null;index"`
	// User is the creator. Tickets are cascade-deleted with their owner.
	User User `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	AssignedAgentID *uint `json:"assigned_agent_id,omitempty" gorm:"index"`
	// AssignedAgent is the handling agent, when one has been assigned.
	AssignedAgent *User `json:"assigned_agent,omitempty" gorm:"foreignKey:AssignedAgentID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	Categories []Category `json:"categories,omitempty" gorm:"many2many:ticket_categories"`
	Labels     []Label    `json:"labels,omitempty"     gorm:"many2many:ticket_labels"`

	// Comments and Attachments are read-only in this core; they are
	// preloaded for the detail view only.
	Comments    []Comment    `json:"comments,omitempty"    gorm:"foreignKey:TicketID"`
	Attachments []Attachment `json:"attachments,omitempty" gorm:"foreignKey:TicketID"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Ticket.
func (Ticket) TableName() string { return "tickets" }

// Category is a display taxonomy bucket for tickets (billing, technical,
// account, ...). Category names are unique.
type Category struct {
	ID           uint      `json:"id"            gorm:"primaryKey"`
	CategoryName string    `json:"category_name" gorm:"type:varchar(255);not null;uniqueIndex"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Tickets []Ticket `json:"-" gorm:"many2many:ticket_categories"`
}

// TableName returns the database table name for Category.
func (Category) TableName() string { return "categories" }

// Label is a free-form tag attached to tickets.
type Label struct {
	ID        uint      `json:"id"         gorm:"primaryKey"`
	LabelName string    `json:"label_name" gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Tickets []Ticket `json:"-" gorm:"many2many:ticket_labels"`
}

// TableName returns the database table name for Label.
func (Label) TableName() string { return "labels" }

// TicketLog is an append-only audit trail entry: who performed a mutating
// action on which ticket, and when. Rows are never updated or deleted by
// application code, and deliberately carry no FK constraint on TicketID
// so they survive deletion of their ticket as orphaned audit history.
//
// One row is written per successful mutating operation (update, status
// toggle), not per individual field change.
type TicketLog struct {
	ID       uint `json:"id"        gorm:"primaryKey"`
	TicketID uint `json:"ticket_id" gorm:"not null;index"`
	UserID   uint `json:"user_id"   gorm:"not null;index"`
	// Action is a free-form verb, e.g. "updated".
	Action    string    `json:"action"     gorm:"type:varchar(100);not null"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for TicketLog.
func (TicketLog) TableName() string { return "ticket_logs" }

// Comment is a discussion entry on a ticket. Read-only within this core:
// comments arrive through the customer-facing flow and are displayed on
// the detail view, ordered by creation time ascending, with their author.
type Comment struct {
	ID       uint `json:"id"        gorm:"primaryKey"`
	TicketID uint `json:"ticket_id" gorm:"not null;index"`
	UserID   uint `json:"user_id"   gorm:"not null"`
	// User is the comment author, preloaded for display.
	User      User      `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Body      string    `json:"body"       gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`

	Ticket Ticket `json:"-" gorm:"foreignKey:TicketID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Comment.
func (Comment) TableName() string { return "comments" }

// Attachment is a file uploaded alongside a ticket. Read-only within
// this core; only listed on the detail view.
type Attachment struct {
	ID        uint      `json:"id"        gorm:"primaryKey"`
	TicketID  uint      `json:"ticket_id" gorm:"not null;index"`
	FileName  string    `json:"file_name" gorm:"type:varchar(255);not null"`
	FilePath  string    `json:"file_path" gorm:"type:varchar(512);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Ticket Ticket `json:"-" gorm:"foreignKey:TicketID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Attachment.
func (Attachment) TableName() string { return "attachments" }
