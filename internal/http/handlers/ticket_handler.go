// Ticket HTTP handlers.
//
// This file exposes the admin REST endpoints for the ticket workflow:
//   - GET    /admin/tickets            (filtered, paginated list)
//   - GET    /admin/tickets/{id}       (detail view)
//   - GET    /admin/tickets/{id}/edit  (edit view with form option sets)
//   - PUT    /admin/tickets/{id}       (full update + assignment)
//   - POST   /admin/tickets/{id}/status (open/close toggle)
//   - DELETE /admin/tickets/{id}       (idempotent delete)
//
// Handlers in this file are transport-thin: they parse input, delegate
// reads to the repo layer and mutations to the TicketService, and
// translate service errors into HTTP results.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tbourn/go-helpdesk-backend/internal/http/middleware"
	"github.com/tbourn/go-helpdesk-backend/internal/repo"
	"github.com/tbourn/go-helpdesk-backend/internal/services"
	"github.com/tbourn/go-helpdesk-backend/internal/utils"
)

// Handlers bundles the dependencies of all ticket endpoints.
type Handlers struct {
	db       *gorm.DB
	tickets  *services.TicketService
	pageSize int
}

// New constructs the handler set. pageSize controls list pagination and
// must be >= 1 (config guarantees this).
func New(db *gorm.DB, tickets *services.TicketService, pageSize int) *Handlers {
	return &Handlers{db: db, tickets: tickets, pageSize: pageSize}
}

// UpdateTicketRequest is the JSON payload for the full ticket update.
//
// Categories and Labels replace the ticket's association sets wholesale.
// AssignedAgentID is optional: omitted leaves the current assignment
// untouched; present, it must reference an agent-role user.
//
// Field rules are enforced by the service (not binding tags) so the
// response can carry the complete per-field message map at once.
type UpdateTicketRequest struct {
	Title           string `json:"title"       example:"Printer on fire"`
	Description     string `json:"description" example:"Smoke is coming out of the tray."`
	Priority        string `json:"priority"    example:"urgent"`
	Status          string `json:"status"      example:"open"`
	Categories      []uint `json:"categories"  example:"1,3"`
	Labels          []uint `json:"labels"      example:"2"`
	AssignedAgentID *uint  `json:"assigned_agent_id,omitempty" example:"7"`
}

// ToggleStatusResponse reports the status a toggle landed on.
type ToggleStatusResponse struct {
	ID     uint   `json:"id"`
	Status string `json:"status" example:"close"`
}

// ticketID parses the :id route parameter. It reports false after
// writing a 400 when the parameter is not a positive integer.
func ticketID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "ticket id must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

// actor returns the acting user resolved by middleware.ActorRequired.
// Routes are always registered behind that middleware, so a miss here
// means a wiring bug; it is still surfaced as 401 rather than a panic.
func actor(c *gin.Context) (uint, bool) {
	id, ok := middleware.ActorID(c)
	if !ok {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "no authenticated user for this request")
		return 0, false
	}
	return id, true
}

// ListTickets godoc
// @ID          listTickets
// @Summary     List support tickets
// @Description Returns a page of tickets filtered by category, priority, and status. Unrecognized priority/status values are ignored rather than rejected.
// @Tags        Tickets
// @Produce     json
//
// @Param       X-User-ID  header  string false "Acting staff user id" example(1)
// @Param       category   query   int    false "Category id"
// @Param       priority   query   string false "low | normal | high | urgent"
// @Param       status     query   string false "open | close"
// @Param       page       query   int    false "Page number (1-based)" default(1)
//
// @Success     200 {object} handlers.ListTicketsResponse
// @Failure     401 {object} handlers.ErrorResponse "No authenticated user"
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /admin/tickets [get]
func (h *Handlers) ListTickets(c *gin.Context) {
	ctx := c.Request.Context()

	selCategory := c.Query("category")
	selPriority := c.Query("priority")
	selStatus := c.Query("status")

	f := repo.TicketFilter{Priority: selPriority, Status: selStatus}
	if selCategory != "" {
		if id, err := strconv.ParseUint(selCategory, 10, 64); err == nil && id > 0 {
			cid := uint(id)
			f.CategoryID = &cid
		}
	}

	p := utils.AtoiDefault(c.Query("page"), 1)
	if p < 1 {
		p = 1
	}

	total, err := repo.CountTickets(ctx, h.db, f)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "could not count tickets")
		return
	}
	tickets, err := repo.ListTicketsPage(ctx, h.db, f, (p-1)*h.pageSize, h.pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "could not list tickets")
		return
	}
	categories, err := repo.ListCategories(ctx, h.db)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "could not list categories")
		return
	}

	rows := make([]TicketVM, len(tickets))
	for i := range tickets {
		rows[i] = ticketVM(&tickets[i], false)
	}
	totalPages := int((total + int64(h.pageSize) - 1) / int64(h.pageSize))

	ok(c, http.StatusOK, ListTicketsResponse{
		Tickets: rows,
		Pagination: PageVM{
			Page:       p,
			PageSize:   h.pageSize,
			Total:      total,
			TotalPages: totalPages,
		},
		Categories:       categoryVMs(categories),
		SelectedCategory: selCategory,
		SelectedPriority: selPriority,
		SelectedStatus:   selStatus,
	})
}

// GetTicketDetail godoc
// @ID          getTicketDetail
// @Summary     Ticket detail
// @Description Returns one ticket with categories, labels, assigned agent, attachments, comments (oldest first, with authors), and its audit trail.
// @Tags        Tickets
// @Produce     json
//
// @Param       X-User-ID  header  string false "Acting staff user id" example(1)
// @Param       id         path    int    true  "Ticket id"
//
// @Success     200 {object} handlers.TicketDetailResponse
// @Failure     400 {object} handlers.ErrorResponse "Malformed id"
// @Failure     404 {object} handlers.ErrorResponse "Ticket not found"
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /admin/tickets/{id} [get]
func (h *Handlers) GetTicketDetail(c *gin.Context) {
	id, okID := ticketID(c)
	if !okID {
		return
	}
	ctx := c.Request.Context()

	t, err := repo.GetTicketDetail(ctx, h.db, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "ticket not found")
		} else {
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	logs, err := repo.ListTicketLogs(ctx, h.db, id)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}

	ok(c, http.StatusOK, TicketDetailResponse{
		Ticket:      ticketVM(t, true),
		Comments:    commentVMs(t.Comments),
		Attachments: attachmentVMs(t.Attachments),
		AuditTrail:  ticketLogVMs(logs),
	})
}

// GetTicketForEdit godoc
// @ID          getTicketForEdit
// @Summary     Ticket edit view
// @Description Returns one ticket with its owner and current associations, plus the full category, label, and agent sets backing the edit form selects.
// @Tags        Tickets
// @Produce     json
//
// @Param       X-User-ID  header  string false "Acting staff user id" example(1)
// @Param       id         path    int    true  "Ticket id"
//
// @Success     200 {object} handlers.TicketEditResponse
// @Failure     400 {object} handlers.ErrorResponse "Malformed id"
// @Failure     404 {object} handlers.ErrorResponse "Ticket not found"
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /admin/tickets/{id}/edit [get]
func (h *Handlers) GetTicketForEdit(c *gin.Context) {
	id, okID := ticketID(c)
	if !okID {
		return
	}
	ctx := c.Request.Context()

	t, err := repo.GetTicketForEdit(ctx, h.db, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "ticket not found")
		} else {
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}

	categories, err := repo.ListCategories(ctx, h.db)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	labels, err := repo.ListLabels(ctx, h.db)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	agents, err := repo.ListAgents(ctx, h.db)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	agentVMs := make([]UserVM, 0, len(agents))
	for i := range agents {
		if vm := userVM(&agents[i]); vm != nil {
			agentVMs = append(agentVMs, *vm)
		}
	}

	ok(c, http.StatusOK, TicketEditResponse{
		Ticket:     ticketVM(t, true),
		Categories: categoryVMs(categories),
		Labels:     labelVMs(labels),
		Agents:     agentVMs,
	})
}

// UpdateTicket godoc
// @ID          updateTicket
// @Summary     Update a ticket
// @Description Applies a full edit: fields, wholesale category/label replacement, and optional agent assignment, with one audit trail entry. Assigning a non-agent user is rejected and leaves the ticket untouched.
// @Tags        Tickets
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string true "Acting staff user id" example(1)
// @Param       id         path    int    true "Ticket id"
// @Param       body       body    handlers.UpdateTicketRequest true "Ticket fields"
//
// @Success     204 {string} string "No Content"
// @Failure     400 {object} handlers.ErrorResponse "Malformed id or payload"
// @Failure     401 {object} handlers.ErrorResponse "No authenticated user"
// @Failure     404 {object} handlers.ErrorResponse "Ticket not found"
// @Failure     409 {object} handlers.ErrorResponse "Assignee is not an agent"
// @Failure     422 {object} handlers.ErrorResponse "Field validation failed"
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /admin/tickets/{id} [put]
func (h *Handlers) UpdateTicket(c *gin.Context) {
	id, okID := ticketID(c)
	if !okID {
		return
	}
	uid, okActor := actor(c)
	if !okActor {
		return
	}

	var req UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "request body must be valid JSON")
		return
	}

	err := h.tickets.Update(c.Request.Context(), uid, id, services.UpdateTicketInput{
		Title:           req.Title,
		Description:     req.Description,
		Priority:        req.Priority,
		Status:          req.Status,
		CategoryIDs:     req.Categories,
		LabelIDs:        req.Labels,
		AssignedAgentID: req.AssignedAgentID,
	})
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			failValidation(c, verr.Fields)
		case errors.Is(err, services.ErrNotAnAgent):
			fail(c, http.StatusConflict, ErrCodeNotAnAgent, "assigned user does not have the agent role")
		case errors.Is(err, services.ErrTicketNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "ticket not found")
		case errors.Is(err, services.ErrNoActor):
			fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "no authenticated user for this request")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}

	noContent(c)
}

// ToggleTicketStatus godoc
// @ID          toggleTicketStatus
// @Summary     Toggle ticket status
// @Description Flips the ticket between open and close and appends one audit trail entry.
// @Tags        Tickets
// @Produce     json
//
// @Param       X-User-ID  header  string true "Acting staff user id" example(1)
// @Param       id         path    int    true "Ticket id"
//
// @Success     200 {object} handlers.ToggleStatusResponse
// @Failure     400 {object} handlers.ErrorResponse "Malformed id"
// @Failure     401 {object} handlers.ErrorResponse "No authenticated user"
// @Failure     404 {object} handlers.ErrorResponse "Ticket not found"
// @Failure     500 {object} handlers.ErrorResponse "Stored status outside open/close"
// @Router      /admin/tickets/{id}/status [post]
func (h *Handlers) ToggleTicketStatus(c *gin.Context) {
	id, okID := ticketID(c)
	if !okID {
		return
	}
	uid, okActor := actor(c)
	if !okActor {
		return
	}

	status, err := h.tickets.ToggleStatus(c.Request.Context(), uid, id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTicketNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "ticket not found")
		case errors.Is(err, services.ErrInvalidStatus):
			fail(c, http.StatusInternalServerError, ErrCodeInvariant, "ticket status is neither open nor close")
		case errors.Is(err, services.ErrNoActor):
			fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "no authenticated user for this request")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}

	ok(c, http.StatusOK, ToggleStatusResponse{ID: id, Status: status})
}

// DeleteTicket godoc
// @ID          deleteTicket
// @Summary     Delete a ticket
// @Description Removes the ticket and its category/label associations. Deleting an unknown id is a no-op. Audit trail rows are retained.
// @Tags        Tickets
// @Produce     json
//
// @Param       X-User-ID  header  string true "Acting staff user id" example(1)
// @Param       id         path    int    true "Ticket id"
//
// @Success     204 {string} string "No Content"
// @Failure     400 {object} handlers.ErrorResponse "Malformed id"
// @Failure     401 {object} handlers.ErrorResponse "No authenticated user"
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /admin/tickets/{id} [delete]
func (h *Handlers) DeleteTicket(c *gin.Context) {
	id, okID := ticketID(c)
	if !okID {
		return
	}
	uid, okActor := actor(c)
	if !okActor {
		return
	}

	if _, err := h.tickets.Delete(c.Request.Context(), uid, id); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}

	noContent(c)
}
