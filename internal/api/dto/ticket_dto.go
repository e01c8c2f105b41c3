package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/service"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Subject     string `json:"subject"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	AssigneeID  *int64 `json:"assignee_id"`
}

// Validate enforces boundary constraints; an empty result means valid.
func (r CreateTicketRequest) Validate() map[string]any {
	details := map[string]any{}
	checkSubject(details, r.Subject)
	checkDescription(details, r.Description)
	return details
}

// UpdateTicketRequest is a patch payload; absent fields are left untouched.
type UpdateTicketRequest struct {
	Subject     *string `json:"subject"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	AssigneeID  *int64  `json:"assignee_id"`
}

// Validate enforces boundary constraints on present fields only.
func (r UpdateTicketRequest) Validate() map[string]any {
	details := map[string]any{}
	if r.Subject != nil {
		checkSubject(details, *r.Subject)
	}
	if r.Description != nil {
		checkDescription(details, *r.Description)
	}
	return details
}

// TicketResponse response shape with resolved owner/assignee.
type TicketResponse struct {
	ID          int64        `json:"id"`
	Code        string       `json:"code"`
	Subject     string       `json:"subject"`
	Description string       `json:"description"`
	Status      string       `json:"status"`
	Priority    string       `json:"priority"`
	Owner       *UserSummary `json:"owner"`
	Assignee    *UserSummary `json:"assignee"`
	ClosedAt    *time.Time   `json:"closed_at"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// NewTicketResponse maps a ticket view.
func NewTicketResponse(view service.TicketView) TicketResponse {
	ticket := view.Ticket
	return TicketResponse{
		ID:          ticket.ID,
		Code:        ticket.Code,
		Subject:     ticket.Subject,
		Description: ticket.Description,
		Status:      string(ticket.Status),
		Priority:    string(ticket.Priority),
		Owner:       NewUserSummary(view.Owner),
		Assignee:    NewUserSummary(view.Assignee),
		ClosedAt:    ticket.ClosedAt,
		CreatedAt:   ticket.CreatedAt,
		UpdatedAt:   ticket.UpdatedAt,
	}
}

// TicketHistoryResponse response shape for audit entries.
type TicketHistoryResponse struct {
	ID             int64     `json:"id"`
	TicketID       int64     `json:"ticket_id"`
	ActorID        *int64    `json:"actor_id"`
	FromStatus     *string   `json:"from_status"`
	ToStatus       *string   `json:"to_status"`
	FromAssigneeID *int64    `json:"from_assignee_id"`
	ToAssigneeID   *int64    `json:"to_assignee_id"`
	Note           string    `json:"note"`
	At             time.Time `json:"at"`
}

// NewTicketHistoryResponse maps a history entry.
func NewTicketHistoryResponse(entry domain.TicketHistory) TicketHistoryResponse {
	resp := TicketHistoryResponse{
		ID:             entry.ID,
		TicketID:       entry.TicketID,
		ActorID:        entry.ActorID,
		FromAssigneeID: entry.FromAssigneeID,
		ToAssigneeID:   entry.ToAssigneeID,
		Note:           entry.Note,
		At:             entry.At,
	}
	if entry.FromStatus != nil {
		from := string(*entry.FromStatus)
		resp.FromStatus = &from
	}
	if entry.ToStatus != nil {
		to := string(*entry.ToStatus)
		resp.ToStatus = &to
	}
	return resp
}

// PageResponse is the envelope for paginated listings.
type PageResponse[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"total_count"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalPages int64 `json:"total_pages"`
}

// NewPageResponse maps a repository page through the given item mapper.
func NewPageResponse[S, T any](page repository.Page[S], mapItem func(S) T) PageResponse[T] {
	items := make([]T, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, mapItem(item))
	}
	return PageResponse[T]{
		Items:      items,
		TotalCount: page.TotalCount,
		Page:       page.Page,
		Size:       page.Size,
		TotalPages: page.TotalPages(),
	}
}
