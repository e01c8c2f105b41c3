package events

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketAssigned      EventType = "ticket_assigned"
	EventCommentAdded        EventType = "comment_added"
	EventUserRegistered      EventType = "user_registered"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  int64       `json:"ticket_id,omitempty"`
	ActorID   *int64      `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Code     string                `json:"code"`
	OwnerID  int64                 `json:"owner_id"`
	Priority domain.TicketPriority `json:"priority"`
	Subject  string                `json:"subject"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	OldAssigneeID *int64 `json:"old_assignee_id,omitempty"`
	NewAssigneeID int64  `json:"new_assignee_id"`
}

// CommentAddedPayload payload.
type CommentAddedPayload struct {
	CommentID   int64  `json:"comment_id"`
	AuthorID    int64  `json:"author_id"`
	BodyPreview string `json:"body_preview"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}
