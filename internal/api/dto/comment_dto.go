package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	Body     string `json:"body"`
	TicketID int64  `json:"ticket_id"`
}

// Validate enforces boundary constraints; an empty result means valid.
func (r CreateCommentRequest) Validate() map[string]any {
	details := map[string]any{}
	checkBody(details, r.Body)
	if r.TicketID == 0 {
		details["ticket_id"] = "ticket id is required"
	}
	return details
}

// UpdateCommentRequest payload.
type UpdateCommentRequest struct {
	Body string `json:"body"`
}

// Validate enforces boundary constraints; an empty result means valid.
func (r UpdateCommentRequest) Validate() map[string]any {
	details := map[string]any{}
	checkBody(details, r.Body)
	return details
}

// CommentResponse response shape.
type CommentResponse struct {
	ID        int64     `json:"id"`
	TicketID  int64     `json:"ticket_id"`
	AuthorID  int64     `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCommentResponse maps a domain comment.
func NewCommentResponse(comment *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		TicketID:  comment.TicketID,
		AuthorID:  comment.AuthorID,
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}
