package domain

import "time"

// Comment is a discussion entry attached to a ticket.
type Comment struct {
	ID        int64
	TicketID  int64
	AuthorID  int64
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
