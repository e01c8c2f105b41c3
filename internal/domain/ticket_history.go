package domain

import "time"

// TicketHistory is an immutable audit record of a status or assignment
// transition. ActorID is optional because some callers perform transitions
// without identifying themselves.
type TicketHistory struct {
	ID             int64
	TicketID       int64
	ActorID        *int64
	FromStatus     *TicketStatus
	ToStatus       *TicketStatus
	FromAssigneeID *int64
	ToAssigneeID   *int64
	Note           string
	At             time.Time
}
