package domain

import (
	"fmt"
	"strings"
	"time"
)

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusResolved   TicketStatus = "RESOLVED"
	TicketStatusClosed     TicketStatus = "CLOSED"
)

// ParseTicketStatus resolves a case-insensitive status name.
func ParseTicketStatus(raw string) (TicketStatus, error) {
	switch TicketStatus(strings.ToUpper(strings.TrimSpace(raw))) {
	case TicketStatusOpen:
		return TicketStatusOpen, nil
	case TicketStatusInProgress:
		return TicketStatusInProgress, nil
	case TicketStatusResolved:
		return TicketStatusResolved, nil
	case TicketStatusClosed:
		return TicketStatusClosed, nil
	default:
		return "", fmt.Errorf("unknown ticket status %q", raw)
	}
}

// IsTerminal reports whether the status marks the ticket as finished.
func (s TicketStatus) IsTerminal() bool {
	return s == TicketStatusClosed || s == TicketStatusResolved
}

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "LOW"
	TicketPriorityMedium TicketPriority = "MEDIUM"
	TicketPriorityHigh   TicketPriority = "HIGH"
)

// ParseTicketPriority resolves a case-insensitive priority name.
func ParseTicketPriority(raw string) (TicketPriority, error) {
	switch TicketPriority(strings.ToUpper(strings.TrimSpace(raw))) {
	case TicketPriorityLow:
		return TicketPriorityLow, nil
	case TicketPriorityMedium:
		return TicketPriorityMedium, nil
	case TicketPriorityHigh:
		return TicketPriorityHigh, nil
	default:
		return "", fmt.Errorf("unknown ticket priority %q", raw)
	}
}

// Ticket is the aggregate for tracked work items.
//
// Code is unique and immutable after creation. ClosedAt is stamped when the
// status becomes terminal and is intentionally left untouched when the ticket
// moves back to a non-terminal status, matching the historical behavior of
// this system.
type Ticket struct {
	ID          int64
	Code        string
	Subject     string
	Description string
	Status      TicketStatus
	Priority    TicketPriority
	OwnerID     int64
	AssigneeID  *int64
	ClosedAt    *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
