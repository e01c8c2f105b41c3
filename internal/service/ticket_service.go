package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

const ticketCodePrefix = "TKT"

// TicketService coordinates ticket lifecycle workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	users      repository.UserRepository
	history    repository.TicketHistoryRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// TicketDependencies bundles repositories for the ticket service.
type TicketDependencies struct {
	TicketRepo  repository.TicketRepository
	UserRepo    repository.UserRepository
	HistoryRepo repository.TicketHistoryRepository
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Subject     string
	Description string
	Priority    string
	OwnerID     int64
	AssigneeID  *int64
}

// TicketUpdateInput is a patch: nil fields are left untouched. Status and
// Priority are parsed case-insensitively from their enum names. ActorID, when
// known, is recorded on the resulting history entry.
type TicketUpdateInput struct {
	Subject     *string
	Description *string
	Status      *string
	Priority    *string
	AssigneeID  *int64
	ActorID     *int64
}

// TicketView pairs a ticket with its resolved owner and assignee.
type TicketView struct {
	Ticket   domain.Ticket
	Owner    *domain.User
	Assignee *domain.User
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		users:      deps.UserRepo,
		history:    deps.HistoryRepo,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// Create opens a new ticket. The owner must exist, an optional assignee must
// exist, the status is fixed to OPEN, and an unparseable priority silently
// falls back to MEDIUM (creation is deliberately lenient here; update is not).
func (s *TicketService) Create(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	if _, err := s.users.GetByID(ctx, input.OwnerID); err != nil {
		return nil, notFoundIfNoRows(err, "owner")
	}
	if input.AssigneeID != nil {
		if _, err := s.users.GetByID(ctx, *input.AssigneeID); err != nil {
			return nil, notFoundIfNoRows(err, "assignee")
		}
	}

	priority := domain.TicketPriorityMedium
	if parsed, err := domain.ParseTicketPriority(input.Priority); err == nil {
		priority = parsed
	}

	ticket := &domain.Ticket{
		Code:        generateTicketCode(),
		Subject:     input.Subject,
		Description: input.Description,
		Status:      domain.TicketStatusOpen,
		Priority:    priority,
		OwnerID:     input.OwnerID,
		AssigneeID:  input.AssigneeID,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewAlreadyExists("ticket code already exists", map[string]any{"code": ticket.Code})
		}
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			Code:     ticket.Code,
			OwnerID:  ticket.OwnerID,
			Priority: ticket.Priority,
			Subject:  ticket.Subject,
		},
	})
	return ticket, nil
}

// GetByID fetches a ticket.
func (s *TicketService) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundIfNoRows(err, "ticket")
	}
	return ticket, nil
}

// GetByCode fetches a ticket by its unique code.
func (s *TicketService) GetByCode(ctx context.Context, code string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByCode(ctx, code)
	if err != nil {
		return nil, notFoundIfNoRows(err, "ticket")
	}
	return ticket, nil
}

// List returns a sortable page of all tickets, newest first by default.
func (s *TicketService) List(ctx context.Context, page repository.PageRequest) (repository.Page[domain.Ticket], error) {
	return s.tickets.ListWithFilter(ctx, repository.TicketFilter{}, page)
}

// ListByOwner returns the owner's tickets, newest first.
func (s *TicketService) ListByOwner(ctx context.Context, ownerID int64, page repository.PageRequest) (repository.Page[domain.Ticket], error) {
	return s.tickets.ListWithFilter(ctx, repository.TicketFilter{OwnerID: &ownerID}, page)
}

// ListByAssignee returns the assignee's tickets, newest first.
func (s *TicketService) ListByAssignee(ctx context.Context, assigneeID int64, page repository.PageRequest) (repository.Page[domain.Ticket], error) {
	return s.tickets.ListWithFilter(ctx, repository.TicketFilter{AssigneeID: &assigneeID}, page)
}

// ListByStatus returns tickets in the given status, newest first.
func (s *TicketService) ListByStatus(ctx context.Context, status domain.TicketStatus, page repository.PageRequest) (repository.Page[domain.Ticket], error) {
	return s.tickets.ListWithFilter(ctx, repository.TicketFilter{Status: &status}, page)
}

// ListByPriority returns tickets with the given priority, newest first.
func (s *TicketService) ListByPriority(ctx context.Context, priority domain.TicketPriority, page repository.PageRequest) (repository.Page[domain.Ticket], error) {
	return s.tickets.ListWithFilter(ctx, repository.TicketFilter{Priority: &priority}, page)
}

// Filter combines optional status/priority/owner/assignee criteria; nil
// fields do not constrain the result.
func (s *TicketService) Filter(ctx context.Context, filter repository.TicketFilter, page repository.PageRequest) (repository.Page[domain.Ticket], error) {
	return s.tickets.ListWithFilter(ctx, filter, page)
}

// Search matches the term as a substring of subject, description, or code.
func (s *TicketService) Search(ctx context.Context, term string, page repository.PageRequest) (repository.Page[domain.Ticket], error) {
	return s.tickets.Search(ctx, term, page)
}

// Update applies the patch. Status changes are applied without a transition
// legality check; any status may follow any other. Moving into CLOSED or
// RESOLVED stamps closedAt; moving back out does not clear it.
func (s *TicketService) Update(ctx context.Context, id int64, input TicketUpdateInput) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundIfNoRows(err, "ticket")
	}

	oldStatus := ticket.Status
	oldAssignee := ticket.AssigneeID

	if input.Subject != nil {
		ticket.Subject = *input.Subject
	}
	if input.Description != nil {
		ticket.Description = *input.Description
	}
	if input.Status != nil {
		status, err := domain.ParseTicketStatus(*input.Status)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": *input.Status})
		}
		s.applyStatus(ticket, status)
	}
	if input.Priority != nil {
		priority, err := domain.ParseTicketPriority(*input.Priority)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": *input.Priority})
		}
		ticket.Priority = priority
	}
	if input.AssigneeID != nil {
		if _, err := s.users.GetByID(ctx, *input.AssigneeID); err != nil {
			return nil, notFoundIfNoRows(err, "assignee")
		}
		ticket.AssigneeID = input.AssigneeID
	}

	history := transitionEntry(ticket, input.ActorID, oldStatus, oldAssignee, "updated")
	if err := s.tickets.Update(ctx, ticket, history); err != nil {
		return nil, notFoundIfNoRows(err, "ticket")
	}

	s.publishTransitions(ctx, ticket, oldStatus, oldAssignee)
	return ticket, nil
}

// Delete removes the ticket; comments and history entries cascade with it.
func (s *TicketService) Delete(ctx context.Context, id int64) error {
	if err := s.tickets.Delete(ctx, id); err != nil {
		return notFoundIfNoRows(err, "ticket")
	}
	return nil
}

// Assign sets the assignee unconditionally and records a history entry.
func (s *TicketService) Assign(ctx context.Context, id, assigneeID int64, actorID *int64) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundIfNoRows(err, "ticket")
	}
	if _, err := s.users.GetByID(ctx, assigneeID); err != nil {
		return nil, notFoundIfNoRows(err, "assignee")
	}

	oldAssignee := ticket.AssigneeID
	ticket.AssigneeID = &assigneeID

	history := transitionEntry(ticket, actorID, ticket.Status, oldAssignee, "assigned")
	if err := s.tickets.Update(ctx, ticket, history); err != nil {
		return nil, notFoundIfNoRows(err, "ticket")
	}

	s.publishTransitions(ctx, ticket, ticket.Status, oldAssignee)
	return ticket, nil
}

// ChangeStatus applies the status unconditionally, stamping closedAt on
// terminal transitions, and records a history entry.
func (s *TicketService) ChangeStatus(ctx context.Context, id int64, status domain.TicketStatus, actorID *int64) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundIfNoRows(err, "ticket")
	}

	oldStatus := ticket.Status
	s.applyStatus(ticket, status)

	history := transitionEntry(ticket, actorID, oldStatus, ticket.AssigneeID, "status_changed")
	if err := s.tickets.Update(ctx, ticket, history); err != nil {
		return nil, notFoundIfNoRows(err, "ticket")
	}

	s.publishTransitions(ctx, ticket, oldStatus, ticket.AssigneeID)
	return ticket, nil
}

// History returns the ticket's audit trail, oldest first.
func (s *TicketService) History(ctx context.Context, ticketID int64) ([]domain.TicketHistory, error) {
	if _, err := s.tickets.GetByID(ctx, ticketID); err != nil {
		return nil, notFoundIfNoRows(err, "ticket")
	}
	return s.history.ListByTicket(ctx, ticketID)
}

// WithUsers resolves owner and assignee records for a batch of tickets.
func (s *TicketService) WithUsers(ctx context.Context, tickets []domain.Ticket) ([]TicketView, error) {
	cache := map[int64]*domain.User{}
	lookup := func(id int64) (*domain.User, error) {
		if user, ok := cache[id]; ok {
			return user, nil
		}
		user, err := s.users.GetByID(ctx, id)
		if err != nil {
			return nil, notFoundIfNoRows(err, "user")
		}
		cache[id] = user
		return user, nil
	}

	views := make([]TicketView, 0, len(tickets))
	for _, ticket := range tickets {
		view := TicketView{Ticket: ticket}
		owner, err := lookup(ticket.OwnerID)
		if err != nil {
			return nil, err
		}
		view.Owner = owner
		if ticket.AssigneeID != nil {
			assignee, err := lookup(*ticket.AssigneeID)
			if err != nil {
				return nil, err
			}
			view.Assignee = assignee
		}
		views = append(views, view)
	}
	return views, nil
}

// applyStatus sets the status and stamps closedAt on terminal transitions.
// closedAt is never cleared when a ticket reopens; that matches the
// historical behavior of this system.
func (s *TicketService) applyStatus(ticket *domain.Ticket, status domain.TicketStatus) {
	ticket.Status = status
	if status.IsTerminal() {
		now := time.Now()
		ticket.ClosedAt = &now
	}
}

// transitionEntry builds a history record when status or assignee actually
// changed; it returns nil otherwise so no entry is written.
func transitionEntry(ticket *domain.Ticket, actorID *int64, oldStatus domain.TicketStatus, oldAssignee *int64, note string) *domain.TicketHistory {
	statusChanged := ticket.Status != oldStatus
	assigneeChanged := !sameAssignee(ticket.AssigneeID, oldAssignee)
	if !statusChanged && !assigneeChanged {
		return nil
	}

	entry := &domain.TicketHistory{
		TicketID: ticket.ID,
		ActorID:  actorID,
		Note:     note,
	}
	if statusChanged {
		from, to := oldStatus, ticket.Status
		entry.FromStatus = &from
		entry.ToStatus = &to
	}
	if assigneeChanged {
		entry.FromAssigneeID = oldAssignee
		entry.ToAssigneeID = ticket.AssigneeID
	}
	return entry
}

func sameAssignee(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (s *TicketService) publishTransitions(ctx context.Context, ticket *domain.Ticket, oldStatus domain.TicketStatus, oldAssignee *int64) {
	if ticket.Status != oldStatus {
		s.publish(ctx, events.Event{
			Type:     events.EventTicketStatusChanged,
			TicketID: ticket.ID,
			Payload: events.TicketStatusChangedPayload{
				OldStatus: oldStatus,
				NewStatus: ticket.Status,
			},
		})
	}
	if !sameAssignee(ticket.AssigneeID, oldAssignee) && ticket.AssigneeID != nil {
		s.publish(ctx, events.Event{
			Type:     events.EventTicketAssigned,
			TicketID: ticket.ID,
			Payload: events.TicketAssignedPayload{
				OldAssigneeID: oldAssignee,
				NewAssigneeID: *ticket.AssigneeID,
			},
		})
	}
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	publishEvent(ctx, s.dispatcher, event)
}

// generateTicketCode concatenates a fixed prefix with the last 8 digits of the
// current millisecond timestamp. Two creations inside the same suffix window
// can collide; the unique index on tickets.code rejects the second insert.
func generateTicketCode() string {
	millis := strconv.FormatInt(time.Now().UnixMilli(), 10)
	return ticketCodePrefix + millis[len(millis)-8:]
}

func publishEvent(ctx context.Context, dispatcher events.Dispatcher, event events.Event) {
	if dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = dispatcher.Publish(ctx, event)
}

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
