package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/persistence"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

const commentCountTTL = 60 * time.Second

// CommentService coordinates comment workflows. Only the author of a comment
// may mutate or delete it.
type CommentService struct {
	comments   repository.CommentRepository
	tickets    repository.TicketRepository
	users      repository.UserRepository
	cache      *persistence.Redis
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// CommentDependencies bundles requirements for the comment service.
type CommentDependencies struct {
	CommentRepo repository.CommentRepository
	TicketRepo  repository.TicketRepository
	UserRepo    repository.UserRepository
	Cache       *persistence.Redis
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewCommentService constructs the service.
func NewCommentService(deps CommentDependencies) *CommentService {
	return &CommentService{
		comments:   deps.CommentRepo,
		tickets:    deps.TicketRepo,
		users:      deps.UserRepo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// Create appends a comment to a ticket. Ticket and author must both exist.
func (s *CommentService) Create(ctx context.Context, ticketID, authorID int64, body string) (*domain.Comment, error) {
	if _, err := s.tickets.GetByID(ctx, ticketID); err != nil {
		return nil, notFoundIfNoRows(err, "ticket")
	}
	if _, err := s.users.GetByID(ctx, authorID); err != nil {
		return nil, notFoundIfNoRows(err, "author")
	}

	comment := &domain.Comment{
		TicketID: ticketID,
		AuthorID: authorID,
		Body:     body,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	s.invalidateCount(ctx, ticketID)

	s.publish(ctx, events.Event{
		Type:     events.EventCommentAdded,
		TicketID: ticketID,
		ActorID:  &authorID,
		Payload: events.CommentAddedPayload{
			CommentID:   comment.ID,
			AuthorID:    authorID,
			BodyPreview: stringPreview(body, 120),
		},
	})
	return comment, nil
}

// GetByID fetches a comment.
func (s *CommentService) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundIfNoRows(err, "comment")
	}
	return comment, nil
}

// ListByTicket returns the ticket's comments, newest first.
func (s *CommentService) ListByTicket(ctx context.Context, ticketID int64) ([]domain.Comment, error) {
	return s.comments.ListByTicket(ctx, ticketID)
}

// ListByTicketPaged returns one page of the ticket's comments, newest first.
func (s *CommentService) ListByTicketPaged(ctx context.Context, ticketID int64, page repository.PageRequest) (repository.Page[domain.Comment], error) {
	return s.comments.ListByTicketPaged(ctx, ticketID, page)
}

// ListByAuthor returns the author's comments across tickets, newest first.
func (s *CommentService) ListByAuthor(ctx context.Context, authorID int64) ([]domain.Comment, error) {
	return s.comments.ListByAuthor(ctx, authorID)
}

// Update overwrites the body. Callers other than the author are rejected.
func (s *CommentService) Update(ctx context.Context, id, authorID int64, body string) (*domain.Comment, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundIfNoRows(err, "comment")
	}
	if comment.AuthorID != authorID {
		return nil, apperrors.NewForbidden("only the author can update this comment")
	}

	comment.Body = body
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, notFoundIfNoRows(err, "comment")
	}
	return comment, nil
}

// Delete hard-deletes the comment. Callers other than the author are rejected.
func (s *CommentService) Delete(ctx context.Context, id, authorID int64) error {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return notFoundIfNoRows(err, "comment")
	}
	if comment.AuthorID != authorID {
		return apperrors.NewForbidden("only the author can delete this comment")
	}

	if err := s.comments.Delete(ctx, id); err != nil {
		return notFoundIfNoRows(err, "comment")
	}
	s.invalidateCount(ctx, comment.TicketID)
	return nil
}

// CountByTicket returns the comment count, served from the cache when warm.
func (s *CommentService) CountByTicket(ctx context.Context, ticketID int64) (int64, error) {
	key := commentCountKey(ticketID)
	if count, ok := s.cache.GetInt64(ctx, key); ok {
		return count, nil
	}

	count, err := s.comments.CountByTicket(ctx, ticketID)
	if err != nil {
		return 0, err
	}
	s.cache.SetInt64(ctx, key, count, commentCountTTL)
	return count, nil
}

func (s *CommentService) invalidateCount(ctx context.Context, ticketID int64) {
	s.cache.Delete(ctx, commentCountKey(ticketID))
}

func commentCountKey(ticketID int64) string {
	return fmt.Sprintf("ticket:%d:comment_count", ticketID)
}

func (s *CommentService) publish(ctx context.Context, event events.Event) {
	publishEvent(ctx, s.dispatcher, event)
}
