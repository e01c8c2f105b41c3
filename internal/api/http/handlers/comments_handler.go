package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// CommentsHandler manages ticket comment endpoints.
type CommentsHandler struct {
	service *service.CommentService
}

// NewCommentsHandler constructs handler.
func NewCommentsHandler(commentService *service.CommentService) *CommentsHandler {
	return &CommentsHandler{service: commentService}
}

// CreateComment POST /api/comments?authorId=.
func (h *CommentsHandler) CreateComment(c *fiber.Ctx) error {
	authorID, err := requireIDQuery(c, "authorId")
	if err != nil {
		return err
	}
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if details := req.Validate(); len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details)
	}
	comment, err := h.service.Create(c.UserContext(), req.TicketID, authorID, req.Body)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewCommentResponse(comment)})
}

// GetComment GET /api/comments/:id.
func (h *CommentsHandler) GetComment(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	comment, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCommentResponse(comment)})
}

// ListByTicket GET /api/comments/ticket/:ticketId.
func (h *CommentsHandler) ListByTicket(c *fiber.Ctx) error {
	ticketID, err := parseIDParam(c, "ticketId")
	if err != nil {
		return err
	}
	comments, err := h.service.ListByTicket(c.UserContext(), ticketID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": commentResponses(comments)})
}

// ListByTicketPaged GET /api/comments/ticket/:ticketId/page.
func (h *CommentsHandler) ListByTicketPaged(c *fiber.Ctx) error {
	ticketID, err := parseIDParam(c, "ticketId")
	if err != nil {
		return err
	}
	page, err := h.service.ListByTicketPaged(c.UserContext(), ticketID, pageRequest(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPageResponse(page, func(comment domain.Comment) dto.CommentResponse {
		return dto.NewCommentResponse(&comment)
	})})
}

// CountByTicket GET /api/comments/ticket/:ticketId/count.
func (h *CommentsHandler) CountByTicket(c *fiber.Ctx) error {
	ticketID, err := parseIDParam(c, "ticketId")
	if err != nil {
		return err
	}
	count, err := h.service.CountByTicket(c.UserContext(), ticketID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"ticket_id": ticketID, "count": count}})
}

// ListByAuthor GET /api/comments/author/:authorId.
func (h *CommentsHandler) ListByAuthor(c *fiber.Ctx) error {
	authorID, err := parseIDParam(c, "authorId")
	if err != nil {
		return err
	}
	comments, err := h.service.ListByAuthor(c.UserContext(), authorID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": commentResponses(comments)})
}

// UpdateComment PUT /api/comments/:id?authorId=.
func (h *CommentsHandler) UpdateComment(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	authorID, err := requireIDQuery(c, "authorId")
	if err != nil {
		return err
	}
	var req dto.UpdateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if details := req.Validate(); len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details)
	}
	comment, err := h.service.Update(c.UserContext(), id, authorID, req.Body)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCommentResponse(comment)})
}

// DeleteComment DELETE /api/comments/:id?authorId=.
func (h *CommentsHandler) DeleteComment(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	authorID, err := requireIDQuery(c, "authorId")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id, authorID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func commentResponses(comments []domain.Comment) []dto.CommentResponse {
	items := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		items = append(items, dto.NewCommentResponse(&comments[i]))
	}
	return items
}
