package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicket POST /api/tickets?ownerId=.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	ownerID, err := requireIDQuery(c, "ownerId")
	if err != nil {
		return err
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if details := req.Validate(); len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details)
	}
	ticket, err := h.service.Create(c.UserContext(), service.TicketCreateInput{
		Subject:     req.Subject,
		Description: req.Description,
		Priority:    req.Priority,
		OwnerID:     ownerID,
		AssigneeID:  req.AssigneeID,
	})
	if err != nil {
		return err
	}
	view, err := h.view(c, ticket)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": view})
}

// ListTickets GET /api/tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	page, err := h.service.List(c.UserContext(), pageRequest(c))
	if err != nil {
		return err
	}
	return h.pagedResponse(c, page)
}

// FilterTickets GET /api/tickets/filter.
func (h *TicketsHandler) FilterTickets(c *fiber.Ctx) error {
	filter := repository.TicketFilter{
		OwnerID:    optionalIDQuery(c, "ownerId"),
		AssigneeID: optionalIDQuery(c, "assigneeId"),
	}
	if raw := c.Query("status"); raw != "" {
		status, err := domain.ParseTicketStatus(raw)
		if err != nil {
			return apperrors.NewValidationError(err.Error(), nil)
		}
		filter.Status = &status
	}
	if raw := c.Query("priority"); raw != "" {
		priority, err := domain.ParseTicketPriority(raw)
		if err != nil {
			return apperrors.NewValidationError(err.Error(), nil)
		}
		filter.Priority = &priority
	}
	page, err := h.service.Filter(c.UserContext(), filter, pageRequest(c))
	if err != nil {
		return err
	}
	return h.pagedResponse(c, page)
}

// SearchTickets GET /api/tickets/search?q=.
func (h *TicketsHandler) SearchTickets(c *fiber.Ctx) error {
	term := strings.TrimSpace(c.Query("q"))
	if term == "" {
		return apperrors.NewValidationError("q query parameter is required", nil)
	}
	page, err := h.service.Search(c.UserContext(), term, pageRequest(c))
	if err != nil {
		return err
	}
	return h.pagedResponse(c, page)
}

// GetTicket GET /api/tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	ticket, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	view, err := h.view(c, ticket)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": view})
}

// GetTicketByCode GET /api/tickets/code/:code.
func (h *TicketsHandler) GetTicketByCode(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return apperrors.NewValidationError("code is required", nil)
	}
	ticket, err := h.service.GetByCode(c.UserContext(), code)
	if err != nil {
		return err
	}
	view, err := h.view(c, ticket)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": view})
}

// ListByOwner GET /api/tickets/owner/:ownerId.
func (h *TicketsHandler) ListByOwner(c *fiber.Ctx) error {
	ownerID, err := parseIDParam(c, "ownerId")
	if err != nil {
		return err
	}
	page, err := h.service.ListByOwner(c.UserContext(), ownerID, pageRequest(c))
	if err != nil {
		return err
	}
	return h.pagedResponse(c, page)
}

// ListByAssignee GET /api/tickets/assignee/:assigneeId.
func (h *TicketsHandler) ListByAssignee(c *fiber.Ctx) error {
	assigneeID, err := parseIDParam(c, "assigneeId")
	if err != nil {
		return err
	}
	page, err := h.service.ListByAssignee(c.UserContext(), assigneeID, pageRequest(c))
	if err != nil {
		return err
	}
	return h.pagedResponse(c, page)
}

// ListByStatus GET /api/tickets/status/:status.
func (h *TicketsHandler) ListByStatus(c *fiber.Ctx) error {
	status, err := domain.ParseTicketStatus(c.Params("status"))
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	page, err := h.service.ListByStatus(c.UserContext(), status, pageRequest(c))
	if err != nil {
		return err
	}
	return h.pagedResponse(c, page)
}

// ListByPriority GET /api/tickets/priority/:priority.
func (h *TicketsHandler) ListByPriority(c *fiber.Ctx) error {
	priority, err := domain.ParseTicketPriority(c.Params("priority"))
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	page, err := h.service.ListByPriority(c.UserContext(), priority, pageRequest(c))
	if err != nil {
		return err
	}
	return h.pagedResponse(c, page)
}

// UpdateTicket PUT /api/tickets/:id.
func (h *TicketsHandler) UpdateTicket(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if details := req.Validate(); len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details)
	}
	ticket, err := h.service.Update(c.UserContext(), id, service.TicketUpdateInput{
		Subject:     req.Subject,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		AssigneeID:  req.AssigneeID,
		ActorID:     optionalIDQuery(c, "actorId"),
	})
	if err != nil {
		return err
	}
	view, err := h.view(c, ticket)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": view})
}

// DeleteTicket DELETE /api/tickets/:id.
func (h *TicketsHandler) DeleteTicket(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AssignTicket PATCH /api/tickets/:id/assign/:assigneeId.
func (h *TicketsHandler) AssignTicket(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	assigneeID, err := parseIDParam(c, "assigneeId")
	if err != nil {
		return err
	}
	ticket, err := h.service.Assign(c.UserContext(), id, assigneeID, optionalIDQuery(c, "actorId"))
	if err != nil {
		return err
	}
	view, err := h.view(c, ticket)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": view})
}

// ChangeStatus PATCH /api/tickets/:id/status/:status.
func (h *TicketsHandler) ChangeStatus(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	status, err := domain.ParseTicketStatus(c.Params("status"))
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	ticket, err := h.service.ChangeStatus(c.UserContext(), id, status, optionalIDQuery(c, "actorId"))
	if err != nil {
		return err
	}
	view, err := h.view(c, ticket)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": view})
}

// TicketHistory GET /api/tickets/:id/history.
func (h *TicketsHandler) TicketHistory(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	entries, err := h.service.History(c.UserContext(), id)
	if err != nil {
		return err
	}
	items := make([]dto.TicketHistoryResponse, 0, len(entries))
	for i := range entries {
		items = append(items, dto.NewTicketHistoryResponse(entries[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func (h *TicketsHandler) view(c *fiber.Ctx, ticket *domain.Ticket) (dto.TicketResponse, error) {
	views, err := h.service.WithUsers(c.UserContext(), []domain.Ticket{*ticket})
	if err != nil {
		return dto.TicketResponse{}, err
	}
	return dto.NewTicketResponse(views[0]), nil
}

func (h *TicketsHandler) pagedResponse(c *fiber.Ctx, page repository.Page[domain.Ticket]) error {
	views, err := h.service.WithUsers(c.UserContext(), page.Items)
	if err != nil {
		return err
	}
	resp := dto.PageResponse[dto.TicketResponse]{
		Items:      make([]dto.TicketResponse, 0, len(views)),
		TotalCount: page.TotalCount,
		Page:       page.Page,
		Size:       page.Size,
		TotalPages: page.TotalPages(),
	}
	for _, view := range views {
		resp.Items = append(resp.Items, dto.NewTicketResponse(view))
	}
	return c.JSON(fiber.Map{"data": resp})
}
