package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	Comments       *handlers.CommentsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)

	api := app.Group("/api")

	users := api.Group("/users")
	users.Post("/", cfg.Users.CreateUser)
	users.Get("/", cfg.Users.ListUsers)
	users.Get("/active", cfg.Users.ListActiveUsers)
	users.Get("/email/:email", cfg.Users.GetUserByEmail)
	users.Get("/:id", cfg.Users.GetUser)
	users.Put("/:id", cfg.Users.UpdateUser)
	users.Delete("/:id", cfg.Users.DeleteUser)
	users.Patch("/:id/deactivate", cfg.Users.DeactivateUser)

	tickets := api.Group("/tickets")
	tickets.Post("/", cfg.Tickets.CreateTicket)
	tickets.Get("/", cfg.Tickets.ListTickets)
	tickets.Get("/filter", cfg.Tickets.FilterTickets)
	tickets.Get("/search", cfg.Tickets.SearchTickets)
	tickets.Get("/code/:code", cfg.Tickets.GetTicketByCode)
	tickets.Get("/owner/:ownerId", cfg.Tickets.ListByOwner)
	tickets.Get("/assignee/:assigneeId", cfg.Tickets.ListByAssignee)
	tickets.Get("/status/:status", cfg.Tickets.ListByStatus)
	tickets.Get("/priority/:priority", cfg.Tickets.ListByPriority)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Put("/:id", cfg.Tickets.UpdateTicket)
	tickets.Delete("/:id", cfg.Tickets.DeleteTicket)
	tickets.Patch("/:id/assign/:assigneeId", cfg.Tickets.AssignTicket)
	tickets.Patch("/:id/status/:status", cfg.Tickets.ChangeStatus)
	tickets.Get("/:id/history", cfg.Tickets.TicketHistory)

	comments := api.Group("/comments")
	comments.Post("/", cfg.Comments.CreateComment)
	comments.Get("/ticket/:ticketId/count", cfg.Comments.CountByTicket)
	comments.Get("/ticket/:ticketId/page", cfg.Comments.ListByTicketPaged)
	comments.Get("/ticket/:ticketId", cfg.Comments.ListByTicket)
	comments.Get("/author/:authorId", cfg.Comments.ListByAuthor)
	comments.Get("/:id", cfg.Comments.GetComment)
	comments.Put("/:id", cfg.Comments.UpdateComment)
	comments.Delete("/:id", cfg.Comments.DeleteComment)
}
