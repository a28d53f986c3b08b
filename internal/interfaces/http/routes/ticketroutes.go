package routes

import (
	"github.com/gin-gonic/gin"

	tickethandlers "tickettracker/internal/interfaces/http/handlers/ticket"
	"tickettracker/internal/interfaces/http/middleware"
)

type TicketRouteConfig struct {
	TicketHandler  *tickethandlers.TicketHandler
	AuthMiddleware *middleware.AuthMiddleware
	// Throttle, when set, runs after authentication on every mutation.
	Throttle gin.HandlerFunc
}

// SetupTicketRoutes registers the ticket routes. Reads accept anonymous
// callers; every mutation needs a token. Per-action rules are enforced by
// the use cases.
func SetupTicketRoutes(engine *gin.Engine, config *TicketRouteConfig) {
	h := config.TicketHandler
	requireAuth := config.AuthMiddleware.RequireAuth()

	tickets := engine.Group("/tickets")
	{
		public := tickets.Group("", config.AuthMiddleware.OptionalAuth())
		public.GET("", h.ListTickets)
		public.GET("/:id", h.GetTicket)

		authed := tickets.Group("", requireAuth)
		if config.Throttle != nil {
			authed.Use(config.Throttle)
		}
		authed.POST("", h.CreateTicket)
		authed.PUT("/:id", h.UpdateTicket)
		authed.POST("/:id/accept", h.AcceptTicket)
		authed.POST("/:id/assign", h.AssignTicket)
		authed.POST("/:id/close", h.CloseTicket)
		authed.POST("/:id/reopen", h.ReopenTicket)
		authed.POST("/:id/comments", h.AddComment)
		authed.POST("/:id/split", h.SplitTicket)
		authed.POST("/:id/upvote", h.UpVote)
		authed.POST("/:id/downvote", h.DownVote)
		authed.POST("/:id/deactivate", h.Deactivate)
		authed.POST("/:id/activate", h.Activate)
	}
}
