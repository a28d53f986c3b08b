package http

import (
	"tickettracker/internal/interfaces/http/handlers"
	ticketHandlers "tickettracker/internal/interfaces/http/handlers/ticket"
)

type allHandlers struct {
	ticketHandler      *ticketHandlers.TicketHandler
	applicationHandler *handlers.ApplicationHandler
	userHandler        *handlers.UserHandler
	healthHandler      *handlers.HealthHandler
}

func (c *Container) newHandlers() *allHandlers {
	u := c.ucs
	log := c.log.Named("http")

	h := &allHandlers{
		ticketHandler: ticketHandlers.NewTicketHandler(ticketHandlers.UseCases{
			Create:    u.createTicket,
			Update:    u.updateTicket,
			Accept:    u.acceptTicket,
			Assign:    u.assignTicket,
			Close:     u.closeTicket,
			Reopen:    u.reopenTicket,
			Comment:   u.addComment,
			Split:     u.splitTicket,
			Vote:      u.voteTicket,
			Get:       u.getTicket,
			List:      u.listTickets,
			SetActive: u.setTicketActive,
		}, log),
		applicationHandler: handlers.NewApplicationHandler(u.createApplication, u.listApplications, log),
		userHandler:        handlers.NewUserHandler(u.listStaff, log),
		healthHandler:      handlers.NewHealthHandler(nil),
	}

	if sqlDB, err := c.db.DB(); err == nil {
		h.healthHandler = handlers.NewHealthHandler(sqlDB)
	}
	return h
}
