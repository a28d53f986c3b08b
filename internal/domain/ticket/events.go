package ticket

import (
	"strconv"

	"tickettracker/internal/domain/shared/events"
)

const (
	EventTicketCreated   = "ticket.created"
	EventTicketAccepted  = "ticket.accepted"
	EventTicketAssigned  = "ticket.assigned"
	EventTicketClosed    = "ticket.closed"
	EventTicketReopened  = "ticket.reopened"
	EventTicketSplit     = "ticket.split"
	EventTicketCommented = "ticket.commented"
)

// TicketEvent is a snapshot of the ticket at the moment a lifecycle step
// happened.
type TicketEvent struct {
	events.BaseEvent
	TicketID      uint   `json:"ticket_id"`
	Title         string `json:"title"`
	Status        string `json:"status"`
	ActorID       uint   `json:"actor_id"`
	SubmittedByID *uint  `json:"submitted_by_id,omitempty"`
	AssignedToID  *uint  `json:"assigned_to_id,omitempty"`
	Private       bool   `json:"private,omitempty"`
}

func NewTicketEvent(eventType string, t *Ticket, actorID uint) *TicketEvent {
	return &TicketEvent{
		BaseEvent:     events.NewBaseEvent(strconv.FormatUint(uint64(t.id), 10), eventType, t.updatedAt),
		TicketID:      t.id,
		Title:         t.title,
		Status:        t.status.String(),
		ActorID:       actorID,
		SubmittedByID: t.submittedByID,
		AssignedToID:  t.assignedToID,
	}
}
