package email

import (
	"context"
	"fmt"
	"html"
	"strings"

	"tickettracker/internal/domain/shared/events"
	"tickettracker/internal/domain/ticket"
	"tickettracker/internal/domain/user"
	"tickettracker/internal/shared/goroutine"
	"tickettracker/internal/shared/logger"
)

// TicketNotifier mails the assignee when a ticket is assigned and the
// submitter when it is closed or re-opened. Actors are never mailed about
// their own actions.
type TicketNotifier struct {
	sender   Sender
	users    user.Repository
	baseURL  string
	logger   logger.Interface
	dispatch func(name string, fn func())
}

func NewTicketNotifier(sender Sender, users user.Repository, baseURL string, log logger.Interface) *TicketNotifier {
	return &TicketNotifier{
		sender:  sender,
		users:   users,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  log,
		dispatch: func(name string, fn func()) {
			goroutine.SafeGo(log, name, fn)
		},
	}
}

func (n *TicketNotifier) CanHandle(eventType string) bool {
	switch eventType {
	case ticket.EventTicketAssigned, ticket.EventTicketClosed, ticket.EventTicketReopened:
		return true
	}
	return false
}

// Handle resolves the recipient and sends in the background. Lookup
// failures are returned; delivery failures are only logged.
func (n *TicketNotifier) Handle(ctx context.Context, event events.DomainEvent) error {
	evt, ok := event.(*ticket.TicketEvent)
	if !ok || !n.CanHandle(evt.GetEventType()) {
		return nil
	}

	recipientID := evt.SubmittedByID
	if evt.GetEventType() == ticket.EventTicketAssigned {
		recipientID = evt.AssignedToID
	}
	if recipientID == nil || *recipientID == evt.ActorID {
		return nil
	}

	recipient, err := n.users.GetByID(ctx, *recipientID)
	if err != nil {
		return fmt.Errorf("failed to load notification recipient: %w", err)
	}
	if recipient.Email() == "" || !recipient.IsActive() {
		return nil
	}

	subject, htmlBody, plainBody := n.compose(evt, recipient)
	to := recipient.Email()
	n.dispatch("ticket-notification", func() {
		if err := n.sender.Send(to, subject, htmlBody, plainBody); err != nil {
			n.logger.Warnw("failed to send ticket notification",
				"ticket_id", evt.TicketID,
				"event_type", evt.GetEventType(),
				"error", err,
			)
			return
		}
		n.logger.Debugw("ticket notification sent", "ticket_id", evt.TicketID, "event_type", evt.GetEventType())
	})
	return nil
}

func (n *TicketNotifier) compose(evt *ticket.TicketEvent, recipient *user.User) (subject, htmlBody, plainBody string) {
	link := fmt.Sprintf("%s/tickets/%d", n.baseURL, evt.TicketID)

	var what string
	switch evt.GetEventType() {
	case ticket.EventTicketAssigned:
		what = "has been assigned to you"
	case ticket.EventTicketReopened:
		what = "has been re-opened"
	default:
		what = "has been closed"
	}

	subject = fmt.Sprintf("[Ticket #%d] %s %s", evt.TicketID, evt.Title, what)
	plainBody = fmt.Sprintf("Hello %s,\n\nTicket #%d \"%s\" %s.\n\n%s\n",
		recipient.DisplayName(), evt.TicketID, evt.Title, what, link)
	htmlBody = fmt.Sprintf(`<html><body><p>Hello %s,</p><p>Ticket #%d "%s" %s.</p><p><a href="%s">%s</a></p></body></html>`,
		html.EscapeString(recipient.DisplayName()), evt.TicketID, html.EscapeString(evt.Title), what, link, link)
	return subject, htmlBody, plainBody
}
