package usecases

import (
	"context"
	"errors"
	"fmt"

	"tickettracker/internal/domain/shared/events"
	"tickettracker/internal/domain/ticket"
	vo "tickettracker/internal/domain/ticket/valueobjects"
	"tickettracker/internal/domain/user"
	"tickettracker/internal/shared/authorization"
	apperrors "tickettracker/internal/shared/errors"
	"tickettracker/internal/shared/logger"
)

// subjectOf keeps a nil *user.User from becoming a non-nil interface.
func subjectOf(actor *user.User) authorization.Subject {
	if actor == nil {
		return nil
	}
	return actor
}

func resourceOf(t *ticket.Ticket) authorization.Resource {
	if t == nil {
		return nil
	}
	return t
}

func actorID(actor *user.User) uint {
	if actor == nil {
		return 0
	}
	return actor.ID()
}

// authorize turns a denied decision into a forbidden error carrying the
// policy's reason.
func authorize(policy *authorization.TicketPolicy, actor *user.User, action authorization.Action, t *ticket.Ticket) error {
	decision := policy.Authorize(subjectOf(actor), action, resourceOf(t))
	if decision.Allowed {
		return nil
	}
	if actor == nil {
		return apperrors.NewUnauthorizedError(decision.Reason)
	}
	return apperrors.NewForbiddenError(decision.Reason)
}

func allowed(policy *authorization.TicketPolicy, actor *user.User, action authorization.Action, t *ticket.Ticket) bool {
	return policy.Authorize(subjectOf(actor), action, resourceOf(t)).Allowed
}

// loadActiveTicket resolves an active ticket or reports a not-found error.
func loadActiveTicket(ctx context.Context, repo ticket.TicketRepository, id uint) (*ticket.Ticket, error) {
	return loadTicket(ctx, repo, id, false)
}

func loadTicket(ctx context.Context, repo ticket.TicketRepository, id uint, includeInactive bool) (*ticket.Ticket, error) {
	var (
		t   *ticket.Ticket
		err error
	)
	if includeInactive {
		t, err = repo.GetByID(ctx, id)
	} else {
		t, err = repo.GetActiveByID(ctx, id)
	}
	if err != nil {
		if errors.Is(err, ticket.ErrTicketNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("ticket %d not found", id))
		}
		return nil, err
	}
	return t, nil
}

// domainError maps rule violations raised by the ticket aggregate to
// validation errors.
func domainError(err error) error {
	if err == nil {
		return nil
	}
	if apperrors.GetAppError(err) != nil {
		return err
	}
	return apperrors.NewValidationError(err.Error())
}

// validApplication checks that applicationID refers to an existing application.
func validApplication(ctx context.Context, repo ticket.ApplicationRepository, applicationID uint) error {
	if _, err := repo.GetByID(ctx, applicationID); err != nil {
		if errors.Is(err, ticket.ErrApplicationNotFound) {
			return apperrors.NewValidationError("Select a valid application.")
		}
		return err
	}
	return nil
}

// staffUser resolves a user that tickets may be assigned to.
func staffUser(ctx context.Context, repo user.Repository, id uint) (*user.User, error) {
	u, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperrors.NewValidationError("Select a valid choice. That choice is not one of the available choices.")
		}
		return nil, err
	}
	if !u.IsStaff() || !u.IsActive() {
		return nil, apperrors.NewValidationError("Select a valid choice. That choice is not one of the available choices.")
	}
	return u, nil
}

// saveFollowUp records the comment that accompanies a transition.
func saveFollowUp(
	ctx context.Context,
	repo ticket.FollowUpRepository,
	t *ticket.Ticket,
	actor *user.User,
	comment string,
	action vo.FollowUpAction,
	private bool,
) (*ticket.FollowUp, error) {
	f, err := ticket.NewFollowUp(t.ID(), actorID(actor), comment, action, private)
	if err != nil {
		return nil, domainError(err)
	}
	if err := repo.Save(ctx, f); err != nil {
		return nil, fmt.Errorf("failed to save follow-up: %w", err)
	}
	return f, nil
}

// publishEvents hands the committed events of each ticket to the publisher.
// Failures are logged and never undo the committed change.
func publishEvents(ctx context.Context, publisher events.EventPublisher, log logger.Interface, tickets ...*ticket.Ticket) {
	var pending []events.DomainEvent
	for _, t := range tickets {
		pending = append(pending, t.Events()...)
		t.ClearEvents()
	}
	if len(pending) == 0 || publisher == nil {
		return
	}
	if err := publisher.PublishAll(ctx, pending); err != nil {
		log.Warnw("failed to publish ticket events", "count", len(pending), "error", err)
	}
}
