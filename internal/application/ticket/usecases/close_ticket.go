package usecases

import (
	"context"
	"errors"

	"tickettracker/internal/application/ticket/dto"
	"tickettracker/internal/domain/shared/events"
	"tickettracker/internal/domain/ticket"
	vo "tickettracker/internal/domain/ticket/valueobjects"
	"tickettracker/internal/domain/user"
	"tickettracker/internal/shared/authorization"
	"tickettracker/internal/shared/db"
	apperrors "tickettracker/internal/shared/errors"
	"tickettracker/internal/shared/logger"
	"tickettracker/internal/shared/utils"
)

// Messages reported by the close-as-duplicate rules.
const (
	MsgDuplicateUnchecked  = "Duplicate is false and a ticket number was provided."
	MsgDuplicateMissingRef = "Duplicate is true but no ticket number is provided."
	MsgDuplicateSelf       = "Invalid ticket number. A ticket cannot duplicate itself."
	MsgDuplicateInvalidRef = "Invalid ticket number."
)

type CloseTicketCommand struct {
	Actor        *user.User `json:"-"`
	TicketID     uint       `json:"-"`
	Comment      string     `json:"comment" validate:"required"`
	Duplicate    bool       `json:"duplicate"`
	SameAsTicket *uint      `json:"same_as_ticket"`
}

// sameAs returns the referenced ticket id, treating zero as absent.
func (c CloseTicketCommand) sameAs() uint {
	if c.SameAsTicket == nil {
		return 0
	}
	return *c.SameAsTicket
}

type CloseTicketResult struct {
	Ticket    dto.TicketDTO     `json:"ticket"`
	Duplicate *dto.DuplicateDTO `json:"duplicate,omitempty"`
}

// CloseTicketUseCase closes a ticket outright or as a duplicate of another.
type CloseTicketUseCase struct {
	ticketRepo    ticket.TicketRepository
	followUpRepo  ticket.FollowUpRepository
	duplicateRepo ticket.DuplicateRepository
	txMgr         db.Transactor
	publisher     events.EventPublisher
	policy        *authorization.TicketPolicy
	logger        logger.Interface
}

func NewCloseTicketUseCase(
	ticketRepo ticket.TicketRepository,
	followUpRepo ticket.FollowUpRepository,
	duplicateRepo ticket.DuplicateRepository,
	txMgr db.Transactor,
	publisher events.EventPublisher,
	policy *authorization.TicketPolicy,
	logger logger.Interface,
) *CloseTicketUseCase {
	return &CloseTicketUseCase{
		ticketRepo:    ticketRepo,
		followUpRepo:  followUpRepo,
		duplicateRepo: duplicateRepo,
		txMgr:         txMgr,
		publisher:     publisher,
		policy:        policy,
		logger:        logger,
	}
}

func (uc *CloseTicketUseCase) Execute(ctx context.Context, cmd CloseTicketCommand) (*CloseTicketResult, error) {
	uc.logger.Infow("executing close ticket use case",
		"ticket_id", cmd.TicketID,
		"user_id", actorID(cmd.Actor),
		"duplicate", cmd.Duplicate,
	)

	t, err := loadActiveTicket(ctx, uc.ticketRepo, cmd.TicketID)
	if err != nil {
		return nil, err
	}
	if err := authorize(uc.policy, cmd.Actor, authorization.ActionClose, t); err != nil {
		uc.logger.Warnw("ticket close denied", "ticket_id", cmd.TicketID, "user_id", actorID(cmd.Actor))
		return nil, err
	}
	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}
	if err := uc.validateDuplicate(ctx, t, cmd); err != nil {
		uc.logger.Warnw("invalid close ticket command", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	var dup *ticket.Duplicate
	if cmd.Duplicate {
		dup, err = t.CloseAsDuplicate(cmd.sameAs(), cmd.Actor.ID())
		if err != nil {
			return nil, domainError(err)
		}
	} else {
		t.Close(cmd.Actor.ID())
	}

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return err
		}
		if dup != nil {
			if err := uc.duplicateRepo.Save(txCtx, dup); err != nil {
				return err
			}
		}
		_, err := saveFollowUp(txCtx, uc.followUpRepo, t, cmd.Actor, cmd.Comment, vo.ActionClosed, false)
		return err
	})
	if err != nil {
		uc.logger.Errorw("failed to close ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	publishEvents(ctx, uc.publisher, uc.logger, t)
	uc.logger.Infow("ticket closed successfully", "ticket_id", cmd.TicketID, "status", t.Status().String())

	result := &CloseTicketResult{Ticket: dto.ToTicketDTO(t)}
	if dup != nil {
		d := dto.ToDuplicateDTO(dup)
		result.Duplicate = &d
	}
	return result, nil
}

// validateDuplicate applies the duplicate rules in order. The self
// reference is checked before the flag rules. The referenced ticket must be
// active.
func (uc *CloseTicketUseCase) validateDuplicate(ctx context.Context, t *ticket.Ticket, cmd CloseTicketCommand) error {
	ref := cmd.sameAs()
	switch {
	case ref != 0 && ref == t.ID():
		return apperrors.NewValidationError(MsgDuplicateSelf)
	case ref != 0 && !cmd.Duplicate:
		return apperrors.NewValidationError(MsgDuplicateUnchecked)
	case cmd.Duplicate && ref == 0:
		return apperrors.NewValidationError(MsgDuplicateMissingRef)
	}
	if !cmd.Duplicate {
		return nil
	}

	if _, err := uc.ticketRepo.GetActiveByID(ctx, ref); err != nil {
		if errors.Is(err, ticket.ErrTicketNotFound) {
			return apperrors.NewValidationError(MsgDuplicateInvalidRef)
		}
		return err
	}
	return nil
}
