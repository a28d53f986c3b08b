package usecases

import (
	"context"

	"tickettracker/internal/application/ticket/dto"
	"tickettracker/internal/domain/shared/events"
	"tickettracker/internal/domain/ticket"
	vo "tickettracker/internal/domain/ticket/valueobjects"
	"tickettracker/internal/domain/user"
	"tickettracker/internal/shared/authorization"
	"tickettracker/internal/shared/db"
	"tickettracker/internal/shared/logger"
	"tickettracker/internal/shared/utils"
)

type AcceptTicketCommand struct {
	Actor    *user.User `json:"-"`
	TicketID uint       `json:"-"`
	Comment  string     `json:"comment" validate:"required"`
}

// AcceptTicketUseCase lets any signed-in user accept a ticket. Non-admins
// become its assignee.
type AcceptTicketUseCase struct {
	ticketRepo   ticket.TicketRepository
	followUpRepo ticket.FollowUpRepository
	txMgr        db.Transactor
	publisher    events.EventPublisher
	policy       *authorization.TicketPolicy
	logger       logger.Interface
}

func NewAcceptTicketUseCase(
	ticketRepo ticket.TicketRepository,
	followUpRepo ticket.FollowUpRepository,
	txMgr db.Transactor,
	publisher events.EventPublisher,
	policy *authorization.TicketPolicy,
	logger logger.Interface,
) *AcceptTicketUseCase {
	return &AcceptTicketUseCase{
		ticketRepo:   ticketRepo,
		followUpRepo: followUpRepo,
		txMgr:        txMgr,
		publisher:    publisher,
		policy:       policy,
		logger:       logger,
	}
}

func (uc *AcceptTicketUseCase) Execute(ctx context.Context, cmd AcceptTicketCommand) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing accept ticket use case", "ticket_id", cmd.TicketID, "user_id", actorID(cmd.Actor))

	t, err := loadActiveTicket(ctx, uc.ticketRepo, cmd.TicketID)
	if err != nil {
		return nil, err
	}
	if err := authorize(uc.policy, cmd.Actor, authorization.ActionAccept, t); err != nil {
		return nil, err
	}
	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	t.Accept(cmd.Actor.ID(), authorization.IsAdmin(cmd.Actor))

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return err
		}
		_, err := saveFollowUp(txCtx, uc.followUpRepo, t, cmd.Actor, cmd.Comment, vo.ActionNone, false)
		return err
	})
	if err != nil {
		uc.logger.Errorw("failed to accept ticket", "ticket_id", cmd.TicketID, "user_id", cmd.Actor.ID(), "error", err)
		return nil, err
	}

	publishEvents(ctx, uc.publisher, uc.logger, t)
	uc.logger.Infow("ticket accepted successfully", "ticket_id", cmd.TicketID, "user_id", cmd.Actor.ID())

	result := dto.ToTicketDTO(t)
	return &result, nil
}
