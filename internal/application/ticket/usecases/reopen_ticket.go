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

type ReopenTicketCommand struct {
	Actor    *user.User `json:"-"`
	TicketID uint       `json:"-"`
	Comment  string     `json:"comment" validate:"required"`
}

type ReopenTicketUseCase struct {
	ticketRepo   ticket.TicketRepository
	followUpRepo ticket.FollowUpRepository
	txMgr        db.Transactor
	publisher    events.EventPublisher
	policy       *authorization.TicketPolicy
	logger       logger.Interface
}

func NewReopenTicketUseCase(
	ticketRepo ticket.TicketRepository,
	followUpRepo ticket.FollowUpRepository,
	txMgr db.Transactor,
	publisher events.EventPublisher,
	policy *authorization.TicketPolicy,
	logger logger.Interface,
) *ReopenTicketUseCase {
	return &ReopenTicketUseCase{
		ticketRepo:   ticketRepo,
		followUpRepo: followUpRepo,
		txMgr:        txMgr,
		publisher:    publisher,
		policy:       policy,
		logger:       logger,
	}
}

func (uc *ReopenTicketUseCase) Execute(ctx context.Context, cmd ReopenTicketCommand) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing reopen ticket use case", "ticket_id", cmd.TicketID, "user_id", actorID(cmd.Actor))

	t, err := loadActiveTicket(ctx, uc.ticketRepo, cmd.TicketID)
	if err != nil {
		return nil, err
	}
	if err := authorize(uc.policy, cmd.Actor, authorization.ActionReopen, t); err != nil {
		uc.logger.Warnw("ticket reopen denied", "ticket_id", cmd.TicketID, "user_id", actorID(cmd.Actor))
		return nil, err
	}
	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	t.Reopen(cmd.Actor.ID())

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return err
		}
		_, err := saveFollowUp(txCtx, uc.followUpRepo, t, cmd.Actor, cmd.Comment, vo.ActionReopened, false)
		return err
	})
	if err != nil {
		uc.logger.Errorw("failed to reopen ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	publishEvents(ctx, uc.publisher, uc.logger, t)
	uc.logger.Infow("ticket reopened successfully", "ticket_id", cmd.TicketID)

	result := dto.ToTicketDTO(t)
	return &result, nil
}
