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

type AssignTicketCommand struct {
	Actor      *user.User `json:"-"`
	TicketID   uint       `json:"-"`
	AssigneeID uint       `json:"assigned_to" validate:"required"`
	Comment    string     `json:"comment" validate:"required"`
}

// AssignTicketUseCase assigns or re-assigns a ticket to a staff user.
type AssignTicketUseCase struct {
	ticketRepo   ticket.TicketRepository
	followUpRepo ticket.FollowUpRepository
	userRepo     user.Repository
	txMgr        db.Transactor
	publisher    events.EventPublisher
	policy       *authorization.TicketPolicy
	logger       logger.Interface
}

func NewAssignTicketUseCase(
	ticketRepo ticket.TicketRepository,
	followUpRepo ticket.FollowUpRepository,
	userRepo user.Repository,
	txMgr db.Transactor,
	publisher events.EventPublisher,
	policy *authorization.TicketPolicy,
	logger logger.Interface,
) *AssignTicketUseCase {
	return &AssignTicketUseCase{
		ticketRepo:   ticketRepo,
		followUpRepo: followUpRepo,
		userRepo:     userRepo,
		txMgr:        txMgr,
		publisher:    publisher,
		policy:       policy,
		logger:       logger,
	}
}

func (uc *AssignTicketUseCase) Execute(ctx context.Context, cmd AssignTicketCommand) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing assign ticket use case", "ticket_id", cmd.TicketID, "user_id", actorID(cmd.Actor), "assignee_id", cmd.AssigneeID)

	t, err := loadActiveTicket(ctx, uc.ticketRepo, cmd.TicketID)
	if err != nil {
		return nil, err
	}
	if err := authorize(uc.policy, cmd.Actor, authorization.ActionAssign, t); err != nil {
		uc.logger.Warnw("ticket assignment denied", "ticket_id", cmd.TicketID, "user_id", actorID(cmd.Actor))
		return nil, err
	}
	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}
	if _, err := staffUser(ctx, uc.userRepo, cmd.AssigneeID); err != nil {
		return nil, err
	}

	if err := t.AssignTo(cmd.AssigneeID, cmd.Actor.ID()); err != nil {
		return nil, domainError(err)
	}

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return err
		}
		_, err := saveFollowUp(txCtx, uc.followUpRepo, t, cmd.Actor, cmd.Comment, vo.ActionNone, false)
		return err
	})
	if err != nil {
		uc.logger.Errorw("failed to assign ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	publishEvents(ctx, uc.publisher, uc.logger, t)
	uc.logger.Infow("ticket assigned successfully", "ticket_id", cmd.TicketID, "assignee_id", cmd.AssigneeID)

	result := dto.ToTicketDTO(t)
	return &result, nil
}
