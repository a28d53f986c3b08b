package usecases

import (
	"context"

	"tickettracker/internal/application/ticket/dto"
	"tickettracker/internal/domain/shared/events"
	"tickettracker/internal/domain/ticket"
	vo "tickettracker/internal/domain/ticket/valueobjects"
	"tickettracker/internal/domain/user"
	"tickettracker/internal/shared/authorization"
	"tickettracker/internal/shared/logger"
	"tickettracker/internal/shared/utils"
)

type AddCommentCommand struct {
	Actor    *user.User `json:"-"`
	TicketID uint       `json:"-"`
	Comment  string     `json:"comment" validate:"required"`
	// Private is dropped unless the actor is an admin or the submitter.
	Private bool `json:"private"`
}

// AddCommentUseCase adds a follow-up without changing the ticket.
type AddCommentUseCase struct {
	ticketRepo   ticket.TicketRepository
	followUpRepo ticket.FollowUpRepository
	publisher    events.EventPublisher
	policy       *authorization.TicketPolicy
	logger       logger.Interface
}

func NewAddCommentUseCase(
	ticketRepo ticket.TicketRepository,
	followUpRepo ticket.FollowUpRepository,
	publisher events.EventPublisher,
	policy *authorization.TicketPolicy,
	logger logger.Interface,
) *AddCommentUseCase {
	return &AddCommentUseCase{
		ticketRepo:   ticketRepo,
		followUpRepo: followUpRepo,
		publisher:    publisher,
		policy:       policy,
		logger:       logger,
	}
}

func (uc *AddCommentUseCase) Execute(ctx context.Context, cmd AddCommentCommand) (*dto.FollowUpDTO, error) {
	uc.logger.Infow("executing add comment use case", "ticket_id", cmd.TicketID, "user_id", actorID(cmd.Actor))

	t, err := loadActiveTicket(ctx, uc.ticketRepo, cmd.TicketID)
	if err != nil {
		return nil, err
	}
	if err := authorize(uc.policy, cmd.Actor, authorization.ActionComment, t); err != nil {
		return nil, err
	}
	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	private := cmd.Private && allowed(uc.policy, cmd.Actor, authorization.ActionCommentPrivate, t)
	if cmd.Private && !private {
		uc.logger.Debugw("ignoring private flag", "ticket_id", cmd.TicketID, "user_id", cmd.Actor.ID())
	}

	f, err := saveFollowUp(ctx, uc.followUpRepo, t, cmd.Actor, cmd.Comment, vo.ActionNone, private)
	if err != nil {
		uc.logger.Errorw("failed to add comment", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	t.RecordComment(cmd.Actor.ID(), private)
	publishEvents(ctx, uc.publisher, uc.logger, t)
	uc.logger.Infow("comment added successfully", "ticket_id", cmd.TicketID, "follow_up_id", f.ID())

	result := dto.ToFollowUpDTO(f)
	return &result, nil
}
