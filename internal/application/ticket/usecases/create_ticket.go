package usecases

import (
	"context"
	"fmt"

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

// TicketFieldsInput is the editable part of a ticket shared by create and
// update.
type TicketFieldsInput struct {
	Title         string   `json:"title" validate:"required,max=80"`
	Description   string   `json:"description" validate:"required"`
	Type          string   `json:"ticket_type" validate:"required,oneof=feature bug task"`
	Priority      int      `json:"priority" validate:"gte=1,lte=5"`
	ApplicationID uint     `json:"application" validate:"required"`
	Tags          []string `json:"tags" validate:"omitempty,dive,max=50"`
}

func (in TicketFieldsInput) toFields() ticket.Fields {
	return ticket.Fields{
		Title:         in.Title,
		Description:   in.Description,
		Type:          vo.TicketType(in.Type),
		Priority:      vo.Priority(in.Priority),
		ApplicationID: in.ApplicationID,
		Tags:          in.Tags,
	}
}

type CreateTicketCommand struct {
	Actor *user.User `json:"-"`
	TicketFieldsInput
}

type CreateTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	appRepo    ticket.ApplicationRepository
	txMgr      db.Transactor
	publisher  events.EventPublisher
	policy     *authorization.TicketPolicy
	logger     logger.Interface
}

func NewCreateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	appRepo ticket.ApplicationRepository,
	txMgr db.Transactor,
	publisher events.EventPublisher,
	policy *authorization.TicketPolicy,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		ticketRepo: ticketRepo,
		appRepo:    appRepo,
		txMgr:      txMgr,
		publisher:  publisher,
		policy:     policy,
		logger:     logger,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing create ticket use case", "user_id", actorID(cmd.Actor), "title", cmd.Title)

	if err := authorize(uc.policy, cmd.Actor, authorization.ActionCreate, nil); err != nil {
		return nil, err
	}
	if err := utils.ValidateStruct(cmd); err != nil {
		uc.logger.Warnw("invalid create ticket command", "error", err)
		return nil, err
	}
	if err := validApplication(ctx, uc.appRepo, cmd.ApplicationID); err != nil {
		return nil, err
	}

	t, err := ticket.NewTicket(cmd.toFields(), cmd.Actor.ID())
	if err != nil {
		return nil, domainError(err)
	}

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.ticketRepo.Save(txCtx, t); err != nil {
			return fmt.Errorf("failed to save ticket: %w", err)
		}
		t.RecordCreated(cmd.Actor.ID())
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to create ticket", "user_id", cmd.Actor.ID(), "error", err)
		return nil, err
	}

	publishEvents(ctx, uc.publisher, uc.logger, t)
	uc.logger.Infow("ticket created successfully", "ticket_id", t.ID(), "user_id", cmd.Actor.ID())

	result := dto.ToTicketDTO(t)
	return &result, nil
}
