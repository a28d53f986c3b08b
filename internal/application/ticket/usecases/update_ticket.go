package usecases

import (
	"context"

	"tickettracker/internal/application/ticket/dto"
	"tickettracker/internal/domain/ticket"
	"tickettracker/internal/domain/user"
	"tickettracker/internal/shared/authorization"
	"tickettracker/internal/shared/logger"
	"tickettracker/internal/shared/utils"
)

type UpdateTicketCommand struct {
	Actor    *user.User `json:"-"`
	TicketID uint       `json:"-"`
	TicketFieldsInput
}

// UpdateTicketUseCase edits the fields of a ticket. Status is never touched.
type UpdateTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	appRepo    ticket.ApplicationRepository
	policy     *authorization.TicketPolicy
	logger     logger.Interface
}

func NewUpdateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	appRepo ticket.ApplicationRepository,
	policy *authorization.TicketPolicy,
	logger logger.Interface,
) *UpdateTicketUseCase {
	return &UpdateTicketUseCase{
		ticketRepo: ticketRepo,
		appRepo:    appRepo,
		policy:     policy,
		logger:     logger,
	}
}

func (uc *UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing update ticket use case", "ticket_id", cmd.TicketID, "user_id", actorID(cmd.Actor))

	t, err := loadActiveTicket(ctx, uc.ticketRepo, cmd.TicketID)
	if err != nil {
		return nil, err
	}
	if err := authorize(uc.policy, cmd.Actor, authorization.ActionEdit, t); err != nil {
		uc.logger.Warnw("ticket edit denied", "ticket_id", cmd.TicketID, "user_id", actorID(cmd.Actor))
		return nil, err
	}
	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}
	if err := validApplication(ctx, uc.appRepo, cmd.ApplicationID); err != nil {
		return nil, err
	}

	if err := t.Edit(cmd.toFields()); err != nil {
		return nil, domainError(err)
	}
	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to update ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	uc.logger.Infow("ticket updated successfully", "ticket_id", cmd.TicketID)
	result := dto.ToTicketDTO(t)
	return &result, nil
}
