package usecases

import (
	"context"

	"tickettracker/internal/application/ticket/dto"
	"tickettracker/internal/domain/ticket"
	"tickettracker/internal/domain/user"
	"tickettracker/internal/shared/authorization"
	"tickettracker/internal/shared/logger"
)

type SetTicketActiveCommand struct {
	Actor    *user.User
	TicketID uint
	Active   bool
}

// SetTicketActiveUseCase hides a ticket from default listings or brings it
// back. Tickets are never deleted.
type SetTicketActiveUseCase struct {
	ticketRepo ticket.TicketRepository
	policy     *authorization.TicketPolicy
	logger     logger.Interface
}

func NewSetTicketActiveUseCase(
	ticketRepo ticket.TicketRepository,
	policy *authorization.TicketPolicy,
	logger logger.Interface,
) *SetTicketActiveUseCase {
	return &SetTicketActiveUseCase{
		ticketRepo: ticketRepo,
		policy:     policy,
		logger:     logger,
	}
}

func (uc *SetTicketActiveUseCase) Execute(ctx context.Context, cmd SetTicketActiveCommand) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing set ticket active use case", "ticket_id", cmd.TicketID, "active", cmd.Active)

	t, err := loadTicket(ctx, uc.ticketRepo, cmd.TicketID, true)
	if err != nil {
		return nil, err
	}
	if err := authorize(uc.policy, cmd.Actor, authorization.ActionSetActive, t); err != nil {
		return nil, err
	}

	if t.IsActive() != cmd.Active {
		if cmd.Active {
			t.Activate()
		} else {
			t.Deactivate()
		}
		if err := uc.ticketRepo.Update(ctx, t); err != nil {
			uc.logger.Errorw("failed to update ticket", "ticket_id", cmd.TicketID, "error", err)
			return nil, err
		}
	}

	uc.logger.Infow("ticket visibility changed", "ticket_id", cmd.TicketID, "active", cmd.Active)
	result := dto.ToTicketDTO(t)
	return &result, nil
}
