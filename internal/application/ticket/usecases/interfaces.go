package usecases

import (
	"context"

	"tickettracker/internal/application/ticket/dto"
)

type CreateTicketExecutor interface {
	Execute(ctx context.Context, cmd CreateTicketCommand) (*dto.TicketDTO, error)
}

type UpdateTicketExecutor interface {
	Execute(ctx context.Context, cmd UpdateTicketCommand) (*dto.TicketDTO, error)
}

type AcceptTicketExecutor interface {
	Execute(ctx context.Context, cmd AcceptTicketCommand) (*dto.TicketDTO, error)
}

type AssignTicketExecutor interface {
	Execute(ctx context.Context, cmd AssignTicketCommand) (*dto.TicketDTO, error)
}

type CloseTicketExecutor interface {
	Execute(ctx context.Context, cmd CloseTicketCommand) (*CloseTicketResult, error)
}

type ReopenTicketExecutor interface {
	Execute(ctx context.Context, cmd ReopenTicketCommand) (*dto.TicketDTO, error)
}

type AddCommentExecutor interface {
	Execute(ctx context.Context, cmd AddCommentCommand) (*dto.FollowUpDTO, error)
}

type SplitTicketExecutor interface {
	Execute(ctx context.Context, cmd SplitTicketCommand) (*SplitTicketResult, error)
}

type VoteTicketExecutor interface {
	Execute(ctx context.Context, cmd VoteTicketCommand) (*VoteTicketResult, error)
}

type GetTicketExecutor interface {
	Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDetailDTO, error)
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error)
}

type SetTicketActiveExecutor interface {
	Execute(ctx context.Context, cmd SetTicketActiveCommand) (*dto.TicketDTO, error)
}

type CreateApplicationExecutor interface {
	Execute(ctx context.Context, cmd CreateApplicationCommand) (*dto.ApplicationDTO, error)
}

type ListApplicationsExecutor interface {
	Execute(ctx context.Context) ([]dto.ApplicationDTO, error)
}

type ListStaffExecutor interface {
	Execute(ctx context.Context) ([]dto.UserDTO, error)
}
