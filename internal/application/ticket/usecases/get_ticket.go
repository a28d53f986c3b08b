package usecases

import (
	"context"

	"tickettracker/internal/application/ticket/dto"
	"tickettracker/internal/domain/ticket"
	"tickettracker/internal/domain/user"
	"tickettracker/internal/shared/authorization"
	apperrors "tickettracker/internal/shared/errors"
	"tickettracker/internal/shared/logger"
)

type GetTicketQuery struct {
	// Viewer is nil for anonymous requests.
	Viewer   *user.User
	TicketID uint
}

// GetTicketUseCase assembles the read view of a ticket. Private follow-ups
// are included only for admins and the submitter.
type GetTicketUseCase struct {
	ticketRepo    ticket.TicketRepository
	followUpRepo  ticket.FollowUpRepository
	duplicateRepo ticket.DuplicateRepository
	policy        *authorization.TicketPolicy
	logger        logger.Interface
}

func NewGetTicketUseCase(
	ticketRepo ticket.TicketRepository,
	followUpRepo ticket.FollowUpRepository,
	duplicateRepo ticket.DuplicateRepository,
	policy *authorization.TicketPolicy,
	logger logger.Interface,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo:    ticketRepo,
		followUpRepo:  followUpRepo,
		duplicateRepo: duplicateRepo,
		policy:        policy,
		logger:        logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDetailDTO, error) {
	uc.logger.Debugw("executing get ticket use case", "ticket_id", query.TicketID, "user_id", actorID(query.Viewer))

	includeInactive := allowed(uc.policy, query.Viewer, authorization.ActionListInactive, nil)
	t, err := loadTicket(ctx, uc.ticketRepo, query.TicketID, includeInactive)
	if err != nil {
		return nil, err
	}

	var followUps []*ticket.FollowUp
	if allowed(uc.policy, query.Viewer, authorization.ActionViewPrivate, t) {
		followUps, err = uc.followUpRepo.ListAll(ctx, t.ID())
	} else {
		followUps, err = uc.followUpRepo.ListPublic(ctx, t.ID())
	}
	if err != nil {
		uc.logger.Errorw("failed to load follow-ups", "ticket_id", t.ID(), "error", err)
		return nil, err
	}

	duplicates, err := uc.duplicateRepo.ListDuplicatesOf(ctx, t.ID())
	if err != nil {
		return nil, err
	}
	originals, err := uc.duplicateRepo.ListOriginalsOf(ctx, t.ID())
	if err != nil {
		return nil, err
	}
	children, err := uc.ticketRepo.ListChildren(ctx, t.ID())
	if err != nil {
		return nil, err
	}
	if !includeInactive {
		children = activeOnly(children)
	}

	detail := &dto.TicketDetailDTO{
		Ticket:     dto.ToTicketDTO(t),
		FollowUps:  dto.ToFollowUpDTOList(followUps),
		Duplicates: dto.ToDuplicateDTOList(duplicates),
		Originals:  dto.ToDuplicateDTOList(originals),
		Children:   dto.ToTicketDTOList(children),
		Permissions: dto.Permissions{
			CanEdit:           allowed(uc.policy, query.Viewer, authorization.ActionEdit, t),
			CanAdminister:     allowed(uc.policy, query.Viewer, authorization.ActionClose, t),
			CanCommentPrivate: allowed(uc.policy, query.Viewer, authorization.ActionCommentPrivate, t),
			CanVote:           allowed(uc.policy, query.Viewer, authorization.ActionVote, t),
		},
	}

	if parentID := t.ParentID(); parentID != nil {
		parent, err := loadTicket(ctx, uc.ticketRepo, *parentID, includeInactive)
		switch {
		case err == nil:
			p := dto.ToTicketDTO(parent)
			detail.Parent = &p
		case !apperrors.IsNotFoundError(err):
			return nil, err
		}
	}

	return detail, nil
}

func activeOnly(tickets []*ticket.Ticket) []*ticket.Ticket {
	out := make([]*ticket.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if t.IsActive() {
			out = append(out, t)
		}
	}
	return out
}
