package usecases

import (
	"context"
	"errors"

	"tickettracker/internal/application/ticket/dto"
	"tickettracker/internal/domain/ticket"
	vo "tickettracker/internal/domain/ticket/valueobjects"
	"tickettracker/internal/domain/user"
	"tickettracker/internal/shared/authorization"
	"tickettracker/internal/shared/constants"
	"tickettracker/internal/shared/logger"
	"tickettracker/internal/shared/utils"
)

type ListTicketsQuery struct {
	Viewer          *user.User `json:"-"`
	View            string     `json:"view" validate:"omitempty,oneof=open closed"`
	Status          string     `json:"status" validate:"omitempty,oneof=new accepted assigned re-opened closed duplicate split"`
	Type            string     `json:"ticket_type" validate:"omitempty,oneof=feature bug task"`
	Priority        int        `json:"priority" validate:"omitempty,gte=1,lte=5"`
	Application     string     `json:"application"`
	AssignedTo      string     `json:"assigned_to"`
	SubmittedBy     string     `json:"submitted_by"`
	Owner           string     `json:"owner"`
	Query           string     `json:"q" validate:"max=200"`
	Tag             string     `json:"tag"`
	IncludeInactive bool       `json:"include_inactive"`
	Page            int        `json:"page"`
	PageSize        int        `json:"page_size"`
}

type ListTicketsResult struct {
	Tickets  []dto.TicketDTO `json:"tickets"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

type ListTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	userRepo   user.Repository
	policy     *authorization.TicketPolicy
	logger     logger.Interface
}

func NewListTicketsUseCase(
	ticketRepo ticket.TicketRepository,
	userRepo user.Repository,
	policy *authorization.TicketPolicy,
	logger logger.Interface,
) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		policy:     policy,
		logger:     logger,
	}
}

// errUnknownUser short-circuits a list whose user filter matches nobody.
var errUnknownUser = errors.New("unknown user in filter")

func (uc *ListTicketsUseCase) Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error) {
	uc.logger.Debugw("executing list tickets use case", "user_id", actorID(query.Viewer), "view", query.View)

	if err := utils.ValidateStruct(query); err != nil {
		return nil, err
	}

	page := utils.ValidatePagination(query.Page, query.PageSize)
	result := &ListTicketsResult{Tickets: []dto.TicketDTO{}, Page: page.Page, PageSize: page.PageSize}

	filter, err := uc.buildFilter(ctx, query)
	if errors.Is(err, errUnknownUser) {
		return result, nil
	}
	if err != nil {
		return nil, err
	}
	filter.Page = page.Page
	filter.PageSize = page.PageSize

	var tickets []*ticket.Ticket
	if query.IncludeInactive && allowed(uc.policy, query.Viewer, authorization.ActionListInactive, nil) {
		tickets, result.Total, err = uc.ticketRepo.ListAll(ctx, filter)
	} else {
		tickets, result.Total, err = uc.ticketRepo.ListActive(ctx, filter)
	}
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "error", err)
		return nil, err
	}

	result.Tickets = dto.ToTicketDTOList(tickets)
	return result, nil
}

func (uc *ListTicketsUseCase) buildFilter(ctx context.Context, query ListTicketsQuery) (ticket.TicketFilter, error) {
	filter := ticket.TicketFilter{
		ApplicationSlug: query.Application,
		Query:           query.Query,
		Tag:             query.Tag,
	}

	switch {
	case query.Status != "":
		filter.Statuses = []vo.TicketStatus{vo.TicketStatus(query.Status)}
	case query.View == constants.ViewOpen:
		filter.Statuses = vo.OpenStatuses
	case query.View == constants.ViewClosed:
		filter.Statuses = vo.ClosedStatuses
	}
	if query.Type != "" {
		tt := vo.TicketType(query.Type)
		filter.Type = &tt
	}
	if query.Priority != 0 {
		p := vo.Priority(query.Priority)
		filter.Priority = &p
	}

	var err error
	if filter.AssignedToID, err = uc.resolveUser(ctx, query.AssignedTo); err != nil {
		return filter, err
	}
	if filter.SubmittedByID, err = uc.resolveUser(ctx, query.SubmittedBy); err != nil {
		return filter, err
	}
	if filter.OwnerID, err = uc.resolveUser(ctx, query.Owner); err != nil {
		return filter, err
	}
	return filter, nil
}

func (uc *ListTicketsUseCase) resolveUser(ctx context.Context, username string) (*uint, error) {
	if username == "" {
		return nil, nil
	}
	u, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, errUnknownUser
		}
		return nil, err
	}
	id := u.ID()
	return &id, nil
}
