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

// SplitChildInput describes one of the two tickets a split produces. Empty
// fields are taken from the parent.
type SplitChildInput struct {
	Title         string `json:"title" validate:"max=80"`
	Description   string `json:"description" validate:"required"`
	Status        string `json:"status" validate:"omitempty,oneof=new accepted assigned re-opened"`
	Type          string `json:"ticket_type" validate:"omitempty,oneof=feature bug task"`
	Priority      int    `json:"priority" validate:"omitempty,gte=1,lte=5"`
	ApplicationID uint   `json:"application"`
	AssignedToID  *uint  `json:"assigned_to"`
}

type SplitTicketCommand struct {
	Actor    *user.User        `json:"-"`
	TicketID uint              `json:"-"`
	Comment  string            `json:"comment" validate:"required"`
	Children []SplitChildInput `json:"children" validate:"len=2,dive"`
}

type SplitTicketResult struct {
	Parent   dto.TicketDTO   `json:"parent"`
	Children []dto.TicketDTO `json:"children"`
}

// SplitTicketUseCase replaces a ticket with two children and closes it.
type SplitTicketUseCase struct {
	ticketRepo   ticket.TicketRepository
	followUpRepo ticket.FollowUpRepository
	appRepo      ticket.ApplicationRepository
	userRepo     user.Repository
	txMgr        db.Transactor
	publisher    events.EventPublisher
	policy       *authorization.TicketPolicy
	logger       logger.Interface
}

func NewSplitTicketUseCase(
	ticketRepo ticket.TicketRepository,
	followUpRepo ticket.FollowUpRepository,
	appRepo ticket.ApplicationRepository,
	userRepo user.Repository,
	txMgr db.Transactor,
	publisher events.EventPublisher,
	policy *authorization.TicketPolicy,
	logger logger.Interface,
) *SplitTicketUseCase {
	return &SplitTicketUseCase{
		ticketRepo:   ticketRepo,
		followUpRepo: followUpRepo,
		appRepo:      appRepo,
		userRepo:     userRepo,
		txMgr:        txMgr,
		publisher:    publisher,
		policy:       policy,
		logger:       logger,
	}
}

func (uc *SplitTicketUseCase) Execute(ctx context.Context, cmd SplitTicketCommand) (*SplitTicketResult, error) {
	uc.logger.Infow("executing split ticket use case", "ticket_id", cmd.TicketID, "user_id", actorID(cmd.Actor))

	parent, err := loadActiveTicket(ctx, uc.ticketRepo, cmd.TicketID)
	if err != nil {
		return nil, err
	}
	if err := authorize(uc.policy, cmd.Actor, authorization.ActionSplit, parent); err != nil {
		uc.logger.Warnw("ticket split denied", "ticket_id", cmd.TicketID, "user_id", actorID(cmd.Actor))
		return nil, err
	}
	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	children := make([]*ticket.Ticket, 0, len(cmd.Children))
	for _, in := range cmd.Children {
		child, err := uc.buildChild(ctx, parent, in)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}

	parent.MarkSplit(cmd.Actor.ID())

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		for _, child := range children {
			if err := uc.ticketRepo.Save(txCtx, child); err != nil {
				return fmt.Errorf("failed to save split ticket: %w", err)
			}
			child.RecordCreated(cmd.Actor.ID())
		}
		if err := uc.ticketRepo.Update(txCtx, parent); err != nil {
			return err
		}
		_, err := saveFollowUp(txCtx, uc.followUpRepo, parent, cmd.Actor, cmd.Comment, vo.ActionSplit, false)
		return err
	})
	if err != nil {
		uc.logger.Errorw("failed to split ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	publishEvents(ctx, uc.publisher, uc.logger, append([]*ticket.Ticket{parent}, children...)...)
	uc.logger.Infow("ticket split successfully",
		"ticket_id", cmd.TicketID,
		"child_ids", []uint{children[0].ID(), children[1].ID()},
	)

	return &SplitTicketResult{
		Parent:   dto.ToTicketDTO(parent),
		Children: dto.ToTicketDTOList(children),
	}, nil
}

func (uc *SplitTicketUseCase) buildChild(ctx context.Context, parent *ticket.Ticket, in SplitChildInput) (*ticket.Ticket, error) {
	if in.ApplicationID != 0 {
		if err := validApplication(ctx, uc.appRepo, in.ApplicationID); err != nil {
			return nil, err
		}
	}
	if in.AssignedToID != nil {
		if _, err := staffUser(ctx, uc.userRepo, *in.AssignedToID); err != nil {
			return nil, err
		}
	}

	child, err := parent.NewChild(ticket.ChildSpec{
		Title:         in.Title,
		Description:   in.Description,
		Status:        vo.TicketStatus(in.Status),
		Type:          vo.TicketType(in.Type),
		Priority:      vo.Priority(in.Priority),
		ApplicationID: in.ApplicationID,
		AssignedToID:  in.AssignedToID,
	})
	if err != nil {
		return nil, domainError(err)
	}
	return child, nil
}
