package usecases

import (
	"context"

	"tickettracker/internal/domain/ticket"
	vo "tickettracker/internal/domain/ticket/valueobjects"
	"tickettracker/internal/domain/user"
	"tickettracker/internal/shared/authorization"
	"tickettracker/internal/shared/db"
	"tickettracker/internal/shared/logger"
	"tickettracker/internal/shared/utils"
)

type VoteTicketCommand struct {
	Actor     *user.User       `json:"-"`
	TicketID  uint             `json:"-"`
	Direction vo.VoteDirection `json:"direction" validate:"required,oneof=up down"`
}

type VoteTicketResult struct {
	TicketID uint `json:"ticket_id"`
	Votes    int  `json:"votes"`
	// Counted is false when the user had already voted this way.
	Counted bool `json:"counted"`
}

// VoteTicketUseCase counts at most one vote per user, ticket and direction.
// Repeats are silent no-ops.
type VoteTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	voteRepo   ticket.VoteRepository
	txMgr      db.Transactor
	policy     *authorization.TicketPolicy
	logger     logger.Interface
}

func NewVoteTicketUseCase(
	ticketRepo ticket.TicketRepository,
	voteRepo ticket.VoteRepository,
	txMgr db.Transactor,
	policy *authorization.TicketPolicy,
	logger logger.Interface,
) *VoteTicketUseCase {
	return &VoteTicketUseCase{
		ticketRepo: ticketRepo,
		voteRepo:   voteRepo,
		txMgr:      txMgr,
		policy:     policy,
		logger:     logger,
	}
}

func (uc *VoteTicketUseCase) Execute(ctx context.Context, cmd VoteTicketCommand) (*VoteTicketResult, error) {
	uc.logger.Infow("executing vote ticket use case",
		"ticket_id", cmd.TicketID,
		"user_id", actorID(cmd.Actor),
		"direction", string(cmd.Direction),
	)

	t, err := loadActiveTicket(ctx, uc.ticketRepo, cmd.TicketID)
	if err != nil {
		return nil, err
	}
	if err := authorize(uc.policy, cmd.Actor, authorization.ActionVote, t); err != nil {
		return nil, err
	}
	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	result := &VoteTicketResult{TicketID: t.ID(), Votes: t.Votes()}
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		recorded, err := uc.voteRepo.Record(txCtx, cmd.Actor.ID(), t.ID(), cmd.Direction)
		if err != nil || !recorded {
			return err
		}

		delta := 1
		if cmd.Direction == vo.VoteDown {
			delta = -1
		}
		votes, err := uc.ticketRepo.AdjustVotes(txCtx, t.ID(), delta)
		if err != nil {
			return err
		}
		result.Votes = votes
		result.Counted = true
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to record vote", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	if result.Counted {
		uc.logger.Infow("vote counted", "ticket_id", t.ID(), "votes", result.Votes)
	} else {
		uc.logger.Debugw("repeat vote ignored", "ticket_id", t.ID(), "user_id", cmd.Actor.ID())
	}
	return result, nil
}
