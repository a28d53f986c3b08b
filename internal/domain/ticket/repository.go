package ticket

import (
	"context"

	vo "tickettracker/internal/domain/ticket/valueobjects"
)

// TicketRepository exposes active and all-ticket reads as separate methods so
// every caller states which visibility it wants.
type TicketRepository interface {
	Save(ctx context.Context, ticket *Ticket) error
	Update(ctx context.Context, ticket *Ticket) error
	// GetActiveByID resolves only active tickets.
	GetActiveByID(ctx context.Context, id uint) (*Ticket, error)
	// GetByID resolves a ticket regardless of its active flag.
	GetByID(ctx context.Context, id uint) (*Ticket, error)
	ListActive(ctx context.Context, filter TicketFilter) ([]*Ticket, int64, error)
	ListAll(ctx context.Context, filter TicketFilter) ([]*Ticket, int64, error)
	ListChildren(ctx context.Context, parentID uint) ([]*Ticket, error)
	// AdjustVotes adds delta to the stored counter, flooring at zero, and
	// returns the new value.
	AdjustVotes(ctx context.Context, id uint, delta int) (int, error)
}

// TicketFilter narrows ticket lists. Zero values do not filter.
type TicketFilter struct {
	Statuses        []vo.TicketStatus
	Type            *vo.TicketType
	Priority        *vo.Priority
	ApplicationSlug string
	AssignedToID    *uint
	SubmittedByID   *uint
	// OwnerID matches tickets submitted by or assigned to the user.
	OwnerID  *uint
	Query    string
	Tag      string
	Page     int
	PageSize int
}

// FollowUpRepository keeps public and all-comment reads apart. Both return
// newest first.
type FollowUpRepository interface {
	Save(ctx context.Context, followUp *FollowUp) error
	ListPublic(ctx context.Context, ticketID uint) ([]*FollowUp, error)
	ListAll(ctx context.Context, ticketID uint) ([]*FollowUp, error)
}

type DuplicateRepository interface {
	Save(ctx context.Context, dup *Duplicate) error
	// ListDuplicatesOf returns the links whose original is ticketID.
	ListDuplicatesOf(ctx context.Context, ticketID uint) ([]*Duplicate, error)
	// ListOriginalsOf returns the links declared by ticketID.
	ListOriginalsOf(ctx context.Context, ticketID uint) ([]*Duplicate, error)
}

// VoteRepository records one row per (user, ticket, direction).
type VoteRepository interface {
	// Record returns true only when the row did not exist before.
	Record(ctx context.Context, userID, ticketID uint, direction vo.VoteDirection) (bool, error)
	HasVoted(ctx context.Context, userID, ticketID uint, direction vo.VoteDirection) (bool, error)
}

type ApplicationRepository interface {
	Save(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id uint) (*Application, error)
	GetBySlug(ctx context.Context, slug string) (*Application, error)
	List(ctx context.Context) ([]*Application, error)
}
