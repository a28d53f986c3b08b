package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tickettracker/internal/domain/ticket"
	vo "tickettracker/internal/domain/ticket/valueobjects"
	"tickettracker/internal/shared/authorization"
	"tickettracker/internal/shared/constants"
	apperrors "tickettracker/internal/shared/errors"
)

type listRecorder struct {
	repo        *mockTicketRepository
	filter      ticket.TicketFilter
	activeCalls int
	allCalls    int
}

func newListRecorder(t *testing.T) *listRecorder {
	r := &listRecorder{}
	rows := []*ticket.Ticket{newTicket(t, 1, vo.StatusNew)}
	r.repo = &mockTicketRepository{
		ListActiveFunc: func(_ context.Context, f ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
			r.activeCalls++
			r.filter = f
			return rows, 1, nil
		},
		ListAllFunc: func(_ context.Context, f ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
			r.allCalls++
			r.filter = f
			return rows, 1, nil
		},
	}
	return r
}

func TestListTicketsUseCase_Execute_Filters(t *testing.T) {
	rec := newListRecorder(t)
	users := newMockUserRepository(adminUser, submitterUser, staffMember)
	uc := NewListTicketsUseCase(rec.repo, users, authorization.NewTicketPolicy(), &mockLogger{})

	result, err := uc.Execute(context.Background(), ListTicketsQuery{
		View:        constants.ViewOpen,
		Type:        "bug",
		Priority:    2,
		Application: "web-portal",
		AssignedTo:  "staffer",
		SubmittedBy: "sub",
		Owner:       "admin",
		Query:       "crash",
		Tag:         "ui",
		Page:        2,
		PageSize:    500,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
	assert.Len(t, result.Tickets, 1)
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, constants.MaxPageSize, result.PageSize)

	f := rec.filter
	assert.Equal(t, vo.OpenStatuses, f.Statuses)
	assert.Equal(t, vo.TypeBug, *f.Type)
	assert.Equal(t, vo.PriorityHigh, *f.Priority)
	assert.Equal(t, "web-portal", f.ApplicationSlug)
	assert.Equal(t, staffMember.ID(), *f.AssignedToID)
	assert.Equal(t, submitterUser.ID(), *f.SubmittedByID)
	assert.Equal(t, adminUser.ID(), *f.OwnerID)
	assert.Equal(t, "crash", f.Query)
	assert.Equal(t, "ui", f.Tag)
	assert.Equal(t, 2, f.Page)
	assert.Equal(t, constants.MaxPageSize, f.PageSize)
}

func TestListTicketsUseCase_Execute_StatusOverridesView(t *testing.T) {
	rec := newListRecorder(t)
	uc := NewListTicketsUseCase(rec.repo, newMockUserRepository(), authorization.NewTicketPolicy(), &mockLogger{})

	_, err := uc.Execute(context.Background(), ListTicketsQuery{View: constants.ViewOpen, Status: "duplicate"})
	require.NoError(t, err)
	assert.Equal(t, []vo.TicketStatus{vo.StatusDuplicate}, rec.filter.Statuses)

	_, err = uc.Execute(context.Background(), ListTicketsQuery{View: constants.ViewClosed})
	require.NoError(t, err)
	assert.Equal(t, vo.ClosedStatuses, rec.filter.Statuses)

	_, err = uc.Execute(context.Background(), ListTicketsQuery{})
	require.NoError(t, err)
	assert.Empty(t, rec.filter.Statuses)
	assert.Equal(t, constants.DefaultPage, rec.filter.Page)
	assert.Equal(t, constants.DefaultPageSize, rec.filter.PageSize)
}

func TestListTicketsUseCase_Execute_UnknownUserYieldsEmptyList(t *testing.T) {
	for _, query := range []ListTicketsQuery{
		{AssignedTo: "ghost"},
		{SubmittedBy: "ghost"},
		{Owner: "ghost"},
	} {
		rec := newListRecorder(t)
		uc := NewListTicketsUseCase(rec.repo, newMockUserRepository(adminUser), authorization.NewTicketPolicy(), &mockLogger{})

		result, err := uc.Execute(context.Background(), query)

		require.NoError(t, err)
		assert.NotNil(t, result.Tickets)
		assert.Empty(t, result.Tickets)
		assert.Zero(t, result.Total)
		assert.Zero(t, rec.activeCalls+rec.allCalls)
	}
}

func TestListTicketsUseCase_Execute_IncludeInactive(t *testing.T) {
	tests := []struct {
		name    string
		query   ListTicketsQuery
		wantAll bool
	}{
		{"admin with flag", ListTicketsQuery{Viewer: adminUser, IncludeInactive: true}, true},
		{"admin without flag", ListTicketsQuery{Viewer: adminUser}, false},
		{"user with flag", ListTicketsQuery{Viewer: otherUser, IncludeInactive: true}, false},
		{"anonymous with flag", ListTicketsQuery{IncludeInactive: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := newListRecorder(t)
			uc := NewListTicketsUseCase(rec.repo, newMockUserRepository(), authorization.NewTicketPolicy(), &mockLogger{})

			_, err := uc.Execute(context.Background(), tt.query)

			require.NoError(t, err)
			if tt.wantAll {
				assert.Equal(t, 1, rec.allCalls)
				assert.Zero(t, rec.activeCalls)
			} else {
				assert.Equal(t, 1, rec.activeCalls)
				assert.Zero(t, rec.allCalls)
			}
		})
	}
}

func TestListTicketsUseCase_Execute_InvalidQuery(t *testing.T) {
	uc := NewListTicketsUseCase(newListRecorder(t).repo, newMockUserRepository(), authorization.NewTicketPolicy(), &mockLogger{})

	for _, query := range []ListTicketsQuery{
		{View: "everything"},
		{Status: "pending"},
		{Type: "epic"},
		{Priority: 9},
	} {
		_, err := uc.Execute(context.Background(), query)
		assert.True(t, apperrors.IsValidationError(err), "query %+v", query)
	}
}
