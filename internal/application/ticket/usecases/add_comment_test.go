package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tickettracker/internal/domain/ticket"
	vo "tickettracker/internal/domain/ticket/valueobjects"
	"tickettracker/internal/domain/user"
	"tickettracker/internal/shared/authorization"
	apperrors "tickettracker/internal/shared/errors"
)

func TestAddCommentUseCase_Execute_PrivateFlag(t *testing.T) {
	tests := []struct {
		name        string
		actor       *user.User
		private     bool
		wantPrivate bool
	}{
		{"submitter may comment privately", submitterUser, true, true},
		{"admin may comment privately", adminUser, true, true},
		{"superuser may comment privately", superUser, true, true},
		{"other user private flag is dropped", otherUser, true, false},
		{"public comment", otherUser, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := newTicket(t, 12, vo.StatusAccepted)
			followUps := &mockFollowUpRepository{}
			publisher := &mockEventPublisher{}
			uc := NewAddCommentUseCase(withTickets(tk), followUps, publisher, authorization.NewTicketPolicy(), &mockLogger{})

			result, err := uc.Execute(context.Background(), AddCommentCommand{
				Actor:    tt.actor,
				TicketID: 12,
				Comment:  "see ticket: 3",
				Private:  tt.private,
			})

			require.NoError(t, err)
			assert.Equal(t, tt.wantPrivate, result.Private)
			assert.Equal(t, vo.ActionNone.String(), result.Action)
			require.Len(t, followUps.Saved, 1)
			assert.Equal(t, tt.wantPrivate, followUps.Saved[0].IsPrivate())
			assert.Equal(t, vo.StatusAccepted, tk.Status(), "comments never change status")

			require.Len(t, publisher.Published, 1)
			evt, ok := publisher.Published[0].(*ticket.TicketEvent)
			require.True(t, ok)
			assert.Equal(t, ticket.EventTicketCommented, evt.GetEventType())
			assert.Equal(t, tt.wantPrivate, evt.Private)
		})
	}
}

func TestAddCommentUseCase_Execute_Errors(t *testing.T) {
	tk := newTicket(t, 12, vo.StatusNew)
	uc := NewAddCommentUseCase(withTickets(tk), &mockFollowUpRepository{}, &mockEventPublisher{}, authorization.NewTicketPolicy(), &mockLogger{})

	_, err := uc.Execute(context.Background(), AddCommentCommand{Actor: otherUser, TicketID: 12, Comment: "   "})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))

	_, err = uc.Execute(context.Background(), AddCommentCommand{TicketID: 12, Comment: "hello"})
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorizedError(err))

	_, err = uc.Execute(context.Background(), AddCommentCommand{Actor: otherUser, TicketID: 13, Comment: "hello"})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
}
