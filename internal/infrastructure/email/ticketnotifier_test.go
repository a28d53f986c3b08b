package email

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tickettracker/internal/domain/shared/events"
	"tickettracker/internal/domain/ticket"
	vo "tickettracker/internal/domain/ticket/valueobjects"
	"tickettracker/internal/domain/user"
	"tickettracker/internal/shared/logger"
)

type sentMail struct {
	to, subject, html, plain string
}

type fakeSender struct {
	sent []sentMail
	err  error
}

func (f *fakeSender) Send(to, subject, htmlBody, plainBody string) error {
	f.sent = append(f.sent, sentMail{to, subject, htmlBody, plainBody})
	return f.err
}

type fakeUsers struct {
	users map[uint]*user.User
}

func (f *fakeUsers) Create(context.Context, *user.User) error { return nil }
func (f *fakeUsers) GetByID(_ context.Context, id uint) (*user.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("user %d: %w", id, user.ErrUserNotFound)
}
func (f *fakeUsers) GetByUsername(context.Context, string) (*user.User, error) {
	return nil, user.ErrUserNotFound
}
func (f *fakeUsers) ListStaff(context.Context) ([]*user.User, error) { return nil, nil }

func newNotifier(sender Sender) *TicketNotifier {
	users := &fakeUsers{users: map[uint]*user.User{
		1: user.ReconstructUser(1, "admin", "admin@example.com", "", "", true, false, true, nil, time.Now()),
		3: user.ReconstructUser(3, "sub", "sub@example.com", "Sam", "Submitter", false, false, true, nil, time.Now()),
		5: user.ReconstructUser(5, "staffer", "staff@example.com", "", "", true, false, true, nil, time.Now()),
		6: user.ReconstructUser(6, "nomail", "", "", "", true, false, true, nil, time.Now()),
	}}
	n := NewTicketNotifier(sender, users, "https://tickets.example.com/", logger.NewLogger())
	n.dispatch = func(_ string, fn func()) { fn() }
	return n
}

func ticketEvent(t *testing.T, eventType string, status vo.TicketStatus, assignee *uint, actorID uint) *ticket.TicketEvent {
	submitter := uint(3)
	tk, err := ticket.ReconstructTicket(12,
		ticket.Fields{Title: "Login <broken>", Description: "d", Type: vo.TypeBug, Priority: vo.PriorityNormal, ApplicationID: 1},
		"", status, &submitter, assignee, nil, 0, true, time.Now(), time.Now())
	require.NoError(t, err)
	return ticket.NewTicketEvent(eventType, tk, actorID)
}

func ptr(v uint) *uint { return &v }

func TestTicketNotifier_Recipients(t *testing.T) {
	tests := []struct {
		name   string
		event  *ticket.TicketEvent
		wantTo string
	}{
		{"assigned mails assignee", ticketEvent(t, ticket.EventTicketAssigned, vo.StatusAssigned, ptr(5), 1), "staff@example.com"},
		{"closed mails submitter", ticketEvent(t, ticket.EventTicketClosed, vo.StatusClosed, nil, 1), "sub@example.com"},
		{"reopened mails submitter", ticketEvent(t, ticket.EventTicketReopened, vo.StatusReopened, nil, 1), "sub@example.com"},
		{"self assignment is silent", ticketEvent(t, ticket.EventTicketAssigned, vo.StatusAssigned, ptr(1), 1), ""},
		{"submitter closing own ticket is silent", ticketEvent(t, ticket.EventTicketClosed, vo.StatusClosed, nil, 3), ""},
		{"assignee without email is silent", ticketEvent(t, ticket.EventTicketAssigned, vo.StatusAssigned, ptr(6), 1), ""},
		{"created is ignored", ticketEvent(t, ticket.EventTicketCreated, vo.StatusNew, nil, 1), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &fakeSender{}
			require.NoError(t, newNotifier(sender).Handle(context.Background(), tt.event))

			if tt.wantTo == "" {
				assert.Empty(t, sender.sent)
				return
			}
			require.Len(t, sender.sent, 1)
			assert.Equal(t, tt.wantTo, sender.sent[0].to)
			assert.Contains(t, sender.sent[0].subject, "[Ticket #12]")
			assert.Contains(t, sender.sent[0].plain, "https://tickets.example.com/tickets/12")
			assert.Contains(t, sender.sent[0].html, "Login &lt;broken&gt;")
		})
	}
}

func TestTicketNotifier_SendFailureIsSwallowed(t *testing.T) {
	sender := &fakeSender{err: errors.New("smtp down")}
	err := newNotifier(sender).Handle(context.Background(), ticketEvent(t, ticket.EventTicketClosed, vo.StatusClosed, nil, 1))
	assert.NoError(t, err)
	assert.Len(t, sender.sent, 1)
}

func TestTicketNotifier_UnknownRecipient(t *testing.T) {
	err := newNotifier(&fakeSender{}).Handle(context.Background(), ticketEvent(t, ticket.EventTicketAssigned, vo.StatusAssigned, ptr(99), 1))
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestTicketNotifier_IgnoresForeignEvents(t *testing.T) {
	sender := &fakeSender{}
	err := newNotifier(sender).Handle(context.Background(), events.NewBaseEvent("1", ticket.EventTicketClosed, time.Now()))
	assert.NoError(t, err)
	assert.Empty(t, sender.sent)
}
