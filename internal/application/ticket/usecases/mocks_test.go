package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tickettracker/internal/domain/shared/events"
	"tickettracker/internal/domain/ticket"
	vo "tickettracker/internal/domain/ticket/valueobjects"
	"tickettracker/internal/domain/user"
	"tickettracker/internal/shared/authorization"
	"tickettracker/internal/shared/logger"
)

type mockTicketRepository struct {
	SaveFunc          func(ctx context.Context, t *ticket.Ticket) error
	UpdateFunc        func(ctx context.Context, t *ticket.Ticket) error
	GetActiveByIDFunc func(ctx context.Context, id uint) (*ticket.Ticket, error)
	GetByIDFunc       func(ctx context.Context, id uint) (*ticket.Ticket, error)
	ListActiveFunc    func(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error)
	ListAllFunc       func(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error)
	ListChildrenFunc  func(ctx context.Context, parentID uint) ([]*ticket.Ticket, error)
	AdjustVotesFunc   func(ctx context.Context, id uint, delta int) (int, error)

	nextID  uint
	Saved   []*ticket.Ticket
	Updated []*ticket.Ticket
}

func (m *mockTicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, t)
	}
	if m.nextID == 0 {
		m.nextID = 100
	}
	m.nextID++
	m.Saved = append(m.Saved, t)
	return t.SetID(m.nextID)
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	m.Updated = append(m.Updated, t)
	return nil
}

func (m *mockTicketRepository) GetActiveByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	if m.GetActiveByIDFunc != nil {
		return m.GetActiveByIDFunc(ctx, id)
	}
	return nil, fmt.Errorf("ticket %d: %w", id, ticket.ErrTicketNotFound)
}

func (m *mockTicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return m.GetActiveByID(ctx, id)
}

func (m *mockTicketRepository) ListActive(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockTicketRepository) ListAll(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockTicketRepository) ListChildren(ctx context.Context, parentID uint) ([]*ticket.Ticket, error) {
	if m.ListChildrenFunc != nil {
		return m.ListChildrenFunc(ctx, parentID)
	}
	return nil, nil
}

func (m *mockTicketRepository) AdjustVotes(ctx context.Context, id uint, delta int) (int, error) {
	if m.AdjustVotesFunc != nil {
		return m.AdjustVotesFunc(ctx, id, delta)
	}
	return 0, nil
}

// withTickets serves the given tickets from both lookups.
func withTickets(tickets ...*ticket.Ticket) *mockTicketRepository {
	byID := make(map[uint]*ticket.Ticket, len(tickets))
	for _, t := range tickets {
		byID[t.ID()] = t
	}
	get := func(activeOnly bool) func(context.Context, uint) (*ticket.Ticket, error) {
		return func(_ context.Context, id uint) (*ticket.Ticket, error) {
			t, ok := byID[id]
			if !ok || (activeOnly && !t.IsActive()) {
				return nil, fmt.Errorf("ticket %d: %w", id, ticket.ErrTicketNotFound)
			}
			return t, nil
		}
	}
	return &mockTicketRepository{
		GetActiveByIDFunc: get(true),
		GetByIDFunc:       get(false),
	}
}

type mockFollowUpRepository struct {
	SaveFunc       func(ctx context.Context, f *ticket.FollowUp) error
	ListPublicFunc func(ctx context.Context, ticketID uint) ([]*ticket.FollowUp, error)
	ListAllFunc    func(ctx context.Context, ticketID uint) ([]*ticket.FollowUp, error)

	Saved []*ticket.FollowUp
}

func (m *mockFollowUpRepository) Save(ctx context.Context, f *ticket.FollowUp) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, f)
	}
	m.Saved = append(m.Saved, f)
	return f.SetID(uint(len(m.Saved)))
}

func (m *mockFollowUpRepository) ListPublic(ctx context.Context, ticketID uint) ([]*ticket.FollowUp, error) {
	if m.ListPublicFunc != nil {
		return m.ListPublicFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockFollowUpRepository) ListAll(ctx context.Context, ticketID uint) ([]*ticket.FollowUp, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx, ticketID)
	}
	return nil, nil
}

type mockDuplicateRepository struct {
	SaveFunc             func(ctx context.Context, d *ticket.Duplicate) error
	ListDuplicatesOfFunc func(ctx context.Context, ticketID uint) ([]*ticket.Duplicate, error)
	ListOriginalsOfFunc  func(ctx context.Context, ticketID uint) ([]*ticket.Duplicate, error)

	Saved []*ticket.Duplicate
}

func (m *mockDuplicateRepository) Save(ctx context.Context, d *ticket.Duplicate) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, d)
	}
	m.Saved = append(m.Saved, d)
	d.SetID(uint(len(m.Saved)))
	return nil
}

func (m *mockDuplicateRepository) ListDuplicatesOf(ctx context.Context, ticketID uint) ([]*ticket.Duplicate, error) {
	if m.ListDuplicatesOfFunc != nil {
		return m.ListDuplicatesOfFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockDuplicateRepository) ListOriginalsOf(ctx context.Context, ticketID uint) ([]*ticket.Duplicate, error) {
	if m.ListOriginalsOfFunc != nil {
		return m.ListOriginalsOfFunc(ctx, ticketID)
	}
	return nil, nil
}

// mockVoteRepository remembers recorded votes like the unique index does.
type mockVoteRepository struct {
	RecordFunc func(ctx context.Context, userID, ticketID uint, direction vo.VoteDirection) (bool, error)

	seen map[string]bool
}

func (m *mockVoteRepository) Record(ctx context.Context, userID, ticketID uint, direction vo.VoteDirection) (bool, error) {
	if m.RecordFunc != nil {
		return m.RecordFunc(ctx, userID, ticketID, direction)
	}
	if m.seen == nil {
		m.seen = map[string]bool{}
	}
	key := fmt.Sprintf("%d/%d/%s", userID, ticketID, direction)
	if m.seen[key] {
		return false, nil
	}
	m.seen[key] = true
	return true, nil
}

func (m *mockVoteRepository) HasVoted(_ context.Context, userID, ticketID uint, direction vo.VoteDirection) (bool, error) {
	return m.seen[fmt.Sprintf("%d/%d/%s", userID, ticketID, direction)], nil
}

type mockApplicationRepository struct {
	SaveFunc    func(ctx context.Context, app *ticket.Application) error
	GetByIDFunc func(ctx context.Context, id uint) (*ticket.Application, error)
	ListFunc    func(ctx context.Context) ([]*ticket.Application, error)
}

func (m *mockApplicationRepository) Save(ctx context.Context, app *ticket.Application) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, app)
	}
	app.SetID(1)
	return nil
}

// GetByID knows applications 1 and 2 unless overridden.
func (m *mockApplicationRepository) GetByID(ctx context.Context, id uint) (*ticket.Application, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	if id == 1 || id == 2 {
		return ticket.ReconstructApplication(id, fmt.Sprintf("App %d", id), fmt.Sprintf("app-%d", id)), nil
	}
	return nil, fmt.Errorf("application %d: %w", id, ticket.ErrApplicationNotFound)
}

func (m *mockApplicationRepository) GetBySlug(ctx context.Context, slug string) (*ticket.Application, error) {
	return nil, ticket.ErrApplicationNotFound
}

func (m *mockApplicationRepository) List(ctx context.Context) ([]*ticket.Application, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

type mockUserRepository struct {
	users map[uint]*user.User
}

func newMockUserRepository(users ...*user.User) *mockUserRepository {
	m := &mockUserRepository{users: map[uint]*user.User{}}
	for _, u := range users {
		m.users[u.ID()] = u
	}
	return m
}

func (m *mockUserRepository) Create(_ context.Context, u *user.User) error {
	if err := u.SetID(uint(len(m.users) + 1)); err != nil {
		return err
	}
	m.users[u.ID()] = u
	return nil
}

func (m *mockUserRepository) GetByID(_ context.Context, id uint) (*user.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("user %d: %w", id, user.ErrUserNotFound)
}

func (m *mockUserRepository) GetByUsername(_ context.Context, username string) (*user.User, error) {
	for _, u := range m.users {
		if u.Username() == username {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", username, user.ErrUserNotFound)
}

func (m *mockUserRepository) ListStaff(_ context.Context) ([]*user.User, error) {
	var out []*user.User
	for _, u := range m.users {
		if u.IsStaff() {
			out = append(out, u)
		}
	}
	return out, nil
}

// mockTransactor runs fn directly. A non-nil Err aborts before fn.
type mockTransactor struct {
	Calls int
	Err   error
}

func (m *mockTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	if m.Err != nil {
		return m.Err
	}
	return fn(ctx)
}

type mockEventPublisher struct {
	PublishAllFunc func(ctx context.Context, evts []events.DomainEvent) error

	Published []events.DomainEvent
}

func (m *mockEventPublisher) PublishAll(ctx context.Context, evts []events.DomainEvent) error {
	m.Published = append(m.Published, evts...)
	if m.PublishAllFunc != nil {
		return m.PublishAllFunc(ctx, evts)
	}
	return nil
}

func (m *mockEventPublisher) types() []string {
	out := make([]string, 0, len(m.Published))
	for _, e := range m.Published {
		out = append(out, e.GetEventType())
	}
	return out
}

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)           {}
func (m *mockLogger) Info(msg string, args ...any)            {}
func (m *mockLogger) Warn(msg string, args ...any)            {}
func (m *mockLogger) Error(msg string, args ...any)           {}
func (m *mockLogger) With(args ...any) logger.Interface       { return m }
func (m *mockLogger) Named(name string) logger.Interface      { return m }
func (m *mockLogger) Debugw(msg string, keysAndValues ...any) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...any)  {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...any)  {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...any) {}

// Fixture users. Groups are fixed at construction, as the user repository
// would load them for one request.
var (
	adminUser     = user.ReconstructUser(1, "admin", "admin@example.com", "Ada", "Admin", true, false, true, []string{authorization.GroupAdmin}, time.Now())
	superUser     = user.ReconstructUser(2, "root", "root@example.com", "", "", false, true, true, nil, time.Now())
	submitterUser = user.ReconstructUser(3, "sub", "sub@example.com", "Sam", "Submitter", false, false, true, nil, time.Now())
	otherUser     = user.ReconstructUser(4, "other", "other@example.com", "", "", false, false, true, nil, time.Now())
	staffMember   = user.ReconstructUser(5, "staffer", "staff@example.com", "Stu", "Staff", true, false, true, nil, time.Now())
)

// newTicket builds a persisted ticket submitted by submitterUser.
func newTicket(t *testing.T, id uint, status vo.TicketStatus) *ticket.Ticket {
	t.Helper()
	submitter := submitterUser.ID()
	tk, err := ticket.ReconstructTicket(
		id,
		ticket.Fields{
			Title:         fmt.Sprintf("Ticket %d", id),
			Description:   "something broke",
			Type:          vo.TypeBug,
			Priority:      vo.PriorityNormal,
			ApplicationID: 1,
			Tags:          []string{"ui"},
		},
		"<p>something broke</p>",
		status,
		&submitter,
		nil,
		nil,
		0,
		true,
		time.Now().Add(-time.Hour),
		time.Now().Add(-time.Hour),
	)
	require.NoError(t, err)
	return tk
}
