package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"tickettracker/internal/domain/ticket"
	vo "tickettracker/internal/domain/ticket/valueobjects"
	"tickettracker/internal/domain/user"
	"tickettracker/internal/infrastructure/config"
	"tickettracker/internal/infrastructure/persistence/migrations"
	"tickettracker/internal/shared/services/markdown"
)

type fixture struct {
	db        *gorm.DB
	tickets   *TicketRepository
	followUps *FollowUpRepository
	dups      *DuplicateRepository
	votes     *VoteRepository
	apps      *ApplicationRepository
	app       *ticket.Application
}

func setupTestDB(t *testing.T) *fixture {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, migrations.AutoMigrate(gdb))

	renderer, err := markdown.NewService(config.Default().Markdown)
	require.NoError(t, err)

	f := &fixture{
		db:        gdb,
		tickets:   NewTicketRepository(gdb, renderer),
		followUps: NewFollowUpRepository(gdb, renderer),
		dups:      NewDuplicateRepository(gdb),
		votes:     NewVoteRepository(gdb),
		apps:      NewApplicationRepository(gdb),
	}

	app, err := ticket.NewApplication("Web Portal")
	require.NoError(t, err)
	require.NoError(t, f.apps.Save(context.Background(), app))
	f.app = app
	return f
}

func (f *fixture) createTicket(t *testing.T, title string, submitter uint, mutate ...func(*ticket.Fields)) *ticket.Ticket {
	t.Helper()
	fields := ticket.Fields{
		Title:         title,
		Description:   "description of " + title,
		Type:          vo.TypeBug,
		Priority:      vo.PriorityNormal,
		ApplicationID: f.app.ID(),
	}
	for _, m := range mutate {
		m(&fields)
	}
	tk, err := ticket.NewTicket(fields, submitter)
	require.NoError(t, err)
	require.NoError(t, f.tickets.Save(context.Background(), tk))
	return tk
}

func TestTicketRepository_SaveRendersDescription(t *testing.T) {
	f := setupTestDB(t)
	ctx := context.Background()

	tk := f.createTicket(t, "Linked", 1, func(fl *ticket.Fields) { fl.Description = "see ticket: 23" })

	loaded, err := f.tickets.GetActiveByID(ctx, tk.ID())
	require.NoError(t, err)
	assert.Contains(t, loaded.DescriptionHTML(), `<a href="/tickets/23">ticket 23</a>`)

	first := loaded.DescriptionHTML()
	require.NoError(t, f.tickets.Update(ctx, loaded))
	reloaded, err := f.tickets.GetActiveByID(ctx, tk.ID())
	require.NoError(t, err)
	assert.Equal(t, first, reloaded.DescriptionHTML())
}

func TestTicketRepository_UpdatePersistsClearedFields(t *testing.T) {
	f := setupTestDB(t)
	ctx := context.Background()
	tk := f.createTicket(t, "Toggle", 1)

	tk.Deactivate()
	require.NoError(t, f.tickets.Update(ctx, tk))

	_, err := f.tickets.GetActiveByID(ctx, tk.ID())
	assert.ErrorIs(t, err, ticket.ErrTicketNotFound)

	loaded, err := f.tickets.GetByID(ctx, tk.ID())
	require.NoError(t, err)
	assert.False(t, loaded.IsActive())
}

func TestTicketRepository_ListActiveAndAll(t *testing.T) {
	f := setupTestDB(t)
	ctx := context.Background()

	f.createTicket(t, "first", 1)
	hidden := f.createTicket(t, "hidden", 1)
	last := f.createTicket(t, "last", 1)
	hidden.Deactivate()
	require.NoError(t, f.tickets.Update(ctx, hidden))

	active, total, err := f.tickets.ListActive(ctx, ticket.TicketFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, last.ID(), active[0].ID(), "newest first")

	all, total, err := f.tickets.ListAll(ctx, ticket.TicketFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, all, 3)
}

func TestTicketRepository_ListFilters(t *testing.T) {
	f := setupTestDB(t)
	ctx := context.Background()

	other, err := ticket.NewApplication("Mobile")
	require.NoError(t, err)
	require.NoError(t, f.apps.Save(ctx, other))

	bug := f.createTicket(t, "Crash on save", 1, func(fl *ticket.Fields) { fl.Tags = []string{"editor"} })
	feature := f.createTicket(t, "Dark mode", 2, func(fl *ticket.Fields) {
		fl.Type = vo.TypeFeature
		fl.Priority = vo.PriorityLow
		fl.ApplicationID = other.ID()
	})
	closed := f.createTicket(t, "Old issue", 3)
	closed.Close(9)
	require.NoError(t, feature.AssignTo(3, 9))
	require.NoError(t, f.tickets.Update(ctx, closed))
	require.NoError(t, f.tickets.Update(ctx, feature))

	ids := func(filter ticket.TicketFilter) []uint {
		list, _, err := f.tickets.ListActive(ctx, filter)
		require.NoError(t, err)
		out := make([]uint, len(list))
		for i, tk := range list {
			out[i] = tk.ID()
		}
		return out
	}
	featureType := vo.TypeFeature
	low := vo.PriorityLow
	three := uint(3)
	one := uint(1)

	assert.ElementsMatch(t, []uint{bug.ID(), feature.ID()}, ids(ticket.TicketFilter{Statuses: vo.OpenStatuses}))
	assert.Equal(t, []uint{closed.ID()}, ids(ticket.TicketFilter{Statuses: vo.ClosedStatuses}))
	assert.Equal(t, []uint{feature.ID()}, ids(ticket.TicketFilter{Type: &featureType}))
	assert.Equal(t, []uint{feature.ID()}, ids(ticket.TicketFilter{Priority: &low}))
	assert.Equal(t, []uint{feature.ID()}, ids(ticket.TicketFilter{ApplicationSlug: "mobile"}))
	assert.Equal(t, []uint{feature.ID()}, ids(ticket.TicketFilter{AssignedToID: &three}))
	assert.Equal(t, []uint{bug.ID()}, ids(ticket.TicketFilter{SubmittedByID: &one}))
	assert.ElementsMatch(t, []uint{feature.ID(), closed.ID()}, ids(ticket.TicketFilter{OwnerID: &three}))
	assert.Equal(t, []uint{bug.ID()}, ids(ticket.TicketFilter{Query: "crash"}))
	assert.Equal(t, []uint{closed.ID()}, ids(ticket.TicketFilter{Query: "description of old"}))
	assert.Equal(t, []uint{bug.ID()}, ids(ticket.TicketFilter{Tag: "Editor"}))
	assert.Empty(t, ids(ticket.TicketFilter{Query: "100%"}))
	assert.Empty(t, ids(ticket.TicketFilter{ApplicationSlug: "nope"}))
}

func TestTicketRepository_Pagination(t *testing.T) {
	f := setupTestDB(t)
	ctx := context.Background()
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		f.createTicket(t, title, 1)
	}

	page, total, err := f.tickets.ListActive(ctx, ticket.TicketFilter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page, 2)
	assert.Equal(t, "c", page[0].Title())
	assert.Equal(t, "b", page[1].Title())
}

func TestTicketRepository_ListChildren(t *testing.T) {
	f := setupTestDB(t)
	ctx := context.Background()
	parent := f.createTicket(t, "parent", 1)

	for _, d := range []string{"one", "two"} {
		child, err := parent.NewChild(ticket.ChildSpec{Description: d})
		require.NoError(t, err)
		require.NoError(t, f.tickets.Save(ctx, child))
	}

	children, err := f.tickets.ListChildren(ctx, parent.ID())
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, "one", children[0].Description())
	assert.Equal(t, parent.ID(), *children[1].ParentID())
}

func TestVoteRepository_RecordIsIdempotent(t *testing.T) {
	f := setupTestDB(t)
	ctx := context.Background()
	tk := f.createTicket(t, "votable", 1)

	recorded, err := f.votes.Record(ctx, 5, tk.ID(), vo.VoteUp)
	require.NoError(t, err)
	assert.True(t, recorded)

	for i := 0; i < 3; i++ {
		recorded, err = f.votes.Record(ctx, 5, tk.ID(), vo.VoteUp)
		require.NoError(t, err)
		assert.False(t, recorded)
	}

	recorded, err = f.votes.Record(ctx, 5, tk.ID(), vo.VoteDown)
	require.NoError(t, err)
	assert.True(t, recorded, "directions are tracked separately")

	voted, err := f.votes.HasVoted(ctx, 5, tk.ID(), vo.VoteUp)
	require.NoError(t, err)
	assert.True(t, voted)

	var rows int64
	f.db.Table("user_vote_logs").Where("user_id = ? AND ticket_id = ? AND direction = ?", 5, tk.ID(), "up").Count(&rows)
	assert.Equal(t, int64(1), rows)
}

func TestTicketRepository_AdjustVotesFloorsAtZero(t *testing.T) {
	f := setupTestDB(t)
	ctx := context.Background()
	tk := f.createTicket(t, "votes", 1)

	v, err := f.tickets.AdjustVotes(ctx, tk.ID(), -1)
	require.NoError(t, err)
	assert.Zero(t, v)

	v, err = f.tickets.AdjustVotes(ctx, tk.ID(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	_, err = f.tickets.AdjustVotes(ctx, 9999, 1)
	assert.ErrorIs(t, err, ticket.ErrTicketNotFound)
}

func TestFollowUpRepository_Visibility(t *testing.T) {
	f := setupTestDB(t)
	ctx := context.Background()
	tk := f.createTicket(t, "commented", 1)

	public, err := ticket.NewFollowUp(tk.ID(), 2, "public note", vo.ActionNone, false)
	require.NoError(t, err)
	require.NoError(t, f.followUps.Save(ctx, public))
	private, err := ticket.NewFollowUp(tk.ID(), 1, "private note, see ticket:4", vo.ActionNone, true)
	require.NoError(t, err)
	require.NoError(t, f.followUps.Save(ctx, private))

	all, err := f.followUps.ListAll(ctx, tk.ID())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, private.ID(), all[0].ID(), "newest first")
	assert.Contains(t, all[0].CommentHTML(), `<a href="/tickets/4">ticket 4</a>`)

	visible, err := f.followUps.ListPublic(ctx, tk.ID())
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, public.ID(), visible[0].ID())
}

func TestDuplicateRepository(t *testing.T) {
	f := setupTestDB(t)
	ctx := context.Background()
	original := f.createTicket(t, "original", 1)
	dupTicket := f.createTicket(t, "dup", 2)

	d, err := ticket.NewDuplicate(dupTicket.ID(), original.ID())
	require.NoError(t, err)
	require.NoError(t, f.dups.Save(ctx, d))

	originals, err := f.dups.ListOriginalsOf(ctx, dupTicket.ID())
	require.NoError(t, err)
	require.Len(t, originals, 1)
	assert.Equal(t, original.ID(), originals[0].OriginalID())

	dups, err := f.dups.ListDuplicatesOf(ctx, original.ID())
	require.NoError(t, err)
	require.Len(t, dups, 1)
	assert.Equal(t, dupTicket.ID(), dups[0].TicketID())
}

func TestApplicationRepository(t *testing.T) {
	f := setupTestDB(t)
	ctx := context.Background()

	got, err := f.apps.GetBySlug(ctx, "web-portal")
	require.NoError(t, err)
	assert.Equal(t, f.app.ID(), got.ID())

	clash, err := ticket.NewApplication("web portal")
	require.NoError(t, err)
	assert.Error(t, f.apps.Save(ctx, clash))

	_, err = f.apps.GetByID(ctx, 404)
	assert.ErrorIs(t, err, ticket.ErrApplicationNotFound)

	require.NoError(t, got.Rename("Portal"))
	require.NoError(t, f.apps.Save(ctx, got))
	list, err := f.apps.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "portal", list[0].Slug())
}

type staticGroups map[uint][]string

func (s staticGroups) GroupsOf(_ context.Context, id uint) ([]string, error) { return s[id], nil }

func TestUserRepository(t *testing.T) {
	f := setupTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(f.db, staticGroups{1: {"admin"}})

	admin, err := user.NewUser("alice", "alice@example.com", "Alice", "A")
	require.NoError(t, err)
	admin.SetStaff(true)
	require.NoError(t, repo.Create(ctx, admin))

	bob, err := user.NewUser("bob", "", "", "")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, bob))

	loaded, err := repo.GetByID(ctx, admin.ID())
	require.NoError(t, err)
	assert.Equal(t, []string{"admin"}, loaded.Groups())
	assert.True(t, loaded.IsStaff())

	byName, err := repo.GetByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, bob.ID(), byName.ID())

	_, err = repo.GetByUsername(ctx, "carol")
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	staff, err := repo.ListStaff(ctx)
	require.NoError(t, err)
	require.Len(t, staff, 1)
	assert.Equal(t, "alice", staff[0].Username())
}
