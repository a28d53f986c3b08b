package permission

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"tickettracker/internal/shared/authorization"
	"tickettracker/internal/shared/logger"
)

func newTestEnforcer(t *testing.T) (*Enforcer, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	e, err := NewEnforcer(db, logger.NewLogger())
	require.NoError(t, err)
	return e, db
}

func TestEnforcer_GroupMembership(t *testing.T) {
	e, _ := newTestEnforcer(t)
	ctx := context.Background()

	groups, err := e.GroupsOf(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, groups)

	require.NoError(t, e.GrantAdmin(ctx, 1))
	require.NoError(t, e.AddToGroup(ctx, 1, "triage"))

	groups, err = e.GroupsOf(ctx, 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{authorization.GroupAdmin, "triage"}, groups)

	require.NoError(t, e.RevokeAdmin(ctx, 1))
	groups, err = e.GroupsOf(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"triage"}, groups)
}

func TestEnforcer_SeesRulesWrittenElsewhere(t *testing.T) {
	e, db := newTestEnforcer(t)
	ctx := context.Background()

	other, err := NewEnforcer(db, logger.NewLogger())
	require.NoError(t, err)
	require.NoError(t, other.GrantAdmin(ctx, 7))

	groups, err := e.GroupsOf(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, []string{authorization.GroupAdmin}, groups)
}

func TestEnforcer_RejectsEmptyGroup(t *testing.T) {
	e, _ := newTestEnforcer(t)
	assert.Error(t, e.AddToGroup(context.Background(), 1, " "))
}
