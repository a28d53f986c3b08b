package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	u, err := NewUser("jdoe", "jdoe@example.com", "Jane", "Doe")
	require.NoError(t, err)
	assert.True(t, u.IsActive())
	assert.False(t, u.IsStaff())
	assert.Equal(t, "Jane Doe", u.DisplayName())

	_, err = NewUser("has space", "", "", "")
	assert.Error(t, err)
	_, err = NewUser("ok", "not-an-email", "", "")
	assert.Error(t, err)
}

func TestDisplayNameFallsBackToUsername(t *testing.T) {
	u, err := NewUser("ops", "", "", "Smith")
	require.NoError(t, err)
	assert.Equal(t, "ops", u.DisplayName())
}

func TestGroupsAreCopied(t *testing.T) {
	u := ReconstructUser(1, "a", "", "", "", true, false, true, []string{"admin"}, time.Time{})
	g := u.Groups()
	g[0] = "other"
	assert.Equal(t, []string{"admin"}, u.Groups())
}
