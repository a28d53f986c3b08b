package ticket

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Ticket Tracker":   "ticket-tracker",
		"  Billing  API  ": "billing-api",
		"Café Menu":        "cafe-menu",
		"alpha--beta":      "alpha-beta",
		"v2.0 (beta)!":     "v20-beta",
		"snake_case name":  "snake_case-name",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestNewApplication(t *testing.T) {
	app, err := NewApplication("Web Portal")
	require.NoError(t, err)
	assert.Equal(t, "web-portal", app.Slug())

	require.NoError(t, app.Rename("Mobile App"))
	assert.Equal(t, "mobile-app", app.Slug())

	_, err = NewApplication(strings.Repeat("a", MaxApplicationNameLength+1))
	assert.Error(t, err)
	_, err = NewApplication("!!!")
	assert.Error(t, err)
}
