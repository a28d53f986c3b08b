package configcmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRender_MasksSecrets(t *testing.T) {
	settings := map[string]any{
		"auth": map[string]any{
			"jwt": map[string]any{"secret": "s3cr3t", "access_exp_minutes": 60},
		},
		"database": map[string]any{"password": "hunter2", "host": "db"},
		"redis":    map[string]any{"password": ""},
	}

	out, err := Render(settings)
	require.NoError(t, err)
	assert.NotContains(t, out, "s3cr3t")
	assert.NotContains(t, out, "hunter2")

	var back map[string]map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &back))
	assert.Equal(t, redacted, back["database"]["password"])
	assert.Equal(t, "db", back["database"]["host"])
	assert.Equal(t, "", back["redis"]["password"])
}
