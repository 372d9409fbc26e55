package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/starsync/internal/core/domain"
)

func TestSettingsCmd_Show(t *testing.T) {
	s := setupServices(t)
	s.settings.settings.GitHub.User = "octocat"
	s.settings.settings.Awesome.Lists = []string{"sindresorhus/awesome"}

	for _, args := range [][]string{{"settings"}, {"settings", "show"}} {
		out, err := executeCommand(args...)
		require.NoError(t, err)

		assert.Contains(t, out, "[GitHub]")
		assert.Contains(t, out, "User: octocat")
		assert.Contains(t, out, "Path: (not set)")
		assert.Contains(t, out, "Lists: sindresorhus/awesome")
		assert.Contains(t, out, "Exclude stale: true (365 days)")
		assert.Contains(t, out, "Order: github, firefox, chrome, awesome")
		assert.Contains(t, out, "Config file: /home/test/.config/starsync/config.toml")
	}
}

func TestSettingsCmd_Set(t *testing.T) {
	s := setupServices(t)

	out, err := executeCommand("settings", "set", "github.user", "octocat")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"github.user": "octocat"}, s.settings.set)
	assert.Contains(t, out, "github.user = octocat")
}

func TestSettingsCmd_SetRejected(t *testing.T) {
	s := setupServices(t)
	s.settings.err = domain.ErrUnsupportedKey

	_, err := executeCommand("settings", "set", "nope", "1")
	assert.ErrorIs(t, err, domain.ErrUnsupportedKey)
}

func TestSettingsCmd_KeysAndPath(t *testing.T) {
	setupServices(t)

	out, err := executeCommand("settings", "keys")
	require.NoError(t, err)
	assert.Equal(t, "github.per_page\ngithub.user\n", out)

	out, err = executeCommand("settings", "path")
	require.NoError(t, err)
	assert.Equal(t, "/home/test/.config/starsync/config.toml\n", out)
}

func TestSettingsCmd_ServiceNotConfigured(t *testing.T) {
	setupServices(t)
	settingsService = nil

	_, err := executeCommand("settings")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings service not configured")
}
