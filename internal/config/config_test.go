package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Pairing, cfg.Pairing)
	assert.Equal(t, 365, cfg.History.WindowDays)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[pairing]
role_name = "coffee-chats"
strict_novelty = true

[history]
window_days = 90

[log]
format = "json"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "coffee-chats", cfg.Pairing.RoleName)
	assert.True(t, cfg.Pairing.StrictNovelty)
	assert.Equal(t, 90, cfg.History.WindowDays)
	assert.Equal(t, 1000, cfg.History.MaxMessages) // untouched default
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Len(t, cfg.PairingOptions(), 2)
}

func TestLoad_BadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[pairing\nrole_name="), 0o600))
	_, err := Load(path)
	require.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"MATCHY_ROLE_NAME":           "pals",
		"MATCHY_MAX_PARTICIPANTS":    "50",
		"MATCHY_HISTORY_WINDOW_DAYS": "30",
		"MATCHY_STRICT_NOVELTY":      "true",
	}
	lookup := func(k string) (string, bool) { v, ok := env[k]; return v, ok }

	cfg := Default()
	require.NoError(t, cfg.applyEnv(lookup))
	assert.Equal(t, "pals", cfg.Pairing.RoleName)
	assert.Equal(t, 50, cfg.Pairing.MaxParticipants)
	assert.Equal(t, 30, cfg.History.WindowDays)
	assert.True(t, cfg.Pairing.StrictNovelty)

	env["MATCHY_MAX_PARTICIPANTS"] = "lots"
	require.ErrorIs(t, Default().applyEnv(lookup), ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"empty role":     func(c *Config) { c.Pairing.RoleName = " " },
		"cap too small":  func(c *Config) { c.Pairing.MaxParticipants = 1 },
		"cap too large":  func(c *Config) { c.Pairing.MaxParticipants = 1 << 16 },
		"zero window":    func(c *Config) { c.History.WindowDays = 0 },
		"zero messages":  func(c *Config) { c.History.MaxMessages = 0 },
		"negative rate":  func(c *Config) { c.Notify.RatePerSecond = -1 },
		"no concurrency": func(c *Config) { c.Notify.Concurrency = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(cfg)
			require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
	require.NoError(t, Default().Validate())
}
