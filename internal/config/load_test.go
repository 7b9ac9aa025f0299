package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "flashdeck.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	s := cfg.Scheduling
	assert.Equal(t, 2, s.History)
	assert.Equal(t, 1.0, s.DefaultDelay)
	assert.Equal(t, 0.2, s.Noise)
	assert.Equal(t, 5, s.OptimalStreak)
	assert.Equal(t, 2.0, s.Magic)
	assert.Equal(t, 0.3, s.Adventure)
	assert.Equal(t, uint64(0), s.Seed)
	assert.Equal(t, "yaml", cfg.Store.Driver)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Empty(t, cfg.Metrics.Textfile)
}

func TestLoad_File(t *testing.T) {
	p := writeConfig(t, `
scheduling:
  history: 3
  adventure: 0.5
store:
  driver: sqlite
  path: /tmp/deck.db
log:
  format: json
`)
	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Scheduling.History)
	assert.Equal(t, 0.5, cfg.Scheduling.Adventure)
	assert.Equal(t, 5, cfg.Scheduling.OptimalStreak, "unset keys keep defaults")
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "/tmp/deck.db", cfg.Store.Path)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	p := writeConfig(t, "scheduling:\n  magic: 3\nlog:\n  level: warn\n")
	t.Setenv("FLASHDECK_SCHEDULING_MAGIC", "1.5")
	t.Setenv("FLASHDECK_SCHEDULING_SEED", "42")

	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, 1.5, cfg.Scheduling.Magic)
	assert.Equal(t, uint64(42), cfg.Scheduling.Seed)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  string
		val  string
	}{
		{"adventure above one", "FLASHDECK_SCHEDULING_ADVENTURE", "1.5"},
		{"zero default delay", "FLASHDECK_SCHEDULING_DEFAULT_DELAY", "0"},
		{"zero streak", "FLASHDECK_SCHEDULING_OPTIMAL_STREAK", "0"},
		{"unknown driver", "FLASHDECK_STORE_DRIVER", "postgres"},
		{"unknown level", "FLASHDECK_LOG_LEVEL", "trace"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.env, tt.val)
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestSchedulingConfig_Components(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 0.3, cfg.Scheduling.Supplier().Adventure)
	assert.Equal(t, 2, cfg.Scheduling.Scheduler().History)
	assert.Equal(t, 0.2, cfg.Scheduling.SpacedRep().Noise)
}

func TestConfig_ValidateAfterOverride(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Store.Driver = "sqlite"
	assert.NoError(t, cfg.Validate())

	cfg.Store.Driver = "postgres"
	assert.Error(t, cfg.Validate())
}
