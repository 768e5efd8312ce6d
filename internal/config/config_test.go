package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[logs]
level = "debug"

[database]
host = "localhost"
port = 5432
user = "meetings"
password = "from-file"
dbname = "meetings"

[server]
http_port = 8085

[scheduling]
timezone = "Europe/London"
slot_step_minutes = 15
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaultsAndEnv(t *testing.T) {
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 8085, cfg.Server.HTTPPort)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "09:00", cfg.Scheduling.SlotGridStart)
	assert.Equal(t, 15, cfg.Scheduling.SlotStepMinutes)
	assert.Equal(t, 30, cfg.Scheduling.TodayLeadMinutes)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Contains(t, cfg.Database.DSN(), "password=from-env")

	loc, err := cfg.Scheduling.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/London", loc.String())

	grid := cfg.Scheduling.SlotGrid()
	assert.Equal(t, "09:00", grid.Start.String())
	assert.Equal(t, "17:00", grid.End.String())
	assert.Equal(t, 15, grid.StepMinutes)
	assert.Equal(t, 30, grid.TodayLeadMinutes)
}

func TestLoadRejectsInvalidGrid(t *testing.T) {
	_, err := Load(writeConfig(t, sampleConfig+`
slot_grid_start = "17:00"
slot_grid_end = "09:00"
`))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadRejectsSMTPWithoutHost(t *testing.T) {
	_, err := Load(writeConfig(t, sampleConfig+`
[smtp]
enabled = true
`))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}
