package main

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelRouter(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logPath := filepath.Join(t.TempDir(), "anylist.log")
	log, cleanup, err := newLogger(slog.LevelInfo, logPath, &stdout, &stderr)
	require.NoError(t, err)
	defer cleanup()

	log.Debug("hidden")
	log.Info("to stdout")
	log.With("k", "v").Error("to stderr")

	assert.NotContains(t, stdout.String(), "hidden")
	assert.Contains(t, stdout.String(), "to stdout")
	assert.NotContains(t, stdout.String(), "to stderr")
	assert.Contains(t, stderr.String(), "to stderr")
	assert.Contains(t, stderr.String(), "k=v")
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMigrateAndSeedCommands(t *testing.T) {
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "cli.db"))
	t.Setenv("STATE", "dev")

	out, err := runCLI(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "schema_version=1")

	out, err = runCLI(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 3 users, 20 items, 3 lists, 10 list items.")
}

func TestSeedRefusedInProduction(t *testing.T) {
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "cli.db"))
	t.Setenv("STATE", "prod")

	_, err := runCLI(t, "seed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "We cannot run seed in production")
}

func TestInvalidConfig(t *testing.T) {
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "cli.db"))
	t.Setenv("JWT_TTL", "-1h")

	_, err := runCLI(t, "migrate")
	assert.Error(t, err)
}
