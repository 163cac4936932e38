// File: cmd/cmd_test.go
package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nachiketsane1912/habit-impact-coach/internal/observability"
	"github.com/nachiketsane1912/habit-impact-coach/internal/reasoning"
)

// setupEnv points every filesystem-touching setting at a temp dir and clears
// any ambient credentials so tests are hermetic.
func setupEnv(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HABITCOACH_STORE_PATH", filepath.Join(dir, "test.db"))
	t.Setenv("HABITCOACH_LOGGER_LOG_FILE", filepath.Join(dir, "test.log"))
	t.Setenv("HABITCOACH_LOGGER_LEVEL", "error")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("HABITCOACH_REASONING_API_KEY", "")
}

// runCommand executes one CLI invocation against a fresh command tree and
// fresh global config state.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	observability.ResetForTest()

	rootCmd := NewRootCommand()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	rootCmd := NewRootCommand()

	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"log", "intervention", "analyze", "simulate"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestLogAddAndList(t *testing.T) {
	setupEnv(t)

	out, err := runCommand(t, "log", "add", "--date", "2026-08-29", "--caffeine", "150", "--cutoff", "13")
	require.NoError(t, err)
	assert.Contains(t, out, "Recorded log for 2026-08-29")

	out, err = runCommand(t, "log", "list", "--last", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "2026-08-29")
	assert.Contains(t, out, "150mg")
}

func TestLogList_SeedsHistoryOnFirstRun(t *testing.T) {
	setupEnv(t)

	out, err := runCommand(t, "log", "list", "--last", "5")
	require.NoError(t, err)
	// Header plus five seeded rows.
	assert.Len(t, bytes.Split(bytes.TrimSpace([]byte(out)), []byte("\n")), 6)
}

func TestLogAdd_RejectsInvalidScore(t *testing.T) {
	setupEnv(t)

	_, err := runCommand(t, "log", "add", "--sleep", "11")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sleepQuality")
}

func TestInterventionAddAndList(t *testing.T) {
	setupEnv(t)

	out, err := runCommand(t, "intervention", "add", "No", "caffeine", "after", "2pm", "--start", "2026-08-15")
	require.NoError(t, err)
	assert.Contains(t, out, `Tracking "No caffeine after 2pm" starting 2026-08-15.`)

	out, err = runCommand(t, "intervention", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "2026-08-15")
	assert.Contains(t, out, "No caffeine after 2pm")
}

func TestAnalyze_RequiresAPIKey(t *testing.T) {
	setupEnv(t)

	_, err := runCommand(t, "analyze")
	require.ErrorIs(t, err, reasoning.ErrMissingAPIKey)
}

func TestSimulate_RequiresAPIKey(t *testing.T) {
	setupEnv(t)

	_, err := runCommand(t, "simulate")
	require.ErrorIs(t, err, reasoning.ErrMissingAPIKey)
}

func TestVersionFlag(t *testing.T) {
	setupEnv(t)

	out, err := runCommand(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, Version)

	out, err = runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, Version)
}
