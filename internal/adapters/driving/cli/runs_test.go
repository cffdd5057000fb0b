package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ledgerConfigDir writes a config directory whose ledger points at a
// fresh data directory.
func ledgerConfigDir(t *testing.T) string {
	t.Helper()

	configDir := t.TempDir()
	content := "[ledger]\npath = \"" + t.TempDir() + "\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(content), 0600))
	return configDir
}

func TestRunsCmd_Use(t *testing.T) {
	assert.Equal(t, "runs", runsCmd.Use)
}

func TestRunsShowCmd_Use(t *testing.T) {
	assert.Equal(t, "show <batch-id>", runsShowCmd.Use)
}

func TestRunsCmd_EmptyLedger(t *testing.T) {
	out, err := executeCommand(t, ledgerConfigDir(t), "runs")

	require.NoError(t, err)
	assert.Contains(t, out, "No batches recorded.")
}

func TestRunsShowCmd_RequiresBatchID(t *testing.T) {
	_, err := executeCommand(t, ledgerConfigDir(t), "runs", "show")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "arg")
}

func TestRunsShowCmd_UnknownBatch(t *testing.T) {
	_, err := executeCommand(t, ledgerConfigDir(t), "runs", "show", "no-such-batch")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading batch no-such-batch")
}

func TestRunsShowCmd_ListsOutcomes(t *testing.T) {
	resetIngestFlags(t)

	configDir := ledgerConfigDir(t)
	book := writeTestWorkbook(t, "hello")
	out := filepath.Join(t.TempDir(), "out.jsonl.gz")

	_, err := executeCommand(t, configDir, "ingest",
		"-i", book, "-o", out, "--secret", "k1", "--ledger")
	require.NoError(t, err)

	listed, err := executeCommand(t, configDir, "runs")
	require.NoError(t, err)

	fields := strings.Fields(listed)
	require.NotEmpty(t, fields)
	batchID := fields[0]

	shown, err := executeCommand(t, configDir, "runs", "show", batchID)

	require.NoError(t, err)
	assert.Contains(t, shown, "OK")
	assert.Contains(t, shown, book)
	assert.Contains(t, shown, "(1 records)")
}
