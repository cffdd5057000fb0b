package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

// executeCommand runs the root command against a throwaway config
// directory and returns the combined output.
func executeCommand(t *testing.T, configDir string, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(append([]string{"--config-dir", configDir}, args...))
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "veil", rootCmd.Use)
}

func TestRootCmd_HasPersistentFlags(t *testing.T) {
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config-dir"))
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	assert.True(t, names["ingest"])
	assert.True(t, names["categories"])
	assert.True(t, names["runs"])
	assert.True(t, names["version"])
}

func TestRootCmd_InitialisesConfigStore(t *testing.T) {
	configDir := t.TempDir()

	_, err := executeCommand(t, configDir, "version")

	assert.NoError(t, err)
	assert.NotNil(t, configStore)
}
