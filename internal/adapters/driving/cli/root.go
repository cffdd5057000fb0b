// Package cli implements the command-line driving adapter.
// Commands wire domain services from driven adapters per invocation.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/veil-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/veil-cli/internal/core/ports/driven"
	"github.com/custodia-labs/veil-cli/internal/logger"
)

// version is set by Execute from the build-time value in main.
var version = "dev"

// Persistent flag values.
var (
	flagVerbose   bool
	flagConfigDir string
)

// configStore is initialised before any command runs. Commands treat a
// nil store as "use flag defaults".
var configStore driven.ConfigStore

var rootCmd = &cobra.Command{
	Use:   "veil",
	Short: "De-identify documents into chunked JSONL",
	Long: `Veil extracts text from PDF and Excel files, replaces detected
personal data with deterministic tokens, and writes one JSON record
per chunk to a gzip-compressed JSONL stream.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(flagVerbose)

		store, err := file.NewConfigStore(flagConfigDir)
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		configStore = store
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default ~/.veil)")
}

// Execute runs the root command.
func Execute(ver string) error {
	if ver != "" {
		version = ver
	}
	return rootCmd.Execute()
}
