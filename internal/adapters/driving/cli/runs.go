package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/veil-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/veil-cli/internal/core/ports/driven"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded ingest batches",
	Long:  `Lists batches recorded in the run ledger, newest first. Batches are recorded when ingest runs with --ledger or ledger.enabled.`,
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <batch-id>",
	Short: "Show per-file outcomes of a batch",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "maximum number of batches to list")
	runsCmd.AddCommand(runsShowCmd)
	rootCmd.AddCommand(runsCmd)
}

// withLedger opens the ledger store, runs fn, and closes the store.
func withLedger(fn func(ledger driven.RunLedger) error) error {
	dataDir := ""
	if configStore != nil {
		dataDir = configStore.GetString("ledger.path")
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening run ledger: %w", err)
	}
	defer store.Close() //nolint:errcheck // read path, close error carries no data

	return fn(store.RunLedger())
}

func runRunsList(cmd *cobra.Command, _ []string) error {
	return withLedger(func(ledger driven.RunLedger) error {
		batches, err := ledger.ListBatches(context.Background(), runsLimit)
		if err != nil {
			return fmt.Errorf("listing batches: %w", err)
		}

		if len(batches) == 0 {
			cmd.Println("No batches recorded.")
			return nil
		}

		for _, b := range batches {
			cmd.Printf("%s  %s  files=%d records=%d failed=%d  %s\n",
				b.BatchID,
				b.Started.Local().Format("2006-01-02 15:04:05"),
				b.Discovered, b.Records, b.Failed,
				b.OutputPath)
		}
		return nil
	})
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	batchID := args[0]

	return withLedger(func(ledger driven.RunLedger) error {
		outcomes, err := ledger.Outcomes(context.Background(), batchID)
		if err != nil {
			return fmt.Errorf("loading batch %s: %w", batchID, err)
		}

		for _, o := range outcomes {
			switch {
			case o.Failed():
				cmd.Printf("FAILED  %s: %v\n", o.Path, o.Err)
			case o.Skipped:
				cmd.Printf("SKIPPED %s\n", o.Path)
			default:
				cmd.Printf("OK      %s (%d records)\n", o.Path, o.Records)
			}
		}
		return nil
	})
}
