package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/veil-cli/internal/adapters/driven/output/gzjsonl"
	"github.com/custodia-labs/veil-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/veil-cli/internal/core/domain"
	"github.com/custodia-labs/veil-cli/internal/core/ports/driven"
	"github.com/custodia-labs/veil-cli/internal/core/ports/driving"
	"github.com/custodia-labs/veil-cli/internal/core/services"
	"github.com/custodia-labs/veil-cli/internal/extractors"
	"github.com/custodia-labs/veil-cli/internal/extractors/excel"
	pdfextractor "github.com/custodia-labs/veil-cli/internal/extractors/pdf"
	"github.com/custodia-labs/veil-cli/internal/logger"
	"github.com/custodia-labs/veil-cli/internal/postprocessors"
	"github.com/custodia-labs/veil-cli/internal/postprocessors/chunker"
	"github.com/custodia-labs/veil-cli/internal/postprocessors/redactor"
	"github.com/custodia-labs/veil-cli/internal/redact"
)

// secretEnvVar names the environment variable consulted when the
// --secret flag is not set.
const secretEnvVar = "VEIL_SECRET"

var (
	ingestInputs   []string
	ingestOutput   string
	ingestSecret   string
	ingestOCR      bool
	ingestMaxChars int
	ingestLedger   bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "De-identify documents into a gzip JSONL stream",
	Long: `Walks the given inputs for PDF and Excel files, extracts their text,
splits it into bounded chunks, replaces detected personal data with
deterministic tokens, and appends one JSON record per chunk to the
output stream.

The keyed token secret comes from --secret or the ` + secretEnvVar + `
environment variable. Files that fail to parse are reported and
contribute no records; the batch carries on.`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringArrayVarP(&ingestInputs, "input", "i", nil, "input file or directory (repeatable)")
	ingestCmd.Flags().StringVarP(&ingestOutput, "output", "o", "", "output path for the gzip JSONL stream")
	ingestCmd.Flags().StringVar(&ingestSecret, "secret", "", "keyed token secret (or "+secretEnvVar+")")
	ingestCmd.Flags().BoolVar(&ingestOCR, "ocr", false, "OCR pages with no extractable text")
	ingestCmd.Flags().IntVar(&ingestMaxChars, "max-chars", 0, "maximum characters per chunk")
	ingestCmd.Flags().BoolVar(&ingestLedger, "ledger", false, "record the batch in the run ledger")
	_ = ingestCmd.MarkFlagRequired("input")  //nolint:errcheck // flag exists
	_ = ingestCmd.MarkFlagRequired("output") //nolint:errcheck // flag exists
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	secret := ingestSecret
	if secret == "" {
		secret = os.Getenv(secretEnvVar)
	}
	if secret == "" {
		return fmt.Errorf("%w: pass --secret or set %s", domain.ErrMissingSecret, secretEnvVar)
	}

	maxChars := ingestMaxChars
	if maxChars <= 0 && configStore != nil {
		maxChars = configStore.GetInt("ingest.max_chars")
	}
	if maxChars <= 0 {
		maxChars = driving.DefaultMaxChunkChars
	}

	ocr := ingestOCR
	if !cmd.Flags().Changed("ocr") && configStore != nil {
		ocr = configStore.GetBool("ingest.ocr")
	}
	if ocr {
		if err := pdfextractor.CheckOCRAvailable(); err != nil {
			cmd.Printf("Warning: OCR requested but unavailable: %v\n", err)
			cmd.Println(pdfextractor.InstallInstructions())
			ocr = false
		}
	}

	engine := redact.NewEngine(redact.DefaultCatalog(), redact.NewPseudonymiser(secret))
	pipeline := postprocessors.NewPipeline(
		chunker.New(chunker.WithMaxChars(maxChars)),
		redactor.New(engine),
	)
	registry := extractors.NewRegistry(
		pdfextractor.New(pdfextractor.WithOCR(ocr)),
		excel.New(),
	)

	ledger, closeLedger := openLedger(cmd)
	defer closeLedger()

	service := services.NewIngestService(registry, pipeline, redactor.New(engine), gzjsonl.NewOpener(), ledger)

	summary, err := service.Ingest(context.Background(), driving.IngestOptions{
		Inputs:        ingestInputs,
		Output:        ingestOutput,
		MaxChunkChars: maxChars,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNoInputFiles) {
			return fmt.Errorf("%w under %v", err, ingestInputs)
		}
		return fmt.Errorf("ingest failed: %w", err)
	}

	printSummary(cmd, summary)
	return nil
}

// openLedger opens the run ledger when enabled by flag or config.
// Ledger failures never block the batch.
func openLedger(cmd *cobra.Command) (driven.RunLedger, func()) {
	enabled := ingestLedger
	if !enabled && configStore != nil {
		enabled = configStore.GetBool("ledger.enabled")
	}
	if !enabled {
		return nil, func() {}
	}

	dataDir := ""
	if configStore != nil {
		dataDir = configStore.GetString("ledger.path")
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		cmd.Printf("Warning: run ledger unavailable: %v\n", err)
		return nil, func() {}
	}
	return store.RunLedger(), func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing ledger: %v", err)
		}
	}
}

func printSummary(cmd *cobra.Command, summary *domain.BatchSummary) {
	cmd.Printf("Discovered %d file(s).\n", summary.Discovered)

	for _, outcome := range summary.Outcomes {
		switch {
		case outcome.Failed():
			cmd.Printf("  FAILED  %s: %v\n", outcome.Path, outcome.Err)
		case outcome.Skipped:
			cmd.Printf("  SKIPPED %s\n", outcome.Path)
		default:
			cmd.Printf("  OK      %s (%d records)\n", outcome.Path, outcome.Records)
		}
	}

	cmd.Printf("Processed %d, skipped %d, failed %d.\n",
		summary.Processed, summary.Skipped, summary.Failed)
	cmd.Printf("Wrote %d record(s) to %s\n", summary.Records, summary.OutputPath)
}
