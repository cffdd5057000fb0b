package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/veil-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/veil-cli/internal/core/domain"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	// Best-effort: load .env from the current directory so VEIL_SECRET
	// can live alongside the data being processed.
	_ = godotenv.Load()

	if err := cli.Execute(version); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if domain.IsConfiguration(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
