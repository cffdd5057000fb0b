package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/veil-cli/internal/redact"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the detection categories",
	Long:  `Lists the personal data categories veil detects and the pattern each one matches.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Println("Detection categories (in match-priority order):")
		for _, m := range redact.DefaultCatalog().Matchers() {
			cmd.Printf("  %-14s %s\n", m.Category, m.Pattern.String())
		}
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}
