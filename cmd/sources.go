package cmd

import (
	"github.com/huangsam/integral/core"
	"github.com/spf13/cobra"
)

// sourcesCmd prints each source as loaded.
var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Show each source table as loaded.",
	Long: `Print every supplied source after parsing, with a warning for each
source that was not supplied. Useful to check delimiters, sheets and
missing-value handling before ranking.

Examples:
  integral sources -F financial.csv -M media.tsv -R "reputation.xlsx#Survey"`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor(core.ExecuteSources, "Cannot show sources")
	},
}
