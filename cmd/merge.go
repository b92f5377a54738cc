package cmd

import (
	"github.com/huangsam/integral/core"
	"github.com/spf13/cobra"
)

// mergeCmd prints the unified table.
var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Show the unified table produced by joining all sources.",
	Long: `Full outer join of the supplied sources on the key column.

Rows appear in first-appearance order across financial, media and
reputation. Columns shared by two sources get _x and _y suffixes.
Companies absent from a source have empty cells for its columns.

Examples:
  integral merge -F financial.csv -M media.csv
  integral merge -F financial.csv -R reputation.csv --output csv --output-file merged.csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor(core.ExecuteMerge, "Cannot merge sources")
	},
}
