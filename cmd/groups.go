package cmd

import (
	"github.com/huangsam/integral/core"
	"github.com/spf13/cobra"
)

// groupsCmd prints the column classification.
var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "Show which columns feed each metric group.",
	Long: `Classify the unified columns into financial, media and reputation
using the configured vocabulary. Unmatched columns and non-numeric
columns ignored by the group mean are listed too.

Examples:
  integral groups -F financial.csv -M media.csv -R reputation.csv
  integral groups -F financial.csv --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor(core.ExecuteGroups, "Cannot classify columns")
	},
}
