package cmd

import (
	"github.com/huangsam/integral/core"
	"github.com/huangsam/integral/internal/contract"
	"github.com/spf13/cobra"
)

// runExecutor runs a core executor against the global config and history manager.
func runExecutor(execute core.ExecutorFunc, failure string) {
	if err := execute(rootCtx, cfg, historyManager); err != nil {
		contract.LogFatal(failure, err)
	}
}

// rankCmd runs the full rating pipeline.
var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank companies by composite Integral score.",
	Long: `Merge the supplied sources on the key column and rank every company.

Each numeric column is min-max normalized, columns are grouped into
financial, media and reputation by name, group means are combined with
the configured weights and the composite is rescaled to 0-100.

Groups with no matching columns give every company the neutral 0.5.
Each row is labeled Leader (>=80), Strong (>=60), Average (>=40) or Weak.

Examples:
  # Rank with the default weights
  integral rank -F financial.csv -M media.csv -R reputation.xlsx

  # Emphasize reputation and show the top 10
  integral rank -F fin.csv -R rep.csv --weight-reputation 0.8 --limit 10

  # Include the pre-scale composite
  integral rank -F fin.csv --detail

  # Export to Parquet and record the run in SQLite
  integral rank -F fin.csv --output parquet --output-file ranking.parquet --analysis-backend sqlite`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor(core.ExecuteRank, "Cannot rank companies")
	},
}
