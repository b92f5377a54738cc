package cmd

import (
	"github.com/huangsam/integral/core"
	"github.com/spf13/cobra"
)

// weightsCmd displays the scoring vocabulary, weights and formula.
var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "Display the vocabulary, weights and composite formula.",
	Long: `Show how the composite score is computed with the current configuration.

No source is read. Weights are shown as supplied and after rescaling
to sum to 1. Custom vocabularies come from .integral.yaml.

Examples:
  integral weights
  integral weights --weight-financial 1 --weight-media 0 --weight-reputation 0
  integral weights --config .integral.yaml --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor(core.ExecuteWeights, "Cannot display weights")
	},
}
