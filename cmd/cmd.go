// Package cmd defines the command-line interface for integral.
package cmd

import (
	"github.com/huangsam/integral/internal/contract"
	"github.com/huangsam/integral/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(rankCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(groupsCmd)
	rootCmd.AddCommand(weightsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("financial", "F", "", "Path to the financial source (CSV, TSV or XLSX; append #Sheet for a named sheet)")
	rootCmd.PersistentFlags().StringP("media", "M", "", "Path to the media source")
	rootCmd.PersistentFlags().StringP("reputation", "R", "", "Path to the reputation source")
	rootCmd.PersistentFlags().String("key", schema.DefaultKeyColumn, "Entity key column present in every source")
	rootCmd.PersistentFlags().Float64("weight-financial", contract.DefaultWeightFinancial, "Financial group weight in [0,1]")
	rootCmd.PersistentFlags().Float64("weight-media", contract.DefaultWeightMedia, "Media group weight in [0,1]")
	rootCmd.PersistentFlags().Float64("weight-reputation", contract.DefaultWeightReputation, "Reputation group weight in [0,1]")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Bool("detail", false, "Print the composite before rescaling")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("analysis-backend", "", "Ranking history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("analysis-db-connect", "", "Database connection string for ranking history (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("log-level", contract.DefaultLogLevel, "Diagnostic log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
