package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/huangsam/integral/internal/contract"
	"github.com/huangsam/integral/internal/history"
	"github.com/huangsam/integral/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historyBackendConfig resolves the history backend and connection string without
// the full sharedSetup, so history commands work without any source.
func historyBackendConfig() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(strings.ToLower(strings.TrimSpace(viper.GetString("analysis-backend"))))
	if backend == "" {
		backend = schema.NoneBackend
	}
	if !schema.ValidDatabaseBackends[backend] {
		return fmt.Errorf("invalid analysis backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	connStr := viper.GetString("analysis-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.AnalysisBackend = backend
	cfg.AnalysisDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// historySetupWrapper opens the history store for status and export.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	if err := historyBackendConfig(); err != nil {
		return err
	}
	if err := history.InitStores(cfg.AnalysisBackend, cfg.AnalysisDBConnect); err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}
	return nil
}

// historyMigrateSetupWrapper does NOT open the store, so that migrations run
// on a fresh database without tables being created first.
func historyMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	if err := historyBackendConfig(); err != nil {
		return err
	}
	if cfg.AnalysisBackend == schema.SQLiteBackend && cfg.AnalysisDBConnect == "" {
		cfg.AnalysisDBConnect = contract.GetHistoryDBFilePath()
	}
	return nil
}

// historyCmd focused on ranking history management.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage stored ranking runs and exports",
	Long: `Manage the ranking history recorded by 'integral rank'.

When --analysis-backend is set, every ranking run stores:
- Run metadata (uuid, timestamps, duration, configuration)
- Every scored company with its group scores, composite and label

The uploaded tables themselves are never stored.

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show history statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all history data
  migrate - Run database schema migrations

Examples:
  # Check history status
  integral history status --analysis-backend sqlite

  # Export for analysis in pandas/DuckDB
  integral history export --analysis-backend sqlite --output-file ratings`,
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display history statistics and connection details",
	Long: `Show the backend, connection state, number of stored runs, the newest
and oldest run timestamps and the row count of each table.

Examples:
  integral history status --analysis-backend sqlite`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := historyManager.GetHistoryStore()
		if store == nil {
			history.PrintHistoryStatus(os.Stdout, schema.HistoryStatus{Backend: string(cfg.AnalysisBackend)})
			return
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		history.PrintHistoryStatus(os.Stdout, status)
	},
}

// historyExportCmd exports history data to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export ranking history to Parquet for BI tools and analytics",
	Long: `Export all stored ranking data to two Parquet files named after --output-file:

  <output-file>.ranking_runs.parquet   - one row per ranking run
  <output-file>.entity_scores.parquet  - one row per scored company per run

Requires: --output-file parameter

Examples:
  integral history export --analysis-backend sqlite --output-file ratings
  duckdb -c "SELECT company, avg(integral_100) FROM 'ratings.entity_scores.parquet' GROUP BY 1"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := history.ExecuteHistoryExport(os.Stdout, historyManager, cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export history data", err)
		}
	},
}

// historyClearCmd clears the history data.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored ranking history",
	Long: `Delete all stored ranking runs and entity scores.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the history tables

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  integral history export --analysis-backend sqlite --output-file backup
  integral history clear --analysis-backend sqlite`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return historyBackendConfig()
	},
	Run: func(_ *cobra.Command, _ []string) {
		dbFilePath := ""
		if cfg.AnalysisBackend == schema.SQLiteBackend {
			dbFilePath = cfg.AnalysisDBConnect
		}
		if err := history.ClearHistory(cfg.AnalysisBackend, dbFilePath, cfg.AnalysisDBConnect); err != nil {
			contract.LogFatal("Failed to clear history data", err)
		}
		fmt.Println("History data cleared successfully.")
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the ranking history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  integral history migrate --analysis-backend sqlite

  # Rollback to the initial state
  integral history migrate --analysis-backend sqlite --target-version 0`,
	PreRunE: historyMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := history.MigrateHistory(cfg.AnalysisBackend, cfg.AnalysisDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
