package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for ranking history.
	DatabaseBackend string

	// MetricGroup represents one semantic bucket of columns.
	MetricGroup string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All metric groups supported.
const (
	FinancialGroup  MetricGroup = "financial"
	MediaGroup      MetricGroup = "media"
	ReputationGroup MetricGroup = "reputation"
)

// AllGroups lists the metric groups in scoring order.
var AllGroups = []MetricGroup{FinancialGroup, MediaGroup, ReputationGroup}

// DefaultKeyColumn is the column that identifies an entity in every source.
const DefaultKeyColumn = "company"

// ValidOutputModes is the set of accepted --output values.
var ValidOutputModes = map[OutputMode]bool{
	CSVOut:     true,
	TextOut:    true,
	JSONOut:    true,
	ParquetOut: true,
}

// ValidDatabaseBackends is the set of accepted --analysis-backend values.
var ValidDatabaseBackends = map[DatabaseBackend]bool{
	SQLiteBackend:     true,
	MySQLBackend:      true,
	PostgreSQLBackend: true,
	NoneBackend:       true,
}
