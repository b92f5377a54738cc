package history

import (
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/google/uuid"
	"github.com/huangsam/integral/internal/contract"
	"github.com/huangsam/integral/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // SQLite driver
)

// Table names for ranking history.
const (
	rankingRunsTable  = "integral_ranking_runs"
	entityScoresTable = "integral_entity_scores"
)

//go:embed migrations/*/*.sql
var migrationsFS embed.FS

// HistoryStoreImpl implements the HistoryStore interface.
type HistoryStoreImpl struct {
	db      *sqlx.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// driverName returns the database/sql driver registered for a backend.
func driverName(backend schema.DatabaseBackend) (string, error) {
	switch backend {
	case schema.SQLiteBackend:
		return "sqlite", nil
	case schema.MySQLBackend:
		return "mysql", nil
	case schema.PostgreSQLBackend:
		return "pgx", nil
	default:
		return "", fmt.Errorf("unsupported backend: %s", backend)
	}
}

// migrationsDir returns the embedded migrations directory for a backend.
func migrationsDir(backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return "migrations/mysql"
	case schema.PostgreSQLBackend:
		return "migrations/postgres"
	default:
		return "migrations/sqlite"
	}
}

// openDB opens and pings a connection for the backend.
func openDB(backend schema.DatabaseBackend, connStr string) (*sqlx.DB, error) {
	driver, err := driverName(backend)
	if err != nil {
		return nil, err
	}
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetHistoryDBFilePath()
	}

	db, err := sqlx.Open(driver, connStr)
	if err != nil {
		switch backend {
		case schema.MySQLBackend:
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		case schema.PostgreSQLBackend:
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=... dbname=... user=...", err)
		default:
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", connStr, err)
		}
	}
	if backend == schema.SQLiteBackend {
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w. Verify the database server is running and the credentials are valid", backend, err)
	}
	return db, nil
}

// NewHistoryStore creates a new HistoryStore with the specified backend.
// The none backend yields a store that accepts and discards every write.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	if backend == schema.NoneBackend || backend == "" {
		return &HistoryStoreImpl{backend: schema.NoneBackend}, nil
	}

	db, err := openDB(backend, connStr)
	if err != nil {
		return nil, err
	}

	if err := createHistoryTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}

	return &HistoryStoreImpl{db: db, backend: backend}, nil
}

// createHistoryTables applies every embedded up migration for the backend.
// The statements use IF NOT EXISTS, so this is safe on a migrated database.
func createHistoryTables(db *sqlx.DB, backend schema.DatabaseBackend) error {
	files, err := fs.Glob(migrationsFS, path.Join(migrationsDir(backend), "*.up.sql"))
	if err != nil {
		return err
	}
	sort.Strings(files)

	for _, file := range files {
		ddl, err := migrationsFS.ReadFile(file)
		if err != nil {
			return err
		}
		if _, err := db.Exec(strings.TrimSpace(string(ddl))); err != nil {
			return fmt.Errorf("failed to apply %s: %w", path.Base(file), err)
		}
	}
	return nil
}

// disabled reports whether writes should be skipped.
func (hs *HistoryStoreImpl) disabled() bool {
	return hs.backend == schema.NoneBackend || hs.db == nil
}

// BeginRun creates a new ranking run and returns its unique ID.
func (hs *HistoryStoreImpl) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	if hs.disabled() {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}
	runUUID := uuid.NewString()

	var runID int64
	switch hs.backend {
	case schema.PostgreSQLBackend:
		query := hs.db.Rebind(`INSERT INTO ` + rankingRunsTable + ` (run_uuid, start_time, config_params) VALUES (?, ?, ?) RETURNING run_id`)
		err = hs.db.QueryRow(query, runUUID, formatTime(startTime, hs.backend), string(configJSON)).Scan(&runID)
	default: // SQLite and MySQL
		query := `INSERT INTO ` + rankingRunsTable + ` (run_uuid, start_time, config_params) VALUES (?, ?, ?)`
		var result sql.Result
		result, err = hs.db.Exec(query, runUUID, formatTime(startTime, hs.backend), string(configJSON))
		if err == nil {
			runID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert ranking run: %w", err)
	}
	return runID, nil
}

// EndRun updates the ranking run with completion data.
func (hs *HistoryStoreImpl) EndRun(runID int64, endTime time.Time, totalEntities int) error {
	if hs.disabled() {
		return nil
	}

	var startTime dbTime
	query := hs.db.Rebind(`SELECT start_time FROM ` + rankingRunsTable + ` WHERE run_id = ?`)
	if err := hs.db.Get(&startTime, query, runID); err != nil {
		return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}
	durationMs := endTime.Sub(startTime.Time).Milliseconds()

	update := hs.db.Rebind(`UPDATE ` + rankingRunsTable + ` SET end_time = ?, run_duration_ms = ?, total_entities = ? WHERE run_id = ?`)
	if _, err := hs.db.Exec(update, formatTime(endTime, hs.backend), durationMs, totalEntities, runID); err != nil {
		return fmt.Errorf("failed to update ranking run: %w", err)
	}
	return nil
}

// RecordEntityScores stores the ranked entities of a run in one transaction.
func (hs *HistoryStoreImpl) RecordEntityScores(runID int64, entities []schema.EnrichedEntityResult) error {
	if hs.disabled() || len(entities) == 0 {
		return nil
	}

	tx, err := hs.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Preparex(hs.db.Rebind(`INSERT INTO ` + entityScoresTable + `
		(run_id, entity_rank, company, fin_score, med_score, rep_score, composite, integral_100, score_label)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`))
	if err != nil {
		return fmt.Errorf("failed to prepare entity insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, e := range entities {
		if _, err := stmt.Exec(runID, e.Rank, e.Company, e.FinancialScore, e.MediaScore,
			e.ReputationScore, e.Composite, e.Integral100, e.Label); err != nil {
			return fmt.Errorf("failed to insert entity score for %q: %w", e.Company, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit entity scores: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}
	if hs.disabled() {
		return status, nil
	}

	if err := hs.db.Get(&status.TotalRuns, `SELECT COUNT(*) FROM `+rankingRunsTable); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		var last struct {
			RunID     int64  `db:"run_id"`
			RunUUID   string `db:"run_uuid"`
			StartTime dbTime `db:"start_time"`
		}
		lastQuery := `SELECT run_id, run_uuid, start_time FROM ` + rankingRunsTable + ` ORDER BY run_id DESC LIMIT 1`
		if err := hs.db.Get(&last, lastQuery); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		status.LastRunID = last.RunID
		status.LastRunUUID = last.RunUUID
		status.LastRunTime = last.StartTime.Time

		var oldest dbTime
		oldestQuery := `SELECT start_time FROM ` + rankingRunsTable + ` ORDER BY run_id ASC LIMIT 1`
		if err := hs.db.Get(&oldest, oldestQuery); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		status.OldestRunTime = oldest.Time

		entitiesQuery := `SELECT COALESCE(SUM(total_entities), 0) FROM ` + rankingRunsTable
		if err := hs.db.Get(&status.TotalEntities, entitiesQuery); err != nil {
			return status, fmt.Errorf("failed to get total entities: %w", err)
		}
	}

	for _, table := range []string{rankingRunsTable, entityScoresTable} {
		var count int64
		if err := hs.db.Get(&count, `SELECT COUNT(*) FROM `+table); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// runRow is the scan target for integral_ranking_runs.
type runRow struct {
	RunID         int64          `db:"run_id"`
	RunUUID       string         `db:"run_uuid"`
	StartTime     dbTime         `db:"start_time"`
	EndTime       dbTime         `db:"end_time"`
	RunDurationMs sql.NullInt32  `db:"run_duration_ms"`
	TotalEntities int32          `db:"total_entities"`
	ConfigParams  sql.NullString `db:"config_params"`
}

// GetAllRuns retrieves all ranking runs from the store.
func (hs *HistoryStoreImpl) GetAllRuns() ([]schema.RankingRunRecord, error) {
	if hs.disabled() {
		return nil, nil
	}

	var rows []runRow
	query := `SELECT run_id, run_uuid, start_time, end_time, run_duration_ms, total_entities, config_params
		FROM ` + rankingRunsTable + ` ORDER BY run_id`
	if err := hs.db.Select(&rows, query); err != nil {
		return nil, fmt.Errorf("failed to query ranking runs: %w", err)
	}

	results := make([]schema.RankingRunRecord, 0, len(rows))
	for _, r := range rows {
		record := schema.RankingRunRecord{
			RunID:         r.RunID,
			RunUUID:       r.RunUUID,
			StartTime:     r.StartTime.Time,
			TotalEntities: r.TotalEntities,
		}
		if r.EndTime.Valid {
			end := r.EndTime.Time
			record.EndTime = &end
		}
		if r.RunDurationMs.Valid {
			d := r.RunDurationMs.Int32
			record.RunDurationMs = &d
		}
		if r.ConfigParams.Valid {
			p := r.ConfigParams.String
			record.ConfigParams = &p
		}
		results = append(results, record)
	}
	return results, nil
}

// scoreRow is the scan target for integral_entity_scores.
type scoreRow struct {
	RunID           int64   `db:"run_id"`
	Company         string  `db:"company"`
	Rank            int32   `db:"entity_rank"`
	FinancialScore  float64 `db:"fin_score"`
	MediaScore      float64 `db:"med_score"`
	ReputationScore float64 `db:"rep_score"`
	Composite       float64 `db:"composite"`
	Integral100     float64 `db:"integral_100"`
	Label           string  `db:"score_label"`
}

// GetAllEntityScores retrieves all entity scores from the store.
func (hs *HistoryStoreImpl) GetAllEntityScores() ([]schema.EntityScoreRecord, error) {
	if hs.disabled() {
		return nil, nil
	}

	var rows []scoreRow
	query := `SELECT run_id, entity_rank, company, fin_score, med_score, rep_score, composite, integral_100, score_label
		FROM ` + entityScoresTable + ` ORDER BY run_id, entity_rank`
	if err := hs.db.Select(&rows, query); err != nil {
		return nil, fmt.Errorf("failed to query entity scores: %w", err)
	}

	results := make([]schema.EntityScoreRecord, len(rows))
	for i, r := range rows {
		results[i] = schema.EntityScoreRecord(r)
	}
	return results, nil
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.UTC().Format(time.RFC3339Nano)
	default:
		return t.UTC()
	}
}

// timeLayouts are the text encodings a timestamp may come back in.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// dbTime scans a timestamp stored natively or as text. NULL leaves Valid unset.
type dbTime struct {
	Time  time.Time
	Valid bool
}

// Scan implements sql.Scanner.
func (t *dbTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = dbTime{}
		return nil
	case time.Time:
		*t = dbTime{Time: v, Valid: true}
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	default:
		return fmt.Errorf("unsupported time value of type %T", src)
	}
}

func (t *dbTime) parse(s string) error {
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = dbTime{Time: parsed, Valid: true}
			return nil
		}
	}
	return fmt.Errorf("failed to parse time %q", s)
}
