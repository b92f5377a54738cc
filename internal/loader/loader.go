// Package loader reads source tables from CSV and XLSX files.
package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/huangsam/integral/schema"
	"github.com/rs/zerolog/log"
)

// Source names one optional input table.
type Source struct {
	Group schema.MetricGroup
	Path  string // empty means the source was not supplied
}

// SheetSeparator splits an XLSX path from an explicit sheet name, as in "book.xlsx#Q4".
const SheetSeparator = "#"

const bom = "\ufeff"

// naTokens are the cell spellings read as missing values.
var naTokens = map[string]bool{
	"":     true,
	"NA":   true,
	"N/A":  true,
	"n/a":  true,
	"NaN":  true,
	"nan":  true,
	"null": true,
	"NULL": true,
	"None": true,
	"#N/A": true,
	"<NA>": true,
	"-NaN": true,
	"-nan": true,
}

// Load reads one source into a table named after its group.
// An empty path yields an empty table.
func Load(ctx context.Context, src Source, key string) (schema.Table, error) {
	empty := schema.Table{Name: string(src.Group)}
	if src.Path == "" {
		return empty, nil
	}
	if err := ctx.Err(); err != nil {
		return empty, err
	}

	path, sheet := splitSheet(src.Path)

	var (
		records [][]string
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		records, err = readXLSX(path, sheet)
	case ".csv", ".tsv", ".txt", "":
		records, err = readCSV(path)
	default:
		return empty, fmt.Errorf("unsupported source format %q for %s", filepath.Ext(path), src.Group)
	}
	if err != nil {
		return empty, fmt.Errorf("failed to read %s source %q: %w", src.Group, src.Path, err)
	}

	table := buildTable(string(src.Group), records, key)
	log.Debug().
		Str("group", string(src.Group)).
		Str("path", src.Path).
		Int("rows", len(table.Rows)).
		Int("columns", len(table.Columns)).
		Msg("loaded source")
	return table, nil
}

// LoadAll reads every source in order. The result has one table per source.
func LoadAll(ctx context.Context, sources []Source, key string) ([]schema.Table, error) {
	tables := make([]schema.Table, 0, len(sources))
	for _, src := range sources {
		t, err := Load(ctx, src, key)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

// splitSheet separates "book.xlsx#Sheet" into path and sheet name.
func splitSheet(path string) (string, string) {
	if i := strings.LastIndex(path, SheetSeparator); i > 0 {
		ext := strings.ToLower(filepath.Ext(path[:i]))
		if ext == ".xlsx" || ext == ".xlsm" {
			return path[:i], path[i+1:]
		}
	}
	return path, ""
}

// dedupeColumns renames repeated header names to name.1, name.2 and so on,
// skipping any candidate already used by another column.
func dedupeColumns(names []string) []string {
	out := make([]string, len(names))
	used := make(map[string]bool, len(names))
	counts := make(map[string]int, len(names))
	for _, n := range names {
		used[n] = true
	}
	seen := make(map[string]bool, len(names))
	for i, n := range names {
		if !seen[n] {
			seen[n] = true
			out[i] = n
			continue
		}
		for {
			counts[n]++
			candidate := n + "." + strconv.Itoa(counts[n])
			if !used[candidate] {
				used[candidate] = true
				out[i] = candidate
				break
			}
		}
	}
	return out
}

// buildTable turns raw records into a typed table. The first record is the header.
// Cells of the key column are always kept as text.
func buildTable(name string, records [][]string, key string) schema.Table {
	table := schema.Table{Name: name}
	if len(records) == 0 {
		return table
	}

	header := records[0]
	table.Columns = make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, bom)
		}
		table.Columns[i] = h
	}
	table.Columns = dedupeColumns(table.Columns)
	keyIdx := table.ColumnIndex(key)

	for _, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		row := make([]schema.Value, len(table.Columns))
		for c := range table.Columns {
			if c >= len(rec) {
				row[c] = schema.Missing()
				continue
			}
			row[c] = ParseCell(rec[c], c == keyIdx)
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

// ParseCell converts a raw cell. NA spellings become missing, finite numbers
// become numbers and anything else becomes text. With asText set, any
// present cell stays text.
func ParseCell(raw string, asText bool) schema.Value {
	s := strings.TrimSpace(raw)
	if naTokens[s] {
		return schema.Missing()
	}
	if asText {
		return schema.Text(s)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return schema.Text(s)
	}
	v := schema.Number(f)
	if v.IsMissing() {
		return schema.Text(s)
	}
	return v
}

// isBlank reports whether every field of a record is empty.
func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
