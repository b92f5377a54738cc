package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/integral/internal/contract"
	"github.com/huangsam/integral/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// errTableParquet is returned when a table view is asked for Parquet output.
var errTableParquet = errors.New("parquet output is only supported by the rank command")

// WriteUnifiedTable outputs the merged table, dispatching based on the output format configured.
func WriteUnifiedTable(table schema.Table, cfg *contract.Config) error {
	fmtFloat := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, table)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVTable(w, table)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return errTableParquet
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := writeDataTable(w, table, cfg.ResultLimit, fmtFloat); err != nil {
				return err
			}
			_, err := fmt.Fprintf(w, "Showing %d of %d rows across %d columns\n",
				min(len(table.Rows), cfg.ResultLimit), len(table.Rows), len(table.Columns))
			return err
		}, "Wrote table")
	}
}

// SourceView is one source table as printed by the sources command.
type SourceView struct {
	schema.SourceInfo
	Table *schema.Table `json:"table,omitempty"`
}

// WriteSourceTables outputs each source table on its own, dispatching based on
// the output format configured. Sources that were not supplied are reported.
func WriteSourceTables(views []SourceView, cfg *contract.Config) error {
	fmtFloat := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, views)
		}, "Wrote JSON")
	case schema.CSVOut, schema.ParquetOut:
		return fmt.Errorf("%s output is not supported by the sources command", cfg.Output)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSourceText(w, views, cfg.ResultLimit, fmtFloat)
		}, "Wrote table")
	}
}

// writeSourceText prints a titled table per supplied source.
func writeSourceText(w io.Writer, views []SourceView, limit int, fmtFloat func(float64) string) error {
	for i, v := range views {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if !v.Loaded || v.Table == nil {
			if _, err := fmt.Fprintf(w, "⚠️  No %s source supplied\n", v.Group); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "📄 %s: %s (%d rows)\n", v.Group, v.Path, v.Rows); err != nil {
			return err
		}
		if v.Table.IsEmpty() {
			if _, err := fmt.Fprintln(w, "   (no rows)"); err != nil {
				return err
			}
			continue
		}
		if err := writeDataTable(w, *v.Table, limit, fmtFloat); err != nil {
			return err
		}
	}
	return nil
}

// writeDataTable renders a schema.Table with tablewriter, showing at most limit rows.
func writeDataTable(w io.Writer, table schema.Table, limit int, fmtFloat func(float64) string) error {
	tbl := tablewriter.NewWriter(w)
	tbl.Header(table.Columns)
	tbl.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	rows := table.Rows
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	data := make([][]string, 0, len(rows))
	for r := range rows {
		row := make([]string, len(table.Columns))
		for c := range table.Columns {
			row[c] = formatCell(table.Cell(r, c), fmtFloat)
		}
		data = append(data, row)
	}

	if err := tbl.Bulk(data); err != nil {
		return err
	}
	return tbl.Render()
}

// writeCSVTable writes every row of a table as CSV with raw cell values.
func writeCSVTable(w io.Writer, table schema.Table) error {
	return writeCSVWithHeader(w, table.Columns, func(cw *csv.Writer) error {
		for r := range table.Rows {
			rec := make([]string, len(table.Columns))
			for c := range table.Columns {
				rec[c] = table.Cell(r, c).String()
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
