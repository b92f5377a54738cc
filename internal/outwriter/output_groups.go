package outwriter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/integral/internal/contract"
	"github.com/huangsam/integral/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteColumnGroups outputs the column classification, dispatching based on the output format configured.
func WriteColumnGroups(result schema.ClassificationResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut, schema.ParquetOut:
		return fmt.Errorf("%s output is not supported by the groups command", cfg.Output)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeGroupsText(w, result)
		}, "Wrote table")
	}
}

// writeGroupsText prints one row per group followed by the columns the mean ignores.
func writeGroupsText(w io.Writer, result schema.ClassificationResult) error {
	if _, err := fmt.Fprintf(w, "🧭 Column groups (key: %s)\n", result.Key); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Group", "Count", "Columns"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	var data [][]string
	for _, group := range schema.AllGroups {
		columns := result.Groups.Columns(group)
		data = append(data, []string{string(group), strconv.Itoa(len(columns)), joinOrDash(columns)})
	}
	data = append(data, []string{"unmatched", strconv.Itoa(len(result.Groups.Unmatched)), joinOrDash(result.Groups.Unmatched)})

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if len(result.NonNumeric) > 0 {
		if _, err := fmt.Fprintf(w, "Non-numeric columns ignored by the group mean: %s\n", strings.Join(result.NonNumeric, ", ")); err != nil {
			return err
		}
	}
	for _, group := range schema.AllGroups {
		if len(result.Groups.Columns(group)) == 0 {
			if _, err := fmt.Fprintf(w, "No %s columns matched; every entity gets the neutral 0.5 for that group\n", group); err != nil {
				return err
			}
		}
	}
	return nil
}

// joinOrDash joins columns for display, using "-" for an empty list.
func joinOrDash(columns []string) string {
	if len(columns) == 0 {
		return "-"
	}
	return strings.Join(columns, ", ")
}
