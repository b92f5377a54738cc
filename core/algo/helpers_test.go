package algo

import (
	"github.com/huangsam/integral/schema"
)

// tbl builds a table from loosely typed cells: string becomes text,
// float64 or int becomes a number and nil becomes missing.
func tbl(name string, columns []string, rows ...[]any) schema.Table {
	t := schema.Table{Name: name, Columns: columns}
	for _, row := range rows {
		values := make([]schema.Value, len(row))
		for i, cell := range row {
			switch v := cell.(type) {
			case string:
				values[i] = schema.Text(v)
			case float64:
				values[i] = schema.Number(v)
			case int:
				values[i] = schema.Number(float64(v))
			default:
				values[i] = schema.Missing()
			}
		}
		t.Rows = append(t.Rows, values)
	}
	return t
}

// cellsByKey indexes a key-first table as key -> column -> rendered cell.
func cellsByKey(t schema.Table) map[string]map[string]string {
	out := make(map[string]map[string]string, len(t.Rows))
	for r, row := range t.Rows {
		cells := make(map[string]string, len(t.Columns))
		for c, name := range t.Columns {
			cells[name] = t.Cell(r, c).String()
		}
		out[row[0].String()] = cells
	}
	return out
}

// companies returns the company names of ranked entities in order.
func companies(entities []schema.EntityResult) []string {
	out := make([]string, len(entities))
	for i, e := range entities {
		out[i] = e.Company
	}
	return out
}
