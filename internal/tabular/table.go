package tabular

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Table is an ordered set of named columns with equal-length rows. An empty
// cell is the null sentinel: injected columns, blank spreadsheet cells and
// failed numeric coercions all read back as "".
type Table struct {
	Columns []string
	Rows    [][]string
}

// NewTable builds a table from a normalized header and raw data rows. Rows are
// padded or truncated to the header width. When normalization collapses two
// headers into the same name the later column's values win; the column keeps
// its first position.
func NewTable(header []string, rows [][]string) *Table {
	cols := make([]string, 0, len(header))
	pos := make(map[string]int, len(header))      // column name -> output position
	src := make([]int, 0, len(header))            // output position -> source cell index
	for i, name := range header {
		if p, ok := pos[name]; ok {
			src[p] = i
			continue
		}
		pos[name] = len(cols)
		cols = append(cols, name)
		src = append(src, i)
	}

	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		r := make([]string, len(cols))
		for p, i := range src {
			if i < len(row) {
				r[p] = strings.TrimSpace(row[i])
			}
		}
		out = append(out, r)
	}
	return &Table{Columns: cols, Rows: out}
}

// ColumnIndex returns the position of a column, or -1 when absent.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Column returns the values of the named column, or nil when absent.
func (t *Table) Column(name string) []string {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil
	}
	vals := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		vals[i] = row[idx]
	}
	return vals
}

// AddColumn appends a column. Values shorter than the row count are padded
// with the null sentinel.
func (t *Table) AddColumn(name string, values []string) {
	t.Columns = append(t.Columns, name)
	for i := range t.Rows {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		t.Rows[i] = append(t.Rows[i], v)
	}
}

// Records renders up to limit rows as column-keyed maps for display. Null
// cells become nil so they serialize as JSON null. A limit < 0 means all rows.
func (t *Table) Records(limit int) []map[string]interface{} {
	n := len(t.Rows)
	if limit >= 0 && limit < n {
		n = limit
	}
	recs := make([]map[string]interface{}, 0, n)
	for _, row := range t.Rows[:n] {
		rec := make(map[string]interface{}, len(t.Columns))
		for i, col := range t.Columns {
			if row[i] == "" {
				rec[col] = nil
			} else {
				rec[col] = row[i]
			}
		}
		recs = append(recs, rec)
	}
	return recs
}

// ParseDecimal coerces a cell to a decimal. The second return is false for
// null cells and unparseable values; callers treat both as missing data.
func ParseDecimal(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
