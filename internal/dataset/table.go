// Package dataset holds labeled tabular data and splits it into features and labels.
package dataset

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"
)

// LabelColumn is the name of the column holding the target labels.
const LabelColumn = "y"

// Table is an immutable, column-ordered set of equally long numeric columns.
type Table struct {
	columns []string
	values  map[string][]float64
	rows    int
}

// NewTable creates a table from named columns kept in the given order.
// Every column must be present in values and all columns must have the same length.
func NewTable(columns []string, values map[string][]float64) (*Table, error) {
	if len(columns) == 0 {
		return nil, errors.New("table has no columns")
	}
	if dup := lo.FindDuplicates(columns); len(dup) > 0 {
		return nil, errors.Errorf("duplicate columns %v", dup)
	}
	if extra := lo.Without(lo.Keys(values), columns...); len(extra) > 0 {
		sort.Strings(extra)
		return nil, errors.Errorf("values for undeclared columns %v", extra)
	}

	t := &Table{
		columns: append([]string(nil), columns...),
		values:  make(map[string][]float64, len(columns)),
		rows:    -1,
	}
	for _, name := range columns {
		col, ok := values[name]
		if !ok {
			return nil, errors.Errorf("missing values for column %q", name)
		}
		if t.rows >= 0 && len(col) != t.rows {
			return nil, errors.Errorf("column %q has %d rows, expected %d", name, len(col), t.rows)
		}
		t.rows = len(col)
		t.values[name] = append([]float64(nil), col...)
	}
	return t, nil
}

// FromMap creates a table from a column mapping. Go maps carry no order, so
// columns are sorted by name, which keeps x1, x2, ... ahead of y.
func FromMap(values map[string][]float64) (*Table, error) {
	columns := lo.Keys(values)
	sort.Strings(columns)
	return NewTable(columns, values)
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Has reports whether the table has a column with the given name.
func (t *Table) Has(name string) bool {
	_, ok := t.values[name]
	return ok
}

// Column returns a copy of the named column, or nil if absent.
func (t *Table) Column(name string) []float64 {
	col, ok := t.values[name]
	if !ok {
		return nil
	}
	return append([]float64(nil), col...)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return t.rows
}

// Range returns the minimum and maximum of the named column.
func (t *Table) Range(name string) (low, high float64, err error) {
	col, ok := t.values[name]
	if !ok {
		return 0, 0, errors.Errorf("no column %q", name)
	}
	if len(col) == 0 {
		return 0, 0, errors.Errorf("column %q is empty", name)
	}
	return floats.Min(col), floats.Max(col), nil
}

// String renders the table as aligned text with a leading row index.
func (t *Table) String() string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "\t%s\t\n", strings.Join(t.columns, "\t"))
	for i := 0; i < t.rows; i++ {
		cells := lo.Map(t.columns, func(name string, _ int) string {
			return fmt.Sprintf("%g", t.values[name][i])
		})
		fmt.Fprintf(w, "%d\t%s\t\n", i, strings.Join(cells, "\t"))
	}
	w.Flush()
	return sb.String()
}
