package dataset

import (
	"strings"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestNewTable(t *testing.T) {
	tbl, err := NewTable([]string{"b", "a", "y"}, map[string][]float64{
		"a": {1, 2},
		"b": {3, 4},
		"y": {0, 1},
	})
	assert.NilError(t, err)
	assert.DeepEqual(t, tbl.Columns(), []string{"b", "a", "y"})
	assert.Equal(t, tbl.Len(), 2)
	assert.Assert(t, tbl.Has("a"))
	assert.Assert(t, !tbl.Has("c"))
	assert.Assert(t, is.Nil(tbl.Column("c")))
}

func TestNewTableErrors(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		values  map[string][]float64
		errMsg  string
	}{
		{"no columns", nil, nil, "no columns"},
		{"ragged", []string{"x", "y"}, map[string][]float64{"x": {1, 2}, "y": {1}}, "has 1 rows"},
		{"missing", []string{"x", "y"}, map[string][]float64{"x": {1}}, "missing values"},
		{"undeclared", []string{"x"}, map[string][]float64{"x": {1}, "z": {2}}, "undeclared"},
		{"duplicate", []string{"x", "x"}, map[string][]float64{"x": {1}}, "duplicate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.columns, tt.values)
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestTableIsImmutable(t *testing.T) {
	src := map[string][]float64{"x1": {1, 2}, "y": {0, 1}}
	tbl, err := FromMap(src)
	assert.NilError(t, err)

	src["x1"][0] = 99
	col := tbl.Column("x1")
	col[1] = 42

	assert.DeepEqual(t, tbl.Column("x1"), []float64{1, 2})
}

func TestFromMapOrdersColumns(t *testing.T) {
	tbl, err := FromMap(map[string][]float64{
		"y":  {0},
		"x2": {1},
		"x1": {0},
	})
	assert.NilError(t, err)
	assert.DeepEqual(t, tbl.Columns(), []string{"x1", "x2", "y"})
}

func TestTableRange(t *testing.T) {
	tbl, err := FromMap(map[string][]float64{"x1": {3, -1, 2}, "y": {0, 1, 0}})
	assert.NilError(t, err)

	low, high, err := tbl.Range("x1")
	assert.NilError(t, err)
	assert.Equal(t, low, -1.0)
	assert.Equal(t, high, 3.0)

	_, _, err = tbl.Range("nope")
	assert.ErrorContains(t, err, "no column")
}

func TestTableString(t *testing.T) {
	tbl, err := TruthTable("or")
	assert.NilError(t, err)

	out := tbl.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Assert(t, is.Len(lines, 5))
	assert.Assert(t, is.Contains(lines[0], "x1"))
	assert.Assert(t, is.Contains(lines[4], "3"))
}

func TestTruthTables(t *testing.T) {
	assert.DeepEqual(t, TruthTables(), []string{"and", "nand", "or", "xor"})

	tests := map[string][]float64{
		"and":  {0, 0, 0, 1},
		"OR":   {0, 1, 1, 1},
		"xor":  {0, 1, 1, 0},
		"nand": {1, 1, 1, 0},
	}
	for name, want := range tests {
		tbl, err := TruthTable(name)
		assert.NilError(t, err, name)
		assert.DeepEqual(t, tbl.Columns(), []string{"x1", "x2", "y"})
		assert.DeepEqual(t, tbl.Column("x1"), []float64{0, 0, 1, 1})
		assert.DeepEqual(t, tbl.Column("x2"), []float64{0, 1, 0, 1})
		assert.DeepEqual(t, tbl.Column("y"), want)
	}

	_, err := TruthTable("xnor")
	assert.ErrorContains(t, err, "unknown truth table")
}
