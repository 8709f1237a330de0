package dataset

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"gonum.org/v1/gonum/mat"
	"gotest.tools/v3/assert"
)

func TestPrepare(t *testing.T) {
	tbl, err := NewTable([]string{"x2", "y", "x1"}, map[string][]float64{
		"x1": {10, 20, 30},
		"x2": {1, 2, 3},
		"y":  {1, 0, 1},
	})
	assert.NilError(t, err)

	X, y, err := Prepare(tbl, nil)
	assert.NilError(t, err)

	rows, cols := X.Dims()
	assert.Equal(t, cols, len(tbl.Columns())-1)
	assert.Equal(t, rows, tbl.Len())

	// Feature columns keep table order: x2 then x1
	want := mat.NewDense(3, 2, []float64{
		1, 10,
		2, 20,
		3, 30,
	})
	assert.Assert(t, mat.Equal(X, want), "X = %v", mat.Formatted(X))
	assert.DeepEqual(t, y, []float64{1, 0, 1})
}

func TestPrepareDoesNotMutateTable(t *testing.T) {
	tbl, err := TruthTable("xor")
	assert.NilError(t, err)

	X, y, err := Prepare(tbl, nil)
	assert.NilError(t, err)

	X.Set(0, 0, 7)
	y[0] = 7
	assert.DeepEqual(t, tbl.Column("x1"), []float64{0, 0, 1, 1})
	assert.DeepEqual(t, tbl.Column("y"), []float64{0, 1, 1, 0})
}

func TestPrepareInvalidSchema(t *testing.T) {
	noLabel, err := FromMap(map[string][]float64{"x1": {0, 1}, "label": {0, 1}})
	assert.NilError(t, err)
	_, _, err = Prepare(noLabel, nil)
	assert.Assert(t, errors.Is(err, ErrInvalidSchema), "got %v", err)

	onlyLabel, err := FromMap(map[string][]float64{"y": {0, 1}})
	assert.NilError(t, err)
	_, _, err = Prepare(onlyLabel, nil)
	assert.Assert(t, errors.Is(err, ErrInvalidSchema), "got %v", err)

	empty, err := FromMap(map[string][]float64{"x1": {}, "y": {}})
	assert.NilError(t, err)
	_, _, err = Prepare(empty, nil)
	assert.Assert(t, errors.Is(err, ErrEmptyTable), "got %v", err)
}

func TestPrepareLogs(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	tbl, err := TruthTable("and")
	assert.NilError(t, err)
	_, _, err = Prepare(tbl, log)
	assert.NilError(t, err)

	assert.Equal(t, len(hook.AllEntries()), 2)
	assert.Equal(t, hook.LastEntry().Data["rows"], 4)
}

func TestFeatures(t *testing.T) {
	tbl, err := NewTable([]string{"y", "b", "a"}, map[string][]float64{
		"y": {1, 0},
		"b": {2, 3},
		"a": {4, 5},
	})
	assert.NilError(t, err)
	X, err := Features(tbl)
	assert.NilError(t, err)
	assert.DeepEqual(t, mat.Row(nil, 1, X), []float64{3, 5})

	unlabeled, err := NewTable([]string{"x1"}, map[string][]float64{"x1": {7}})
	assert.NilError(t, err)
	X, err = Features(unlabeled)
	assert.NilError(t, err)
	assert.Equal(t, X.At(0, 0), 7.0)

	labelsOnly, err := NewTable([]string{"y"}, map[string][]float64{"y": {1}})
	assert.NilError(t, err)
	_, err = Features(labelsOnly)
	assert.Assert(t, errors.Is(err, ErrInvalidSchema))
}
