package dataset

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrInvalidSchema is returned when a table lacks the label column
	// or has no feature columns besides it.
	ErrInvalidSchema = errors.New("invalid schema")

	// ErrEmptyTable is returned when a table has no rows to prepare.
	ErrEmptyTable = errors.New("empty table")
)

// FeatureColumns returns every column except the label, in table order.
func FeatureColumns(t *Table) []string {
	return lo.Filter(t.columns, func(name string, _ int) bool {
		return name != LabelColumn
	})
}

// Features returns the feature matrix of t without requiring a label column.
// A y column, if present, is left out.
func Features(t *Table) (*mat.Dense, error) {
	features := FeatureColumns(t)
	if len(features) == 0 {
		return nil, errors.Wrap(ErrInvalidSchema, "no feature columns")
	}
	if t.rows == 0 {
		return nil, errors.WithStack(ErrEmptyTable)
	}
	return t.matrix(features), nil
}

func (t *Table) matrix(columns []string) *mat.Dense {
	X := mat.NewDense(t.rows, len(columns), nil)
	for j, name := range columns {
		X.SetCol(j, t.values[name])
	}
	return X
}

// Prepare splits t into a feature matrix holding every column except y, in
// column order, and the label vector held by y. Row order is preserved.
// log may be nil.
func Prepare(t *Table, log logrus.FieldLogger) (*mat.Dense, []float64, error) {
	if log != nil {
		log.Info("Preparing the data by segregating independent and dependent variables")
	}

	if !lo.Contains(t.columns, LabelColumn) {
		return nil, nil, errors.Wrapf(ErrInvalidSchema, "no %q column in %v", LabelColumn, t.columns)
	}
	features := FeatureColumns(t)
	if len(features) == 0 {
		return nil, nil, errors.Wrap(ErrInvalidSchema, "no feature columns")
	}
	if t.rows == 0 {
		return nil, nil, errors.WithStack(ErrEmptyTable)
	}

	X := t.matrix(features)
	y := t.Column(LabelColumn)

	if log != nil {
		log.WithFields(logrus.Fields{
			"rows":     t.rows,
			"features": features,
		}).Debug("Prepared feature matrix and label vector")
	}
	return X, y, nil
}
