package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/perceptron"
)

// ParseRows parses feature rows written as "0,1;1,1": rows separated by
// semicolons, values by commas.
func ParseRows(s string) (*mat.Dense, error) {
	var (
		data []float64
		cols = -1
	)
	rows := strings.Split(strings.TrimSpace(s), ";")
	for i, row := range rows {
		fields := strings.Split(row, ",")
		if cols >= 0 && len(fields) != cols {
			return nil, errors.Errorf("row %d has %d values, expected %d", i, len(fields), cols)
		}
		cols = len(fields)
		for _, f := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, errors.Wrapf(err, "row %d", i)
			}
			data = append(data, v)
		}
	}
	return mat.NewDense(len(rows), cols, data), nil
}

// Describe renders the model parameters and its loss history.
func Describe(p *perceptron.Perceptron) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "state:   %s\n", p.State())
	fmt.Fprintf(&sb, "eta:     %g\n", p.Eta())
	fmt.Fprintf(&sb, "epochs:  %d\n", p.Epochs())
	fmt.Fprintf(&sb, "loss:    %s\n", p.Loss().Name())
	if p.State() != perceptron.Uninitialized {
		fmt.Fprintf(&sb, "weights: %v\n", p.Weights())
		fmt.Fprintf(&sb, "bias:    %g\n", p.Bias())
	}
	fmt.Fprintf(&sb, "history: %v\n", p.TotalLoss())
	return sb.String()
}
