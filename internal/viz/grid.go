// Package viz renders decision regions and training curves with gonum/plot.
package viz

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/dataset"
)

// Grid sampling defaults.
const (
	Resolution = 0.02
	Margin     = 1.0
)

// Predictor is the part of a model the plots need.
type Predictor interface {
	Predict(X mat.Matrix) ([]float64, error)
}

// Grid holds model predictions sampled over a 2D lattice.
// It implements plotter.GridXYZ: columns run along x1, rows along x2.
type Grid struct {
	x1, x2 []float64
	z      []float64 // row-major, len(x2) rows of len(x1)
}

// arange returns start, start+step, ... up to but excluding stop.
func arange(start, stop, step float64) []float64 {
	n := int(math.Ceil((stop - start) / step))
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// NewGrid samples m over the two feature columns of t, each spanning its
// value range widened by Margin on both sides, every resolution units.
func NewGrid(t *dataset.Table, m Predictor, resolution float64) (*Grid, error) {
	if resolution <= 0 {
		return nil, errors.Errorf("resolution must be positive, got %v", resolution)
	}
	features := dataset.FeatureColumns(t)
	if len(features) != 2 {
		return nil, errors.Errorf("decision regions need exactly 2 features, got %v", features)
	}

	axes := make([][]float64, 2)
	for i, name := range features {
		low, high, err := t.Range(name)
		if err != nil {
			return nil, err
		}
		axes[i] = arange(low-Margin, high+Margin, resolution)
	}

	g := &Grid{x1: axes[0], x2: axes[1]}
	cols, rows := g.Dims()
	points := mat.NewDense(rows*cols, 2, nil)
	for r, y := range g.x2 {
		for c, x := range g.x1 {
			points.Set(r*cols+c, 0, x)
			points.Set(r*cols+c, 1, y)
		}
	}

	z, err := m.Predict(points)
	if err != nil {
		return nil, errors.Wrap(err, "predict grid")
	}
	g.z = z
	return g, nil
}

// Dims returns the number of x1 and x2 samples.
func (g *Grid) Dims() (c, r int) { return len(g.x1), len(g.x2) }

// Z returns the prediction at column c, row r.
func (g *Grid) Z(c, r int) float64 { return g.z[r*len(g.x1)+c] }

// X returns the x1 coordinate of column c.
func (g *Grid) X(c int) float64 { return g.x1[c] }

// Y returns the x2 coordinate of row r.
func (g *Grid) Y(r int) float64 { return g.x2[r] }
