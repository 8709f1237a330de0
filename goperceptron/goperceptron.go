package goperceptron

import (
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/dataset"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/loss"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/perceptron"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/persist"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/viz"
)

// Re-export common types and functions for easier access
type (
	Perceptron = perceptron.Perceptron
	Option     = perceptron.Option
	Callback   = perceptron.Callback
	Table      = dataset.Table
	Loss       = loss.Loss
)

// Errors
var (
	ErrInvalidSchema     = dataset.ErrInvalidSchema
	ErrDimensionMismatch = perceptron.ErrDimensionMismatch
	ErrNotInitialized    = perceptron.ErrNotInitialized
	ErrInvalidParam      = perceptron.ErrInvalidParam
	ErrBadFormat         = persist.ErrBadFormat
)

// Model creation
func New(eta float64, epochs int, opts ...Option) (*Perceptron, error) {
	return perceptron.New(eta, epochs, opts...)
}

func WithSeed(seed int64) Option {
	return perceptron.WithSeed(seed)
}

func WithLoss(l Loss) Option {
	return perceptron.WithLoss(l)
}

func WithCallbacks(cbs ...Callback) Option {
	return perceptron.WithCallbacks(cbs...)
}

func LogProgress(log logrus.FieldLogger) Callback {
	return perceptron.NewLogCallback(log)
}

// Losses
var (
	Absolute = loss.Absolute{}
	Squared  = loss.Squared{}
)

// Data
func TruthTable(name string) (*Table, error) {
	return dataset.TruthTable(name)
}

func NewTable(columns []string, values map[string][]float64) (*Table, error) {
	return dataset.NewTable(columns, values)
}

func LoadCSVFile(path string) (*Table, error) {
	return dataset.LoadCSVFile(path)
}

func Prepare(t *Table) (*mat.Dense, []float64, error) {
	return dataset.Prepare(t, nil)
}

// Persistence
func Save(dir, filename string, p *Perceptron) (string, error) {
	return persist.Save(dir, filename, p)
}

func Load(path string) (*Perceptron, error) {
	return persist.Load(path)
}

// Plots
func DecisionRegions(t *Table, dir, filename string, p *Perceptron) (string, error) {
	return viz.DecisionRegions(t, dir, filename, p)
}

func LossCurve(history []float64, dir, filename string) (string, error) {
	return viz.LossCurve(history, dir, filename)
}
