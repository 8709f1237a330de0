// Package perceptron implements a single-neuron linear threshold classifier
// trained online with the perceptron rule.
package perceptron

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/activations"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/loss"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/opt"
)

var (
	// ErrDimensionMismatch is returned when input feature counts disagree with the weights,
	// or when labels and rows are not aligned.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrNotInitialized is returned by Predict before any weights exist.
	ErrNotInitialized = errors.New("perceptron not initialized")

	// ErrInvalidParam is returned for out-of-range hyperparameters.
	ErrInvalidParam = errors.New("invalid parameter")
)

// InitScale is the standard deviation of the initial weights.
const InitScale = 1e-4

// State is the lifecycle stage of a Perceptron.
type State int

const (
	// Uninitialized has no weights yet.
	Uninitialized State = iota
	// Initialized has weights but has not completed a Fit.
	Initialized
	// Trained has completed at least one Fit.
	Trained
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initialized:
		return "initialized"
	case Trained:
		return "trained"
	default:
		return "unknown"
	}
}

// Perceptron is a single linear threshold unit.
// The weight vector has one slot per feature plus a trailing bias slot,
// which is multiplied by a constant 1 appended to every input.
type Perceptron struct {
	weights []float64
	dim     int
	epochs  int
	history []float64
	state   State

	act       activations.Activation
	loss      loss.Loss
	opt       opt.SGD
	rng       *rand.Rand
	callbacks []Callback

	// Reusable buffers for the training loop
	xBuf    []float64
	gradBuf []float64
	predBuf []float64
}

// Option configures a Perceptron at construction.
type Option func(*Perceptron)

// WithSeed makes weight initialization reproducible.
func WithSeed(seed int64) Option {
	return func(p *Perceptron) {
		p.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand sets the random source used for weight initialization.
func WithRand(r *rand.Rand) Option {
	return func(p *Perceptron) {
		p.rng = r
	}
}

// WithLoss sets the loss recorded per epoch. Defaults to loss.Absolute.
func WithLoss(l loss.Loss) Option {
	return func(p *Perceptron) {
		p.loss = l
	}
}

// WithCallbacks registers training callbacks, invoked in order.
func WithCallbacks(cbs ...Callback) Option {
	return func(p *Perceptron) {
		p.callbacks = append(p.callbacks, cbs...)
	}
}

// New creates an uninitialized perceptron with learning rate eta in (0, 1]
// that trains for the given number of epochs on every Fit.
func New(eta float64, epochs int, opts ...Option) (*Perceptron, error) {
	sgd := opt.SGD{LearningRate: eta}
	if err := sgd.Validate(); err != nil {
		return nil, errors.Wrap(ErrInvalidParam, err.Error())
	}
	if epochs <= 0 {
		return nil, errors.Wrapf(ErrInvalidParam, "epochs must be positive, got %d", epochs)
	}

	p := &Perceptron{
		epochs:  epochs,
		history: []float64{},
		act:     activations.Step{},
		loss:    loss.Absolute{},
		opt:     sgd,
	}
	for _, o := range opts {
		o(p)
	}
	if p.rng == nil {
		p.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return p, nil
}

// Initialize draws dim+1 weights from N(0, InitScale^2), replacing any
// existing weights. The loss history is kept.
func (p *Perceptron) Initialize(dim int) error {
	if dim <= 0 {
		return errors.Wrapf(ErrInvalidParam, "feature dimension must be positive, got %d", dim)
	}
	weights := make([]float64, dim+1)
	for i := range weights {
		weights[i] = p.rng.NormFloat64() * InitScale
	}
	p.setWeights(weights)
	p.state = Initialized
	return nil
}

func (p *Perceptron) setWeights(w []float64) {
	p.weights = w
	p.dim = len(w) - 1
	p.xBuf = make([]float64, len(w))
	p.gradBuf = make([]float64, len(w))
}

// Fit trains in place for the configured number of epochs over the rows of X,
// in row order, updating the weights after every sample. An uninitialized
// perceptron is first initialized from the column count of X; otherwise
// training resumes from the current weights. Every epoch appends one value
// to the loss history. There is no early stopping.
//
// Callback failures do not interrupt training; the first one is returned
// once all epochs have run.
func (p *Perceptron) Fit(X mat.Matrix, y []float64) error {
	rows, cols := X.Dims()
	if p.state == Uninitialized {
		if err := p.Initialize(cols); err != nil {
			return err
		}
	}
	if cols != p.dim {
		return errors.Wrapf(ErrDimensionMismatch, "X has %d features, weights expect %d", cols, p.dim)
	}
	if len(y) != rows {
		return errors.Wrapf(ErrDimensionMismatch, "X has %d rows, y has %d labels", rows, len(y))
	}

	if cap(p.predBuf) < rows {
		p.predBuf = make([]float64, rows)
	}
	preds := p.predBuf[:rows]

	for _, cb := range p.callbacks {
		cb.OnTrainBegin(p)
	}

	for e := 0; e < p.epochs; e++ {
		epoch := len(p.history)
		for _, cb := range p.callbacks {
			cb.OnEpochBegin(epoch, p)
		}

		for i := 0; i < rows; i++ {
			preds[i] = p.trainSample(X, i, y[i])
			for _, cb := range p.callbacks {
				cb.OnSampleEnd(i, y[i]-preds[i], p)
			}
		}

		l := p.loss.Forward(preds, y)
		p.history = append(p.history, l)

		for _, cb := range p.callbacks {
			cb.OnEpochEnd(epoch, l, p)
		}
	}

	p.state = Trained
	for _, cb := range p.callbacks {
		cb.OnTrainEnd(p)
	}
	return callbackErr(p.callbacks)
}

// trainSample applies the perceptron rule to row i of X and returns the
// prediction made before the update.
func (p *Perceptron) trainSample(X mat.Matrix, i int, target float64) float64 {
	x := p.augment(X, i, p.xBuf)
	z := floats.Dot(p.weights, x)
	yHat := p.act.Activate(z)

	// w <- w + eta * e * x, expressed as a descent step on -e * x
	e := (target - yHat) * p.act.Derivative(z)
	for j, xj := range x {
		p.gradBuf[j] = -e * xj
	}
	p.opt.StepInPlace(p.weights, p.gradBuf)
	return yHat
}

// augment copies row i of X into buf and sets the trailing bias input to 1.
func (p *Perceptron) augment(X mat.Matrix, i int, buf []float64) []float64 {
	mat.Row(buf[:p.dim], i, X)
	buf[p.dim] = 1
	return buf
}

// Predict returns the step decision for every row of X, in row order.
// It does not modify the model.
func (p *Perceptron) Predict(X mat.Matrix) ([]float64, error) {
	if p.state == Uninitialized {
		return nil, errors.WithStack(ErrNotInitialized)
	}
	rows, cols := X.Dims()
	if cols != p.dim {
		return nil, errors.Wrapf(ErrDimensionMismatch, "X has %d features, weights expect %d", cols, p.dim)
	}

	buf := make([]float64, p.dim+1)
	out := make([]float64, rows)
	for i := 0; i < rows; i++ {
		out[i] = p.act.Activate(floats.Dot(p.weights, p.augment(X, i, buf)))
	}
	return out, nil
}

// PredictOne returns the step decision for a single feature vector.
func (p *Perceptron) PredictOne(x []float64) (float64, error) {
	z, err := p.Decision(x)
	if err != nil {
		return 0, err
	}
	return p.act.Activate(z), nil
}

// Decision returns the weighted sum w . [x, 1] before activation.
func (p *Perceptron) Decision(x []float64) (float64, error) {
	if p.state == Uninitialized {
		return 0, errors.WithStack(ErrNotInitialized)
	}
	if len(x) != p.dim {
		return 0, errors.Wrapf(ErrDimensionMismatch, "x has %d features, weights expect %d", len(x), p.dim)
	}
	return floats.Dot(p.weights[:p.dim], x) + p.weights[p.dim], nil
}

// TotalLoss returns a copy of the per-epoch loss history.
// It is empty, never nil, before the first Fit.
func (p *Perceptron) TotalLoss() []float64 {
	return append([]float64{}, p.history...)
}

// Params returns a copy of the augmented weight vector (bias last).
func (p *Perceptron) Params() []float64 {
	return append([]float64(nil), p.weights...)
}

// SetParams replaces the augmented weight vector (bias last), fixing the
// feature dimension to len(params)-1. An uninitialized perceptron becomes
// initialized.
func (p *Perceptron) SetParams(params []float64) error {
	if len(params) < 2 {
		return errors.Wrapf(ErrInvalidParam, "need at least one weight and a bias, got %d values", len(params))
	}
	p.setWeights(append([]float64(nil), params...))
	if p.state == Uninitialized {
		p.state = Initialized
	}
	return nil
}

// Weights returns a copy of the feature weights, without the bias.
func (p *Perceptron) Weights() []float64 {
	if p.weights == nil {
		return nil
	}
	return append([]float64(nil), p.weights[:p.dim]...)
}

// Bias returns the bias weight, or 0 before initialization.
func (p *Perceptron) Bias() float64 {
	if p.weights == nil {
		return 0
	}
	return p.weights[p.dim]
}

// Eta returns the learning rate.
func (p *Perceptron) Eta() float64 { return p.opt.LearningRate }

// Epochs returns the number of epochs run by each Fit.
func (p *Perceptron) Epochs() int { return p.epochs }

// Dim returns the feature dimension, or 0 before initialization.
func (p *Perceptron) Dim() int { return p.dim }

// State returns the lifecycle stage.
func (p *Perceptron) State() State { return p.state }

// Loss returns the loss recorded per epoch.
func (p *Perceptron) Loss() loss.Loss { return p.loss }
