package perceptron

import (
	"github.com/pkg/errors"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/loss"
)

// Snapshot is the complete persisted state of a Perceptron.
type Snapshot struct {
	Eta     float64
	Epochs  int
	Weights []float64 // augmented, bias last
	History []float64
	State   State
	Loss    string
}

// Snapshot captures the model state. Slices are copies.
func (p *Perceptron) Snapshot() Snapshot {
	return Snapshot{
		Eta:     p.Eta(),
		Epochs:  p.epochs,
		Weights: p.Params(),
		History: p.TotalLoss(),
		State:   p.state,
		Loss:    p.loss.Name(),
	}
}

// FromSnapshot rebuilds a Perceptron that predicts exactly like the one the
// snapshot was taken from.
func FromSnapshot(s Snapshot, opts ...Option) (*Perceptron, error) {
	l, err := loss.ByName(s.Loss)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidParam, err.Error())
	}
	p, err := New(s.Eta, s.Epochs, append([]Option{WithLoss(l)}, opts...)...)
	if err != nil {
		return nil, err
	}
	if s.State != Uninitialized {
		if err := p.SetParams(s.Weights); err != nil {
			return nil, err
		}
		p.state = s.State
	}
	p.history = append(p.history, s.History...)
	return p, nil
}
