// Package opt provides the weight update rule.
package opt

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Optimizer updates parameters based on gradients.
type Optimizer interface {
	// Step computes updated parameters: params - lr * gradients
	// Returns a new slice with updated values
	Step(params, gradients []float64) []float64

	// StepInPlace updates params in-place: params = params - lr * gradients
	StepInPlace(params, gradients []float64)
}

// SGD (Stochastic Gradient Descent) optimizer with a fixed learning rate.
type SGD struct {
	LearningRate float64
}

// Validate reports whether the learning rate lies in (0, 1].
func (s SGD) Validate() error {
	if !(s.LearningRate > 0 && s.LearningRate <= 1) {
		return errors.Errorf("learning rate %v outside (0, 1]", s.LearningRate)
	}
	return nil
}

// Step computes updated parameters: params - lr * gradients
func (s SGD) Step(params, gradients []float64) []float64 {
	return floats.AddScaledTo(make([]float64, len(params)), params, -s.LearningRate, gradients)
}

// StepInPlace updates params in-place: params = params - lr * gradients
func (s SGD) StepInPlace(params, gradients []float64) {
	floats.AddScaled(params, -s.LearningRate, gradients)
}
