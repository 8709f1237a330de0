// Package loss provides the per-epoch error measures recorded during training.
package loss

import (
	"math"

	"github.com/pkg/errors"
)

// Loss reduces a set of predictions and targets to a single error value.
type Loss interface {
	// Forward computes the loss between predicted and true values.
	Forward(yPred, yTrue []float64) float64

	// Name identifies the loss in configuration and persisted models.
	Name() string
}

// Absolute is the total absolute error: sum(|y_pred - y_true|).
// For step outputs and binary targets this is the number of mistakes.
type Absolute struct{}

// Forward computes sum(|y_pred - y_true|)
func (a Absolute) Forward(yPred, yTrue []float64) float64 {
	n := len(yPred)
	if n != len(yTrue) {
		panic("Absolute: prediction and target must have same length")
	}

	var sum float64
	for i := 0; i < n; i++ {
		sum += math.Abs(yPred[i] - yTrue[i])
	}
	return sum
}

func (a Absolute) Name() string { return "absolute" }

// Squared is the total squared error: sum((y_pred - y_true)^2).
// It equals Absolute whenever every difference is in {-1, 0, 1}.
type Squared struct{}

// Forward computes sum((y_pred - y_true)^2)
func (s Squared) Forward(yPred, yTrue []float64) float64 {
	n := len(yPred)
	if n != len(yTrue) {
		panic("Squared: prediction and target must have same length")
	}

	var sum float64
	for i := 0; i < n; i++ {
		diff := yPred[i] - yTrue[i]
		sum += diff * diff
	}
	return sum
}

func (s Squared) Name() string { return "squared" }

// ByName returns the loss registered under name. The empty name selects Absolute.
func ByName(name string) (Loss, error) {
	switch name {
	case "", "absolute":
		return Absolute{}, nil
	case "squared":
		return Squared{}, nil
	default:
		return nil, errors.Errorf("unknown loss %q", name)
	}
}
