// Package activations provides the threshold functions used by the perceptron.
package activations

// Activation is an activation function with derivative.
type Activation interface {
	// Activate computes f(x)
	Activate(x float64) float64

	// Derivative computes the factor applied to the error signal at x.
	Derivative(x float64) float64
}

// Step is the unit step (Heaviside) activation.
// The threshold is strict: Activate(0) == 0.
type Step struct{}

// Activate returns 1 if x > 0, else 0
func (s Step) Activate(x float64) float64 {
	if x > 0 {
		return 1
	}
	return 0
}

// Derivative returns 1 everywhere.
// The step has no useful gradient; the perceptron rule passes the raw
// error (target - prediction) straight through to the weights.
func (s Step) Derivative(x float64) float64 {
	return 1
}

// ActivateBatch applies the step to every element of x in place.
func (s Step) ActivateBatch(x []float64) []float64 {
	for i := range x {
		x[i] = s.Activate(x[i])
	}
	return x
}
