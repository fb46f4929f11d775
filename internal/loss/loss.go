// Package loss provides the loss functions used to train the jet tagger.
package loss

import "math"

// BackwardInPlacer is an optional interface for loss functions that
// support in-place gradient computation to avoid allocations.
type BackwardInPlacer interface {
	BackwardInPlace(yPred, yTrue, grad []float64)
}

// Loss is a loss function with derivative.
type Loss interface {
	// Forward computes the loss between predicted and true values.
	Forward(yPred, yTrue []float64) float64

	// Backward computes the gradient of the loss w.r.t. prediction.
	// This creates a new slice and should be avoided in hot loops.
	Backward(yPred, yTrue []float64) []float64
}

// BCE is binary cross-entropy loss for probability outputs:
// -(1/n) * sum(y*log(p) + (1-y)*log(1-p)).
// Predictions are clipped away from 0 and 1 before the logs.
type BCE struct{}

const bceEps = 1e-10

func clip(p float64) float64 {
	if p < bceEps {
		return bceEps
	}
	if p > 1-bceEps {
		return 1 - bceEps
	}
	return p
}

// Forward computes the mean binary cross-entropy.
func (b BCE) Forward(yPred, yTrue []float64) float64 {
	n := len(yPred)
	if n != len(yTrue) {
		panic("loss: prediction and target must have same length")
	}

	var sum float64
	for i := 0; i < n; i++ {
		p := clip(yPred[i])
		sum += yTrue[i]*math.Log(p) + (1-yTrue[i])*math.Log(1-p)
	}
	return -sum / float64(n)
}

// Backward computes the gradient: (p - y) / (p * (1-p)) / n.
func (b BCE) Backward(yPred, yTrue []float64) []float64 {
	grad := make([]float64, len(yPred))
	b.BackwardInPlace(yPred, yTrue, grad)
	return grad
}

// BackwardInPlace computes the gradient into grad.
func (b BCE) BackwardInPlace(yPred, yTrue, grad []float64) {
	n := len(yPred)
	if n != len(yTrue) || n != len(grad) {
		panic("loss: slices must have same length")
	}

	for i := 0; i < n; i++ {
		p := clip(yPred[i])
		grad[i] = (p - yTrue[i]) / (p * (1 - p) * float64(n))
	}
}

// MSE is mean squared error: (1/n) * sum((p - y)^2).
type MSE struct{}

// Forward computes the mean squared error.
func (m MSE) Forward(yPred, yTrue []float64) float64 {
	n := len(yPred)
	if n != len(yTrue) {
		panic("loss: prediction and target must have same length")
	}

	var sum float64
	for i := 0; i < n; i++ {
		diff := yPred[i] - yTrue[i]
		sum += diff * diff
	}
	return sum / float64(n)
}

// Backward computes the gradient: (2/n) * (p - y).
func (m MSE) Backward(yPred, yTrue []float64) []float64 {
	grad := make([]float64, len(yPred))
	m.BackwardInPlace(yPred, yTrue, grad)
	return grad
}

// BackwardInPlace computes the gradient into grad.
func (m MSE) BackwardInPlace(yPred, yTrue, grad []float64) {
	n := len(yPred)
	if n != len(yTrue) || n != len(grad) {
		panic("loss: slices must have same length")
	}

	factor := 2.0 / float64(n)
	for i := 0; i < n; i++ {
		grad[i] = factor * (yPred[i] - yTrue[i])
	}
}
