// Package opt provides the gradient-descent optimizers used in training.
package opt

import "math"

// Optimizer updates a parameter vector from its gradient vector.
//
// Stateful optimizers keep per-parameter state, so one Optimizer
// instance must only ever see one parameter vector. Clone hands the
// network a fresh instance per layer.
type Optimizer interface {
	// Step computes updated parameters and returns them in a new slice.
	Step(params, grads []float64) []float64

	// Clone returns an unused optimizer with the same hyper-parameters.
	Clone() Optimizer
}

// SGD is plain stochastic gradient descent.
type SGD struct {
	LearningRate float64
}

// Step computes params - lr * grads.
func (s *SGD) Step(params, grads []float64) []float64 {
	updated := make([]float64, len(params))
	for i := range params {
		updated[i] = params[i] - s.LearningRate*grads[i]
	}
	return updated
}

// Clone returns a copy; SGD carries no per-parameter state.
func (s *SGD) Clone() Optimizer {
	return &SGD{LearningRate: s.LearningRate}
}

// Adam is the adaptive moment estimation optimizer
// (Kingma & Ba, 2014). It keeps exponential moving averages of the
// gradient and of its square, with bias correction for the early steps.
type Adam struct {
	LearningRate float64
	Beta1        float64
	Beta2        float64
	Epsilon      float64

	m []float64 // first moment
	v []float64 // second moment
	t int       // step count
}

// NewAdam creates an Adam optimizer with the usual defaults
// (beta1=0.9, beta2=0.999, eps=1e-8).
func NewAdam(learningRate float64) *Adam {
	return &Adam{
		LearningRate: learningRate,
		Beta1:        0.9,
		Beta2:        0.999,
		Epsilon:      1e-8,
	}
}

// Step computes the Adam update for params. The moment vectors are
// sized on first use and must always match len(params) afterwards.
func (a *Adam) Step(params, grads []float64) []float64 {
	if a.m == nil {
		a.m = make([]float64, len(params))
		a.v = make([]float64, len(params))
	}
	if len(a.m) != len(params) {
		panic("opt: Adam instance reused for a different parameter vector")
	}

	a.t++
	c1 := 1 - math.Pow(a.Beta1, float64(a.t))
	c2 := 1 - math.Pow(a.Beta2, float64(a.t))

	updated := make([]float64, len(params))
	for i := range params {
		g := grads[i]
		a.m[i] = a.Beta1*a.m[i] + (1-a.Beta1)*g
		a.v[i] = a.Beta2*a.v[i] + (1-a.Beta2)*g*g
		mHat := a.m[i] / c1
		vHat := a.v[i] / c2
		updated[i] = params[i] - a.LearningRate*mHat/(math.Sqrt(vHat)+a.Epsilon)
	}
	return updated
}

// Clone returns a fresh Adam with the same hyper-parameters and empty
// moment state.
func (a *Adam) Clone() Optimizer {
	return &Adam{
		LearningRate: a.LearningRate,
		Beta1:        a.Beta1,
		Beta2:        a.Beta2,
		Epsilon:      a.Epsilon,
	}
}
