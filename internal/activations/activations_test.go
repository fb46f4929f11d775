package activations

import (
	"math"
	"testing"
)

// TestReLU tests ReLU activation.
func TestReLU(t *testing.T) {
	relu := ReLU{}

	tests := []struct {
		input    float64
		expected float64
	}{
		{-1.0, 0.0},
		{0.0, 0.0},
		{1.0, 1.0},
		{2.5, 2.5},
		{-0.1, 0.0},
	}

	for _, tt := range tests {
		output := relu.Activate(tt.input)
		if math.Abs(output-tt.expected) > 1e-12 {
			t.Errorf("ReLU(%v) = %v, want %v", tt.input, output, tt.expected)
		}
	}
}

// TestReLUDerivative tests ReLU derivative.
func TestReLUDerivative(t *testing.T) {
	relu := ReLU{}

	tests := []struct {
		input    float64
		expected float64
	}{
		{-1.0, 0.0},
		{0.0, 0.0},
		{1.0, 1.0},
		{2.5, 1.0},
	}

	for _, tt := range tests {
		output := relu.Derivative(tt.input)
		if math.Abs(output-tt.expected) > 1e-12 {
			t.Errorf("ReLU.Derivative(%v) = %v, want %v", tt.input, output, tt.expected)
		}
	}
}

// TestSigmoid tests Sigmoid activation against hand-computed values.
func TestSigmoid(t *testing.T) {
	s := Sigmoid{}

	tests := []struct {
		input    float64
		expected float64
	}{
		{0.0, 0.5},
		{1.0, 0.7310585786300049},
		{-1.0, 0.2689414213699951},
		{10.0, 0.9999546021312976},
	}

	for _, tt := range tests {
		output := s.Activate(tt.input)
		if math.Abs(output-tt.expected) > 1e-9 {
			t.Errorf("Sigmoid(%v) = %v, want %v", tt.input, output, tt.expected)
		}
	}
}

// TestSigmoidBounds tests that sigmoid output stays inside [0, 1].
func TestSigmoidBounds(t *testing.T) {
	s := Sigmoid{}
	for _, x := range []float64{-1000, -50, -1, 0, 1, 50, 1000} {
		out := s.Activate(x)
		if out < 0 || out > 1 {
			t.Errorf("Sigmoid(%v) = %v, outside [0, 1]", x, out)
		}
	}
}

// TestSigmoidDerivative tests derivative = s(x) * (1 - s(x)).
func TestSigmoidDerivative(t *testing.T) {
	s := Sigmoid{}
	for _, x := range []float64{-2, -0.5, 0, 0.5, 2} {
		sx := s.Activate(x)
		want := sx * (1 - sx)
		if got := s.Derivative(x); math.Abs(got-want) > 1e-12 {
			t.Errorf("Sigmoid.Derivative(%v) = %v, want %v", x, got, want)
		}
	}
}

// TestTanh tests Tanh activation and derivative.
func TestTanh(t *testing.T) {
	tanh := Tanh{}

	if got := tanh.Activate(0); got != 0 {
		t.Errorf("Tanh(0) = %v, want 0", got)
	}
	for _, x := range []float64{-1.5, -0.2, 0.2, 1.5} {
		want := 1 - math.Tanh(x)*math.Tanh(x)
		if got := tanh.Derivative(x); math.Abs(got-want) > 1e-12 {
			t.Errorf("Tanh.Derivative(%v) = %v, want %v", x, got, want)
		}
	}
}

// TestLinear tests the identity activation.
func TestLinear(t *testing.T) {
	l := Linear{}
	if got := l.Activate(3.25); got != 3.25 {
		t.Errorf("Linear(3.25) = %v, want 3.25", got)
	}
	if got := l.Derivative(-7); got != 1 {
		t.Errorf("Linear.Derivative(-7) = %v, want 1", got)
	}
}
