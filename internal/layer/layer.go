// Package layer provides the dense layer the jet classifier is built from.
package layer

import (
	"math"
	"math/rand"

	"github.com/kimmokal/QG-demo/internal/activations"
)

// Layer is a neural network layer.
//
// Backward accumulates parameter gradients into the layer's gradient
// buffers so that mini-batches can sum contributions over samples;
// callers reset them between batches with ZeroGrads.
type Layer interface {
	Forward(x []float64) []float64
	Backward(grad []float64) []float64
	Params() []float64
	SetParams([]float64)
	Grads() []float64
	ZeroGrads()
	ScaleGrads(s float64)
	InSize() int
	OutSize() int
}

// Dense is a fully connected layer.
// Weights are stored row-major in a contiguous slice and all forward
// and backward buffers are pre-allocated, so the hot loops allocate
// nothing. Plain nested loops beat a matrix library at these sizes.
type Dense struct {
	// weight for output o, input i lives at weights[o*in + i]
	weights []float64
	biases  []float64
	act     activations.Activation
	outSize int
	inSize  int

	inputBuf  []float64
	outputBuf []float64
	preActBuf []float64
	gradW     []float64
	gradB     []float64
	gradInBuf []float64
	dzBuf     []float64
}

// NewDense creates a dense layer with Xavier-initialized weights drawn
// from rng. Passing the generator explicitly keeps weight
// initialization reproducible for a fixed seed.
func NewDense(in, out int, act activations.Activation, rng *rand.Rand) *Dense {
	weights := make([]float64, out*in)
	biases := make([]float64, out)

	scale := math.Sqrt(2.0 / (float64(in) + float64(out)))
	for i := range weights {
		weights[i] = rng.Float64()*2*scale - scale
	}
	for i := range biases {
		biases[i] = rng.Float64()*0.2 - 0.1
	}

	return &Dense{
		weights:   weights,
		biases:    biases,
		act:       act,
		outSize:   out,
		inSize:    in,
		inputBuf:  make([]float64, in),
		outputBuf: make([]float64, out),
		preActBuf: make([]float64, out),
		gradW:     make([]float64, out*in),
		gradB:     make([]float64, out),
		gradInBuf: make([]float64, in),
		dzBuf:     make([]float64, out),
	}
}

// Forward computes act(Wx + b) into the layer's output buffer.
func (d *Dense) Forward(x []float64) []float64 {
	copy(d.inputBuf, x)

	outSize := d.outSize
	inSize := d.inSize
	weights := d.weights
	biases := d.biases
	input := d.inputBuf
	preAct := d.preActBuf
	output := d.outputBuf

	for o := 0; o < outSize; o++ {
		sum := biases[o]
		wBase := o * inSize
		for i := 0; i < inSize; i++ {
			sum += weights[wBase+i] * input[i]
		}
		preAct[o] = sum
		output[o] = d.act.Activate(sum)
	}

	return output[:outSize]
}

// Backward backpropagates grad through the layer, accumulating weight
// and bias gradients, and returns the gradient w.r.t. the input of the
// most recent Forward call.
func (d *Dense) Backward(grad []float64) []float64 {
	outSize := d.outSize
	inSize := d.inSize
	weights := d.weights
	input := d.inputBuf
	dz := d.dzBuf
	gradW := d.gradW
	gradB := d.gradB
	gradIn := d.gradInBuf

	// dz = dL/d(output) * act'(preAct)
	for o := 0; o < outSize; o++ {
		dz[o] = grad[o] * d.act.Derivative(d.preActBuf[o])
		gradB[o] += dz[o]
	}

	// dL/dW[o, i] += dz[o] * input[i]
	for o := 0; o < outSize; o++ {
		dzo := dz[o]
		wBase := o * inSize
		for i := 0; i < inSize; i++ {
			gradW[wBase+i] += dzo * input[i]
		}
	}

	// dL/dx[i] = sum_o dz[o] * W[o, i]
	for i := 0; i < inSize; i++ {
		sum := 0.0
		for o := 0; o < outSize; o++ {
			sum += dz[o] * weights[o*inSize+i]
		}
		gradIn[i] = sum
	}

	return gradIn[:inSize]
}

// Params returns a flattened copy of the parameters: weights followed
// by biases.
func (d *Dense) Params() []float64 {
	params := make([]float64, 0, len(d.weights)+len(d.biases))
	params = append(params, d.weights...)
	return append(params, d.biases...)
}

// SetParams overwrites weights and biases from a flattened slice.
func (d *Dense) SetParams(params []float64) {
	copy(d.weights, params[:len(d.weights)])
	copy(d.biases, params[len(d.weights):])
}

// Grads returns a flattened copy of the accumulated gradients: weight
// gradients followed by bias gradients.
func (d *Dense) Grads() []float64 {
	grads := make([]float64, 0, len(d.gradW)+len(d.gradB))
	grads = append(grads, d.gradW...)
	return append(grads, d.gradB...)
}

// ZeroGrads resets the accumulated gradient buffers.
func (d *Dense) ZeroGrads() {
	for i := range d.gradW {
		d.gradW[i] = 0
	}
	for i := range d.gradB {
		d.gradB[i] = 0
	}
}

// ScaleGrads multiplies every accumulated gradient by s, used to
// average over a mini-batch.
func (d *Dense) ScaleGrads(s float64) {
	for i := range d.gradW {
		d.gradW[i] *= s
	}
	for i := range d.gradB {
		d.gradB[i] *= s
	}
}

// Weights returns the live weights slice.
func (d *Dense) Weights() []float64 { return d.weights }

// Biases returns the live biases slice.
func (d *Dense) Biases() []float64 { return d.biases }

// InSize returns the input size of the layer.
func (d *Dense) InSize() int { return d.inSize }

// OutSize returns the output size of the layer.
func (d *Dense) OutSize() int { return d.outSize }

// Activation returns the activation function used by this layer.
func (d *Dense) Activation() activations.Activation { return d.act }
