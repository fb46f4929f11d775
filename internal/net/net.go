// Package net provides the feed-forward network and its training loop.
package net

import (
	"github.com/kimmokal/QG-demo/internal/layer"
	"github.com/kimmokal/QG-demo/internal/loss"
	"github.com/kimmokal/QG-demo/internal/opt"
)

// Network is a stack of layers trained with a loss and an optimizer.
// Stateful optimizers are cloned per layer so each parameter vector
// keeps its own moment estimates.
type Network struct {
	layers    []layer.Layer
	loss      loss.Loss
	layerOpts []opt.Optimizer

	// pre-allocated loss gradient buffer for the training loop
	lossGradBuf []float64
}

// New creates a network from layers, a loss and an optimizer prototype.
func New(layers []layer.Layer, l loss.Loss, optimizer opt.Optimizer) *Network {
	n := &Network{layers: layers, loss: l}
	n.setOptimizer(optimizer)
	return n
}

func (n *Network) setOptimizer(optimizer opt.Optimizer) {
	n.layerOpts = make([]opt.Optimizer, len(n.layers))
	for i := range n.layers {
		n.layerOpts[i] = optimizer.Clone()
	}
}

// Forward runs x through all layers and returns the output activations.
// The returned slice aliases the last layer's buffer and is only valid
// until the next Forward call.
func (n *Network) Forward(x []float64) []float64 {
	curr := x
	for i := range n.layers {
		curr = n.layers[i].Forward(curr)
	}
	return curr
}

// Backward propagates the loss gradient through all layers, accumulating
// parameter gradients.
func (n *Network) Backward(grad []float64) []float64 {
	curr := grad
	for i := len(n.layers) - 1; i >= 0; i-- {
		curr = n.layers[i].Backward(curr)
	}
	return curr
}

// Step applies one optimizer update to every layer from its accumulated
// gradients.
func (n *Network) Step() {
	for i, l := range n.layers {
		l.SetParams(n.layerOpts[i].Step(l.Params(), l.Grads()))
	}
}

// TrainBatch runs one optimization step on a mini-batch. Sample
// gradients are accumulated over the batch, averaged, and applied in a
// single step. weights scales each sample's loss contribution; nil
// means uniform. Returns the mean (weighted) batch loss.
func (n *Network) TrainBatch(batchX, batchY [][]float64, weights []float64) float64 {
	batchSize := len(batchX)
	if batchSize == 0 {
		return 0
	}

	for _, l := range n.layers {
		l.ZeroGrads()
	}

	var totalLoss float64
	for i := 0; i < batchSize; i++ {
		yPred := n.Forward(batchX[i])

		w := 1.0
		if weights != nil {
			w = weights[i]
		}
		totalLoss += w * n.loss.Forward(yPred, batchY[i])

		if cap(n.lossGradBuf) < len(yPred) {
			n.lossGradBuf = make([]float64, len(yPred))
		}
		grad := n.lossGradBuf[:len(yPred)]

		if ip, ok := n.loss.(loss.BackwardInPlacer); ok {
			ip.BackwardInPlace(yPred, batchY[i], grad)
		} else {
			grad = n.loss.Backward(yPred, batchY[i])
		}

		// Scaling the loss gradient scales every parameter gradient
		// downstream, which is exactly the class-weighting contract.
		if w != 1.0 {
			for j := range grad {
				grad[j] *= w
			}
		}

		n.Backward(grad)
	}

	for _, l := range n.layers {
		l.ScaleGrads(1 / float64(batchSize))
	}
	n.Step()

	return totalLoss / float64(batchSize)
}

// Evaluate computes the mean loss and the binary classification
// accuracy (threshold 0.5 on the first output unit) over a dataset.
func (n *Network) Evaluate(x, y [][]float64) (avgLoss, accuracy float64) {
	if len(x) == 0 {
		return 0, 0
	}

	correct := 0
	for i := range x {
		pred := n.Forward(x[i])
		avgLoss += n.loss.Forward(pred, y[i])
		if (pred[0] > 0.5) == (y[i][0] > 0.5) {
			correct++
		}
	}
	return avgLoss / float64(len(x)), float64(correct) / float64(len(x))
}

// Layers returns the network's layers slice.
func (n *Network) Layers() []layer.Layer {
	return n.layers
}

// Loss returns the network's loss function.
func (n *Network) Loss() loss.Loss {
	return n.loss
}
