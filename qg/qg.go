// Package qg re-exports the pieces of the quark/gluon tagging demo
// that are useful outside the workflow binary.
package qg

import (
	"math/rand"

	"github.com/kimmokal/QG-demo/internal/activations"
	"github.com/kimmokal/QG-demo/internal/dataset"
	"github.com/kimmokal/QG-demo/internal/eval"
	"github.com/kimmokal/QG-demo/internal/layer"
	"github.com/kimmokal/QG-demo/internal/loss"
	"github.com/kimmokal/QG-demo/internal/net"
	"github.com/kimmokal/QG-demo/internal/opt"
)

// Re-export the model types for easier access.
type (
	Model        = net.Sequential
	Layer        = layer.Layer
	Optimizer    = opt.Optimizer
	Loss         = loss.Loss
	Callback     = net.Callback
	FitConfig    = net.FitConfig
	History      = net.History
	Table        = dataset.Table
	Record       = dataset.Record
	ClassWeights = dataset.ClassWeights
	Curve        = eval.Curve
)

// Errors surfaced by the workflow stages.
var (
	ErrRetrieval       = dataset.ErrRetrieval
	ErrParse           = dataset.ErrParse
	ErrConfiguration   = dataset.ErrConfiguration
	ErrState           = net.ErrState
	ErrUndefinedMetric = eval.ErrUndefinedMetric
)

// Activations.
var (
	ReLU    = activations.ReLU{}
	Sigmoid = activations.Sigmoid{}
	Tanh    = activations.Tanh{}
	Linear  = activations.Linear{}
)

// Sequential creates a model from a stack of layers.
func Sequential(layers ...Layer) *Model {
	return net.NewSequential(layers...)
}

// Dense creates a fully connected layer initialized from rng.
func Dense(in, out int, act activations.Activation, rng *rand.Rand) Layer {
	return layer.NewDense(in, out, act, rng)
}

// Adam creates an Adam optimizer with the usual defaults.
func Adam(lr float64) Optimizer {
	return opt.NewAdam(lr)
}

// Losses.
var (
	BCE = loss.BCE{}
	MSE = loss.MSE{}
)

// Logger creates a training progress logger.
func Logger(interval int) net.Logger {
	return net.Logger{Interval: interval}
}

// CSVLogger creates a callback that writes the training history to CSV.
func CSVLogger(filename string) Callback {
	return net.NewCSVLogger(filename)
}

// Load reads a model saved with Model.Save.
func Load(filename string) (*Model, error) {
	return net.Load(filename)
}

// Data preparation.
var (
	Fetch               = dataset.Fetch
	LoadCSV             = dataset.LoadCSV
	ComputeClassWeights = dataset.ComputeClassWeights
)

// Evaluation.
var (
	ROC             = eval.ROC
	ClassHistograms = eval.ClassHistograms
	RenderROC       = eval.RenderROC
)
