package net

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/kimmokal/QG-demo/internal/layer"
	"github.com/kimmokal/QG-demo/internal/loss"
	"github.com/kimmokal/QG-demo/internal/opt"
)

// ErrState is returned when a model method is called out of the
// required Compile -> Fit -> Predict order.
var ErrState = errors.New("net: model not in required state")

// Sequential is a Keras-like wrapper around Network that enforces the
// compile/fit/predict lifecycle.
type Sequential struct {
	*Network

	compiled bool
	trained  bool
}

// NewSequential creates a Sequential model from a stack of layers.
func NewSequential(layers ...layer.Layer) *Sequential {
	return &Sequential{Network: &Network{layers: layers}}
}

// Compile configures the model for training.
func (s *Sequential) Compile(optimizer opt.Optimizer, lossFn loss.Loss) {
	s.loss = lossFn
	s.setOptimizer(optimizer)
	s.compiled = true
}

// FitConfig carries the training hyper-parameters. Every knob is
// explicit; in particular the shuffling source is passed in rather than
// taken from the process-wide generator, so a fixed seed reproduces a
// run exactly.
type FitConfig struct {
	Epochs    int
	BatchSize int

	// ValidationSplit holds out this fraction from the end of each
	// epoch's shuffled order for validation-loss monitoring.
	ValidationSplit float64

	// SampleWeights scales each sample's loss contribution, typically
	// from dataset.ClassWeights to counter label imbalance.
	SampleWeights []float64

	// Shuffle reshuffles the row order every epoch. Nil keeps the
	// given order.
	Shuffle *rand.Rand
}

// EpochStats is one row of the training history.
type EpochStats struct {
	Epoch    int
	Loss     float64
	ValLoss  float64
	Accuracy float64
}

// History is the per-epoch training record returned by Fit.
type History struct {
	Epochs []EpochStats
}

// Fit trains the model for the configured number of epochs. It always
// runs to completion: there is no early stopping and no checkpointing.
func (s *Sequential) Fit(x, y [][]float64, cfg FitConfig, callbacks ...Callback) (*History, error) {
	if !s.compiled {
		return nil, fmt.Errorf("%w: Fit called before Compile", ErrState)
	}
	if len(x) == 0 {
		return nil, fmt.Errorf("net: no training samples")
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("net: got %d samples but %d targets", len(x), len(y))
	}
	if cfg.SampleWeights != nil && len(cfg.SampleWeights) != len(x) {
		return nil, fmt.Errorf("net: got %d samples but %d sample weights", len(x), len(cfg.SampleWeights))
	}
	if cfg.Epochs <= 0 {
		return nil, fmt.Errorf("net: epochs must be positive, got %d", cfg.Epochs)
	}
	if cfg.ValidationSplit < 0 || cfg.ValidationSplit >= 1 {
		return nil, fmt.Errorf("net: validation split %v outside [0, 1)", cfg.ValidationSplit)
	}

	n := len(x)
	batchSize := cfg.BatchSize
	if batchSize <= 0 || batchSize > n {
		batchSize = n
	}
	valN := int(cfg.ValidationSplit * float64(n))
	trainN := n - valN

	for _, cb := range callbacks {
		cb.OnTrainBegin(s.Network)
	}

	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	batchX := make([][]float64, 0, batchSize)
	batchY := make([][]float64, 0, batchSize)
	batchW := make([]float64, 0, batchSize)

	history := &History{Epochs: make([]EpochStats, 0, cfg.Epochs)}
	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		if cfg.Shuffle != nil {
			cfg.Shuffle.Shuffle(n, func(i, j int) {
				perm[i], perm[j] = perm[j], perm[i]
			})
		}

		for start := 0; start < trainN; start += batchSize {
			end := start + batchSize
			if end > trainN {
				end = trainN
			}

			batchX = batchX[:0]
			batchY = batchY[:0]
			batchW = batchW[:0]
			for _, idx := range perm[start:end] {
				batchX = append(batchX, x[idx])
				batchY = append(batchY, y[idx])
				if cfg.SampleWeights != nil {
					batchW = append(batchW, cfg.SampleWeights[idx])
				}
			}

			var w []float64
			if cfg.SampleWeights != nil {
				w = batchW
			}
			s.TrainBatch(batchX, batchY, w)
		}

		stats := EpochStats{Epoch: epoch}
		stats.Loss, stats.Accuracy = s.evaluateIndexed(x, y, perm[:trainN])
		if valN > 0 {
			stats.ValLoss, _ = s.evaluateIndexed(x, y, perm[trainN:])
		}
		history.Epochs = append(history.Epochs, stats)

		for _, cb := range callbacks {
			cb.OnEpochEnd(epoch, stats, s.Network)
		}
	}

	for _, cb := range callbacks {
		cb.OnTrainEnd(s.Network)
	}

	s.trained = true
	return history, nil
}

func (s *Sequential) evaluateIndexed(x, y [][]float64, idx []int) (avgLoss, accuracy float64) {
	if len(idx) == 0 {
		return 0, 0
	}

	correct := 0
	for _, i := range idx {
		pred := s.Forward(x[i])
		avgLoss += s.loss.Forward(pred, y[i])
		if (pred[0] > 0.5) == (y[i][0] > 0.5) {
			correct++
		}
	}
	return avgLoss / float64(len(idx)), float64(correct) / float64(len(idx))
}

// Predict returns the model outputs for every input row. The outputs
// of the sigmoid head are probabilities in [0, 1]. An empty input
// yields an empty result. Calling Predict before the model has been
// trained returns ErrState.
func (s *Sequential) Predict(x [][]float64) ([][]float64, error) {
	if !s.trained {
		return nil, fmt.Errorf("%w: Predict called before Fit", ErrState)
	}

	out := make([][]float64, len(x))
	for i := range x {
		pred := s.Forward(x[i])
		out[i] = append([]float64(nil), pred...)
	}
	return out, nil
}

// Trained reports whether Fit has completed at least once.
func (s *Sequential) Trained() bool {
	return s.trained
}
