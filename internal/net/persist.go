package net

import (
	"encoding/gob"
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/kimmokal/QG-demo/internal/activations"
	"github.com/kimmokal/QG-demo/internal/layer"
	"github.com/kimmokal/QG-demo/internal/loss"
)

// denseConfig is the serialized form of one dense layer.
type denseConfig struct {
	InSize     int
	OutSize    int
	Activation string
	Params     []float64
}

// Save writes the trained model to a file using gob encoding.
// Optimizer state is not saved; a loaded model is for prediction only.
func (s *Sequential) Save(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	return s.Encode(file)
}

// Encode writes the model topology and parameters to w.
func (s *Sequential) Encode(w io.Writer) error {
	encoder := gob.NewEncoder(w)

	if err := encoder.Encode(int32(len(s.layers))); err != nil {
		return fmt.Errorf("failed to encode layer count: %w", err)
	}

	var lossType string
	switch s.loss.(type) {
	case loss.BCE:
		lossType = "BCE"
	default:
		lossType = "MSE"
	}
	if err := encoder.Encode(lossType); err != nil {
		return fmt.Errorf("failed to encode loss: %w", err)
	}

	for i, l := range s.layers {
		dense, ok := l.(*layer.Dense)
		if !ok {
			return fmt.Errorf("layer %d: only dense layers can be saved, got %T", i, l)
		}
		cfg := denseConfig{
			InSize:     dense.InSize(),
			OutSize:    dense.OutSize(),
			Activation: activationName(dense.Activation()),
			Params:     dense.Params(),
		}
		if err := encoder.Encode(cfg); err != nil {
			return fmt.Errorf("failed to encode layer %d: %w", i, err)
		}
	}
	return nil
}

// Load reads a model saved by Save. The returned model is ready for
// Predict but must be compiled again before further training.
func Load(filename string) (*Sequential, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Decode(file)
}

// Decode reads a model written by Encode.
func Decode(r io.Reader) (*Sequential, error) {
	decoder := gob.NewDecoder(r)

	var numLayers int32
	if err := decoder.Decode(&numLayers); err != nil {
		return nil, fmt.Errorf("failed to read layer count: %w", err)
	}

	var lossType string
	if err := decoder.Decode(&lossType); err != nil {
		return nil, fmt.Errorf("failed to read loss type: %w", err)
	}

	// Initial weights are overwritten by the stored parameters, so the
	// generator seed is irrelevant here.
	rng := rand.New(rand.NewSource(0))
	layers := make([]layer.Layer, 0, numLayers)
	for i := 0; i < int(numLayers); i++ {
		var cfg denseConfig
		if err := decoder.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read layer %d: %w", i, err)
		}
		dense := layer.NewDense(cfg.InSize, cfg.OutSize, activationByName(cfg.Activation), rng)
		dense.SetParams(cfg.Params)
		layers = append(layers, dense)
	}

	s := NewSequential(layers...)
	switch lossType {
	case "BCE":
		s.loss = loss.BCE{}
	default:
		s.loss = loss.MSE{}
	}
	s.trained = true
	return s, nil
}

func activationName(act activations.Activation) string {
	switch act.(type) {
	case activations.ReLU:
		return "ReLU"
	case activations.Sigmoid:
		return "Sigmoid"
	case activations.Tanh:
		return "Tanh"
	default:
		return "Linear"
	}
}

func activationByName(name string) activations.Activation {
	switch name {
	case "ReLU":
		return activations.ReLU{}
	case "Sigmoid":
		return activations.Sigmoid{}
	case "Tanh":
		return activations.Tanh{}
	default:
		return activations.Linear{}
	}
}
