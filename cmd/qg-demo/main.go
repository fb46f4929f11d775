// Command qg-demo runs the quark/gluon jet tagging walkthrough: fetch
// the jet samples, clean them, train a small dense network with
// class-balanced weighting, and evaluate it with score histograms and
// an ROC curve.
//
// Every parameter is a fixed constant below; the workflow takes no
// flags and reads no environment. The stages run strictly in order,
// each one consuming the previous stage's output.
package main

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/kimmokal/QG-demo/internal/activations"
	"github.com/kimmokal/QG-demo/internal/dataset"
	"github.com/kimmokal/QG-demo/internal/eval"
	"github.com/kimmokal/QG-demo/internal/layer"
	"github.com/kimmokal/QG-demo/internal/loss"
	"github.com/kimmokal/QG-demo/internal/net"
	"github.com/kimmokal/QG-demo/internal/opt"
)

const (
	datasetURL = "https://raw.githubusercontent.com/kimmokal/QG-demo/master/data/jet_samples.csv"
	cachePath  = "jet_samples.csv"

	rocPath       = "roc_curve.png"
	histPath      = "score_histograms.png"
	lossCurvePath = "training_loss.png"
	historyPath   = "training_history.csv"
	modelPath     = "qg_model.gob"

	seed         = 7
	testFraction = 0.15

	hiddenUnits     = 50
	learningRate    = 0.001
	epochs          = 20
	batchSize       = 1024
	validationSplit = 0.1
)

func main() {
	log.SetFlags(0)

	// Stage 1: fetch and parse the jet samples.
	path, err := dataset.Fetch(datasetURL, cachePath)
	if err != nil {
		log.Fatalf("fetching dataset: %v", err)
	}
	table, err := dataset.LoadCSV(path)
	if err != nil {
		log.Fatalf("loading dataset: %v", err)
	}
	log.Printf("loaded %d jets from %s", table.Len(), path)

	// Stage 2: drop rows with missing feature values.
	clean, report := table.Clean()
	if n := len(report.Dropped); n > 0 {
		log.Printf("dropped %d rows with missing features (first indices: %v)",
			n, head(report.Dropped, 10))
	}
	for _, s := range clean.Summary() {
		log.Printf("  %-10s mean=%.4f stddev=%.4f", s.Name, s.Mean, s.StdDev)
	}

	// Stage 3: split and weight.
	train, test, err := clean.Split(testFraction, seed)
	if err != nil {
		log.Fatalf("splitting dataset: %v", err)
	}
	weights, err := dataset.ComputeClassWeights(train)
	if err != nil {
		log.Fatalf("computing class weights: %v", err)
	}
	log.Printf("train=%d test=%d class weights: quark=%.3f gluon=%.3f",
		train.Len(), test.Len(), weights[dataset.Quark], weights[dataset.Gluon])

	// Stage 4: build and train the classifier, 3 -> 50 -> 50 -> 50 -> 1.
	model := buildModel(rand.New(rand.NewSource(seed)))
	history, err := model.Fit(train.Features(), train.Labels(), net.FitConfig{
		Epochs:          epochs,
		BatchSize:       batchSize,
		ValidationSplit: validationSplit,
		SampleWeights:   train.SampleWeights(weights),
		Shuffle:         rand.New(rand.NewSource(seed)),
	}, net.Logger{Interval: 1}, net.NewCSVLogger(historyPath))
	if err != nil {
		log.Fatalf("training: %v", err)
	}
	if err := model.Save(modelPath); err != nil {
		log.Fatalf("saving model: %v", err)
	}

	// Stage 5: score the held-out jets and evaluate.
	preds, err := model.Predict(test.Features())
	if err != nil {
		log.Fatalf("predicting: %v", err)
	}
	scores := make([]float64, len(preds))
	labels := make([]int, len(preds))
	for i, p := range preds {
		scores[i] = p[0]
		labels[i] = test.Records[i].Label
	}

	gluonHist, quarkHist := eval.ClassHistograms(scores, labels)
	if err := eval.RenderHistograms(gluonHist, quarkHist, "gluon", "quark", histPath); err != nil {
		log.Fatalf("rendering histograms: %v", err)
	}

	curve, err := eval.ROC(scores, labels)
	if err != nil {
		log.Fatalf("computing ROC: %v", err)
	}
	if err := eval.RenderROC(curve, rocPath); err != nil {
		log.Fatalf("rendering ROC: %v", err)
	}

	trainLoss := make([]float64, len(history.Epochs))
	valLoss := make([]float64, len(history.Epochs))
	for i, e := range history.Epochs {
		trainLoss[i] = e.Loss
		valLoss[i] = e.ValLoss
	}
	if err := eval.RenderTrainingCurve(trainLoss, valLoss, lossCurvePath); err != nil {
		log.Fatalf("rendering training curve: %v", err)
	}

	fmt.Printf("test AUC: %.4f\n", curve.AUC)
	fmt.Printf("wrote %s, %s, %s, %s, %s\n", rocPath, histPath, lossCurvePath, historyPath, modelPath)
}

func buildModel(rng *rand.Rand) *net.Sequential {
	model := net.NewSequential(
		layer.NewDense(3, hiddenUnits, activations.ReLU{}, rng),
		layer.NewDense(hiddenUnits, hiddenUnits, activations.ReLU{}, rng),
		layer.NewDense(hiddenUnits, hiddenUnits, activations.ReLU{}, rng),
		layer.NewDense(hiddenUnits, 1, activations.Sigmoid{}, rng),
	)
	model.Compile(opt.NewAdam(learningRate), loss.BCE{})
	return model
}

func head(xs []int, n int) []int {
	if len(xs) < n {
		return xs
	}
	return xs[:n]
}
