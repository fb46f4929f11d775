package eval

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	chart "github.com/wcharczuk/go-chart"
)

// RenderROC writes the ROC curve as a PNG to path, with the chance
// diagonal drawn dashed for reference.
func RenderROC(curve *Curve, path string) error {
	graph := chart.Chart{
		Title:      fmt.Sprintf("ROC curve (AUC = %.3f)", curve.AUC),
		TitleStyle: chart.StyleShow(),
		XAxis: chart.XAxis{
			Name:      "False positive rate",
			NameStyle: chart.StyleShow(),
			Style:     chart.StyleShow(),
		},
		YAxis: chart.YAxis{
			Name:      "True positive rate",
			NameStyle: chart.StyleShow(),
			Style:     chart.StyleShow(),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "model",
				XValues: curve.FPR,
				YValues: curve.TPR,
				Style: chart.Style{
					Show:        true,
					StrokeColor: chart.ColorBlue,
				},
			},
			chart.ContinuousSeries{
				Name:    "chance",
				XValues: []float64{0, 1},
				YValues: []float64{0, 1},
				Style: chart.Style{
					Show:            true,
					StrokeColor:     chart.ColorAlternateGray,
					StrokeDashArray: []float64{5.0, 5.0},
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{
		chart.Legend(&graph),
	}

	return renderPNG(graph, path)
}

// RenderHistograms writes the per-class score histograms as a PNG.
func RenderHistograms(positive, negative Histogram, positiveName, negativeName, path string) error {
	centers := BinCenters()
	graph := chart.Chart{
		Title:      "Predicted gluon probability by true class",
		TitleStyle: chart.StyleShow(),
		XAxis: chart.XAxis{
			Name:      "Predicted probability",
			NameStyle: chart.StyleShow(),
			Style:     chart.StyleShow(),
		},
		YAxis: chart.YAxis{
			Name:      "Density",
			NameStyle: chart.StyleShow(),
			Style:     chart.StyleShow(),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    positiveName,
				XValues: centers,
				YValues: positive.Density[:],
				Style: chart.Style{
					Show:        true,
					StrokeColor: chart.ColorRed,
				},
			},
			chart.ContinuousSeries{
				Name:    negativeName,
				XValues: centers,
				YValues: negative.Density[:],
				Style: chart.Style{
					Show:        true,
					StrokeColor: chart.ColorBlue,
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{
		chart.Legend(&graph),
	}

	return renderPNG(graph, path)
}

// RenderTrainingCurve writes the per-epoch training and validation
// loss as a PNG.
func RenderTrainingCurve(trainLoss, valLoss []float64, path string) error {
	epochs := make([]float64, len(trainLoss))
	for i := range epochs {
		epochs[i] = float64(i)
	}

	graph := chart.Chart{
		Title:      "Training progress",
		TitleStyle: chart.StyleShow(),
		XAxis: chart.XAxis{
			Name:      "Epoch",
			NameStyle: chart.StyleShow(),
			Style:     chart.StyleShow(),
		},
		YAxis: chart.YAxis{
			Name:      "Binary cross-entropy",
			NameStyle: chart.StyleShow(),
			Style:     chart.StyleShow(),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "loss",
				XValues: epochs,
				YValues: trainLoss,
				Style: chart.Style{
					Show:        true,
					StrokeColor: chart.ColorBlue,
				},
			},
			chart.ContinuousSeries{
				Name:    "val_loss",
				XValues: epochs,
				YValues: valLoss,
				Style: chart.Style{
					Show:        true,
					StrokeColor: chart.ColorOrange,
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{
		chart.Legend(&graph),
	}

	return renderPNG(graph, path)
}

func renderPNG(graph chart.Chart, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}

	if err := graph.Render(chart.PNG, f); err != nil {
		f.Close()
		os.Remove(path)
		return errors.Wrapf(err, "render %s", path)
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}
