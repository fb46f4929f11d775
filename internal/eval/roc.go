// Package eval scores the trained tagger on the held-out jets.
package eval

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

// ErrUndefinedMetric is returned when a metric has no defined value on
// the given data, e.g. an ROC over a single-class sample. It is
// surfaced to the caller rather than replaced by a default number.
var ErrUndefinedMetric = errors.New("eval: metric undefined for this sample")

// Curve is a receiver-operating-characteristic curve with its area.
type Curve struct {
	// FPR and TPR are paired false/true positive rates, ordered by
	// decreasing threshold so both run from 0 to 1.
	FPR []float64
	TPR []float64

	// Thresholds holds the score cutoff for each point.
	Thresholds []float64

	// AUC is the area under the curve: 0.5 is chance, 1 is a perfect
	// separation of the two classes.
	AUC float64
}

// ROC computes the ROC curve of scores against binary labels
// (1 = positive class). Since the curve depends only on how the scores
// order the samples, any strictly increasing transform of the scores
// leaves it unchanged.
func ROC(scores []float64, labels []int) (*Curve, error) {
	if len(scores) != len(labels) {
		return nil, errors.Errorf("eval: got %d scores but %d labels", len(scores), len(labels))
	}

	var pos, neg int
	classes := make([]bool, len(labels))
	for i, label := range labels {
		if label == 1 {
			classes[i] = true
			pos++
		} else {
			neg++
		}
	}
	if pos == 0 || neg == 0 {
		return nil, errors.Wrapf(ErrUndefinedMetric,
			"ROC needs both classes, got %d positive and %d negative", pos, neg)
	}

	y := append([]float64(nil), scores...)
	stat.SortWeightedLabeled(y, classes, nil)

	tpr, fpr, thresholds := stat.ROC(nil, y, classes, nil)
	return &Curve{
		FPR:        fpr,
		TPR:        tpr,
		Thresholds: thresholds,
		AUC:        integrate.Trapezoidal(fpr, tpr),
	}, nil
}
