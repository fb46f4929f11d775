package eval

// Fixed binning for score histograms: width 0.05 over [0, 1].
const (
	NumBins  = 20
	BinWidth = 1.0 / NumBins
)

// Histogram is a density-normalized histogram of predicted scores.
// The densities integrate to 1 over [0, 1] for a non-empty sample.
type Histogram struct {
	Density [NumBins]float64
	Count   int
}

// ScoreHistogram bins scores into the fixed [0, 1] grid. A score of
// exactly 1 lands in the last bin.
func ScoreHistogram(scores []float64) Histogram {
	var h Histogram
	if len(scores) == 0 {
		return h
	}

	for _, s := range scores {
		bin := int(s / BinWidth)
		if bin >= NumBins {
			bin = NumBins - 1
		}
		if bin < 0 {
			bin = 0
		}
		h.Density[bin]++
	}
	h.Count = len(scores)

	norm := 1 / (float64(h.Count) * BinWidth)
	for i := range h.Density {
		h.Density[i] *= norm
	}
	return h
}

// ClassHistograms splits scores by their true label (1 = positive) and
// returns one normalized histogram per class, for visual inspection of
// the separation between the classes.
func ClassHistograms(scores []float64, labels []int) (positive, negative Histogram) {
	var pos, neg []float64
	for i, s := range scores {
		if labels[i] == 1 {
			pos = append(pos, s)
		} else {
			neg = append(neg, s)
		}
	}
	return ScoreHistogram(pos), ScoreHistogram(neg)
}

// BinCenters returns the midpoints of the fixed binning, for plotting.
func BinCenters() []float64 {
	centers := make([]float64, NumBins)
	for i := range centers {
		centers[i] = (float64(i) + 0.5) * BinWidth
	}
	return centers
}
