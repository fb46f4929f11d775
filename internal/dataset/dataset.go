// Package dataset loads and prepares the quark/gluon jet samples.
//
// Each row of the source CSV describes one simulated jet by three
// hand-engineered features: the charged-particle multiplicity, the
// energy-sharing fraction pTD, and the minor-axis width of the jet's
// particle spread. The binary label marks gluon-origin jets.
package dataset

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// Labels for the two jet classes.
const (
	Quark = 0
	Gluon = 1
)

// Record is one simulated jet.
type Record struct {
	Mult  float64 // charged-particle multiplicity
	PTD   float64 // energy-sharing fraction, in [0, 1]
	Axis2 float64 // minor-axis width
	Label int     // Quark or Gluon
}

// hasMissing reports whether any feature field failed to parse.
func (r Record) hasMissing() bool {
	return math.IsNaN(r.Mult) || math.IsNaN(r.PTD) || math.IsNaN(r.Axis2)
}

// Table is an ordered, immutable collection of jet records.
type Table struct {
	Records []Record
	Source  string
}

// Len returns the number of records.
func (t Table) Len() int { return len(t.Records) }

// CleanReport describes what Clean removed, for diagnostics.
type CleanReport struct {
	// Dropped holds the zero-based row indices (within the table)
	// removed for missing feature values.
	Dropped []int
}

// Clean returns a table without rows that have a missing value in any
// feature field, and a report of the rows it dropped. Cleaning an
// already-clean table is a no-op.
func (t Table) Clean() (Table, CleanReport) {
	kept := make([]Record, 0, len(t.Records))
	var report CleanReport
	for i, r := range t.Records {
		if r.hasMissing() {
			report.Dropped = append(report.Dropped, i)
			continue
		}
		kept = append(kept, r)
	}
	return Table{Records: kept, Source: t.Source}, report
}

// Split partitions the table into disjoint train and test tables. The
// assignment comes from a seeded shuffle, so a fixed seed reproduces
// the same partition regardless of prior use of the global generator.
func (t Table) Split(testFraction float64, seed int64) (train, test Table, err error) {
	if testFraction <= 0 || testFraction >= 1 {
		return Table{}, Table{}, errors.Wrapf(ErrConfiguration,
			"test fraction %v outside (0, 1)", testFraction)
	}

	n := len(t.Records)
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	nTest := int(math.Round(testFraction * float64(n)))

	test = Table{Records: make([]Record, 0, nTest), Source: t.Source}
	train = Table{Records: make([]Record, 0, n-nTest), Source: t.Source}
	for i, idx := range perm {
		if i < nTest {
			test.Records = append(test.Records, t.Records[idx])
		} else {
			train.Records = append(train.Records, t.Records[idx])
		}
	}
	return train, test, nil
}

// ClassWeights maps a label to its loss weight.
type ClassWeights map[int]float64

// ComputeClassWeights returns inverse-frequency weights,
// weight(c) = n / (2 * count(c)), so the rarer class weighs
// proportionally more and a balanced set gets weight 1 for both.
func ComputeClassWeights(train Table) (ClassWeights, error) {
	counts := map[int]int{Quark: 0, Gluon: 0}
	for _, r := range train.Records {
		counts[r.Label]++
	}

	n := float64(len(train.Records))
	weights := make(ClassWeights, len(counts))
	for label, count := range counts {
		if count == 0 {
			return nil, errors.Wrapf(ErrConfiguration,
				"label class %d absent from training split", label)
		}
		weights[label] = n / (2 * float64(count))
	}
	return weights, nil
}

// Features returns the (n, 3) feature matrix for the network.
func (t Table) Features() [][]float64 {
	x := make([][]float64, len(t.Records))
	for i, r := range t.Records {
		x[i] = []float64{r.Mult, r.PTD, r.Axis2}
	}
	return x
}

// Labels returns the (n, 1) target matrix for the network.
func (t Table) Labels() [][]float64 {
	y := make([][]float64, len(t.Records))
	for i, r := range t.Records {
		y[i] = []float64{float64(r.Label)}
	}
	return y
}

// SampleWeights expands class weights to one weight per row.
func (t Table) SampleWeights(weights ClassWeights) []float64 {
	w := make([]float64, len(t.Records))
	for i, r := range t.Records {
		w[i] = weights[r.Label]
	}
	return w
}

// FeatureSummary is the per-feature location and spread used in the
// diagnostic log.
type FeatureSummary struct {
	Name   string
	Mean   float64
	StdDev float64
}

// Summary computes mean and standard deviation per feature column.
func (t Table) Summary() []FeatureSummary {
	cols := []struct {
		name string
		get  func(Record) float64
	}{
		{"jet_mult", func(r Record) float64 { return r.Mult }},
		{"jet_ptd", func(r Record) float64 { return r.PTD }},
		{"jet_axis2", func(r Record) float64 { return r.Axis2 }},
	}

	summaries := make([]FeatureSummary, 0, len(cols))
	for _, col := range cols {
		values := make([]float64, len(t.Records))
		for i, r := range t.Records {
			values[i] = col.get(r)
		}
		summaries = append(summaries, FeatureSummary{
			Name:   col.name,
			Mean:   stat.Mean(values, nil),
			StdDev: stat.StdDev(values, nil),
		})
	}
	return summaries
}
