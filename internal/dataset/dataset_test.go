package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTable(n int, gluonFrac float64, missing int) Table {
	records := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		r := Record{
			Mult:  float64(10 + i%30),
			PTD:   0.3 + 0.4*float64(i%10)/10,
			Axis2: 0.05 + 0.001*float64(i%50),
			Label: Quark,
		}
		if float64(i) < gluonFrac*float64(n) {
			r.Label = Gluon
		}
		if i < missing {
			r.PTD = math.NaN()
		}
		records = append(records, r)
	}
	return Table{Records: records, Source: "test"}
}

func TestCleanDropsMissing(t *testing.T) {
	table := makeTable(100, 0.5, 7)

	clean, report := table.Clean()
	assert.Equal(t, 93, clean.Len())
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, report.Dropped)

	for _, r := range clean.Records {
		assert.False(t, r.hasMissing())
	}
}

func TestCleanIdempotent(t *testing.T) {
	table := makeTable(50, 0.5, 5)

	once, _ := table.Clean()
	twice, report := once.Clean()
	assert.Empty(t, report.Dropped)
	assert.Equal(t, once.Records, twice.Records)
}

func TestSplitDisjointAndComplete(t *testing.T) {
	table := makeTable(200, 0.5, 0)

	train, test, err := table.Split(0.15, 42)
	require.NoError(t, err)
	assert.Equal(t, 200, train.Len()+test.Len())
	assert.Equal(t, 30, test.Len())

	// Feature triples are unique per source row index modulo
	// construction, so count occurrences instead of identity.
	seen := make(map[Record]int)
	for _, r := range table.Records {
		seen[r]++
	}
	for _, r := range append(append([]Record{}, train.Records...), test.Records...) {
		seen[r]--
	}
	for r, c := range seen {
		assert.Zerof(t, c, "record %+v not partitioned exactly once", r)
	}
}

func TestSplitReproducible(t *testing.T) {
	table := makeTable(120, 0.3, 0)

	train1, test1, err := table.Split(0.15, 7)
	require.NoError(t, err)
	train2, test2, err := table.Split(0.15, 7)
	require.NoError(t, err)
	assert.Equal(t, train1.Records, train2.Records)
	assert.Equal(t, test1.Records, test2.Records)

	_, test3, err := table.Split(0.15, 8)
	require.NoError(t, err)
	assert.NotEqual(t, test1.Records, test3.Records, "different seeds should shuffle differently")
}

func TestSplitRejectsBadFraction(t *testing.T) {
	table := makeTable(10, 0.5, 0)

	for _, frac := range []float64{0, 1, -0.2, 1.5} {
		_, _, err := table.Split(frac, 1)
		assert.ErrorIs(t, err, ErrConfiguration)
	}
}

func TestClassWeightsInverseFrequency(t *testing.T) {
	// 90/10 imbalance: weights should be ~{0.556, 5.0} and their ratio
	// must equal the inverse frequency ratio.
	table := makeTable(1000, 0.1, 0)

	weights, err := ComputeClassWeights(table)
	require.NoError(t, err)
	assert.InDelta(t, 0.5556, weights[Quark], 1e-3)
	assert.InDelta(t, 5.0, weights[Gluon], 1e-3)
	assert.Greater(t, weights[Gluon], weights[Quark])
	assert.InDelta(t, 9.0, weights[Gluon]/weights[Quark], 1e-9)
}

func TestClassWeightsBalanced(t *testing.T) {
	table := makeTable(100, 0.5, 0)

	weights, err := ComputeClassWeights(table)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, weights[Quark], 1e-12)
	assert.InDelta(t, 1.0, weights[Gluon], 1e-12)
}

func TestClassWeightsMissingClass(t *testing.T) {
	table := makeTable(50, 0, 0) // quark only

	_, err := ComputeClassWeights(table)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestFeatureAndLabelMatrices(t *testing.T) {
	table := Table{Records: []Record{
		{Mult: 12, PTD: 0.5, Axis2: 0.04, Label: Gluon},
		{Mult: 5, PTD: 0.9, Axis2: 0.01, Label: Quark},
	}}

	x := table.Features()
	require.Len(t, x, 2)
	assert.Equal(t, []float64{12, 0.5, 0.04}, x[0])
	assert.Equal(t, []float64{5, 0.9, 0.01}, x[1])

	y := table.Labels()
	assert.Equal(t, []float64{1}, y[0])
	assert.Equal(t, []float64{0}, y[1])
}

func TestSampleWeightsExpansion(t *testing.T) {
	table := Table{Records: []Record{
		{Label: Gluon}, {Label: Quark}, {Label: Gluon},
	}}
	w := table.SampleWeights(ClassWeights{Quark: 0.5, Gluon: 2})
	assert.Equal(t, []float64{2, 0.5, 2}, w)
}

func TestSummary(t *testing.T) {
	table := Table{Records: []Record{
		{Mult: 10, PTD: 0.2, Axis2: 0.1},
		{Mult: 20, PTD: 0.4, Axis2: 0.3},
	}}

	summaries := table.Summary()
	require.Len(t, summaries, 3)
	assert.Equal(t, "jet_mult", summaries[0].Name)
	assert.InDelta(t, 15, summaries[0].Mean, 1e-12)
	assert.InDelta(t, 0.3, summaries[1].Mean, 1e-12)
}
