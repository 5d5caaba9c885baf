package sweep

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/spboyer/toolclf/internal/classifier"
	"github.com/spboyer/toolclf/internal/encoding"
	"github.com/spboyer/toolclf/internal/models"
	"github.com/spboyer/toolclf/internal/perceptron"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func records() []models.RawRecord {
	return []models.RawRecord{
		{Name: "martelo", Weight: 500, Hardness: 8, Size: 20, HasHandle: true, IsMetal: true, FunctionCode: models.FunctionImpact, Label: 1},
		{Name: "chave de fenda", Weight: 120, Hardness: 7, Size: 18, HasHandle: true, IsMetal: true, FunctionCode: models.FunctionFastening, Label: 1},
		{Name: "borracha", Weight: 10, Hardness: 1, Size: 3, FunctionCode: models.FunctionOther, Label: 0},
		{Name: "caderno", Weight: 200, Hardness: 1, Size: 25, FunctionCode: models.FunctionWriting, Label: 0},
	}
}

func onehot() classifier.Options {
	return classifier.Options{Strategy: encoding.StrategyOneHot}
}

func TestSeedRange(t *testing.T) {
	assert.Equal(t, []int64{5, 6, 7}, SeedRange(5, 3))
	assert.Empty(t, SeedRange(1, 0))
}

func TestRun_OrderingAndSummaries(t *testing.T) {
	grid := Grid{
		LearningRates: []float64{0.5, 0.01, 0.1},
		Seeds:         SeedRange(1, 3),
		MaxEpochs:     500,
		Workers:       2,
	}

	res, err := Run(context.Background(), records(), records(), onehot(), grid)
	require.NoError(t, err)
	require.Len(t, res.Trials, 9)
	require.Len(t, res.Summaries, 3)
	assert.True(t, res.HasTest)

	wantRates := []float64{0.01, 0.1, 0.5}
	for i, s := range res.Summaries {
		assert.Equal(t, wantRates[i], s.LearningRate)
		assert.Equal(t, 3, s.Trials)
		// Separable data converges for every seed.
		assert.Equal(t, 3, s.Converged)
		assert.Equal(t, 100.0, s.MeanAccuracy)
		assert.Equal(t, 100.0, s.MedianAccuracy)
		assert.Zero(t, s.StdDevAccuracy)
		assert.GreaterOrEqual(t, s.MeanEpochs, 1.0)
	}
	for i, tr := range res.Trials {
		assert.Equal(t, wantRates[i/3], tr.LearningRate)
		assert.Equal(t, int64(i%3+1), tr.Seed)
	}
}

func TestRun_MatchesSequentialFit(t *testing.T) {
	grid := Grid{LearningRates: []float64{0.1}, Seeds: []int64{42}, MaxEpochs: 100, Workers: 8}
	res, err := Run(context.Background(), records(), nil, onehot(), grid)
	require.NoError(t, err)
	assert.False(t, res.HasTest)

	opts := onehot()
	opts.Perceptron = perceptron.Config{LearningRate: 0.1, MaxEpochs: 100}
	c, err := classifier.Fit(records(), opts, perceptron.NewRand(42))
	require.NoError(t, err)

	require.Len(t, res.Trials, 1)
	assert.Equal(t, c.Result().Epochs, res.Trials[0].Epochs)
	assert.Equal(t, res.Trials[0].TrainAccuracy, res.Trials[0].Accuracy)
}

func TestRun_InvalidGrid(t *testing.T) {
	tests := []struct {
		name string
		grid Grid
	}{
		{"no rates", Grid{Seeds: []int64{1}}},
		{"no seeds", Grid{LearningRates: []float64{0.1}}},
		{"negative rate", Grid{LearningRates: []float64{-0.1}, Seeds: []int64{1}}},
		{"negative epochs", Grid{LearningRates: []float64{0.1}, Seeds: []int64{1}, MaxEpochs: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(context.Background(), records(), nil, onehot(), tt.grid)
			require.ErrorIs(t, err, perceptron.ErrInvalidConfig)
		})
	}
}

func TestRun_EmptyTraining(t *testing.T) {
	grid := Grid{LearningRates: []float64{0.1}, Seeds: []int64{1}}
	_, err := Run(context.Background(), nil, nil, onehot(), grid)
	require.ErrorIs(t, err, perceptron.ErrEmptyDataset)
}

func TestRun_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	grid := Grid{LearningRates: []float64{0.1, 0.2}, Seeds: SeedRange(1, 4)}
	_, err := Run(ctx, records(), nil, onehot(), grid)
	require.ErrorIs(t, err, context.Canceled)
}

func TestResult_Best(t *testing.T) {
	r := &Result{Summaries: []Summary{
		{LearningRate: 0.01, MeanAccuracy: 80},
		{LearningRate: 0.1, MeanAccuracy: 95},
		{LearningRate: 0.5, MeanAccuracy: 95},
	}}
	best, ok := r.Best()
	require.True(t, ok)
	assert.Equal(t, 0.1, best.LearningRate)

	_, ok = (&Result{}).Best()
	assert.False(t, ok)
}

func TestRun_ReportsProgress(t *testing.T) {
	var done atomic.Int32
	grid := Grid{
		LearningRates: []float64{0.1, 1},
		Seeds:         SeedRange(1, 3),
		Workers:       3,
		Progress:      func() { done.Add(1) },
	}
	_, err := Run(context.Background(), records(), nil, onehot(), grid)
	require.NoError(t, err)
	assert.Equal(t, int32(6), done.Load())
}
