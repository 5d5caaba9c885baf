// Package sweep trains many independently seeded classifiers over a grid of
// learning rates and summarizes how each rate behaves.
package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"

	"github.com/montanaflynn/stats"
	"github.com/spboyer/toolclf/internal/classifier"
	"github.com/spboyer/toolclf/internal/models"
	"github.com/spboyer/toolclf/internal/perceptron"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers bounds concurrent training runs when Grid.Workers is unset.
const DefaultWorkers = 4

// Grid is the set of (learning rate, seed) pairs to train.
type Grid struct {
	LearningRates []float64
	Seeds         []int64
	MaxEpochs     int
	Workers       int
	// Progress, when set, is called after each finished trial from the
	// worker goroutines.
	Progress func()
}

// SeedRange returns n consecutive seeds starting at base.
func SeedRange(base int64, n int) []int64 {
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = base + int64(i)
	}
	return seeds
}

// Trial is the outcome of one training run.
type Trial struct {
	LearningRate  float64 `json:"learning_rate"`
	Seed          int64   `json:"seed"`
	Epochs        int     `json:"epochs"`
	Converged     bool    `json:"converged"`
	TrainAccuracy float64 `json:"train_accuracy"`
	// Accuracy is the test accuracy, or the training accuracy without a test set.
	Accuracy float64 `json:"accuracy"`
}

// Summary aggregates the trials of one learning rate.
type Summary struct {
	LearningRate   float64 `json:"learning_rate"`
	Trials         int     `json:"trials"`
	Converged      int     `json:"converged"`
	MeanEpochs     float64 `json:"mean_epochs"`
	MeanAccuracy   float64 `json:"mean_accuracy"`
	MedianAccuracy float64 `json:"median_accuracy"`
	StdDevAccuracy float64 `json:"stddev_accuracy"`
}

// Result holds every trial, ordered by learning rate then seed, and one
// summary per learning rate in ascending order.
type Result struct {
	Trials    []Trial   `json:"trials"`
	Summaries []Summary `json:"summaries"`
	HasTest   bool      `json:"has_test"`
}

// Best returns the summary with the highest mean accuracy, preferring the
// smaller learning rate on ties.
func (r *Result) Best() (Summary, bool) {
	if len(r.Summaries) == 0 {
		return Summary{}, false
	}
	best := r.Summaries[0]
	for _, s := range r.Summaries[1:] {
		if s.MeanAccuracy > best.MeanAccuracy {
			best = s
		}
	}
	return best, true
}

// Run trains one classifier per (learning rate, seed) pair with opts as the
// shared encoding settings. Each trial owns its model and random source.
func Run(ctx context.Context, train, test []models.RawRecord, opts classifier.Options, grid Grid) (*Result, error) {
	if len(grid.LearningRates) == 0 || len(grid.Seeds) == 0 {
		return nil, fmt.Errorf("%w: sweep needs at least one learning rate and one seed", perceptron.ErrInvalidConfig)
	}
	if grid.MaxEpochs == 0 {
		grid.MaxEpochs = perceptron.DefaultMaxEpochs
	}
	for _, lr := range grid.LearningRates {
		cfg := perceptron.Config{LearningRate: lr, MaxEpochs: grid.MaxEpochs}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	workers := grid.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	rates := append([]float64(nil), grid.LearningRates...)
	sort.Float64s(rates)

	trials := make([]Trial, len(rates)*len(grid.Seeds))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, lr := range rates {
		for j, seed := range grid.Seeds {
			idx := i*len(grid.Seeds) + j
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				t, err := runTrial(train, test, opts, lr, grid.MaxEpochs, seed)
				if err != nil {
					return fmt.Errorf("learning rate %g, seed %d: %w", lr, seed, err)
				}
				trials[idx] = t
				if grid.Progress != nil {
					grid.Progress()
				}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Trials: trials, HasTest: len(test) > 0}
	for i, lr := range rates {
		res.Summaries = append(res.Summaries, summarize(lr, trials[i*len(grid.Seeds):(i+1)*len(grid.Seeds)]))
	}
	slog.Debug("sweep finished", "learning_rates", len(rates), "seeds", len(grid.Seeds), "trials", len(trials))
	return res, nil
}

func runTrial(train, test []models.RawRecord, opts classifier.Options, lr float64, maxEpochs int, seed int64) (Trial, error) {
	opts.Perceptron = perceptron.Config{LearningRate: lr, MaxEpochs: maxEpochs}
	c, err := classifier.Fit(train, opts, rand.New(rand.NewSource(seed)))
	if err != nil {
		return Trial{}, err
	}
	t := Trial{
		LearningRate:  lr,
		Seed:          seed,
		Epochs:        c.Result().Epochs,
		Converged:     c.Result().Converged,
		TrainAccuracy: c.Model().History().FinalAccuracy(),
	}
	t.Accuracy = t.TrainAccuracy
	if len(test) > 0 {
		acc, err := c.Accuracy(test)
		if err != nil {
			return Trial{}, fmt.Errorf("test accuracy: %w", err)
		}
		t.Accuracy = acc
	}
	return t, nil
}

func summarize(lr float64, trials []Trial) Summary {
	acc := make(stats.Float64Data, len(trials))
	epochs := make(stats.Float64Data, len(trials))
	s := Summary{LearningRate: lr, Trials: len(trials)}
	for i, t := range trials {
		acc[i] = t.Accuracy
		epochs[i] = float64(t.Epochs)
		if t.Converged {
			s.Converged++
		}
	}
	// stats only fails on empty input, and every rate has at least one seed.
	s.MeanEpochs, _ = stats.Mean(epochs)
	s.MeanAccuracy, _ = stats.Mean(acc)
	s.MedianAccuracy, _ = stats.Median(acc)
	s.StdDevAccuracy, _ = stats.StandardDeviation(acc)
	return s
}
