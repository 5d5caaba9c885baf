// Package classifier wires the vocabulary, normalizer, encoder and
// perceptron into one trained pipeline. A Classifier fixes every encoding
// decision at fit time, so records encoded later (test sets, interactive
// input) land in the same feature space as the training set.
package classifier

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/spboyer/toolclf/internal/dataset"
	"github.com/spboyer/toolclf/internal/encoding"
	"github.com/spboyer/toolclf/internal/models"
	"github.com/spboyer/toolclf/internal/normalize"
	"github.com/spboyer/toolclf/internal/perceptron"
	"github.com/spboyer/toolclf/internal/vocabulary"
)

// Options configures Fit.
type Options struct {
	Strategy encoding.Strategy
	// Normalization defaults to the strategy's DefaultNormalization.
	Normalization normalize.Mode
	// Calibration overrides the built-in calibration bounds when non-zero.
	Calibration normalize.Params
	Perceptron  perceptron.Config
}

// Classifier is a fitted encoder plus its trained model.
type Classifier struct {
	encoder encoding.Encoder
	vocab   vocabulary.Vocabulary
	model   *perceptron.Model
	result  perceptron.TrainResult
	mode    normalize.Mode
}

// Fit builds the vocabulary (keyword strategy) and normalization bounds from
// records, encodes them and trains a perceptron drawing its initial weights
// from rng.
func Fit(records []models.RawRecord, opts Options, rng *rand.Rand) (*Classifier, error) {
	if len(records) == 0 {
		return nil, perceptron.ErrEmptyDataset
	}
	for i, r := range records {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("record %d (%s): %w", i, r.Name, err)
		}
	}

	mode := opts.Normalization
	if mode == "" {
		mode = opts.Strategy.DefaultNormalization()
	}
	params, err := normalize.Resolve(mode, records, opts.Calibration)
	if err != nil {
		return nil, err
	}

	var vocab vocabulary.Vocabulary
	if opts.Strategy == encoding.StrategyKeyword {
		vocab = vocabulary.Build(dataset.FunctionTexts(records))
	}
	enc, err := encoding.New(opts.Strategy, params, vocab)
	if err != nil {
		return nil, err
	}

	model, err := perceptron.New(opts.Perceptron, rng)
	if err != nil {
		return nil, err
	}
	ds, err := perceptron.NewDataset(encoding.EncodeAll(enc, records), dataset.Labels(records))
	if err != nil {
		return nil, err
	}

	slog.Debug("training perceptron",
		"strategy", opts.Strategy, "normalization", mode,
		"samples", len(ds), "features", enc.Dim(),
		"learning_rate", opts.Perceptron.LearningRate, "max_epochs", opts.Perceptron.MaxEpochs)

	res, err := model.Train(ds)
	if err != nil {
		return nil, fmt.Errorf("training: %w", err)
	}
	return &Classifier{encoder: enc, vocab: vocab, model: model, result: res, mode: mode}, nil
}

// Predict classifies one raw record with the encoding fixed at fit time.
func (c *Classifier) Predict(r models.RawRecord) (int, error) {
	if err := r.ValidateAttributes(); err != nil {
		return 0, err
	}
	return c.model.Predict(c.encoder.Encode(r))
}

// Accuracy scores labeled records, as a percentage.
func (c *Classifier) Accuracy(records []models.RawRecord) (float64, error) {
	ds, err := c.Dataset(records)
	if err != nil {
		return 0, err
	}
	return c.model.Accuracy(ds)
}

// Dataset encodes labeled records with the fitted encoder.
func (c *Classifier) Dataset(records []models.RawRecord) (perceptron.Dataset, error) {
	for i, r := range records {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("record %d (%s): %w", i, r.Name, err)
		}
	}
	return perceptron.NewDataset(encoding.EncodeAll(c.encoder, records), dataset.Labels(records))
}

func (c *Classifier) Encoder() encoding.Encoder { return c.encoder }

func (c *Classifier) Model() *perceptron.Model { return c.model }

// Vocabulary is empty for the one-hot strategy.
func (c *Classifier) Vocabulary() vocabulary.Vocabulary { return c.vocab }

func (c *Classifier) Result() perceptron.TrainResult { return c.result }

func (c *Classifier) Normalization() normalize.Mode { return c.mode }

// FeatureWeight pairs a feature name with its learned weight.
type FeatureWeight struct {
	Feature string  `json:"feature"`
	Weight  float64 `json:"weight"`
}

// Weights returns the learned weights labeled by feature name.
func (c *Classifier) Weights() []FeatureWeight {
	names := c.encoder.FeatureNames()
	weights := c.model.Weights()
	out := make([]FeatureWeight, len(weights))
	for i, w := range weights {
		out[i] = FeatureWeight{Feature: names[i], Weight: w}
	}
	return out
}
