package perceptron

import (
	"fmt"
	"log/slog"
	"math/rand"
)

// InitRange bounds the uniform initialization of weights and bias.
const InitRange = 0.1

// Default hyperparameters.
const (
	DefaultLearningRate = 0.1
	DefaultMaxEpochs    = 1000
)

// Config holds the training hyperparameters.
type Config struct {
	LearningRate float64 `json:"learning_rate"`
	MaxEpochs    int     `json:"max_epochs"`
}

// DefaultConfig returns learning rate 0.1 and 1000 epochs.
func DefaultConfig() Config {
	return Config{LearningRate: DefaultLearningRate, MaxEpochs: DefaultMaxEpochs}
}

// Validate checks the hyperparameters.
func (c Config) Validate() error {
	if !(c.LearningRate > 0) {
		return fmt.Errorf("%w: learning rate must be > 0, got %v", ErrInvalidConfig, c.LearningRate)
	}
	if c.MaxEpochs < 1 {
		return fmt.Errorf("%w: max epochs must be >= 1, got %d", ErrInvalidConfig, c.MaxEpochs)
	}
	return nil
}

// Sample is one encoded item and its 0/1 label.
type Sample struct {
	Features []float64
	Label    int
}

// Dataset is an ordered list of samples. Training visits it in order.
type Dataset []Sample

// NewDataset pairs feature vectors with labels.
func NewDataset(features [][]float64, labels []int) (Dataset, error) {
	if len(features) != len(labels) {
		return nil, fmt.Errorf("%w: %d feature vectors but %d labels", ErrShapeMismatch, len(features), len(labels))
	}
	ds := make(Dataset, len(features))
	for i := range features {
		ds[i] = Sample{Features: features[i], Label: labels[i]}
	}
	return ds, nil
}

// Dim returns the shared feature length, failing if samples disagree.
func (d Dataset) Dim() (int, error) {
	if len(d) == 0 {
		return 0, ErrEmptyDataset
	}
	dim := len(d[0].Features)
	for i, s := range d[1:] {
		if len(s.Features) != dim {
			return 0, fmt.Errorf("%w: sample %d has %d features, sample 0 has %d", ErrShapeMismatch, i+1, len(s.Features), dim)
		}
	}
	return dim, nil
}

// TrainResult reports how a training run ended.
type TrainResult struct {
	Epochs    int
	Converged bool
}

// Model is a perceptron. The zero value is not usable; create one with New.
type Model struct {
	cfg     Config
	rng     *rand.Rand
	weights []float64
	bias    float64
	history History
}

// New creates an untrained model. rng drives weight initialization; pass a
// seeded source for reproducible training. A nil rng gets a randomly seeded
// source of its own.
func New(cfg Config, rng *rand.Rand) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = NewRand(-1)
	}
	return &Model{cfg: cfg, rng: rng}, nil
}

// NewRand returns a source seeded with seed, or a nondeterministic one when
// seed is negative.
func NewRand(seed int64) *rand.Rand {
	if seed >= 0 {
		return rand.New(rand.NewSource(seed))
	}
	return rand.New(rand.NewSource(rand.Int63()))
}

// Train fits the model to ds, replacing any previous weights and history.
// The dataset is fully checked before the first epoch, so a failed Train
// leaves the model untouched.
func (m *Model) Train(ds Dataset) (TrainResult, error) {
	dim, err := ds.Dim()
	if err != nil {
		return TrainResult{}, err
	}
	for i, s := range ds {
		if s.Label != 0 && s.Label != 1 {
			return TrainResult{}, fmt.Errorf("%w: sample %d has label %d", ErrInvalidLabel, i, s.Label)
		}
	}

	m.weights = make([]float64, dim)
	for j := range m.weights {
		m.weights[j] = m.uniform()
	}
	m.bias = m.uniform()
	m.history.reset()

	for epoch := 1; epoch <= m.cfg.MaxEpochs; epoch++ {
		mistakes := 0
		for _, s := range ds {
			e := s.Label - step(m.activation(s.Features))
			if e == 0 {
				continue
			}
			mistakes++
			delta := m.cfg.LearningRate * float64(e)
			for j, x := range s.Features {
				m.weights[j] += delta * x
			}
			m.bias += delta
		}

		rec := m.history.append(epoch, mistakes, len(ds))
		slog.Debug("perceptron epoch", "epoch", rec.Epoch, "errors", rec.Errors, "accuracy", rec.Accuracy)
		if mistakes == 0 {
			return TrainResult{Epochs: epoch, Converged: true}, nil
		}
	}
	return TrainResult{Epochs: m.cfg.MaxEpochs, Converged: false}, nil
}

// Predict returns the 0/1 label of features.
func (m *Model) Predict(features []float64) (int, error) {
	if m.weights == nil {
		return 0, ErrNotTrained
	}
	if len(features) != len(m.weights) {
		return 0, fmt.Errorf("%w: got %d features, model has %d weights", ErrShapeMismatch, len(features), len(m.weights))
	}
	return step(m.activation(features)), nil
}

// Activation returns dot(w, x) + b, the signed distance-like score behind a
// prediction.
func (m *Model) Activation(features []float64) (float64, error) {
	if m.weights == nil {
		return 0, ErrNotTrained
	}
	if len(features) != len(m.weights) {
		return 0, fmt.Errorf("%w: got %d features, model has %d weights", ErrShapeMismatch, len(features), len(m.weights))
	}
	return m.activation(features), nil
}

// Accuracy returns the percentage of samples in ds predicted correctly.
func (m *Model) Accuracy(ds Dataset) (float64, error) {
	if m.weights == nil {
		return 0, ErrNotTrained
	}
	if len(ds) == 0 {
		return 0, ErrEmptyDataset
	}
	correct := 0
	for i, s := range ds {
		p, err := m.Predict(s.Features)
		if err != nil {
			return 0, fmt.Errorf("sample %d: %w", i, err)
		}
		if p == s.Label {
			correct++
		}
	}
	return 100 * float64(correct) / float64(len(ds)), nil
}

// Trained reports whether Train has completed at least once.
func (m *Model) Trained() bool { return m.weights != nil }

// Weights returns a copy of the learned weights, or nil before training.
func (m *Model) Weights() []float64 {
	if m.weights == nil {
		return nil
	}
	return append([]float64(nil), m.weights...)
}

func (m *Model) Bias() float64 { return m.bias }

func (m *Model) Config() Config { return m.cfg }

// History returns the epoch records of the latest training run.
func (m *Model) History() *History { return &m.history }

func (m *Model) activation(x []float64) float64 {
	dot := 0.0
	for j, w := range m.weights {
		dot += w * x[j]
	}
	return dot + m.bias
}

func (m *Model) uniform() float64 {
	return (m.rng.Float64()*2 - 1) * InitRange
}

func step(a float64) int {
	if a >= 0 {
		return 1
	}
	return 0
}
