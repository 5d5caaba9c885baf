package reporting

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/spboyer/toolclf/internal/classifier"
	"github.com/spboyer/toolclf/internal/encoding"
	"github.com/spboyer/toolclf/internal/models"
	"github.com/spboyer/toolclf/internal/perceptron"
	"github.com/spboyer/toolclf/internal/statistics"
)

// ModelType is the model name recorded in every report.
const ModelType = "Perceptron"

// Report is the write-only JSON summary of one training run.
type Report struct {
	Timestamp      time.Time                   `json:"timestamp"`
	Model          ModelInfo                   `json:"model"`
	Data           DataInfo                    `json:"data"`
	Performance    Performance                 `json:"performance"`
	History        []perceptron.TrainingRecord `json:"training_history"`
	FunctionLegend map[int]string              `json:"function_legend,omitempty"`
	Weights        []classifier.FeatureWeight  `json:"weights"`
	Vocabulary     []string                    `json:"vocabulary,omitempty"`
	Misclassified  []classifier.ItemResult     `json:"misclassified,omitempty"`
}

// ModelInfo describes the hyperparameters and outcome of training.
type ModelInfo struct {
	Type          string  `json:"type"`
	Strategy      string  `json:"strategy"`
	Normalization string  `json:"normalization"`
	LearningRate  float64 `json:"learning_rate"`
	MaxEpochs     int     `json:"max_epochs"`
	EpochsRun     int     `json:"epochs_run"`
	Converged     bool    `json:"converged"`
	Seed          int64   `json:"seed"`
}

// DataInfo counts the records and features involved.
type DataInfo struct {
	TrainSamples     int `json:"train_samples"`
	TestSamples      int `json:"test_samples"`
	PhysicalFeatures int `json:"physical_features"`
	FunctionFeatures int `json:"function_features"`
	TotalFeatures    int `json:"total_features"`
}

// Performance holds accuracies as percentages.
type Performance struct {
	TrainAccuracy float64                        `json:"final_train_accuracy"`
	TestAccuracy  *float64                       `json:"test_accuracy,omitempty"`
	TestCI        *statistics.ConfidenceInterval `json:"test_accuracy_ci,omitempty"`
	Bias          float64                        `json:"bias"`
}

// Input gathers what Build needs. Test may be nil when no test set was given.
type Input struct {
	Classifier   *classifier.Classifier
	TrainSamples int
	Test         *classifier.Evaluation
	Seed         int64
	Now          time.Time
}

// Build assembles a Report from a fitted classifier and its evaluation.
func Build(in Input) *Report {
	c := in.Classifier
	model := c.Model()
	cfg := model.Config()
	res := c.Result()
	enc := c.Encoder()

	ts := in.Now
	if ts.IsZero() {
		ts = time.Now()
	}

	r := &Report{
		Timestamp: ts.UTC(),
		Model: ModelInfo{
			Type:          ModelType,
			Strategy:      string(enc.Strategy()),
			Normalization: string(c.Normalization()),
			LearningRate:  cfg.LearningRate,
			MaxEpochs:     cfg.MaxEpochs,
			EpochsRun:     res.Epochs,
			Converged:     res.Converged,
			Seed:          in.Seed,
		},
		Data: DataInfo{
			TrainSamples:     in.TrainSamples,
			PhysicalFeatures: encoding.PhysicalFeatures,
			FunctionFeatures: enc.Dim() - encoding.PhysicalFeatures,
			TotalFeatures:    enc.Dim(),
		},
		Performance: Performance{
			TrainAccuracy: model.History().FinalAccuracy(),
			Bias:          model.Bias(),
		},
		History:    model.History().Records(),
		Weights:    c.Weights(),
		Vocabulary: c.Vocabulary().Words(),
	}
	if enc.Strategy() == encoding.StrategyOneHot {
		r.FunctionLegend = models.Legend()
	}

	if in.Test != nil {
		acc := in.Test.Accuracy
		ci := statistics.BootstrapCIWithSeed(in.Test.Scores(), statistics.DefaultConfidenceLevel, in.Seed).Percent()
		r.Data.TestSamples = in.Test.Total
		r.Performance.TestAccuracy = &acc
		r.Performance.TestCI = &ci
		r.Misclassified = in.Test.Misclassified()
	}
	return r
}

// MarshalIndent encodes the report the way WriteJSON stores it.
func (r *Report) MarshalIndent() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling report: %w", err)
	}
	return data, nil
}

// WriteJSON writes the report as indented JSON. A path ending in .gz is
// gzip-compressed.
func WriteJSON(r *Report, path string) error {
	data, err := r.MarshalIndent()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	if err := writeMaybeGzip(f, path, data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func writeMaybeGzip(w io.Writer, path string, data []byte) error {
	if !strings.HasSuffix(path, ".gz") {
		_, err := w.Write(data)
		return err
	}
	zw := gzip.NewWriter(w)
	if _, err := zw.Write(data); err != nil {
		return fmt.Errorf("compressing report: %w", err)
	}
	return zw.Close()
}

// ReadJSON loads raw report bytes, transparently decompressing .gz files.
func ReadJSON(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	if !strings.HasSuffix(path, ".gz") {
		return io.ReadAll(f)
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("opening gzip report: %w", err)
	}
	defer zr.Close() //nolint:errcheck
	return io.ReadAll(zr)
}
