package main

import (
	"errors"
	"fmt"
	"math/rand"
	"os"

	"github.com/spboyer/toolclf/internal/classifier"
	"github.com/spboyer/toolclf/internal/dataset"
	"github.com/spboyer/toolclf/internal/encoding"
	"github.com/spboyer/toolclf/internal/models"
	"github.com/spboyer/toolclf/internal/normalize"
	"github.com/spboyer/toolclf/internal/perceptron"
	"github.com/spboyer/toolclf/internal/projectconfig"
	"github.com/spf13/cobra"
)

// settings is the merged result of .toolclf.yaml and command-line flags.
type settings struct {
	cfg      *projectconfig.ProjectConfig
	strategy encoding.Strategy
	opts     classifier.Options
	// seed is always concrete so reports can be reproduced.
	seed int64
	// testExplicit is set when --test was given on the command line.
	testExplicit bool
}

func addModelFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("train", "", "Training dataset CSV (default from .toolclf.yaml)")
	f.String("test", "", "Test dataset CSV (default from .toolclf.yaml)")
	f.String("strategy", "", "Encoding strategy: keyword | onehot")
	f.String("normalization", "", "Normalization: dataset | calibrated (default depends on strategy)")
	f.Float64("learning-rate", 0, "Perceptron learning rate")
	f.Int("max-epochs", 0, "Maximum training epochs")
	f.Int64("seed", -1, "Random seed for weight initialization (-1 draws one)")
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	cfg, err := projectconfig.Load(wd)
	if err != nil {
		return nil, err
	}

	// CLI flags override config
	f := cmd.Flags()
	s := &settings{cfg: cfg}
	if f.Changed("train") {
		cfg.Paths.Train, _ = f.GetString("train")
	}
	if f.Changed("test") {
		cfg.Paths.Test, _ = f.GetString("test")
		s.testExplicit = true
	}
	if f.Changed("strategy") {
		cfg.Encoding.Strategy, _ = f.GetString("strategy")
	}
	if f.Changed("normalization") {
		cfg.Encoding.Normalization, _ = f.GetString("normalization")
	}
	if f.Changed("learning-rate") {
		cfg.Training.LearningRate, _ = f.GetFloat64("learning-rate")
	}
	if f.Changed("max-epochs") {
		cfg.Training.MaxEpochs, _ = f.GetInt("max-epochs")
	}
	if f.Changed("seed") {
		seed, _ := f.GetInt64("seed")
		cfg.Training.Seed = &seed
	}

	s.strategy, err = encoding.ParseStrategy(cfg.Encoding.Strategy)
	if err != nil {
		return nil, err
	}
	var mode normalize.Mode
	if cfg.Encoding.Normalization != "" {
		if mode, err = normalize.ParseMode(cfg.Encoding.Normalization); err != nil {
			return nil, err
		}
	}
	pcfg := perceptron.Config{LearningRate: cfg.Training.LearningRate, MaxEpochs: cfg.Training.MaxEpochs}
	if err := pcfg.Validate(); err != nil {
		return nil, err
	}

	s.opts = classifier.Options{
		Strategy:      s.strategy,
		Normalization: mode,
		Calibration:   cfg.Calibration,
		Perceptron:    pcfg,
	}
	s.seed = cfg.SeedValue()
	if s.seed < 0 {
		s.seed = rand.Int63()
	}
	return s, nil
}

func (s *settings) kind() models.FunctionKind {
	return s.strategy.FunctionKind()
}

func (s *settings) loadTrain() ([]models.RawRecord, error) {
	if s.cfg.Paths.Train == "" {
		return nil, errors.New("no training dataset: set --train or paths.train in .toolclf.yaml")
	}
	return dataset.LoadRecords(s.cfg.Paths.Train, s.kind())
}

// loadTest returns nil records when no test set is configured, or when the
// configured default does not exist and --test was not given.
func (s *settings) loadTest() ([]models.RawRecord, error) {
	path := s.cfg.Paths.Test
	if path == "" {
		return nil, nil
	}
	if !s.testExplicit {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
	}
	return dataset.LoadRecords(path, s.kind())
}

func (s *settings) fit(train []models.RawRecord) (*classifier.Classifier, error) {
	return classifier.Fit(train, s.opts, perceptron.NewRand(s.seed))
}
