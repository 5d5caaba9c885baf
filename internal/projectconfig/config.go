// Package projectconfig provides the ProjectConfig struct and loader for
// .toolclf.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spboyer/toolclf/internal/normalize"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up from the working directory upward.
const FileName = ".toolclf.yaml"

// Default values for project configuration. New() references them and no
// other code should duplicate them.
const (
	DefaultTrainPath  = "data/dataset_ferramentas.csv"
	DefaultTestPath   = "data/dataset_teste.csv"
	DefaultReportPath = "resultados_treinamento.json"

	DefaultLearningRate = 0.1
	DefaultMaxEpochs    = 1000
	DefaultSeed         = -1

	DefaultStrategy = "onehot"

	DefaultSweepSeeds   = 5
	DefaultSweepWorkers = 4
)

// DefaultSweepLearningRates is the learning-rate grid of toolclf sweep.
var DefaultSweepLearningRates = []float64{0.01, 0.05, 0.1, 0.5, 1.0}

// PathsConfig holds dataset and output locations.
type PathsConfig struct {
	Train  string `yaml:"train,omitempty"`
	Test   string `yaml:"test,omitempty"`
	Report string `yaml:"report,omitempty"`
	JUnit  string `yaml:"junit,omitempty"`
}

// TrainingConfig holds perceptron hyperparameters.
type TrainingConfig struct {
	LearningRate float64 `yaml:"learning_rate,omitempty"`
	MaxEpochs    int     `yaml:"max_epochs,omitempty"`
	// Seed < 0 draws a fresh seed per run. A pointer so 0 stays a usable seed.
	Seed *int64 `yaml:"seed,omitempty"`
}

// EncodingConfig selects the feature encoding.
type EncodingConfig struct {
	Strategy string `yaml:"strategy,omitempty"`
	// Normalization is "dataset" or "calibrated"; empty uses the strategy's default.
	Normalization string `yaml:"normalization,omitempty"`
}

// SweepConfig holds the learning-rate grid search settings.
type SweepConfig struct {
	LearningRates []float64 `yaml:"learning_rates,omitempty"`
	Seeds         int       `yaml:"seeds,omitempty"`
	Workers       int       `yaml:"workers,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .toolclf.yaml.
type ProjectConfig struct {
	Paths       PathsConfig      `yaml:"paths,omitempty"`
	Training    TrainingConfig   `yaml:"training,omitempty"`
	Encoding    EncodingConfig   `yaml:"encoding,omitempty"`
	Calibration normalize.Params `yaml:"calibration,omitempty"`
	Sweep       SweepConfig      `yaml:"sweep,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Paths: PathsConfig{
			Train:  DefaultTrainPath,
			Test:   DefaultTestPath,
			Report: DefaultReportPath,
		},
		Training: TrainingConfig{
			LearningRate: DefaultLearningRate,
			MaxEpochs:    DefaultMaxEpochs,
			Seed:         int64Ptr(DefaultSeed),
		},
		Encoding: EncodingConfig{
			Strategy: DefaultStrategy,
		},
		Calibration: normalize.Calibrated(),
		Sweep: SweepConfig{
			LearningRates: append([]float64(nil), DefaultSweepLearningRates...),
			Seeds:         DefaultSweepSeeds,
			Workers:       DefaultSweepWorkers,
		},
	}
}

// Load finds .toolclf.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, cfgDir, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	resolvePaths(&fileCfg.Paths, cfgDir)
	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// findConfigFile walks up from dir looking for .toolclf.yaml (max 10 levels)
// and returns its contents and the directory holding it.
// Returns os.ErrNotExist if no config file is found.
func findConfigFile(dir string) ([]byte, string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, "", fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, dir, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, "", fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return nil, "", os.ErrNotExist
}

// resolvePaths makes relative paths from the config file relative to the
// directory holding it, so commands work from any subdirectory.
// Absolute and empty paths are left unchanged.
func resolvePaths(p *PathsConfig, baseDir string) {
	for _, path := range []*string{&p.Train, &p.Test, &p.Report, &p.JUnit} {
		if *path != "" && !filepath.IsAbs(*path) {
			*path = filepath.Join(baseDir, *path)
		}
	}
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	// Paths
	if src.Paths.Train != "" {
		dst.Paths.Train = src.Paths.Train
	}
	if src.Paths.Test != "" {
		dst.Paths.Test = src.Paths.Test
	}
	if src.Paths.Report != "" {
		dst.Paths.Report = src.Paths.Report
	}
	if src.Paths.JUnit != "" {
		dst.Paths.JUnit = src.Paths.JUnit
	}

	// Training
	if src.Training.LearningRate != 0 {
		dst.Training.LearningRate = src.Training.LearningRate
	}
	if src.Training.MaxEpochs != 0 {
		dst.Training.MaxEpochs = src.Training.MaxEpochs
	}
	if src.Training.Seed != nil {
		dst.Training.Seed = src.Training.Seed
	}

	// Encoding
	if src.Encoding.Strategy != "" {
		dst.Encoding.Strategy = src.Encoding.Strategy
	}
	if src.Encoding.Normalization != "" {
		dst.Encoding.Normalization = src.Encoding.Normalization
	}

	// Calibration, per attribute so a file may override only one bound pair.
	if src.Calibration.Weight != (normalize.Bounds{}) {
		dst.Calibration.Weight = src.Calibration.Weight
	}
	if src.Calibration.Hardness != (normalize.Bounds{}) {
		dst.Calibration.Hardness = src.Calibration.Hardness
	}
	if src.Calibration.Size != (normalize.Bounds{}) {
		dst.Calibration.Size = src.Calibration.Size
	}

	// Sweep
	if len(src.Sweep.LearningRates) > 0 {
		dst.Sweep.LearningRates = src.Sweep.LearningRates
	}
	if src.Sweep.Seeds != 0 {
		dst.Sweep.Seeds = src.Sweep.Seeds
	}
	if src.Sweep.Workers != 0 {
		dst.Sweep.Workers = src.Sweep.Workers
	}
}

// SeedValue returns the configured seed, DefaultSeed when unset.
func (c *ProjectConfig) SeedValue() int64 {
	if c.Training.Seed == nil {
		return DefaultSeed
	}
	return *c.Training.Seed
}

func int64Ptr(v int64) *int64 {
	return &v
}
