package projectconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spboyer/toolclf/internal/normalize"
)

func TestNew_ReturnsAllDefaults(t *testing.T) {
	cfg := New()

	// Paths
	assertEqual(t, "Paths.Train", "data/dataset_ferramentas.csv", cfg.Paths.Train)
	assertEqual(t, "Paths.Test", "data/dataset_teste.csv", cfg.Paths.Test)
	assertEqual(t, "Paths.Report", "resultados_treinamento.json", cfg.Paths.Report)
	assertEqual(t, "Paths.JUnit", "", cfg.Paths.JUnit)

	// Training
	assertEqualFloat(t, "Training.LearningRate", 0.1, cfg.Training.LearningRate)
	assertEqualInt(t, "Training.MaxEpochs", 1000, cfg.Training.MaxEpochs)
	if cfg.SeedValue() != -1 {
		t.Errorf("SeedValue() = %d, want -1", cfg.SeedValue())
	}

	// Encoding
	assertEqual(t, "Encoding.Strategy", "onehot", cfg.Encoding.Strategy)
	assertEqual(t, "Encoding.Normalization", "", cfg.Encoding.Normalization)

	// Calibration
	if cfg.Calibration != normalize.Calibrated() {
		t.Errorf("Calibration = %+v, want built-in constants", cfg.Calibration)
	}

	// Sweep
	if len(cfg.Sweep.LearningRates) != len(DefaultSweepLearningRates) {
		t.Errorf("Sweep.LearningRates = %v", cfg.Sweep.LearningRates)
	}
	assertEqualInt(t, "Sweep.Seeds", 5, cfg.Sweep.Seeds)
	assertEqualInt(t, "Sweep.Workers", 4, cfg.Sweep.Workers)
}

func TestLoad_FullConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, `
paths:
  train: "train.csv"
  test: "test.csv"
  report: "out/report.json.gz"
  junit: "out/junit.xml"
training:
  learning_rate: 0.05
  max_epochs: 250
  seed: 0
encoding:
  strategy: keyword
  normalization: calibrated
calibration:
  weight: {min: 60, max: 800}
  hardness: {min: 1, max: 9}
  size: {min: 4, max: 45}
sweep:
  learning_rates: [0.2, 0.4]
  seeds: 3
  workers: 2
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	assertEqual(t, "Paths.Train", filepath.Join(dir, "train.csv"), cfg.Paths.Train)
	assertEqual(t, "Paths.Test", filepath.Join(dir, "test.csv"), cfg.Paths.Test)
	assertEqual(t, "Paths.Report", filepath.Join(dir, "out", "report.json.gz"), cfg.Paths.Report)
	assertEqual(t, "Paths.JUnit", filepath.Join(dir, "out", "junit.xml"), cfg.Paths.JUnit)
	assertEqualFloat(t, "Training.LearningRate", 0.05, cfg.Training.LearningRate)
	assertEqualInt(t, "Training.MaxEpochs", 250, cfg.Training.MaxEpochs)
	if cfg.SeedValue() != 0 {
		t.Errorf("SeedValue() = %d, want explicit 0", cfg.SeedValue())
	}
	assertEqual(t, "Encoding.Strategy", "keyword", cfg.Encoding.Strategy)
	assertEqual(t, "Encoding.Normalization", "calibrated", cfg.Encoding.Normalization)
	if cfg.Calibration.Weight != (normalize.Bounds{Min: 60, Max: 800}) {
		t.Errorf("Calibration.Weight = %+v", cfg.Calibration.Weight)
	}
	if cfg.Calibration.Hardness != (normalize.Bounds{Min: 1, Max: 9}) {
		t.Errorf("Calibration.Hardness = %+v", cfg.Calibration.Hardness)
	}
	if len(cfg.Sweep.LearningRates) != 2 || cfg.Sweep.LearningRates[1] != 0.4 {
		t.Errorf("Sweep.LearningRates = %v", cfg.Sweep.LearningRates)
	}
	assertEqualInt(t, "Sweep.Seeds", 3, cfg.Sweep.Seeds)
	assertEqualInt(t, "Sweep.Workers", 2, cfg.Sweep.Workers)
}

func TestLoad_PartialConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, `
training:
  max_epochs: 50
calibration:
  size: {min: 0, max: 100}
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	assertEqualInt(t, "Training.MaxEpochs", 50, cfg.Training.MaxEpochs)
	assertEqualFloat(t, "Training.LearningRate", 0.1, cfg.Training.LearningRate)
	assertEqual(t, "Paths.Train", DefaultTrainPath, cfg.Paths.Train)
	if cfg.Calibration.Size != (normalize.Bounds{Min: 0, Max: 100}) {
		t.Errorf("Calibration.Size = %+v", cfg.Calibration.Size)
	}
	if cfg.Calibration.Weight != normalize.Calibrated().Weight {
		t.Errorf("Calibration.Weight should keep its default, got %+v", cfg.Calibration.Weight)
	}
}

func TestLoad_MissingFile_ReturnsDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertEqual(t, "Encoding.Strategy", DefaultStrategy, cfg.Encoding.Strategy)
	assertEqualInt(t, "Training.MaxEpochs", DefaultMaxEpochs, cfg.Training.MaxEpochs)
}

func TestLoad_InvalidYAML_ReturnsError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, "training: [not: a map")

	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestLoad_WalksUpDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, FileName, "encoding:\n  strategy: keyword\npaths:\n  train: data/train.csv\n  test: /abs/test.csv\n")

	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(nested)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertEqual(t, "Encoding.Strategy", "keyword", cfg.Encoding.Strategy)
	// Relative paths resolve against the config file, not the start directory.
	assertEqual(t, "Paths.Train", filepath.Join(root, "data", "train.csv"), cfg.Paths.Train)
	assertEqual(t, "Paths.Test", "/abs/test.csv", cfg.Paths.Test)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func assertEqual(t *testing.T, field, want, got string) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %q, want %q", field, got, want)
	}
}

func assertEqualInt(t *testing.T, field string, want, got int) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %d, want %d", field, got, want)
	}
}

func assertEqualFloat(t *testing.T, field string, want, got float64) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", field, got, want)
	}
}
