package statistics

import (
	"math"
	"testing"
)

func TestBootstrapCI_EmptyScores(t *testing.T) {
	ci := BootstrapCIWithSeed(nil, 0.95, 1)
	if ci.Mean != 0.0 || ci.Lower != 0.0 || ci.Upper != 0.0 {
		t.Errorf("expected zero CI for empty input, got %+v", ci)
	}
	if ci.NumBootstraps != 0 {
		t.Errorf("expected 0 bootstraps for empty input, got %d", ci.NumBootstraps)
	}
}

func TestBootstrapCI_SingleValue(t *testing.T) {
	ci := BootstrapCIWithSeed([]float64{1}, 0.95, 1)
	if ci.Mean != 1 || ci.Lower != 1 || ci.Upper != 1 {
		t.Errorf("expected degenerate CI for single value, got %+v", ci)
	}
}

func TestBootstrapCI_AllCorrect(t *testing.T) {
	ci := BootstrapCIWithSeed([]float64{1, 1, 1, 1, 1}, 0.95, 42)
	if math.Abs(ci.Lower-1) > 1e-9 || math.Abs(ci.Upper-1) > 1e-9 {
		t.Errorf("expected CI [1, 1] when every item is correct, got [%f, %f]", ci.Lower, ci.Upper)
	}
}

func TestBootstrapCI_MixedCorrectness(t *testing.T) {
	// 8 of 10 items correct.
	scores := []float64{1, 1, 1, 0, 1, 1, 0, 1, 1, 1}
	ci := BootstrapCIWithSeed(scores, 0.95, 42)

	if math.Abs(ci.Mean-0.8) > 1e-12 {
		t.Errorf("expected mean 0.8, got %f", ci.Mean)
	}
	if ci.Lower >= ci.Mean || ci.Upper < ci.Mean {
		t.Errorf("CI [%f, %f] should straddle mean %f", ci.Lower, ci.Upper, ci.Mean)
	}
	if ci.Lower < 0 || ci.Upper > 1 {
		t.Errorf("CI should stay within [0, 1], got [%f, %f]", ci.Lower, ci.Upper)
	}
	if ci.NumBootstraps != DefaultBootstrapIterations {
		t.Errorf("expected %d bootstraps, got %d", DefaultBootstrapIterations, ci.NumBootstraps)
	}
}

func TestBootstrapCI_Reproducible(t *testing.T) {
	scores := []float64{1, 0, 1, 1, 0, 1}
	a := BootstrapCIWithSeed(scores, 0.95, 7)
	b := BootstrapCIWithSeed(scores, 0.95, 7)
	if a != b {
		t.Errorf("same seed should give same interval: %+v vs %+v", a, b)
	}
}

func TestBootstrapCI_NarrowerAtHigherN(t *testing.T) {
	small := []float64{1, 0, 1}
	large := make([]float64, 0, 60)
	for i := 0; i < 20; i++ {
		large = append(large, 1, 0, 1)
	}

	ciSmall := BootstrapCIWithSeed(small, 0.95, 42)
	ciLarge := BootstrapCIWithSeed(large, 0.95, 42)

	if ciLarge.Upper-ciLarge.Lower >= ciSmall.Upper-ciSmall.Lower {
		t.Errorf("larger sample should yield narrower CI: small=%+v, large=%+v", ciSmall, ciLarge)
	}
}

func TestConfidenceInterval_Percent(t *testing.T) {
	ci := ConfidenceInterval{Lower: 0.5, Upper: 0.9, Mean: 0.75, ConfidenceLevel: 0.95}.Percent()
	if ci.Lower != 50 || ci.Upper != 90 || ci.Mean != 75 || ci.ConfidenceLevel != 0.95 {
		t.Errorf("unexpected percent interval %+v", ci)
	}
}
