// Package encoding turns raw inventory records into fixed-length feature
// vectors. Both strategies share the physical block produced by the
// normalize package and differ only in how the function attribute is encoded.
package encoding

import (
	"fmt"

	"github.com/spboyer/toolclf/internal/models"
	"github.com/spboyer/toolclf/internal/normalize"
	"github.com/spboyer/toolclf/internal/vocabulary"
)

// PhysicalFeatures is the width of the physical block.
const PhysicalFeatures = 5

// Strategy names an encoding strategy.
type Strategy string

const (
	StrategyKeyword Strategy = "keyword"
	StrategyOneHot  Strategy = "onehot"
)

// ParseStrategy validates a strategy name from config or flags.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyKeyword, StrategyOneHot:
		return Strategy(s), nil
	}
	return "", fmt.Errorf("unknown strategy %q: must be keyword or onehot", s)
}

// FunctionKind is the dataset schema the strategy reads.
func (s Strategy) FunctionKind() models.FunctionKind {
	if s == StrategyKeyword {
		return models.FunctionText
	}
	return models.FunctionCoded
}

// DefaultNormalization is the normalization a strategy uses when none is
// configured: keyword datasets scan their own bounds, coded datasets use
// the calibration constants.
func (s Strategy) DefaultNormalization() normalize.Mode {
	if s == StrategyKeyword {
		return normalize.ModeDataset
	}
	return normalize.ModeCalibrated
}

// Encoder maps a record to a feature vector. Implementations are pure: the
// same record always yields the same vector, and encoding never changes the
// encoder's vocabulary or bounds.
type Encoder interface {
	Encode(r models.RawRecord) []float64
	// Dim is the length of every vector Encode returns.
	Dim() int
	// FeatureNames labels each dimension, in order.
	FeatureNames() []string
	Strategy() Strategy
	Params() normalize.Params
}

// New builds the encoder for strategy. vocab is only read by the keyword
// strategy.
func New(strategy Strategy, params normalize.Params, vocab vocabulary.Vocabulary) (Encoder, error) {
	switch strategy {
	case StrategyKeyword:
		return NewKeyword(params, vocab), nil
	case StrategyOneHot:
		return NewOneHot(params), nil
	}
	return nil, fmt.Errorf("unknown strategy %q", strategy)
}

// EncodeAll encodes records in order.
func EncodeAll(e Encoder, records []models.RawRecord) [][]float64 {
	out := make([][]float64, len(records))
	for i, r := range records {
		out[i] = e.Encode(r)
	}
	return out
}

func physicalNames() []string {
	return append([]string(nil), normalize.PhysicalFeatureNames...)
}
