// Package normalize rescales the continuous physical attributes of an item
// into [0,1].
package normalize

import (
	"fmt"
	"math"

	"github.com/spboyer/toolclf/internal/models"
)

// Mode selects where normalization bounds come from.
type Mode string

const (
	// ModeDataset scans the training records for min/max.
	ModeDataset Mode = "dataset"
	// ModeCalibrated uses fixed calibration constants.
	ModeCalibrated Mode = "calibrated"
)

// ParseMode validates a mode name from config or flags.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeDataset, ModeCalibrated:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown normalization %q: must be dataset or calibrated", s)
}

// Bounds is the (min, max) range of one attribute.
type Bounds struct {
	Min float64 `yaml:"min" json:"min" mapstructure:"min"`
	Max float64 `yaml:"max" json:"max" mapstructure:"max"`
}

// Normalize maps v into [0,1]. Values outside the range saturate, and a
// degenerate range (Max == Min) maps everything to 0.
func (b Bounds) Normalize(v float64) float64 {
	span := b.Max - b.Min
	if span == 0 {
		return 0
	}
	n := (v - b.Min) / span
	return math.Max(0, math.Min(1, n))
}

// Params holds the bounds of the three continuous attributes. Once a model
// is trained with a Params value, the same value encodes every later record.
type Params struct {
	Weight   Bounds `yaml:"weight" json:"weight" mapstructure:"weight"`
	Hardness Bounds `yaml:"hardness" json:"hardness" mapstructure:"hardness"`
	Size     Bounds `yaml:"size" json:"size" mapstructure:"size"`
}

// Calibration constants for hand-entered items: grams, 1-10 scale, cm.
var calibrated = Params{
	Weight:   Bounds{Min: 7, Max: 800},
	Hardness: Bounds{Min: 1, Max: 10},
	Size:     Bounds{Min: 3, Max: 45},
}

// Calibrated returns the fixed calibration bounds.
func Calibrated() Params { return calibrated }

// FromRecords computes per-attribute min/max over records. An empty slice
// yields zero bounds, which normalize every value to 0.
func FromRecords(records []models.RawRecord) Params {
	if len(records) == 0 {
		return Params{}
	}
	first := records[0]
	p := Params{
		Weight:   Bounds{Min: first.Weight, Max: first.Weight},
		Hardness: Bounds{Min: first.Hardness, Max: first.Hardness},
		Size:     Bounds{Min: first.Size, Max: first.Size},
	}
	for _, r := range records[1:] {
		p.Weight = p.Weight.extend(r.Weight)
		p.Hardness = p.Hardness.extend(r.Hardness)
		p.Size = p.Size.extend(r.Size)
	}
	return p
}

func (b Bounds) extend(v float64) Bounds {
	return Bounds{Min: math.Min(b.Min, v), Max: math.Max(b.Max, v)}
}

// Physical returns the five physical features of r in encoder order:
// weight, hardness, size (normalized), has_handle, is_metal (0/1).
func (p Params) Physical(r models.RawRecord) []float64 {
	return []float64{
		p.Weight.Normalize(r.Weight),
		p.Hardness.Normalize(r.Hardness),
		p.Size.Normalize(r.Size),
		models.Bit(r.HasHandle),
		models.Bit(r.IsMetal),
	}
}

// PhysicalFeatureNames matches the layout of Physical.
var PhysicalFeatureNames = []string{"weight", "hardness", "size", "has_handle", "is_metal"}

// Resolve picks the params for mode: scanned from records or calibrated.
// A zero-valued calibration falls back to the built-in constants.
func Resolve(mode Mode, records []models.RawRecord, calibration Params) (Params, error) {
	switch mode {
	case ModeDataset:
		return FromRecords(records), nil
	case ModeCalibrated:
		if calibration == (Params{}) {
			return Calibrated(), nil
		}
		return calibration, nil
	}
	return Params{}, fmt.Errorf("unknown normalization %q", mode)
}
