package models

import (
	"fmt"
	"math"
)

// FunctionKind identifies how the function column of a dataset is written.
type FunctionKind string

const (
	// FunctionText is a free-text description ("Cortar madeira").
	FunctionText FunctionKind = "text"
	// FunctionCoded is an integer code from the closed 1-9 legend.
	FunctionCoded FunctionKind = "code"
)

// Label values for the "is a tool" ground truth.
const (
	LabelNotTool = 0
	LabelTool    = 1
)

// RawRecord is one inventory item as read from a dataset or typed by a user.
// Only one of FunctionText and FunctionCode is meaningful, depending on the
// FunctionKind of the source.
type RawRecord struct {
	Name         string       `mapstructure:"name" json:"name"`
	Weight       float64      `mapstructure:"weight" json:"weight"`
	Hardness     float64      `mapstructure:"hardness" json:"hardness"`
	Size         float64      `mapstructure:"size" json:"size"`
	HasHandle    bool         `mapstructure:"has_handle" json:"has_handle"`
	IsMetal      bool         `mapstructure:"is_metal" json:"is_metal"`
	Price        float64      `mapstructure:"price" json:"price"`
	FunctionText string       `mapstructure:"function_text" json:"function_text,omitempty"`
	FunctionCode FunctionCode `mapstructure:"function_code" json:"function_code,omitempty"`
	Label        int          `mapstructure:"label" json:"label"`
}

// Validate checks the invariants every labeled record must hold before it
// can reach an encoder. Function codes are not checked here: the one-hot
// encoder has an explicit policy for codes outside the legend.
func (r RawRecord) Validate() error {
	if err := r.ValidateAttributes(); err != nil {
		return err
	}
	if r.Label != LabelNotTool && r.Label != LabelTool {
		return fmt.Errorf("label must be 0 or 1, got %d", r.Label)
	}
	return nil
}

// ValidateAttributes checks the numeric attributes only. Used for
// unlabeled records such as interactive input.
func (r RawRecord) ValidateAttributes() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"weight", r.Weight},
		{"hardness", r.Hardness},
		{"size", r.Size},
		{"price", r.Price},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%s must be a finite number, got %v", f.name, f.v)
		}
	}
	return nil
}

// Bit converts a boolean attribute into the 0/1 feature value.
func Bit(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
