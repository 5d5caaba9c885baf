package models

import "fmt"

// FunctionCode is the closed enumeration of item functions used by coded
// datasets and the interactive prompt.
type FunctionCode int

const (
	FunctionImpact FunctionCode = iota + 1
	FunctionFastening
	FunctionCutting
	FunctionDrilling
	FunctionHandling
	FunctionEarthmoving
	FunctionWriting
	FunctionMeasuring
	FunctionOther
)

// FunctionCodeCount is the length of the one-hot function block.
const FunctionCodeCount = 9

type functionInfo struct {
	key         string
	description string
}

var functionLegend = map[FunctionCode]functionInfo{
	FunctionImpact:      {"impact", "Impact - hammering nails and objects"},
	FunctionFastening:   {"fastening", "Fastening - screwing and fixing parts"},
	FunctionCutting:     {"cutting", "Cutting - cutting wood and materials"},
	FunctionDrilling:    {"drilling", "Drilling - boring holes in materials"},
	FunctionHandling:    {"handling", "Handling - gripping and holding objects"},
	FunctionEarthmoving: {"earthmoving", "Earthmoving - digging and moving soil"},
	FunctionWriting:     {"writing", "Writing/marking - writing and marking"},
	FunctionMeasuring:   {"measuring", "Measuring/aligning - measuring and aligning objects"},
	FunctionOther:       {"other", "Other - miscellaneous uses"},
}

// Valid reports whether c is one of the nine legend codes.
func (c FunctionCode) Valid() bool {
	return c >= FunctionImpact && c <= FunctionOther
}

// Key returns the short machine name ("impact", "cutting", ...).
func (c FunctionCode) Key() string {
	if info, ok := functionLegend[c]; ok {
		return info.key
	}
	return "unknown"
}

// Description returns the human-readable legend entry.
func (c FunctionCode) Description() string {
	if info, ok := functionLegend[c]; ok {
		return info.description
	}
	return "Unknown"
}

func (c FunctionCode) String() string {
	return fmt.Sprintf("%d (%s)", int(c), c.Key())
}

// FunctionCodes returns all legend codes in ascending order.
func FunctionCodes() []FunctionCode {
	codes := make([]FunctionCode, 0, FunctionCodeCount)
	for c := FunctionImpact; c <= FunctionOther; c++ {
		codes = append(codes, c)
	}
	return codes
}

// Legend returns code -> description for reports and prompts.
func Legend() map[int]string {
	legend := make(map[int]string, FunctionCodeCount)
	for _, c := range FunctionCodes() {
		legend[int(c)] = c.Description()
	}
	return legend
}
