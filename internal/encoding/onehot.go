package encoding

import (
	"github.com/spboyer/toolclf/internal/models"
	"github.com/spboyer/toolclf/internal/normalize"
)

// OneHot encodes the function code as a 9-wide one-hot block.
type OneHot struct {
	params normalize.Params
}

func NewOneHot(params normalize.Params) *OneHot {
	return &OneHot{params: params}
}

func (o *OneHot) Encode(r models.RawRecord) []float64 {
	v := make([]float64, 0, o.Dim())
	v = append(v, o.params.Physical(r)...)
	return append(v, OneHotCode(r.FunctionCode)...)
}

func (o *OneHot) Dim() int { return PhysicalFeatures + models.FunctionCodeCount }

func (o *OneHot) FeatureNames() []string {
	names := physicalNames()
	for _, c := range models.FunctionCodes() {
		names = append(names, "fn_"+c.Key())
	}
	return names
}

func (o *OneHot) Strategy() Strategy { return StrategyOneHot }

func (o *OneHot) Params() normalize.Params { return o.params }

// OneHotCode returns the 9-length indicator of code, with index code-1 set.
// A code outside 1-9 yields all zeros: the item still gets a prediction from
// its physical attributes alone instead of being rejected.
func OneHotCode(code models.FunctionCode) []float64 {
	v := make([]float64, models.FunctionCodeCount)
	if code.Valid() {
		v[int(code)-1] = 1
	}
	return v
}
