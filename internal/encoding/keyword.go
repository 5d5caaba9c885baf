package encoding

import (
	"github.com/spboyer/toolclf/internal/models"
	"github.com/spboyer/toolclf/internal/normalize"
	"github.com/spboyer/toolclf/internal/vocabulary"
)

// Keyword encodes the function text as a bag of vocabulary keywords.
type Keyword struct {
	params normalize.Params
	vocab  vocabulary.Vocabulary
}

func NewKeyword(params normalize.Params, vocab vocabulary.Vocabulary) *Keyword {
	return &Keyword{params: params, vocab: vocab}
}

func (k *Keyword) Encode(r models.RawRecord) []float64 {
	v := make([]float64, 0, k.Dim())
	v = append(v, k.params.Physical(r)...)
	return append(v, k.vocab.Indicators(r.FunctionText)...)
}

func (k *Keyword) Dim() int { return PhysicalFeatures + k.vocab.Len() }

func (k *Keyword) FeatureNames() []string {
	names := physicalNames()
	for _, w := range k.vocab.Words() {
		names = append(names, "word_"+w)
	}
	return names
}

func (k *Keyword) Strategy() Strategy { return StrategyKeyword }

func (k *Keyword) Params() normalize.Params { return k.params }

// Vocabulary returns the keyword list the encoder was built with.
func (k *Keyword) Vocabulary() vocabulary.Vocabulary { return k.vocab }
