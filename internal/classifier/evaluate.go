package classifier

import (
	"fmt"

	"github.com/spboyer/toolclf/internal/models"
	"github.com/spboyer/toolclf/internal/perceptron"
)

// ItemResult is the outcome of one evaluated record.
type ItemResult struct {
	Name      string              `json:"item"`
	Predicted int                 `json:"predicted"`
	Actual    int                 `json:"actual"`
	Correct   bool                `json:"correct"`
	Function  string              `json:"function"`
	Code      models.FunctionCode `json:"function_code,omitempty"`
}

// Evaluation is the per-item and aggregate result of scoring a labeled set.
type Evaluation struct {
	Items    []ItemResult `json:"items"`
	Correct  int          `json:"correct"`
	Total    int          `json:"total"`
	Accuracy float64      `json:"accuracy"`
}

// Evaluate predicts every record and compares with its label. An empty set
// is an error rather than a 0% or NaN accuracy.
func (c *Classifier) Evaluate(records []models.RawRecord) (*Evaluation, error) {
	if len(records) == 0 {
		return nil, perceptron.ErrEmptyDataset
	}
	ev := &Evaluation{Items: make([]ItemResult, 0, len(records)), Total: len(records)}
	for i, r := range records {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("record %d (%s): %w", i, r.Name, err)
		}
		p, err := c.Predict(r)
		if err != nil {
			return nil, fmt.Errorf("record %d (%s): %w", i, r.Name, err)
		}
		item := ItemResult{
			Name:      r.Name,
			Predicted: p,
			Actual:    r.Label,
			Correct:   p == r.Label,
			Function:  c.describeFunction(r),
		}
		if c.encoder.Strategy().FunctionKind() == models.FunctionCoded {
			item.Code = r.FunctionCode
		}
		if item.Correct {
			ev.Correct++
		}
		ev.Items = append(ev.Items, item)
	}
	ev.Accuracy = 100 * float64(ev.Correct) / float64(ev.Total)
	return ev, nil
}

// Scores returns 1 for each correct item and 0 otherwise, the input to a
// bootstrap interval over accuracy.
func (e *Evaluation) Scores() []float64 {
	scores := make([]float64, len(e.Items))
	for i, it := range e.Items {
		if it.Correct {
			scores[i] = 1
		}
	}
	return scores
}

// Misclassified returns the items the model got wrong.
func (e *Evaluation) Misclassified() []ItemResult {
	var out []ItemResult
	for _, it := range e.Items {
		if !it.Correct {
			out = append(out, it)
		}
	}
	return out
}

func (c *Classifier) describeFunction(r models.RawRecord) string {
	if c.encoder.Strategy().FunctionKind() == models.FunctionText {
		return r.FunctionText
	}
	return r.FunctionCode.Description()
}

// Verdict is the human-readable form of a predicted label.
func Verdict(label int) string {
	if label == models.LabelTool {
		return "TOOL"
	}
	return "NOT A TOOL"
}
