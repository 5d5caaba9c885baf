package reporting

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/spboyer/toolclf/internal/classifier"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// InterpretAccuracy returns a plain-language label for an accuracy percentage.
func InterpretAccuracy(pct float64) string {
	switch {
	case pct >= 100:
		return "Perfect (100%)"
	case pct > 90:
		return "Excellent (>90%)"
	case pct >= 70:
		return "Good (70-90%)"
	case pct >= 50:
		return "Needs Work (50-70%)"
	default:
		return "Poor (<50%)"
	}
}

// InterpretConvergence explains what the convergence flag means for the data.
func InterpretConvergence(converged bool, epochs int) string {
	if converged {
		return fmt.Sprintf("Converged after %d epochs: the training set is linearly separable with these features.", epochs)
	}
	return fmt.Sprintf("Did not converge in %d epochs: the training set is probably not linearly separable with these features.", epochs)
}

// FormatSummary produces a markdown summary of a report.
func FormatSummary(r *Report) string {
	var b strings.Builder

	b.WriteString("# Training summary\n\n")
	fmt.Fprintf(&b, "- **Model:** %s, strategy `%s`, normalization `%s`\n",
		r.Model.Type, r.Model.Strategy, r.Model.Normalization)
	fmt.Fprintf(&b, "- **Learning rate:** %g, max epochs %d\n", r.Model.LearningRate, r.Model.MaxEpochs)
	fmt.Fprintf(&b, "- **Features:** %d (%d physical, %d function)\n",
		r.Data.TotalFeatures, r.Data.PhysicalFeatures, r.Data.FunctionFeatures)
	fmt.Fprintf(&b, "- **Training accuracy:** %.2f%% (%s)\n",
		r.Performance.TrainAccuracy, InterpretAccuracy(r.Performance.TrainAccuracy))
	if r.Performance.TestAccuracy != nil {
		fmt.Fprintf(&b, "- **Test accuracy:** %.2f%% (%s)",
			*r.Performance.TestAccuracy, InterpretAccuracy(*r.Performance.TestAccuracy))
		if ci := r.Performance.TestCI; ci != nil {
			fmt.Fprintf(&b, ", %.0f%% CI [%.2f%%, %.2f%%]", ci.ConfidenceLevel*100, ci.Lower, ci.Upper)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\n%s\n", InterpretConvergence(r.Model.Converged, r.Model.EpochsRun))

	if len(r.Weights) > 0 {
		b.WriteString("\n## Weights\n\n| Feature | Weight |\n|---|---:|\n")
		for _, w := range r.Weights {
			fmt.Fprintf(&b, "| %s | %+.4f |\n", w.Feature, w.Weight)
		}
		fmt.Fprintf(&b, "| bias | %+.4f |\n", r.Performance.Bias)
	}

	if len(r.Misclassified) > 0 {
		b.WriteString("\n## Misclassified\n\n")
		for _, it := range r.Misclassified {
			fmt.Fprintf(&b, "- %s: predicted %s, expected %s\n",
				it.Name, classifier.Verdict(it.Predicted), classifier.Verdict(it.Actual))
		}
	}

	return b.String()
}

// RenderHTML converts markdown to an HTML fragment, with GFM tables.
func RenderHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.New(goldmark.WithExtensions(extension.GFM)).Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.String(), nil
}
