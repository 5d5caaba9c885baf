// Package wizard runs the interactive classification loop: prompt for an
// item, classify it with a fitted model, print the verdict, repeat.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spboyer/toolclf/internal/classifier"
	"github.com/spboyer/toolclf/internal/models"
)

// Predictor classifies one raw record. *classifier.Classifier satisfies it.
type Predictor interface {
	Predict(r models.RawRecord) (int, error)
}

// Session is one interactive classification loop.
type Session struct {
	Prompter  Prompter
	Predictor Predictor
	Kind      models.FunctionKind
	Out       io.Writer
}

// Run loops until the user quits and returns how many items were classified.
// Quitting (ErrQuit) is a normal end, not an error.
func (s *Session) Run(ctx context.Context) (int, error) {
	fmt.Fprintln(s.Out, "\nInteractive classification")
	if s.Kind == models.FunctionCoded {
		fmt.Fprintf(s.Out, "Function codes:\n%s\n", LegendText())
	}

	classified := 0
	for {
		if err := ctx.Err(); err != nil {
			return classified, err
		}

		rec, err := s.Prompter.Item(ctx, s.Kind)
		if errors.Is(err, ErrQuit) {
			break
		}
		if err != nil {
			return classified, err
		}

		label, err := s.Predictor.Predict(rec)
		if err != nil {
			// A bad entry should not end the session.
			fmt.Fprintf(s.Out, "Could not classify %q: %v\n", rec.Name, err)
		} else {
			classified++
			s.printVerdict(rec, label)
		}

		again, err := s.Prompter.Continue(ctx)
		if errors.Is(err, ErrQuit) || (err == nil && !again) {
			break
		}
		if err != nil {
			return classified, err
		}
	}

	slog.Debug("interactive session ended", "classified", classified)
	fmt.Fprintln(s.Out, "Bye!")
	return classified, nil
}

func (s *Session) printVerdict(rec models.RawRecord, label int) {
	fmt.Fprintf(s.Out, "\n%s: %s\n", rec.Name, classifier.Verdict(label))
	if s.Kind == models.FunctionCoded {
		fmt.Fprintf(s.Out, "  function: %s\n", rec.FunctionCode.Description())
	} else if rec.FunctionText != "" {
		fmt.Fprintf(s.Out, "  function: %s\n", rec.FunctionText)
	}
}
