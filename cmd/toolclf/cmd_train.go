package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spboyer/toolclf/internal/classifier"
	"github.com/spboyer/toolclf/internal/encoding"
	"github.com/spboyer/toolclf/internal/models"
	"github.com/spboyer/toolclf/internal/reporting"
	"github.com/spboyer/toolclf/internal/validation"
	"github.com/spboyer/toolclf/internal/wizard"
	"github.com/spf13/cobra"
)

// detailItems is how many evaluated items train prints.
const detailItems = 5

func newTrainCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the perceptron and write a report",
		Long: `Train the perceptron on the training dataset, evaluate it on the test dataset
and write a JSON report.

The report is validated against the embedded schema before it is written. A
report path ending in .gz is gzip-compressed. --junit writes one testcase per
test item with misclassified items as failures, for CI systems.

Examples:
  toolclf train
  toolclf train --strategy keyword --train data/dataset_ferramentas_texto.csv --test data/dataset_teste_texto.csv
  toolclf train --seed 42 --report out/report.json.gz --junit out/junit.xml --min-accuracy 80`,
		Args: cobra.NoArgs,
		RunE: runTrain,
	}
	addModelFlags(cmd)
	cmd.Flags().String("report", "", "Report JSON path (default from .toolclf.yaml, .gz compresses)")
	cmd.Flags().String("junit", "", "Write JUnit XML of the test evaluation to this path")
	cmd.Flags().String("html", "", "Write an HTML summary to this path")
	cmd.Flags().Bool("interactive", false, "Classify items interactively after training")
	cmd.Flags().Float64("min-accuracy", 0, "Fail (exit 1) when test accuracy is below this percentage")
	return cmd
}

func runTrain(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	f := cmd.Flags()
	if f.Changed("report") {
		s.cfg.Paths.Report, _ = f.GetString("report")
	}
	if f.Changed("junit") {
		s.cfg.Paths.JUnit, _ = f.GetString("junit")
	}
	htmlPath, _ := f.GetString("html")
	interactive, _ := f.GetBool("interactive")
	minAccuracy, _ := f.GetFloat64("min-accuracy")

	w := cmd.OutOrStdout()
	c, train, err := trainAndDescribe(w, s)
	if err != nil {
		return err
	}

	test, err := s.loadTest()
	if err != nil {
		return err
	}
	var ev *classifier.Evaluation
	if len(test) > 0 {
		if ev, err = c.Evaluate(test); err != nil {
			return fmt.Errorf("evaluating test set: %w", err)
		}
		printEvaluation(w, ev)
	} else {
		fmt.Fprintln(w, "\nNo test dataset; skipping evaluation.")
	}

	report := reporting.Build(reporting.Input{
		Classifier:   c,
		TrainSamples: len(train),
		Test:         ev,
		Seed:         s.seed,
		Now:          time.Now(),
	})
	if err := saveReport(w, report, s.cfg.Paths.Report); err != nil {
		return err
	}
	if s.cfg.Paths.JUnit != "" {
		if ev == nil {
			return errors.New("--junit needs a test dataset")
		}
		if err := reporting.WriteJUnitXML(ev, report, s.cfg.Paths.JUnit); err != nil {
			return fmt.Errorf("writing JUnit XML: %w", err)
		}
		fmt.Fprintf(w, "JUnit XML saved to: %s\n", s.cfg.Paths.JUnit)
	}
	if htmlPath != "" {
		if err := saveHTML(report, htmlPath); err != nil {
			return err
		}
		fmt.Fprintf(w, "HTML summary saved to: %s\n", htmlPath)
	}

	if interactive {
		if err := runSession(cmd, c, s); err != nil {
			return err
		}
	}

	if minAccuracy > 0 {
		if ev == nil {
			return errors.New("--min-accuracy needs a test dataset")
		}
		if ev.Accuracy < minAccuracy {
			return &AccuracyError{Accuracy: ev.Accuracy, Minimum: minAccuracy}
		}
	}
	return nil
}

// trainAndDescribe loads the training set, fits a classifier and prints the
// model: vocabulary preview, convergence and weights.
func trainAndDescribe(w io.Writer, s *settings) (*classifier.Classifier, []models.RawRecord, error) {
	train, err := s.loadTrain()
	if err != nil {
		return nil, nil, err
	}
	printer.Fprintf(w, "Loaded %d training records from %s\n", len(train), s.cfg.Paths.Train)

	c, err := s.fit(train)
	if err != nil {
		return nil, nil, err
	}

	cfg := c.Model().Config()
	fmt.Fprintf(w, "Strategy %s, normalization %s, learning rate %g, max epochs %d, seed %d\n",
		s.strategy, c.Normalization(), cfg.LearningRate, cfg.MaxEpochs, s.seed)
	fmt.Fprintf(w, "Features: %d (%d physical, %d function)\n",
		c.Encoder().Dim(), encoding.PhysicalFeatures, c.Encoder().Dim()-encoding.PhysicalFeatures)
	if s.strategy == encoding.StrategyKeyword {
		words := c.Vocabulary().Words()
		fmt.Fprintf(w, "Vocabulary (%d words): %s\n", len(words), preview(words, 10))
	}

	res := c.Result()
	if res.Converged {
		fmt.Fprintf(w, "Converged at epoch %d\n", res.Epochs)
	} else {
		fmt.Fprintf(w, "Stopped after %d epochs without converging\n", res.Epochs)
	}
	fmt.Fprintf(w, "Final training accuracy: %.1f%%\n\n", c.Model().History().FinalAccuracy())
	printWeights(w, c.Weights(), c.Model().Bias())
	return c, train, nil
}

func printEvaluation(w io.Writer, ev *classifier.Evaluation) {
	fmt.Fprintf(w, "\nTest accuracy: %.2f%% (%d/%d) - %s\n",
		ev.Accuracy, ev.Correct, ev.Total, reporting.InterpretAccuracy(ev.Accuracy))
	fmt.Fprintf(w, "Evaluation details (first %d items):\n", detailItems)
	for i, it := range ev.Items {
		if i == detailItems {
			break
		}
		icon := "✓"
		if !it.Correct {
			icon = "✗"
		}
		fmt.Fprintf(w, "  %s %s: predicted %s, actual %s\n",
			icon, it.Name, classifier.Verdict(it.Predicted), classifier.Verdict(it.Actual))
	}
}

// saveReport validates the report against its schema, then writes it.
func saveReport(w io.Writer, report *reporting.Report, path string) error {
	if path == "" {
		return nil
	}
	data, err := report.MarshalIndent()
	if err != nil {
		return err
	}
	if errs := validation.ValidateReport(data); len(errs) > 0 {
		return fmt.Errorf("report failed schema validation: %v", errs)
	}
	if err := reporting.WriteJSON(report, path); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nReport saved to: %s\n", path)
	return nil
}

func saveHTML(report *reporting.Report, path string) error {
	body, err := reporting.RenderHTML(reporting.FormatSummary(report))
	if err != nil {
		return err
	}
	page := "<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"><title>toolclf report</title></head>\n<body>\n" +
		body + "</body>\n</html>\n"
	if err := os.WriteFile(path, []byte(page), 0o644); err != nil {
		return fmt.Errorf("writing HTML summary: %w", err)
	}
	return nil
}

func runSession(cmd *cobra.Command, c *classifier.Classifier, s *settings) error {
	session := &wizard.Session{
		Prompter:  wizard.NewFormPrompter(cmd.InOrStdin(), cmd.OutOrStdout()),
		Predictor: c,
		Kind:      s.kind(),
		Out:       cmd.OutOrStdout(),
	}
	_, err := session.Run(cmd.Context())
	return err
}
