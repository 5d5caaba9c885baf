package main

import (
	"encoding/json"
	"fmt"

	"github.com/spboyer/toolclf/internal/spinner"
	"github.com/spboyer/toolclf/internal/sweep"
	"github.com/spf13/cobra"
)

func newSweepCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Compare learning rates across several seeds",
		Long: `Train one independently seeded perceptron per (learning rate, seed) pair,
concurrently, and summarize test accuracy and convergence per learning rate.

Seeds are consecutive, starting at --seed (1 when unset).`,
		Args: cobra.NoArgs,
		RunE: runSweep,
	}
	addModelFlags(cmd)
	cmd.Flags().Float64Slice("learning-rates", nil, "Learning rates to compare (default from .toolclf.yaml)")
	cmd.Flags().Int("seeds", 0, "Seeds per learning rate")
	cmd.Flags().Int("workers", 0, "Concurrent training runs")
	cmd.Flags().String("format", "table", "Output format: table | json")
	return cmd
}

func runSweep(cmd *cobra.Command, _ []string) error {
	f := cmd.Flags()
	format, _ := f.GetString("format")
	if format != "table" && format != "json" {
		return fmt.Errorf("unsupported format %q: must be table or json", format)
	}

	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if f.Changed("learning-rates") {
		s.cfg.Sweep.LearningRates, _ = f.GetFloat64Slice("learning-rates")
	}
	if f.Changed("seeds") {
		s.cfg.Sweep.Seeds, _ = f.GetInt("seeds")
	}
	if f.Changed("workers") {
		s.cfg.Sweep.Workers, _ = f.GetInt("workers")
	}
	if s.cfg.Sweep.Seeds < 1 {
		return fmt.Errorf("--seeds must be at least 1, got %d", s.cfg.Sweep.Seeds)
	}
	base := int64(1)
	if f.Changed("seed") || s.cfg.SeedValue() >= 0 {
		base = s.seed
	}

	train, err := s.loadTrain()
	if err != nil {
		return err
	}
	test, err := s.loadTest()
	if err != nil {
		return err
	}

	grid := sweep.Grid{
		LearningRates: s.cfg.Sweep.LearningRates,
		Seeds:         sweep.SeedRange(base, s.cfg.Sweep.Seeds),
		MaxEpochs:     s.opts.Perceptron.MaxEpochs,
		Workers:       s.cfg.Sweep.Workers,
	}
	stop := func() {}
	if errOut := cmd.ErrOrStderr(); spinner.Enabled(errOut) {
		sp := spinner.Start(errOut, "training", len(grid.LearningRates)*len(grid.Seeds))
		grid.Progress = sp.Inc
		stop = sp.Stop
	}

	res, err := sweep.Run(cmd.Context(), train, test, s.opts, grid)
	stop()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if format == "json" {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	metric := "train acc"
	if res.HasTest {
		metric = "test acc"
	}
	printer.Fprintf(w, "Sweep: %d runs (%d learning rates x %d seeds, base seed %d), strategy %s\n\n",
		len(res.Trials), len(res.Summaries), s.cfg.Sweep.Seeds, base, s.strategy)
	fmt.Fprintf(w, "%s  %s  %s  %s  %s  %s\n",
		padRight("lr", 8), padRight("converged", 10), padRight("epochs", 8),
		padRight("mean "+metric, 15), padRight("median", 8), "stddev")
	for _, sum := range res.Summaries {
		fmt.Fprintf(w, "%s  %s  %s  %s  %s  %.2f\n",
			padRight(fmt.Sprintf("%g", sum.LearningRate), 8),
			padRight(fmt.Sprintf("%d/%d", sum.Converged, sum.Trials), 10),
			padRight(fmt.Sprintf("%.1f", sum.MeanEpochs), 8),
			padRight(fmt.Sprintf("%.2f%%", sum.MeanAccuracy), 15),
			padRight(fmt.Sprintf("%.2f%%", sum.MedianAccuracy), 8),
			sum.StdDevAccuracy)
	}
	if best, ok := res.Best(); ok {
		fmt.Fprintf(w, "\nBest learning rate: %g (mean %s %.2f%%)\n", best.LearningRate, metric, best.MeanAccuracy)
	}
	return nil
}
