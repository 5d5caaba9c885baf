package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toolclf",
		Short: "toolclf - classify hardware-store items as tools with a perceptron",
		Long: `toolclf trains a perceptron to tell tools from other hardware-store items.

Items are described by weight, hardness, size, handle and material plus either
a free-text function (keyword strategy) or a function code 1-9 (onehot
strategy). Settings come from .toolclf.yaml and can be overridden by flags.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newTrainCommand())
	cmd.AddCommand(newClassifyCommand())
	cmd.AddCommand(newVocabCommand())
	cmd.AddCommand(newSweepCommand())
	cmd.AddCommand(newValidateCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
