package main

import (
	"github.com/spf13/cobra"
)

func newClassifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Train, then classify items interactively",
		Long: `Train the perceptron on the training dataset and start an interactive
session. Enter an item's attributes to see whether it is a tool.

Type 'sair' or 'quit' as the item name, answer no to "Classify another item?",
or press Ctrl+C to stop. With the onehot strategy the function is entered as a
code from the legend; codes outside 1-9 are rejected.`,
		Args: cobra.NoArgs,
		RunE: runClassify,
	}
	addModelFlags(cmd)
	return cmd
}

func runClassify(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	c, _, err := trainAndDescribe(cmd.OutOrStdout(), s)
	if err != nil {
		return err
	}
	return runSession(cmd, c, s)
}
