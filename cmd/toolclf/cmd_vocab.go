package main

import (
	"encoding/json"
	"fmt"

	"github.com/spboyer/toolclf/internal/dataset"
	"github.com/spboyer/toolclf/internal/models"
	"github.com/spboyer/toolclf/internal/vocabulary"
	"github.com/spf13/cobra"
)

func newVocabCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vocab <dataset.csv>",
		Short: "Print the keyword vocabulary of a free-text dataset",
		Long: `Print the keyword vocabulary built from the function column of a free-text
dataset: lower-cased words of at least 3 characters, stopwords removed, sorted.`,
		Args: cobra.ExactArgs(1),
		RunE: runVocab,
	}
	cmd.Flags().String("format", "text", "Output format: text | json")
	return cmd
}

func runVocab(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != "text" && format != "json" {
		return fmt.Errorf("unsupported format %q: must be text or json", format)
	}

	records, err := dataset.LoadRecords(args[0], models.FunctionText)
	if err != nil {
		return err
	}
	vocab := vocabulary.Build(dataset.FunctionTexts(records))

	w := cmd.OutOrStdout()
	if format == "json" {
		data, err := json.MarshalIndent(vocab.Words(), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	printer.Fprintf(w, "Vocabulary: %d words from %d records\n", vocab.Len(), len(records))
	for _, word := range vocab.Words() {
		fmt.Fprintf(w, "  %s\n", word)
	}
	return nil
}
