package main

import (
	"fmt"

	"github.com/spboyer/toolclf/internal/validation"
	"github.com/spf13/cobra"
)

func newValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file> [file ...]",
		Short: "Validate reports or config files against their schemas",
		Long: `Validate training reports (.json, .json.gz) or .toolclf.yaml config files
against the embedded JSON Schemas. The schema is picked by file extension.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runValidate,
	}
	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	invalid := 0
	for _, path := range args {
		errs, err := validation.ValidateFile(path)
		if err != nil {
			return err
		}
		if len(errs) == 0 {
			fmt.Fprintf(w, "✓ %s is valid\n", path)
			continue
		}
		invalid++
		fmt.Fprintf(w, "✗ %s has %d schema error(s):\n", path, len(errs))
		for _, e := range errs {
			fmt.Fprintf(w, "    %s\n", e)
		}
	}
	if invalid > 0 {
		return fmt.Errorf("%d of %d file(s) failed validation", invalid, len(args))
	}
	return nil
}
