package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess       = 0 // Trained (and, if asked, met the accuracy bar)
	ExitBelowAccuracy = 1 // Test accuracy below --min-accuracy
	ExitError         = 2 // Configuration or runtime error
)

// AccuracyError indicates that training and evaluation ran, but the test
// accuracy fell below the requested minimum.
type AccuracyError struct {
	Accuracy float64
	Minimum  float64
}

func (e *AccuracyError) Error() string {
	return fmt.Sprintf("test accuracy %.2f%% is below the required %.2f%%", e.Accuracy, e.Minimum)
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		// Check error type to determine exit code
		var accErr *AccuracyError
		if errors.As(err, &accErr) {
			os.Exit(ExitBelowAccuracy)
		}

		// All other errors are configuration/runtime errors
		os.Exit(ExitError)
	}
}
