package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spboyer/toolclf/internal/classifier"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer formats counts with thousands separators.
var printer = message.NewPrinter(language.English)

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

// printWeights writes one aligned row per feature, then the bias.
func printWeights(w io.Writer, weights []classifier.FeatureWeight, bias float64) {
	width := len("bias")
	for _, fw := range weights {
		if sw := runewidth.StringWidth(fw.Feature); sw > width {
			width = sw
		}
	}
	fmt.Fprintln(w, "Weights:")
	for _, fw := range weights {
		fmt.Fprintf(w, "  %s  %+.4f\n", padRight(fw.Feature, width), fw.Weight)
	}
	fmt.Fprintf(w, "  %s  %+.4f\n", padRight("bias", width), bias)
}

// preview joins at most n words, noting how many were left out.
func preview(words []string, n int) string {
	if len(words) <= n {
		return strings.Join(words, ", ")
	}
	return fmt.Sprintf("%s, ... (+%d more)", strings.Join(words[:n], ", "), len(words)-n)
}
