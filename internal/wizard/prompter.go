package wizard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spboyer/toolclf/internal/models"
	"golang.org/x/term"
)

//go:generate go tool mockgen -source=prompter.go -destination=prompter_mocks_test.go -package=wizard

// ErrQuit is returned by a Prompter when the user asks to stop.
var ErrQuit = errors.New("wizard: quit")

// Prompter collects items from the user.
type Prompter interface {
	// Item asks for one item's attributes. The function is asked as free
	// text or as a legend code depending on kind. Returns ErrQuit when the
	// user wants to stop.
	Item(ctx context.Context, kind models.FunctionKind) (models.RawRecord, error)

	// Continue asks whether to classify another item.
	Continue(ctx context.Context) (bool, error)
}

// FormPrompter is a Prompter backed by huh forms.
type FormPrompter struct {
	in  io.Reader
	out io.Writer
}

// NewFormPrompter returns a FormPrompter reading from in and writing to out.
func NewFormPrompter(in io.Reader, out io.Writer) *FormPrompter {
	return &FormPrompter{in: in, out: out}
}

// IsQuitWord reports whether a name entry means "stop".
func IsQuitWord(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sair", "quit":
		return true
	}
	return false
}

func (p *FormPrompter) Item(ctx context.Context, kind models.FunctionKind) (models.RawRecord, error) {
	var name string
	nameForm := p.form(huh.NewGroup(
		huh.NewInput().
			Title("Item name").
			Description("Type 'sair' or 'quit' to stop").
			Value(&name).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("name is required")
				}
				return nil
			}),
	))
	if err := p.run(ctx, nameForm); err != nil {
		return models.RawRecord{}, err
	}
	if IsQuitWord(name) {
		return models.RawRecord{}, ErrQuit
	}

	var (
		weight, hardness, size string
		hasHandle, isMetal     bool
		function               string
	)
	fields := []huh.Field{
		huh.NewInput().Title("Weight (g)").Value(&weight).Validate(validateNumber),
		huh.NewInput().Title("Hardness (1-10)").Value(&hardness).Validate(validateNumber),
		huh.NewInput().Title("Size (cm)").Value(&size).Validate(validateNumber),
		huh.NewConfirm().Title("Has a handle?").Value(&hasHandle),
		huh.NewConfirm().Title("Is it metal?").Value(&isMetal),
	}
	switch kind {
	case models.FunctionCoded:
		fields = append(fields, huh.NewInput().
			Title("Function code (1-9)").
			Description(LegendText()).
			Value(&function).
			Validate(func(s string) error {
				_, err := ParseFunctionCode(s)
				return err
			}))
	default:
		fields = append(fields, huh.NewInput().
			Title("Function").
			Description("What is it used for? e.g. 'cortar madeira'").
			Value(&function))
	}

	if err := p.run(ctx, p.form(huh.NewGroup(fields...))); err != nil {
		return models.RawRecord{}, err
	}

	rec := models.RawRecord{
		Name:      strings.TrimSpace(name),
		HasHandle: hasHandle,
		IsMetal:   isMetal,
	}
	// The validators already accepted these values.
	rec.Weight, _ = ParseNumber(weight)
	rec.Hardness, _ = ParseNumber(hardness)
	rec.Size, _ = ParseNumber(size)
	if kind == models.FunctionCoded {
		rec.FunctionCode, _ = ParseFunctionCode(function)
	} else {
		rec.FunctionText = strings.TrimSpace(function)
	}
	return rec, nil
}

func (p *FormPrompter) Continue(ctx context.Context) (bool, error) {
	again := true
	f := p.form(huh.NewGroup(
		huh.NewConfirm().Title("Classify another item?").Value(&again),
	))
	if err := p.run(ctx, f); err != nil {
		return false, err
	}
	return again, nil
}

func (p *FormPrompter) form(groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).
		WithInput(p.in).
		WithOutput(p.out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := p.in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}
	return form
}

func (p *FormPrompter) run(ctx context.Context, form *huh.Form) error {
	err := form.RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrQuit
	}
	if err != nil {
		return fmt.Errorf("prompt failed: %w", err)
	}
	return nil
}

func validateNumber(s string) error {
	_, err := ParseNumber(s)
	return err
}

// ParseNumber parses a finite decimal, accepting a comma as the decimal separator.
func ParseNumber(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("enter a number")
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("enter a finite number")
	}
	return v, nil
}

// ParseFunctionCode parses a legend code and rejects anything outside 1..9.
func ParseFunctionCode(s string) (models.FunctionCode, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("enter a code between 1 and %d", models.FunctionCodeCount)
	}
	code := models.FunctionCode(n)
	if !code.Valid() {
		return 0, fmt.Errorf("enter a code between 1 and %d", models.FunctionCodeCount)
	}
	return code, nil
}

// LegendText lists the function codes one per line.
func LegendText() string {
	var b strings.Builder
	for _, c := range models.FunctionCodes() {
		fmt.Fprintf(&b, "%d = %s\n", int(c), c.Description())
	}
	return strings.TrimRight(b.String(), "\n")
}
