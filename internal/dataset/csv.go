// Package dataset reads inventory CSV files into validated RawRecords.
//
// Files have a header row (skipped; its names may be localized) followed by
// nine positional columns:
//
//	name, weight, hardness, size, has_handle, is_metal, price, function, label
//
// The function column is free text or an integer code depending on the
// dataset's FunctionKind.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spboyer/toolclf/internal/models"
)

// Columns are the canonical names of the positional columns.
var Columns = []string{"name", "weight", "hardness", "size", "has_handle", "is_metal", "price", "function", "label"}

// ErrMalformedRow is matched by every row-level parse or validation error.
var ErrMalformedRow = errors.New("malformed row")

// RowError describes a rejected row. Row is 1-based and counts the header,
// so it matches the line shown by a spreadsheet.
type RowError struct {
	Row    int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("row %d, column %s: %v", e.Row, e.Column, e.Err)
	}
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

func (e *RowError) Is(target error) bool { return target == ErrMalformedRow }

// LoadRecords reads and validates every data row of the CSV file at path.
func LoadRecords(path string, kind models.FunctionKind) ([]models.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	records, err := ReadRecords(f, kind)
	if err != nil {
		return nil, fmt.Errorf("csv: %s: %w", path, err)
	}
	return records, nil
}

// ReadRecords parses CSV from r. Blank lines are skipped; any other row that
// cannot be decoded fails the whole read, so nothing malformed reaches
// training.
func ReadRecords(r io.Reader, kind models.FunctionKind) ([]models.RawRecord, error) {
	if _, err := functionField(kind); err != nil {
		return nil, err
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if len(rows) == 0 {
		return nil, errors.New("empty file (no header row)")
	}

	records := make([]models.RawRecord, 0, len(rows)-1)
	for i, fields := range rows[1:] {
		rec, err := DecodeRow(fields, kind)
		if err != nil {
			var rowErr *RowError
			if errors.As(err, &rowErr) {
				rowErr.Row = i + 2
				return nil, rowErr
			}
			return nil, &RowError{Row: i + 2, Err: err}
		}
		records = append(records, rec)
	}
	return records, nil
}

// DecodeRow converts one positional row into a validated RawRecord.
func DecodeRow(fields []string, kind models.FunctionKind) (models.RawRecord, error) {
	functionKey, err := functionField(kind)
	if err != nil {
		return models.RawRecord{}, err
	}
	if len(fields) != len(Columns) {
		return models.RawRecord{}, &RowError{Err: fmt.Errorf("has %d columns, expected %d", len(fields), len(Columns))}
	}

	var rec models.RawRecord
	for j, col := range Columns {
		key := col
		if col == "function" {
			key = functionKey
		}
		if err := decodeField(key, strings.TrimSpace(fields[j]), &rec); err != nil {
			return models.RawRecord{}, &RowError{Column: col, Err: err}
		}
	}

	if err := rec.Validate(); err != nil {
		return models.RawRecord{}, &RowError{Err: err}
	}
	return rec, nil
}

func functionField(kind models.FunctionKind) (string, error) {
	switch kind {
	case models.FunctionText:
		return "function_text", nil
	case models.FunctionCoded:
		return "function_code", nil
	}
	return "", fmt.Errorf("unknown function kind %q", kind)
}

// optional columns may be blank; weak decoding would otherwise turn a blank
// number into 0 without complaint.
var optional = map[string]bool{"name": true, "price": true, "function_text": true}

// decodeField decodes a single column so an error names the offending
// column rather than the whole row.
func decodeField(key, value string, rec *models.RawRecord) error {
	if value == "" && !optional[key] {
		return errors.New("value is required")
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           rec,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(map[string]any{key: value}); err != nil {
		return fmt.Errorf("invalid value %q", value)
	}
	return nil
}

// FunctionTexts returns the function text column in record order, the input
// of the vocabulary builder.
func FunctionTexts(records []models.RawRecord) []string {
	texts := make([]string, len(records))
	for i, r := range records {
		texts[i] = r.FunctionText
	}
	return texts
}

// Labels returns the label column in record order.
func Labels(records []models.RawRecord) []int {
	labels := make([]int, len(records))
	for i, r := range records {
		labels[i] = r.Label
	}
	return labels
}
