package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spboyer/toolclf/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "nome,peso,dureza,tamanho,tem_cabo,metal,preco,funcao,eh_ferramenta\n"

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadRecords_Coded(t *testing.T) {
	dir := t.TempDir()
	path := writeCSV(t, dir, "train.csv", header+
		"Martelo,500,8,20,1,1,39.90,1,1\n"+
		"\n"+
		"Borracha,10,1,2,0,0,1.50,9,0\n")

	records, err := LoadRecords(path, models.FunctionCoded)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, models.RawRecord{
		Name: "Martelo", Weight: 500, Hardness: 8, Size: 20,
		HasHandle: true, IsMetal: true, Price: 39.9,
		FunctionCode: models.FunctionImpact, Label: 1,
	}, records[0])
	assert.Equal(t, "Borracha", records[1].Name)
	assert.Equal(t, models.FunctionOther, records[1].FunctionCode)
	assert.False(t, records[1].HasHandle)
	assert.Equal(t, 0, records[1].Label)
}

func TestReadRecords_Text(t *testing.T) {
	in := header + `Serrote,350,7,45,1,1,25.00,"Cortar madeira, tubos",1` + "\n"

	records, err := ReadRecords(strings.NewReader(in), models.FunctionText)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Cortar madeira, tubos", records[0].FunctionText)
	assert.Equal(t, models.FunctionCode(0), records[0].FunctionCode)
	assert.Equal(t, []string{"Cortar madeira, tubos"}, FunctionTexts(records))
	assert.Equal(t, []int{1}, Labels(records))
}

func TestReadRecords_OutOfRangeCodeIsKept(t *testing.T) {
	records, err := ReadRecords(strings.NewReader(header+"Coisa,10,1,2,0,0,1,12,0\n"), models.FunctionCoded)
	require.NoError(t, err)
	assert.Equal(t, models.FunctionCode(12), records[0].FunctionCode)
}

func TestReadRecords_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		row     string
		kind    models.FunctionKind
		wantErr string
	}{
		{"non-numeric weight", "Martelo,heavy,8,20,1,1,39.9,1,1", models.FunctionCoded, "row 2, column weight"},
		{"blank hardness", "Martelo,500,,20,1,1,39.9,1,1", models.FunctionCoded, "column hardness: value is required"},
		{"bad flag", "Martelo,500,8,20,yes-ish,1,39.9,1,1", models.FunctionCoded, "column has_handle"},
		{"non-numeric code", "Martelo,500,8,20,1,1,39.9,impact,1", models.FunctionCoded, "column function"},
		{"label out of range", "Martelo,500,8,20,1,1,39.9,1,3", models.FunctionCoded, "label must be 0 or 1"},
		{"too few columns", "Martelo,500,8", models.FunctionCoded, "has 3 columns, expected 9"},
		{"NaN size", "Martelo,500,8,NaN,1,1,39.9,1,1", models.FunctionCoded, "size must be a finite number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadRecords(strings.NewReader(header+tt.row+"\n"), tt.kind)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedRow), "error should match ErrMalformedRow: %v", err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestReadRecords_RowNumberSkipsHeader(t *testing.T) {
	in := header + "A,1,1,1,0,0,1,1,0\nB,1,1,1,0,0,1,1,0\nC,x,1,1,0,0,1,1,0\n"
	_, err := ReadRecords(strings.NewReader(in), models.FunctionCoded)

	var rowErr *RowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, 4, rowErr.Row)
	assert.Equal(t, "weight", rowErr.Column)
}

func TestReadRecords_BlankOptionalColumns(t *testing.T) {
	records, err := ReadRecords(strings.NewReader(header+",500,8,20,1,1,,,1\n"), models.FunctionText)
	require.NoError(t, err)
	assert.Equal(t, "", records[0].Name)
	assert.Equal(t, 0.0, records[0].Price)
	assert.Equal(t, "", records[0].FunctionText)
}

func TestReadRecords_HeaderOnly(t *testing.T) {
	records, err := ReadRecords(strings.NewReader(header), models.FunctionCoded)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestReadRecords_EmptyFile(t *testing.T) {
	_, err := ReadRecords(strings.NewReader(""), models.FunctionCoded)
	assert.ErrorContains(t, err, "no header row")
}

func TestReadRecords_UnknownKind(t *testing.T) {
	_, err := ReadRecords(strings.NewReader(header), models.FunctionKind("emoji"))
	assert.ErrorContains(t, err, "unknown function kind")
}

func TestLoadRecords_MissingFile(t *testing.T) {
	_, err := LoadRecords("/nonexistent/path/data.csv", models.FunctionCoded)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "csv: open")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
