package report

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/redactpdf/internal/diag"
)

func sampleBatch() BatchReport {
	return BatchReport{Pages: []PageReport{
		{
			PageIndex:       0,
			GlyphsRemoved:   5,
			RunsEmitted:     2,
			PathsRemoved:    1,
			ImagesRemoved:   1,
			RemovedXObjects: []string{"Im1"},
			Diagnostics: diag.Diagnostics{
				{Severity: diag.SeverityWarning, Kind: diag.KindInvariantViolated, ByteOffset: 10, Message: "dropped Do /Im1"},
				{Severity: diag.SeverityError, Kind: diag.KindInvariantViolated, ByteOffset: 20, Message: "bad operand"},
			},
		},
		{
			PageIndex:     1,
			GlyphsRemoved: 0,
			RunsEmitted:   0,
		},
	}}
}

func TestPageReport_ErrorAndWarningCounts(t *testing.T) {
	p := sampleBatch().Pages[0]
	assert.Equal(t, 1, p.ErrorCount())
	assert.Equal(t, 1, p.WarningCount())
}

func TestBatchReport_Totals(t *testing.T) {
	b := sampleBatch()
	assert.Equal(t, 5, b.TotalGlyphsRemoved())
	assert.Equal(t, 1, b.TotalImagesRemoved())
}

func TestCSVExporter_Export(t *testing.T) {
	exp := NewCSVExporter()
	out, err := exp.ExportToString(sampleBatch())
	require.NoError(t, err)

	r := csv.NewReader(strings.NewReader(out))
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, "0", rows[1][0])
	assert.Equal(t, "Im1", rows[1][5])
	assert.Equal(t, "1", rows[1][6]) // warnings
	assert.Equal(t, "1", rows[1][7]) // errors
	assert.Equal(t, "text/csv", exp.ContentType())
	assert.Equal(t, ".csv", exp.FileExtension())
}

func TestJSONExporter_Export(t *testing.T) {
	exp := NewJSONExporter()
	out, err := exp.ExportToString(sampleBatch())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.InDelta(t, 5, decoded["total_glyphs_removed"], 0)
	pages, ok := decoded["pages"].([]any)
	require.True(t, ok)
	require.Len(t, pages, 2)
	assert.Equal(t, "application/json", exp.ContentType())
	assert.Equal(t, ".json", exp.FileExtension())
}

func TestExcelExporter_Export(t *testing.T) {
	exp := NewExcelExporter()
	out, err := exp.ExportToBytes(sampleBatch())
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.Equal(t, ".xlsx", exp.FileExtension())
	assert.Contains(t, exp.ContentType(), "spreadsheetml")
}
