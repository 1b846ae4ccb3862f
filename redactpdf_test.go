package redactpdf_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/redactpdf"
	"github.com/coregx/redactpdf/internal/fonts"
)

func TestRedactPage_EndToEnd(t *testing.T) {
	content := []byte("BT /F1 12 Tf 100 700 Td (SECRET text) Tj ET\n" +
		"10 10 50 20 re f\n")

	page := redactpdf.Page{
		Content:  content,
		Res:      fonts.NewStandardResolver(),
		MediaBox: redactpdf.NewRectangle(0, 0, 612, 792),
		Rotation: 0,
	}

	rects := []redactpdf.Rectangle{redactpdf.NewRectangle(0, 680, 400, 720)}
	cfg := redactpdf.DefaultConfig()

	out, removed, _, err := redactpdf.RedactPage(context.Background(), page, rects, cfg)
	require.NoError(t, err)
	assert.Empty(t, removed)
	assert.NotContains(t, string(out), "SECRET")
	assert.Contains(t, string(out), "re")
}

func TestRedactPage_EmptyContent(t *testing.T) {
	page := redactpdf.Page{}
	_, _, _, err := redactpdf.RedactPage(context.Background(), page, nil, redactpdf.DefaultConfig())
	require.ErrorIs(t, err, redactpdf.ErrNoContent)
}

func TestListOperations_NoRedaction(t *testing.T) {
	content := []byte("BT /F1 12 Tf (Hello) Tj ET")
	page := redactpdf.Page{
		Content:  content,
		Res:      fonts.NewStandardResolver(),
		MediaBox: redactpdf.NewRectangle(0, 0, 612, 792),
	}
	ops, _, err := redactpdf.ListOperations(context.Background(), page)
	require.NoError(t, err)
	require.NotNil(t, ops)

	var sawShow bool
	for _, op := range ops.Ops {
		if op.Text != nil && strings.Contains(op.Text.DecodedText, "Hello") {
			sawShow = true
		}
	}
	assert.True(t, sawShow)
}
