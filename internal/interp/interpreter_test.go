package interp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/redactpdf/internal/fonts"
)

func runContent(t *testing.T, src string) *OperationSeq {
	t.Helper()
	ip := New(context.Background(), []byte(src), fonts.NewStandardResolver())
	seq, diags, err := ip.Run()
	require.NoError(t, err)
	require.False(t, diags.HasFatal())
	return seq
}

func TestInterpreter_SimpleTextShow(t *testing.T) {
	seq := runContent(t, "BT /F1 12 Tf 100 700 Td (Hi) Tj ET")

	var show *Operation
	for i := range seq.Ops {
		if seq.Ops[i].Kind == KindTextShow {
			show = &seq.Ops[i]
		}
	}
	require.NotNil(t, show)
	require.NotNil(t, show.Text)
	assert.Equal(t, "Tj", show.Operator)
	assert.Len(t, show.Text.Glyphs, 2)
	assert.True(t, show.Text.HadPrecedingTf)
	assert.Equal(t, "F1", show.Text.FontName)
	assert.InDelta(t, 12.0, show.Text.FontSize, 1e-9)
	assert.InDelta(t, 12.0, show.Text.EffectiveFontSize, 1e-9)
}

func TestInterpreter_MissingTfNotedOnShow(t *testing.T) {
	seq := runContent(t, "BT 100 700 Td (Hi) Tj ET")

	var show *Operation
	for i := range seq.Ops {
		if seq.Ops[i].Kind == KindTextShow {
			show = &seq.Ops[i]
		}
	}
	require.NotNil(t, show)
	assert.False(t, show.Text.HadPrecedingTf)
}

func TestInterpreter_GraphicsStateStack(t *testing.T) {
	seq := runContent(t, "q 2 0 0 2 0 0 cm Q")

	var gstates []GraphicsState
	for _, op := range seq.Ops {
		gstates = append(gstates, op.GState)
	}
	require.Len(t, gstates, 3)
	assert.True(t, gstates[0].CTM.IsIdentity(), "CTM before cm should be identity")
}

func TestInterpreter_PathBBox(t *testing.T) {
	seq := runContent(t, "10 10 100 50 re f")

	var paint *Operation
	for i := range seq.Ops {
		if seq.Ops[i].Kind == KindPathPaint {
			paint = &seq.Ops[i]
		}
	}
	require.NotNil(t, paint)
	require.NotNil(t, paint.Path)
	llx, lly := paint.Path.BBox.LowerLeft()
	urx, ury := paint.Path.BBox.UpperRight()
	assert.InDelta(t, 10.0, llx, 1e-9)
	assert.InDelta(t, 10.0, lly, 1e-9)
	assert.InDelta(t, 110.0, urx, 1e-9)
	assert.InDelta(t, 60.0, ury, 1e-9)
}

func TestInterpreter_TJKerning(t *testing.T) {
	seq := runContent(t, "BT /F1 10 Tf 0 0 Td [(AB)-250(CD)] TJ ET")

	var show *Operation
	for i := range seq.Ops {
		if seq.Ops[i].Kind == KindTextShow {
			show = &seq.Ops[i]
		}
	}
	require.NotNil(t, show)
	assert.Equal(t, "TJ", show.Operator)
	require.Len(t, show.Text.Glyphs, 4)

	// Glyph.Index preserves byte order even though Glyphs is sorted by
	// visual x; all four glyphs advance strictly rightward here so the
	// two orders coincide.
	for i, g := range show.Text.Glyphs {
		assert.Equal(t, i, g.Index)
	}
	assert.Equal(t, 0, show.Text.Glyphs[0].SourceArrayIndex)
	assert.Equal(t, 2, show.Text.Glyphs[2].SourceArrayIndex)
}

func TestInterpreter_UnbalancedQQCatastrophic(t *testing.T) {
	src := ""
	for i := 0; i < 100; i++ {
		src += "Q "
	}
	ip := New(context.Background(), []byte(src), fonts.NewStandardResolver())
	_, diags, err := ip.Run()
	require.Error(t, err)
	assert.True(t, diags.HasFatal())
}

func TestInterpreter_UnknownOperatorIsRecoverable(t *testing.T) {
	seq := runContent(t, "1 2 zzz")
	require.Len(t, seq.Ops, 1)
	assert.Equal(t, KindUnknown, seq.Ops[0].Kind)
}

func TestInterpreter_CancellationMidStream(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ip := New(ctx, []byte("BT /F1 12 Tf (Hi) Tj ET"), fonts.NewStandardResolver())
	_, diags, err := ip.Run()
	require.ErrorIs(t, err, ErrCancelled)
	assert.True(t, diags.HasFatal())
}
