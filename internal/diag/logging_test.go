package diag

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := &ConsoleLogger{Level: LogLevelWarning, Output: &buf}

	l.Debug("should not appear")
	l.Info("should not appear either")
	l.Warning("a warning: %d", 1)
	l.Error("an error: %s", "boom")

	out := buf.String()
	assert.NotContains(t, out, "should not appear")
	assert.Contains(t, out, "[WARNING] a warning: 1")
	assert.Contains(t, out, "[ERROR] an error: boom")
}

func TestDummyLogger_DiscardsEverything(t *testing.T) {
	var l DummyLogger
	l.Error("x")
	l.Warning("x")
	l.Info("x")
	l.Debug("x")
}

func TestDiagnostics_LogAll(t *testing.T) {
	var buf bytes.Buffer
	l := &ConsoleLogger{Level: LogLevelDebug, Output: &buf}

	d := Diagnostics{
		{Severity: SeverityFatal, Kind: KindUnbalancedState, ByteOffset: 5, Message: "boom"},
		{Severity: SeverityWarning, Kind: KindResourceNotFound, ByteOffset: 1, Message: "missing"},
	}
	d.LogAll(l)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "[ERROR]")
	assert.Contains(t, lines[1], "[WARNING]")
}
