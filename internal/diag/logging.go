package diag

import (
	"fmt"
	"io"
	"os"
)

// Logger is the capability interface diagnostics get written through when
// a caller wants them surfaced as they happen rather than collected into a
// Diagnostics slice and inspected afterward.
//
// Grounded on unipdf's common.Logger: same Error/Warning/Info/Debug shape,
// trimmed to the four levels this pipeline actually emits (no Notice/Trace,
// since nothing here produces a diagnostic at that granularity).
type Logger interface {
	Error(format string, args ...any)
	Warning(format string, args ...any)
	Info(format string, args ...any)
	Debug(format string, args ...any)
}

// LogLevel is the verbosity a Logger is configured at. Lower values are
// more severe and always shown; higher values require a matching
// verbosity to be printed.
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarning
	LogLevelInfo
	LogLevelDebug
)

// DummyLogger discards everything. It is the default so a caller that
// never wires a Logger pays no output cost.
type DummyLogger struct{}

func (DummyLogger) Error(string, ...any)   {}
func (DummyLogger) Warning(string, ...any) {}
func (DummyLogger) Info(string, ...any)    {}
func (DummyLogger) Debug(string, ...any)   {}

// ConsoleLogger writes to an io.Writer (os.Stderr by default) at or below
// its configured LogLevel, prefixing each line with its severity.
type ConsoleLogger struct {
	Level  LogLevel
	Output io.Writer
}

// NewConsoleLogger returns a ConsoleLogger writing to os.Stderr at level.
func NewConsoleLogger(level LogLevel) *ConsoleLogger {
	return &ConsoleLogger{Level: level, Output: os.Stderr}
}

func (l *ConsoleLogger) writer() io.Writer {
	if l.Output != nil {
		return l.Output
	}
	return os.Stderr
}

func (l *ConsoleLogger) Error(format string, args ...any) {
	if l.Level >= LogLevelError {
		fmt.Fprintf(l.writer(), "[ERROR] "+format+"\n", args...)
	}
}

func (l *ConsoleLogger) Warning(format string, args ...any) {
	if l.Level >= LogLevelWarning {
		fmt.Fprintf(l.writer(), "[WARNING] "+format+"\n", args...)
	}
}

func (l *ConsoleLogger) Info(format string, args ...any) {
	if l.Level >= LogLevelInfo {
		fmt.Fprintf(l.writer(), "[INFO] "+format+"\n", args...)
	}
}

func (l *ConsoleLogger) Debug(format string, args ...any) {
	if l.Level >= LogLevelDebug {
		fmt.Fprintf(l.writer(), "[DEBUG] "+format+"\n", args...)
	}
}

// Log emits a Diagnostic through logger at the level matching its
// Severity, so a caller that wants live output instead of (or alongside) a
// collected Diagnostics slice can wire one in.
func Log(logger Logger, d Diagnostic) {
	switch d.Severity {
	case SeverityFatal, SeverityError:
		logger.Error("%s", d.String())
	case SeverityWarning:
		logger.Warning("%s", d.String())
	default:
		logger.Info("%s", d.String())
	}
}

// LogAll emits every diagnostic in d through logger, in order.
func (d Diagnostics) LogAll(logger Logger) {
	for _, entry := range d {
		Log(logger, entry)
	}
}
