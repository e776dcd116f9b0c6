// Package logrus adapts sirupsen/logrus to the domain Logger interface.
package logrus

import (
	"fmt"
	"io"
	"time"

	"github.com/ochairo/openssf-assess/internal/domain/interfaces"
	"github.com/sirupsen/logrus"
)

// Supported output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Logger implements interfaces.Logger on top of a logrus entry
type Logger struct {
	entry *logrus.Entry
}

// New creates a logger writing to out at the given level ("debug", "info",
// "warn", "error") and format ("text" or "json").
func New(out io.Writer, level, format string) (*Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	base := logrus.New()
	base.SetOutput(out)
	base.SetLevel(lvl)

	switch format {
	case "", FormatText:
		base.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	case FormatJSON:
		base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
		})
	default:
		return nil, fmt.Errorf("invalid log format %q (want text or json)", format)
	}

	return &Logger{entry: logrus.NewEntry(base)}, nil
}

// Debug logs debug-level messages
func (l *Logger) Debug(msg string, fields ...interfaces.Field) {
	l.withFields(fields).Debug(msg)
}

// Info logs informational messages
func (l *Logger) Info(msg string, fields ...interfaces.Field) {
	l.withFields(fields).Info(msg)
}

// Warn logs warning messages
func (l *Logger) Warn(msg string, fields ...interfaces.Field) {
	l.withFields(fields).Warn(msg)
}

// Error logs error messages
func (l *Logger) Error(msg string, fields ...interfaces.Field) {
	l.withFields(fields).Error(msg)
}

// With returns a logger that attaches fields to every entry
func (l *Logger) With(fields ...interfaces.Field) interfaces.Logger {
	return &Logger{entry: l.withFields(fields)}
}

func (l *Logger) withFields(fields []interfaces.Field) *logrus.Entry {
	if len(fields) == 0 {
		return l.entry
	}
	data := make(logrus.Fields, len(fields))
	for _, f := range fields {
		data[f.Key] = f.Value
	}
	return l.entry.WithFields(data)
}
