// Package logging builds the error log used by both pipelines.
//
// Lines are written as "<time> - <LEVEL> - <message>" followed by any
// structured fields. zap has no critical level, so DPanic is rendered as
// CRITICAL; the logger is never built in development mode, so DPanic does
// not panic.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TimeLayout is the timestamp format of every error log line.
const TimeLayout = "2006-01-02 15:04:05"

// Logger wraps zap.Logger with a Critical level for pipeline-aborting failures.
type Logger struct {
	*zap.Logger
	closer io.Closer
}

// Options configures a Logger.
type Options struct {
	// Path is the error log file. Empty disables the file sink.
	Path string
	// Verbose tees debug output to Stderr.
	Verbose bool
	// Stderr receives verbose output; defaults to os.Stderr.
	Stderr io.Writer
}

// New opens the error log for appending and returns a logger tagged with a
// fresh run id.
func New(opts Options) (*Logger, error) {
	var (
		cores  []zapcore.Core
		closer io.Closer
	)

	if opts.Path != "" {
		f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open error log %s: %w", opts.Path, err)
		}
		closer = f
		cores = append(cores, zapcore.NewCore(newEncoder(), zapcore.AddSync(f), zapcore.ErrorLevel))
	}

	if opts.Verbose {
		w := opts.Stderr
		if w == nil {
			w = os.Stderr
		}
		cores = append(cores, zapcore.NewCore(newEncoder(), zapcore.AddSync(w), zapcore.DebugLevel))
	}

	l := NewWithCore(zapcore.NewTee(cores...))
	l.closer = closer
	return l, nil
}

// NewWithCore wraps an existing core; used by tests to capture output.
func NewWithCore(core zapcore.Core) *Logger {
	zl := zap.New(core).With(zap.String("run", uuid.NewString()))
	return &Logger{Logger: zl}
}

// NewWriter returns a logger that writes error-level lines to w.
func NewWriter(w io.Writer) *Logger {
	return NewWithCore(zapcore.NewCore(newEncoder(), zapcore.AddSync(w), zapcore.ErrorLevel))
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// Critical logs a pipeline-aborting failure.
func (l *Logger) Critical(msg string, fields ...zap.Field) {
	l.DPanic(msg, fields...)
}

// Named returns a child logger for a component.
func (l *Logger) Named(name string) *Logger {
	return &Logger{Logger: l.Logger.Named(name), closer: l.closer}
}

// Close flushes and closes the underlying file.
func (l *Logger) Close() error {
	_ = l.Sync()
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

func newEncoder() zapcore.Encoder {
	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeTime:       zapcore.TimeEncoderOfLayout(TimeLayout),
		EncodeLevel:      encodeLevel,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " - ",
	})
}

func encodeLevel(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	if l == zapcore.DPanicLevel {
		enc.AppendString("CRITICAL")
		return
	}
	enc.AppendString(l.CapitalString())
}
