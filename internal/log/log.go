// Package log provides context-aware logging for issuetop.
// Diagnostics go to stderr so stdout stays clean for piped table output.
package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

type ctxKey struct{}

// Logger provides diagnostic output and verbose request logging.
type Logger struct {
	out     io.Writer
	verbose bool
	quiet   bool
}

// New creates a new logger. Quiet suppresses all output; verbose enables
// request and debug logging.
func New(out io.Writer, verbose, quiet bool) *Logger {
	return &Logger{out: out, verbose: verbose, quiet: quiet}
}

// WithLogger attaches a logger to the context.
func WithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext retrieves the logger from context.
// Returns a no-op logger if none is attached.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return &Logger{out: io.Discard}
}

// Printf writes formatted output.
func (l *Logger) Printf(format string, args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintf(l.out, format, args...)
}

// Println writes a line of output.
func (l *Logger) Println(args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintln(l.out, args...)
}

// Request logs an outgoing API request and returns a done function that
// logs the round-trip duration. Only prints when verbose mode is enabled.
func (l *Logger) Request(method, url string) func(time.Duration) {
	if !l.IsVerbose() {
		return func(time.Duration) {}
	}
	fmt.Fprintf(l.out, "> %s %s\n", method, url)
	return func(d time.Duration) {
		fmt.Fprintf(l.out, "< %s %s (%s)\n", method, url, d.Round(time.Millisecond))
	}
}

// Debug writes a message with key=value pairs when verbose mode is
// enabled. An orphan trailing key is dropped.
func (l *Logger) Debug(msg string, keyvals ...string) {
	if !l.IsVerbose() {
		return
	}
	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i+1 < len(keyvals); i += 2 {
		fmt.Fprintf(&b, " %s=%s", keyvals[i], keyvals[i+1])
	}
	fmt.Fprintln(l.out, b.String())
}

// IsVerbose returns true when verbose output is enabled and not quieted.
func (l *Logger) IsVerbose() bool {
	return l.verbose && !l.quiet
}

// Writer returns the underlying writer.
func (l *Logger) Writer() io.Writer {
	return l.out
}
