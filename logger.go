package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
)

// logger writes diagnostic lines to stderr. Info lines only appear in
// verbose mode; warnings are always written. A nil *logger discards
// everything.
type logger struct {
	w       io.Writer
	verbose bool
	mu      sync.Mutex
	info    *color.Color
	warn    *color.Color
}

func newLogger(w io.Writer, verbose bool) *logger {
	return &logger{
		w:       w,
		verbose: verbose,
		info:    color.New(color.FgCyan),
		warn:    color.New(color.FgYellow),
	}
}

func (l *logger) Infof(format string, args ...any) {
	if l == nil || !l.verbose {
		return
	}
	l.printf(l.info.Sprint("info:"), format, args...)
}

func (l *logger) Warnf(format string, args ...any) {
	if l == nil {
		return
	}
	l.printf(l.warn.Sprint("warning:"), format, args...)
}

func (l *logger) printf(prefix, format string, args ...any) {
	if l.w == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, "%s %s\n", prefix, fmt.Sprintf(format, args...))
}
