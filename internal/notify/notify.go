// Package notify carries user-facing reports of recoverable failures.
package notify

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type Severity string

const (
	Standard    Severity = "standard"
	Important   Severity = "important"
	Destructive Severity = "destructive"
	Technical   Severity = "technical"
)

const (
	DefaultDuration   = 3 * time.Second
	TechnicalDuration = 10 * time.Second
)

// Notifier is fire-and-forget: reporting never fails and never blocks the caller.
type Notifier interface {
	Report(message string, severity Severity, duration time.Duration)
}

// Log writes every report as a structured zerolog event.
type Log struct {
	logger zerolog.Logger
}

func NewLog(l zerolog.Logger) *Log {
	return &Log{logger: l}
}

func (n *Log) Report(message string, severity Severity, duration time.Duration) {
	var ev *zerolog.Event
	switch severity {
	case Destructive:
		ev = n.logger.Error()
	case Important, Technical:
		ev = n.logger.Warn()
	default:
		ev = n.logger.Info()
	}
	ev.Str("severity", string(severity)).Dur("duration", duration).Msg(message)
}

type Note struct {
	Message  string
	Severity Severity
	Duration time.Duration
}

// Recorder keeps reports in memory.
type Recorder struct {
	mu    sync.Mutex
	notes []Note
}

func (r *Recorder) Report(message string, severity Severity, duration time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, Note{Message: message, Severity: severity, Duration: duration})
}

func (r *Recorder) Notes() []Note {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Note(nil), r.notes...)
}

// Count returns how many reports had severity s.
func (r *Recorder) Count(s Severity) int {
	n := 0
	for _, note := range r.Notes() {
		if note.Severity == s {
			n++
		}
	}
	return n
}

// Writer prints each report as one line, prefixed with its severity unless it is
// a standard report.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (n *Writer) Report(message string, severity Severity, _ time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if severity == Standard || severity == "" {
		fmt.Fprintln(n.w, message)
		return
	}
	fmt.Fprintf(n.w, "%s: %s\n", severity, message)
}

type tee []Notifier

func (t tee) Report(message string, severity Severity, duration time.Duration) {
	for _, n := range t {
		n.Report(message, severity, duration)
	}
}

// Tee sends every report to each non-nil notifier in order.
func Tee(ns ...Notifier) Notifier {
	out := make(tee, 0, len(ns))
	for _, n := range ns {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

type discard struct{}

func (discard) Report(string, Severity, time.Duration) {}

// Discard drops every report.
var Discard Notifier = discard{}

// OrDiscard returns n, or Discard when n is nil.
func OrDiscard(n Notifier) Notifier {
	if n == nil {
		return Discard
	}
	return n
}
