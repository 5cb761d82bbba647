// Package format writes command results.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

const (
	JSON = "json"
	Text = "text"
)

// Texter is implemented by results that have a human-readable form.
type Texter interface {
	Text() string
}

// Envelope wraps every JSON result. Meta carries hints such as follow-up
// commands and never changes the shape of Data.
type Envelope struct {
	Data any            `json:"data"`
	Meta map[string]any `json:"meta,omitempty"`
}

// Write writes v in the requested format.
//
// Supported formats:
// - text (default): v.Text() when available, JSON otherwise
// - json
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", Text:
		if t, ok := v.(Texter); ok {
			s := strings.TrimRight(t.Text(), "\n")
			_, err := fmt.Fprintln(w, s)
			return err
		}
		return WriteJSON(w, Envelope{Data: v}, true)
	case JSON:
		return WriteJSON(w, Envelope{Data: v}, pretty)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteJSON writes strict JSON output for CLI commands.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}
