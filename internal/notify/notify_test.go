package notify

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogMapsSeverityToLevel(t *testing.T) {
	var buf bytes.Buffer
	n := NewLog(zerolog.New(&buf))

	n.Report("Deleted Bucket: one", Destructive, DefaultDuration)
	n.Report("content loss", Technical, TechnicalDuration)
	n.Report("Received", Standard, DefaultDuration)

	out := buf.String()
	assert.Contains(t, out, `"level":"error","severity":"destructive"`)
	assert.Contains(t, out, `"level":"warn","severity":"technical"`)
	assert.Contains(t, out, `"level":"info","severity":"standard"`)
	assert.Contains(t, out, `"message":"Deleted Bucket: one"`)
}

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Report("a", Technical, TechnicalDuration)
	r.Report("b", Standard, DefaultDuration)
	require.Len(t, r.Notes(), 2)
	assert.Equal(t, 1, r.Count(Technical))
	assert.Equal(t, "b", r.Notes()[1].Message)
}

func TestOrDiscard(t *testing.T) {
	assert.Equal(t, Discard, OrDiscard(nil))
	r := &Recorder{}
	assert.Equal(t, Notifier(r), OrDiscard(r))
}

func TestWriterAndTee(t *testing.T) {
	var buf bytes.Buffer
	var rec Recorder
	n := Tee(NewWriter(&buf), nil, &rec)

	n.Report("Received \"p\"", Standard, DefaultDuration)
	n.Report("Import failed: boom", Destructive, DefaultDuration)

	assert.Equal(t, "Received \"p\"\ndestructive: Import failed: boom\n", buf.String())
	require.Len(t, rec.Notes(), 2)
}
