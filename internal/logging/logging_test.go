package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeWritesToBuffer(t *testing.T) {
	var buf bytes.Buffer
	l, err := New().ToWriter(&buf).Level("warn").Make()
	require.NoError(t, err)
	l.Info().Msg("hidden")
	l.Warn().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"message":"shown"`)
	assert.Contains(t, buf.String(), `"time":`)
}

func TestMakeAppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ideas.log")
	for i := 0; i < 2; i++ {
		l, err := New().ToPath(path).Make()
		require.NoError(t, err)
		l.Info().Int("run", i).Msg("opened")
		require.NoError(t, l.Close())
	}
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, bytes.Count(b, []byte("opened")))
}

func TestMakeRejectsBadLevel(t *testing.T) {
	_, err := New().Level("loud").Make()
	assert.Error(t, err)
}
