package config

import (
	"testing"
	"time"

	"ideas-cli/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromDefaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{"IDEAS_DIR": "/tmp/ideas-test"})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/ideas-test", cfg.Dir)
	assert.Equal(t, store.BackendSQLite, cfg.BackendKind())
	assert.Equal(t, 2*time.Second, cfg.SaveDebounce)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.Peer.InviteTimeout)
	assert.Equal(t, "127.0.0.1:7373", cfg.Peer.Listen)
	assert.Equal(t, 32768, cfg.Peer.ChunkSize)
	assert.NotEmpty(t, cfg.Peer.Name)
}

func TestLoadFromOverrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"IDEAS_DIR":            "/data",
		"IDEAS_BACKEND":        "badger",
		"IDEAS_SAVE_DEBOUNCE":  "500ms",
		"IDEAS_PEER_NAME":      "studio",
		"IDEAS_INVITE_TIMEOUT": "5s",
	})
	require.NoError(t, err)
	assert.Equal(t, store.BackendBadger, cfg.BackendKind())
	assert.Equal(t, 500*time.Millisecond, cfg.SaveDebounce)
	assert.Equal(t, "studio", cfg.Peer.Name)
	assert.Equal(t, 5*time.Second, cfg.Peer.InviteTimeout)
}

func TestLoadFromRejectsBadValues(t *testing.T) {
	_, err := LoadFrom(map[string]string{"IDEAS_DIR": "/d", "IDEAS_BACKEND": "postgres"})
	assert.Error(t, err)
	_, err = LoadFrom(map[string]string{"IDEAS_DIR": "/d", "IDEAS_SAVE_DEBOUNCE": "soon"})
	assert.Error(t, err)
	_, err = LoadFrom(map[string]string{"IDEAS_DIR": "/d", "IDEAS_INVITE_TIMEOUT": "0s"})
	assert.Error(t, err)
}
