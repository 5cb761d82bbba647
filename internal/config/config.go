// Package config reads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"ideas-cli/internal/store"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Data directory; empty means ~/.ideas.
	Dir          string        `env:"IDEAS_DIR"`
	Backend      string        `env:"IDEAS_BACKEND" envDefault:"sqlite"`
	SaveDebounce time.Duration `env:"IDEAS_SAVE_DEBOUNCE" envDefault:"2s"`

	LogLevel string `env:"IDEAS_LOG_LEVEL" envDefault:"warn"`
	LogFile  string `env:"IDEAS_LOG_FILE"`

	Peer PeerConfig
}

type PeerConfig struct {
	Listen        string        `env:"IDEAS_PEER_LISTEN" envDefault:"127.0.0.1:7373"`
	Name          string        `env:"IDEAS_PEER_NAME"`
	InviteTimeout time.Duration `env:"IDEAS_INVITE_TIMEOUT" envDefault:"30s"`
	ChunkSize     int           `env:"IDEAS_CHUNK_SIZE" envDefault:"32768"`
}

// Load parses the process environment.
func Load() (*Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses vars instead of the process environment.
func LoadFrom(vars map[string]string) (*Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	c.Dir = strings.TrimSpace(c.Dir)
	if c.Dir == "" {
		dir, err := store.DefaultDir()
		if err != nil {
			return err
		}
		c.Dir = dir
	}
	if _, err := store.ParseBackendKind(c.Backend); err != nil {
		return err
	}
	if c.SaveDebounce < 0 {
		return fmt.Errorf("IDEAS_SAVE_DEBOUNCE must not be negative: %s", c.SaveDebounce)
	}
	if strings.TrimSpace(c.Peer.Name) == "" {
		if h, err := os.Hostname(); err == nil && h != "" {
			c.Peer.Name = h
		} else {
			c.Peer.Name = "ideas"
		}
	}
	if c.Peer.InviteTimeout <= 0 {
		return fmt.Errorf("IDEAS_INVITE_TIMEOUT must be positive: %s", c.Peer.InviteTimeout)
	}
	if c.Peer.ChunkSize <= 0 {
		return fmt.Errorf("IDEAS_CHUNK_SIZE must be positive: %d", c.Peer.ChunkSize)
	}
	return nil
}

// BackendKind returns the validated backend.
func (c *Config) BackendKind() store.BackendKind {
	k, _ := store.ParseBackendKind(c.Backend)
	return k
}
