// Package logging builds the process logger.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

const permission = 0o664

type Build struct {
	writer io.Writer
	path   string
	level  string
}

type Logger struct {
	zerolog.Logger
	file *os.File
}

func New() *Build {
	return &Build{writer: os.Stderr}
}

// ToPath appends to the file at path instead of writing to the buffer.
func (b *Build) ToPath(path string) *Build {
	b.path = strings.TrimSpace(path)
	return b
}

func (b *Build) ToWriter(w io.Writer) *Build {
	b.writer = w
	return b
}

func (b *Build) Level(level string) *Build {
	b.level = strings.TrimSpace(level)
	return b
}

func (b *Build) Make() (*Logger, error) {
	out := &Logger{}
	w := b.writer
	if b.path != "" {
		f, err := os.OpenFile(b.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, permission)
		if err != nil {
			return nil, err
		}
		out.file = f
		w = zerolog.SyncWriter(f)
	}
	lvl := zerolog.InfoLevel
	if b.level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(b.level))
		if err != nil {
			return nil, err
		}
		lvl = parsed
	}
	out.Logger = zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	return out, nil
}

func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}
