package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"ideas-cli/internal/model"
)

// Backend is the durable side of the store. Save always receives the complete state.
type Backend interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap *Snapshot) error
	Close() error
}

type BackendKind string

const (
	BackendSQLite BackendKind = "sqlite"
	BackendBadger BackendKind = "badger"
	BackendMemory BackendKind = "memory"
)

func ParseBackendKind(s string) (BackendKind, error) {
	switch BackendKind(strings.ToLower(strings.TrimSpace(s))) {
	case "", BackendSQLite:
		return BackendSQLite, nil
	case BackendBadger:
		return BackendBadger, nil
	case BackendMemory:
		return BackendMemory, nil
	default:
		return "", fmt.Errorf("invalid backend %q (expected sqlite|badger|memory)", s)
	}
}

// OpenBackend opens the backend of the given kind under dir.
func OpenBackend(ctx context.Context, kind BackendKind, dir string) (Backend, error) {
	p := Paths{Dir: dir}
	switch kind {
	case BackendSQLite, "":
		return OpenSQLite(ctx, p.SQLitePath())
	case BackendBadger:
		return OpenBadger(p.BadgerDir())
	case BackendMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", kind)
	}
}

// MemoryBackend keeps rows as encoded JSON, the same way the durable backends do.
type MemoryBackend struct {
	mu       sync.Mutex
	projects [][]byte
	tags     [][]byte
	settings [][]byte
	saves    int
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (m *MemoryBackend) Load(ctx context.Context) (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var raw rawSnapshot
	var err error
	if raw.projects, err = decodeRows[model.Project](m.projects); err != nil {
		return nil, err
	}
	if raw.tags, err = decodeRows[model.Tag](m.tags); err != nil {
		return nil, err
	}
	for _, b := range m.settings {
		s, ids, err := decodeSettings(b)
		if err != nil {
			return nil, err
		}
		raw.settings = append(raw.settings, s)
		raw.tagIDs = append(raw.tagIDs, ids)
	}
	return raw.link(), nil
}

func (m *MemoryBackend) Save(ctx context.Context, snap *Snapshot) error {
	rows, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.projects, m.tags, m.settings = rows.projects, rows.tags, rows.settings
	m.saves++
	return nil
}

func (m *MemoryBackend) Close() error { return nil }

// Saves reports how many times Save succeeded.
func (m *MemoryBackend) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// AppendSettings stores an extra settings record, as a damaged store would hold.
func (m *MemoryBackend) AppendSettings(s *model.GlobalUserSettings) error {
	b, err := encodeSettings(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = append(m.settings, b)
	return nil
}

type encodedRows struct {
	projects [][]byte
	tags     [][]byte
	settings [][]byte
}

func encodeSnapshot(snap *Snapshot) (encodedRows, error) {
	var out encodedRows
	if snap == nil {
		return out, fmt.Errorf("nil snapshot")
	}
	for _, p := range snap.Projects {
		b, err := json.Marshal(p)
		if err != nil {
			return out, fmt.Errorf("encode project %s: %w", p.ID, err)
		}
		out.projects = append(out.projects, b)
	}
	for _, t := range snap.Tags {
		b, err := json.Marshal(t)
		if err != nil {
			return out, fmt.Errorf("encode tag %s: %w", t.ID, err)
		}
		out.tags = append(out.tags, b)
	}
	for _, s := range snap.Settings {
		b, err := encodeSettings(s)
		if err != nil {
			return out, err
		}
		out.settings = append(out.settings, b)
	}
	return out, nil
}

func decodeRows[T any](rows [][]byte) ([]*T, error) {
	out := make([]*T, 0, len(rows))
	for _, b := range rows {
		v := new(T)
		if err := json.Unmarshal(b, v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
