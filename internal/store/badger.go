package store

import (
	"context"
	"errors"
	"fmt"

	"ideas-cli/internal/model"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

var (
	prefixProject  = []byte("project/")
	prefixTag      = []byte("tag/")
	prefixSettings = []byte("settings/")
	keyVersion     = []byte("meta/version")
)

// BadgerBackend keeps the same JSON rows as the SQLite backend in an embedded
// key-value store. Keys carry a zero-padded sequence so iteration preserves order.
type BadgerBackend struct {
	db *badger.DB
}

type BadgerOptions struct {
	Dir      string
	InMemory bool
	Logger   *zerolog.Logger
}

func OpenBadger(dir string) (*BadgerBackend, error) {
	return OpenBadgerWithOptions(BadgerOptions{Dir: dir})
}

func OpenBadgerWithOptions(opts BadgerOptions) (*BadgerBackend, error) {
	bo := badger.DefaultOptions(opts.Dir)
	if opts.InMemory {
		bo = bo.WithDir("").WithValueDir("").WithInMemory(true)
	}
	if opts.Logger != nil {
		bo = bo.WithLogger(badgerLogger{zlog: *opts.Logger})
	} else {
		bo = bo.WithLogger(nil)
	}
	// Sibling collections are UI-sized; keep the footprint small.
	bo = bo.
		WithMemTableSize(16 << 20).
		WithValueLogFileSize(64 << 20).
		WithNumMemtables(2).
		WithValueThreshold(1024)

	db, err := badger.Open(bo)
	if err != nil {
		return nil, fmt.Errorf("failed to open BadgerDB: %w", err)
	}
	return &BadgerBackend{db: db}, nil
}

func (b *BadgerBackend) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

func (b *BadgerBackend) Load(ctx context.Context) (*Snapshot, error) {
	var raw rawSnapshot
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(keyVersion)
		if err == nil {
			if err := item.Value(func(val []byte) error {
				var v int
				if _, err := fmt.Sscanf(string(val), "%d", &v); err == nil && v > SchemaVersion {
					return fmt.Errorf("badger state version %d is newer than supported %d", v, SchemaVersion)
				}
				return nil
			}); err != nil {
				return err
			}
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		projects, err := scanPrefix(txn, prefixProject)
		if err != nil {
			return err
		}
		if raw.projects, err = decodeRows[model.Project](projects); err != nil {
			return err
		}
		tags, err := scanPrefix(txn, prefixTag)
		if err != nil {
			return err
		}
		if raw.tags, err = decodeRows[model.Tag](tags); err != nil {
			return err
		}
		settings, err := scanPrefix(txn, prefixSettings)
		if err != nil {
			return err
		}
		for _, v := range settings {
			s, ids, err := decodeSettings(v)
			if err != nil {
				return err
			}
			raw.settings = append(raw.settings, s)
			raw.tagIDs = append(raw.tagIDs, ids)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return raw.link(), nil
}

// Save replaces every key under the three prefixes in one transaction.
func (b *BadgerBackend) Save(ctx context.Context, snap *Snapshot) error {
	enc, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}
	return b.db.Update(func(txn *badger.Txn) error {
		for _, prefix := range [][]byte{prefixProject, prefixTag, prefixSettings} {
			if err := deletePrefix(txn, prefix); err != nil {
				return err
			}
		}
		if err := txn.Set(keyVersion, []byte(fmt.Sprintf("%d", SchemaVersion))); err != nil {
			return err
		}
		for i, v := range enc.projects {
			if err := txn.Set(seqKey(prefixProject, i, snap.Projects[i].ID.String()), v); err != nil {
				return err
			}
		}
		for i, v := range enc.tags {
			if err := txn.Set(seqKey(prefixTag, i, snap.Tags[i].ID.String()), v); err != nil {
				return err
			}
		}
		for i, v := range enc.settings {
			if err := txn.Set(seqKey(prefixSettings, i, snap.Settings[i].ID.String()), v); err != nil {
				return err
			}
		}
		return nil
	})
}

func seqKey(prefix []byte, seq int, id string) []byte {
	return []byte(fmt.Sprintf("%s%08d/%s", prefix, seq, id))
}

func scanPrefix(txn *badger.Txn, prefix []byte) ([][]byte, error) {
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()

	var out [][]byte
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		v, err := it.Item().ValueCopy(nil)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func deletePrefix(txn *badger.Txn, prefix []byte) error {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)

	var keys [][]byte
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		keys = append(keys, it.Item().KeyCopy(nil))
	}
	it.Close()

	for _, k := range keys {
		if err := txn.Delete(k); err != nil {
			return err
		}
	}
	return nil
}

// badgerLogger routes BadgerDB's internal logging into zerolog.
type badgerLogger struct {
	zlog zerolog.Logger
}

func (l badgerLogger) Errorf(f string, v ...interface{})   { l.zlog.Error().Msgf(f, v...) }
func (l badgerLogger) Warningf(f string, v ...interface{}) { l.zlog.Warn().Msgf(f, v...) }
func (l badgerLogger) Infof(f string, v ...interface{})    { l.zlog.Debug().Msgf(f, v...) }
func (l badgerLogger) Debugf(f string, v ...interface{})   { l.zlog.Trace().Msgf(f, v...) }
