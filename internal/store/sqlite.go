package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"ideas-cli/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteBackend stores each project, tag and settings record as one JSON row.
type SQLiteBackend struct {
	path string
	db   *sql.DB
}

func OpenSQLite(ctx context.Context, path string) (*SQLiteBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLiteState(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteBackend{path: path, db: db}, nil
}

func (b *SQLiteBackend) Path() string { return b.path }

func (b *SQLiteBackend) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

func (b *SQLiteBackend) Load(ctx context.Context) (*Snapshot, error) {
	if v := b.readMeta(ctx, "version"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > SchemaVersion {
			return nil, fmt.Errorf("sqlite state version %d is newer than supported %d", n, SchemaVersion)
		}
	}

	var raw rawSnapshot
	var err error
	if raw.projects, err = readJSONRows[model.Project](ctx, b.db, `SELECT json FROM projects ORDER BY seq`); err != nil {
		return nil, err
	}
	if raw.tags, err = readJSONRows[model.Tag](ctx, b.db, `SELECT json FROM tags ORDER BY seq`); err != nil {
		return nil, err
	}
	rows, err := b.db.QueryContext(ctx, `SELECT json FROM user_settings ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var js string
		if err := rows.Scan(&js); err != nil {
			return nil, err
		}
		s, ids, err := decodeSettings([]byte(js))
		if err != nil {
			return nil, err
		}
		raw.settings = append(raw.settings, s)
		raw.tagIDs = append(raw.tagIDs, ids)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return raw.link(), nil
}

// Save replaces every row in one transaction.
func (b *SQLiteBackend) Save(ctx context.Context, snap *Snapshot) error {
	if snap == nil {
		return errors.New("nil snapshot")
	}
	enc, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}

	tx, err := b.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO state_meta(k, v) VALUES(?, ?)`, "version", strconv.Itoa(SchemaVersion)); err != nil {
		return err
	}
	for _, t := range []string{"projects", "tags", "user_settings"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+t); err != nil {
			return err
		}
	}

	nowMs := time.Now().UTC().UnixMilli()
	for i, p := range snap.Projects {
		if _, err := tx.ExecContext(ctx, `INSERT INTO projects(id, seq, title, json, updated_at_unixms) VALUES(?, ?, ?, ?, ?)`,
			p.ID.String(), i, strings.TrimSpace(p.Title), string(enc.projects[i]), nowMs); err != nil {
			return err
		}
	}
	for i, t := range snap.Tags {
		if _, err := tx.ExecContext(ctx, `INSERT INTO tags(id, seq, title, color, json, updated_at_unixms) VALUES(?, ?, ?, ?, ?, ?)`,
			t.ID.String(), i, t.Title, t.ColorIdentifier, string(enc.tags[i]), nowMs); err != nil {
			return err
		}
	}
	for i, s := range snap.Settings {
		if _, err := tx.ExecContext(ctx, `INSERT INTO user_settings(id, seq, json, updated_at_unixms) VALUES(?, ?, ?, ?)`,
			s.ID.String(), i, string(enc.settings[i]), nowMs); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (b *SQLiteBackend) readMeta(ctx context.Context, k string) string {
	var v string
	_ = b.db.QueryRowContext(ctx, `SELECT v FROM state_meta WHERE k = ?`, k).Scan(&v)
	return strings.TrimSpace(v)
}

func migrateSQLiteState(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS state_meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS projects (
			id TEXT PRIMARY KEY,
			seq INTEGER NOT NULL,
			title TEXT NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS tags (
			id TEXT PRIMARY KEY,
			seq INTEGER NOT NULL,
			title TEXT NOT NULL,
			color INTEGER NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tags_identity ON tags(title, color);`,
		`CREATE TABLE IF NOT EXISTS user_settings (
			id TEXT PRIMARY KEY,
			seq INTEGER NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

func readJSONRows[T any](ctx context.Context, db *sql.DB, query string) ([]*T, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var raw [][]byte
	for rows.Next() {
		var js string
		if err := rows.Scan(&js); err != nil {
			return nil, err
		}
		raw = append(raw, []byte(js))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return decodeRows[T](raw)
}
