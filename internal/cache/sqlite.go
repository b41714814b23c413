package cache

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

// sqliteTier persists entries in a single-file sqlite database, one row per
// key. Row writes are transactional, which gives the per-entry atomicity the
// Tier contract requires.
type sqliteTier struct {
	db *sql.DB
}

func openSQLiteTier(path string) (*sqliteTier, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	t := &sqliteTier{db: db}
	if err := t.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return t, nil
}

func (t *sqliteTier) migrate() error {
	_, err := t.db.Exec(`
CREATE TABLE IF NOT EXISTS cache_entries (
  key TEXT PRIMARY KEY,
  payload BLOB NOT NULL,
  codec TEXT NOT NULL,
  created_at INTEGER NOT NULL,
  expires_at INTEGER NOT NULL DEFAULT 0,
  last_access INTEGER NOT NULL,
  access_count INTEGER NOT NULL DEFAULT 0
);
`)
	return err
}

func (t *sqliteTier) Get(ctx context.Context, key string) (*Entry, error) {
	row := t.db.QueryRowContext(ctx, `
SELECT key, payload, codec, created_at, expires_at, last_access, access_count
FROM cache_entries WHERE key=?;
`, key)

	var (
		e                        Entry
		created, expires, access int64
	)
	err := row.Scan(&e.Key, &e.Payload, &e.Codec, &created, &expires, &access, &e.AccessCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	e.CreatedAt = fromUnixNano(created)
	e.ExpiresAt = fromUnixNano(expires)
	e.LastAccessedAt = fromUnixNano(access)
	return &e, nil
}

func (t *sqliteTier) Set(ctx context.Context, e *Entry) error {
	_, err := t.db.ExecContext(ctx, `
INSERT INTO cache_entries(key, payload, codec, created_at, expires_at, last_access, access_count)
VALUES(?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(key) DO UPDATE SET
  payload=excluded.payload,
  codec=excluded.codec,
  created_at=excluded.created_at,
  expires_at=excluded.expires_at,
  last_access=excluded.last_access,
  access_count=excluded.access_count;
`, e.Key, e.Payload, e.Codec, unixNano(e.CreatedAt), unixNano(e.ExpiresAt), unixNano(e.LastAccessedAt), e.AccessCount)
	return err
}

func (t *sqliteTier) Delete(ctx context.Context, key string) error {
	_, err := t.db.ExecContext(ctx, "DELETE FROM cache_entries WHERE key=?;", key)
	return err
}

func (t *sqliteTier) Len(ctx context.Context) (int, error) {
	var n int
	err := t.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM cache_entries;").Scan(&n)
	return n, err
}

func (t *sqliteTier) SizeBytes(ctx context.Context) (int64, error) {
	var n int64
	err := t.db.QueryRowContext(ctx, "SELECT COALESCE(SUM(LENGTH(payload)), 0) FROM cache_entries;").Scan(&n)
	return n, err
}

func (t *sqliteTier) Clear(ctx context.Context) error {
	_, err := t.db.ExecContext(ctx, "DELETE FROM cache_entries;")
	return err
}

func (t *sqliteTier) Close() error {
	if t.db == nil {
		return nil
	}
	return t.db.Close()
}

// Column encoding: unix nanoseconds, with 0 standing for the zero time.

func unixNano(ts time.Time) int64 {
	if ts.IsZero() {
		return 0
	}
	return ts.UnixNano()
}

func fromUnixNano(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n)
}
