// Package sqlite persists fetched datasets so the service can still render a
// chart when the upstream is unavailable at startup.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/couchcryptid/temperature-heatmap/internal/domain"
)

//go:embed schema.sql
var schema string

// ErrNoSnapshot is returned by Latest when nothing has been saved for a source.
var ErrNoSnapshot = errors.New("no snapshot stored")

// DefaultRetain is the number of snapshots kept per source URL.
const DefaultRetain = 5

// Store is a SQLite-backed dataset snapshot store.
type Store struct {
	db     *sql.DB
	retain int
}

// Open opens (or creates) the snapshot database at path and applies the schema.
// Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	dsn, err := buildDSN(path)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}
	// One writer; also keeps a :memory: database on a single connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db, retain: DefaultRetain}, nil
}

func buildDSN(path string) (string, error) {
	if path == "" {
		return "", errors.New("snapshot path is empty")
	}
	if path == ":memory:" {
		return path, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	params := []string{
		"_busy_timeout=5000",
		"_journal_mode=WAL",
	}
	if strings.HasPrefix(path, "file:") {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		return path + sep + strings.Join(params, "&"), nil
	}
	return fmt.Sprintf("file:%s?%s", path, strings.Join(params, "&")), nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save stores ds as the newest snapshot for url and prunes older ones beyond
// the retention limit.
func (s *Store) Save(ctx context.Context, url string, ds domain.Dataset, fetchedAt time.Time) error {
	payload, err := json.Marshal(ds)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (source_url, fetched_at, base_temperature, record_count, payload) VALUES (?, ?, ?, ?, ?)`,
		url, fetchedAt.UTC().Format(time.RFC3339Nano), ds.BaseTemperature, len(ds.Records), payload,
	); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM snapshots WHERE source_url = ? AND id NOT IN (
		   SELECT id FROM snapshots WHERE source_url = ? ORDER BY id DESC LIMIT ?
		 )`,
		url, url, s.retain,
	); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

// Latest returns the most recently saved snapshot for url and the time it was fetched.
func (s *Store) Latest(ctx context.Context, url string) (domain.Dataset, time.Time, error) {
	var (
		fetchedAt string
		payload   []byte
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT fetched_at, payload FROM snapshots WHERE source_url = ? ORDER BY id DESC LIMIT 1`,
		url,
	).Scan(&fetchedAt, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Dataset{}, time.Time{}, ErrNoSnapshot
	}
	if err != nil {
		return domain.Dataset{}, time.Time{}, fmt.Errorf("query snapshot: %w", err)
	}

	ts, err := time.Parse(time.RFC3339Nano, fetchedAt)
	if err != nil {
		return domain.Dataset{}, time.Time{}, fmt.Errorf("parse fetched_at %q: %w", fetchedAt, err)
	}
	ds, err := domain.ParseDataset(payload)
	if err != nil {
		return domain.Dataset{}, time.Time{}, err
	}
	return ds, ts, nil
}

// Count returns how many snapshots are stored for url.
func (s *Store) Count(ctx context.Context, url string) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM snapshots WHERE source_url = ?`, url).Scan(&n); err != nil {
		return 0, fmt.Errorf("count snapshots: %w", err)
	}
	return n, nil
}

// CheckReadiness pings the database.
func (s *Store) CheckReadiness(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
