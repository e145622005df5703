/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package sqlstore is a resource.Syncer over database/sql. Documents are
// stored as JSON in a single table keyed by URL; SQLite (modernc.org/sqlite),
// MySQL (go-sql-driver/mysql) and PostgreSQL (pgx) are supported through
// Dialect.
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"dirpx.dev/assoc/resource"
	"dirpx.dev/assoc/store"
)

// DefaultTable is the table documents are stored in.
const DefaultTable = "documents"

var (
	// ErrUnknownDialect is returned for an unsupported driver name.
	ErrUnknownDialect = errors.New("sqlstore: unknown dialect")
	// ErrInvalidTable is returned for a table name that is not a plain
	// identifier.
	ErrInvalidTable = errors.New("sqlstore: invalid table name")
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

// Store is safe for concurrent use.
type Store struct {
	db     *sql.DB
	d      Dialect
	table  string
	logger *slog.Logger
	clock  func() time.Time
	newID  store.IDGenerator
	owned  bool

	mu   sync.Mutex
	last int64
}

var _ resource.Syncer = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithLogger logs every statement at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTable stores documents in table instead of DefaultTable.
func WithTable(table string) Option {
	return func(s *Store) { s.table = table }
}

// WithClock replaces time.Now as the source of insertion sequence numbers.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.clock = now
		}
	}
}

// WithIDGenerator replaces the UUID v7 id generator.
func WithIDGenerator(fn store.IDGenerator) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// New wraps db. The table is not created; call Migrate.
func New(db *sql.DB, d Dialect, opts ...Option) (*Store, error) {
	if db == nil || d == nil {
		return nil, errors.New("sqlstore: nil db or dialect")
	}
	s := &Store{
		db:     db,
		d:      d,
		table:  DefaultTable,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		clock:  time.Now,
		newID:  store.NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	if !identRe.MatchString(s.table) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTable, s.table)
	}
	return s, nil
}

// Open opens a database for the named driver, wraps it and creates the
// table. Close releases the connection pool.
func Open(ctx context.Context, driver, dsn string, opts ...Option) (*Store, error) {
	d, err := DialectFor(driver)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(d.Driver(), dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: open %s: %w", d.Name(), err)
	}
	s, err := New(db, d, opts...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	s.owned = true
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Dialect returns the store's dialect.
func (s *Store) Dialect() Dialect { return s.d }

// Table returns the table documents are stored in.
func (s *Store) Table() string { return s.table }

// Migrate creates the table and its index when missing.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range s.d.Schema(s.table) {
		if _, err := s.exec(ctx, stmt); err != nil {
			return fmt.Errorf("sqlstore: migrate %s: %w", s.table, err)
		}
	}
	return nil
}

// Close closes the database when the store opened it.
func (s *Store) Close() error {
	if !s.owned {
		return nil
	}
	return s.db.Close()
}

// Read implements resource.Syncer.
func (s *Store) Read(ctx context.Context, url string) (resource.Attributes, error) {
	u := store.Clean(url)
	q := `SELECT body FROM ` + s.d.QuoteIdent(s.table) + ` WHERE url = ` + s.d.Placeholder(1)
	var body string
	if err := s.queryRow(ctx, q, u).Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", resource.ErrNotFound, u)
		}
		return nil, fmt.Errorf("sqlstore: read %s: %w", u, err)
	}
	return decode(body)
}

// List implements resource.Syncer.
func (s *Store) List(ctx context.Context, url string) ([]resource.Attributes, error) {
	parent := store.Clean(url)
	q := `SELECT body FROM ` + s.d.QuoteIdent(s.table) + ` WHERE parent = ` + s.d.Placeholder(1) + ` ORDER BY seq, url`
	rows, err := s.query(ctx, q, parent)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: list %s: %w", parent, err)
	}
	defer rows.Close()

	out := []resource.Attributes{}
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("sqlstore: list %s: %w", parent, err)
		}
		doc, err := decode(body)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlstore: list %s: %w", parent, err)
	}
	return out, nil
}

// Create implements resource.Syncer. A document that already carries an id
// keeps it.
func (s *Store) Create(ctx context.Context, url, idAttribute string, doc resource.Attributes) (resource.Attributes, error) {
	d := doc.Clone()
	id := ""
	if v, ok := d[idAttribute]; ok && v != nil {
		id = fmt.Sprint(v)
	} else {
		id = s.newID()
		d[idAttribute] = id
	}
	return s.put(ctx, store.Join(url, id), d)
}

// Update implements resource.Syncer. Missing documents are created.
func (s *Store) Update(ctx context.Context, url string, doc resource.Attributes) (resource.Attributes, error) {
	return s.put(ctx, store.Clean(url), doc)
}

// Delete implements resource.Syncer.
func (s *Store) Delete(ctx context.Context, url string) error {
	u := store.Clean(url)
	q := `DELETE FROM ` + s.d.QuoteIdent(s.table) + ` WHERE url = ` + s.d.Placeholder(1)
	res, err := s.exec(ctx, q, u)
	if err != nil {
		return fmt.Errorf("sqlstore: delete %s: %w", u, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlstore: delete %s: %w", u, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", resource.ErrNotFound, u)
	}
	return nil
}

// put upserts doc at u and returns the stored form.
func (s *Store) put(ctx context.Context, u string, doc resource.Attributes) (resource.Attributes, error) {
	if doc == nil {
		doc = resource.Attributes{}
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: encode %s: %w", u, err)
	}
	if _, err := s.exec(ctx, s.d.Upsert(s.table), u, store.Parent(u), string(body), s.nextSeq()); err != nil {
		return nil, fmt.Errorf("sqlstore: write %s: %w", u, err)
	}
	return decode(string(body))
}

// nextSeq returns a strictly increasing sequence number derived from the
// clock.
func (s *Store) nextSeq() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.clock().UnixNano()
	if n <= s.last {
		n = s.last + 1
	}
	s.last = n
	return n
}

func (s *Store) exec(ctx context.Context, q string, args ...any) (sql.Result, error) {
	s.logger.DebugContext(ctx, "sqlstore exec", slog.String("query", q), slog.Int("args", len(args)))
	return s.db.ExecContext(ctx, q, args...)
}

func (s *Store) query(ctx context.Context, q string, args ...any) (*sql.Rows, error) {
	s.logger.DebugContext(ctx, "sqlstore query", slog.String("query", q), slog.Int("args", len(args)))
	return s.db.QueryContext(ctx, q, args...)
}

func (s *Store) queryRow(ctx context.Context, q string, args ...any) *sql.Row {
	s.logger.DebugContext(ctx, "sqlstore query", slog.String("query", q), slog.Int("args", len(args)))
	return s.db.QueryRowContext(ctx, q, args...)
}

func decode(body string) (resource.Attributes, error) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return nil, fmt.Errorf("sqlstore: decode: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return resource.Attributes(doc), nil
}
