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

package sqlstore

import (
	"fmt"
	"strings"
)

// Dialect abstracts the SQL differences between the supported engines.
type Dialect interface {
	// Name is the name used in configuration ("sqlite", "mysql", "postgres").
	Name() string
	// Driver is the database/sql driver name to open connections with.
	Driver() string
	// Placeholder returns the bind parameter for the given 1-based index.
	Placeholder(index int) string
	// QuoteIdent quotes a table or column name.
	QuoteIdent(name string) string
	// Schema returns the statements creating table and its indexes.
	Schema(table string) []string
	// Upsert returns an INSERT of (url, parent, body, seq) that replaces
	// only the body of an existing row.
	Upsert(table string) string
}

// SQLite is the Dialect for modernc.org/sqlite.
var SQLite Dialect = sqliteDialect{}

// MySQL is the Dialect for MySQL / MariaDB.
var MySQL Dialect = mysqlDialect{}

// PostgreSQL is the Dialect for PostgreSQL through pgx.
var PostgreSQL Dialect = postgresDialect{}

// DialectFor returns the dialect registered under name.
func DialectFor(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sqlite", "sqlite3":
		return SQLite, nil
	case "mysql", "mariadb":
		return MySQL, nil
	case "postgres", "postgresql", "pgx":
		return PostgreSQL, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDialect, name)
}

type sqliteDialect struct{}

func (sqliteDialect) Name() string                  { return "sqlite" }
func (sqliteDialect) Driver() string                { return "sqlite" }
func (sqliteDialect) Placeholder(_ int) string      { return "?" }
func (sqliteDialect) QuoteIdent(name string) string { return `"` + name + `"` }

func (d sqliteDialect) Schema(table string) []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS ` + d.QuoteIdent(table) + ` (
	url    TEXT    NOT NULL PRIMARY KEY,
	parent TEXT    NOT NULL,
	body   TEXT    NOT NULL,
	seq    INTEGER NOT NULL
)`,
		`CREATE INDEX IF NOT EXISTS ` + d.QuoteIdent(table+"_parent") + ` ON ` + d.QuoteIdent(table) + ` (parent, seq)`,
	}
}

func (d sqliteDialect) Upsert(table string) string {
	return `INSERT INTO ` + d.QuoteIdent(table) + ` (url, parent, body, seq) VALUES (?, ?, ?, ?)
ON CONFLICT (url) DO UPDATE SET body = excluded.body`
}

type mysqlDialect struct{}

func (mysqlDialect) Name() string                  { return "mysql" }
func (mysqlDialect) Driver() string                { return "mysql" }
func (mysqlDialect) Placeholder(_ int) string      { return "?" }
func (mysqlDialect) QuoteIdent(name string) string { return "`" + name + "`" }

func (d mysqlDialect) Schema(table string) []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS ` + d.QuoteIdent(table) + ` (
	url    VARCHAR(512) NOT NULL PRIMARY KEY,
	parent VARCHAR(512) NOT NULL,
	body   LONGTEXT     NOT NULL,
	seq    BIGINT       NOT NULL,
	INDEX ` + d.QuoteIdent(table+"_parent") + ` (parent, seq)
) DEFAULT CHARSET = utf8mb4`,
	}
}

func (d mysqlDialect) Upsert(table string) string {
	return `INSERT INTO ` + d.QuoteIdent(table) + ` (url, parent, body, seq) VALUES (?, ?, ?, ?)
ON DUPLICATE KEY UPDATE body = VALUES(body)`
}

type postgresDialect struct{}

func (postgresDialect) Name() string                  { return "postgres" }
func (postgresDialect) Driver() string                { return "pgx" }
func (postgresDialect) Placeholder(index int) string  { return fmt.Sprintf("$%d", index) }
func (postgresDialect) QuoteIdent(name string) string { return `"` + name + `"` }

func (d postgresDialect) Schema(table string) []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS ` + d.QuoteIdent(table) + ` (
	url    TEXT   NOT NULL PRIMARY KEY,
	parent TEXT   NOT NULL,
	body   TEXT   NOT NULL,
	seq    BIGINT NOT NULL
)`,
		`CREATE INDEX IF NOT EXISTS ` + d.QuoteIdent(table+"_parent") + ` ON ` + d.QuoteIdent(table) + ` (parent, seq)`,
	}
}

func (d postgresDialect) Upsert(table string) string {
	return `INSERT INTO ` + d.QuoteIdent(table) + ` (url, parent, body, seq) VALUES ($1, $2, $3, $4)
ON CONFLICT (url) DO UPDATE SET body = EXCLUDED.body`
}
