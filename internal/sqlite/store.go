// Package sqlite implements the SQLite store for ingested tables: the
// destructive schema refresh, the batched row loader, the read-back of the
// authoritative column order, and the read-only query surface used by the
// CLI.
package sqlite

import (
	"database/sql"
	_ "embed"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/davik/exportdb/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// Store wraps a single SQLite database file. It is opened once per run,
// owned exclusively by the orchestrator for the run's duration, and closed
// once after the last file.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the SQLite database at path and ensures the run
// manifest tables exist. Ingested tables are never touched here.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening store %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening store %s: %w", path, err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing manifest schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Close releases the database connection. Idempotent.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Path returns the database file path the store was opened with.
func (s *Store) Path() string { return s.path }

// QuoteIdentifier renders name as a double-quoted SQLite identifier so that
// normalized names which still collide with keywords cannot break a
// statement.
func QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// Replace drops any existing table of that name and creates it anew with
// exactly the given columns. No ALTER, no diffing: the current source file's
// header row fully determines the table's shape.
func (s *Store) Replace(table string, cols []types.Column) error {
	drop := "DROP TABLE IF EXISTS " + QuoteIdentifier(table)
	if _, err := s.db.Exec(drop); err != nil {
		return &types.SchemaError{Table: table, Stmt: drop, Err: err}
	}

	defs := make([]string, len(cols))
	for i, c := range cols {
		defs[i] = QuoteIdentifier(c.Name) + " " + string(c.Type)
	}
	create := fmt.Sprintf("CREATE TABLE %s (%s)", QuoteIdentifier(table), strings.Join(defs, ", "))
	if _, err := s.db.Exec(create); err != nil {
		return &types.SchemaError{Table: table, Stmt: create, Err: err}
	}
	return nil
}

// TableColumns returns the table's column names in the order the store
// created them. This order is authoritative for inserts; the parsed table's
// order is not consulted.
func (s *Store) TableColumns(table string) ([]string, error) {
	rows, err := s.db.Query("PRAGMA table_info(" + QuoteIdentifier(table) + ")")
	if err != nil {
		return nil, fmt.Errorf("table_info for %s: %w", table, err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var (
			cid, notNull, pk int
			name, colType    string
			dflt             sql.NullString
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("scanning table_info for %s: %w", table, err)
		}
		cols = append(cols, name)
	}
	return cols, rows.Err()
}

// InsertRows loads all rows into the table through one prepared statement
// inside a single transaction, committed once after the last row. Values
// must already be positioned in the given column order.
func (s *Store) InsertRows(table string, columns []string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}

	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = QuoteIdentifier(c)
		placeholders[i] = "?"
	}
	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		QuoteIdentifier(table), strings.Join(quoted, ", "), strings.Join(placeholders, ", "))

	tx, err := s.db.Begin()
	if err != nil {
		return &types.InsertError{Table: table, Stmt: insert, FirstRow: rows[0], Err: err}
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(insert)
	if err != nil {
		return &types.InsertError{Table: table, Stmt: insert, FirstRow: rows[0], Err: err}
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.Exec(row...); err != nil {
			return &types.InsertError{Table: table, Stmt: insert, FirstRow: rows[0], Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &types.InsertError{Table: table, Stmt: insert, FirstRow: rows[0], Err: err}
	}
	return nil
}
