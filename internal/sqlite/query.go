package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/davik/exportdb/pkg/types"
)

// Tables lists all user tables in the store, alphabetically.
func (s *Store) Tables() ([]string, error) {
	rows, err := s.db.Query(
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning table name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Describe returns the table's columns with their declared types, in schema
// order.
func (s *Store) Describe(table string) ([]types.Column, error) {
	rows, err := s.db.Query("PRAGMA table_info(" + QuoteIdentifier(table) + ")")
	if err != nil {
		return nil, fmt.Errorf("table_info for %s: %w", table, err)
	}
	defer rows.Close()

	var cols []types.Column
	for rows.Next() {
		var (
			cid, notNull, pk int
			name, colType    string
			dflt             sql.NullString
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("scanning table_info for %s: %w", table, err)
		}
		cols = append(cols, types.Column{Name: name, Type: types.ColumnType(colType)})
	}
	return cols, rows.Err()
}

// ReadRows returns up to limit rows of the table in schema column order.
// A limit of zero or less returns all rows.
func (s *Store) ReadRows(table string, limit int) ([]string, [][]any, error) {
	query := "SELECT * FROM " + QuoteIdentifier(table)
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("reading rows of %s: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("reading columns of %s: %w", table, err)
	}

	var out [][]any
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, fmt.Errorf("scanning row of %s: %w", table, err)
		}
		out = append(out, vals)
	}
	return cols, out, rows.Err()
}

// SearchHit is one row matched by a cross-table scan.
type SearchHit struct {
	Table string         `json:"table"`
	Row   map[string]any `json:"row"`
}

// Search scans every row and column of every user table for a
// case-insensitive substring match. This is a naive full scan; the store is
// small enough that nothing smarter is warranted.
func (s *Store) Search(term string) ([]SearchHit, error) {
	term = strings.ToLower(term)

	tables, err := s.Tables()
	if err != nil {
		return nil, err
	}

	var hits []SearchHit
	for _, table := range tables {
		cols, rows, err := s.ReadRows(table, 0)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			for _, v := range row {
				if v == nil {
					continue
				}
				if strings.Contains(strings.ToLower(fmt.Sprint(v)), term) {
					m := make(map[string]any, len(cols))
					for i, c := range cols {
						m[c] = row[i]
					}
					hits = append(hits, SearchHit{Table: table, Row: m})
					break
				}
			}
		}
	}
	return hits, nil
}
