package ingest

import (
	"strconv"
	"strings"

	"github.com/davik/exportdb/pkg/types"
)

// BuildRows positions every row's values in the authoritative column order
// read back from the store. For each database column the source column is
// resolved once through the mapping's reverse index; a database column that
// no source column maps to (schema or mapping drift) gets null in every row
// rather than failing the file. Empty cells become nulls; integer and real
// columns are bound as int64 and float64, everything else as the raw string.
func BuildRows(tbl *types.ParsedTable, mapping *types.ColumnMapping, schema []types.Column, dbColumns []string) [][]any {
	typeFor := make(map[string]types.ColumnType, len(schema))
	for _, c := range schema {
		typeFor[c.Name] = c.Type
	}

	// Resolve each database column to its source position once, not per row.
	source := make([]int, len(dbColumns))
	for j, name := range dbColumns {
		if i, ok := mapping.SourceIndex(name); ok {
			source[j] = i
		} else {
			source[j] = -1
		}
	}

	rows := make([][]any, len(tbl.Rows))
	for r, row := range tbl.Rows {
		vals := make([]any, len(dbColumns))
		for j := range dbColumns {
			i := source[j]
			if i < 0 || i >= len(row) || row[i] == "" {
				vals[j] = nil
				continue
			}
			vals[j] = coerceValue(typeFor[dbColumns[j]], row[i])
		}
		rows[r] = vals
	}
	return rows
}

// coerceValue converts a raw cell to the Go value matching the inferred
// column type. Inference saw the full column, so the parses cannot fail for
// rows that were present then; if one does anyway, the raw string goes in
// and SQLite's column affinity takes over.
func coerceValue(t types.ColumnType, raw string) any {
	switch t {
	case types.TypeInteger:
		if n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err == nil {
			return n
		}
	case types.TypeReal:
		if f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			return f
		}
	}
	return raw
}
