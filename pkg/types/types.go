// Package types defines the table, mapping, and configuration types shared
// by the ingestion pipeline and the SQLite store, plus the standard errors.
package types

// ColumnType is the SQLite storage type assigned to a column by inference.
type ColumnType string

// Column types, in inference priority order.
const (
	TypeInteger   ColumnType = "INTEGER"
	TypeReal      ColumnType = "REAL"
	TypeTimestamp ColumnType = "TIMESTAMP"
	TypeText      ColumnType = "TEXT"
)

// Column is one (normalized name, inferred type) pair of a table schema.
type Column struct {
	Name string
	Type ColumnType
}

// ParsedTable is the in-memory form of one source file: the original header
// row and the data rows beneath it. An empty cell value means null. Rows are
// padded to header width by the parser, so len(row) == len(Headers) always
// holds. A ParsedTable lives only for the duration of one file's processing.
type ParsedTable struct {
	Headers []string
	Rows    [][]string
}

// Column returns all values of the i-th source column, one per data row.
func (t *ParsedTable) Column(i int) []string {
	vals := make([]string, len(t.Rows))
	for r, row := range t.Rows {
		vals[r] = row[i]
	}
	return vals
}

// ColumnMapping records how each original header of one source file maps to
// its normalized identifier. Normalized names are pairwise distinct within a
// mapping. Index is the precomputed reverse lookup from normalized name back
// to the source column position, used to place values in insert order.
// A mapping is rebuilt fresh for every file and never reused.
type ColumnMapping struct {
	// Originals holds the headers as they appeared in the source, in order.
	Originals []string

	// Normalized holds the normalized identifier for each source column,
	// parallel to Originals.
	Normalized []string

	// ToNormalized maps an original header to its normalized identifier.
	// If the same header text appears twice in a source file, the first
	// occurrence wins here; Index remains exact for both.
	ToNormalized map[string]string

	// Index maps a normalized identifier to its source column position.
	Index map[string]int
}

// SourceIndex returns the source column position that produced the given
// normalized identifier, or false if no source column maps to it.
func (m *ColumnMapping) SourceIndex(normalized string) (int, bool) {
	i, ok := m.Index[normalized]
	return i, ok
}
