package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davik/exportdb/pkg/types"
)

func TestBuildRows(t *testing.T) {
	tbl := &types.ParsedTable{
		Headers: []string{"ID", "Score", "Name"},
		Rows: [][]string{
			{"1", "2.5", "alice"},
			{"2", "", "bob"},
		},
	}
	mapping := BuildColumnMapping(tbl.Headers)
	schema := inferSchema(tbl, mapping)

	// The store's column order, not the source order, drives placement.
	dbColumns := []string{"name", "id", "score"}
	rows := BuildRows(tbl, mapping, schema, dbColumns)

	require.Len(t, rows, 2)
	assert.Equal(t, []any{"alice", int64(1), 2.5}, rows[0])
	assert.Equal(t, []any{"bob", int64(2), nil}, rows[1])
}

func TestBuildRowsMappingDrift(t *testing.T) {
	tbl := &types.ParsedTable{
		Headers: []string{"A"},
		Rows:    [][]string{{"x"}},
	}
	mapping := BuildColumnMapping(tbl.Headers)
	schema := inferSchema(tbl, mapping)

	// A database column no source column maps to gets null, not an error.
	rows := BuildRows(tbl, mapping, schema, []string{"a", "phantom"})

	require.Len(t, rows, 1)
	assert.Equal(t, []any{"x", nil}, rows[0])
}

func TestCoerceValue(t *testing.T) {
	tests := []struct {
		name string
		typ  types.ColumnType
		raw  string
		want any
	}{
		{"integer", types.TypeInteger, "42", int64(42)},
		{"integer with spaces", types.TypeInteger, " 7 ", int64(7)},
		{"real", types.TypeReal, "3.14", 3.14},
		{"real from whole", types.TypeReal, "2", 2.0},
		{"timestamp stays raw", types.TypeTimestamp, "2020-01-01", "2020-01-01"},
		{"text stays raw", types.TypeText, "hello", "hello"},
		{"unparsable integer falls back to raw", types.TypeInteger, "oops", "oops"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, coerceValue(tt.typ, tt.raw))
		})
	}
}
