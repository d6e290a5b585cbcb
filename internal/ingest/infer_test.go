package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/davik/exportdb/pkg/types"
)

func TestInferColumnType(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   types.ColumnType
	}{
		{
			name:   "whole numbers are integer",
			values: []string{"1", "2", "3"},
			want:   types.TypeInteger,
		},
		{
			name:   "negative and spaced integers",
			values: []string{"-4", " 12 ", "0"},
			want:   types.TypeInteger,
		},
		{
			name:   "decimal mixed with whole is real",
			values: []string{"1.0", "2"},
			want:   types.TypeReal,
		},
		{
			name:   "dates are timestamp",
			values: []string{"2020-01-01", "2020-02-02"},
			want:   types.TypeTimestamp,
		},
		{
			name:   "datetimes are timestamp",
			values: []string{"2020-01-01 10:30:00", "2021-06-15 23:59:59"},
			want:   types.TypeTimestamp,
		},
		{
			name:   "mixed content is text",
			values: []string{"a", "1"},
			want:   types.TypeText,
		},
		{
			name:   "numbers mixed with dates are text",
			values: []string{"2020-01-01", "42"},
			want:   types.TypeText,
		},
		{
			name:   "blanks are ignored for classification",
			values: []string{"1", "", "3", ""},
			want:   types.TypeInteger,
		},
		{
			name:   "all blank is text",
			values: []string{"", "", ""},
			want:   types.TypeText,
		},
		{
			name:   "empty column is text",
			values: nil,
			want:   types.TypeText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferColumnType(tt.values))
		})
	}
}

func TestInferSchema(t *testing.T) {
	tbl := &types.ParsedTable{
		Headers: []string{"ID", "Connected On", "Note"},
		Rows: [][]string{
			{"1", "2020-01-01", "first"},
			{"2", "2020-02-02", ""},
		},
	}
	mapping := BuildColumnMapping(tbl.Headers)

	schema := inferSchema(tbl, mapping)

	assert.Equal(t, []types.Column{
		{Name: "id", Type: types.TypeInteger},
		{Name: "connected_on", Type: types.TypeTimestamp},
		{Name: "note", Type: types.TypeText},
	}, schema)
}
