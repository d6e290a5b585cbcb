package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/davik/exportdb/pkg/types"
)

// timestampLayouts are the date and datetime formats the inferencer
// recognizes. Four-digit-year layouts only; source exports do not use
// two-digit years.
var timestampLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// InferColumnType classifies a column from its full set of raw values,
// in priority order: integer, real, timestamp, text. Empty values are nulls
// and do not participate; a column with no non-null values is text.
// The whole column is inspected, not a sample, because source columns often
// mix numeric-looking strings with blanks.
func InferColumnType(values []string) types.ColumnType {
	var nonNull []string
	for _, v := range values {
		if v != "" {
			nonNull = append(nonNull, v)
		}
	}
	if len(nonNull) == 0 {
		return types.TypeText
	}

	if allOf(nonNull, isInteger) {
		return types.TypeInteger
	}
	if allOf(nonNull, isReal) {
		return types.TypeReal
	}
	if allOf(nonNull, isTimestamp) {
		return types.TypeTimestamp
	}
	return types.TypeText
}

func allOf(values []string, pred func(string) bool) bool {
	for _, v := range values {
		if !pred(v) {
			return false
		}
	}
	return true
}

func isInteger(v string) bool {
	_, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	return err == nil
}

func isReal(v string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	return err == nil
}

func isTimestamp(v string) bool {
	v = strings.TrimSpace(v)
	for _, layout := range timestampLayouts {
		if _, err := time.Parse(layout, v); err == nil {
			return true
		}
	}
	return false
}

// inferSchema pairs each normalized column name with the type inferred from
// that column's values, in source column order.
func inferSchema(tbl *types.ParsedTable, mapping *types.ColumnMapping) []types.Column {
	cols := make([]types.Column, len(mapping.Normalized))
	for i, name := range mapping.Normalized {
		cols[i] = types.Column{Name: name, Type: InferColumnType(tbl.Column(i))}
	}
	return cols
}
