package ingest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/davik/exportdb/pkg/types"
)

var (
	nonIdentifierRe = regexp.MustCompile(`[^A-Za-z0-9_]`)
	underscoreRunRe = regexp.MustCompile(`_+`)
)

// reservedRemap renames normalized identifiers that would collide with SQL
// keywords. Only exact matches are remapped; a header like "login_date"
// stays as it is.
var reservedRemap = map[string]string{
	"date": "date_col",
	"from": "col_from",
	"to":   "col_to",
	"text": "col_text",
}

// NormalizeHeader turns an original column header into a safe identifier:
// every character outside [A-Za-z0-9_] becomes an underscore, leading and
// trailing underscores are stripped, runs collapse to one, and the result is
// lowercased. A header with no identifier characters at all becomes "col".
// NormalizeHeader is a pure function of the header string.
func NormalizeHeader(header string) string {
	normalized := nonIdentifierRe.ReplaceAllString(header, "_")
	normalized = strings.Trim(normalized, "_")
	normalized = underscoreRunRe.ReplaceAllString(normalized, "_")
	normalized = strings.ToLower(normalized)

	if normalized == "" {
		normalized = "col"
	}
	if remapped, ok := reservedRemap[normalized]; ok {
		return remapped
	}
	return normalized
}

// BuildColumnMapping normalizes every header of one source file and returns
// the original-to-normalized mapping together with its precomputed reverse
// index. Two distinct headers that normalize to the same identifier are
// disambiguated deterministically with _2, _3, ... suffixes in header order;
// no column is ever dropped or overwritten.
func BuildColumnMapping(headers []string) *types.ColumnMapping {
	m := &types.ColumnMapping{
		Originals:    make([]string, len(headers)),
		Normalized:   make([]string, len(headers)),
		ToNormalized: make(map[string]string, len(headers)),
		Index:        make(map[string]int, len(headers)),
	}

	used := make(map[string]bool, len(headers))
	for i, h := range headers {
		name := NormalizeHeader(h)
		for n := 2; used[name]; n++ {
			name = fmt.Sprintf("%s_%d", NormalizeHeader(h), n)
		}
		used[name] = true

		m.Originals[i] = h
		m.Normalized[i] = name
		if _, seen := m.ToNormalized[h]; !seen {
			m.ToNormalized[h] = name
		}
		m.Index[name] = i
	}

	return m
}
