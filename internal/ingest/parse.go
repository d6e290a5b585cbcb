// Package ingest implements the ingestion pipeline: the cascading parse
// strategy chain, column type inference, header normalization, row
// positioning, and the per-file orchestration loop.
package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/davik/exportdb/pkg/types"
)

// strategy is one parsing configuration in the chain. The default
// configurations treat any quote damage as a structural failure; the
// explicit-quoting configurations instead drop the offending line and keep
// going, which is what gives sloppily quoted files a second chance.
type strategy struct {
	name          string
	comma         rune
	lenientQuotes bool
	latin1        bool
	manual        bool
}

// strategies is the fixed priority order. The first strategy that parses the
// file without a structural error wins; later ones are not tried.
var strategies = []strategy{
	{name: "default utf-8", comma: ','},
	{name: "semicolon utf-8", comma: ';'},
	{name: "quoted utf-8", comma: ',', lenientQuotes: true},
	{name: "default latin-1", comma: ',', latin1: true},
	{name: "quoted latin-1", comma: ',', lenientQuotes: true, latin1: true},
	{name: "semicolon latin-1", comma: ';', latin1: true},
	{name: "manual fallback", manual: true},
}

// ParseFile reads one source file and runs it through the strategy chain.
// A strategy that frames the file successfully is accepted immediately, even
// if it dropped individual malformed lines along the way. If every strategy
// fails, the returned error wraps types.ErrUnparsableFile.
func ParseFile(path string, log *slog.Logger) (*types.ParsedTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}

	// NUL bytes mean a binary or non-Latin text encoding; no strategy in
	// the chain can frame those, so fail the file up front.
	if bytes.IndexByte(data, 0) >= 0 {
		return nil, fmt.Errorf("%s contains NUL bytes: %w", filepath.Base(path), types.ErrUnparsableFile)
	}

	for _, s := range strategies {
		tbl, err := s.parse(data, log)
		if err != nil {
			log.Debug("parse strategy failed",
				"file", filepath.Base(path), "strategy", s.name, "error", err)
			continue
		}
		log.Info("parsed file",
			"file", filepath.Base(path), "strategy", s.name,
			"columns", len(tbl.Headers), "rows", len(tbl.Rows))
		return tbl, nil
	}

	return nil, fmt.Errorf("%s: %w", filepath.Base(path), types.ErrUnparsableFile)
}

// parse attempts a single strategy. Malformed individual lines are dropped
// with a warning; anything else is structural for this attempt and sends the
// file to the next strategy in the chain.
func (s strategy) parse(data []byte, log *slog.Logger) (*types.ParsedTable, error) {
	if s.manual {
		return parseManual(data, log)
	}

	if s.latin1 {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("decoding latin-1: %w", err)
		}
		data = decoded
	} else if !utf8.Valid(data) {
		return nil, fmt.Errorf("invalid utf-8 encoding")
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = s.comma
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	tbl := &types.ParsedTable{Headers: header}
	dropped := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if s.lenientQuotes && isQuoteError(err) {
				log.Warn("dropping malformed line", "strategy", s.name, "error", err)
				dropped++
				continue
			}
			return nil, fmt.Errorf("reading record: %w", err)
		}
		row, ok := fitToWidth(rec, len(header))
		if !ok {
			log.Warn("dropping malformed line", "strategy", s.name, "fields", len(rec), "want", len(header))
			dropped++
			continue
		}
		tbl.Rows = append(tbl.Rows, row)
	}

	// An attempt that had to drop every data line framed nothing; let a
	// later strategy try instead of accepting an empty table.
	if dropped > 0 && len(tbl.Rows) == 0 {
		return nil, fmt.Errorf("every data line malformed (%d dropped)", dropped)
	}

	return tbl, nil
}

// isQuoteError reports whether err is quote damage in a single record, as
// opposed to a framing failure.
func isQuoteError(err error) bool {
	return errors.Is(err, csv.ErrQuote) || errors.Is(err, csv.ErrBareQuote)
}

// parseManual is the last-resort strategy: read raw lines, strip blank ones,
// and split each line on commas that are not inside a double-quoted span.
// The first line is the header row.
func parseManual(data []byte, log *slog.Logger) (*types.ParsedTable, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("invalid utf-8 encoding")
	}

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("no non-blank lines")
	}

	header := splitOutsideQuotes(lines[0])
	for i, h := range header {
		header[i] = stripSurroundingQuotes(h)
	}

	tbl := &types.ParsedTable{Headers: header}
	for _, line := range lines[1:] {
		fields := splitOutsideQuotes(line)
		for i, f := range fields {
			fields[i] = stripSurroundingQuotes(f)
		}
		row, ok := fitToWidth(fields, len(header))
		if !ok {
			log.Warn("dropping malformed line", "strategy", "manual fallback", "fields", len(fields), "want", len(header))
			continue
		}
		tbl.Rows = append(tbl.Rows, row)
	}

	return tbl, nil
}

// fitToWidth pads a short record with nulls to the header width. Records
// wider than the header are malformed lines; the caller drops them.
func fitToWidth(rec []string, width int) ([]string, bool) {
	if len(rec) > width {
		return nil, false
	}
	row := make([]string, width)
	copy(row, rec)
	return row, true
}

// splitOutsideQuotes splits line on commas outside double-quoted spans.
func splitOutsideQuotes(line string) []string {
	var fields []string
	var b strings.Builder
	inQuote := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
			b.WriteRune(r)
		case r == ',' && !inQuote:
			fields = append(fields, b.String())
			b.Reset()
		default:
			b.WriteRune(r)
		}
	}
	fields = append(fields, b.String())
	return fields
}

// stripSurroundingQuotes removes one pair of wrapping double quotes.
func stripSurroundingQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// dropNullLeadingRows removes rows whose first column is null or empty.
// Such rows are structurally invalid regardless of which strategy parsed
// the file.
func dropNullLeadingRows(tbl *types.ParsedTable) {
	if len(tbl.Headers) == 0 {
		return
	}
	kept := tbl.Rows[:0]
	for _, row := range tbl.Rows {
		if row[0] == "" {
			continue
		}
		kept = append(kept, row)
	}
	tbl.Rows = kept
}
