package ingest

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/davik/exportdb/internal/sqlite"
	"github.com/davik/exportdb/pkg/types"
)

// Per-file outcome statuses recorded in the run manifest.
const (
	StatusLoaded  = "loaded"
	StatusSkipped = "skipped_unparsable"
	StatusFailed  = "failed"
)

// FileResult is the outcome of processing one source file.
type FileResult struct {
	Path   string
	Table  string
	Rows   int
	Status string
	Err    error
}

// Summary is the outcome of one orchestration run.
type Summary struct {
	RunID   string
	Files   []FileResult
	Loaded  int
	Skipped int
	Failed  int
}

// Runner drives source files through the ingestion pipeline one at a time.
// The store connection it holds is opened before the run and closed after
// it by the caller; the Runner itself never closes it.
type Runner struct {
	store *sqlite.Store
	log   *slog.Logger
}

// NewRunner returns a Runner writing to store and logging to log.
func NewRunner(store *sqlite.Store, log *slog.Logger) *Runner {
	return &Runner{store: store, log: log}
}

// Run discovers every .csv file under inputDir recursively and processes
// each one inside its own failure boundary: a file that cannot be parsed or
// loaded is logged and skipped, and the run moves on to the next file. Only
// an unreadable input root is fatal. Files are processed strictly
// sequentially, in discovery order.
func (r *Runner) Run(inputDir string) (*Summary, error) {
	files, err := DiscoverFiles(inputDir)
	if err != nil {
		return nil, fmt.Errorf("discovering source files: %w", err)
	}

	summary := &Summary{RunID: newRunID()}
	r.log.Info("starting ingestion run",
		"run_id", summary.RunID, "input_dir", inputDir, "files", len(files))

	if err := r.store.BeginRun(summary.RunID, time.Now().UTC(), len(files)); err != nil {
		r.log.Warn("recording run start failed", "run_id", summary.RunID, "error", err)
	}

	for _, path := range files {
		res := r.processFile(path)
		summary.Files = append(summary.Files, res)

		switch res.Status {
		case StatusLoaded:
			summary.Loaded++
			r.log.Info("loaded file", "file", filepath.Base(path), "table", res.Table, "rows", res.Rows)
		case StatusSkipped:
			summary.Skipped++
			r.log.Warn("skipping unparsable file", "file", filepath.Base(path), "error", res.Err)
		default:
			summary.Failed++
			r.log.Error("file failed", "file", filepath.Base(path), "table", res.Table, "error", res.Err)
		}

		errText := ""
		if res.Err != nil {
			errText = res.Err.Error()
		}
		if err := r.store.RecordFile(summary.RunID, path, res.Table, res.Status, res.Rows, errText); err != nil {
			r.log.Warn("recording file outcome failed", "file", filepath.Base(path), "error", err)
		}
	}

	if err := r.store.FinishRun(summary.RunID, time.Now().UTC(),
		summary.Loaded, summary.Skipped, summary.Failed); err != nil {
		r.log.Warn("recording run finish failed", "run_id", summary.RunID, "error", err)
	}

	r.log.Info("ingestion run complete", "run_id", summary.RunID,
		"loaded", summary.Loaded, "skipped", summary.Skipped, "failed", summary.Failed)
	return summary, nil
}

// processFile takes one source file through parse, inference, normalization,
// schema refresh, and load. Any error abandons only this file.
func (r *Runner) processFile(path string) FileResult {
	table := TableNameForFile(path)
	res := FileResult{Path: path, Table: table}

	tbl, err := ParseFile(path, r.log)
	if err != nil {
		res.Err = err
		if errors.Is(err, types.ErrUnparsableFile) {
			res.Status = StatusSkipped
		} else {
			res.Status = StatusFailed
		}
		return res
	}

	dropNullLeadingRows(tbl)

	mapping := BuildColumnMapping(tbl.Headers)
	schema := inferSchema(tbl, mapping)

	if err := r.store.Replace(table, schema); err != nil {
		res.Status = StatusFailed
		res.Err = err
		return res
	}

	// The created schema, not the parsed table, dictates insert order.
	dbColumns, err := r.store.TableColumns(table)
	if err != nil {
		res.Status = StatusFailed
		res.Err = fmt.Errorf("reading back columns of %s: %w", table, err)
		return res
	}

	rows := BuildRows(tbl, mapping, schema, dbColumns)
	if err := r.store.InsertRows(table, dbColumns, rows); err != nil {
		res.Status = StatusFailed
		res.Err = err
		return res
	}

	res.Status = StatusLoaded
	res.Rows = len(rows)
	return res
}

// DiscoverFiles returns all files with a .csv extension (case-insensitive)
// under root, recursively, in walk order.
func DiscoverFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".csv") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// TableNameForFile derives the destination table name from the file's base
// name: extension removed, lowercased, spaces replaced with underscores.
func TableNameForFile(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return strings.ReplaceAll(strings.ToLower(stem), " ", "_")
}

// newRunID returns a UUIDv7 run identifier, falling back to v4 if the
// monotonic source fails.
func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
