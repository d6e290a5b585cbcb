package sqlite

import (
	"fmt"
	"time"
)

// BeginRun records the start of an orchestration run in the manifest.
func (s *Store) BeginRun(runID string, startedAt time.Time, filesTotal int) error {
	_, err := s.db.Exec(
		"INSERT INTO ingest_runs (run_id, started_at, files_total) VALUES (?, ?, ?)",
		runID, startedAt.Format(time.RFC3339), filesTotal)
	if err != nil {
		return fmt.Errorf("recording run start: %w", err)
	}
	return nil
}

// RecordFile records one source file's outcome for the given run.
func (s *Store) RecordFile(runID, path, tableName, status string, rowCount int, errText string) error {
	_, err := s.db.Exec(
		"INSERT INTO ingest_run_files (run_id, path, table_name, status, row_count, error) VALUES (?, ?, ?, ?, ?, ?)",
		runID, path, tableName, status, rowCount, errText)
	if err != nil {
		return fmt.Errorf("recording file outcome: %w", err)
	}
	return nil
}

// FinishRun records the end of a run and its summary counters.
func (s *Store) FinishRun(runID string, finishedAt time.Time, loaded, skipped, failed int) error {
	_, err := s.db.Exec(
		"UPDATE ingest_runs SET finished_at = ?, files_loaded = ?, files_skipped = ?, files_failed = ? WHERE run_id = ?",
		finishedAt.Format(time.RFC3339), loaded, skipped, failed, runID)
	if err != nil {
		return fmt.Errorf("recording run finish: %w", err)
	}
	return nil
}
