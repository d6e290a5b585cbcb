// Ingest command: run the full ingestion pipeline over the input directory.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/davik/exportdb/internal/ingest"
	"github.com/davik/exportdb/internal/logging"
	"github.com/davik/exportdb/pkg/types"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Load all CSV files under the input directory into the database",
	Long: `Ingest discovers every .csv file under the input directory recursively
and loads each one into its own table, replacing any previous table of the
same name. A file that cannot be parsed or loaded is logged and skipped;
the run continues with the next file and exits successfully.

Example:
  exportdb ingest
  exportdb ingest --input-dir ./exports --db-path ./export_data.db`,
	Args: cobra.NoArgs,
	RunE: runIngest,
}

func runIngest(cmd *cobra.Command, args []string) error {
	inputDir, err := resolveInputDir()
	if err != nil {
		return fmt.Errorf("resolve input dir: %w", err)
	}
	dbPath, err := resolveDBPath()
	if err != nil {
		return fmt.Errorf("resolve db path: %w", err)
	}

	cfg := types.Config{InputDir: inputDir, DBPath: dbPath}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logging.Setup(flagLogLevel, flagLogFormat)

	// The store connection is the run's only shared resource: opened once
	// here, closed once after the last file. Failure to open is the one
	// error fatal to the whole run.
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := ingest.NewRunner(store, log).Run(cfg.InputDir)
	if err != nil {
		return err
	}

	fmt.Printf("run %s: %d loaded, %d skipped, %d failed (of %d files)\n",
		summary.RunID, summary.Loaded, summary.Skipped, summary.Failed, len(summary.Files))
	return nil
}
