// Root command for the exportdb CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/davik/exportdb/internal/paths"
)

// Global flag values.
var (
	flagConfigDir string
	flagInputDir  string
	flagDBPath    string
	flagLogLevel  string
	flagLogFormat string
)

// Values loaded from config.yaml by PersistentPreRunE so all subcommands
// can use them.
var (
	configInputDir string
	configDBPath   string
)

var rootCmd = &cobra.Command{
	Use:   "exportdb",
	Short: "exportdb loads tabular export files into a SQLite database",
	Long: `exportdb ingests directories of CSV export files into a single SQLite
database, one table per file, inferring column types from the data and
normalizing headers into safe identifiers. Malformed files are retried
through a chain of progressively more tolerant parsers.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configInputDir = cfg.GetString(cfgKeyInputDir)
		configDBPath = cfg.GetString(cfgKeyDBPath)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagInputDir, "input-dir", "", "directory containing export CSV files (default: $(CWD)/exports)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db-path", "", "SQLite database file (default: $(CWD)/export_data.db)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "log format (text, json)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(searchCmd)
}

// resolveConfigDir returns the configuration directory following the
// precedence: --config-dir flag > EXPORTDB_CONFIG_DIR env > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// resolveInputDir returns the input directory following the precedence:
// --input-dir flag > config.yaml input_dir > EXPORTDB_INPUT_DIR env > default.
func resolveInputDir() (string, error) {
	return paths.ResolveInputDir(flagInputDir, configInputDir)
}

// resolveDBPath returns the database path following the precedence:
// --db-path flag > config.yaml db_path > EXPORTDB_DB_PATH env > default.
func resolveDBPath() (string, error) {
	return paths.ResolveDBPath(flagDBPath, configDBPath)
}
