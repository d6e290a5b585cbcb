package types

import "errors"

// Config holds the two ingestion parameters: where the source files live and
// where the SQLite store file goes.
type Config struct {
	InputDir string `json:"input_dir" yaml:"input_dir"`
	DBPath   string `json:"db_path" yaml:"db_path"`
}

// Config validation errors.
var (
	ErrInputDirEmpty = errors.New("input directory must not be empty")
	ErrDBPathEmpty   = errors.New("database path must not be empty")
)

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.InputDir == "" {
		return ErrInputDirEmpty
	}
	if c.DBPath == "" {
		return ErrDBPathEmpty
	}
	return nil
}
