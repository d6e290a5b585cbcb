// Package paths resolves the configuration directory, the source input
// directory, and the database file location.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// CWD-relative defaults for the two ingestion parameters.
const (
	DefaultInputDirName = "exports"
	DefaultDBFileName   = "export_data.db"
)

// Environment variable names for overrides.
const (
	EnvConfigDir = "EXPORTDB_CONFIG_DIR"
	EnvInputDir  = "EXPORTDB_INPUT_DIR"
	EnvDBPath    = "EXPORTDB_DB_PATH"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/exportdb (fallback ~/.config/exportdb)
// macOS:   ~/Library/Application Support/exportdb
// Windows: %APPDATA%/exportdb
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "exportdb"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "exportdb"), nil
	default:
		// macOS and Windows use os.UserConfigDir which returns
		// ~/Library/Application Support on macOS and %APPDATA% on Windows.
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "exportdb"), nil
	}
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > EXPORTDB_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveInputDir returns the source directory following the precedence
// chain: flag > config.yaml input_dir > EXPORTDB_INPUT_DIR env >
// $(CWD)/exports.
func ResolveInputDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvInputDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultInputDirName), nil
}

// ResolveDBPath returns the database file path following the precedence
// chain: flag > config.yaml db_path > EXPORTDB_DB_PATH env >
// $(CWD)/export_data.db.
func ResolveDBPath(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvDBPath); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDBFileName), nil
}
