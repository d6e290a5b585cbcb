// Package integration provides end-to-end tests that drive the built
// exportdb binary against real input directories and database files.
package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

var (
	// exportdbBin is the path to the built exportdb binary.
	exportdbBin string
	// buildErr captures any build error.
	buildErr error
)

// BuildError wraps a build error with output.
type BuildError struct {
	Err    error
	Output string
}

func (e *BuildError) Error() string {
	return e.Err.Error() + ": " + e.Output
}

// FindProjectRoot finds the project root by walking up and looking for go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		goModPath := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// SetExportdbBin sets the path to the exportdb binary (called from TestMain).
func SetExportdbBin(path string) {
	exportdbBin = path
}

// SetBuildErr sets the build error (called from TestMain).
func SetBuildErr(err error) {
	buildErr = err
}

// TestEnv provides an isolated test environment with its own config
// directory, input directory, and database file.
type TestEnv struct {
	t         *testing.T
	TempDir   string
	ConfigDir string
	InputDir  string
	DBPath    string
}

// NewTestEnv creates a new isolated test environment.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	if buildErr != nil {
		t.Fatalf("failed to build exportdb: %v", buildErr)
	}
	if exportdbBin == "" {
		t.Fatal("exportdb binary not built (exportdbBin is empty)")
	}

	tempDir := t.TempDir()
	inputDir := filepath.Join(tempDir, "exports")
	configDir := filepath.Join(tempDir, "config")

	if err := os.MkdirAll(inputDir, 0755); err != nil {
		t.Fatalf("failed to create input dir: %v", err)
	}
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}

	return &TestEnv{
		t:         t,
		TempDir:   tempDir,
		ConfigDir: configDir,
		InputDir:  inputDir,
		DBPath:    filepath.Join(tempDir, "export_data.db"),
	}
}

// WriteExport writes a source file into the environment's input directory.
func (e *TestEnv) WriteExport(name, content string) {
	e.t.Helper()
	if err := os.WriteFile(filepath.Join(e.InputDir, name), []byte(content), 0644); err != nil {
		e.t.Fatalf("failed to write export %s: %v", name, err)
	}
}

// CmdResult holds the result of an exportdb command execution.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// RunExportdb executes the exportdb CLI with the given arguments.
func (e *TestEnv) RunExportdb(args ...string) CmdResult {
	e.t.Helper()

	allArgs := append([]string{
		"--config-dir", e.ConfigDir,
		"--input-dir", e.InputDir,
		"--db-path", e.DBPath,
	}, args...)
	cmd := exec.Command(exportdbBin, allArgs...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			e.t.Fatalf("failed to run exportdb: %v", err)
		}
	}

	return CmdResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}

// MustRunExportdb executes the exportdb CLI and fails the test if it returns
// non-zero.
func (e *TestEnv) MustRunExportdb(args ...string) CmdResult {
	e.t.Helper()
	result := e.RunExportdb(args...)
	if result.ExitCode != 0 {
		e.t.Fatalf("exportdb %v failed with exit code %d:\nstdout: %s\nstderr: %s",
			args, result.ExitCode, result.Stdout, result.Stderr)
	}
	return result
}

// ParseJSON parses JSON output into the target type.
func ParseJSON[T any](t *testing.T, jsonStr string) T {
	t.Helper()
	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		t.Fatalf("failed to parse JSON %q: %v", jsonStr, err)
	}
	return result
}

// SearchHit mirrors the JSON shape printed by the search command.
type SearchHit struct {
	Table string         `json:"table"`
	Row   map[string]any `json:"row"`
}
