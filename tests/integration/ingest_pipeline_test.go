// End-to-end tests for the ingestion pipeline and the query commands,
// driving the built binary the way a user would.
package integration

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TestMain builds the exportdb binary once before running tests.
func TestMain(m *testing.M) {
	projectRoot, err := FindProjectRoot()
	if err != nil {
		SetBuildErr(err)
		os.Exit(1)
	}

	tmpDir, err := os.MkdirTemp("", "exportdb-test-*")
	if err != nil {
		SetBuildErr(err)
		os.Exit(1)
	}
	binPath := filepath.Join(tmpDir, "exportdb")
	SetExportdbBin(binPath)

	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/exportdb")
	cmd.Dir = projectRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		SetBuildErr(&BuildError{
			Err:    err,
			Output: string(output),
		})
		os.Exit(1)
	}

	code := m.Run()

	os.RemoveAll(tmpDir)

	os.Exit(code)
}

// Test1_IngestLoadsExports verifies the full pipeline: two well-formed files
// become two tables, and the summary reports both loaded.
func Test1_IngestLoadsExports(t *testing.T) {
	env := NewTestEnv(t)
	env.WriteExport("Connections.csv",
		"First Name,Last Name,Connected On\nAda,Lovelace,2020-01-15\nAlan,Turing,2021-06-30\n")
	env.WriteExport("Saved Jobs.csv", "Job Title,Company\nEngineer,Initech\n")

	result := env.MustRunExportdb("ingest")
	if !strings.Contains(result.Stdout, "2 loaded, 0 skipped, 0 failed") {
		t.Errorf("unexpected summary: %q", result.Stdout)
	}

	tables := env.MustRunExportdb("tables")
	for _, want := range []string{"connections", "saved_jobs", "ingest_runs", "ingest_run_files"} {
		if !strings.Contains(tables.Stdout, want) {
			t.Errorf("tables output missing %q:\n%s", want, tables.Stdout)
		}
	}
}

// Test2_ShowPrintsSchemaAndRows verifies column normalization, inferred
// types, and row output of the show command.
func Test2_ShowPrintsSchemaAndRows(t *testing.T) {
	env := NewTestEnv(t)
	env.WriteExport("Connections.csv",
		"First Name,Last Name,Connected On\nAda,Lovelace,2020-01-15\n")
	env.MustRunExportdb("ingest")

	result := env.MustRunExportdb("show", "connections")
	for _, want := range []string{"first_name TEXT", "last_name TEXT", "connected_on TIMESTAMP"} {
		if !strings.Contains(result.Stdout, want) {
			t.Errorf("show output missing schema line %q:\n%s", want, result.Stdout)
		}
	}
	if !strings.Contains(result.Stdout, "Lovelace") {
		t.Errorf("show output missing row data:\n%s", result.Stdout)
	}
}

// Test3_SearchFindsRows verifies the cross-table substring scan.
func Test3_SearchFindsRows(t *testing.T) {
	env := NewTestEnv(t)
	env.WriteExport("contacts.csv", "Name,Company\nAda Lovelace,Analytical Engines\nAlan Turing,Bletchley\n")
	env.MustRunExportdb("ingest")

	result := env.MustRunExportdb("search", "lovelace")
	hits := ParseJSON[[]SearchHit](t, result.Stdout)
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d:\n%s", len(hits), result.Stdout)
	}
	if hits[0].Table != "contacts" {
		t.Errorf("hit table mismatch: got %q", hits[0].Table)
	}
	if hits[0].Row["name"] != "Ada Lovelace" {
		t.Errorf("hit row mismatch: got %v", hits[0].Row)
	}
}

// Test4_IngestSkipsUnparsable verifies failure isolation: a file full of
// binary garbage is skipped, the rest of the run succeeds, and the process
// still exits zero.
func Test4_IngestSkipsUnparsable(t *testing.T) {
	env := NewTestEnv(t)
	env.WriteExport("good.csv", "id,note\n1,hello\n")
	env.WriteExport("bad.csv", "a,b\n\x00\x01\x02garbage\n")

	result := env.MustRunExportdb("ingest")
	if !strings.Contains(result.Stdout, "1 loaded, 1 skipped, 0 failed") {
		t.Errorf("unexpected summary: %q", result.Stdout)
	}

	tables := env.MustRunExportdb("tables")
	if !strings.Contains(tables.Stdout, "good") {
		t.Errorf("good table missing:\n%s", tables.Stdout)
	}
	if strings.Contains(tables.Stdout, "bad") {
		t.Errorf("bad file should not produce a table:\n%s", tables.Stdout)
	}
}

// Test5_ReingestReplacesTables verifies the destructive refresh: a second
// run with a reshaped file fully replaces the old table.
func Test5_ReingestReplacesTables(t *testing.T) {
	env := NewTestEnv(t)
	env.WriteExport("people.csv", "Name,Age\nalice,30\n")
	env.MustRunExportdb("ingest")

	env.WriteExport("people.csv", "Email\nalice@example.com\n")
	env.MustRunExportdb("ingest")

	result := env.MustRunExportdb("show", "people")
	if !strings.Contains(result.Stdout, "email TEXT") {
		t.Errorf("replaced schema missing:\n%s", result.Stdout)
	}
	if strings.Contains(result.Stdout, "age") {
		t.Errorf("old schema survived the refresh:\n%s", result.Stdout)
	}
	if !strings.Contains(result.Stdout, "alice@example.com") {
		t.Errorf("replaced rows missing:\n%s", result.Stdout)
	}
}

// Test6_ConfigFileCreatedOnFirstRun verifies that a default config.yaml is
// written into the config directory.
func Test6_ConfigFileCreatedOnFirstRun(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRunExportdb("version")

	if _, err := os.Stat(filepath.Join(env.ConfigDir, "config.yaml")); err != nil {
		t.Errorf("config.yaml not created: %v", err)
	}
}
