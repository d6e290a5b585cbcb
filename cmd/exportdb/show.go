// Show command: print a table's columns and rows.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var flagShowLimit int

var showCmd = &cobra.Command{
	Use:   "show <table>",
	Short: "Print a table's columns and rows",
	Long: `Show prints the table's schema followed by its rows as JSON, in the
column order the store created. Use --limit to cap the number of rows;
a limit of 0 prints all rows.

Example:
  exportdb show connections
  exportdb show messages --limit 10`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().IntVar(&flagShowLimit, "limit", 0, "maximum rows to print (0 = all)")
}

func runShow(cmd *cobra.Command, args []string) error {
	table := args[0]

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	schema, err := store.Describe(table)
	if err != nil {
		return fmt.Errorf("describe table: %w", err)
	}
	if len(schema) == 0 {
		return fmt.Errorf("unknown table %q", table)
	}
	for _, c := range schema {
		fmt.Printf("%s %s\n", c.Name, c.Type)
	}

	cols, rows, err := store.ReadRows(table, flagShowLimit)
	if err != nil {
		return fmt.Errorf("read rows: %w", err)
	}

	out := make([]map[string]any, len(rows))
	for i, row := range rows {
		m := make(map[string]any, len(cols))
		for j, c := range cols {
			m[c] = row[j]
		}
		out[i] = m
	}

	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal rows: %w", err)
	}
	fmt.Println(string(encoded))
	return nil
}
