// Search command: substring scan across all tables.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Scan every table for rows containing a substring",
	Long: `Search performs a case-insensitive substring scan over all rows and
columns of every table and prints the matching rows as JSON.

Example:
  exportdb search "jane.doe@example.com"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		hits, err := store.Search(args[0])
		if err != nil {
			return fmt.Errorf("search: %w", err)
		}

		encoded, err := json.MarshalIndent(hits, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal hits: %w", err)
		}
		fmt.Println(string(encoded))
		return nil
	},
}
