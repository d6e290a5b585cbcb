// Tables command: list tables in the store.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List all tables in the database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		names, err := store.Tables()
		if err != nil {
			return fmt.Errorf("list tables: %w", err)
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}
