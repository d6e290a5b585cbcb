// Shared helpers for exportdb CLI commands.
package main

import (
	"fmt"

	"github.com/davik/exportdb/internal/sqlite"
)

// openStore resolves the database path and opens the store. The caller must
// defer store.Close().
func openStore() (*sqlite.Store, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve db path: %w", err)
	}

	store, err := sqlite.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return store, nil
}
