package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hostmaint/hostmaint/adapters/store/inmem"
	"github.com/hostmaint/hostmaint/adapters/store/rdb"
	"github.com/hostmaint/hostmaint/domain"
)

// buildRunRepository creates the run history repository based on db-url.
// memory: keeps runs for the lifetime of the process only.
func buildRunRepository(cmd *cobra.Command) (domain.RunRepository, error) {
	dbURL := flagString(cmd, "db-url", "memory:")

	switch {
	case dbURL == "memory:":
		return inmem.NewStore().RunRepo, nil

	case strings.HasPrefix(dbURL, "sqlite:") || strings.HasPrefix(dbURL, "sqlite3:"),
		strings.HasPrefix(dbURL, "postgres://") || strings.HasPrefix(dbURL, "postgresql://"):
		db, err := rdb.OpenFromURL(dbURL)
		if err != nil {
			return nil, err
		}
		if err := rdb.AutoMigrate(db); err != nil {
			return nil, err
		}
		return rdb.NewRunRepository(db), nil

	default:
		return nil, fmt.Errorf("unsupported db scheme: %s", dbURL)
	}
}
