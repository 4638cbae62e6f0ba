package initializers

import (
	"context"
	"fmt"
	"log"

	"github.com/Kariqs/kartdaily-api/store"
)

// SyncDatabase creates tables or indexes for the selected store.
func SyncDatabase(ctx context.Context, db store.Store) error {
	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to sync database: %w", err)
	}
	log.Println("Database synced successfully.")
	return nil
}
