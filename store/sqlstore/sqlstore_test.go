package sqlstore

import (
	"context"
	"testing"

	"github.com/Kariqs/kartdaily-api/store"
	"github.com/Kariqs/kartdaily-api/store/storetest"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mysql"
)

func setupTestDB(t *testing.T) (*DB, func()) {
	ctx := context.Background()

	mysqlContainer, err := mysql.Run(ctx, "mysql:8.0.36")
	require.NoError(t, err)

	dsn, err := mysqlContainer.ConnectionString(ctx, "parseTime=true")
	require.NoError(t, err)

	db, err := Connect(dsn)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(ctx))

	cleanup := func() {
		_ = db.Close(ctx)
		if err := mysqlContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}
	return db, cleanup
}

func TestConformance(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	db, cleanup := setupTestDB(t)
	defer cleanup()

	storetest.Run(t, func(t *testing.T) store.Store {
		for _, table := range []string{"orders", "products", "users"} {
			require.NoError(t, db.db.Exec("DELETE FROM "+table).Error)
		}
		return db
	})
}
