// Package pgtest provides a disposable PostgreSQL database for repository tests.
package pgtest

import (
	"context"
	"os"
	"testing"

	"github.com/fekuna/stockflow-console/internal/database/postgres"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

const image = "postgres:16-alpine"

// Open connects to POSTGRES_TEST_DSN when set. Otherwise it starts a
// PostgreSQL container for the test, skipping only when no container
// runtime is available. The schema is applied before returning.
func Open(t *testing.T, schema string) *sqlx.DB {
	t.Helper()

	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		dsn = startContainer(t)
	}

	db, err := postgres.Open(dsn, nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(schema)
	require.NoError(t, err)
	return db
}

func startContainer(t *testing.T) string {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, image,
		tcpostgres.WithDatabase("stockflow"),
		tcpostgres.WithUsername("stockflow"),
		tcpostgres.WithPassword("stockflow"),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err, "start postgres container")

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return dsn
}
