package pgtest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/salonpanel/salon-backend-go/internal/pkg/database"
	"github.com/stretchr/testify/require"
)

var migrationsDir = filepath.Join("..", "..", "..", "..", "db", "migrations")

// TestDatabaseSetup wraps a migrated, empty test database.
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and skips the test when it is unset.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn, database.DefaultPoolOptions)
	require.NoError(t, err, "failed to connect to test database")
	t.Cleanup(db.Close)

	require.NoError(t, db.Migrate(ctx, migrationsDir))

	setup := &TestDatabaseSetup{DB: db}
	require.NoError(t, setup.TruncateAllTables(ctx))
	return setup
}

// TruncateAllTables removes all rows from every application table.
func (s *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := s.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"refresh_tokens",
		"advance_requests",
		"salary_records",
		"transactions",
		"appointment_services",
		"appointments",
		"services",
		"customers",
		"employees",
	}

	for _, table := range tables {
		if _, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}
