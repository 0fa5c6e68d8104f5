package database

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// Migrate executes every *.sql file in dir in lexical order. The scripts are
// written to be idempotent, so running them on each start is safe.
func (db *DB) Migrate(ctx context.Context, dir string) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	if len(files) == 0 {
		slog.Warn("No migration files found", "dir", dir)
		return nil
	}
	sort.Strings(files)

	for _, file := range files {
		script, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", file, err)
		}
		if _, err := db.Exec(ctx, string(script)); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", file, err)
		}
		slog.Info("Migration applied", "file", filepath.Base(file))
	}
	return nil
}
