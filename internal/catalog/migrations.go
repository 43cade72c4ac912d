package catalog

import (
	"context"
	"embed"

	"github.com/code19m/errx"
	"github.com/uptrace/bun"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations applies the catalog schema. Statements are idempotent, so
// running them on every startup is safe.
func RunMigrations(ctx context.Context, db *bun.DB) error {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return errx.Wrap(err)
	}

	for _, entry := range entries {
		migrationSQL, err := migrationsFS.ReadFile("migrations/" + entry.Name())
		if err != nil {
			return errx.Wrap(err)
		}

		if _, err := db.ExecContext(ctx, string(migrationSQL)); err != nil {
			return errx.Wrap(err)
		}
	}

	return nil
}
