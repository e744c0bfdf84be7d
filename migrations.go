package polls

import "embed"

// MigrationsFS holds the polls schema for PostgreSQL (data/sql/migrations)
// and SQLite (data/sql/migrations/sqlite). Both sets carry the same version
// numbers so dialect aware runners can swap one for the other.
//
// Hosts using go-persistence-bun register the tree directly:
//
//	migrationsFS, _ := fs.Sub(polls.GetMigrationsFS(), "data/sql/migrations")
//	client.RegisterDialectMigrations(
//	    migrationsFS,
//	    persistence.WithDialectSourceLabel("."),
//	    persistence.WithValidationTargets("postgres", "sqlite"),
//	)
//
// The migrations package registers the same tree on import and can apply it
// without a runner for tests and demos.
//
//go:embed data/sql/migrations/*.sql data/sql/migrations/sqlite/*.sql
var MigrationsFS embed.FS
