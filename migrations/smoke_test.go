package migrations_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/goliatone/go-polls/migrations"
)

func TestMigrationsApplyToSQLite(t *testing.T) {
	t.Parallel()

	db := openSQLite(t)
	ctx := context.Background()
	if len(migrations.Filesystems()) == 0 {
		t.Fatal("expected registered migration filesystems")
	}
	if err := migrations.Apply(ctx, db, "sqlite"); err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}
	if err := migrations.ValidateSchema(ctx, db, "sqlite"); err != nil {
		t.Fatalf("schema validation failed: %v", err)
	}
}

func TestValidateSchemaReportsMissingTables(t *testing.T) {
	t.Parallel()

	db := openSQLite(t)
	err := migrations.ValidateSchema(context.Background(), db, "sqlite")
	var schemaErr *migrations.SchemaValidationError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected schema validation error, got %v", err)
	}
	if len(schemaErr.MissingTables) != len(migrations.DefaultSchemaChecks) {
		t.Fatalf("expected %d missing tables, got %v", len(migrations.DefaultSchemaChecks), schemaErr.MissingTables)
	}
}

func TestUpMigrationsPerDialect(t *testing.T) {
	t.Parallel()

	sqlite, err := migrations.UpMigrations("sqlite3")
	if err != nil {
		t.Fatalf("sqlite migrations: %v", err)
	}
	postgres, err := migrations.UpMigrations("postgres")
	if err != nil {
		t.Fatalf("postgres migrations: %v", err)
	}
	if len(sqlite) == 0 || len(sqlite) != len(postgres) {
		t.Fatalf("expected matching migration sets, got sqlite=%d postgres=%d", len(sqlite), len(postgres))
	}
	for i := 1; i < len(sqlite); i++ {
		if sqlite[i-1].Name >= sqlite[i].Name {
			t.Fatalf("migrations out of order: %s before %s", sqlite[i-1].Name, sqlite[i].Name)
		}
	}
	if sqlite[0].Name != "00001_profiles.up.sql" {
		t.Fatalf("unexpected first migration %s", sqlite[0].Name)
	}

	if _, err := migrations.UpMigrations("mysql"); err == nil {
		t.Fatal("expected unsupported dialect error")
	}
}

func TestStatementsSkipsCommentsAndBlanks(t *testing.T) {
	t.Parallel()

	script := "-- header; not a statement\nCREATE TABLE a (id TEXT);\n\n  ;\nCREATE INDEX a_id ON a (id);\n"
	got := migrations.Statements(script)
	want := []string{"CREATE TABLE a (id TEXT)", "CREATE INDEX a_id ON a (id)"}
	if len(got) != len(want) {
		t.Fatalf("expected %d statements, got %q", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("statement %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}
