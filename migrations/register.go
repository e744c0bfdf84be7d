package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
)

var (
	mu          sync.RWMutex
	filesystems []fs.FS
)

// Register adds a filesystem of polls migrations. Postgres files live at the
// root of fsys and SQLite overrides under sqlite/.
func Register(fsys fs.FS) {
	if fsys == nil {
		return
	}
	mu.Lock()
	filesystems = append(filesystems, fsys)
	mu.Unlock()
}

// Filesystems returns a copy of the registered filesystems, ready to hand to
// go-persistence-bun or another runner.
func Filesystems() []fs.FS {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]fs.FS, len(filesystems))
	copy(out, filesystems)
	return out
}

// Migration is one up script.
type Migration struct {
	Name string
	SQL  string
}

// UpMigrations collects the up scripts for dialect ("postgres" or "sqlite")
// across every registered filesystem, ordered by file name.
func UpMigrations(dialect string) ([]Migration, error) {
	dir := "."
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "sqlite", "sqlite3":
		dir = "sqlite"
	case "postgres", "postgresql":
	default:
		return nil, fmt.Errorf("migrations: unsupported dialect %q", dialect)
	}
	var out []Migration
	for _, fsys := range Filesystems() {
		names, err := fs.Glob(fsys, path.Join(dir, "*.up.sql"))
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			content, err := fs.ReadFile(fsys, name)
			if err != nil {
				return nil, fmt.Errorf("read migration %s: %w", name, err)
			}
			out = append(out, Migration{Name: path.Base(name), SQL: string(content)})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Execer is satisfied by *sql.DB, *sql.Tx, *bun.DB and bun.Tx.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Apply runs every up migration for dialect, one statement at a time. It
// keeps no version table; use it for tests and demos, not upgrades.
func Apply(ctx context.Context, db Execer, dialect string) error {
	migrations, err := UpMigrations(dialect)
	if err != nil {
		return err
	}
	for _, m := range migrations {
		for _, stmt := range Statements(m.SQL) {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("apply %s: %w", m.Name, err)
			}
		}
	}
	return nil
}

// Statements splits a script on semicolons, dropping comment lines and blank
// statements.
func Statements(script string) []string {
	var kept []string
	for _, line := range strings.Split(script, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		kept = append(kept, line)
	}
	parts := strings.Split(strings.Join(kept, "\n"), ";")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
