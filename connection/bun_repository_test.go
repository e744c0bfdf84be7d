package connection

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-polls/pkg/types"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func TestRepository_CreateRejectsSelfConnection(t *testing.T) {
	db := newTestDB(t)
	applyDDL(t, db)
	user := seedProfile(t, db)

	repo, err := NewRepository(RepositoryConfig{DB: db})
	require.NoError(t, err)

	_, err = repo.CreateConnection(context.Background(), types.Connection{User1: user, User2: user})
	require.Error(t, err)
	require.True(t, goerrors.IsValidation(err))

	var richErr *goerrors.Error
	require.ErrorAs(t, err, &richErr)
	require.Equal(t, types.TextCodeSelfConnection, richErr.TextCode)

	count, err := db.NewSelect().Table("connections").Count(context.Background())
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestRepository_CreateIsIdempotentInBothDirections(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	applyDDL(t, db)
	a := seedProfile(t, db)
	b := seedProfile(t, db)

	repo, err := NewRepository(RepositoryConfig{DB: db})
	require.NoError(t, err)

	first, err := repo.CreateConnection(ctx, types.Connection{User1: a, User2: b})
	require.NoError(t, err)
	again, err := repo.CreateConnection(ctx, types.Connection{User1: a, User2: b})
	require.NoError(t, err)
	reversed, err := repo.CreateConnection(ctx, types.Connection{User1: b, User2: a})
	require.NoError(t, err)

	require.Equal(t, first.ID, again.ID)
	require.Equal(t, first.ID, reversed.ID)

	count, err := db.NewSelect().Table("connections").Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestRepository_ConnectedIDsIsSymmetric(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	applyDDL(t, db)
	a := seedProfile(t, db)
	b := seedProfile(t, db)
	c := seedProfile(t, db)
	d := seedProfile(t, db)

	repo, err := NewRepository(RepositoryConfig{DB: db})
	require.NoError(t, err)

	_, err = repo.CreateConnection(ctx, types.Connection{User1: a, User2: b})
	require.NoError(t, err)
	_, err = repo.CreateConnection(ctx, types.Connection{User1: c, User2: a})
	require.NoError(t, err)
	_, err = repo.CreateConnection(ctx, types.Connection{User1: c, User2: d})
	require.NoError(t, err)

	ids, err := repo.ConnectedIDs(ctx, a)
	require.NoError(t, err)
	require.ElementsMatch(t, []uuid.UUID{b, c}, ids)

	ids, err = repo.ConnectedIDs(ctx, b)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{a}, ids)

	ids, err = repo.ConnectedIDs(ctx, d)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{c}, ids)

	conns, err := repo.ListConnections(ctx, c)
	require.NoError(t, err)
	require.Len(t, conns, 2)

	none, err := repo.ConnectedIDs(ctx, types.AnonymousUserID)
	require.NoError(t, err)
	require.Empty(t, none)
}

func seedProfile(t *testing.T, db *bun.DB) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := db.ExecContext(context.Background(),
		"INSERT INTO user_profiles (id, username) VALUES (?, ?)", id.String(), id.String()[:8])
	require.NoError(t, err)
	return id
}

func newTestDB(t *testing.T) *bun.DB {
	sqldb, err := sql.Open("sqlite3", ":memory:?cache=shared")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)
	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() {
		_ = db.Close()
		_ = sqldb.Close()
	})
	return db
}

func applyDDL(t *testing.T, db *bun.DB) {
	files, err := filepath.Glob("../data/sql/migrations/sqlite/*.up.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)
	sort.Strings(files)
	for _, file := range files {
		content, err := os.ReadFile(file)
		require.NoError(t, err)
		for _, stmt := range splitStatements(string(content)) {
			if strings.TrimSpace(stmt) == "" {
				continue
			}
			_, err := db.Exec(stmt)
			require.NoError(t, err)
		}
	}
}

func splitStatements(sql string) []string {
	lines := strings.Split(sql, "\n")
	var builder strings.Builder
	var statements []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		builder.WriteString(line)
		if strings.HasSuffix(line, ";") {
			statements = append(statements, strings.TrimSuffix(builder.String(), ";"))
			builder.Reset()
		} else {
			builder.WriteString(" ")
		}
	}
	if builder.Len() > 0 {
		statements = append(statements, builder.String())
	}
	return statements
}
