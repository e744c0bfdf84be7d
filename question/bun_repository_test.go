package question

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-polls/pkg/types"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }

type sequenceIDGen struct {
	ids []uuid.UUID
}

func (g *sequenceIDGen) UUID() uuid.UUID {
	if len(g.ids) == 0 {
		return uuid.New()
	}
	id := g.ids[0]
	g.ids = g.ids[1:]
	return id
}

func TestRepository_CreateStoresCategoriesPerLabel(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	applyDDL(t, db)
	asker := seedProfile(t, db)

	repo, err := NewRepository(RepositoryConfig{DB: db})
	require.NoError(t, err)

	created, err := repo.CreateQuestion(ctx, types.Question{
		AskerID:    asker,
		Text:       "Favourite colour?",
		Type:       types.QuestionTypeMultipleChoice,
		Options:    [types.OptionSlots]string{"Red", "Blue"},
		Categories: []string{"art", " ", "life"},
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)
	require.False(t, created.Date.IsZero())
	require.Equal(t, []string{"art", "life"}, created.Categories)

	_, err = repo.CreateQuestion(ctx, types.Question{
		AskerID:    asker,
		Text:       "Second",
		Type:       types.QuestionTypeTrueFalse,
		Categories: []string{"art"},
	})
	require.NoError(t, err)

	count, err := db.NewSelect().Table("categories").Where("label = ?", "art").Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	fetched, err := repo.GetQuestion(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Favourite colour?", fetched.Text)
	require.Equal(t, [types.OptionSlots]string{"Red", "Blue", "", "", ""}, fetched.Options)
	require.ElementsMatch(t, []string{"art", "life"}, fetched.Categories)
	require.Nil(t, fetched.ReplyTo)
}

func TestRepository_CreateRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	applyDDL(t, db)
	asker := seedProfile(t, db)

	categoryID := uuid.New()
	ids := &sequenceIDGen{ids: []uuid.UUID{uuid.New(), categoryID, categoryID}}
	repo, err := NewRepository(RepositoryConfig{DB: db, IDGen: ids})
	require.NoError(t, err)

	_, err = repo.CreateQuestion(ctx, types.Question{
		AskerID:    asker,
		Text:       "atomic",
		Type:       types.QuestionTypeRange,
		Categories: []string{"first", "second"},
	})
	require.Error(t, err)

	for _, table := range []string{"questions", "categories", "question_categories"} {
		count, err := db.NewSelect().Table(table).Count(ctx)
		require.NoError(t, err)
		require.Zero(t, count, table)
	}
}

func TestRepository_GetMissingReturnsNil(t *testing.T) {
	db := newTestDB(t)
	applyDDL(t, db)

	repo, err := NewRepository(RepositoryConfig{DB: db})
	require.NoError(t, err)

	question, err := repo.GetQuestion(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Nil(t, question)
}

func TestRepository_ListNewestFirstWithFilters(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	applyDDL(t, db)
	asker := seedProfile(t, db)
	other := seedProfile(t, db)

	clock := &fixedClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	repo, err := NewRepository(RepositoryConfig{DB: db, Clock: clock})
	require.NoError(t, err)

	older, err := repo.CreateQuestion(ctx, types.Question{AskerID: asker, Text: "older", Type: types.QuestionTypeRange, Categories: []string{"sport"}})
	require.NoError(t, err)
	clock.t = clock.t.Add(time.Hour)
	newer, err := repo.CreateQuestion(ctx, types.Question{AskerID: other, Text: "newer", Type: types.QuestionTypeRange, ReplyTo: &older.ID})
	require.NoError(t, err)

	all, err := repo.ListQuestions(ctx, types.QuestionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, newer.ID, all[0].ID)
	require.Equal(t, older.ID, all[1].ID)
	require.Equal(t, []string{"sport"}, all[1].Categories)
	require.Empty(t, all[0].Categories)

	byAsker, err := repo.ListQuestions(ctx, types.QuestionFilter{AskerID: asker})
	require.NoError(t, err)
	require.Len(t, byAsker, 1)
	require.Equal(t, older.ID, byAsker[0].ID)

	byCategory, err := repo.ListQuestions(ctx, types.QuestionFilter{Category: "sport"})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	require.Equal(t, older.ID, byCategory[0].ID)

	replies, err := repo.ListQuestions(ctx, types.QuestionFilter{ReplyTo: older.ID})
	require.NoError(t, err)
	require.Len(t, replies, 1)
	require.Equal(t, newer.ID, replies[0].ID)
	require.NotNil(t, replies[0].ReplyTo)
	require.Equal(t, older.ID, *replies[0].ReplyTo)

	limited, err := repo.ListQuestions(ctx, types.QuestionFilter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
}

func TestRepository_UpdateTouchesMutableColumnsOnly(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	applyDDL(t, db)
	asker := seedProfile(t, db)

	repo, err := NewRepository(RepositoryConfig{DB: db})
	require.NoError(t, err)

	created, err := repo.CreateQuestion(ctx, types.Question{
		AskerID:    asker,
		Text:       "before",
		Type:       types.QuestionTypeMultipleChoice,
		Link:       "https://example.com",
		Options:    [types.OptionSlots]string{"a", "b"},
		Categories: []string{"misc"},
	})
	require.NoError(t, err)

	patched := *created
	patched.Text = "after"
	patched.Type = types.QuestionTypeRating
	patched.Options[2] = "c"
	patched.Link = "ignored"

	updated, err := repo.UpdateQuestion(ctx, patched)
	require.NoError(t, err)
	require.Equal(t, "after", updated.Text)
	require.Equal(t, types.QuestionTypeRating, updated.Type)
	require.Equal(t, "c", updated.Options[2])
	require.Equal(t, "https://example.com", updated.Link)
	require.Equal(t, []string{"misc"}, updated.Categories)

	patched.ID = uuid.New()
	_, err = repo.UpdateQuestion(ctx, patched)
	require.Error(t, err)
}

func TestRepository_TargetQuestionIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	applyDDL(t, db)
	asker := seedProfile(t, db)
	target := seedProfile(t, db)

	repo, err := NewRepository(RepositoryConfig{DB: db})
	require.NoError(t, err)

	question, err := repo.CreateQuestion(ctx, types.Question{AskerID: asker, Text: "q", Type: types.QuestionTypeTrueFalse})
	require.NoError(t, err)

	first, err := repo.TargetQuestion(ctx, types.TargetedQuestion{UserID: target, QuestionID: question.ID})
	require.NoError(t, err)
	second, err := repo.TargetQuestion(ctx, types.TargetedQuestion{UserID: target, QuestionID: question.ID})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	targets, err := repo.ListTargets(ctx, question.ID)
	require.NoError(t, err)
	require.Len(t, targets, 1)
	require.Equal(t, target, targets[0].UserID)
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
