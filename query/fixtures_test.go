package query

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	featuregate "github.com/goliatone/go-featuregate/gate"
	"github.com/goliatone/go-polls/answer"
	"github.com/goliatone/go-polls/connection"
	"github.com/goliatone/go-polls/pkg/types"
	"github.com/goliatone/go-polls/profile"
	"github.com/goliatone/go-polls/question"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

var baseTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	db          *bun.DB
	profiles    *profile.Repository
	questions   *question.Repository
	answers     *answer.Repository
	connections *connection.Repository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	applyDDL(t, db)

	profiles, err := profile.NewRepository(profile.RepositoryConfig{DB: db})
	require.NoError(t, err)
	questions, err := question.NewRepository(question.RepositoryConfig{DB: db})
	require.NoError(t, err)
	answers, err := answer.NewRepository(answer.RepositoryConfig{DB: db})
	require.NoError(t, err)
	connections, err := connection.NewRepository(connection.RepositoryConfig{DB: db})
	require.NoError(t, err)

	return &fixture{
		db:          db,
		profiles:    profiles,
		questions:   questions,
		answers:     answers,
		connections: connections,
	}
}

func (f *fixture) questionConfig() QuestionQueryConfig {
	return QuestionQueryConfig{
		Questions: f.questions,
		Answers:   f.answers,
		Profiles:  f.profiles,
	}
}

func (f *fixture) statsConfig() StatsQueryConfig {
	return StatsQueryConfig{
		Questions:   f.questions,
		Answers:     f.answers,
		Connections: f.connections,
	}
}

func (f *fixture) profile(t *testing.T, username string, gender types.Gender, region string, age int) types.UserProfile {
	t.Helper()
	stored, err := f.profiles.UpsertProfile(context.Background(), types.UserProfile{
		ID:       uuid.New(),
		Username: username,
		Email:    username + "@example.com",
		Gender:   gender,
		Region:   region,
		Age:      age,
	})
	require.NoError(t, err)
	return *stored
}

func (f *fixture) question(t *testing.T, asker uuid.UUID, qt types.QuestionType, date time.Time, opts ...string) types.Question {
	t.Helper()
	q := types.Question{
		AskerID:    asker,
		Text:       "question " + date.Format(time.RFC3339),
		Type:       qt,
		Date:       date,
		Categories: []string{"general"},
	}
	copy(q.Options[:], opts)
	stored, err := f.questions.CreateQuestion(context.Background(), q)
	require.NoError(t, err)
	return *stored
}

func (f *fixture) answer(t *testing.T, questionID, userID uuid.UUID, value int) types.Answer {
	t.Helper()
	stored, err := f.answers.SaveAnswer(context.Background(), types.Answer{
		QuestionID: questionID,
		UserID:     userID,
		Value:      value,
	}, false)
	require.NoError(t, err)
	return *stored
}

func (f *fixture) connect(t *testing.T, a, b uuid.UUID) {
	t.Helper()
	_, err := f.connections.CreateConnection(context.Background(), types.Connection{User1: a, User2: b})
	require.NoError(t, err)
}

func authenticated(profile types.UserProfile) *types.Requester {
	return &types.Requester{Authenticated: true, Profile: &profile}
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type recordingMetrics struct {
	mu    sync.Mutex
	stats []string
}

func (m *recordingMetrics) QuestionCreated(string) {}

func (m *recordingMetrics) AnswerSubmitted(string) {}

func (m *recordingMetrics) StatsComputed(kind string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats = append(m.stats, kind)
}

type stubFeatureGate struct {
	mu      sync.Mutex
	enabled bool
	keys    []string
}

func (s *stubFeatureGate) Enabled(_ context.Context, key string, _ ...featuregate.ResolveOption) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys = append(s.keys, key)
	return s.enabled, nil
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
	var builder strings.Builder
	var statements []string
	for _, line := range strings.Split(sql, "\n") {
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
