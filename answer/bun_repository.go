package answer

import (
	"context"
	"errors"

	"github.com/goliatone/go-polls/pkg/types"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RepositoryConfig wires the Bun-backed answer repository.
type RepositoryConfig struct {
	DB    *bun.DB
	Clock types.Clock
	IDGen types.IDGenerator
}

type answerStore interface {
	repository.Repository[*Record]
}

// Repository implements types.AnswerRepository.
type Repository struct {
	answerStore
	db    *bun.DB
	clock types.Clock
	idGen types.IDGenerator
}

// NewRepository constructs the default answer repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if cfg.DB == nil {
		return nil, errors.New("answer: db required")
	}
	clock := cfg.Clock
	if clock == nil {
		clock = types.SystemClock{}
	}
	idGen := cfg.IDGen
	if idGen == nil {
		idGen = types.UUIDGenerator{}
	}
	return &Repository{
		answerStore: repository.NewRepository(cfg.DB, repository.ModelHandlers[*Record]{
			NewRecord: func() *Record { return &Record{} },
			GetID: func(rec *Record) uuid.UUID {
				if rec == nil {
					return uuid.Nil
				}
				return rec.ID
			},
			SetID: func(rec *Record, id uuid.UUID) {
				if rec != nil {
					rec.ID = id
				}
			},
		}),
		db:    cfg.DB,
		clock: clock,
		idGen: idGen,
	}, nil
}

var (
	_ repository.Repository[*Record] = (*Repository)(nil)
	_ types.AnswerRepository         = (*Repository)(nil)
)

// GetAnswer returns the answer or nil when missing.
func (r *Repository) GetAnswer(ctx context.Context, id uuid.UUID) (*types.Answer, error) {
	if id == uuid.Nil {
		return nil, types.ErrAnswerIDRequired
	}
	rec, err := r.Get(ctx, repository.SelectBy("id", "=", id.String()))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	answer := toDomain(rec)
	return &answer, nil
}

// ListAnswers returns answers oldest first.
func (r *Repository) ListAnswers(ctx context.Context, filter types.AnswerFilter) ([]types.Answer, error) {
	rows, _, err := r.List(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		if filter.QuestionID != uuid.Nil {
			q = q.Where("question_id = ?", filter.QuestionID)
		}
		if filter.UserID != uuid.Nil {
			q = q.Where("user_id = ?", filter.UserID)
		}
		return q.OrderExpr("created_at ASC")
	})
	if err != nil {
		return nil, err
	}
	out := make([]types.Answer, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomain(row))
	}
	return out, nil
}

type respondentRow struct {
	ID         uuid.UUID `bun:"id"`
	UserID     uuid.UUID `bun:"user_id"`
	QuestionID uuid.UUID `bun:"question_id"`
	Value      int       `bun:"answer"`
	ProfileID  *string   `bun:"profile_id"`
	Gender     *string   `bun:"gender"`
	Region     *string   `bun:"region"`
	Age        *int      `bun:"age"`
}

// ListAnswerRows returns the answers of a question joined with the
// respondent profile attributes. Answers without a profile row come back with
// Respondent.Known unset.
func (r *Repository) ListAnswerRows(ctx context.Context, questionID uuid.UUID) ([]types.AnswerRow, error) {
	if questionID == uuid.Nil {
		return nil, types.ErrQuestionIDRequired
	}
	var rows []respondentRow
	err := r.db.NewSelect().
		TableExpr("answers AS a").
		ColumnExpr("a.id, a.user_id, a.question_id, a.answer").
		ColumnExpr("p.id AS profile_id, p.gender, p.region, p.age").
		Join("LEFT JOIN user_profiles AS p ON p.id = a.user_id").
		Where("a.question_id = ?", questionID).
		OrderExpr("a.created_at ASC, a.id ASC").
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}
	out := make([]types.AnswerRow, 0, len(rows))
	for _, row := range rows {
		respondent := types.Respondent{ID: row.UserID}
		if row.ProfileID != nil {
			respondent.Known = true
			respondent.Gender = types.Gender(deref(row.Gender))
			respondent.Region = deref(row.Region)
			if row.Age != nil {
				respondent.Age = *row.Age
			}
		}
		out = append(out, types.AnswerRow{
			Answer: types.Answer{
				ID:         row.ID,
				UserID:     row.UserID,
				QuestionID: row.QuestionID,
				Value:      row.Value,
			},
			Respondent: respondent,
		})
	}
	return out, nil
}

// FindUserAnswer returns the most recent answer of the user to the question,
// or nil when there is none.
func (r *Repository) FindUserAnswer(ctx context.Context, questionID, userID uuid.UUID) (*types.Answer, error) {
	rows, _, err := r.List(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("question_id = ?", questionID).
			Where("user_id = ?", userID).
			OrderExpr("updated_at DESC, created_at DESC").
			Limit(1)
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	answer := toDomain(rows[0])
	return &answer, nil
}

// SaveAnswer stores an answer. With single set the write is an upsert on
// (question, user) so concurrent submissions collapse onto one row.
// Anonymous answers share the nil user id and are always inserted.
func (r *Repository) SaveAnswer(ctx context.Context, answer types.Answer, single bool) (*types.Answer, error) {
	if answer.QuestionID == uuid.Nil {
		return nil, types.ErrQuestionIDRequired
	}
	now := r.clock.Now()
	if answer.ID == uuid.Nil {
		answer.ID = r.idGen.UUID()
	}
	rec := fromDomain(answer)
	rec.CreatedAt = now
	rec.UpdatedAt = now

	if !single || answer.UserID == types.AnonymousUserID {
		rec.DedupeKey = rec.ID.String()
		if _, err := r.db.NewInsert().Model(rec).Exec(ctx); err != nil {
			return nil, err
		}
		saved := toDomain(rec)
		return &saved, nil
	}

	rec.DedupeKey = DedupeSingle
	_, err := r.db.NewInsert().
		Model(rec).
		On("CONFLICT (question_id, user_id, dedupe_key) DO UPDATE").
		Set("answer = EXCLUDED.answer").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	stored, err := r.Get(ctx,
		repository.SelectBy("question_id", "=", answer.QuestionID.String()),
		repository.SelectBy("user_id", "=", answer.UserID.String()),
		repository.SelectBy("dedupe_key", "=", DedupeSingle),
	)
	if err != nil {
		return nil, err
	}
	saved := toDomain(stored)
	return &saved, nil
}

// UpdateAnswer rewrites the answer value.
func (r *Repository) UpdateAnswer(ctx context.Context, answer types.Answer) (*types.Answer, error) {
	if answer.ID == uuid.Nil {
		return nil, types.ErrAnswerIDRequired
	}
	rec := &Record{ID: answer.ID, Value: answer.Value, UpdatedAt: r.clock.Now()}
	res, err := r.db.NewUpdate().
		Model(rec).
		Column("answer", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, types.ErrAnswerNotFound()
	}
	return r.GetAnswer(ctx, answer.ID)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func fromDomain(answer types.Answer) *Record {
	return &Record{
		ID:         answer.ID,
		UserID:     answer.UserID,
		QuestionID: answer.QuestionID,
		Value:      answer.Value,
		CreatedAt:  answer.CreatedAt,
		UpdatedAt:  answer.UpdatedAt,
	}
}

func toDomain(rec *Record) types.Answer {
	return types.Answer{
		ID:         rec.ID,
		UserID:     rec.UserID,
		QuestionID: rec.QuestionID,
		Value:      rec.Value,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}
}
