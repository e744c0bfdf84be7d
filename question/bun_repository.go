package question

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-polls/pkg/types"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RepositoryConfig wires the Bun-backed question repository.
type RepositoryConfig struct {
	DB    *bun.DB
	Clock types.Clock
	IDGen types.IDGenerator
}

type questionStore interface {
	repository.Repository[*Record]
}

// Repository implements types.QuestionRepository. Categories and targets are
// written with raw Bun queries so question creation can run in one transaction.
type Repository struct {
	questionStore
	targets repository.Repository[*TargetRecord]
	db      *bun.DB
	clock   types.Clock
	idGen   types.IDGenerator
}

// NewRepository constructs the default question repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if cfg.DB == nil {
		return nil, errors.New("question: db required")
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
		questionStore: repository.NewRepository(cfg.DB, repository.ModelHandlers[*Record]{
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
		targets: repository.NewRepository(cfg.DB, repository.ModelHandlers[*TargetRecord]{
			NewRecord: func() *TargetRecord { return &TargetRecord{} },
			GetID: func(rec *TargetRecord) uuid.UUID {
				if rec == nil {
					return uuid.Nil
				}
				return rec.ID
			},
			SetID: func(rec *TargetRecord, id uuid.UUID) {
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
	_ types.QuestionRepository       = (*Repository)(nil)
)

// GetQuestion returns the question with its categories or nil when missing.
func (r *Repository) GetQuestion(ctx context.Context, id uuid.UUID) (*types.Question, error) {
	if id == uuid.Nil {
		return nil, types.ErrQuestionIDRequired
	}
	rec, err := r.Get(ctx, repository.SelectBy("id", "=", id.String()))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	labels, err := r.loadCategories(ctx, []uuid.UUID{rec.ID})
	if err != nil {
		return nil, err
	}
	question := toDomain(rec)
	if found, ok := labels[rec.ID]; ok {
		question.Categories = found
	}
	return &question, nil
}

// ListQuestions returns questions newest first.
func (r *Repository) ListQuestions(ctx context.Context, filter types.QuestionFilter) ([]types.Question, error) {
	criteria := []repository.SelectCriteria{
		func(q *bun.SelectQuery) *bun.SelectQuery {
			if filter.AskerID != uuid.Nil {
				q = q.Where("asker_id = ?", filter.AskerID)
			}
			if filter.ReplyTo != uuid.Nil {
				q = q.Where("reply_to = ?", filter.ReplyTo)
			}
			if label := strings.TrimSpace(filter.Category); label != "" {
				q = q.Where(`id IN (SELECT qc.question_id FROM question_categories AS qc
					JOIN categories AS c ON c.id = qc.category_id WHERE c.label = ?)`, label)
			}
			if filter.Limit > 0 {
				q = q.Limit(filter.Limit)
			}
			return q.OrderExpr("date DESC")
		},
	}
	rows, _, err := r.List(ctx, criteria...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []types.Question{}, nil
	}
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	labels, err := r.loadCategories(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]types.Question, 0, len(rows))
	for _, row := range rows {
		question := toDomain(row)
		if found, ok := labels[row.ID]; ok {
			question.Categories = found
		}
		out = append(out, question)
	}
	return out, nil
}

// CreateQuestion stores the question, one category row per label and the
// link rows in a single transaction.
func (r *Repository) CreateQuestion(ctx context.Context, question types.Question) (*types.Question, error) {
	if question.ID == uuid.Nil {
		question.ID = r.idGen.UUID()
	}
	if question.Date.IsZero() {
		question.Date = r.clock.Now()
	}
	labels := cleanLabels(question.Categories)
	rec := fromDomain(question)

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(rec).Exec(ctx); err != nil {
			return err
		}
		for _, label := range labels {
			category := &CategoryRecord{ID: r.idGen.UUID(), Label: label}
			if _, err := tx.NewInsert().Model(category).Exec(ctx); err != nil {
				return err
			}
			link := &LinkRecord{QuestionID: rec.ID, CategoryID: category.ID}
			if _, err := tx.NewInsert().Model(link).Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	created := toDomain(rec)
	created.Categories = labels
	return &created, nil
}

// UpdateQuestion writes the mutable columns: text, type and the option slots.
func (r *Repository) UpdateQuestion(ctx context.Context, question types.Question) (*types.Question, error) {
	if question.ID == uuid.Nil {
		return nil, types.ErrQuestionIDRequired
	}
	rec := fromDomain(question)
	res, err := r.db.NewUpdate().
		Model(rec).
		Column("text", "question_type", "option1", "option2", "option3", "option4", "option5").
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, types.ErrQuestionNotFound()
	}
	return r.GetQuestion(ctx, question.ID)
}

// TargetQuestion records that a question is directed at a user. Targeting the
// same pair twice keeps and returns the first row.
func (r *Repository) TargetQuestion(ctx context.Context, target types.TargetedQuestion) (*types.TargetedQuestion, error) {
	if target.QuestionID == uuid.Nil {
		return nil, types.ErrQuestionIDRequired
	}
	if target.UserID == uuid.Nil {
		return nil, types.ErrUserIDRequired
	}
	if target.ID == uuid.Nil {
		target.ID = r.idGen.UUID()
	}
	if target.CreatedAt.IsZero() {
		target.CreatedAt = r.clock.Now()
	}
	rec := &TargetRecord{
		ID:         target.ID,
		UserID:     target.UserID,
		QuestionID: target.QuestionID,
		CreatedAt:  target.CreatedAt,
	}
	_, err := r.db.NewInsert().
		Model(rec).
		On("CONFLICT (user_id, question_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	stored, err := r.targets.Get(ctx,
		repository.SelectBy("user_id", "=", target.UserID.String()),
		repository.SelectBy("question_id", "=", target.QuestionID.String()),
	)
	if err != nil {
		return nil, err
	}
	rec = stored
	out := toTarget(rec)
	return &out, nil
}

// ListTargets returns the users a question was directed at, oldest first.
func (r *Repository) ListTargets(ctx context.Context, questionID uuid.UUID) ([]types.TargetedQuestion, error) {
	rows, _, err := r.targets.List(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("question_id = ?", questionID).OrderExpr("created_at ASC")
	})
	if err != nil {
		return nil, err
	}
	out := make([]types.TargetedQuestion, 0, len(rows))
	for _, row := range rows {
		out = append(out, toTarget(row))
	}
	return out, nil
}

type categoryRow struct {
	QuestionID uuid.UUID `bun:"question_id"`
	Label      string    `bun:"label"`
}

func (r *Repository) loadCategories(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]string, error) {
	var rows []categoryRow
	err := r.db.NewSelect().
		TableExpr("question_categories AS qc").
		ColumnExpr("qc.question_id AS question_id").
		ColumnExpr("c.label AS label").
		Join("JOIN categories AS c ON c.id = qc.category_id").
		Where("qc.question_id IN (?)", bun.In(ids)).
		OrderExpr("c.label ASC").
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID][]string, len(ids))
	for _, row := range rows {
		out[row.QuestionID] = append(out[row.QuestionID], row.Label)
	}
	return out, nil
}

func cleanLabels(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, label := range labels {
		if label = strings.TrimSpace(label); label != "" {
			out = append(out, label)
		}
	}
	return out
}

func fromDomain(q types.Question) *Record {
	return &Record{
		ID:           q.ID,
		AskerID:      q.AskerID,
		Text:         q.Text,
		QuestionType: string(q.Type),
		Date:         q.Date,
		RelatedLink:  q.Link,
		Option1:      q.Options[0],
		Option2:      q.Options[1],
		Option3:      q.Options[2],
		Option4:      q.Options[3],
		Option5:      q.Options[4],
		ReplyTo:      q.ReplyTo,
	}
}

func toDomain(rec *Record) types.Question {
	return types.Question{
		ID:      rec.ID,
		AskerID: rec.AskerID,
		Text:    rec.Text,
		Type:    types.QuestionType(rec.QuestionType),
		Date:    rec.Date,
		Link:    rec.RelatedLink,
		Options: [types.OptionSlots]string{
			rec.Option1, rec.Option2, rec.Option3, rec.Option4, rec.Option5,
		},
		ReplyTo:    rec.ReplyTo,
		Categories: []string{},
	}
}

func toTarget(rec *TargetRecord) types.TargetedQuestion {
	return types.TargetedQuestion{
		ID:         rec.ID,
		UserID:     rec.UserID,
		QuestionID: rec.QuestionID,
		CreatedAt:  rec.CreatedAt,
	}
}
