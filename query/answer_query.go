package query

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-polls/pkg/types"
	"github.com/google/uuid"
)

// AnswerDetailInput identifies an answer.
type AnswerDetailInput struct {
	AnswerID uuid.UUID
}

// Type implements gocommand.Message.
func (AnswerDetailInput) Type() string {
	return "query.answer.detail"
}

// Validate implements gocommand.Message.
func (input AnswerDetailInput) Validate() error {
	if input.AnswerID == uuid.Nil {
		return types.ErrAnswerIDRequired
	}
	return nil
}

// AnswerDetailQuery fetches a single answer.
type AnswerDetailQuery struct {
	repo types.AnswerRepository
}

// NewAnswerDetailQuery constructs the query.
func NewAnswerDetailQuery(repo types.AnswerRepository) *AnswerDetailQuery {
	return &AnswerDetailQuery{repo: repo}
}

var _ gocommand.Querier[AnswerDetailInput, *types.Answer] = (*AnswerDetailQuery)(nil)

// Query returns the answer or a not found error.
func (q *AnswerDetailQuery) Query(ctx context.Context, input AnswerDetailInput) (*types.Answer, error) {
	if q.repo == nil {
		return nil, types.ErrMissingAnswerRepository
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	answer, err := q.repo.GetAnswer(ctx, input.AnswerID)
	if err != nil {
		return nil, err
	}
	if answer == nil {
		return nil, types.ErrAnswerNotFound()
	}
	return answer, nil
}

// AnswerListQuery lists answers, oldest first.
type AnswerListQuery struct {
	repo types.AnswerRepository
}

// NewAnswerListQuery constructs the query.
func NewAnswerListQuery(repo types.AnswerRepository) *AnswerListQuery {
	return &AnswerListQuery{repo: repo}
}

// Query delegates to the repository.
func (q *AnswerListQuery) Query(ctx context.Context, filter types.AnswerFilter) ([]types.Answer, error) {
	if q.repo == nil {
		return nil, types.ErrMissingAnswerRepository
	}
	return q.repo.ListAnswers(ctx, filter)
}
