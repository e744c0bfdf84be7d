package query

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-polls/pkg/types"
	"golang.org/x/sync/errgroup"
)

const (
	defaultQuestionLimit = 50
	maxQuestionLimit     = 200
	payloadConcurrency   = 4
)

// QuestionListInput filters the question feed.
type QuestionListInput struct {
	Filter    types.QuestionFilter
	Requester *types.Requester
}

// Type implements gocommand.Message.
func (QuestionListInput) Type() string {
	return "query.question.list"
}

// Validate implements gocommand.Message.
func (QuestionListInput) Validate() error {
	return nil
}

// QuestionListQuery renders question payloads, newest first.
type QuestionListQuery struct {
	questions types.QuestionRepository
	builder   payloadBuilder
	logger    types.Logger
}

// NewQuestionListQuery constructs the query.
func NewQuestionListQuery(cfg QuestionQueryConfig) *QuestionListQuery {
	logger := cfg.Logger
	if logger == nil {
		logger = types.NopLogger{}
	}
	return &QuestionListQuery{
		questions: cfg.Questions,
		builder:   cfg.builder(),
		logger:    logger,
	}
}

var _ gocommand.Querier[QuestionListInput, []types.QuestionPayload] = (*QuestionListQuery)(nil)

// Query lists questions and builds their payloads with bounded concurrency.
func (q *QuestionListQuery) Query(ctx context.Context, input QuestionListInput) ([]types.QuestionPayload, error) {
	if q.questions == nil {
		return nil, types.ErrMissingQuestionRepository
	}
	if err := q.builder.ready(); err != nil {
		return nil, err
	}
	filter := normalizeQuestionFilter(input.Filter)
	questions, err := q.questions.ListQuestions(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]types.QuestionPayload, len(questions))
	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(payloadConcurrency)
	for i, question := range questions {
		group.Go(func() error {
			payload, err := q.builder.build(gctx, question, input.Requester)
			if err != nil {
				return err
			}
			out[i] = payload
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		q.logger.Error("question list payloads failed", err)
		return nil, err
	}
	return out, nil
}

func normalizeQuestionFilter(filter types.QuestionFilter) types.QuestionFilter {
	out := filter
	if out.Limit <= 0 {
		out.Limit = defaultQuestionLimit
	}
	if out.Limit > maxQuestionLimit {
		out.Limit = maxQuestionLimit
	}
	return out
}
