package query

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-polls/pkg/telemetry"
	"github.com/goliatone/go-polls/pkg/types"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// QuestionDetailInput identifies the question and who is reading it.
type QuestionDetailInput struct {
	QuestionID uuid.UUID
	Requester  *types.Requester
}

// Type implements gocommand.Message.
func (QuestionDetailInput) Type() string {
	return "query.question.detail"
}

// Validate implements gocommand.Message.
func (input QuestionDetailInput) Validate() error {
	if input.QuestionID == uuid.Nil {
		return types.ErrQuestionIDRequired
	}
	return nil
}

// QuestionDetailQuery renders a single question payload.
type QuestionDetailQuery struct {
	questions types.QuestionRepository
	builder   payloadBuilder
	tracer    trace.Tracer
}

// NewQuestionDetailQuery constructs the query.
func NewQuestionDetailQuery(cfg QuestionQueryConfig) *QuestionDetailQuery {
	return &QuestionDetailQuery{
		questions: cfg.Questions,
		builder:   cfg.builder(),
		tracer:    telemetry.Tracer(cfg.Tracer),
	}
}

var _ gocommand.Querier[QuestionDetailInput, types.QuestionPayload] = (*QuestionDetailQuery)(nil)

// Query returns the payload or a not found error.
func (q *QuestionDetailQuery) Query(ctx context.Context, input QuestionDetailInput) (payload types.QuestionPayload, err error) {
	if q.questions == nil {
		return types.QuestionPayload{}, types.ErrMissingQuestionRepository
	}
	if err := q.builder.ready(); err != nil {
		return types.QuestionPayload{}, err
	}
	if err := input.Validate(); err != nil {
		return types.QuestionPayload{}, err
	}

	ctx, span := telemetry.StartQuestionSpan(ctx, q.tracer, "polls.question.detail", input.QuestionID)
	defer func() { telemetry.EndSpan(span, err) }()

	question, err := q.questions.GetQuestion(ctx, input.QuestionID)
	if err != nil {
		return types.QuestionPayload{}, err
	}
	if question == nil {
		return types.QuestionPayload{}, types.ErrQuestionNotFound()
	}
	telemetry.SetKind(span, question.Type.Kind().String())
	return q.builder.build(ctx, *question, input.Requester)
}
