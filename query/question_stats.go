package query

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	featuregate "github.com/goliatone/go-featuregate/gate"
	"github.com/goliatone/go-polls/pkg/telemetry"
	"github.com/goliatone/go-polls/pkg/types"
	"github.com/goliatone/go-polls/stats"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// StatsQueryConfig wires dependencies for the statistics view.
type StatsQueryConfig struct {
	Questions   types.QuestionRepository
	Answers     types.AnswerRepository
	Connections types.ConnectionRepository
	FeatureGate featuregate.FeatureGate
	Clock       types.Clock
	Tracer      trace.Tracer
	Metrics     telemetry.Metrics
	Logger      types.Logger
}

// QuestionStatsInput identifies the question and the requester whose
// connections scope the connected slice.
type QuestionStatsInput struct {
	QuestionID uuid.UUID
	Requester  *types.Requester
}

// Type implements gocommand.Message.
func (QuestionStatsInput) Type() string {
	return "query.question.stats"
}

// Validate implements gocommand.Message.
func (input QuestionStatsInput) Validate() error {
	if input.QuestionID == uuid.Nil {
		return types.ErrQuestionIDRequired
	}
	return nil
}

// QuestionStatsQuery computes the statistics payload on every call.
type QuestionStatsQuery struct {
	questions   types.QuestionRepository
	answers     types.AnswerRepository
	connections types.ConnectionRepository
	gate        featuregate.FeatureGate
	clock       types.Clock
	tracer      trace.Tracer
	metrics     telemetry.Metrics
	logger      types.Logger
}

// NewQuestionStatsQuery constructs the query.
func NewQuestionStatsQuery(cfg StatsQueryConfig) *QuestionStatsQuery {
	clock := cfg.Clock
	if clock == nil {
		clock = types.SystemClock{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = types.NopLogger{}
	}
	return &QuestionStatsQuery{
		questions:   cfg.Questions,
		answers:     cfg.Answers,
		connections: cfg.Connections,
		gate:        cfg.FeatureGate,
		clock:       clock,
		tracer:      telemetry.Tracer(cfg.Tracer),
		metrics:     telemetry.Ensure(cfg.Metrics),
		logger:      logger,
	}
}

var _ gocommand.Querier[QuestionStatsInput, types.StatsPayload] = (*QuestionStatsQuery)(nil)

// Query loads the question, its answer rows and the requester's connections
// concurrently, then aggregates.
func (q *QuestionStatsQuery) Query(ctx context.Context, input QuestionStatsInput) (payload types.StatsPayload, err error) {
	if q.questions == nil {
		return types.StatsPayload{}, types.ErrMissingQuestionRepository
	}
	if q.answers == nil {
		return types.StatsPayload{}, types.ErrMissingAnswerRepository
	}
	if q.connections == nil {
		return types.StatsPayload{}, types.ErrMissingConnectionRepository
	}
	if err := input.Validate(); err != nil {
		return types.StatsPayload{}, err
	}

	ctx, span := telemetry.StartQuestionSpan(ctx, q.tracer, "polls.question.stats", input.QuestionID)
	defer func() { telemetry.EndSpan(span, err) }()
	started := q.clock.Now()

	var (
		question  *types.Question
		rows      []types.AnswerRow
		connected []uuid.UUID
	)
	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		loaded, err := q.questions.GetQuestion(gctx, input.QuestionID)
		question = loaded
		return err
	})
	group.Go(func() error {
		loaded, err := q.answers.ListAnswerRows(gctx, input.QuestionID)
		rows = loaded
		return err
	})
	group.Go(func() error {
		ids, err := q.connectedIDs(gctx, input.Requester)
		connected = ids
		return err
	})
	if err := group.Wait(); err != nil {
		return types.StatsPayload{}, err
	}
	if question == nil {
		return types.StatsPayload{}, types.ErrQuestionNotFound()
	}

	kind := question.Type.Kind()
	telemetry.SetKind(span, kind.String())
	payload = stats.Compute(kind, rows, stats.NewConnectionSet(connected))
	q.metrics.StatsComputed(kind.String(), q.clock.Now().Sub(started))
	return payload, nil
}

// connectedIDs returns the one hop connections of an authenticated requester.
// Anonymous requesters and a disabled gate yield an empty set.
func (q *QuestionStatsQuery) connectedIDs(ctx context.Context, requester *types.Requester) ([]uuid.UUID, error) {
	if !requester.IsAuthenticated() {
		return nil, nil
	}
	userID := requester.ProfileID()
	enabled, err := featureEnabled(ctx, q.gate, types.FeatureConnectedStats, userID)
	if err != nil {
		q.logger.Error("connected stats gate failed", err, "user_id", userID)
		return nil, err
	}
	if !enabled {
		return nil, nil
	}
	return q.connections.ConnectedIDs(ctx, userID)
}
