package command

import (
	"context"
	"time"

	"github.com/goliatone/go-polls/pkg/telemetry"
	"github.com/goliatone/go-polls/pkg/types"
)

func safeClock(clock types.Clock) types.Clock {
	if clock != nil {
		return clock
	}
	return types.SystemClock{}
}

func safeLogger(logger types.Logger) types.Logger {
	if logger != nil {
		return logger
	}
	return types.NopLogger{}
}

func safeHooks(hooks types.Hooks) types.Hooks {
	return hooks
}

func safeMetrics(metrics telemetry.Metrics) telemetry.Metrics {
	return telemetry.Ensure(metrics)
}

func now(clock types.Clock) time.Time {
	if clock == nil {
		return time.Now().UTC()
	}
	return clock.Now()
}

func emitQuestionHook(ctx context.Context, hooks types.Hooks, event types.QuestionEvent) {
	if hooks.AfterQuestionChange == nil {
		return
	}
	hooks.AfterQuestionChange(ctx, event)
}

func emitAnswerHook(ctx context.Context, hooks types.Hooks, event types.AnswerEvent) {
	if hooks.AfterAnswer == nil {
		return
	}
	hooks.AfterAnswer(ctx, event)
}

func emitConnectionHook(ctx context.Context, hooks types.Hooks, event types.ConnectionEvent) {
	if hooks.AfterConnection == nil {
		return
	}
	hooks.AfterConnection(ctx, event)
}

func emitProfileHook(ctx context.Context, hooks types.Hooks, event types.ProfileEvent) {
	if hooks.AfterProfileChange == nil {
		return
	}
	hooks.AfterProfileChange(ctx, event)
}
