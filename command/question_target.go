package command

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-polls/pkg/types"
	"github.com/google/uuid"
)

// QuestionTargetInput directs a question at a profile.
type QuestionTargetInput struct {
	QuestionID uuid.UUID
	UserID     uuid.UUID
	Result     *types.TargetedQuestion
}

// Type implements gocommand.Message.
func (QuestionTargetInput) Type() string {
	return "command.question.target"
}

// Validate implements gocommand.Message.
func (input QuestionTargetInput) Validate() error {
	if input.QuestionID == uuid.Nil {
		return ErrQuestionIDRequired
	}
	if input.UserID == uuid.Nil {
		return ErrUserIDRequired
	}
	return nil
}

// QuestionTargetCommand records targeted questions. Repeats are no-ops.
type QuestionTargetCommand struct {
	questions types.QuestionRepository
	profiles  types.ProfileRepository
	hooks     types.Hooks
	clock     types.Clock
}

// NewQuestionTargetCommand constructs the handler.
func NewQuestionTargetCommand(cfg QuestionCommandConfig) *QuestionTargetCommand {
	return &QuestionTargetCommand{
		questions: cfg.Questions,
		profiles:  cfg.Profiles,
		hooks:     safeHooks(cfg.Hooks),
		clock:     safeClock(cfg.Clock),
	}
}

var _ gocommand.Commander[QuestionTargetInput] = (*QuestionTargetCommand)(nil)

// Execute validates both ends exist and stores the target row.
func (c *QuestionTargetCommand) Execute(ctx context.Context, input QuestionTargetInput) error {
	if c.questions == nil {
		return types.ErrMissingQuestionRepository
	}
	if c.profiles == nil {
		return types.ErrMissingProfileRepository
	}
	if err := input.Validate(); err != nil {
		return err
	}
	question, err := c.questions.GetQuestion(ctx, input.QuestionID)
	if err != nil {
		return err
	}
	if question == nil {
		return types.ErrQuestionNotFound()
	}
	profile, err := c.profiles.GetProfile(ctx, input.UserID)
	if err != nil {
		return err
	}
	if profile == nil {
		return types.ErrProfileNotFound()
	}

	target, err := c.questions.TargetQuestion(ctx, types.TargetedQuestion{
		UserID:     input.UserID,
		QuestionID: input.QuestionID,
		CreatedAt:  now(c.clock),
	})
	if err != nil {
		return err
	}
	if input.Result != nil {
		*input.Result = *target
	}
	emitQuestionHook(ctx, c.hooks, types.QuestionEvent{
		QuestionID: question.ID,
		AskerID:    question.AskerID,
		Action:     "question.targeted",
		OccurredAt: now(c.clock),
		Question:   *question,
	})
	return nil
}
