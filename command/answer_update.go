package command

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-polls/pkg/types"
	"github.com/google/uuid"
)

// AnswerUpdateInput changes the value of a stored answer.
type AnswerUpdateInput struct {
	AnswerID uuid.UUID
	Value    int
	Result   *types.Answer
}

// Type implements gocommand.Message.
func (AnswerUpdateInput) Type() string {
	return "command.answer.update"
}

// Validate implements gocommand.Message.
func (input AnswerUpdateInput) Validate() error {
	if input.AnswerID == uuid.Nil {
		return ErrAnswerIDRequired
	}
	return nil
}

// AnswerUpdateCommand rewrites answer values.
type AnswerUpdateCommand struct {
	answers   types.AnswerRepository
	questions types.QuestionRepository
	hooks     types.Hooks
	clock     types.Clock
}

// NewAnswerUpdateCommand constructs the handler.
func NewAnswerUpdateCommand(cfg AnswerCommandConfig) *AnswerUpdateCommand {
	return &AnswerUpdateCommand{
		answers:   cfg.Answers,
		questions: cfg.Questions,
		hooks:     safeHooks(cfg.Hooks),
		clock:     safeClock(cfg.Clock),
	}
}

var _ gocommand.Commander[AnswerUpdateInput] = (*AnswerUpdateCommand)(nil)

// Execute validates the new value against the question kind.
func (c *AnswerUpdateCommand) Execute(ctx context.Context, input AnswerUpdateInput) error {
	if c.answers == nil {
		return types.ErrMissingAnswerRepository
	}
	if c.questions == nil {
		return types.ErrMissingQuestionRepository
	}
	if err := input.Validate(); err != nil {
		return err
	}
	existing, err := c.answers.GetAnswer(ctx, input.AnswerID)
	if err != nil {
		return err
	}
	if existing == nil {
		return types.ErrAnswerNotFound()
	}
	question, err := c.questions.GetQuestion(ctx, existing.QuestionID)
	if err != nil {
		return err
	}
	if question == nil {
		return types.ErrQuestionNotFound()
	}
	if err := validateAnswerValue(question.Type, input.Value); err != nil {
		return err
	}

	patched := *existing
	patched.Value = input.Value
	updated, err := c.answers.UpdateAnswer(ctx, patched)
	if err != nil {
		return err
	}
	if input.Result != nil {
		*input.Result = *updated
	}
	emitAnswerHook(ctx, c.hooks, types.AnswerEvent{
		AnswerID:   updated.ID,
		QuestionID: updated.QuestionID,
		UserID:     updated.UserID,
		Action:     "answer.updated",
		OccurredAt: now(c.clock),
		Answer:     *updated,
	})
	return nil
}
