package command

import (
	"context"
	"strings"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-polls/options"
	"github.com/goliatone/go-polls/pkg/types"
	"github.com/google/uuid"
)

// QuestionUpdateInput patches the text, type or option slots of a question.
// Categories, asker, link, reply target and answers are never touched.
type QuestionUpdateInput struct {
	QuestionID uuid.UUID
	Patch      types.QuestionPatch
	Result     *types.Question `validate:"-"`
}

// Type implements gocommand.Message.
func (QuestionUpdateInput) Type() string {
	return "command.question.update"
}

// Validate implements gocommand.Message.
func (input QuestionUpdateInput) Validate() error {
	if input.QuestionID == uuid.Nil {
		return ErrQuestionIDRequired
	}
	if input.Patch.Empty() {
		return ErrEmptyPatch
	}
	if input.Patch.Text != nil && strings.TrimSpace(*input.Patch.Text) == "" {
		return invalidField("text", "is required", "")
	}
	if input.Patch.Type != nil {
		if _, err := types.ParseQuestionType(string(*input.Patch.Type)); err != nil {
			return invalidField("questionType", err.Error(), string(*input.Patch.Type))
		}
	}
	return validateFields(input)
}

// QuestionUpdateCommand applies question patches.
type QuestionUpdateCommand struct {
	questions types.QuestionRepository
	hooks     types.Hooks
	clock     types.Clock
	logger    types.Logger
}

// NewQuestionUpdateCommand constructs the handler.
func NewQuestionUpdateCommand(cfg QuestionCommandConfig) *QuestionUpdateCommand {
	return &QuestionUpdateCommand{
		questions: cfg.Questions,
		hooks:     safeHooks(cfg.Hooks),
		clock:     safeClock(cfg.Clock),
		logger:    safeLogger(cfg.Logger),
	}
}

var _ gocommand.Commander[QuestionUpdateInput] = (*QuestionUpdateCommand)(nil)

// Execute merges the patch and re-validates the resulting option set.
func (c *QuestionUpdateCommand) Execute(ctx context.Context, input QuestionUpdateInput) error {
	if c.questions == nil {
		return types.ErrMissingQuestionRepository
	}
	if err := input.Validate(); err != nil {
		return err
	}
	existing, err := c.questions.GetQuestion(ctx, input.QuestionID)
	if err != nil {
		return err
	}
	if existing == nil {
		return types.ErrQuestionNotFound()
	}

	merged := *existing
	applyQuestionPatch(&merged, input.Patch)
	if err := options.Validate(merged.Options); err != nil {
		return err
	}

	updated, err := c.questions.UpdateQuestion(ctx, merged)
	if err != nil {
		c.logger.Error("question update failed", err, "question_id", input.QuestionID)
		return err
	}
	if input.Result != nil {
		*input.Result = *updated
	}
	emitQuestionHook(ctx, c.hooks, types.QuestionEvent{
		QuestionID: updated.ID,
		AskerID:    updated.AskerID,
		Action:     "question.updated",
		OccurredAt: now(c.clock),
		Question:   *updated,
	})
	return nil
}

func applyQuestionPatch(question *types.Question, patch types.QuestionPatch) {
	if patch.Text != nil {
		question.Text = strings.TrimSpace(*patch.Text)
	}
	if patch.Type != nil {
		qt, _ := types.ParseQuestionType(string(*patch.Type))
		question.Type = qt
	}
	for i, opt := range patch.Options {
		if opt != nil {
			question.Options[i] = strings.TrimSpace(*opt)
		}
	}
}
