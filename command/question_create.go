package command

import (
	"context"
	"strings"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-polls/options"
	"github.com/goliatone/go-polls/pkg/telemetry"
	"github.com/goliatone/go-polls/pkg/types"
	"github.com/google/uuid"
)

// QuestionCommandConfig wires dependencies for question commands.
type QuestionCommandConfig struct {
	Questions types.QuestionRepository
	Profiles  types.ProfileRepository
	Hooks     types.Hooks
	Clock     types.Clock
	Logger    types.Logger
	Metrics   telemetry.Metrics
}

// QuestionCreateInput captures a new question. The asker may be given as a
// raw id or as a nested profile; AskerID wins when both are set.
type QuestionCreateInput struct {
	AskerID      uuid.UUID
	Asker        *types.UserProfile        `validate:"-"`
	Text         string                    `validate:"required,max=200"`
	QuestionType types.QuestionType        `validate:"required"`
	Link         string                    `validate:"omitempty,max=500"`
	Options      [types.OptionSlots]string `validate:"dive,max=50"`
	ReplyTo      *uuid.UUID                `validate:"-"`
	Categories   []string                  `validate:"dive,max=20"`
	Result       *types.Question           `validate:"-"`
}

// Type implements gocommand.Message.
func (QuestionCreateInput) Type() string {
	return "command.question.create"
}

// Validate implements gocommand.Message.
func (input QuestionCreateInput) Validate() error {
	if input.askerID() == uuid.Nil {
		return ErrAskerRequired
	}
	input.Text = strings.TrimSpace(input.Text)
	if err := validateFields(input); err != nil {
		return err
	}
	if _, err := types.ParseQuestionType(string(input.QuestionType)); err != nil {
		return invalidField("questionType", err.Error(), string(input.QuestionType))
	}
	return options.Validate(input.Options)
}

func (input QuestionCreateInput) askerID() uuid.UUID {
	if input.AskerID != uuid.Nil {
		return input.AskerID
	}
	if input.Asker != nil {
		return input.Asker.ID
	}
	return uuid.Nil
}

// QuestionCreateCommand validates and stores a question with its categories.
type QuestionCreateCommand struct {
	questions types.QuestionRepository
	profiles  types.ProfileRepository
	hooks     types.Hooks
	clock     types.Clock
	logger    types.Logger
	metrics   telemetry.Metrics
}

// NewQuestionCreateCommand constructs the handler.
func NewQuestionCreateCommand(cfg QuestionCommandConfig) *QuestionCreateCommand {
	return &QuestionCreateCommand{
		questions: cfg.Questions,
		profiles:  cfg.Profiles,
		hooks:     safeHooks(cfg.Hooks),
		clock:     safeClock(cfg.Clock),
		logger:    safeLogger(cfg.Logger),
		metrics:   safeMetrics(cfg.Metrics),
	}
}

var _ gocommand.Commander[QuestionCreateInput] = (*QuestionCreateCommand)(nil)

// Execute checks the asker and reply target exist before persisting.
func (c *QuestionCreateCommand) Execute(ctx context.Context, input QuestionCreateInput) error {
	if c.questions == nil {
		return types.ErrMissingQuestionRepository
	}
	if c.profiles == nil {
		return types.ErrMissingProfileRepository
	}
	if err := input.Validate(); err != nil {
		return err
	}
	askerID := input.askerID()
	asker, err := c.profiles.GetProfile(ctx, askerID)
	if err != nil {
		return err
	}
	if asker == nil {
		return types.ErrProfileNotFound()
	}
	if input.ReplyTo != nil && *input.ReplyTo != uuid.Nil {
		parent, err := c.questions.GetQuestion(ctx, *input.ReplyTo)
		if err != nil {
			return err
		}
		if parent == nil {
			return types.ErrQuestionNotFound()
		}
	}

	qt, _ := types.ParseQuestionType(string(input.QuestionType))
	question := types.Question{
		AskerID:    askerID,
		Text:       strings.TrimSpace(input.Text),
		Type:       qt,
		Date:       now(c.clock),
		Link:       strings.TrimSpace(input.Link),
		Options:    trimSlots(input.Options),
		Categories: append([]string(nil), input.Categories...),
	}
	if input.ReplyTo != nil && *input.ReplyTo != uuid.Nil {
		replyTo := *input.ReplyTo
		question.ReplyTo = &replyTo
	}

	created, err := c.questions.CreateQuestion(ctx, question)
	if err != nil {
		c.logger.Error("question create failed", err, "asker_id", askerID)
		return err
	}
	c.metrics.QuestionCreated(created.Type.Kind().String())
	if input.Result != nil {
		*input.Result = *created
	}
	emitQuestionHook(ctx, c.hooks, types.QuestionEvent{
		QuestionID: created.ID,
		AskerID:    askerID,
		Action:     "question.created",
		OccurredAt: now(c.clock),
		Question:   *created,
	})
	return nil
}

func trimSlots(slots [types.OptionSlots]string) [types.OptionSlots]string {
	for i := range slots {
		slots[i] = strings.TrimSpace(slots[i])
	}
	return slots
}
