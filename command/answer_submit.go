package command

import (
	"context"
	"fmt"

	gocommand "github.com/goliatone/go-command"
	featuregate "github.com/goliatone/go-featuregate/gate"
	"github.com/goliatone/go-polls/pkg/telemetry"
	"github.com/goliatone/go-polls/pkg/types"
	"github.com/google/uuid"
)

// DefaultAnswerValue is stored when a submission omits the value.
const DefaultAnswerValue = 1

// AnswerCommandConfig wires dependencies for answer commands.
type AnswerCommandConfig struct {
	Answers             types.AnswerRepository
	Questions           types.QuestionRepository
	Profiles            types.ProfileRepository
	FeatureGate         featuregate.FeatureGate
	EnforceSingleAnswer bool
	Hooks               types.Hooks
	Clock               types.Clock
	Logger              types.Logger
	Metrics             telemetry.Metrics
}

// AnswerSubmitInput records a respondent's answer. A nil UserID submits
// anonymously.
type AnswerSubmitInput struct {
	QuestionID uuid.UUID
	UserID     uuid.UUID
	Value      *int
	Result     *types.Answer
}

// Type implements gocommand.Message.
func (AnswerSubmitInput) Type() string {
	return "command.answer.submit"
}

// Validate implements gocommand.Message.
func (input AnswerSubmitInput) Validate() error {
	if input.QuestionID == uuid.Nil {
		return ErrQuestionIDRequired
	}
	return nil
}

func (input AnswerSubmitInput) value() int {
	if input.Value == nil {
		return DefaultAnswerValue
	}
	return *input.Value
}

// AnswerSubmitCommand validates and stores answers.
type AnswerSubmitCommand struct {
	answers   types.AnswerRepository
	questions types.QuestionRepository
	profiles  types.ProfileRepository
	gate      featuregate.FeatureGate
	single    bool
	hooks     types.Hooks
	clock     types.Clock
	logger    types.Logger
	metrics   telemetry.Metrics
}

// NewAnswerSubmitCommand constructs the handler.
func NewAnswerSubmitCommand(cfg AnswerCommandConfig) *AnswerSubmitCommand {
	return &AnswerSubmitCommand{
		answers:   cfg.Answers,
		questions: cfg.Questions,
		profiles:  cfg.Profiles,
		gate:      cfg.FeatureGate,
		single:    cfg.EnforceSingleAnswer,
		hooks:     safeHooks(cfg.Hooks),
		clock:     safeClock(cfg.Clock),
		logger:    safeLogger(cfg.Logger),
		metrics:   safeMetrics(cfg.Metrics),
	}
}

var _ gocommand.Commander[AnswerSubmitInput] = (*AnswerSubmitCommand)(nil)

// Execute checks the question, the respondent and the value before storing.
func (c *AnswerSubmitCommand) Execute(ctx context.Context, input AnswerSubmitInput) error {
	if c.answers == nil {
		return types.ErrMissingAnswerRepository
	}
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

	if input.UserID == types.AnonymousUserID {
		enabled, err := featureEnabled(ctx, c.gate, types.FeatureAnonymousAnswers, uuid.Nil)
		if err != nil {
			return err
		}
		if !enabled {
			return types.ErrAnonymousAnswersDisabled()
		}
	} else {
		profile, err := c.profiles.GetProfile(ctx, input.UserID)
		if err != nil {
			return err
		}
		if profile == nil {
			return types.ErrProfileNotFound()
		}
	}

	value := input.value()
	if err := validateAnswerValue(question.Type, value); err != nil {
		return err
	}

	saved, err := c.answers.SaveAnswer(ctx, types.Answer{
		UserID:     input.UserID,
		QuestionID: question.ID,
		Value:      value,
	}, c.single)
	if err != nil {
		c.logger.Error("answer submit failed", err, "question_id", question.ID)
		return err
	}
	c.metrics.AnswerSubmitted(question.Type.Kind().String())
	if input.Result != nil {
		*input.Result = *saved
	}
	emitAnswerHook(ctx, c.hooks, types.AnswerEvent{
		AnswerID:   saved.ID,
		QuestionID: saved.QuestionID,
		UserID:     saved.UserID,
		Action:     "answer.submitted",
		OccurredAt: now(c.clock),
		Answer:     *saved,
	})
	return nil
}

// validateAnswerValue accepts option indexes for discrete kinds and any
// magnitude for range questions.
func validateAnswerValue(qt types.QuestionType, value int) error {
	switch qt.Kind() {
	case types.KindDiscrete:
		if value < 0 || value >= types.OptionSlots {
			return invalidField("answer",
				fmt.Sprintf("must be an option index between 0 and %d", types.OptionSlots-1), value)
		}
		return nil
	case types.KindRange:
		return nil
	default:
		return invalidField("questionType", "unknown question type", string(qt))
	}
}
