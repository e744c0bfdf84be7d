package query

import (
	"context"

	"github.com/goliatone/go-masker"
	"github.com/goliatone/go-polls/options"
	"github.com/goliatone/go-polls/pkg/types"
	"github.com/goliatone/go-polls/stats"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// QuestionQueryConfig wires dependencies for question reads.
type QuestionQueryConfig struct {
	Questions types.QuestionRepository
	Answers   types.AnswerRepository
	Profiles  types.ProfileRepository
	Masker    *masker.Masker
	Tracer    trace.Tracer
	Logger    types.Logger
}

type payloadBuilder struct {
	answers  types.AnswerRepository
	profiles types.ProfileRepository
	masker   *masker.Masker
}

func (cfg QuestionQueryConfig) builder() payloadBuilder {
	return payloadBuilder{
		answers:  cfg.Answers,
		profiles: cfg.Profiles,
		masker:   cfg.Masker,
	}
}

func (b payloadBuilder) ready() error {
	if b.answers == nil {
		return types.ErrMissingAnswerRepository
	}
	if b.profiles == nil {
		return types.ErrMissingProfileRepository
	}
	return nil
}

// build loads the asker, the answer rows and the requester's own answer
// concurrently and assembles the question payload.
func (b payloadBuilder) build(ctx context.Context, question types.Question, requester *types.Requester) (types.QuestionPayload, error) {
	var (
		asker *types.UserProfile
		rows  []types.AnswerRow
		own   *types.Answer
	)
	group, gctx := errgroup.WithContext(ctx)
	if question.AskerID != uuid.Nil {
		group.Go(func() error {
			profile, err := b.profiles.GetProfile(gctx, question.AskerID)
			asker = profile
			return err
		})
	}
	group.Go(func() error {
		loaded, err := b.answers.ListAnswerRows(gctx, question.ID)
		rows = loaded
		return err
	})
	if requester.IsAuthenticated() {
		group.Go(func() error {
			answer, err := b.answers.FindUserAnswer(gctx, question.ID, requester.ProfileID())
			own = answer
			return err
		})
	}
	if err := group.Wait(); err != nil {
		return types.QuestionPayload{}, err
	}
	return b.assemble(question, requester, asker, rows, own), nil
}

func (b payloadBuilder) assemble(question types.Question, requester *types.Requester, asker *types.UserProfile, rows []types.AnswerRow, own *types.Answer) types.QuestionPayload {
	payload := types.QuestionPayload{
		ID:           question.ID,
		Text:         question.Text,
		QuestionType: question.Type,
		Date:         question.Date,
		Categories:   question.Categories,
		Option1:      question.Options[0],
		Option2:      question.Options[1],
		Option3:      question.Options[2],
		Option4:      question.Options[3],
		Option5:      question.Options[4],
		Answers:      make([]types.AnswerPayload, 0, len(rows)),
		Link:         question.Link,
		ReplyTo:      question.ReplyTo,
		Options:      options.ToArray(question.Options),
		IsUser:       requester.IsAuthenticated(),
		Quick:        stats.Quick(question.Type.Kind(), rows),
	}
	if payload.Categories == nil {
		payload.Categories = []string{}
	}
	if asker != nil {
		profile := types.NewProfilePayload(*asker)
		if requester.ProfileID() != asker.ID {
			profile = maskProfile(b.masker, profile)
		}
		payload.Asker = &profile
	}
	for _, row := range rows {
		payload.Answers = append(payload.Answers, types.NewAnswerPayload(row.Answer))
	}
	if own != nil && payload.IsUser {
		answer := types.NewAnswerPayload(*own)
		payload.UsersAnswer = &answer
	}
	return payload
}
