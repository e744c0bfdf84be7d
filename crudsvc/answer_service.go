package crudsvc

import (
	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-crud"
	"github.com/goliatone/go-polls/answer"
	"github.com/goliatone/go-polls/command"
	"github.com/goliatone/go-polls/pkg/types"
	"github.com/goliatone/go-polls/query"
	repository "github.com/goliatone/go-repository-bun"
)

// AnswerServiceConfig wires dependencies for the answer CRUD adapter.
type AnswerServiceConfig struct {
	Submit gocommand.Commander[command.AnswerSubmitInput]
	Update gocommand.Commander[command.AnswerUpdateInput]
	List   gocommand.Querier[types.AnswerFilter, []types.Answer]
	Detail gocommand.Querier[query.AnswerDetailInput, *types.Answer]
}

// AnswerService adapts answer submission to go-crud. The respondent is always
// the resolved requester; unauthenticated requests answer anonymously.
type AnswerService struct {
	submit     gocommand.Commander[command.AnswerSubmitInput]
	update     gocommand.Commander[command.AnswerUpdateInput]
	list       gocommand.Querier[types.AnswerFilter, []types.Answer]
	detail     gocommand.Querier[query.AnswerDetailInput, *types.Answer]
	requesters RequesterResolver
	logger     types.Logger
}

// NewAnswerService constructs the adapter.
func NewAnswerService(cfg AnswerServiceConfig, opts ...ServiceOption) *AnswerService {
	options := applyOptions(opts)
	return &AnswerService{
		submit:     cfg.Submit,
		update:     cfg.Update,
		list:       cfg.List,
		detail:     cfg.Detail,
		requesters: options.requesters,
		logger:     options.logger,
	}
}

var _ crud.Service[*answer.Record] = (*AnswerService)(nil)

func (s *AnswerService) Create(ctx crud.Context, record *answer.Record) (*answer.Record, error) {
	if s.submit == nil {
		return nil, notWired("answer submit command")
	}
	requester, err := s.requesters.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	value := record.Value
	result := types.Answer{}
	input := command.AnswerSubmitInput{
		QuestionID: record.QuestionID,
		UserID:     requester.ProfileID(),
		Value:      &value,
		Result:     &result,
	}
	if err := s.submit.Execute(ctx.UserContext(), input); err != nil {
		return nil, err
	}
	return answer.NewRecord(result), nil
}

func (s *AnswerService) CreateBatch(ctx crud.Context, records []*answer.Record) ([]*answer.Record, error) {
	created := make([]*answer.Record, 0, len(records))
	for _, record := range records {
		rec, err := s.Create(ctx, record)
		if err != nil {
			return nil, err
		}
		created = append(created, rec)
	}
	return created, nil
}

func (s *AnswerService) Update(ctx crud.Context, record *answer.Record) (*answer.Record, error) {
	if s.update == nil {
		return nil, notWired("answer update command")
	}
	result := types.Answer{}
	input := command.AnswerUpdateInput{
		AnswerID: record.ID,
		Value:    record.Value,
		Result:   &result,
	}
	if err := s.update.Execute(ctx.UserContext(), input); err != nil {
		return nil, err
	}
	return answer.NewRecord(result), nil
}

func (s *AnswerService) UpdateBatch(ctx crud.Context, records []*answer.Record) ([]*answer.Record, error) {
	updated := make([]*answer.Record, 0, len(records))
	for _, record := range records {
		rec, err := s.Update(ctx, record)
		if err != nil {
			return nil, err
		}
		updated = append(updated, rec)
	}
	return updated, nil
}

func (s *AnswerService) Delete(crud.Context, *answer.Record) error {
	return notSupported(crud.OpDelete)
}

func (s *AnswerService) DeleteBatch(crud.Context, []*answer.Record) error {
	return notSupported(crud.OpDeleteBatch)
}

func (s *AnswerService) Index(ctx crud.Context, _ []repository.SelectCriteria) ([]*answer.Record, int, error) {
	if s.list == nil {
		return nil, 0, notWired("answer list query")
	}
	answers, err := s.list.Query(ctx.UserContext(), types.AnswerFilter{
		QuestionID: queryUUID(ctx, "question_id"),
		UserID:     queryUUID(ctx, "user_id"),
	})
	if err != nil {
		return nil, 0, err
	}
	out := make([]*answer.Record, 0, len(answers))
	for _, a := range answers {
		out = append(out, answer.NewRecord(a))
	}
	return out, len(out), nil
}

func (s *AnswerService) Show(ctx crud.Context, id string, _ []repository.SelectCriteria) (*answer.Record, error) {
	if s.detail == nil {
		return nil, notWired("answer detail query")
	}
	answerID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	found, err := s.detail.Query(ctx.UserContext(), query.AnswerDetailInput{AnswerID: answerID})
	if err != nil {
		return nil, err
	}
	return answer.NewRecord(*found), nil
}
