package crudsvc

import (
	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-crud"
	"github.com/goliatone/go-polls/command"
	"github.com/goliatone/go-polls/options"
	"github.com/goliatone/go-polls/pkg/types"
	"github.com/goliatone/go-polls/question"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
)

// QuestionServiceConfig wires dependencies for the question CRUD adapter.
type QuestionServiceConfig struct {
	Create gocommand.Commander[command.QuestionCreateInput]
	Update gocommand.Commander[command.QuestionUpdateInput]
	Repo   types.QuestionRepository
}

// QuestionService routes go-crud operations through the question commands so
// option validation and the category transaction stay intact. Questions are
// never deleted.
type QuestionService struct {
	create     gocommand.Commander[command.QuestionCreateInput]
	update     gocommand.Commander[command.QuestionUpdateInput]
	repo       types.QuestionRepository
	requesters RequesterResolver
	logger     types.Logger
}

// NewQuestionService constructs the adapter.
func NewQuestionService(cfg QuestionServiceConfig, opts ...ServiceOption) *QuestionService {
	options := applyOptions(opts)
	return &QuestionService{
		create:     cfg.Create,
		update:     cfg.Update,
		repo:       cfg.Repo,
		requesters: options.requesters,
		logger:     options.logger,
	}
}

var _ crud.Service[*question.Record] = (*QuestionService)(nil)

// Create stores the record. A blank asker defaults to the requester. Options
// come from the "options" list when present, else option1..option5; labels
// come from "categories" in the body, else the comma separated query value.
func (s *QuestionService) Create(ctx crud.Context, record *question.Record) (*question.Record, error) {
	if s.create == nil {
		return nil, notWired("question create command")
	}
	requester, err := s.requesters.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	askerID := record.AskerID
	if askerID == uuid.Nil {
		askerID = requester.ProfileID()
	}
	slots, err := recordOptions(record)
	if err != nil {
		return nil, err
	}
	categories := record.Categories
	if len(categories) == 0 {
		categories = queryList(ctx, "categories")
	}
	result := types.Question{}
	input := command.QuestionCreateInput{
		AskerID:      askerID,
		Text:         record.Text,
		QuestionType: types.QuestionType(record.QuestionType),
		Link:         record.RelatedLink,
		Options:      slots,
		ReplyTo:      record.ReplyTo,
		Categories:   categories,
		Result:       &result,
	}
	if err := s.create.Execute(ctx.UserContext(), input); err != nil {
		return nil, err
	}
	return question.NewRecord(result), nil
}

func (s *QuestionService) CreateBatch(ctx crud.Context, records []*question.Record) ([]*question.Record, error) {
	created := make([]*question.Record, 0, len(records))
	for _, record := range records {
		rec, err := s.Create(ctx, record)
		if err != nil {
			return nil, err
		}
		created = append(created, rec)
	}
	return created, nil
}

// Update patches text, type and options. Blank text or type are left as is;
// options are replaced as a whole when any slot is set.
func (s *QuestionService) Update(ctx crud.Context, record *question.Record) (*question.Record, error) {
	if s.update == nil {
		return nil, notWired("question update command")
	}
	patch := types.QuestionPatch{Text: optional(record.Text)}
	if record.QuestionType != "" {
		qt := types.QuestionType(record.QuestionType)
		patch.Type = &qt
	}
	slots, err := recordOptions(record)
	if err != nil {
		return nil, err
	}
	if slots != ([types.OptionSlots]string{}) {
		for i := range slots {
			patch.Options[i] = &slots[i]
		}
	}
	result := types.Question{}
	input := command.QuestionUpdateInput{
		QuestionID: record.ID,
		Patch:      patch,
		Result:     &result,
	}
	if err := s.update.Execute(ctx.UserContext(), input); err != nil {
		return nil, err
	}
	return question.NewRecord(result), nil
}

func (s *QuestionService) UpdateBatch(ctx crud.Context, records []*question.Record) ([]*question.Record, error) {
	updated := make([]*question.Record, 0, len(records))
	for _, record := range records {
		rec, err := s.Update(ctx, record)
		if err != nil {
			return nil, err
		}
		updated = append(updated, rec)
	}
	return updated, nil
}

func (s *QuestionService) Delete(crud.Context, *question.Record) error {
	return notSupported(crud.OpDelete)
}

func (s *QuestionService) DeleteBatch(crud.Context, []*question.Record) error {
	return notSupported(crud.OpDeleteBatch)
}

// Index lists question rows newest first, filtered by asker_id, category and
// reply_to. Records carry the option and category lists only; the computed
// representation (quick stats, the requester's answer) is served by
// query.QuestionListQuery and query.QuestionDetailQuery.
func (s *QuestionService) Index(ctx crud.Context, _ []repository.SelectCriteria) ([]*question.Record, int, error) {
	if s.repo == nil {
		return nil, 0, notWired("question repository")
	}
	questions, err := s.repo.ListQuestions(ctx.UserContext(), types.QuestionFilter{
		AskerID:  queryUUID(ctx, "asker_id"),
		Category: ctx.Query("category"),
		ReplyTo:  queryUUID(ctx, "reply_to"),
		Limit:    queryInt(ctx, "limit", 50),
	})
	if err != nil {
		return nil, 0, err
	}
	out := make([]*question.Record, 0, len(questions))
	for _, q := range questions {
		out = append(out, question.NewRecord(q))
	}
	return out, len(out), nil
}

// Show returns the question row with its option and category lists.
func (s *QuestionService) Show(ctx crud.Context, id string, _ []repository.SelectCriteria) (*question.Record, error) {
	if s.repo == nil {
		return nil, notWired("question repository")
	}
	questionID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	found, err := s.repo.GetQuestion(ctx.UserContext(), questionID)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, types.ErrQuestionNotFound()
	}
	return question.NewRecord(*found), nil
}

// recordOptions reads the option slots of a decoded record through the
// option normalizer, preferring the list form over the five columns.
func recordOptions(record *question.Record) ([types.OptionSlots]string, error) {
	payload := make(map[string]any, types.OptionSlots)
	if record.Options != nil {
		payload["options"] = record.Options
	} else {
		columns := [types.OptionSlots]string{record.Option1, record.Option2, record.Option3, record.Option4, record.Option5}
		for i, value := range columns {
			payload[options.FieldName(i)] = value
		}
	}
	return options.FromPayload(payload)
}
