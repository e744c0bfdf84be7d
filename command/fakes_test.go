package command

import (
	"context"
	"sync"
	"time"

	featuregate "github.com/goliatone/go-featuregate/gate"
	"github.com/goliatone/go-polls/pkg/types"
	"github.com/google/uuid"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]types.UserProfile
	upserts  int
}

func newFakeProfileRepo(profiles ...types.UserProfile) *fakeProfileRepo {
	repo := &fakeProfileRepo{profiles: map[uuid.UUID]types.UserProfile{}}
	for _, p := range profiles {
		repo.profiles[p.ID] = p
	}
	return repo
}

func (r *fakeProfileRepo) GetProfile(_ context.Context, id uuid.UUID) (*types.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *fakeProfileRepo) ListProfiles(context.Context, types.ProfileFilter) ([]types.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]types.UserProfile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProfileRepo) UpsertProfile(_ context.Context, profile types.UserProfile) (*types.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upserts++
	r.profiles[profile.ID] = profile
	return &profile, nil
}

type fakeQuestionRepo struct {
	questions map[uuid.UUID]types.Question
	targets   map[[2]uuid.UUID]types.TargetedQuestion
	created   int
	updated   int
}

func newFakeQuestionRepo(questions ...types.Question) *fakeQuestionRepo {
	repo := &fakeQuestionRepo{
		questions: map[uuid.UUID]types.Question{},
		targets:   map[[2]uuid.UUID]types.TargetedQuestion{},
	}
	for _, q := range questions {
		repo.questions[q.ID] = q
	}
	return repo
}

func (r *fakeQuestionRepo) GetQuestion(_ context.Context, id uuid.UUID) (*types.Question, error) {
	q, ok := r.questions[id]
	if !ok {
		return nil, nil
	}
	return &q, nil
}

func (r *fakeQuestionRepo) ListQuestions(context.Context, types.QuestionFilter) ([]types.Question, error) {
	out := make([]types.Question, 0, len(r.questions))
	for _, q := range r.questions {
		out = append(out, q)
	}
	return out, nil
}

func (r *fakeQuestionRepo) CreateQuestion(_ context.Context, q types.Question) (*types.Question, error) {
	r.created++
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	r.questions[q.ID] = q
	return &q, nil
}

func (r *fakeQuestionRepo) UpdateQuestion(_ context.Context, q types.Question) (*types.Question, error) {
	r.updated++
	r.questions[q.ID] = q
	return &q, nil
}

func (r *fakeQuestionRepo) TargetQuestion(_ context.Context, target types.TargetedQuestion) (*types.TargetedQuestion, error) {
	key := [2]uuid.UUID{target.UserID, target.QuestionID}
	if existing, ok := r.targets[key]; ok {
		return &existing, nil
	}
	target.ID = uuid.New()
	r.targets[key] = target
	return &target, nil
}

func (r *fakeQuestionRepo) ListTargets(_ context.Context, questionID uuid.UUID) ([]types.TargetedQuestion, error) {
	var out []types.TargetedQuestion
	for _, t := range r.targets {
		if t.QuestionID == questionID {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeAnswerRepo struct {
	answers    map[uuid.UUID]types.Answer
	lastSingle bool
	saves      int
}

func newFakeAnswerRepo(answers ...types.Answer) *fakeAnswerRepo {
	repo := &fakeAnswerRepo{answers: map[uuid.UUID]types.Answer{}}
	for _, a := range answers {
		repo.answers[a.ID] = a
	}
	return repo
}

func (r *fakeAnswerRepo) GetAnswer(_ context.Context, id uuid.UUID) (*types.Answer, error) {
	a, ok := r.answers[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *fakeAnswerRepo) ListAnswers(_ context.Context, filter types.AnswerFilter) ([]types.Answer, error) {
	var out []types.Answer
	for _, a := range r.answers {
		if filter.QuestionID != uuid.Nil && a.QuestionID != filter.QuestionID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeAnswerRepo) ListAnswerRows(context.Context, uuid.UUID) ([]types.AnswerRow, error) {
	return nil, nil
}

func (r *fakeAnswerRepo) FindUserAnswer(_ context.Context, questionID, userID uuid.UUID) (*types.Answer, error) {
	for _, a := range r.answers {
		if a.QuestionID == questionID && a.UserID == userID {
			return &a, nil
		}
	}
	return nil, nil
}

func (r *fakeAnswerRepo) SaveAnswer(_ context.Context, answer types.Answer, single bool) (*types.Answer, error) {
	r.saves++
	r.lastSingle = single
	if single {
		for id, a := range r.answers {
			if a.QuestionID == answer.QuestionID && a.UserID == answer.UserID {
				a.Value = answer.Value
				r.answers[id] = a
				return &a, nil
			}
		}
	}
	answer.ID = uuid.New()
	r.answers[answer.ID] = answer
	return &answer, nil
}

func (r *fakeAnswerRepo) UpdateAnswer(_ context.Context, answer types.Answer) (*types.Answer, error) {
	r.answers[answer.ID] = answer
	return &answer, nil
}

type fakeConnectionRepo struct {
	conns []types.Connection
}

func (r *fakeConnectionRepo) CreateConnection(_ context.Context, conn types.Connection) (*types.Connection, error) {
	for _, existing := range r.conns {
		if (existing.User1 == conn.User1 && existing.User2 == conn.User2) ||
			(existing.User1 == conn.User2 && existing.User2 == conn.User1) {
			return &existing, nil
		}
	}
	conn.ID = uuid.New()
	r.conns = append(r.conns, conn)
	return &conn, nil
}

func (r *fakeConnectionRepo) ListConnections(_ context.Context, userID uuid.UUID) ([]types.Connection, error) {
	var out []types.Connection
	for _, c := range r.conns {
		if c.User1 == userID || c.User2 == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeConnectionRepo) ConnectedIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	conns, _ := r.ListConnections(ctx, userID)
	out := make([]uuid.UUID, 0, len(conns))
	for _, c := range conns {
		out = append(out, c.Other(userID))
	}
	return out, nil
}

type recordingMetrics struct {
	questions []string
	answers   []string
}

func (m *recordingMetrics) QuestionCreated(kind string) {
	m.questions = append(m.questions, kind)
}

func (m *recordingMetrics) AnswerSubmitted(kind string) {
	m.answers = append(m.answers, kind)
}

func (m *recordingMetrics) StatsComputed(string, time.Duration) {}

type stubFeatureGate struct {
	enabled bool
	err     error
	keys    []string
}

func (s *stubFeatureGate) Enabled(_ context.Context, key string, _ ...featuregate.ResolveOption) (bool, error) {
	s.keys = append(s.keys, key)
	if s.err != nil {
		return false, s.err
	}
	return s.enabled, nil
}
