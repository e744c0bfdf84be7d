package types

import (
	"context"

	"github.com/google/uuid"
)

// ProfileRepository persists user profiles.
type ProfileRepository interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*UserProfile, error)
	ListProfiles(ctx context.Context, filter ProfileFilter) ([]UserProfile, error)
	UpsertProfile(ctx context.Context, profile UserProfile) (*UserProfile, error)
}

// ProfileFilter narrows profile listings.
type ProfileFilter struct {
	IDs    []uuid.UUID
	Region string
}

// QuestionRepository persists questions with their categories and targets.
type QuestionRepository interface {
	GetQuestion(ctx context.Context, id uuid.UUID) (*Question, error)
	ListQuestions(ctx context.Context, filter QuestionFilter) ([]Question, error)
	CreateQuestion(ctx context.Context, question Question) (*Question, error)
	UpdateQuestion(ctx context.Context, question Question) (*Question, error)
	TargetQuestion(ctx context.Context, target TargetedQuestion) (*TargetedQuestion, error)
	ListTargets(ctx context.Context, questionID uuid.UUID) ([]TargetedQuestion, error)
}

// QuestionFilter narrows question listings. Results are newest first.
type QuestionFilter struct {
	AskerID  uuid.UUID
	Category string
	ReplyTo  uuid.UUID
	Limit    int
}

// AnswerRepository persists answers and exposes respondent joined reads.
type AnswerRepository interface {
	GetAnswer(ctx context.Context, id uuid.UUID) (*Answer, error)
	ListAnswers(ctx context.Context, filter AnswerFilter) ([]Answer, error)
	ListAnswerRows(ctx context.Context, questionID uuid.UUID) ([]AnswerRow, error)
	FindUserAnswer(ctx context.Context, questionID, userID uuid.UUID) (*Answer, error)
	SaveAnswer(ctx context.Context, answer Answer, single bool) (*Answer, error)
	UpdateAnswer(ctx context.Context, answer Answer) (*Answer, error)
}

// AnswerFilter narrows answer listings.
type AnswerFilter struct {
	QuestionID uuid.UUID
	UserID     uuid.UUID
}

// ConnectionRepository persists profile connections.
type ConnectionRepository interface {
	CreateConnection(ctx context.Context, conn Connection) (*Connection, error)
	ListConnections(ctx context.Context, userID uuid.UUID) ([]Connection, error)
	ConnectedIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// Type implements gocommand.Message.
func (ProfileFilter) Type() string {
	return "query.profile.list"
}

// Validate implements gocommand.Message.
func (ProfileFilter) Validate() error {
	return nil
}

// Type implements gocommand.Message.
func (QuestionFilter) Type() string {
	return "query.question.filter"
}

// Validate implements gocommand.Message.
func (QuestionFilter) Validate() error {
	return nil
}

// Type implements gocommand.Message.
func (AnswerFilter) Type() string {
	return "query.answer.list"
}

// Validate implements gocommand.Message.
func (AnswerFilter) Validate() error {
	return nil
}
