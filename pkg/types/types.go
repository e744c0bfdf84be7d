package types

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// AnonymousUserID identifies answers submitted without a registered profile.
var AnonymousUserID = uuid.Nil

// Requester is the resolved identity issuing a read or write. A nil requester
// or one without Authenticated set is treated as anonymous.
type Requester struct {
	Authenticated bool
	Profile       *UserProfile
}

// IsAuthenticated reports whether the requester carries a usable profile.
func (r *Requester) IsAuthenticated() bool {
	return r != nil && r.Authenticated && r.Profile != nil && r.Profile.ID != uuid.Nil
}

// ProfileID returns the requester profile id or uuid.Nil for anonymous callers.
func (r *Requester) ProfileID() uuid.UUID {
	if !r.IsAuthenticated() {
		return uuid.Nil
	}
	return r.Profile.ID
}

// QuestionEvent is emitted after a question is created or updated.
type QuestionEvent struct {
	QuestionID uuid.UUID
	AskerID    uuid.UUID
	Action     string
	OccurredAt time.Time
	Question   Question
}

// AnswerEvent is emitted after an answer is stored.
type AnswerEvent struct {
	AnswerID   uuid.UUID
	QuestionID uuid.UUID
	UserID     uuid.UUID
	Action     string
	OccurredAt time.Time
	Answer     Answer
}

// ConnectionEvent is emitted after two profiles are connected.
type ConnectionEvent struct {
	ConnectionID uuid.UUID
	User1        uuid.UUID
	User2        uuid.UUID
	OccurredAt   time.Time
}

// ProfileEvent signals that a profile mutation occurred.
type ProfileEvent struct {
	UserID     uuid.UUID
	OccurredAt time.Time
	Profile    UserProfile
}

// Hooks groups optional callbacks invoked after key workflows complete.
type Hooks struct {
	AfterQuestionChange func(context.Context, QuestionEvent)
	AfterAnswer         func(context.Context, AnswerEvent)
	AfterConnection     func(context.Context, ConnectionEvent)
	AfterProfileChange  func(context.Context, ProfileEvent)
}

// Clock abstracts time retrieval for deterministic testing.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID creation.
type IDGenerator interface {
	UUID() uuid.UUID
}

// Logger captures basic logging hooks used by the service.
type Logger interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Error(msg string, err error, fields ...any)
}

// SystemClock defers to time.Now for production usage.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// UUIDGenerator produces UUIDv4 identifiers.
type UUIDGenerator struct{}

// UUID implements IDGenerator.
func (UUIDGenerator) UUID() uuid.UUID { return uuid.New() }

// NopLogger discards all log lines.
type NopLogger struct{}

// Debug implements Logger.
func (NopLogger) Debug(string, ...any) {}

// Info implements Logger.
func (NopLogger) Info(string, ...any) {}

// Error implements Logger.
func (NopLogger) Error(string, error, ...any) {}

var (
	// ErrServiceNotReady indicates required dependencies are missing.
	ErrServiceNotReady = errors.New("go-polls: service not ready")
	// ErrMissingProfileRepository occurs when profile commands lack a storage backend.
	ErrMissingProfileRepository = errors.New("go-polls: missing profile repository")
	// ErrMissingQuestionRepository occurs when question commands or queries lack storage.
	ErrMissingQuestionRepository = errors.New("go-polls: missing question repository")
	// ErrMissingAnswerRepository occurs when answer commands or queries lack storage.
	ErrMissingAnswerRepository = errors.New("go-polls: missing answer repository")
	// ErrMissingConnectionRepository occurs when connection handlers lack storage.
	ErrMissingConnectionRepository = errors.New("go-polls: missing connection repository")
	// ErrUserIDRequired indicates a profile identifier was not supplied.
	ErrUserIDRequired = errors.New("go-polls: user id required")
	// ErrQuestionIDRequired indicates a question identifier was not supplied.
	ErrQuestionIDRequired = errors.New("go-polls: question id required")
	// ErrAnswerIDRequired indicates an answer identifier was not supplied.
	ErrAnswerIDRequired = errors.New("go-polls: answer id required")
)
