package types

import (
	"fmt"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// OptionSlots is the fixed number of option columns carried by a question.
const OptionSlots = 5

// Profile defaults applied when a profile row is first created.
const (
	DefaultProfileAge    = 21
	DefaultProfileRegion = "Toronto"
)

// Gender enumerates the respondent genders tracked by the statistics.
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

// Valid reports whether the gender is one of the known codes. Blank is allowed
// for profiles that never set it.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, "":
		return true
	default:
		return false
	}
}

// QuestionType is the stored question type code.
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "MC"
	QuestionTypeRange          QuestionType = "RG"
	QuestionTypeTrueFalse      QuestionType = "TF"
	QuestionTypeRating         QuestionType = "RA"
)

// QuestionKind groups question types by how their answers aggregate.
type QuestionKind int

const (
	// KindUnknown is returned for unrecognized type codes.
	KindUnknown QuestionKind = iota
	// KindDiscrete answers select one option index in [0, OptionSlots).
	KindDiscrete
	// KindRange answers carry a numeric magnitude aggregated by mean.
	KindRange
)

func (k QuestionKind) String() string {
	switch k {
	case KindDiscrete:
		return "discrete"
	case KindRange:
		return "range"
	default:
		return "unknown"
	}
}

// Kind maps the type code onto its aggregation kind.
func (t QuestionType) Kind() QuestionKind {
	switch t {
	case QuestionTypeRange:
		return KindRange
	case QuestionTypeMultipleChoice, QuestionTypeTrueFalse, QuestionTypeRating:
		return KindDiscrete
	default:
		return KindUnknown
	}
}

// ParseQuestionType normalizes a type code and rejects unknown values.
func ParseQuestionType(raw string) (QuestionType, error) {
	qt := QuestionType(strings.ToUpper(strings.TrimSpace(raw)))
	if qt.Kind() == KindUnknown {
		return "", fmt.Errorf("go-polls: unknown question type %q", raw)
	}
	return qt, nil
}

// UserProfile carries the survey attributes of an account.
type UserProfile struct {
	ID        uuid.UUID
	Username  string
	Email     string
	FirstName string
	LastName  string
	Age       int
	Gender    Gender
	Region    string
	AvatarURL string
	JoinDate  time.Time
	UpdatedAt time.Time
}

// ProfilePatch captures optional profile fields for partial updates.
type ProfilePatch struct {
	Username  *string `validate:"omitempty,max=150"`
	Email     *string `validate:"omitempty,max=254"`
	FirstName *string `validate:"omitempty,max=150"`
	LastName  *string `validate:"omitempty,max=150"`
	Age       *int    `validate:"omitempty,min=0,max=150"`
	Gender    *Gender `validate:"-"`
	Region    *string `validate:"omitempty,max=20"`
	AvatarURL *string `validate:"omitempty,max=500"`
}

// Question is a poll owned by an asker.
type Question struct {
	ID         uuid.UUID
	AskerID    uuid.UUID
	Text       string
	Type       QuestionType
	Date       time.Time
	Link       string
	Options    [OptionSlots]string
	ReplyTo    *uuid.UUID
	Categories []string
}

// QuestionPatch lists the fields mutable after creation.
type QuestionPatch struct {
	Text    *string              `validate:"omitempty,max=200"`
	Type    *QuestionType        `validate:"-"`
	Options [OptionSlots]*string `validate:"dive,omitempty,max=50"`
}

// Empty reports whether the patch changes nothing.
func (p QuestionPatch) Empty() bool {
	if p.Text != nil || p.Type != nil {
		return false
	}
	for _, opt := range p.Options {
		if opt != nil {
			return false
		}
	}
	return true
}

// Category is a label row linked to questions.
type Category struct {
	ID    uuid.UUID
	Label string
}

// Answer records a respondent's choice for a question.
type Answer struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	QuestionID uuid.UUID
	Value      int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Respondent carries the profile attributes used to slice statistics. Known is
// false when the answer has no matching profile row.
type Respondent struct {
	ID     uuid.UUID
	Gender Gender
	Region string
	Age    int
	Known  bool
}

// Registered reports whether the respondent is not the anonymous sentinel.
func (r Respondent) Registered() bool {
	return r.ID != AnonymousUserID
}

// AnswerRow is an answer joined with its respondent attributes.
type AnswerRow struct {
	Answer     Answer
	Respondent Respondent
}

// Connection links two profiles. Stored as an ordered pair and read
// symmetrically.
type Connection struct {
	ID        uuid.UUID
	User1     uuid.UUID
	User2     uuid.UUID
	CreatedAt time.Time
}

// MessageSelfConnection is reported when both sides of a connection match.
const MessageSelfConnection = "users cannot connect to themselves"

// Validate rejects missing ids and self connections.
func (c Connection) Validate() error {
	if c.User1 == uuid.Nil || c.User2 == uuid.Nil {
		return ErrUserIDRequired
	}
	if c.User1 == c.User2 {
		return NewValidationError(TextCodeSelfConnection, MessageSelfConnection,
			goerrors.FieldError{Field: "user2", Message: MessageSelfConnection, Value: c.User2.String()})
	}
	return nil
}

// Other returns the counterpart of id in the connection.
func (c Connection) Other(id uuid.UUID) uuid.UUID {
	if c.User1 == id {
		return c.User2
	}
	return c.User1
}

// TargetedQuestion marks a question as directed at a specific profile.
type TargetedQuestion struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	QuestionID uuid.UUID
	CreatedAt  time.Time
}
