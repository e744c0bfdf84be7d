package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ProfilePayload is the outward representation of a profile.
type ProfilePayload struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Age       int       `json:"age"`
	Gender    Gender    `json:"gender"`
	Region    string    `json:"region"`
	JoinDate  time.Time `json:"joinDate"`
	AvatarURL string    `json:"avatarUrl"`
}

// NewProfilePayload converts a profile into its payload.
func NewProfilePayload(profile UserProfile) ProfilePayload {
	return ProfilePayload{
		ID:        profile.ID,
		Email:     profile.Email,
		Username:  profile.Username,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Age:       profile.Age,
		Gender:    profile.Gender,
		Region:    profile.Region,
		JoinDate:  profile.JoinDate,
		AvatarURL: profile.AvatarURL,
	}
}

// AnswerPayload is the outward representation of an answer.
type AnswerPayload struct {
	ID       uuid.UUID `json:"id"`
	User     uuid.UUID `json:"user"`
	Question uuid.UUID `json:"question"`
	Answer   int       `json:"answer"`
}

// NewAnswerPayload converts an answer into its payload.
func NewAnswerPayload(answer Answer) AnswerPayload {
	return AnswerPayload{
		ID:       answer.ID,
		User:     answer.UserID,
		Question: answer.QuestionID,
		Answer:   answer.Value,
	}
}

// QuestionPayload is the outward representation of a question.
type QuestionPayload struct {
	ID           uuid.UUID       `json:"id"`
	Text         string          `json:"text"`
	QuestionType QuestionType    `json:"questionType"`
	Date         time.Time       `json:"date"`
	Asker        *ProfilePayload `json:"asker"`
	Categories   []string        `json:"categories"`
	Option1      string          `json:"option1"`
	Option2      string          `json:"option2"`
	Option3      string          `json:"option3"`
	Option4      string          `json:"option4"`
	Option5      string          `json:"option5"`
	Answers      []AnswerPayload `json:"answers"`
	Link         string          `json:"link"`
	ReplyTo      *uuid.UUID      `json:"replyTo"`
	Options      []string        `json:"options"`
	IsUser       bool            `json:"isUser"`
	UsersAnswer  *AnswerPayload  `json:"usersAnswer,omitempty"`
	Quick        QuickStats      `json:"quick"`
}

// OptionCounts holds per option counts for option indices 0..4.
type OptionCounts struct {
	Option1 int `json:"option1"`
	Option2 int `json:"option2"`
	Option3 int `json:"option3"`
	Option4 int `json:"option4"`
	Option5 int `json:"option5"`
}

// Add increments the counter for the option index. Out of range indices are
// ignored.
func (c *OptionCounts) Add(index int) {
	switch index {
	case 0:
		c.Option1++
	case 1:
		c.Option2++
	case 2:
		c.Option3++
	case 3:
		c.Option4++
	case 4:
		c.Option5++
	}
}

// At returns the count for the option index.
func (c OptionCounts) At(index int) int {
	switch index {
	case 0:
		return c.Option1
	case 1:
		return c.Option2
	case 2:
		return c.Option3
	case 3:
		return c.Option4
	case 4:
		return c.Option5
	default:
		return 0
	}
}

// Total sums all option counts.
func (c OptionCounts) Total() int {
	return c.Option1 + c.Option2 + c.Option3 + c.Option4 + c.Option5
}

// RegionCount is a region group-by count row.
type RegionCount struct {
	Region string `json:"user__region"`
	Count  int    `json:"count"`
}

// RegionBreakdown groups discrete counts by respondent region.
type RegionBreakdown struct {
	RegionTotal []RegionCount `json:"regionTotal"`
	Option1     []RegionCount `json:"option1"`
	Option2     []RegionCount `json:"option2"`
	Option3     []RegionCount `json:"option3"`
	Option4     []RegionCount `json:"option4"`
	Option5     []RegionCount `json:"option5"`
}

// AgeBreakdown groups discrete counts by respondent age bracket.
type AgeBreakdown struct {
	Kids     OptionCounts `json:"kids"`
	Teens    OptionCounts `json:"teens"`
	Twenties OptionCounts `json:"twenties"`
	Thirties OptionCounts `json:"thirties"`
	Older    OptionCounts `json:"older"`
}

// DiscreteStats is the statistics payload for discrete question kinds.
type DiscreteStats struct {
	Quick      OptionCounts    `json:"quick"`
	Connected  OptionCounts    `json:"connected"`
	Male       OptionCounts    `json:"male"`
	Female     OptionCounts    `json:"female"`
	Registered OptionCounts    `json:"registered"`
	Region     RegionBreakdown `json:"region"`
	Age        AgeBreakdown    `json:"age"`
}

// RangeSlice summarizes range answers. Average is nil when there are no
// responses.
type RangeSlice struct {
	Average   *float64 `json:"avg"`
	Responses []int    `json:"responses"`
}

// RegionAverage is a region group-by average row.
type RegionAverage struct {
	Region  string   `json:"user__region"`
	Average *float64 `json:"answer__avg"`
}

// RangeStats is the statistics payload for range questions.
type RangeStats struct {
	Quick  RangeSlice      `json:"quick"`
	Male   RangeSlice      `json:"male"`
	Female RangeSlice      `json:"female"`
	Region []RegionAverage `json:"region"`
}

// StatsPayload wraps the kind specific statistics payload.
type StatsPayload struct {
	Kind     QuestionKind
	Discrete *DiscreteStats
	Range    *RangeStats
}

// MarshalJSON emits the payload for the populated kind only.
func (p StatsPayload) MarshalJSON() ([]byte, error) {
	switch p.Kind {
	case KindRange:
		return json.Marshal(p.Range)
	case KindDiscrete:
		return json.Marshal(p.Discrete)
	default:
		return []byte("null"), nil
	}
}

// QuickStats is the quick field of the question payload: option counts for
// discrete kinds and the plain average for range questions.
type QuickStats struct {
	Kind    QuestionKind
	Counts  OptionCounts
	Average *float64
}

// MarshalJSON emits counts for discrete kinds and the average (or null) for
// range questions.
func (q QuickStats) MarshalJSON() ([]byte, error) {
	switch q.Kind {
	case KindRange:
		return json.Marshal(q.Average)
	case KindDiscrete:
		return json.Marshal(q.Counts)
	default:
		return []byte("null"), nil
	}
}
