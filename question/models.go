package question

import (
	"time"

	"github.com/goliatone/go-polls/options"
	"github.com/goliatone/go-polls/pkg/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Record models the questions row. Options live in five fixed columns.
type Record struct {
	bun.BaseModel `bun:"table:questions"`

	ID           uuid.UUID  `bun:"id,pk,type:uuid"`
	AskerID      uuid.UUID  `bun:"asker_id,type:uuid"`
	Text         string     `bun:"text"`
	QuestionType string     `bun:"question_type"`
	Date         time.Time  `bun:"date"`
	RelatedLink  string     `bun:"related_link"`
	Option1      string     `bun:"option1"`
	Option2      string     `bun:"option2"`
	Option3      string     `bun:"option3"`
	Option4      string     `bun:"option4"`
	Option5      string     `bun:"option5"`
	ReplyTo      *uuid.UUID `bun:"reply_to,type:uuid,nullzero"`

	// Options and Categories carry the list forms exchanged with clients.
	// Neither is a column.
	Options    []string `bun:"-"`
	Categories []string `bun:"-"`
}

// CategoryRecord models a category label row.
type CategoryRecord struct {
	bun.BaseModel `bun:"table:categories"`

	ID    uuid.UUID `bun:"id,pk,type:uuid"`
	Label string    `bun:"label"`
}

// LinkRecord joins a question to one of its categories.
type LinkRecord struct {
	bun.BaseModel `bun:"table:question_categories"`

	QuestionID uuid.UUID `bun:"question_id,pk,type:uuid"`
	CategoryID uuid.UUID `bun:"category_id,pk,type:uuid"`
}

// TargetRecord models a targeted_questions row.
type TargetRecord struct {
	bun.BaseModel `bun:"table:targeted_questions"`

	ID         uuid.UUID `bun:"id,pk,type:uuid"`
	UserID     uuid.UUID `bun:"user_id,type:uuid"`
	QuestionID uuid.UUID `bun:"question_id,type:uuid"`
	CreatedAt  time.Time `bun:"created_at"`
}

// NewRecord maps a question onto its row and fills the option and category
// lists.
func NewRecord(q types.Question) *Record {
	rec := fromDomain(q)
	rec.Options = options.ToArray(q.Options)
	rec.Categories = q.Categories
	return rec
}

// Domain maps the row back onto a question. Categories come from the record
// list; the option columns are authoritative.
func (r *Record) Domain() types.Question {
	q := toDomain(r)
	if r.Categories != nil {
		q.Categories = r.Categories
	}
	return q
}
