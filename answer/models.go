package answer

import (
	"time"

	"github.com/goliatone/go-polls/pkg/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// DedupeSingle is the dedupe key written when one answer per user is enforced.
const DedupeSingle = "single"

// Record models the answers row.
type Record struct {
	bun.BaseModel `bun:"table:answers"`

	ID         uuid.UUID `bun:"id,pk,type:uuid"`
	UserID     uuid.UUID `bun:"user_id,type:uuid"`
	QuestionID uuid.UUID `bun:"question_id,type:uuid"`
	Value      int       `bun:"answer"`
	DedupeKey  string    `bun:"dedupe_key"`
	CreatedAt  time.Time `bun:"created_at"`
	UpdatedAt  time.Time `bun:"updated_at"`
}

// NewRecord maps an answer onto its row.
func NewRecord(a types.Answer) *Record {
	return fromDomain(a)
}

// Domain maps the row back onto an answer.
func (r *Record) Domain() types.Answer {
	return toDomain(r)
}
