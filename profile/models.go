package profile

import (
	"time"

	"github.com/goliatone/go-polls/pkg/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Record models the user_profiles row.
type Record struct {
	bun.BaseModel `bun:"table:user_profiles"`

	ID        uuid.UUID `bun:"id,pk,type:uuid"`
	Username  string    `bun:"username"`
	Email     string    `bun:"email"`
	FirstName string    `bun:"first_name"`
	LastName  string    `bun:"last_name"`
	Age       int       `bun:"age"`
	Gender    string    `bun:"gender"`
	Region    string    `bun:"region"`
	AvatarURL string    `bun:"avatar_url"`
	JoinDate  time.Time `bun:"join_date"`
	UpdatedAt time.Time `bun:"updated_at"`
}

// NewRecord maps a profile onto its row.
func NewRecord(p types.UserProfile) *Record {
	return fromDomain(p)
}

// Domain maps the row back onto a profile.
func (r *Record) Domain() types.UserProfile {
	return *toDomain(r)
}
