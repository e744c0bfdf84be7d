package connection

import (
	"time"

	"github.com/goliatone/go-polls/pkg/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Record models the connections row.
type Record struct {
	bun.BaseModel `bun:"table:connections"`

	ID        uuid.UUID `bun:"id,pk,type:uuid"`
	User1     uuid.UUID `bun:"user1_id,type:uuid"`
	User2     uuid.UUID `bun:"user2_id,type:uuid"`
	CreatedAt time.Time `bun:"created_at"`
}

// NewRecord maps a connection onto its row.
func NewRecord(conn types.Connection) *Record {
	return &Record{
		ID:        conn.ID,
		User1:     conn.User1,
		User2:     conn.User2,
		CreatedAt: conn.CreatedAt,
	}
}

// Domain maps the row back onto a connection.
func (r *Record) Domain() types.Connection {
	return toDomain(r)
}
