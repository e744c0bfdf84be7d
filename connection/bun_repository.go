package connection

import (
	"context"
	"errors"

	"github.com/goliatone/go-polls/pkg/types"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RepositoryConfig wires the Bun-backed connection repository.
type RepositoryConfig struct {
	DB    *bun.DB
	Clock types.Clock
	IDGen types.IDGenerator
}

type connectionStore interface {
	repository.Repository[*Record]
}

// Repository implements types.ConnectionRepository. Pairs are stored in the
// order they were created and read in both directions.
type Repository struct {
	connectionStore
	db    *bun.DB
	clock types.Clock
	idGen types.IDGenerator
}

// NewRepository constructs the default connection repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if cfg.DB == nil {
		return nil, errors.New("connection: db required")
	}
	clock := cfg.Clock
	if clock == nil {
		clock = types.SystemClock{}
	}
	idGen := cfg.IDGen
	if idGen == nil {
		idGen = types.UUIDGenerator{}
	}
	return &Repository{
		connectionStore: repository.NewRepository(cfg.DB, repository.ModelHandlers[*Record]{
			NewRecord: func() *Record { return &Record{} },
			GetID: func(rec *Record) uuid.UUID {
				if rec == nil {
					return uuid.Nil
				}
				return rec.ID
			},
			SetID: func(rec *Record, id uuid.UUID) {
				if rec != nil {
					rec.ID = id
				}
			},
		}),
		db:    cfg.DB,
		clock: clock,
		idGen: idGen,
	}, nil
}

var (
	_ repository.Repository[*Record] = (*Repository)(nil)
	_ types.ConnectionRepository     = (*Repository)(nil)
)

// CreateConnection stores the pair. An existing connection between the two
// users, in either direction, is returned unchanged.
func (r *Repository) CreateConnection(ctx context.Context, conn types.Connection) (*types.Connection, error) {
	if err := conn.Validate(); err != nil {
		return nil, err
	}
	if existing, err := r.findPair(ctx, conn.User2, conn.User1); err != nil || existing != nil {
		return existing, err
	}
	if conn.ID == uuid.Nil {
		conn.ID = r.idGen.UUID()
	}
	if conn.CreatedAt.IsZero() {
		conn.CreatedAt = r.clock.Now()
	}
	rec := NewRecord(conn)
	_, err := r.db.NewInsert().
		Model(rec).
		On("CONFLICT (user1_id, user2_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	return r.findPair(ctx, conn.User1, conn.User2)
}

// ListConnections returns every connection touching userID, oldest first.
func (r *Repository) ListConnections(ctx context.Context, userID uuid.UUID) ([]types.Connection, error) {
	if userID == uuid.Nil {
		return []types.Connection{}, nil
	}
	rows, _, err := r.List(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("user1_id = ?", userID).WhereOr("user2_id = ?", userID)
		}).OrderExpr("created_at ASC")
	})
	if err != nil {
		return nil, err
	}
	out := make([]types.Connection, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomain(row))
	}
	return out, nil
}

// ConnectedIDs returns the distinct one hop counterparts of userID.
func (r *Repository) ConnectedIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	conns, err := r.ListConnections(ctx, userID)
	if err != nil {
		return nil, err
	}
	seen := make(map[uuid.UUID]struct{}, len(conns))
	out := make([]uuid.UUID, 0, len(conns))
	for _, conn := range conns {
		other := conn.Other(userID)
		if _, ok := seen[other]; ok {
			continue
		}
		seen[other] = struct{}{}
		out = append(out, other)
	}
	return out, nil
}

func (r *Repository) findPair(ctx context.Context, user1, user2 uuid.UUID) (*types.Connection, error) {
	rec, err := r.Get(ctx,
		repository.SelectBy("user1_id", "=", user1.String()),
		repository.SelectBy("user2_id", "=", user2.String()),
	)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	conn := toDomain(rec)
	return &conn, nil
}

func toDomain(rec *Record) types.Connection {
	return types.Connection{
		ID:        rec.ID,
		User1:     rec.User1,
		User2:     rec.User2,
		CreatedAt: rec.CreatedAt,
	}
}
