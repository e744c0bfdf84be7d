package query

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-polls/pkg/types"
	"github.com/google/uuid"
)

// ConnectionListInput identifies the profile whose connections are listed.
type ConnectionListInput struct {
	UserID uuid.UUID
}

// Type implements gocommand.Message.
func (ConnectionListInput) Type() string {
	return "query.connection.list"
}

// Validate implements gocommand.Message.
func (input ConnectionListInput) Validate() error {
	if input.UserID == uuid.Nil {
		return types.ErrUserIDRequired
	}
	return nil
}

// ConnectionListQuery returns connections where the profile is either side.
type ConnectionListQuery struct {
	repo types.ConnectionRepository
}

// NewConnectionListQuery constructs the query.
func NewConnectionListQuery(repo types.ConnectionRepository) *ConnectionListQuery {
	return &ConnectionListQuery{repo: repo}
}

var _ gocommand.Querier[ConnectionListInput, []types.Connection] = (*ConnectionListQuery)(nil)

// Query delegates to the repository.
func (q *ConnectionListQuery) Query(ctx context.Context, input ConnectionListInput) ([]types.Connection, error) {
	if q.repo == nil {
		return nil, types.ErrMissingConnectionRepository
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	return q.repo.ListConnections(ctx, input.UserID)
}
