package command

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-polls/pkg/types"
	"github.com/google/uuid"
)

// ConnectionCommandConfig wires dependencies for connection commands.
type ConnectionCommandConfig struct {
	Connections types.ConnectionRepository
	Profiles    types.ProfileRepository
	Hooks       types.Hooks
	Clock       types.Clock
}

// ConnectionCreateInput links two profiles.
type ConnectionCreateInput struct {
	Connection types.Connection
	Result     *types.Connection
}

// Type implements gocommand.Message.
func (ConnectionCreateInput) Type() string {
	return "command.connection.create"
}

// Validate implements gocommand.Message.
func (input ConnectionCreateInput) Validate() error {
	return input.Connection.Validate()
}

// ConnectionCreateCommand stores connections. Re-connecting an existing pair
// returns the stored row.
type ConnectionCreateCommand struct {
	connections types.ConnectionRepository
	profiles    types.ProfileRepository
	hooks       types.Hooks
	clock       types.Clock
}

// NewConnectionCreateCommand constructs the handler.
func NewConnectionCreateCommand(cfg ConnectionCommandConfig) *ConnectionCreateCommand {
	return &ConnectionCreateCommand{
		connections: cfg.Connections,
		profiles:    cfg.Profiles,
		hooks:       safeHooks(cfg.Hooks),
		clock:       safeClock(cfg.Clock),
	}
}

var _ gocommand.Commander[ConnectionCreateInput] = (*ConnectionCreateCommand)(nil)

// Execute rejects self connections before touching storage.
func (c *ConnectionCreateCommand) Execute(ctx context.Context, input ConnectionCreateInput) error {
	if c.connections == nil {
		return types.ErrMissingConnectionRepository
	}
	if c.profiles == nil {
		return types.ErrMissingProfileRepository
	}
	if err := input.Validate(); err != nil {
		return err
	}
	for _, id := range []uuid.UUID{input.Connection.User1, input.Connection.User2} {
		profile, err := c.profiles.GetProfile(ctx, id)
		if err != nil {
			return err
		}
		if profile == nil {
			return types.ErrProfileNotFound()
		}
	}

	conn := input.Connection
	if conn.CreatedAt.IsZero() {
		conn.CreatedAt = now(c.clock)
	}
	stored, err := c.connections.CreateConnection(ctx, conn)
	if err != nil {
		return err
	}
	if input.Result != nil {
		*input.Result = *stored
	}
	emitConnectionHook(ctx, c.hooks, types.ConnectionEvent{
		ConnectionID: stored.ID,
		User1:        stored.User1,
		User2:        stored.User2,
		OccurredAt:   now(c.clock),
	})
	return nil
}
