package crudsvc

import (
	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-crud"
	"github.com/goliatone/go-polls/command"
	"github.com/goliatone/go-polls/connection"
	"github.com/goliatone/go-polls/pkg/types"
	"github.com/goliatone/go-polls/query"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
)

// ConnectionServiceConfig wires dependencies for the connection CRUD adapter.
type ConnectionServiceConfig struct {
	Create gocommand.Commander[command.ConnectionCreateInput]
	List   gocommand.Querier[query.ConnectionListInput, []types.Connection]
}

// ConnectionService supports creating and listing connections only.
type ConnectionService struct {
	create     gocommand.Commander[command.ConnectionCreateInput]
	list       gocommand.Querier[query.ConnectionListInput, []types.Connection]
	requesters RequesterResolver
	logger     types.Logger
}

// NewConnectionService constructs the adapter.
func NewConnectionService(cfg ConnectionServiceConfig, opts ...ServiceOption) *ConnectionService {
	options := applyOptions(opts)
	return &ConnectionService{
		create:     cfg.Create,
		list:       cfg.List,
		requesters: options.requesters,
		logger:     options.logger,
	}
}

var _ crud.Service[*connection.Record] = (*ConnectionService)(nil)

// Create connects the two users. A blank first user defaults to the requester.
func (s *ConnectionService) Create(ctx crud.Context, record *connection.Record) (*connection.Record, error) {
	if s.create == nil {
		return nil, notWired("connection create command")
	}
	requester, err := s.requesters.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	conn := record.Domain()
	if conn.User1 == uuid.Nil {
		conn.User1 = requester.ProfileID()
	}
	result := types.Connection{}
	if err := s.create.Execute(ctx.UserContext(), command.ConnectionCreateInput{
		Connection: conn,
		Result:     &result,
	}); err != nil {
		return nil, err
	}
	return connection.NewRecord(result), nil
}

func (s *ConnectionService) CreateBatch(ctx crud.Context, records []*connection.Record) ([]*connection.Record, error) {
	created := make([]*connection.Record, 0, len(records))
	for _, record := range records {
		rec, err := s.Create(ctx, record)
		if err != nil {
			return nil, err
		}
		created = append(created, rec)
	}
	return created, nil
}

func (s *ConnectionService) Update(crud.Context, *connection.Record) (*connection.Record, error) {
	return nil, notSupported(crud.OpUpdate)
}

func (s *ConnectionService) UpdateBatch(crud.Context, []*connection.Record) ([]*connection.Record, error) {
	return nil, notSupported(crud.OpUpdateBatch)
}

func (s *ConnectionService) Delete(crud.Context, *connection.Record) error {
	return notSupported(crud.OpDelete)
}

func (s *ConnectionService) DeleteBatch(crud.Context, []*connection.Record) error {
	return notSupported(crud.OpDeleteBatch)
}

// Index lists the connections of user_id, or of the requester when omitted.
func (s *ConnectionService) Index(ctx crud.Context, _ []repository.SelectCriteria) ([]*connection.Record, int, error) {
	if s.list == nil {
		return nil, 0, notWired("connection list query")
	}
	userID := queryUUID(ctx, "user_id")
	if userID == uuid.Nil {
		requester, err := s.requesters.Resolve(ctx)
		if err != nil {
			return nil, 0, err
		}
		userID = requester.ProfileID()
	}
	conns, err := s.list.Query(ctx.UserContext(), query.ConnectionListInput{UserID: userID})
	if err != nil {
		return nil, 0, err
	}
	out := make([]*connection.Record, 0, len(conns))
	for _, conn := range conns {
		out = append(out, connection.NewRecord(conn))
	}
	return out, len(out), nil
}

func (s *ConnectionService) Show(crud.Context, string, []repository.SelectCriteria) (*connection.Record, error) {
	return nil, notSupported(crud.OpRead)
}
