package crudsvc

import (
	"fmt"

	"github.com/goliatone/go-crud"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-polls/pkg/types"
)

// RequesterResolver maps a transport context onto the polls requester. A nil
// requester is treated as anonymous.
type RequesterResolver interface {
	Resolve(ctx crud.Context) (*types.Requester, error)
}

// RequesterResolverFunc adapts a function into a RequesterResolver.
type RequesterResolverFunc func(ctx crud.Context) (*types.Requester, error)

// Resolve implements RequesterResolver.
func (f RequesterResolverFunc) Resolve(ctx crud.Context) (*types.Requester, error) {
	return f(ctx)
}

type anonymousResolver struct{}

func (anonymousResolver) Resolve(crud.Context) (*types.Requester, error) {
	return nil, nil
}

type serviceOptions struct {
	requesters RequesterResolver
	logger     types.Logger
}

// ServiceOption customizes CRUD service behaviour.
type ServiceOption func(*serviceOptions)

// WithRequesterResolver wires the identity lookup used by write operations.
func WithRequesterResolver(resolver RequesterResolver) ServiceOption {
	return func(cfg *serviceOptions) {
		if resolver != nil {
			cfg.requesters = resolver
		}
	}
}

// WithLogger wires a logger for service diagnostics.
func WithLogger(logger types.Logger) ServiceOption {
	return func(cfg *serviceOptions) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

func applyOptions(opts []ServiceOption) serviceOptions {
	cfg := serviceOptions{
		requesters: anonymousResolver{},
		logger:     types.NopLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

func notSupported(op crud.CrudOperation) error {
	return goerrors.New(
		fmt.Sprintf("go-polls: crud operation %s disabled for this resource", op),
		goerrors.CategoryValidation,
	).WithCode(goerrors.CodeBadRequest)
}

func notWired(what string) error {
	return goerrors.New(what+" not wired", goerrors.CategoryInternal).WithCode(goerrors.CodeInternal)
}

func invalidID(id string) error {
	return goerrors.New("go-polls: invalid id "+id, goerrors.CategoryValidation).WithCode(goerrors.CodeBadRequest)
}

// WithCommandService mirrors crud.WithService but gives consumers a semantic
// helper to highlight that the controller delegates to the command/query layer.
func WithCommandService[T any](svc crud.Service[T]) crud.Option[T] {
	return crud.WithService(svc)
}
