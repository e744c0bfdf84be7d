package service

import (
	"context"

	featuregate "github.com/goliatone/go-featuregate/gate"
	"github.com/goliatone/go-masker"
	"github.com/goliatone/go-polls/answer"
	"github.com/goliatone/go-polls/command"
	"github.com/goliatone/go-polls/connection"
	"github.com/goliatone/go-polls/pkg/telemetry"
	"github.com/goliatone/go-polls/pkg/types"
	"github.com/goliatone/go-polls/profile"
	"github.com/goliatone/go-polls/query"
	"github.com/goliatone/go-polls/question"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// Service is the entry point for go-polls. It wires repositories, hooks,
// feature gates and the command/query facades supplied by the host.
type Service struct {
	cfg      Config
	commands Commands
	queries  Queries
}

// Commands exposes the service command handlers.
type Commands struct {
	QuestionCreate   *command.QuestionCreateCommand
	QuestionUpdate   *command.QuestionUpdateCommand
	QuestionTarget   *command.QuestionTargetCommand
	AnswerSubmit     *command.AnswerSubmitCommand
	AnswerUpdate     *command.AnswerUpdateCommand
	ConnectionCreate *command.ConnectionCreateCommand
	ProfileUpsert    *command.ProfileUpsertCommand
}

// Queries exposes read-model helpers.
type Queries struct {
	QuestionDetail *query.QuestionDetailQuery
	QuestionList   *query.QuestionListQuery
	QuestionStats  *query.QuestionStatsQuery
	ProfileDetail  *query.ProfileQuery
	ProfileList    *query.ProfileListQuery
	AnswerDetail   *query.AnswerDetailQuery
	AnswerList     *query.AnswerListQuery
	ConnectionList *query.ConnectionListQuery
}

// Config captures all dependencies so callers can provide their own
// instances. When DB is set, missing repositories are built on top of it.
type Config struct {
	DB                   *bun.DB
	ProfileRepository    types.ProfileRepository
	QuestionRepository   types.QuestionRepository
	AnswerRepository     types.AnswerRepository
	ConnectionRepository types.ConnectionRepository
	ProfileCache         bool
	Hooks                types.Hooks
	Clock                types.Clock
	IDGenerator          types.IDGenerator
	Logger               types.Logger
	FeatureGate          featuregate.FeatureGate
	EnforceSingleAnswer  bool
	ProfileDefaults      map[string]any
	Masker               *masker.Masker
	Tracer               trace.Tracer
	Metrics              telemetry.Metrics
}

// New constructs a Service from the supplied configuration.
func New(cfg Config) *Service {
	norm := normalizeConfig(cfg)
	s := &Service{cfg: norm}
	s.commands = s.buildCommands()
	s.queries = s.buildQueries()
	return s
}

func normalizeConfig(cfg Config) Config {
	if cfg.Clock == nil {
		cfg.Clock = types.SystemClock{}
	}
	if cfg.IDGenerator == nil {
		cfg.IDGenerator = types.UUIDGenerator{}
	}
	if cfg.Logger == nil {
		cfg.Logger = types.NopLogger{}
	}
	cfg.Metrics = telemetry.Ensure(cfg.Metrics)
	cfg.Tracer = telemetry.Tracer(cfg.Tracer)
	if cfg.DB != nil {
		buildRepositories(&cfg)
	}
	return cfg
}

func buildRepositories(cfg *Config) {
	if cfg.ProfileRepository == nil {
		repo, err := profile.NewRepository(profile.RepositoryConfig{
			DB:    cfg.DB,
			Clock: cfg.Clock,
		}, profile.WithCache(cfg.ProfileCache))
		if err != nil {
			cfg.Logger.Error("go-polls: profile repository initialization failed", err)
		} else {
			cfg.ProfileRepository = repo
		}
	}
	if cfg.QuestionRepository == nil {
		repo, err := question.NewRepository(question.RepositoryConfig{
			DB:    cfg.DB,
			Clock: cfg.Clock,
			IDGen: cfg.IDGenerator,
		})
		if err != nil {
			cfg.Logger.Error("go-polls: question repository initialization failed", err)
		} else {
			cfg.QuestionRepository = repo
		}
	}
	if cfg.AnswerRepository == nil {
		repo, err := answer.NewRepository(answer.RepositoryConfig{
			DB:    cfg.DB,
			Clock: cfg.Clock,
			IDGen: cfg.IDGenerator,
		})
		if err != nil {
			cfg.Logger.Error("go-polls: answer repository initialization failed", err)
		} else {
			cfg.AnswerRepository = repo
		}
	}
	if cfg.ConnectionRepository == nil {
		repo, err := connection.NewRepository(connection.RepositoryConfig{
			DB:    cfg.DB,
			Clock: cfg.Clock,
			IDGen: cfg.IDGenerator,
		})
		if err != nil {
			cfg.Logger.Error("go-polls: connection repository initialization failed", err)
		} else {
			cfg.ConnectionRepository = repo
		}
	}
}

// Commands returns the command facade.
func (s *Service) Commands() Commands {
	return s.commands
}

// Queries returns the query facade.
func (s *Service) Queries() Queries {
	return s.queries
}

// Ready reports whether every repository is wired in.
func (s *Service) Ready() bool {
	return s != nil &&
		s.cfg.ProfileRepository != nil &&
		s.cfg.QuestionRepository != nil &&
		s.cfg.AnswerRepository != nil &&
		s.cfg.ConnectionRepository != nil
}

// HealthCheck surfaces missing configuration and pings the database when one
// was supplied.
func (s *Service) HealthCheck(ctx context.Context) error {
	if s == nil {
		return types.ErrServiceNotReady
	}
	if s.cfg.ProfileRepository == nil {
		return types.ErrMissingProfileRepository
	}
	if s.cfg.QuestionRepository == nil {
		return types.ErrMissingQuestionRepository
	}
	if s.cfg.AnswerRepository == nil {
		return types.ErrMissingAnswerRepository
	}
	if s.cfg.ConnectionRepository == nil {
		return types.ErrMissingConnectionRepository
	}
	if s.cfg.DB != nil {
		return s.cfg.DB.PingContext(ctx)
	}
	return nil
}

// FeatureGate returns the configured gate so transports can consult the same
// polls feature keys.
func (s *Service) FeatureGate() featuregate.FeatureGate {
	if s == nil {
		return nil
	}
	return s.cfg.FeatureGate
}

func (s *Service) buildCommands() Commands {
	questions := command.QuestionCommandConfig{
		Questions: s.cfg.QuestionRepository,
		Profiles:  s.cfg.ProfileRepository,
		Hooks:     s.cfg.Hooks,
		Clock:     s.cfg.Clock,
		Logger:    s.cfg.Logger,
		Metrics:   s.cfg.Metrics,
	}
	answers := command.AnswerCommandConfig{
		Answers:             s.cfg.AnswerRepository,
		Questions:           s.cfg.QuestionRepository,
		Profiles:            s.cfg.ProfileRepository,
		FeatureGate:         s.cfg.FeatureGate,
		EnforceSingleAnswer: s.cfg.EnforceSingleAnswer,
		Hooks:               s.cfg.Hooks,
		Clock:               s.cfg.Clock,
		Logger:              s.cfg.Logger,
		Metrics:             s.cfg.Metrics,
	}
	return Commands{
		QuestionCreate: command.NewQuestionCreateCommand(questions),
		QuestionUpdate: command.NewQuestionUpdateCommand(questions),
		QuestionTarget: command.NewQuestionTargetCommand(questions),
		AnswerSubmit:   command.NewAnswerSubmitCommand(answers),
		AnswerUpdate:   command.NewAnswerUpdateCommand(answers),
		ConnectionCreate: command.NewConnectionCreateCommand(command.ConnectionCommandConfig{
			Connections: s.cfg.ConnectionRepository,
			Profiles:    s.cfg.ProfileRepository,
			Hooks:       s.cfg.Hooks,
			Clock:       s.cfg.Clock,
		}),
		ProfileUpsert: command.NewProfileUpsertCommand(command.ProfileCommandConfig{
			Repository: s.cfg.ProfileRepository,
			Defaults:   s.cfg.ProfileDefaults,
			Hooks:      s.cfg.Hooks,
			Clock:      s.cfg.Clock,
			Logger:     s.cfg.Logger,
		}),
	}
}

func (s *Service) buildQueries() Queries {
	questions := query.QuestionQueryConfig{
		Questions: s.cfg.QuestionRepository,
		Answers:   s.cfg.AnswerRepository,
		Profiles:  s.cfg.ProfileRepository,
		Masker:    s.cfg.Masker,
		Tracer:    s.cfg.Tracer,
		Logger:    s.cfg.Logger,
	}
	return Queries{
		QuestionDetail: query.NewQuestionDetailQuery(questions),
		QuestionList:   query.NewQuestionListQuery(questions),
		QuestionStats: query.NewQuestionStatsQuery(query.StatsQueryConfig{
			Questions:   s.cfg.QuestionRepository,
			Answers:     s.cfg.AnswerRepository,
			Connections: s.cfg.ConnectionRepository,
			FeatureGate: s.cfg.FeatureGate,
			Clock:       s.cfg.Clock,
			Tracer:      s.cfg.Tracer,
			Metrics:     s.cfg.Metrics,
			Logger:      s.cfg.Logger,
		}),
		ProfileDetail:  query.NewProfileQuery(s.cfg.ProfileRepository),
		ProfileList:    query.NewProfileListQuery(s.cfg.ProfileRepository),
		AnswerDetail:   query.NewAnswerDetailQuery(s.cfg.AnswerRepository),
		AnswerList:     query.NewAnswerListQuery(s.cfg.AnswerRepository),
		ConnectionList: query.NewConnectionListQuery(s.cfg.ConnectionRepository),
	}
}
