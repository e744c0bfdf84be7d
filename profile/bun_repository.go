package profile

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-polls/pkg/types"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RepositoryConfig wires the Bun-backed profile repository.
type RepositoryConfig struct {
	DB         *bun.DB
	Repository repository.Repository[*Record]
	Clock      types.Clock
}

type profileStore interface {
	repository.Repository[*Record]
}

// Repository implements types.ProfileRepository using Bun.
type Repository struct {
	profileStore
	clock types.Clock
}

// NewRepository constructs the default profile repository.
func NewRepository(cfg RepositoryConfig, opts ...RepositoryOption) (*Repository, error) {
	if cfg.Repository == nil && cfg.DB == nil {
		return nil, errors.New("profile: db or repository required")
	}
	repo := cfg.Repository
	if repo == nil {
		repo = newBaseRepository(cfg.DB)
	}

	options := applyRepositoryOptions(opts)
	if options.CacheEnabled {
		if _, ok := repo.(*repositorycache.CachedRepository[*Record]); !ok {
			cacheCfg := cache.DefaultConfig()
			if options.CacheConfig != nil {
				cacheCfg = *options.CacheConfig
			}
			service, err := cache.NewCacheService(cacheCfg)
			if err != nil {
				return nil, err
			}
			repo = repositorycache.New(repo, service, cache.NewDefaultKeySerializer())
		}
	}

	clock := cfg.Clock
	if clock == nil {
		clock = types.SystemClock{}
	}

	return &Repository{
		profileStore: repo,
		clock:        clock,
	}, nil
}

func newBaseRepository(db *bun.DB) repository.Repository[*Record] {
	return repository.NewRepository(db, repository.ModelHandlers[*Record]{
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
	})
}

var (
	_ repository.Repository[*Record] = (*Repository)(nil)
	_ types.ProfileRepository        = (*Repository)(nil)
)

// GetProfile returns the profile or nil when no row exists.
func (r *Repository) GetProfile(ctx context.Context, id uuid.UUID) (*types.UserProfile, error) {
	if id == uuid.Nil {
		return nil, types.ErrUserIDRequired
	}
	rec, err := r.Get(ctx, selectID(id))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return toDomain(rec), nil
}

// ListProfiles returns profiles ordered by username.
func (r *Repository) ListProfiles(ctx context.Context, filter types.ProfileFilter) ([]types.UserProfile, error) {
	criteria := []repository.SelectCriteria{
		func(q *bun.SelectQuery) *bun.SelectQuery {
			if len(filter.IDs) > 0 {
				q = q.Where("id IN (?)", bun.In(filter.IDs))
			}
			if region := strings.TrimSpace(filter.Region); region != "" {
				q = q.Where("region = ?", region)
			}
			return q.OrderExpr("username ASC")
		},
	}
	rows, _, err := r.List(ctx, criteria...)
	if err != nil {
		return nil, err
	}
	out := make([]types.UserProfile, 0, len(rows))
	for _, row := range rows {
		out = append(out, *toDomain(row))
	}
	return out, nil
}

// UpsertProfile inserts or updates the profile based on whether it already exists.
func (r *Repository) UpsertProfile(ctx context.Context, profile types.UserProfile) (*types.UserProfile, error) {
	if profile.ID == uuid.Nil {
		return nil, types.ErrUserIDRequired
	}
	now := r.clock.Now()
	rec := fromDomain(profile)
	rec.UpdatedAt = now

	existing, err := r.Get(ctx, selectID(profile.ID))
	switch {
	case err == nil:
		rec.JoinDate = existing.JoinDate
		if rec.JoinDate.IsZero() {
			rec.JoinDate = now
		}
		updated, err := r.Update(ctx, rec)
		if err != nil {
			return nil, err
		}
		return toDomain(updated), nil
	case repository.IsRecordNotFound(err):
		if rec.JoinDate.IsZero() {
			rec.JoinDate = now
		}
		created, err := r.Create(ctx, rec)
		if err != nil {
			return nil, err
		}
		return toDomain(created), nil
	default:
		return nil, err
	}
}

func selectID(id uuid.UUID) repository.SelectCriteria {
	return repository.SelectBy("id", "=", id.String())
}

func fromDomain(profile types.UserProfile) *Record {
	return &Record{
		ID:        profile.ID,
		Username:  profile.Username,
		Email:     profile.Email,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Age:       profile.Age,
		Gender:    string(profile.Gender),
		Region:    profile.Region,
		AvatarURL: profile.AvatarURL,
		JoinDate:  profile.JoinDate,
		UpdatedAt: profile.UpdatedAt,
	}
}

func toDomain(rec *Record) *types.UserProfile {
	if rec == nil {
		return nil
	}
	return &types.UserProfile{
		ID:        rec.ID,
		Username:  rec.Username,
		Email:     rec.Email,
		FirstName: rec.FirstName,
		LastName:  rec.LastName,
		Age:       rec.Age,
		Gender:    types.Gender(rec.Gender),
		Region:    rec.Region,
		AvatarURL: rec.AvatarURL,
		JoinDate:  rec.JoinDate,
		UpdatedAt: rec.UpdatedAt,
	}
}
