package query

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-polls/pkg/types"
	"github.com/google/uuid"
)

// ProfileQueryInput identifies a profile.
type ProfileQueryInput struct {
	UserID uuid.UUID
}

// Type implements gocommand.Message.
func (ProfileQueryInput) Type() string {
	return "query.profile.detail"
}

// Validate implements gocommand.Message.
func (input ProfileQueryInput) Validate() error {
	if input.UserID == uuid.Nil {
		return types.ErrUserIDRequired
	}
	return nil
}

// ProfileQuery fetches a single profile.
type ProfileQuery struct {
	repo types.ProfileRepository
}

// NewProfileQuery constructs the profile query helper.
func NewProfileQuery(repo types.ProfileRepository) *ProfileQuery {
	return &ProfileQuery{repo: repo}
}

var _ gocommand.Querier[ProfileQueryInput, *types.UserProfile] = (*ProfileQuery)(nil)

// Query returns the profile or a not found error.
func (q *ProfileQuery) Query(ctx context.Context, input ProfileQueryInput) (*types.UserProfile, error) {
	if q.repo == nil {
		return nil, types.ErrMissingProfileRepository
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	profile, err := q.repo.GetProfile(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, types.ErrProfileNotFound()
	}
	return profile, nil
}

// ProfileListQuery lists profiles ordered by username.
type ProfileListQuery struct {
	repo types.ProfileRepository
}

// NewProfileListQuery constructs the list helper.
func NewProfileListQuery(repo types.ProfileRepository) *ProfileListQuery {
	return &ProfileListQuery{repo: repo}
}

// Query delegates to the repository.
func (q *ProfileListQuery) Query(ctx context.Context, filter types.ProfileFilter) ([]types.UserProfile, error) {
	if q.repo == nil {
		return nil, types.ErrMissingProfileRepository
	}
	return q.repo.ListProfiles(ctx, filter)
}
