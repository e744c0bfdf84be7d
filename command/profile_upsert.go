package command

import (
	"context"
	"strings"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-polls/pkg/types"
	"github.com/google/uuid"
)

// ProfileCommandConfig wires dependencies for profile commands.
type ProfileCommandConfig struct {
	Repository types.ProfileRepository
	Defaults   map[string]any
	Hooks      types.Hooks
	Clock      types.Clock
	Logger     types.Logger
}

// ProfileUpsertInput captures a profile patch request.
type ProfileUpsertInput struct {
	UserID uuid.UUID
	Patch  types.ProfilePatch
	Result *types.UserProfile `validate:"-"`
}

// Type implements gocommand.Message.
func (ProfileUpsertInput) Type() string {
	return "command.profile.upsert"
}

// Validate implements gocommand.Message.
func (input ProfileUpsertInput) Validate() error {
	if input.UserID == uuid.Nil {
		return types.ErrUserIDRequired
	}
	if input.Patch.Gender != nil && !input.Patch.Gender.Valid() {
		return invalidField("gender", "must be M or F", string(*input.Patch.Gender))
	}
	return validateFields(input)
}

// ProfileUpsertCommand applies profile patches for a user.
type ProfileUpsertCommand struct {
	repo     types.ProfileRepository
	defaults map[string]any
	hooks    types.Hooks
	clock    types.Clock
	logger   types.Logger
}

// NewProfileUpsertCommand constructs the profile command handler.
func NewProfileUpsertCommand(cfg ProfileCommandConfig) *ProfileUpsertCommand {
	return &ProfileUpsertCommand{
		repo:     cfg.Repository,
		defaults: cloneMap(cfg.Defaults),
		hooks:    safeHooks(cfg.Hooks),
		clock:    safeClock(cfg.Clock),
		logger:   safeLogger(cfg.Logger),
	}
}

var _ gocommand.Commander[ProfileUpsertInput] = (*ProfileUpsertCommand)(nil)

// Execute applies the supplied patch creating the profile when necessary.
func (c *ProfileUpsertCommand) Execute(ctx context.Context, input ProfileUpsertInput) error {
	if c.repo == nil {
		return types.ErrMissingProfileRepository
	}
	if err := input.Validate(); err != nil {
		return err
	}

	existing, err := c.repo.GetProfile(ctx, input.UserID)
	if err != nil {
		return err
	}
	profile := &types.UserProfile{ID: input.UserID}
	if existing != nil {
		*profile = *existing
	} else {
		defaults, err := ResolveProfileDefaults(c.defaults)
		if err != nil {
			c.logger.Error("profile defaults unresolved", err)
			return err
		}
		profile.Age = defaults.Age
		profile.Region = defaults.Region
		profile.JoinDate = now(c.clock)
	}
	applyProfilePatch(profile, input.Patch)

	updated, err := c.repo.UpsertProfile(ctx, *profile)
	if err != nil {
		return err
	}
	if input.Result != nil {
		*input.Result = *updated
	}
	emitProfileHook(ctx, c.hooks, types.ProfileEvent{
		UserID:     input.UserID,
		OccurredAt: now(c.clock),
		Profile:    *updated,
	})
	return nil
}

func applyProfilePatch(profile *types.UserProfile, patch types.ProfilePatch) {
	if profile == nil {
		return
	}
	if patch.Username != nil {
		profile.Username = strings.TrimSpace(*patch.Username)
	}
	if patch.Email != nil {
		profile.Email = strings.TrimSpace(*patch.Email)
	}
	if patch.FirstName != nil {
		profile.FirstName = strings.TrimSpace(*patch.FirstName)
	}
	if patch.LastName != nil {
		profile.LastName = strings.TrimSpace(*patch.LastName)
	}
	if patch.Age != nil {
		profile.Age = *patch.Age
	}
	if patch.Gender != nil {
		profile.Gender = *patch.Gender
	}
	if patch.Region != nil {
		profile.Region = strings.TrimSpace(*patch.Region)
	}
	if patch.AvatarURL != nil {
		profile.AvatarURL = strings.TrimSpace(*patch.AvatarURL)
	}
}
