package crudsvc

import (
	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-crud"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-polls/command"
	"github.com/goliatone/go-polls/pkg/types"
	"github.com/goliatone/go-polls/profile"
	"github.com/goliatone/go-polls/query"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
)

// ProfileServiceConfig wires dependencies for the profile CRUD adapter.
type ProfileServiceConfig struct {
	Upsert gocommand.Commander[command.ProfileUpsertInput]
	Detail gocommand.Querier[query.ProfileQueryInput, *types.UserProfile]
	List   gocommand.Querier[types.ProfileFilter, []types.UserProfile]
}

// ProfileService exposes profiles through go-crud. Create and Update both
// upsert; profiles are never deleted.
type ProfileService struct {
	upsert     gocommand.Commander[command.ProfileUpsertInput]
	detail     gocommand.Querier[query.ProfileQueryInput, *types.UserProfile]
	list       gocommand.Querier[types.ProfileFilter, []types.UserProfile]
	requesters RequesterResolver
	logger     types.Logger
}

// NewProfileService constructs the adapter.
func NewProfileService(cfg ProfileServiceConfig, opts ...ServiceOption) *ProfileService {
	options := applyOptions(opts)
	return &ProfileService{
		upsert:     cfg.Upsert,
		detail:     cfg.Detail,
		list:       cfg.List,
		requesters: options.requesters,
		logger:     options.logger,
	}
}

var _ crud.Service[*profile.Record] = (*ProfileService)(nil)

func (s *ProfileService) Create(ctx crud.Context, record *profile.Record) (*profile.Record, error) {
	return s.upsertRecord(ctx, record)
}

func (s *ProfileService) CreateBatch(ctx crud.Context, records []*profile.Record) ([]*profile.Record, error) {
	return s.upsertBatch(ctx, records)
}

func (s *ProfileService) Update(ctx crud.Context, record *profile.Record) (*profile.Record, error) {
	return s.upsertRecord(ctx, record)
}

func (s *ProfileService) UpdateBatch(ctx crud.Context, records []*profile.Record) ([]*profile.Record, error) {
	return s.upsertBatch(ctx, records)
}

func (s *ProfileService) Delete(crud.Context, *profile.Record) error {
	return notSupported(crud.OpDelete)
}

func (s *ProfileService) DeleteBatch(crud.Context, []*profile.Record) error {
	return notSupported(crud.OpDeleteBatch)
}

func (s *ProfileService) Index(ctx crud.Context, _ []repository.SelectCriteria) ([]*profile.Record, int, error) {
	if s.list == nil {
		return nil, 0, notWired("profile list query")
	}
	profiles, err := s.list.Query(ctx.UserContext(), types.ProfileFilter{
		IDs:    queryUUIDSlice(ctx, "id"),
		Region: ctx.Query("region"),
	})
	if err != nil {
		return nil, 0, err
	}
	out := make([]*profile.Record, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, profile.NewRecord(p))
	}
	return out, len(out), nil
}

func (s *ProfileService) Show(ctx crud.Context, id string, _ []repository.SelectCriteria) (*profile.Record, error) {
	if s.detail == nil {
		return nil, notWired("profile detail query")
	}
	userID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	found, err := s.detail.Query(ctx.UserContext(), query.ProfileQueryInput{UserID: userID})
	if err != nil {
		return nil, err
	}
	return profile.NewRecord(*found), nil
}

// upsertRecord patches the non blank fields of record. A blank id targets the
// requester's own profile, and authenticated requesters may only edit
// themselves.
func (s *ProfileService) upsertRecord(ctx crud.Context, record *profile.Record) (*profile.Record, error) {
	if s.upsert == nil {
		return nil, notWired("profile upsert command")
	}
	requester, err := s.requesters.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	userID := record.ID
	if userID == uuid.Nil {
		userID = requester.ProfileID()
	}
	if requester.IsAuthenticated() && userID != requester.ProfileID() {
		return nil, goerrors.New("go-polls: profiles can only be edited by their owner", goerrors.CategoryAuthz).
			WithCode(goerrors.CodeForbidden)
	}
	result := types.UserProfile{}
	input := command.ProfileUpsertInput{
		UserID: userID,
		Patch:  profilePatch(record),
		Result: &result,
	}
	if err := s.upsert.Execute(ctx.UserContext(), input); err != nil {
		return nil, err
	}
	return profile.NewRecord(result), nil
}

func (s *ProfileService) upsertBatch(ctx crud.Context, records []*profile.Record) ([]*profile.Record, error) {
	out := make([]*profile.Record, 0, len(records))
	for _, record := range records {
		rec, err := s.upsertRecord(ctx, record)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func profilePatch(record *profile.Record) types.ProfilePatch {
	patch := types.ProfilePatch{
		Username:  optional(record.Username),
		Email:     optional(record.Email),
		FirstName: optional(record.FirstName),
		LastName:  optional(record.LastName),
		Region:    optional(record.Region),
		AvatarURL: optional(record.AvatarURL),
	}
	if record.Age > 0 {
		age := record.Age
		patch.Age = &age
	}
	if record.Gender != "" {
		gender := types.Gender(record.Gender)
		patch.Gender = &gender
	}
	return patch
}
