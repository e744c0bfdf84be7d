package query

import (
	"context"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-polls/pkg/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestProfileQueries(t *testing.T) {
	f := newFixture(t)
	ana := f.profile(t, "ana", types.GenderFemale, "Toronto", 30)
	f.profile(t, "bob", types.GenderMale, "Ottawa", 35)
	ctx := context.Background()

	found, err := NewProfileQuery(f.profiles).Query(ctx, ProfileQueryInput{UserID: ana.ID})
	require.NoError(t, err)
	require.Equal(t, "ana", found.Username)

	_, err = NewProfileQuery(f.profiles).Query(ctx, ProfileQueryInput{UserID: uuid.New()})
	require.True(t, goerrors.IsNotFound(err))

	_, err = NewProfileQuery(f.profiles).Query(ctx, ProfileQueryInput{})
	require.ErrorIs(t, err, types.ErrUserIDRequired)

	toronto, err := NewProfileListQuery(f.profiles).Query(ctx, types.ProfileFilter{Region: "Toronto"})
	require.NoError(t, err)
	require.Len(t, toronto, 1)
}

func TestAnswerQueries(t *testing.T) {
	f := newFixture(t)
	ana := f.profile(t, "ana", types.GenderFemale, "Toronto", 30)
	q := f.question(t, ana.ID, types.QuestionTypeMultipleChoice, baseTime, "a", "b")
	stored := f.answer(t, q.ID, ana.ID, 1)
	f.answer(t, q.ID, types.AnonymousUserID, 0)
	ctx := context.Background()

	found, err := NewAnswerDetailQuery(f.answers).Query(ctx, AnswerDetailInput{AnswerID: stored.ID})
	require.NoError(t, err)
	require.Equal(t, 1, found.Value)

	_, err = NewAnswerDetailQuery(f.answers).Query(ctx, AnswerDetailInput{AnswerID: uuid.New()})
	require.True(t, goerrors.IsNotFound(err))

	list, err := NewAnswerListQuery(f.answers).Query(ctx, types.AnswerFilter{QuestionID: q.ID})
	require.NoError(t, err)
	require.Len(t, list, 2)

	mine, err := NewAnswerListQuery(f.answers).Query(ctx, types.AnswerFilter{UserID: ana.ID})
	require.NoError(t, err)
	require.Len(t, mine, 1)
}

func TestConnectionListQuery(t *testing.T) {
	f := newFixture(t)
	ana := f.profile(t, "ana", types.GenderFemale, "Toronto", 30)
	bob := f.profile(t, "bob", types.GenderMale, "Ottawa", 35)
	carol := f.profile(t, "carol", types.GenderFemale, "Toronto", 24)
	f.connect(t, ana.ID, bob.ID)
	f.connect(t, carol.ID, ana.ID)
	ctx := context.Background()

	conns, err := NewConnectionListQuery(f.connections).Query(ctx, ConnectionListInput{UserID: ana.ID})
	require.NoError(t, err)
	require.Len(t, conns, 2)

	conns, err = NewConnectionListQuery(f.connections).Query(ctx, ConnectionListInput{UserID: bob.ID})
	require.NoError(t, err)
	require.Len(t, conns, 1)
	require.Equal(t, ana.ID, conns[0].Other(bob.ID))

	_, err = NewConnectionListQuery(f.connections).Query(ctx, ConnectionListInput{})
	require.ErrorIs(t, err, types.ErrUserIDRequired)
}
