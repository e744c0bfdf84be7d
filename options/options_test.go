package options

import (
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-polls/pkg/types"
	"github.com/stretchr/testify/require"
)

func TestToArrayKeepsBlankSlots(t *testing.T) {
	slots := [types.OptionSlots]string{"", "Yes", "", "No", ""}
	require.Equal(t, []string{"", "Yes", "", "No", ""}, ToArray(slots))
}

func TestColumnsRoundTrip(t *testing.T) {
	cases := [][types.OptionSlots]string{
		{"Red", "Blue", "", "", ""},
		{"", "", "", "", "Only last"},
		{"a", "", "c", "", "e"},
		{},
	}
	for _, slots := range cases {
		back, err := ToColumns(ToArray(slots))
		require.NoError(t, err)
		require.Equal(t, slots, back)
	}
}

func TestToColumnsPadsShortLists(t *testing.T) {
	slots, err := ToColumns([]string{"Yes", "No"})
	require.NoError(t, err)
	require.Equal(t, [types.OptionSlots]string{"Yes", "No", "", "", ""}, slots)
}

func TestToColumnsRejectsOverflow(t *testing.T) {
	_, err := ToColumns([]string{"1", "2", "3", "4", "5", "6"})
	require.Error(t, err)
	require.True(t, goerrors.IsValidation(err))
}

func TestFromPayloadPrefersOptionsList(t *testing.T) {
	slots, err := FromPayload(map[string]any{
		"options": []any{"A", nil, "C"},
		"option1": "ignored",
	})
	require.NoError(t, err)
	require.Equal(t, [types.OptionSlots]string{"A", "", "C", "", ""}, slots)

	slots, err = FromPayload(map[string]any{
		"option2": "B",
		"option5": "E",
	})
	require.NoError(t, err)
	require.Equal(t, [types.OptionSlots]string{"", "B", "", "", "E"}, slots)

	_, err = FromPayload(map[string]any{"option1": 3})
	require.Error(t, err)
}

func TestValidateCaseInsensitiveDuplicates(t *testing.T) {
	err := Validate([types.OptionSlots]string{"Red", "red", "Blue", "", ""})
	require.Error(t, err)
	require.True(t, goerrors.IsValidation(err))

	var perr *goerrors.Error
	require.ErrorAs(t, err, &perr)
	require.Equal(t, MessageNotUnique, perr.Message)
	require.Equal(t, MessageNotUnique, perr.ValidationMap()["options"])

	require.NoError(t, Validate([types.OptionSlots]string{"Red", "Blue", "", "", ""}))
}

func TestValidateIgnoresBlankSlots(t *testing.T) {
	require.NoError(t, Validate([types.OptionSlots]string{"", " ", "", "", ""}))
	require.Error(t, Validate([types.OptionSlots]string{"École", "", "ÉCOLE", "", ""}))
}

func TestValidateTreatsPaddedOptionsAsDuplicates(t *testing.T) {
	err := Validate([types.OptionSlots]string{"Yes", " yes ", "", "", ""})
	require.True(t, goerrors.IsValidation(err))
}
