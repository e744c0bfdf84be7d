// Package options converts between the five option columns stored on a
// question and the ordered option list exchanged with clients.
package options

import (
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-polls/pkg/types"
	"golang.org/x/text/cases"
)

// MessageNotUnique is reported when two non blank options collide.
const MessageNotUnique = "Options must be unique"

// ToArray returns the option slots in order. Blank slots stay in place as
// empty strings.
func ToArray(slots [types.OptionSlots]string) []string {
	out := make([]string, types.OptionSlots)
	copy(out, slots[:])
	return out
}

// ToColumns maps an ordered option list back onto the five slots. Missing
// trailing entries become blank.
func ToColumns(list []string) ([types.OptionSlots]string, error) {
	var slots [types.OptionSlots]string
	if len(list) > types.OptionSlots {
		return slots, types.NewValidationError(types.TextCodeValidationFailed,
			"go-polls: too many options",
			goerrors.FieldError{
				Field:   "options",
				Message: fmt.Sprintf("at most %d options are allowed", types.OptionSlots),
				Value:   len(list),
			})
	}
	copy(slots[:], list)
	return slots, nil
}

// FromPayload reads options from a decoded request body. An "options" list
// takes precedence over the option1..option5 fields.
func FromPayload(payload map[string]any) ([types.OptionSlots]string, error) {
	if raw, ok := payload["options"]; ok && raw != nil {
		list, err := stringList(raw)
		if err != nil {
			return [types.OptionSlots]string{}, err
		}
		return ToColumns(list)
	}
	var slots [types.OptionSlots]string
	for i := range slots {
		key := FieldName(i)
		value, ok := payload[key]
		if !ok || value == nil {
			continue
		}
		str, ok := value.(string)
		if !ok {
			return slots, invalidOption(key, value)
		}
		slots[i] = str
	}
	return slots, nil
}

// FieldName returns the column name for a zero based slot index.
func FieldName(index int) string {
	return fmt.Sprintf("option%d", index+1)
}

// Validate rejects option sets where two non blank slots are equal under
// Unicode case folding.
func Validate(slots [types.OptionSlots]string) error {
	caser := cases.Fold()
	seen := make(map[string]int, types.OptionSlots)
	for i, option := range slots {
		key := strings.TrimSpace(option)
		if key == "" {
			continue
		}
		key = caser.String(key)
		if first, ok := seen[key]; ok {
			return types.NewValidationError(types.TextCodeOptionsNotUnique, MessageNotUnique,
				goerrors.FieldError{
					Field:   "options",
					Message: MessageNotUnique,
					Value:   []string{FieldName(first), FieldName(i)},
				})
		}
		seen[key] = i
	}
	return nil
}

func stringList(raw any) ([]string, error) {
	switch list := raw.(type) {
	case []string:
		return list, nil
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if item == nil {
				out = append(out, "")
				continue
			}
			str, ok := item.(string)
			if !ok {
				return nil, invalidOption("options", item)
			}
			out = append(out, str)
		}
		return out, nil
	default:
		return nil, invalidOption("options", raw)
	}
}

func invalidOption(field string, value any) error {
	return types.NewValidationError(types.TextCodeValidationFailed,
		"go-polls: invalid option value",
		goerrors.FieldError{
			Field:   field,
			Message: "options must be strings",
			Value:   value,
		})
}
