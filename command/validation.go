package command

import (
	"errors"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-polls/pkg/types"
)

// MessageInvalidInput is the summary message of field validation failures.
const MessageInvalidInput = "go-polls: invalid input"

var validate = validator.New()

// validateFields runs the struct tag rules on input and maps failures onto
// go-errors field errors.
func validateFields(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}
	var failures validator.ValidationErrors
	if !errors.As(err, &failures) {
		return err
	}
	fields := make([]goerrors.FieldError, 0, len(failures))
	for _, failure := range failures {
		fields = append(fields, goerrors.FieldError{
			Field:   fieldPath(failure.Namespace()),
			Message: fieldMessage(failure),
			Value:   failure.Value(),
		})
	}
	return types.NewValidationError(types.TextCodeValidationFailed, MessageInvalidInput, fields...)
}

// fieldPath drops the root struct name and lowercases each segment head:
// "QuestionCreateInput.Options[2]" becomes "options[2]".
func fieldPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, part := range parts {
		parts[i] = lowerFirst(part)
	}
	return strings.Join(parts, ".")
}

func lowerFirst(s string) string {
	for i, r := range s {
		return string(unicode.ToLower(r)) + s[i+len(string(r)):]
	}
	return s
}

func fieldMessage(failure validator.FieldError) string {
	switch failure.Tag() {
	case "required":
		return "is required"
	case "max":
		if failure.Kind() == reflect.String {
			return "must be at most " + failure.Param() + " characters"
		}
		return "must be at most " + failure.Param()
	case "min":
		return "must be at least " + failure.Param()
	default:
		return "failed " + failure.Tag() + " validation"
	}
}

func invalidField(field, message string, value any) error {
	return types.NewValidationError(types.TextCodeValidationFailed, MessageInvalidInput,
		goerrors.FieldError{Field: field, Message: message, Value: value})
}
