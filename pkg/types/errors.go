package types

import (
	goerrors "github.com/goliatone/go-errors"
)

const (
	TextCodeQuestionNotFound   = "QUESTION_NOT_FOUND"
	TextCodeProfileNotFound    = "PROFILE_NOT_FOUND"
	TextCodeAnswerNotFound     = "ANSWER_NOT_FOUND"
	TextCodeValidationFailed   = "VALIDATION_FAILED"
	TextCodeOptionsNotUnique   = "OPTIONS_NOT_UNIQUE"
	TextCodeSelfConnection     = "SELF_CONNECTION"
	TextCodeAnonymousForbidden = "ANONYMOUS_ANSWER_FORBIDDEN"
)

// NewNotFound builds a 404 style error carrying the supplied text code.
func NewNotFound(textCode, message string) error {
	return goerrors.New(message, goerrors.CategoryNotFound).
		WithCode(goerrors.CodeNotFound).
		WithTextCode(textCode)
}

// NewValidationError builds a 400 style error with per field messages.
func NewValidationError(textCode, message string, fields ...goerrors.FieldError) error {
	return goerrors.NewValidation(message, fields...).
		WithCode(goerrors.CodeBadRequest).
		WithTextCode(textCode)
}

// ErrQuestionNotFound reports an unknown question id.
func ErrQuestionNotFound() error {
	return NewNotFound(TextCodeQuestionNotFound, "go-polls: question not found")
}

// ErrProfileNotFound reports an unknown profile id.
func ErrProfileNotFound() error {
	return NewNotFound(TextCodeProfileNotFound, "go-polls: profile not found")
}

// ErrAnswerNotFound reports an unknown answer id.
func ErrAnswerNotFound() error {
	return NewNotFound(TextCodeAnswerNotFound, "go-polls: answer not found")
}

// ErrAnonymousAnswersDisabled reports an anonymous answer rejected by the
// feature gate.
func ErrAnonymousAnswersDisabled() error {
	return goerrors.New("go-polls: anonymous answers are disabled", goerrors.CategoryAuthz).
		WithCode(goerrors.CodeForbidden).
		WithTextCode(TextCodeAnonymousForbidden)
}
