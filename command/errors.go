package command

import (
	"errors"

	"github.com/goliatone/go-polls/pkg/types"
)

var (
	// ErrAskerRequired indicates a question create omitted the asker.
	ErrAskerRequired = errors.New("go-polls: question requires asker")
	// ErrQuestionIDRequired indicates the question reference was missing.
	ErrQuestionIDRequired = types.ErrQuestionIDRequired
	// ErrAnswerIDRequired indicates the answer reference was missing.
	ErrAnswerIDRequired = types.ErrAnswerIDRequired
	// ErrUserIDRequired indicates the profile reference was missing.
	ErrUserIDRequired = types.ErrUserIDRequired
	// ErrEmptyPatch indicates an update carried no changes.
	ErrEmptyPatch = errors.New("go-polls: update contains no changes")
)
