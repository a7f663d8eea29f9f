package entity

import "errors"

// Domain errors for vocabulary items and review sessions.
var (
	ErrItemNotFound      = errors.New("vocabulary item not found")
	ErrListNotFound      = errors.New("word list not found")
	ErrRecordNotFound    = errors.New("review record not found")
	ErrEmptySession      = errors.New("session requires at least one item")
	ErrNoActiveSession   = errors.New("no active session")
	ErrSessionFinished   = errors.New("session already finished")
	ErrSessionIncomplete = errors.New("session still has active items")
	ErrInvalidMode       = errors.New("invalid quiz mode")
)
