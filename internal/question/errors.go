package question

import "errors"

var (
	ErrInvalidDifficulty = errors.New("invalid difficulty")
	ErrTypeMismatch      = errors.New("answer type mismatch")
	ErrUnknownKind       = errors.New("unknown question kind")
)
