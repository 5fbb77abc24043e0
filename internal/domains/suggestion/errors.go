package suggestion

import "errors"

var (
	ErrSuggestionNotFound = errors.New("suggestion not found")
	ErrNotPending         = errors.New("suggestion has already been decided")
)

const (
	CodeSuggestionNotFound = "SGT001"
	CodeNotPending         = "SGT002"
)
