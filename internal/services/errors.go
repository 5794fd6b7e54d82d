package services

import (
	"errors"
	"fmt"
)

var (
	// ErrInvocation covers transport, auth, quota and empty-completion
	// failures from the completion service.
	ErrInvocation = errors.New("model invocation failed")

	// ErrParseFailure covers missing or malformed JSON and missing required
	// fields in an otherwise successful completion.
	ErrParseFailure = errors.New("model response parse failed")

	ErrNoJSON = fmt.Errorf("%w: no JSON object found in response", ErrParseFailure)
)

func parseFailure(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrParseFailure, fmt.Sprintf(format, args...))
}
