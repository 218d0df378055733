package session

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

const (
	reasonEmpty      = "No name entered. Try again."
	reasonNotLetters = "The name must contain only letters."
)

// ValidationError rejects a creature name before any lookup is attempted.
type ValidationError struct {
	Input  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid name %q: %s", e.Input, e.Reason)
}

func AsValidationError(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}

// NormalizeName trims and lowercases input and checks that it is made only of letters.
func NormalizeName(input string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(input))
	if name == "" {
		return "", &ValidationError{Input: input, Reason: reasonEmpty}
	}
	for _, r := range name {
		if !unicode.IsLetter(r) {
			return "", &ValidationError{Input: input, Reason: reasonNotLetters}
		}
	}
	return name, nil
}

func isEmpty(err error) bool {
	vErr, ok := AsValidationError(err)
	return ok && vErr.Reason == reasonEmpty
}
