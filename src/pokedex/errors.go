package pokedex

import (
	"errors"
	"fmt"
)

// ExtractionError reports a required field that is missing or has the wrong shape.
type ExtractionError struct {
	Field string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("missing or malformed field %q", e.Field)
}

// AsExtractionError attempts to unwrap an error into an ExtractionError.
func AsExtractionError(err error) (*ExtractionError, bool) {
	var exErr *ExtractionError
	if errors.As(err, &exErr) {
		return exErr, true
	}
	return nil, false
}

// RenderError marks a card composition or display failure. Unlike the other
// lookup errors it ends the session.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("rendering card: %s", e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

func AsRenderError(err error) (*RenderError, bool) {
	var rErr *RenderError
	if errors.As(err, &rErr) {
		return rErr, true
	}
	return nil, false
}
