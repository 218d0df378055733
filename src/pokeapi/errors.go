package pokeapi

import (
	"errors"
	"fmt"
)

// HTTPError captures a non-200 response from the catalog.
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// AsHTTPError attempts to unwrap an error into an HTTPError.
func AsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}

// ImageError wraps any failure to retrieve or decode a sprite.
type ImageError struct {
	URL string
	Err error
}

func (e *ImageError) Error() string {
	return fmt.Sprintf("image %s: %s", e.URL, e.Err)
}

func (e *ImageError) Unwrap() error {
	return e.Err
}

func AsImageError(err error) (*ImageError, bool) {
	var imgErr *ImageError
	if errors.As(err, &imgErr) {
		return imgErr, true
	}
	return nil, false
}
