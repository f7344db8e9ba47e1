package stream

import (
	"errors"
	"fmt"
)

// ErrUnsupportedURL means the input URL does not reference a Stream video.
// It is returned before any network call is made.
var ErrUnsupportedURL = errors.New("unsupported URL: expected https://web.microsoftstream.com/video/<id>")

// ErrLoginRequired means the page came back without the authenticated
// marker. The session cookies are missing or expired; retrying is useless.
var ErrLoginRequired = errors.New("this video is only available to signed-in users: export your browser session cookies and pass them with --cookies")

// MissingFieldError means an expected credential field was absent from the
// page markup, which usually indicates an upstream page-structure change.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("unable to extract %s from the video page (the page layout may have changed)", e.Field)
}
