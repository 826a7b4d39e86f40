package languagetool

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// ErrInvalidURL indicates the configured server URL could not be parsed.
var ErrInvalidURL = errors.New("invalid server URL")

// ErrMissingCredentials indicates an endpoint that requires both a username
// and an API key was called without them.
var ErrMissingCredentials = errors.New("username and API key are both required")

// StatusError is returned when the server replies with a non-2xx status.
type StatusError struct {
	// Code is the numeric HTTP status code.
	Code int

	// Status is the full status line (e.g. "500 Internal Server Error").
	Status string

	// Body is the response body, truncated to a sane length.
	Body string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("server returned %s", e.Status)
	}
	return fmt.Sprintf("server returned %s: %s", e.Status, body)
}

// UserMessage maps a transport failure onto the human-readable message shown
// through the host's message facility. Four shapes exist: HTTP status errors
// (code, reason phrase and body), invalid URL, connection timeout, and a
// generic fallback for any other I/O failure.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Error()
	}

	if errors.Is(err, ErrInvalidURL) {
		return err.Error()
	}

	if isTimeout(err) {
		return "connection timeout: the server did not respond in time"
	}

	return fmt.Sprintf("unknown error: %v", err)
}

// isTimeout reports whether err represents an expired deadline, either from
// the request context or from the underlying transport.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
