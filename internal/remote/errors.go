package remote

import (
	"errors"
	"fmt"
	"strings"
)

// NetworkError is any failure talking to the dashboard service: transport
// errors, timeouts and non-2xx answers alike.
type NetworkError struct {
	Op         string
	StatusCode int
	// Message is the human readable message the server put in its error body, if any.
	Message string
	Err     error
}

func (e *NetworkError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
	}
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// UserMessage returns the server supplied message carried by err, or fallback.
func UserMessage(err error, fallback string) string {
	var ne *NetworkError
	if errors.As(err, &ne) && strings.TrimSpace(ne.Message) != "" {
		return ne.Message
	}
	return fallback
}
