package upstream

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrNotFound is returned for upstream 404 responses.
	ErrNotFound = errors.New("resource not found")
	// ErrSlugTaken is returned when a campaign slug is already in use (409).
	ErrSlugTaken = errors.New("campaign slug already taken")
	// ErrRateLimited is returned for upstream 429 responses.
	ErrRateLimited = errors.New("rate limited by upstream")
	// ErrSessionExpired is returned when the refresh token is rejected and the
	// session cannot be renewed.
	ErrSessionExpired = errors.New("session expired")
)

// Error is a non-2xx upstream response with its parsed message.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("upstream: status %d: %s", e.Status, e.Message)
}

// Is makes the well-known statuses match their sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrSlugTaken:
		return e.Status == http.StatusConflict
	case ErrRateLimited:
		return e.Status == http.StatusTooManyRequests
	}
	return false
}

// newError builds an Error from a response body, pulling the upstream's
// "message" field when the body is JSON. Nest emits both string and
// string-array messages.
func newError(status int, body []byte) *Error {
	msg := parseMessage(body)
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &Error{Status: status, Message: msg}
}

func parseMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var withString struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &withString); err == nil && withString.Message != "" {
		return withString.Message
	}

	var withList struct {
		Message []string `json:"message"`
	}
	if err := json.Unmarshal(body, &withList); err == nil && len(withList.Message) > 0 {
		return strings.Join(withList.Message, "; ")
	}

	return ""
}
