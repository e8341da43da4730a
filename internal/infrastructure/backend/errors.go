package backend

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/libraryhub/portal/internal/core/domain"
)

// Error is a non-2xx backend response. It unwraps to the domain sentinel for
// its status class.
type Error struct {
	Status  int
	Message string

	kind error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("backend: %d %s", e.Status, e.Message)
}

func (e *Error) Unwrap() error { return e.kind }

// newError classifies a response. authenticated is true when the request
// carried a bearer token.
func newError(status int, body []byte, authenticated bool) *Error {
	return &Error{
		Status:  status,
		Message: errorMessage(body),
		kind:    classify(status, authenticated),
	}
}

func classify(status int, authenticated bool) error {
	switch {
	case status == http.StatusUnauthorized && authenticated:
		return domain.ErrSessionExpired
	case status == http.StatusUnauthorized:
		return domain.ErrUnauthenticated
	case status == http.StatusForbidden:
		return domain.ErrForbidden
	case status == http.StatusNotFound:
		return domain.ErrNotFound
	case status >= 400 && status < 500:
		return domain.ErrValidation
	default:
		return domain.ErrBackendUnavailable
	}
}

// errorMessage pulls a human message out of the backend's error body. The
// backend answers with {"message": ...}, {"error": ...} or plain text.
func errorMessage(body []byte) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
		return ""
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}
