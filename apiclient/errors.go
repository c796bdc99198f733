package apiclient

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

// ErrUnauthorized is returned for any 401. By the time the caller sees it the stored
// credential is gone and the console has been sent to sign-in.
var ErrUnauthorized = errors.New("session rejected by backend")

// APIError is any other non-2xx answer from the backend.
type APIError struct {
	Status  int
	Path    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend %s: %d %s", e.Path, e.Status, e.Message)
}

func newAPIError(status int, path string, body []byte) *APIError {
	msg := gjson.GetBytes(body, "message").String()
	if msg == "" {
		msg = gjson.GetBytes(body, "error").String()
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &APIError{Status: status, Path: path, Message: msg}
}

// StatusOf returns the backend status carried by err, or 0.
func StatusOf(err error) int {
	if errors.Is(err, ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
