package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const maxErrorBody = 64 << 10

// ErrUnauthorized matches any 401 returned through the gateway.
var ErrUnauthorized = errors.New("unauthorized")

// HTTPError is a non-2xx response. Detail holds the decoded "detail" field of
// the API's error payload, which may be a string or a validation list.
type HTTPError struct {
	Status int
	Detail any
	Body   []byte
}

func (e *HTTPError) Error() string {
	if msg, ok := e.Message(); ok {
		return fmt.Sprintf("api error: status %d: %s", e.Status, msg)
	}
	return fmt.Sprintf("api error: status %d", e.Status)
}

func (e *HTTPError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// Message returns Detail when it is a non-empty string.
func (e *HTTPError) Message() (string, bool) {
	s, ok := e.Detail.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

func newHTTPError(resp *http.Response) *HTTPError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	he := &HTTPError{Status: resp.StatusCode, Body: body}

	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Detail) > 0 {
		var detail any
		if err := json.Unmarshal(payload.Detail, &detail); err == nil {
			he.Detail = detail
		}
	}
	return he
}

// ErrorMessage turns err into text for the user: the server's string detail
// when there is one, fallback otherwise.
func ErrorMessage(err error, fallback string) string {
	var he *HTTPError
	if errors.As(err, &he) {
		if msg, ok := he.Message(); ok {
			return msg
		}
	}
	return fallback
}
