package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cordialhq/cordial/discord"
)

// ErrNoApplicationID is returned when an application-scoped endpoint
// is called before the client knows its application id.
var ErrNoApplicationID = errors.New("application id not set")

// NetworkError wraps a transport failure: DNS, TLS, connect or a
// timeout imposed by the underlying http client. The exchange never
// produced an HTTP status, so it is never retried here.
type NetworkError struct {
	Route string
	Err   error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request %s: %v", e.Route, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// RateLimitError reports a 429 that persisted past the retry cap.
// RetryAfter is the server's last stated wait; Global marks a
// platform-wide limit rather than a per-route one.
type RateLimitError struct {
	Route      string
	RetryAfter time.Duration
	Global     bool
	Attempts   int
}

func (e *RateLimitError) Error() string {
	scope := "route"
	if e.Global {
		scope = "global"
	}
	return fmt.Sprintf("rate limited (%s) on %s after %d attempts, retry after %s", scope, e.Route, e.Attempts, e.RetryAfter)
}

// StatusError is a terminal non-2xx response. The API's structured
// error envelope is decoded into API when the body carries one; the
// raw body is kept either way.
type StatusError struct {
	Status int
	API    *discord.APIError
	Body   []byte
}

// newStatusError classifies a non-2xx response body. A body that is
// not the documented envelope still yields a usable error.
func newStatusError(status int, body []byte) *StatusError {
	se := &StatusError{Status: status, Body: body}
	if len(body) > 0 {
		var apiErr discord.APIError
		if err := json.Unmarshal(body, &apiErr); err == nil && (apiErr.Code != 0 || apiErr.Message != "") {
			se.API = &apiErr
		}
	}
	return se
}

func (e *StatusError) Error() string {
	if e.API != nil {
		return fmt.Sprintf("http %d: %s (code %d)", e.Status, e.API.Message, e.API.Code)
	}
	return fmt.Sprintf("http %d", e.Status)
}

func (e *StatusError) Unwrap() error {
	if e.API != nil {
		return e.API
	}
	return nil
}

// Client reports a 4xx status.
func (e *StatusError) Client() bool {
	return e.Status >= 400 && e.Status < 500
}

// Server reports a 5xx status.
func (e *StatusError) Server() bool {
	return e.Status >= 500 && e.Status < 600
}

// DecodeError reports a 2xx body that did not match the caller's
// expected shape.
type DecodeError struct {
	Route string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response from %s: %v", e.Route, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == http.StatusNotFound
}

// IsStatus reports whether err is a terminal response with the given
// HTTP status.
func IsStatus(err error, status int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == status
}
