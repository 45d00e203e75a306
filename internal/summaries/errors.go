package summaries

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// TransportError reports that the request never produced an HTTP response.
// Error returns the underlying cause's message unchanged.
type TransportError struct {
	Endpoint Endpoint
	Err      error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: transport failure", e.Endpoint)
	}
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError reports a non-2xx response. Message comes from the response body
// when the backend supplied one.
type APIError struct {
	Endpoint   Endpoint
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// ParseError reports a successful status whose body was not valid JSON.
type ParseError struct {
	Endpoint Endpoint
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("decode %s response: %v", e.Endpoint, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// failureBody is the error payload the backend returns on non-2xx responses.
type failureBody struct {
	Message *string `json:"message"`
}

func defaultFailureMessage(endpoint Endpoint, status int) string {
	return fmt.Sprintf("%s failed with status %d", endpoint, status)
}

// transportCause strips the *url.Error wrapper http.Client adds so callers
// see the transport's own message.
func transportCause(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Err != nil {
		return uerr.Err
	}
	return err
}
