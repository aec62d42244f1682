package jsonplaceholder

import (
	"errors"
	"fmt"
)

// ErrInvalidLimit is returned before any request is made when the list limit is not positive.
var ErrInvalidLimit = errors.New("limit must be a positive integer")

// errEmptyPost is wrapped in a ParseError when a create answers 2xx with a null body
var errEmptyPost = errors.New("response body is null")

// NetworkError indicates the request never produced an HTTP response
// (DNS failure, connection refused, timeout, context cancellation).
type NetworkError struct {
	Err error
	Op  string
	URL string
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error calling %s: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError indicates the server answered with a non-2xx status.
// Body holds at most the first 1KB of the response.
type HTTPError struct {
	Op         string
	Body       string
	StatusCode int
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: unexpected status code %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: unexpected status code %d: %s", e.Op, e.StatusCode, e.Body)
}

// ParseError indicates the response body could not be decoded into the expected shape.
type ParseError struct {
	Err error
	Op  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to decode response: %v", e.Op, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsNetworkError reports whether err is (or wraps) a *NetworkError
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// IsHTTPError reports whether err is (or wraps) a *HTTPError
func IsHTTPError(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr)
}

// IsParseError reports whether err is (or wraps) a *ParseError
func IsParseError(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}

// StatusCode returns the HTTP status carried by err, or 0 if err is not an HTTPError
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}
