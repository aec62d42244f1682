package postlist

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"postfeed/internal/remote/jsonplaceholder"
)

// Sentinel errors returned by Controller operations.
// Neither changes the list state.
var (
	// ErrSubmitInFlight is returned when a create is requested while another is outstanding
	ErrSubmitInFlight = errors.New("a post is already being submitted")

	// ErrCreateUnsupported is returned when the controller was built without create support
	ErrCreateUnsupported = errors.New("creating posts is not supported")

	// errAborted marks an operation that ended without a result (panic in the client)
	errAborted = errors.New("operation aborted")
)

// Op names the controller operation a failure belongs to
type Op string

const (
	OpLoad    Op = "load"
	OpRefresh Op = "refresh"
	OpCreate  Op = "create"
)

// ErrorKind classifies failures for presentation
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNetwork
	KindHTTP
	KindParse
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindHTTP:
		return "http"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// OpError is a failed operation surfaced to the presentation layer
type OpError struct {
	Err        error
	Op         Op
	Kind       ErrorKind
	StatusCode int
}

func newOpError(op Op, err error) *OpError {
	kind, status := classify(err)
	return &OpError{
		Op:         op,
		Kind:       kind,
		StatusCode: status,
		Err:        err,
	}
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// Message is a short human-readable description for the UI
func (e *OpError) Message() string {
	var what string
	switch e.Op {
	case OpCreate:
		what = "Couldn't add post"
	case OpRefresh:
		what = "Couldn't refresh posts"
	default:
		what = "Couldn't load posts"
	}

	switch e.Kind {
	case KindNetwork:
		return what + ": the server could not be reached"
	case KindHTTP:
		return fmt.Sprintf("%s: server responded %d %s", what, e.StatusCode, http.StatusText(e.StatusCode))
	case KindParse:
		return what + ": unexpected response from server"
	default:
		return what
	}
}

func classify(err error) (ErrorKind, int) {
	switch {
	case jsonplaceholder.IsHTTPError(err):
		return KindHTTP, jsonplaceholder.StatusCode(err)
	case jsonplaceholder.IsParseError(err):
		return KindParse, 0
	case jsonplaceholder.IsNetworkError(err),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return KindNetwork, 0
	default:
		return KindUnknown, 0
	}
}
