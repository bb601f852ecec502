package gateway

import (
	"fmt"
	"net/http"
)

// TransportError covers everything that prevented a usable HTTP reply:
// dial failures, timeouts, unreadable bodies.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *TransportError) Unwrap() error { return e.Err }

// RejectedError is a reply outside 2xx. 4xx and 5xx are not distinguished
// by callers.
type RejectedError struct {
	StatusCode int
	Body       []byte
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("rejected: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}
