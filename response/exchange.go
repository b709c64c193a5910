// Package response models the raw result of a transport dispatch and
// classifies it into exactly one typed outcome: a decoded value, an empty
// completion, or a structured error.
package response

import (
	"net/http"
	"time"
)

// Timing captures per-phase durations observed while the exchange was in
// flight.
type Timing struct {
	TimeToFirstByte time.Duration
	Total           time.Duration
}

// Exchange is the raw result of one transport dispatch. At most one of
// Body/Err is meaningfully populated; StatusCode is 0 when no response was
// received.
type Exchange struct {
	Body       []byte
	StatusCode int
	Header     http.Header
	Err        error
	Timing     Timing
}

// HasResponse reports whether a status code was received.
func (ex Exchange) HasResponse() bool {
	return ex.StatusCode != 0
}

// HasBody reports whether any payload bytes were received.
func (ex Exchange) HasBody() bool {
	return len(ex.Body) > 0
}

// IsSuccess reports a 2xx status.
func (ex Exchange) IsSuccess() bool {
	return ex.StatusCode >= 200 && ex.StatusCode < 300
}

// IsErrorStatus reports a status in the error range.
func (ex Exchange) IsErrorStatus() bool {
	return ex.StatusCode >= 400
}

// IsClientError reports a 4xx status.
func (ex Exchange) IsClientError() bool {
	return ex.StatusCode >= 400 && ex.StatusCode < 500
}

// IsServerError reports a 5xx status.
func (ex Exchange) IsServerError() bool {
	return ex.StatusCode >= 500 && ex.StatusCode < 600
}
