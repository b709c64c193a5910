package response

import "fmt"

// TransportError reports a network or engine-level failure. The core never
// retries these; that is the caller's decision.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// EmptyResponseError reports an exchange with no status code and no response
// data at all.
type EmptyResponseError struct{}

func (e *EmptyResponseError) Error() string {
	return "empty response"
}

// UnsupportedResponseError reports a response object that carried no status
// code and cannot be classified.
type UnsupportedResponseError struct{}

func (e *UnsupportedResponseError) Error() string {
	return "unsupported response"
}

// AmbiguousServerError reports a server-signaled failure for which no
// structured error payload could be produced, either because no error
// payload type is configured or because the response had no body. The raw
// body, when present, is preserved for diagnostics.
type AmbiguousServerError struct {
	StatusCode int
	Body       []byte
}

func (e *AmbiguousServerError) Error() string {
	return fmt.Sprintf("server error: status %d", e.StatusCode)
}

// ServerError reports a server failure successfully decoded into the
// configured error payload type.
type ServerError struct {
	StatusCode int
	Payload    error
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error: status %d: %v", e.StatusCode, e.Payload)
}

func (e *ServerError) Unwrap() error {
	return e.Payload
}

// CorruptedErrorBodyError reports a server failure whose body violated the
// configured error payload schema. Distinct from AmbiguousServerError so
// callers can tell "no error schema" apart from "error schema violated".
type CorruptedErrorBodyError struct {
	StatusCode int
	Err        error
}

func (e *CorruptedErrorBodyError) Error() string {
	return fmt.Sprintf("corrupted error body (status %d): %v", e.StatusCode, e.Err)
}

func (e *CorruptedErrorBodyError) Unwrap() error {
	return e.Err
}

// DecodeError reports a success response whose body could not be decoded
// into the target type.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode failed: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// KeyNotFoundError reports a response body whose top-level key did not match
// the descriptor's nesting key.
type KeyNotFoundError struct {
	Requested string
	Found     string
}

func (e *KeyNotFoundError) Error() string {
	if e.Found == "" {
		return fmt.Sprintf("key %q not found in response", e.Requested)
	}
	return fmt.Sprintf("key %q not found in response, found %q instead", e.Requested, e.Found)
}
