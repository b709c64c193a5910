package request

import "fmt"

// MalformedURLError reports a locator or base URL that could not be parsed
// into a dispatchable request URL. Build-time: the request is never sent.
type MalformedURLError struct {
	Raw string
	Err error
}

func (e *MalformedURLError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed url %q: %v", e.Raw, e.Err)
	}
	return fmt.Sprintf("malformed url %q", e.Raw)
}

func (e *MalformedURLError) Unwrap() error {
	return e.Err
}

// UnserializableBodyError reports a request body that the configured encoder
// rejected. It carries the offending value and the original encoding error.
// Build-time: the request is never sent.
type UnserializableBodyError struct {
	Value any
	Err   error
}

func (e *UnserializableBodyError) Error() string {
	return fmt.Sprintf("unserializable request body (%T): %v", e.Value, e.Err)
}

func (e *UnserializableBodyError) Unwrap() error {
	return e.Err
}
