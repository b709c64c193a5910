package response

import "github.com/wesleyorama2/parry/codec"

// Options carry the service-level configuration the classifier needs.
type Options struct {
	// Decoder decodes success and server-error bodies.
	Decoder codec.Decoder
	// ErrorPayload, when non-nil, returns a fresh value to decode server
	// error bodies into. The returned value doubles as the surfaced error.
	ErrorPayload func() error
	// NestingKey names the top-level field the payload is expected under.
	NestingKey string
}

// Reject maps transport failures, unclassifiable responses, and
// server-reported errors to their terminal error. ok is false when the
// exchange is a success to be decoded by the caller.
//
// Decision order: a transport-level error always wins; a missing status
// code is empty or unsupported depending on whether any response data
// arrived; an error status produces a structured, corrupted, or ambiguous
// server error.
func Reject(ex Exchange, opts Options) (error, bool) {
	if ex.Err != nil {
		return &TransportError{StatusCode: ex.StatusCode, Err: ex.Err}, true
	}

	if !ex.HasResponse() {
		if !ex.HasBody() && ex.Header == nil {
			return &EmptyResponseError{}, true
		}
		return &UnsupportedResponseError{}, true
	}

	if ex.IsErrorStatus() {
		if opts.ErrorPayload != nil && ex.HasBody() {
			payload := opts.ErrorPayload()
			if err := opts.Decoder.Decode(ex.Body, payload); err != nil {
				return &CorruptedErrorBodyError{StatusCode: ex.StatusCode, Err: err}, true
			}
			return &ServerError{StatusCode: ex.StatusCode, Payload: payload}, true
		}
		return &AmbiguousServerError{StatusCode: ex.StatusCode, Body: ex.Body}, true
	}

	return nil, false
}

// Classify reduces an exchange to an outcome for the target type T. Every
// combination of (body, status, transport error) maps to exactly one
// outcome. When opts.NestingKey is set the body is unwrapped first and the
// key invariant is enforced; the matched wrapper is discarded.
func Classify[T any](ex Exchange, opts Options) Outcome[T] {
	if err, rejected := Reject(ex, opts); rejected {
		return Failure[T](err)
	}
	if !ex.HasBody() {
		return Empty[T]()
	}

	if opts.NestingKey != "" {
		w, err := unwrap[T](ex.Body, opts.NestingKey, opts.Decoder)
		if err != nil {
			return Failure[T](err)
		}
		return ValueOf(w.Value)
	}

	var v T
	if err := opts.Decoder.Decode(ex.Body, &v); err != nil {
		return Failure[T](&DecodeError{Err: err})
	}
	return ValueOf(v)
}

// ClassifyKeyed is Classify for callers that want the wrapper itself, with
// the key that actually matched.
func ClassifyKeyed[T any](ex Exchange, opts Options) Outcome[Wrapped[T]] {
	if err, rejected := Reject(ex, opts); rejected {
		return Failure[Wrapped[T]](err)
	}
	if !ex.HasBody() {
		return Empty[Wrapped[T]]()
	}
	w, err := unwrap[T](ex.Body, opts.NestingKey, opts.Decoder)
	if err != nil {
		return Failure[Wrapped[T]](err)
	}
	return ValueOf(w)
}

// ClassifyEmpty reduces an exchange for calls that expect no payload. A
// success body, if any, is ignored rather than decoded.
func ClassifyEmpty(ex Exchange, opts Options) Outcome[struct{}] {
	if err, rejected := Reject(ex, opts); rejected {
		return Failure[struct{}](err)
	}
	return Empty[struct{}]()
}
