package response

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/wesleyorama2/parry/codec"
)

// Wrapped pairs a decoded payload with the top-level key it was found
// under. MatchedKey always equals the requested nesting key; a mismatch is
// an error, never a silent pass-through.
type Wrapped[T any] struct {
	MatchedKey string
	Value      T
}

// unwrap locates the requested top-level key in body and decodes the value
// beneath it.
func unwrap[T any](body []byte, key string, dec codec.Decoder) (Wrapped[T], error) {
	var zero Wrapped[T]

	parsed := gjson.ParseBytes(body)
	if !parsed.IsObject() {
		return zero, &DecodeError{Err: fmt.Errorf("expected a JSON object keyed under %q", key)}
	}

	var found string
	var inner gjson.Result
	matched := false
	parsed.ForEach(func(k, v gjson.Result) bool {
		if found == "" {
			found = k.String()
		}
		if k.String() == key {
			inner = v
			matched = true
			return false
		}
		return true
	})

	if !matched {
		return zero, &KeyNotFoundError{Requested: key, Found: found}
	}

	var v T
	if err := dec.Decode([]byte(inner.Raw), &v); err != nil {
		return zero, &DecodeError{Err: err}
	}
	return Wrapped[T]{MatchedKey: key, Value: v}, nil
}
