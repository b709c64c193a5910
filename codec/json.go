package codec

import "encoding/json"

// JSON encodes and decodes values as application/json.
type JSON struct{}

// ContentType returns the JSON MIME type.
func (JSON) ContentType() string {
	return "application/json"
}

// Encode marshals v to JSON bytes.
func (JSON) Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Decode unmarshals JSON bytes into v.
func (JSON) Decode(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
