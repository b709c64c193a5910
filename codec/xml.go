package codec

import "encoding/xml"

// XML encodes and decodes values as application/xml. It is interchangeable
// with JSON anywhere a Codec is accepted.
type XML struct{}

// ContentType returns the XML MIME type.
func (XML) ContentType() string {
	return "application/xml"
}

// Encode marshals v to XML bytes.
func (XML) Encode(v any) ([]byte, error) {
	return xml.Marshal(v)
}

// Decode unmarshals XML bytes into v.
func (XML) Decode(data []byte, v any) error {
	return xml.Unmarshal(data, v)
}
