// Package codec provides pluggable encoding and decoding of typed values
// to and from wire bytes. Every implementation declares the MIME content
// type it produces or consumes, which the request builder uses for the
// Content-Type and Accept headers.
//
// JSON is the default format; XML is a drop-in alternative satisfying the
// same two capabilities. SchemaDecoder wraps any JSON decoder with schema
// validation, and EncodeFormFile produces multipart/form-data bodies for
// uploads.
package codec

// Encoder turns a typed value into wire bytes.
type Encoder interface {
	// ContentType declares the MIME type of the encoded bytes.
	ContentType() string
	Encode(v any) ([]byte, error)
}

// Decoder turns wire bytes back into a typed value.
type Decoder interface {
	// ContentType declares the MIME type this decoder accepts.
	ContentType() string
	Decode(data []byte, v any) error
}

// Codec pairs an encoder and decoder for the same format.
type Codec interface {
	Encoder
	Decoder
}
