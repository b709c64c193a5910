// Package header provides a typed vocabulary for the HTTP header fields the
// library manipulates, so callers never pass raw header strings around.
package header

import "net/http"

// Name is a typed HTTP header field name.
type Name string

// The closed set of header names used by the library.
const (
	Accept             Name = "Accept"
	Authorization      Name = "Authorization"
	CacheControl       Name = "Cache-Control"
	ContentDisposition Name = "Content-Disposition"
	ContentLength      Name = "Content-Length"
	ContentType        Name = "Content-Type"
	ETag               Name = "ETag"
	IfNoneMatch        Name = "If-None-Match"
	UserAgent          Name = "User-Agent"
)

// Header is a typed header mapping with single-valued fields.
type Header map[Name]string

// Set stores a header value, replacing any previous value.
func (h Header) Set(name Name, value string) {
	h[name] = value
}

// Get returns the value for a header name, or "" if absent.
func (h Header) Get(name Name) string {
	return h[name]
}

// Del removes a header.
func (h Header) Del(name Name) {
	delete(h, name)
}

// Clone returns an independent copy of the header map.
func (h Header) Clone() Header {
	out := make(Header, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}

// Apply copies every field into a net/http header, normalizing casing
// through the standard canonical form.
func (h Header) Apply(dst http.Header) {
	for k, v := range h {
		dst.Set(string(k), v)
	}
}
