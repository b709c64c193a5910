// Package request defines the declarative description of a single HTTP call
// and the builder that turns it into a transport-ready request.
package request

import (
	"net/http"

	"github.com/wesleyorama2/parry/dynamic"
)

// Method is an HTTP request method.
type Method string

const (
	GET    Method = http.MethodGet
	POST   Method = http.MethodPost
	PUT    Method = http.MethodPut
	DELETE Method = http.MethodDelete
)

// Locator addresses the target of a request, either as a path relative to a
// service's base URL or as a fully absolute URL.
type Locator struct {
	raw      string
	absolute bool
}

// Path returns a locator resolved against the service base URL.
func Path(p string) Locator {
	return Locator{raw: p}
}

// AbsoluteURL returns a locator that bypasses the service base URL.
func AbsoluteURL(u string) Locator {
	return Locator{raw: u, absolute: true}
}

// IsAbsolute reports whether the locator is a full URL.
func (l Locator) IsAbsolute() bool {
	return l.absolute
}

// String returns the raw path or URL.
func (l Locator) String() string {
	return l.raw
}

type bodyKind int

const (
	bodyNone bodyKind = iota
	bodyTyped
	bodyDynamic
)

// Body is the request payload variant: absent, an encodable typed value, or
// an untyped dynamic mapping.
type Body struct {
	kind  bodyKind
	typed any
	dyn   map[string]dynamic.Value
}

// NoBody returns the absent body variant.
func NoBody() Body {
	return Body{}
}

// BodyOf returns a typed body encoded with the service's configured encoder.
func BodyOf(v any) Body {
	return Body{kind: bodyTyped, typed: v}
}

// DynamicBody returns an untyped body serialized as a JSON object.
func DynamicBody(fields map[string]dynamic.Value) Body {
	return Body{kind: bodyDynamic, dyn: fields}
}

// IsPresent reports whether the request carries a payload.
func (b Body) IsPresent() bool {
	return b.kind != bodyNone
}

// Descriptor is an immutable, declarative description of one call. It can be
// dispatched any number of times; it is a description, not a live resource.
type Descriptor struct {
	method     Method
	locator    Locator
	params     map[string]dynamic.Value
	body       Body
	nestingKey string
}

// New returns a descriptor for the given method and locator.
func New(method Method, locator Locator) Descriptor {
	return Descriptor{method: method, locator: locator}
}

// Get returns a GET descriptor for a relative path.
func Get(path string) Descriptor {
	return New(GET, Path(path))
}

// Post returns a POST descriptor carrying body.
func Post(path string, body Body) Descriptor {
	return New(POST, Path(path)).WithBody(body)
}

// Put returns a PUT descriptor carrying body.
func Put(path string, body Body) Descriptor {
	return New(PUT, Path(path)).WithBody(body)
}

// Delete returns a DELETE descriptor for a relative path.
func Delete(path string) Descriptor {
	return New(DELETE, Path(path))
}

// WithParam returns a copy with one query parameter added.
func (d Descriptor) WithParam(key string, value dynamic.Value) Descriptor {
	params := make(map[string]dynamic.Value, len(d.params)+1)
	for k, v := range d.params {
		params[k] = v
	}
	params[key] = value
	d.params = params
	return d
}

// WithParams returns a copy with every entry of params added.
func (d Descriptor) WithParams(params map[string]dynamic.Value) Descriptor {
	out := d
	for k, v := range params {
		out = out.WithParam(k, v)
	}
	return out
}

// WithBody returns a copy carrying the given body variant.
func (d Descriptor) WithBody(body Body) Descriptor {
	d.body = body
	return d
}

// WithNestingKey returns a copy expecting the response payload nested under
// the named top-level field.
func (d Descriptor) WithNestingKey(key string) Descriptor {
	d.nestingKey = key
	return d
}

// Method returns the HTTP method.
func (d Descriptor) Method() Method {
	return d.method
}

// Locator returns the resource locator.
func (d Descriptor) Locator() Locator {
	return d.locator
}

// Params returns a copy of the query parameters.
func (d Descriptor) Params() map[string]dynamic.Value {
	out := make(map[string]dynamic.Value, len(d.params))
	for k, v := range d.params {
		out[k] = v
	}
	return out
}

// Body returns the body variant.
func (d Descriptor) Body() Body {
	return d.body
}

// NestingKey returns the expected top-level response key, or "".
func (d Descriptor) NestingKey() string {
	return d.nestingKey
}
