package request

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/wesleyorama2/parry/codec"
	"github.com/wesleyorama2/parry/dynamic"
	"github.com/wesleyorama2/parry/header"
)

// Allowed reports whether a byte may appear unescaped in a query component.
type Allowed func(c byte) bool

// DefaultAllowed permits the RFC 3986 unreserved characters.
func DefaultAllowed(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '-' || c == '.' || c == '_' || c == '~':
		return true
	}
	return false
}

// Build turns a descriptor into a transport-ready request resolved against
// baseURL, with query parameters percent-encoded against DefaultAllowed.
// It performs no I/O.
func Build(d Descriptor, baseURL string, enc codec.Encoder, dec codec.Decoder) (*http.Request, error) {
	return BuildWithAllowed(d, baseURL, enc, dec, DefaultAllowed)
}

// BuildWithAllowed is Build with a caller-supplied allowed character set for
// query encoding.
func BuildWithAllowed(d Descriptor, baseURL string, enc codec.Encoder, dec codec.Decoder, allowed Allowed) (*http.Request, error) {
	target, err := resolve(d.Locator(), baseURL)
	if err != nil {
		return nil, err
	}

	if query := encodeParams(d.params, allowed); query != "" {
		if target.RawQuery != "" {
			target.RawQuery += "&" + query
		} else {
			target.RawQuery = query
		}
	}

	body, err := serializeBody(d.Body(), enc)
	if err != nil {
		return nil, err
	}

	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	var req *http.Request
	if reader != nil {
		req, err = http.NewRequest(string(d.Method()), target.String(), reader)
	} else {
		req, err = http.NewRequest(string(d.Method()), target.String(), nil)
	}
	if err != nil {
		return nil, &MalformedURLError{Raw: target.String(), Err: err}
	}

	req.Header.Set(string(header.ContentType), enc.ContentType())
	req.Header.Set(string(header.Accept), dec.ContentType())
	return req, nil
}

// resolve parses the locator, joining relative paths onto baseURL.
func resolve(l Locator, baseURL string) (*url.URL, error) {
	if l.IsAbsolute() {
		u, err := url.Parse(l.String())
		if err != nil {
			return nil, &MalformedURLError{Raw: l.String(), Err: err}
		}
		return u, nil
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, &MalformedURLError{Raw: baseURL, Err: err}
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, &MalformedURLError{Raw: baseURL}
	}

	// Parse the locator so a query or fragment lands in its own URL
	// component rather than being escaped into the path.
	rel, err := url.Parse(l.String())
	if err != nil {
		return nil, &MalformedURLError{Raw: l.String(), Err: err}
	}
	if u.Path == "" {
		u.Path = rel.Path
	} else {
		u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(rel.Path, "/")
	}
	if rel.RawQuery != "" {
		u.RawQuery = rel.RawQuery
	}
	if rel.Fragment != "" {
		u.Fragment = rel.Fragment
	}
	return u, nil
}

// encodeParams renders params as a percent-encoded query string. An empty
// parameter set yields "" so the URL is left untouched.
func encodeParams(params map[string]dynamic.Value, allowed Allowed) string {
	if len(params) == 0 {
		return ""
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(escape(k, allowed))
		sb.WriteByte('=')
		sb.WriteString(escape(params[k].Text(), allowed))
	}
	return sb.String()
}

const upperhex = "0123456789ABCDEF"

// escape percent-encodes every byte of s not in the allowed set.
func escape(s string, allowed Allowed) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if allowed(c) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(upperhex[c>>4])
		sb.WriteByte(upperhex[c&0xf])
	}
	return sb.String()
}

// serializeBody produces the payload bytes for a body variant: nil for no
// body, the configured encoder for typed values, and a JSON object
// rendering for dynamic maps.
func serializeBody(b Body, enc codec.Encoder) ([]byte, error) {
	switch b.kind {
	case bodyNone:
		return nil, nil
	case bodyTyped:
		data, err := enc.Encode(b.typed)
		if err != nil {
			return nil, &UnserializableBodyError{Value: b.typed, Err: err}
		}
		return data, nil
	case bodyDynamic:
		fields := make(map[string]any, len(b.dyn))
		for k, v := range b.dyn {
			fields[k] = v.Interface()
		}
		data, err := json.Marshal(fields)
		if err != nil {
			return nil, &UnserializableBodyError{Value: b.dyn, Err: err}
		}
		return data, nil
	}
	return nil, nil
}
