package service

import (
	"context"

	"github.com/wesleyorama2/parry/dynamic"
	"github.com/wesleyorama2/parry/request"
	"github.com/wesleyorama2/parry/response"
)

// Do dispatches a descriptor and decodes the response body as T. When the
// descriptor carries a nesting key, the payload is unwrapped from under it
// and the key invariant is enforced.
func Do[T any](ctx context.Context, s *Service, d request.Descriptor) *Call[T] {
	return run(ctx, s, d, response.Classify[T])
}

// DoKeyed dispatches a descriptor with a nesting key and yields the keyed
// wrapper, exposing which top-level key matched.
func DoKeyed[T any](ctx context.Context, s *Service, d request.Descriptor) *Call[response.Wrapped[T]] {
	return run(ctx, s, d, response.ClassifyKeyed[T])
}

// DoDynamic dispatches a descriptor and decodes the response as a dynamic
// value, for payloads with no compile-time shape.
func DoDynamic(ctx context.Context, s *Service, d request.Descriptor) *Call[dynamic.Value] {
	return Do[dynamic.Value](ctx, s, d)
}

// DoEmpty dispatches a descriptor expecting no payload; any success body is
// ignored.
func DoEmpty(ctx context.Context, s *Service, d request.Descriptor) *Call[struct{}] {
	return run(ctx, s, d, response.ClassifyEmpty)
}

// Get fetches path and decodes the response as T.
func Get[T any](ctx context.Context, s *Service, path string) *Call[T] {
	return Do[T](ctx, s, request.Get(path))
}

// Post sends body to path and decodes the response as T.
func Post[T any](ctx context.Context, s *Service, path string, body any) *Call[T] {
	return Do[T](ctx, s, request.Post(path, request.BodyOf(body)))
}

// Put sends body to path and decodes the response as T.
func Put[T any](ctx context.Context, s *Service, path string, body any) *Call[T] {
	return Do[T](ctx, s, request.Put(path, request.BodyOf(body)))
}

// Delete issues a DELETE expecting no payload.
func Delete(ctx context.Context, s *Service, path string) *Call[struct{}] {
	return DoEmpty(ctx, s, request.Delete(path))
}
