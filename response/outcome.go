package response

// Outcome is the classified result of an exchange. Exactly one of the three
// states holds: a value, an empty completion, or an error.
type Outcome[T any] struct {
	value T
	ok    bool
	err   error
}

// ValueOf returns a successful outcome carrying v.
func ValueOf[T any](v T) Outcome[T] {
	return Outcome[T]{value: v, ok: true}
}

// Empty returns the empty completion outcome.
func Empty[T any]() Outcome[T] {
	return Outcome[T]{}
}

// Failure returns an error outcome.
func Failure[T any](err error) Outcome[T] {
	return Outcome[T]{err: err}
}

// Value returns the decoded value; ok is false for empty or error outcomes.
func (o Outcome[T]) Value() (T, bool) {
	return o.value, o.ok
}

// IsEmpty reports an empty completion.
func (o Outcome[T]) IsEmpty() bool {
	return !o.ok && o.err == nil
}

// Err returns the terminal error, or nil.
func (o Outcome[T]) Err() error {
	return o.err
}
