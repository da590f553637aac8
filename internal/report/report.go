// Package report aggregates per-item outcomes so a failing item never aborts
// its siblings.
package report

import "fmt"

// Result is the outcome of processing one keyed item.
type Result[T any] struct {
	Key   string
	Value T
	Err   error
}

// OK reports whether the item succeeded.
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// Report is an ordered collection of results.
type Report[T any] struct {
	Results []Result[T]
}

// Succeed records a successful item.
func (r *Report[T]) Succeed(key string, v T) {
	r.Results = append(r.Results, Result[T]{Key: key, Value: v})
}

// Fail records a failed item.
func (r *Report[T]) Fail(key string, err error) {
	r.Results = append(r.Results, Result[T]{Key: key, Err: err})
}

// Do runs fn for key and records its outcome. A panic inside fn is recorded
// as a failure of that item.
func (r *Report[T]) Do(key string, fn func() (T, error)) (res Result[T]) {
	defer func() {
		if p := recover(); p != nil {
			res = Result[T]{Key: key, Err: fmt.Errorf("panic: %v", p)}
		}
		r.Results = append(r.Results, res)
	}()
	v, err := fn()
	return Result[T]{Key: key, Value: v, Err: err}
}

// Values returns the values of successful items in order.
func (r Report[T]) Values() []T {
	out := make([]T, 0, len(r.Results))
	for _, res := range r.Results {
		if res.OK() {
			out = append(out, res.Value)
		}
	}
	return out
}

// Failures returns the failed items in order.
func (r Report[T]) Failures() []Result[T] {
	var out []Result[T]
	for _, res := range r.Results {
		if !res.OK() {
			out = append(out, res)
		}
	}
	return out
}
