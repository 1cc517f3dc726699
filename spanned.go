package slicey

import (
	"encoding/json"
	"fmt"
)

// Spanned is a value of type T associated with a span in some source text.
// It carries no reference to the text itself; see Sliced for that.
type Spanned[T any] struct {
	// Inner is the wrapped value. It is exported so a Spanned can stand in
	// for the value it carries wherever only the value is needed.
	Inner T

	span Span
}

// NewSpanned wraps inner with the span in the source text where it was
// recognized. No validation is performed on the span.
func NewSpanned[T any](inner T, span Span) Spanned[T] {
	return Spanned[T]{Inner: inner, span: span}
}

// Span returns the span associated with the wrapped value.
func (s Spanned[T]) Span() Span {
	return s.span
}

// Unwrap returns the wrapped value, discarding the span.
func (s Spanned[T]) Unwrap() T {
	return s.Inner
}

// WithSource attaches a source text, producing a Sliced with the same
// wrapped value and span.
func (s Spanned[T]) WithSource(source string) Sliced[T] {
	return Sliced[T]{Inner: s.Inner, span: s.span, source: source}
}

// String renders the wrapped value followed by its span, e.g. `ident(2..7)`.
// The format is for debugging only.
func (s Spanned[T]) String() string {
	return fmt.Sprintf("%v(%v)", s.Inner, s.span)
}

func (s Spanned[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Inner T
		Span  Span
	}{
		Inner: s.Inner,
		Span:  s.span,
	})
}

func (s *Spanned[T]) UnmarshalJSON(data []byte) error {
	type raw struct {
		Inner T
		Span  Span
	}
	var t raw

	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}

	s.Inner = t.Inner
	s.span = t.Span

	return nil
}

// Equal reports whether two wrappers hold equal values over equal spans.
func Equal[T comparable](a, b Spanned[T]) bool {
	return a.Inner == b.Inner && a.span == b.span
}

// EqualFunc is like Equal for wrapped types that are not comparable, using
// eq to compare the inner values.
func EqualFunc[T any](a, b Spanned[T], eq func(T, T) bool) bool {
	return a.span == b.span && eq(a.Inner, b.Inner)
}

// Clone deep-copies the wrapped value via its Clone method, keeping the
// span. Wrappers around plain value types can be copied by assignment and
// don't need this.
func Clone[T Cloner[T]](s Spanned[T]) Spanned[T] {
	return Spanned[T]{Inner: s.Inner.Clone(), span: s.span}
}

// Ref returns a wrapper holding a pointer to s's wrapped value, with the
// same span. Mutations through the pointer are visible in the original. A
// free function rather than a method so the result type can differ from the
// receiver's.
func Ref[T any](s *Spanned[T]) Spanned[*T] {
	return Spanned[*T]{Inner: &s.Inner, span: s.span}
}

// Copied converts a wrapper holding a pointer into a wrapper holding a
// shallow copy of the pointee, keeping the span. The pointer must not be
// nil.
func Copied[T any](s Spanned[*T]) Spanned[T] {
	return Spanned[T]{Inner: *s.Inner, span: s.span}
}

// Cloned is like Copied but deep-copies the pointee via its Clone method.
func Cloned[T Cloner[T]](s Spanned[*T]) Spanned[T] {
	return Spanned[T]{Inner: (*s.Inner).Clone(), span: s.span}
}

// Unzip lifts a wrapper holding an optional value, represented as a
// possibly-nil pointer, into an optional wrapper. A nil inner pointer yields
// the zero wrapper and false; otherwise the pointee is wrapped with the same
// span.
func Unzip[T any](s Spanned[*T]) (Spanned[T], bool) {
	if s.Inner == nil {
		return Spanned[T]{}, false
	}
	return Spanned[T]{Inner: *s.Inner, span: s.span}, true
}

// WrapErr associates a span with the outcome of a fallible operation. When
// err is nil the value is wrapped with the span; otherwise the returned
// error is a *SpanError carrying err and the same span.
func WrapErr[T any](v T, err error, span Span) (Spanned[T], error) {
	if err != nil {
		return Spanned[T]{}, &SpanError{Err: err, Span: span}
	}
	return NewSpanned(v, span), nil
}
