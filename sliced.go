package slicey

import (
	"encoding/json"
	"fmt"
)

// Sliced is a value of type T associated with a span in a source text it
// also carries, so the exact substring the span covers can be recovered with
// Slice. The source is held as a Go string, an immutable view whose backing
// buffer stays alive for as long as any Sliced references it, so a Sliced
// can never outlive its text.
//
// The span is expected to be an in-bounds range into the source whenever
// Slice is called; constructing a Sliced with a span for some other text is
// a programming error and faults at the point of use.
type Sliced[T any] struct {
	// Inner is the wrapped value. It is exported so a Sliced can stand in
	// for the value it carries wherever only the value is needed.
	Inner T

	span   Span
	source string
}

// NewSliced wraps inner with the span in source where it was recognized. No
// validation is performed on the span.
func NewSliced[T any](inner T, span Span, source string) Sliced[T] {
	return Sliced[T]{Inner: inner, span: span, source: source}
}

// Span returns the span associated with the wrapped value.
func (s Sliced[T]) Span() Span {
	return s.span
}

// Source returns the whole source text associated with the wrapped value.
func (s Sliced[T]) Source() string {
	return s.source
}

// Slice returns the portion of the source text the span covers. An
// out-of-bounds or inverted span panics rather than truncating; spans are
// byte offsets, so a span that splits a UTF-8 sequence returns the raw
// bytes.
func (s Sliced[T]) Slice() string {
	return s.source[s.span.Start:s.span.End]
}

// Unwrap returns the wrapped value, discarding the span and source.
func (s Sliced[T]) Unwrap() T {
	return s.Inner
}

// Spanned drops the source text, producing a Spanned with the same wrapped
// value and span.
func (s Sliced[T]) Spanned() Spanned[T] {
	return Spanned[T]{Inner: s.Inner, span: s.span}
}

// String renders the wrapped value followed by its span. The source is
// deliberately not interpolated so String cannot fault on a bad span.
func (s Sliced[T]) String() string {
	return fmt.Sprintf("%v(%v)", s.Inner, s.span)
}

func (s Sliced[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Inner  T
		Span   Span
		Source string
	}{
		Inner:  s.Inner,
		Span:   s.span,
		Source: s.source,
	})
}

func (s *Sliced[T]) UnmarshalJSON(data []byte) error {
	type raw struct {
		Inner  T
		Span   Span
		Source string
	}
	var t raw

	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}

	s.Inner = t.Inner
	s.span = t.Span
	s.source = t.Source

	return nil
}

// EqualSliced reports whether two wrappers hold equal values over equal
// spans of equal source texts.
func EqualSliced[T comparable](a, b Sliced[T]) bool {
	return a.Inner == b.Inner && a.span == b.span && a.source == b.source
}

// EqualFuncSliced is like EqualSliced for wrapped types that are not
// comparable, using eq to compare the inner values.
func EqualFuncSliced[T any](a, b Sliced[T], eq func(T, T) bool) bool {
	return a.span == b.span && a.source == b.source && eq(a.Inner, b.Inner)
}

// CloneSliced deep-copies the wrapped value via its Clone method, keeping
// the span and source.
func CloneSliced[T Cloner[T]](s Sliced[T]) Sliced[T] {
	return Sliced[T]{Inner: s.Inner.Clone(), span: s.span, source: s.source}
}

// RefSliced returns a wrapper holding a pointer to s's wrapped value, with
// the same span and source. Mutations through the pointer are visible in
// the original.
func RefSliced[T any](s *Sliced[T]) Sliced[*T] {
	return Sliced[*T]{Inner: &s.Inner, span: s.span, source: s.source}
}

// CopiedSliced converts a wrapper holding a pointer into a wrapper holding a
// shallow copy of the pointee, keeping the span and source. The pointer must
// not be nil.
func CopiedSliced[T any](s Sliced[*T]) Sliced[T] {
	return Sliced[T]{Inner: *s.Inner, span: s.span, source: s.source}
}

// ClonedSliced is like CopiedSliced but deep-copies the pointee via its
// Clone method.
func ClonedSliced[T Cloner[T]](s Sliced[*T]) Sliced[T] {
	return Sliced[T]{Inner: (*s.Inner).Clone(), span: s.span, source: s.source}
}

// UnzipSliced lifts a wrapper holding an optional value, represented as a
// possibly-nil pointer, into an optional wrapper. A nil inner pointer yields
// the zero wrapper and false; otherwise the pointee is wrapped with the same
// span and source.
func UnzipSliced[T any](s Sliced[*T]) (Sliced[T], bool) {
	if s.Inner == nil {
		return Sliced[T]{}, false
	}
	return Sliced[T]{Inner: *s.Inner, span: s.span, source: s.source}, true
}

// WrapErrSliced associates a span and source with the outcome of a fallible
// operation. When err is nil the value is wrapped with the span and source;
// otherwise the returned error is a *SliceError carrying err, the span, and
// the source.
func WrapErrSliced[T any](v T, err error, span Span, source string) (Sliced[T], error) {
	if err != nil {
		return Sliced[T]{}, &SliceError{Err: err, Span: span, Source: source}
	}
	return NewSliced(v, span, source), nil
}
