// Package slicey provides two small wrapper types for associating data with
// locations in a source text: Spanned pairs a value with a byte range, and
// Sliced additionally keeps the source text itself so the matched substring
// can be recovered on demand. They are intended as carriers for whatever a
// lexer or parser produces; the package does no lexing or parsing of its own.
//
// The sliceygen command (cmd/sliceygen) generates named aliases like
// SpannedToken or SlicedToken for types marked with //slicey:spanned and
// //slicey:sliced directive comments.
package slicey

import "fmt"

// Span is a half-open range [Start, End) of byte offsets into some source
// text. Nothing here enforces Start <= End or that the range lies within any
// particular text; the lexer or parser constructing a span is responsible for
// its validity.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes the span covers.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsZero reports whether the span is the zero value.
func (s Span) IsZero() bool {
	return s.Start == 0 && s.End == 0
}

// String renders the span in start..end form, e.g. "2..5". The exact format
// is for debugging only and not part of the API contract.
func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Cloner is implemented by types that can produce a deep copy of themselves.
// The Clone and Cloned functions require it of the wrapped type, so wrapping
// a type without a Clone method only rules out those two functions, nothing
// else.
type Cloner[T any] interface {
	Clone() T
}
