package slicey

import "fmt"

// SpanError is an error annotated with the span where it occurred. It is
// produced by WrapErr and unwraps to the underlying error, so errors.Is and
// errors.As see through it.
type SpanError struct {
	Err  error
	Span Span
}

func (e *SpanError) Error() string {
	return fmt.Sprintf("%v at %v", e.Err, e.Span)
}

func (e *SpanError) Unwrap() error {
	return e.Err
}

// SliceError is an error annotated with the span where it occurred and the
// source text it occurred in. It is produced by WrapErrSliced. When the span
// is in bounds the message quotes the offending text.
type SliceError struct {
	Err    error
	Span   Span
	Source string
}

func (e *SliceError) Error() string {
	if e.Span.Start >= 0 && e.Span.Start <= e.Span.End && e.Span.End <= len(e.Source) {
		return fmt.Sprintf("%v at %v: %q", e.Err, e.Span, e.Source[e.Span.Start:e.Span.End])
	}
	return fmt.Sprintf("%v at %v", e.Err, e.Span)
}

func (e *SliceError) Unwrap() error {
	return e.Err
}
