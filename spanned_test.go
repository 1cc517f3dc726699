package slicey

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// cloneList is a test type with reference semantics, so clone independence
// can be observed.
type cloneList struct {
	elems []string
}

func (c cloneList) Clone() cloneList {
	elems := make([]string, len(c.elems))
	copy(elems, c.elems)
	return cloneList{elems: elems}
}

func TestSpannedRoundTrip(t *testing.T) {
	tests := []struct {
		inner string
		span  Span
	}{
		{"ident", Span{Start: 0, End: 5}},
		{"", Span{}},
		{"x", Span{Start: 9, End: 10}},
	}

	for _, test := range tests {
		t.Run(test.inner, func(t *testing.T) {
			s := NewSpanned(test.inner, test.span)
			if got := s.Span(); got != test.span {
				t.Errorf("want span %v, got %v", test.span, got)
			}
			if got := s.Unwrap(); got != test.inner {
				t.Errorf("want inner %q, got %q", test.inner, got)
			}
		})
	}
}

func TestSpannedEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Spanned[int]
		want bool
	}{
		{"equal", NewSpanned(5, Span{0, 3}), NewSpanned(5, Span{0, 3}), true},
		{"different inner", NewSpanned(5, Span{0, 3}), NewSpanned(6, Span{0, 3}), false},
		{"different span", NewSpanned(5, Span{0, 3}), NewSpanned(5, Span{0, 4}), false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Equal(test.a, test.b); got != test.want {
				t.Errorf("want %t, got %t", test.want, got)
			}
		})
	}
}

func TestSpannedEqualFunc(t *testing.T) {
	eq := func(a, b cloneList) bool {
		return cmp.Equal(a.elems, b.elems)
	}
	a := NewSpanned(cloneList{elems: []string{"x"}}, Span{1, 2})
	b := NewSpanned(cloneList{elems: []string{"x"}}, Span{1, 2})
	c := NewSpanned(cloneList{elems: []string{"x"}}, Span{1, 3})
	if !EqualFunc(a, b, eq) {
		t.Errorf("equal wrappers reported unequal")
	}
	if EqualFunc(a, c, eq) {
		t.Errorf("wrappers with different spans reported equal")
	}
}

func TestUnzip(t *testing.T) {
	v := 7
	got, ok := Unzip(NewSpanned(&v, Span{1, 2}))
	if !ok {
		t.Fatalf("expected present value")
	}
	if !Equal(got, NewSpanned(7, Span{1, 2})) {
		t.Errorf("want %v, got %v", NewSpanned(7, Span{1, 2}), got)
	}

	got, ok = Unzip(NewSpanned[*int](nil, Span{1, 2}))
	if ok {
		t.Errorf("expected absent value, got %v", got)
	}
}

func TestWrapErr(t *testing.T) {
	s, err := WrapErr(5, nil, Span{0, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !Equal(s, NewSpanned(5, Span{0, 3})) {
		t.Errorf("want %v, got %v", NewSpanned(5, Span{0, 3}), s)
	}

	base := errors.New("bad")
	_, err = WrapErr(0, base, Span{2, 5})
	if err == nil {
		t.Fatalf("expected error")
	}
	var se *SpanError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SpanError, got %T", err)
	}
	if se.Span != (Span{2, 5}) {
		t.Errorf("want span %v, got %v", Span{2, 5}, se.Span)
	}
	if !errors.Is(err, base) {
		t.Errorf("expected error to unwrap to the original")
	}
	if diff := cmp.Diff("bad at 2..5", err.Error()); diff != "" {
		t.Errorf("error message (-want, +got)\n%s", diff)
	}
}

func TestCopied(t *testing.T) {
	v := 3
	got := Copied(NewSpanned(&v, Span{4, 5}))
	if !Equal(got, NewSpanned(3, Span{4, 5})) {
		t.Errorf("want %v, got %v", NewSpanned(3, Span{4, 5}), got)
	}
	v = 9
	if got.Inner != 3 {
		t.Errorf("copy should be independent of the original, got %d", got.Inner)
	}
}

func TestCloned(t *testing.T) {
	orig := cloneList{elems: []string{"a", "b"}}
	c := Cloned(NewSpanned(&orig, Span{0, 2}))
	orig.elems[0] = "z"
	if diff := cmp.Diff([]string{"a", "b"}, c.Inner.elems); diff != "" {
		t.Errorf("clone should be independent of the original (-want, +got)\n%s", diff)
	}
	if c.Span() != (Span{0, 2}) {
		t.Errorf("want span %v, got %v", Span{0, 2}, c.Span())
	}
}

func TestClone(t *testing.T) {
	s := NewSpanned(cloneList{elems: []string{"a"}}, Span{0, 1})
	c := Clone(s)
	c.Inner.elems[0] = "z"
	if diff := cmp.Diff([]string{"a"}, s.Inner.elems); diff != "" {
		t.Errorf("mutating the clone should not affect the original (-want, +got)\n%s", diff)
	}
}

func TestRef(t *testing.T) {
	s := NewSpanned(1, Span{0, 1})
	r := Ref(&s)
	if r.Span() != s.Span() {
		t.Errorf("want span %v, got %v", s.Span(), r.Span())
	}
	*r.Inner = 2
	if s.Inner != 2 {
		t.Errorf("mutation through Ref should be visible in the original, got %d", s.Inner)
	}
}

func TestWithSource(t *testing.T) {
	got := NewSpanned(1, Span{1, 4}).WithSource("hello")
	if !EqualSliced(got, NewSliced(1, Span{1, 4}, "hello")) {
		t.Errorf("want %v, got %v", NewSliced(1, Span{1, 4}, "hello"), got)
	}
}

func TestSpannedString(t *testing.T) {
	if got := NewSpanned(5, Span{0, 3}).String(); got != "5(0..3)" {
		t.Errorf("want %q, got %q", "5(0..3)", got)
	}
}

func TestSpannedJSON(t *testing.T) {
	s := NewSpanned("ident", Span{2, 7})
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"Inner":"ident","Span":{"Start":2,"End":7}}`
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Errorf("(-want, +got)\n%s", diff)
	}

	var got Spanned[string]
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !Equal(got, s) {
		t.Errorf("round trip: want %v, got %v", s, got)
	}
}
