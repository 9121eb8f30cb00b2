package domain

import (
	"errors"
	"testing"
)

func TestNewFocalSetCanonical(t *testing.T) {
	a := NewFocalSet("C", "A", "B", "A")
	b := NewFocalSet("B", "C", "A")

	if !a.Equal(b) {
		t.Fatalf("expected %v to equal %v", a, b)
	}
	if a.Key() != "A, B, C" {
		t.Errorf("Key() = %q, want %q", a.Key(), "A, B, C")
	}
	if a.Len() != 3 {
		t.Errorf("Len() = %d, want 3", a.Len())
	}
}

func TestFocalSetOperations(t *testing.T) {
	ab := NewFocalSet("A", "B")
	bc := NewFocalSet("B", "C")
	c := NewFocalSet("C")
	empty := NewFocalSet()

	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{"empty is subset of anything", empty.SubsetOf(c), true},
		{"set is subset of itself", ab.SubsetOf(ab), true},
		{"AB not subset of BC", ab.SubsetOf(bc), false},
		{"C subset of BC", c.SubsetOf(bc), true},
		{"AB intersects BC", ab.Intersects(bc), true},
		{"AB disjoint from C", ab.Intersects(c), false},
		{"empty intersects nothing", empty.Intersects(ab), false},
		{"contains member", ab.Contains("A"), true},
		{"does not contain non-member", ab.Contains("C"), false},
		{"empty is empty", empty.IsEmpty(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}

	if got := ab.Intersect(bc); !got.Equal(NewFocalSet("B")) {
		t.Errorf("AB ∩ BC = %v, want {B}", got)
	}
	if got := ab.Intersect(c); !got.IsEmpty() {
		t.Errorf("AB ∩ C = %v, want empty", got)
	}
}

func TestFocalSetMembersIsCopy(t *testing.T) {
	s := NewFocalSet("A", "B")
	m := s.Members()
	m[0] = "Z"

	if !s.Contains("A") {
		t.Error("mutating Members() result changed the set")
	}
}

func TestParseFocalSetRoundTrip(t *testing.T) {
	for _, s := range []FocalSet{
		NewFocalSet(),
		NewFocalSet("Iris-setosa"),
		NewFocalSet("Iris-virginica", "Iris-setosa"),
	} {
		if got := ParseFocalSet(s.Key()); !got.Equal(s) {
			t.Errorf("ParseFocalSet(%q) = %v, want %v", s.Key(), got, s)
		}
	}
}

func TestNewFrame(t *testing.T) {
	tests := []struct {
		name    string
		labels  []Hypothesis
		wantErr error
	}{
		{"valid", []Hypothesis{"A", "B", "C"}, nil},
		{"no labels", nil, ErrEmptyFrame},
		{"empty label", []Hypothesis{"A", ""}, ErrInvalidHypothesis},
		{"reserved label", []Hypothesis{"A", UniversalKey}, ErrInvalidHypothesis},
		{"separator in label", []Hypothesis{"A, B"}, ErrInvalidHypothesis},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFrame(tt.labels...)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewFrame() error = %v, want %v", err, tt.wantErr)
			}
			if err == nil && f.Size() != len(tt.labels) {
				t.Errorf("Size() = %d, want %d", f.Size(), len(tt.labels))
			}
		})
	}
}

func TestFrameEqual(t *testing.T) {
	a, _ := NewFrame("A", "B")
	b, _ := NewFrame("B", "A")
	c, _ := NewFrame("A", "C")

	if !a.Equal(b) {
		t.Error("frames with the same labels should be equal")
	}
	if a.Equal(c) {
		t.Error("frames with different labels should not be equal")
	}
}
