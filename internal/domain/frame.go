package domain

import (
	"slices"
	"strings"
)

// Hypothesis is a single label of a frame of discernment.
type Hypothesis string

const (
	// KeySeparator joins hypotheses in a focal set's canonical key.
	KeySeparator = ", "

	// UniversalKey is the reserved dictionary key for the universal mass.
	UniversalKey = "Omega"
)

// FocalSet is an immutable set of hypotheses. Members are kept sorted and
// unique, so two sets built from the same labels in any order are Equal and
// share the same Key.
type FocalSet struct {
	members []Hypothesis
}

func NewFocalSet(hs ...Hypothesis) FocalSet {
	members := slices.Clone(hs)
	slices.Sort(members)
	return FocalSet{members: slices.Compact(members)}
}

// Members returns a copy of the sorted members.
func (s FocalSet) Members() []Hypothesis {
	return slices.Clone(s.members)
}

func (s FocalSet) Len() int {
	return len(s.members)
}

func (s FocalSet) IsEmpty() bool {
	return len(s.members) == 0
}

func (s FocalSet) Contains(h Hypothesis) bool {
	_, found := slices.BinarySearch(s.members, h)
	return found
}

// SubsetOf reports whether every member of s is in o. The empty set is a
// subset of everything.
func (s FocalSet) SubsetOf(o FocalSet) bool {
	if len(s.members) > len(o.members) {
		return false
	}
	for _, h := range s.members {
		if !o.Contains(h) {
			return false
		}
	}
	return true
}

func (s FocalSet) Equal(o FocalSet) bool {
	return slices.Equal(s.members, o.members)
}

func (s FocalSet) Intersect(o FocalSet) FocalSet {
	out := make([]Hypothesis, 0, min(len(s.members), len(o.members)))
	for _, h := range s.members {
		if o.Contains(h) {
			out = append(out, h)
		}
	}
	return FocalSet{members: out}
}

func (s FocalSet) Intersects(o FocalSet) bool {
	for _, h := range s.members {
		if o.Contains(h) {
			return true
		}
	}
	return false
}

// Key is the canonical string form of the set: members joined by
// KeySeparator. The empty set has the empty key.
func (s FocalSet) Key() string {
	parts := make([]string, len(s.members))
	for i, h := range s.members {
		parts[i] = string(h)
	}
	return strings.Join(parts, KeySeparator)
}

func (s FocalSet) String() string {
	return "{" + s.Key() + "}"
}

// Frame is the frame of discernment (Omega): the fixed, non-empty set of
// mutually exclusive hypotheses of one reasoning session.
//
// Frames must come from NewFrame; the zero value is empty and is rejected by
// NewMassAssignment.
type Frame struct {
	set FocalSet
}

// NewFrame builds a frame from the given labels. Labels must be non-empty and
// must not contain KeySeparator or equal UniversalKey, otherwise dictionary
// keys produced by MassAssignment.ToMap would be ambiguous.
func NewFrame(hs ...Hypothesis) (Frame, error) {
	if len(hs) == 0 {
		return Frame{}, ErrEmptyFrame
	}
	for _, h := range hs {
		if err := ValidateHypothesis(h); err != nil {
			return Frame{}, err
		}
	}
	return Frame{set: NewFocalSet(hs...)}, nil
}

// ValidateHypothesis checks that h can be used as a frame label.
func ValidateHypothesis(h Hypothesis) error {
	switch {
	case h == "":
		return ErrInvalidHypothesis
	case h == UniversalKey:
		return ErrInvalidHypothesis
	case strings.Contains(string(h), KeySeparator):
		return ErrInvalidHypothesis
	}
	return nil
}

// Set returns Omega as a focal set.
func (f Frame) Set() FocalSet {
	return f.set
}

func (f Frame) Hypotheses() []Hypothesis {
	return f.set.Members()
}

func (f Frame) Size() int {
	return f.set.Len()
}

func (f Frame) Contains(h Hypothesis) bool {
	return f.set.Contains(h)
}

func (f Frame) Equal(o Frame) bool {
	return f.set.Equal(o.set)
}

func (f Frame) String() string {
	return f.set.String()
}
