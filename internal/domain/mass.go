package domain

import (
	"fmt"
	"math"
	"strings"
)

// conflictTolerance is how close to 1 the conflict mass may get before
// renormalization is refused.
const conflictTolerance = 1e-12

// Entry is one (focal set, mass) pair of a MassAssignment. Universal is true
// iff Focal equals the frame.
type Entry struct {
	Focal     FocalSet
	Mass      float64
	Universal bool
}

// MassAssignment distributes belief mass over subsets of a frame. Entries keep
// insertion order and each focal set appears at most once. A new assignment
// holds only the universal entry with mass 1 (total ignorance).
//
// A MassAssignment is not safe for concurrent mutation.
type MassAssignment struct {
	frame   Frame
	entries []Entry
	index   map[string]int
}

// NewMassAssignment panics on a frame not built by NewFrame: with an empty
// frame the universal entry would share the empty set's key.
func NewMassAssignment(frame Frame) *MassAssignment {
	if frame.Size() == 0 {
		panic(ErrEmptyFrame)
	}
	m := &MassAssignment{
		frame: frame,
		index: make(map[string]int),
	}
	m.SetUniversalMass(1)
	return m
}

func (m *MassAssignment) Frame() Frame {
	return m.frame
}

// SetMass stores p for focal, overwriting any existing entry with the same
// focal set. Focal sets outside the frame are ignored and reported by a false
// return.
func (m *MassAssignment) SetMass(focal FocalSet, p float64) bool {
	if !focal.SubsetOf(m.frame.set) {
		return false
	}
	key := focal.Key()
	if i, ok := m.index[key]; ok {
		m.entries[i].Mass = p
		return true
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, Entry{
		Focal:     focal,
		Mass:      p,
		Universal: focal.Equal(m.frame.set),
	})
	return true
}

// AddMass adds p to the mass already held by focal (zero if absent).
func (m *MassAssignment) AddMass(focal FocalSet, p float64) bool {
	return m.SetMass(focal, m.Mass(focal)+p)
}

// Mass returns the mass stored for exactly focal, or 0 if there is no entry.
func (m *MassAssignment) Mass(focal FocalSet) float64 {
	if i, ok := m.index[focal.Key()]; ok {
		return m.entries[i].Mass
	}
	return 0
}

func (m *MassAssignment) SetUniversalMass(p float64) {
	m.SetMass(m.frame.set, p)
}

func (m *MassAssignment) UniversalMass() float64 {
	return m.Mass(m.frame.set)
}

// Entries returns a snapshot of the entries in insertion order.
func (m *MassAssignment) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

func (m *MassAssignment) Len() int {
	return len(m.entries)
}

// Total is the sum of all masses, universal entry included.
func (m *MassAssignment) Total() float64 {
	var total float64
	for _, e := range m.entries {
		total += e.Mass
	}
	return total
}

func (m *MassAssignment) Clone() *MassAssignment {
	c := &MassAssignment{
		frame:   m.frame,
		entries: m.Entries(),
		index:   make(map[string]int, len(m.index)),
	}
	for k, v := range m.index {
		c.index[k] = v
	}
	return c
}

// CorrectConflict removes the empty-set entry, if any, and divides every
// remaining mass (universal included) by 1 - conflict. It returns the removed
// conflict mass. When the conflict is total the assignment is left unchanged
// and ErrTotalConflict is returned.
func (m *MassAssignment) CorrectConflict() (float64, error) {
	empty := FocalSet{}.Key()
	i, ok := m.index[empty]
	if !ok {
		return 0, nil
	}

	conflict := m.entries[i].Mass
	norm := 1 - conflict
	if math.Abs(norm) < conflictTolerance {
		return conflict, ErrTotalConflict
	}

	m.entries = append(m.entries[:i], m.entries[i+1:]...)
	m.reindex()
	for j := range m.entries {
		m.entries[j].Mass /= norm
	}
	return conflict, nil
}

func (m *MassAssignment) reindex() {
	m.index = make(map[string]int, len(m.entries))
	for i, e := range m.entries {
		m.index[e.Focal.Key()] = i
	}
}

// ToMap returns the assignment as a dictionary keyed by FocalSet.Key, with
// the universal mass under UniversalKey.
func (m *MassAssignment) ToMap() map[string]float64 {
	out := map[string]float64{
		UniversalKey: m.UniversalMass(),
	}
	for _, e := range m.entries {
		if e.Universal {
			continue
		}
		out[e.Focal.Key()] = e.Mass
	}
	return out
}

// FromMap rebuilds an assignment from the output of ToMap. Every mass must be
// finite and within [0, 1]. Keys are compared by the set they name, so "A, B"
// and "B, A" may not both appear, and a key naming the whole frame stands for
// UniversalKey. Without a universal entry the universal mass takes whatever
// the other entries leave of 1.
func FromMap(frame Frame, masses map[string]float64) (*MassAssignment, error) {
	m := NewMassAssignment(frame)
	universal, hasUniversal := masses[UniversalKey]
	if hasUniversal {
		if err := validateMass(UniversalKey, universal); err != nil {
			return nil, err
		}
	}

	seen := make(map[string]string, len(masses))
	var assigned float64
	for key, p := range masses {
		if key == UniversalKey {
			continue
		}
		if err := validateMass(key, p); err != nil {
			return nil, err
		}
		focal := ParseFocalSet(key)
		if !focal.SubsetOf(frame.set) {
			return nil, fmt.Errorf("%w: %s", ErrOutsideFrame, focal)
		}
		if focal.Equal(frame.set) {
			if hasUniversal {
				return nil, fmt.Errorf("%w: %q and %q", ErrDuplicateFocal, key, UniversalKey)
			}
			universal, hasUniversal = p, true
			continue
		}
		canonical := focal.Key()
		if prev, ok := seen[canonical]; ok {
			return nil, fmt.Errorf("%w: %q and %q", ErrDuplicateFocal, prev, key)
		}
		seen[canonical] = key
		m.SetMass(focal, p)
		assigned += p
	}

	if hasUniversal {
		m.SetUniversalMass(universal)
	} else {
		m.SetUniversalMass(math.Max(0, 1-assigned))
	}
	return m, nil
}

func validateMass(key string, p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return fmt.Errorf("%w: %q = %v", ErrInvalidMass, key, p)
	}
	return nil
}

// ParseFocalSet is the inverse of FocalSet.Key.
func ParseFocalSet(key string) FocalSet {
	if key == "" {
		return FocalSet{}
	}
	parts := strings.Split(key, KeySeparator)
	hs := make([]Hypothesis, len(parts))
	for i, p := range parts {
		hs[i] = Hypothesis(p)
	}
	return NewFocalSet(hs...)
}

// Belief is the sum of masses of non-universal entries whose focal set is a
// subset of x. The universal mass is not included. Unlike the plain formula,
// conflict mass still sitting on the empty set is not counted either, which
// keeps Belief(x) <= Plausibility(x) before CorrectConflict has run.
func (m *MassAssignment) Belief(x FocalSet) float64 {
	var belief float64
	for _, e := range m.entries {
		if e.Universal || e.Focal.IsEmpty() {
			continue
		}
		if e.Focal.SubsetOf(x) {
			belief += e.Mass
		}
	}
	return belief
}

// Plausibility is the sum of masses of non-universal entries whose focal set
// intersects x. The universal mass is not included.
func (m *MassAssignment) Plausibility(x FocalSet) float64 {
	var plausibility float64
	for _, e := range m.entries {
		if e.Universal {
			continue
		}
		if e.Focal.Intersects(x) {
			plausibility += e.Mass
		}
	}
	return plausibility
}
