package domain

import "context"

// Sample is one labelled observation row. Features are indexed by
// Dimension.Feature.
type Sample struct {
	Features []float64
	Label    Hypothesis
}

// Feature returns the i-th feature and whether the sample has it.
func (s Sample) Feature(i int) (float64, bool) {
	if i < 0 || i >= len(s.Features) {
		return 0, false
	}
	return s.Features[i], true
}

// SampleStore provides the raw observation data evidence is derived from.
type SampleStore interface {
	List(ctx context.Context) ([]Sample, error)
}

// Dimension describes one observed quantity: which feature it reads and how
// wide the lookup neighbourhood around an observed value is.
type Dimension struct {
	Name     string
	Feature  int
	Interval float64
}

// EvidenceConfig is the lookup table of the evidence source. Strength is the
// share of mass given to the observed frequencies; the rest goes to Omega.
type EvidenceConfig struct {
	Hypotheses []Hypothesis
	Strength   float64
	Dimensions []Dimension
}

// Frame builds the frame of discernment named by the configuration.
func (c EvidenceConfig) Frame() (Frame, error) {
	return NewFrame(c.Hypotheses...)
}

// Dimension looks up a dimension by name.
func (c EvidenceConfig) Dimension(name string) (Dimension, bool) {
	for _, d := range c.Dimensions {
		if d.Name == name {
			return d, true
		}
	}
	return Dimension{}, false
}
