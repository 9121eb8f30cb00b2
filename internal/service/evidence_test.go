package service

import (
	"testing"

	"github.com/Harshitk-cp/dsfusion/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	setosa     domain.Hypothesis = "Iris-setosa"
	versicolor domain.Hypothesis = "Iris-versicolor"
	virginica  domain.Hypothesis = "Iris-virginica"
)

func irisConfig() domain.EvidenceConfig {
	return domain.EvidenceConfig{
		Hypotheses: []domain.Hypothesis{setosa, versicolor, virginica},
		Strength:   0.9,
		Dimensions: []domain.Dimension{
			{Name: "sepal-length", Feature: 0, Interval: 1},
			{Name: "petal-width", Feature: 3, Interval: 0.5},
		},
	}
}

func irisSamples() []domain.Sample {
	return []domain.Sample{
		{Features: []float64{5.1, 3.5, 1.4, 0.2}, Label: setosa},
		{Features: []float64{4.9, 3.0, 1.4, 0.2}, Label: setosa},
		{Features: []float64{5.4, 3.9, 1.7, 0.4}, Label: setosa},
		{Features: []float64{5.5, 2.3, 4.0, 1.3}, Label: versicolor},
		{Features: []float64{7.0, 3.2, 4.7, 1.4}, Label: versicolor},
		{Features: []float64{6.3, 3.3, 6.0, 2.5}, Label: virginica},
		{Features: []float64{7.1, 3.0, 5.9, 2.1}, Label: virginica},
	}
}

func newTestEvidenceSource(t *testing.T) *EvidenceSource {
	t.Helper()
	src, err := NewEvidenceSource(irisConfig(), zap.NewNop())
	require.NoError(t, err)
	return src
}

func TestEvidenceSourceMassFor(t *testing.T) {
	src := newTestEvidenceSource(t)

	// (4.2, 6.2) holds the three setosa rows and one versicolor row.
	m, err := src.MassFor("sepal-length", 5.2, irisSamples())
	require.NoError(t, err)

	assert.InDelta(t, 0.9*3/4, m.Mass(domain.NewFocalSet(setosa)), 1e-12)
	assert.InDelta(t, 0.9*1/4, m.Mass(domain.NewFocalSet(versicolor)), 1e-12)
	assert.InDelta(t, 0.0, m.Mass(domain.NewFocalSet(virginica)), 1e-12)
	assert.InDelta(t, 0.1, m.UniversalMass(), 1e-12)
	assert.InDelta(t, 1.0, m.Total(), 1e-12)

	// Zero-count hypotheses still get an explicit entry.
	assert.Equal(t, 4, m.Len())
}

func TestEvidenceSourceIntervalIsOpen(t *testing.T) {
	src := newTestEvidenceSource(t)

	// Both samples sit exactly on the bounds of (0.5, 1.5).
	samples := []domain.Sample{
		{Features: []float64{0, 0, 0, 0.5}, Label: setosa},
		{Features: []float64{0, 0, 0, 1.5}, Label: versicolor},
	}
	m, err := src.MassFor("petal-width", 1.0, samples)
	require.NoError(t, err)

	assert.Equal(t, 1.0, m.UniversalMass())
	assert.Equal(t, 1, m.Len())
}

func TestEvidenceSourceNoMatchesIsIgnorance(t *testing.T) {
	src := newTestEvidenceSource(t)

	m, err := src.MassFor("sepal-length", 100, irisSamples())
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{domain.UniversalKey: 1}, m.ToMap())
}

func TestEvidenceSourceSkipsUnknownLabels(t *testing.T) {
	src := newTestEvidenceSource(t)

	samples := append(irisSamples(), domain.Sample{Features: []float64{5.2, 0, 0, 0}, Label: "Iris-unknown"})
	m, err := src.MassFor("sepal-length", 5.2, samples)
	require.NoError(t, err)
	assert.InDelta(t, 0.9*3/4, m.Mass(domain.NewFocalSet(setosa)), 1e-12)
}

func TestEvidenceSourceErrors(t *testing.T) {
	src := newTestEvidenceSource(t)

	t.Run("unknown dimension", func(t *testing.T) {
		_, err := src.MassFor("leaf-count", 1, irisSamples())
		assert.ErrorIs(t, err, ErrUnknownDimension)
	})

	t.Run("missing feature", func(t *testing.T) {
		_, err := src.MassFor("petal-width", 1, []domain.Sample{{Features: []float64{1}, Label: setosa}})
		assert.ErrorIs(t, err, ErrMissingFeature)
	})
}

func TestNewEvidenceSourceValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.EvidenceConfig)
	}{
		{"no hypotheses", func(c *domain.EvidenceConfig) { c.Hypotheses = nil }},
		{"strength above one", func(c *domain.EvidenceConfig) { c.Strength = 1.2 }},
		{"negative strength", func(c *domain.EvidenceConfig) { c.Strength = -0.1 }},
		{"no dimensions", func(c *domain.EvidenceConfig) { c.Dimensions = nil }},
		{"zero interval", func(c *domain.EvidenceConfig) { c.Dimensions[0].Interval = 0 }},
		{"negative feature", func(c *domain.EvidenceConfig) { c.Dimensions[0].Feature = -1 }},
		{"duplicate name", func(c *domain.EvidenceConfig) { c.Dimensions[1].Name = c.Dimensions[0].Name }},
		{"unnamed dimension", func(c *domain.EvidenceConfig) { c.Dimensions[0].Name = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := irisConfig()
			tt.mutate(&cfg)

			_, err := NewEvidenceSource(cfg, zap.NewNop())
			assert.ErrorIs(t, err, ErrInvalidEvidence)
		})
	}
}
