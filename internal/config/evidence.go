package config

import (
	"fmt"
	"os"

	"github.com/Harshitk-cp/dsfusion/internal/domain"
	"gopkg.in/yaml.v3"
)

// EvidenceYAML is the on-disk form of the evidence table.
//
//	strength: 0.9
//	hypotheses: [Iris-setosa, Iris-versicolor, Iris-virginica]
//	dimensions:
//	  - name: sepal-length
//	    feature: 0
//	    interval: 1
type EvidenceYAML struct {
	Strength   *float64        `yaml:"strength"`
	Hypotheses []string        `yaml:"hypotheses"`
	Dimensions []DimensionYAML `yaml:"dimensions"`
}

type DimensionYAML struct {
	Name     string  `yaml:"name"`
	Feature  int     `yaml:"feature"`
	Interval float64 `yaml:"interval"`
}

const DefaultEvidenceStrength = 0.9

// DefaultEvidence is the iris lookup table: four measured dimensions, each
// counted within a fixed neighbourhood, with 90% of the mass going to the
// observed class frequencies.
func DefaultEvidence() domain.EvidenceConfig {
	return domain.EvidenceConfig{
		Hypotheses: []domain.Hypothesis{"Iris-setosa", "Iris-versicolor", "Iris-virginica"},
		Strength:   DefaultEvidenceStrength,
		Dimensions: []domain.Dimension{
			{Name: "sepal-length", Feature: 0, Interval: 1},
			{Name: "sepal-width", Feature: 1, Interval: 0.5},
			{Name: "petal-length", Feature: 2, Interval: 1},
			{Name: "petal-width", Feature: 3, Interval: 0.5},
		},
	}
}

// LoadEvidence reads the evidence table at path, or returns DefaultEvidence
// when path is empty. A missing strength falls back to
// DefaultEvidenceStrength.
func LoadEvidence(path string) (domain.EvidenceConfig, error) {
	if path == "" {
		return DefaultEvidence(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.EvidenceConfig{}, fmt.Errorf("read evidence config: %w", err)
	}
	return ParseEvidence(data)
}

func ParseEvidence(data []byte) (domain.EvidenceConfig, error) {
	var doc EvidenceYAML
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return domain.EvidenceConfig{}, fmt.Errorf("parse evidence config: %w", err)
	}

	cfg := domain.EvidenceConfig{Strength: DefaultEvidenceStrength}
	if doc.Strength != nil {
		cfg.Strength = *doc.Strength
	}
	for _, h := range doc.Hypotheses {
		cfg.Hypotheses = append(cfg.Hypotheses, domain.Hypothesis(h))
	}
	for _, d := range doc.Dimensions {
		cfg.Dimensions = append(cfg.Dimensions, domain.Dimension{
			Name:     d.Name,
			Feature:  d.Feature,
			Interval: d.Interval,
		})
	}
	return cfg, nil
}
