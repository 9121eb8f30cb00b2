package service

import (
	"errors"
	"fmt"

	"github.com/Harshitk-cp/dsfusion/internal/domain"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

var (
	ErrUnknownDimension = errors.New("unknown dimension")
	ErrMissingFeature   = errors.New("sample is missing a configured feature")
	ErrInvalidEvidence  = errors.New("invalid evidence configuration")
)

// EvidenceSource turns raw samples into a mass assignment for one observed
// dimension: samples falling in the lookup interval around the observed value
// vote for their label, votes become relative frequencies scaled by the
// configured strength, and Omega takes the rest.
type EvidenceSource struct {
	frame  domain.Frame
	cfg    domain.EvidenceConfig
	logger *zap.Logger
}

func NewEvidenceSource(cfg domain.EvidenceConfig, logger *zap.Logger) (*EvidenceSource, error) {
	frame, err := cfg.Frame()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEvidence, err)
	}
	if err := validateEvidence(cfg); err != nil {
		return nil, err
	}
	return &EvidenceSource{
		frame:  frame,
		cfg:    cfg,
		logger: logger,
	}, nil
}

func validateEvidence(cfg domain.EvidenceConfig) error {
	if cfg.Strength < 0 || cfg.Strength > 1 {
		return fmt.Errorf("%w: strength %v outside [0, 1]", ErrInvalidEvidence, cfg.Strength)
	}
	if len(cfg.Dimensions) == 0 {
		return fmt.Errorf("%w: no dimensions", ErrInvalidEvidence)
	}

	seen := make(map[string]bool, len(cfg.Dimensions))
	for _, d := range cfg.Dimensions {
		switch {
		case d.Name == "":
			return fmt.Errorf("%w: dimension without a name", ErrInvalidEvidence)
		case seen[d.Name]:
			return fmt.Errorf("%w: duplicate dimension %q", ErrInvalidEvidence, d.Name)
		case d.Interval <= 0:
			return fmt.Errorf("%w: dimension %q needs a positive interval", ErrInvalidEvidence, d.Name)
		case d.Feature < 0:
			return fmt.Errorf("%w: dimension %q has a negative feature index", ErrInvalidEvidence, d.Name)
		}
		seen[d.Name] = true
	}
	return nil
}

func (s *EvidenceSource) Frame() domain.Frame {
	return s.frame
}

func (s *EvidenceSource) Config() domain.EvidenceConfig {
	return s.cfg
}

// MassFor builds the mass assignment for an observed value of one dimension.
// Only samples labelled with a hypothesis of the frame are counted, and only
// when their feature lies strictly inside (value - interval, value + interval).
func (s *EvidenceSource) MassFor(dimension string, value float64, samples []domain.Sample) (*domain.MassAssignment, error) {
	dim, ok := s.cfg.Dimension(dimension)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDimension, dimension)
	}

	hypotheses := s.frame.Hypotheses()
	position := make(map[domain.Hypothesis]int, len(hypotheses))
	for i, h := range hypotheses {
		position[h] = i
	}

	counts := make([]float64, len(hypotheses))
	skipped := 0
	for i, sample := range samples {
		idx, known := position[sample.Label]
		if !known {
			skipped++
			continue
		}
		v, ok := sample.Feature(dim.Feature)
		if !ok {
			return nil, fmt.Errorf("%w: sample %d has no feature %d for %q", ErrMissingFeature, i, dim.Feature, dim.Name)
		}
		if v > value-dim.Interval && v < value+dim.Interval {
			counts[idx]++
		}
	}

	m := domain.NewMassAssignment(s.frame)
	total := floats.Sum(counts)

	s.logger.Debug("evidence counted",
		zap.String("dimension", dim.Name),
		zap.Float64("value", value),
		zap.Float64("interval", dim.Interval),
		zap.Float64("matches", total),
		zap.Int("skipped_unknown_label", skipped))

	if total == 0 {
		return m, nil
	}

	floats.Scale(s.cfg.Strength/total, counts)
	for i, h := range hypotheses {
		m.SetMass(domain.NewFocalSet(h), counts[i])
	}
	m.SetUniversalMass(1 - s.cfg.Strength)
	return m, nil
}
