package service

import (
	"context"
	"fmt"

	"github.com/Harshitk-cp/dsfusion/internal/domain"
	"go.uber.org/zap"
)

// Observation maps dimension names to observed values.
type Observation map[string]float64

type DimensionEvidence struct {
	Dimension string             `json:"dimension"`
	Value     float64            `json:"value"`
	Masses    map[string]float64 `json:"masses"`
}

type Classification struct {
	Evidence   []DimensionEvidence    `json:"evidence"`
	Masses     map[string]float64     `json:"masses"`
	Evaluation Evaluation             `json:"evaluation"`
	Result     *domain.MassAssignment `json:"-"`
}

// ClassificationService derives one mass assignment per observed dimension and
// fuses them in configured dimension order.
type ClassificationService struct {
	samples  domain.SampleStore
	source   *EvidenceSource
	combiner *CombinationService
	logger   *zap.Logger
}

func NewClassificationService(
	samples domain.SampleStore,
	source *EvidenceSource,
	combiner *CombinationService,
	logger *zap.Logger,
) *ClassificationService {
	return &ClassificationService{
		samples:  samples,
		source:   source,
		combiner: combiner,
		logger:   logger,
	}
}

func (s *ClassificationService) Classify(ctx context.Context, obs Observation) (*Classification, error) {
	cfg := s.source.Config()
	for name := range obs {
		if _, ok := cfg.Dimension(name); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownDimension, name)
		}
	}
	if len(obs) == 0 {
		return nil, ErrNoEvidence
	}

	samples, err := s.samples.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list samples: %w", err)
	}

	out := &Classification{}
	var masses []*domain.MassAssignment
	for _, dim := range cfg.Dimensions {
		value, observed := obs[dim.Name]
		if !observed {
			continue
		}
		m, err := s.source.MassFor(dim.Name, value, samples)
		if err != nil {
			return nil, err
		}
		masses = append(masses, m)
		out.Evidence = append(out.Evidence, DimensionEvidence{
			Dimension: dim.Name,
			Value:     value,
			Masses:    m.ToMap(),
		})
	}

	result, err := s.combiner.Fold(masses...)
	if err != nil {
		return nil, err
	}

	out.Result = result
	out.Masses = result.ToMap()
	out.Evaluation = Evaluate(result)

	s.logger.Info("classified observation",
		zap.Int("dimensions", len(masses)),
		zap.Int("samples", len(samples)),
		zap.String("best", string(out.Evaluation.Best)),
		zap.Float64("universal_mass", out.Evaluation.UniversalMass))

	return out, nil
}
