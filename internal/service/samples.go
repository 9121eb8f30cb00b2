package service

import (
	"context"
	"fmt"

	"github.com/Harshitk-cp/dsfusion/internal/domain"
	"github.com/montanaflynn/stats"
	"go.uber.org/zap"
)

type FeatureSummary struct {
	Hypothesis domain.Hypothesis `json:"hypothesis"`
	Count      int               `json:"count"`
	Mean       float64           `json:"mean"`
	StdDev     float64           `json:"std_dev"`
	Min        float64           `json:"min"`
	Median     float64           `json:"median"`
	Max        float64           `json:"max"`
}

type DimensionProfile struct {
	Dimension string           `json:"dimension"`
	Interval  float64          `json:"interval"`
	Classes   []FeatureSummary `json:"classes"`
}

// SampleService describes the sample data behind the evidence source, which
// helps when choosing lookup intervals.
type SampleService struct {
	samples domain.SampleStore
	cfg     domain.EvidenceConfig
	logger  *zap.Logger
}

func NewSampleService(samples domain.SampleStore, cfg domain.EvidenceConfig, logger *zap.Logger) *SampleService {
	return &SampleService{
		samples: samples,
		cfg:     cfg,
		logger:  logger,
	}
}

// Profile summarizes every configured dimension per hypothesis. Hypotheses
// without samples are reported with a zero count.
func (s *SampleService) Profile(ctx context.Context) ([]DimensionProfile, error) {
	samples, err := s.samples.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list samples: %w", err)
	}

	profiles := make([]DimensionProfile, 0, len(s.cfg.Dimensions))
	for _, dim := range s.cfg.Dimensions {
		byClass := make(map[domain.Hypothesis][]float64)
		for _, sample := range samples {
			v, ok := sample.Feature(dim.Feature)
			if !ok {
				continue
			}
			byClass[sample.Label] = append(byClass[sample.Label], v)
		}

		p := DimensionProfile{Dimension: dim.Name, Interval: dim.Interval}
		for _, h := range s.cfg.Hypotheses {
			summary, err := summarize(h, byClass[h])
			if err != nil {
				return nil, fmt.Errorf("summarize %s/%s: %w", dim.Name, h, err)
			}
			p.Classes = append(p.Classes, summary)
		}
		profiles = append(profiles, p)
	}

	s.logger.Debug("profiled samples",
		zap.Int("samples", len(samples)),
		zap.Int("dimensions", len(profiles)))

	return profiles, nil
}

func summarize(h domain.Hypothesis, data []float64) (FeatureSummary, error) {
	summary := FeatureSummary{Hypothesis: h, Count: len(data)}
	if len(data) == 0 {
		return summary, nil
	}

	var err error
	if summary.Mean, err = stats.Mean(data); err != nil {
		return summary, err
	}
	if summary.StdDev, err = stats.StandardDeviation(data); err != nil {
		return summary, err
	}
	if summary.Min, err = stats.Min(data); err != nil {
		return summary, err
	}
	if summary.Median, err = stats.Median(data); err != nil {
		return summary, err
	}
	if summary.Max, err = stats.Max(data); err != nil {
		return summary, err
	}
	return summary, nil
}
