package service

import (
	"errors"
	"fmt"

	"github.com/Harshitk-cp/dsfusion/internal/domain"
	"go.uber.org/zap"
)

var ErrNoEvidence = errors.New("no evidence to combine")

// Combine fuses two mass assignments over the same frame with Dempster's rule.
// It fails with domain.ErrFrameMismatch for different frames and with
// domain.ErrTotalConflict when the sources flatly contradict each other.
func Combine(m1, m2 *domain.MassAssignment) (*domain.MassAssignment, error) {
	result, _, err := combine(m1, m2)
	return result, err
}

func combine(m1, m2 *domain.MassAssignment) (*domain.MassAssignment, float64, error) {
	if !m1.Frame().Equal(m2.Frame()) {
		return nil, 0, domain.ErrFrameMismatch
	}

	omega := m1.Frame().Set()
	result := domain.NewMassAssignment(m1.Frame())
	result.SetUniversalMass(0)

	for _, e1 := range m1.Entries() {
		for _, e2 := range m2.Entries() {
			product := e1.Mass * e2.Mass

			// Omega is the identity under intersection and keeps the other
			// operand's focal set as is.
			switch {
			case e1.Universal && e2.Universal:
				result.AddMass(omega, product)
			case e1.Universal:
				result.AddMass(e2.Focal, product)
			case e2.Universal:
				result.AddMass(e1.Focal, product)
			default:
				result.AddMass(e1.Focal.Intersect(e2.Focal), product)
			}
		}
	}

	conflict, err := result.CorrectConflict()
	if err != nil {
		return nil, conflict, err
	}
	return result, conflict, nil
}

type CombinationService struct {
	logger *zap.Logger
}

func NewCombinationService(logger *zap.Logger) *CombinationService {
	return &CombinationService{logger: logger}
}

func (s *CombinationService) Combine(m1, m2 *domain.MassAssignment) (*domain.MassAssignment, error) {
	result, conflict, err := combine(m1, m2)
	if err != nil {
		s.logger.Warn("combination failed",
			zap.Float64("conflict", conflict),
			zap.Error(err))
		return nil, err
	}

	s.logger.Debug("combined mass assignments",
		zap.Int("left_entries", m1.Len()),
		zap.Int("right_entries", m2.Len()),
		zap.Int("result_entries", result.Len()),
		zap.Float64("conflict", conflict))

	return result, nil
}

// Fold combines the assignments strictly left to right. Dempster's rule
// renormalizes at every step, so a different order may give a different
// (equally valid) result.
func (s *CombinationService) Fold(ms ...*domain.MassAssignment) (*domain.MassAssignment, error) {
	if len(ms) == 0 {
		return nil, ErrNoEvidence
	}

	acc := ms[0].Clone()
	for i, m := range ms[1:] {
		next, err := s.Combine(acc, m)
		if err != nil {
			return nil, fmt.Errorf("combine step %d: %w", i+1, err)
		}
		acc = next
	}
	return acc, nil
}
