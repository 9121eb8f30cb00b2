package service

import "github.com/Harshitk-cp/dsfusion/internal/domain"

// Interval is the [belief, plausibility] range of confidence in a focal set.
type Interval struct {
	Belief       float64 `json:"belief"`
	Plausibility float64 `json:"plausibility"`
}

// Width is the remaining uncertainty about the set.
func (i Interval) Width() float64 {
	return i.Plausibility - i.Belief
}

type HypothesisReport struct {
	Hypothesis   domain.Hypothesis `json:"hypothesis"`
	Mass         float64           `json:"mass"`
	Belief       float64           `json:"belief"`
	Plausibility float64           `json:"plausibility"`
	// UpperPlausibility folds the universal mass into Plausibility.
	UpperPlausibility float64 `json:"upper_plausibility"`
}

type Evaluation struct {
	Hypotheses    []HypothesisReport `json:"hypotheses"`
	UniversalMass float64            `json:"universal_mass"`
	Total         float64            `json:"total"`
	Best          domain.Hypothesis  `json:"best"`
}

// EvaluateSet returns belief and plausibility of x. Neither includes the
// universal mass.
func EvaluateSet(m *domain.MassAssignment, x domain.FocalSet) Interval {
	return Interval{
		Belief:       m.Belief(x),
		Plausibility: m.Plausibility(x),
	}
}

// Evaluate reports every singleton hypothesis of the frame, in frame order.
// Best is the hypothesis with the highest belief, ties broken by higher
// plausibility and then by frame order.
func Evaluate(m *domain.MassAssignment) Evaluation {
	universal := m.UniversalMass()
	ev := Evaluation{
		UniversalMass: universal,
		Total:         m.Total(),
	}

	bestIdx := -1
	for _, h := range m.Frame().Hypotheses() {
		single := domain.NewFocalSet(h)
		iv := EvaluateSet(m, single)
		report := HypothesisReport{
			Hypothesis:        h,
			Mass:              m.Mass(single),
			Belief:            iv.Belief,
			Plausibility:      iv.Plausibility,
			UpperPlausibility: iv.Plausibility + universal,
		}
		ev.Hypotheses = append(ev.Hypotheses, report)

		if bestIdx < 0 || better(report, ev.Hypotheses[bestIdx]) {
			bestIdx = len(ev.Hypotheses) - 1
		}
	}
	if bestIdx >= 0 {
		ev.Best = ev.Hypotheses[bestIdx].Hypothesis
	}
	return ev
}

func better(a, b HypothesisReport) bool {
	if a.Belief != b.Belief {
		return a.Belief > b.Belief
	}
	return a.Plausibility > b.Plausibility
}
