package handlers

import (
	"fmt"
	"net/http"

	"github.com/Harshitk-cp/dsfusion/internal/domain"
	"github.com/Harshitk-cp/dsfusion/internal/service"
)

// FusionHandler exposes the combination engine and evaluator on caller
// supplied mass assignments.
type FusionHandler struct {
	combiner *service.CombinationService
}

func NewFusionHandler(combiner *service.CombinationService) *FusionHandler {
	return &FusionHandler{combiner: combiner}
}

type combineRequest struct {
	Frame       []string             `json:"frame"`
	Assignments []map[string]float64 `json:"assignments"`
}

type combineResponse struct {
	Masses     map[string]float64 `json:"masses"`
	Evaluation service.Evaluation `json:"evaluation"`
}

// Combine folds the given assignments left to right with Dempster's rule.
// POST /v1/combine
func (h *FusionHandler) Combine(w http.ResponseWriter, r *http.Request) {
	var req combineRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	frame, err := toFrame(req.Frame)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	masses := make([]*domain.MassAssignment, 0, len(req.Assignments))
	for i, a := range req.Assignments {
		m, err := domain.FromMap(frame, a)
		if err != nil {
			writeServiceError(w, fmt.Errorf("assignment %d: %w", i, err))
			return
		}
		masses = append(masses, m)
	}

	result, err := h.combiner.Fold(masses...)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, combineResponse{
		Masses:     result.ToMap(),
		Evaluation: service.Evaluate(result),
	})
}

type evaluateRequest struct {
	Frame      []string           `json:"frame"`
	Assignment map[string]float64 `json:"assignment"`
	Sets       [][]string         `json:"sets"`
}

type setInterval struct {
	Set []string `json:"set"`
	service.Interval
}

type evaluateResponse struct {
	Evaluation service.Evaluation `json:"evaluation"`
	Sets       []setInterval      `json:"sets"`
}

// Evaluate reports belief and plausibility of one assignment, per hypothesis
// and for any extra focal sets asked for.
// POST /v1/evaluate
func (h *FusionHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	frame, err := toFrame(req.Frame)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	m, err := domain.FromMap(frame, req.Assignment)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := evaluateResponse{
		Evaluation: service.Evaluate(m),
		Sets:       []setInterval{},
	}
	for _, labels := range req.Sets {
		hs := make([]domain.Hypothesis, len(labels))
		for i, l := range labels {
			hs[i] = domain.Hypothesis(l)
		}
		set := domain.NewFocalSet(hs...)
		if !set.SubsetOf(frame.Set()) {
			writeServiceError(w, fmt.Errorf("%w: %s", domain.ErrOutsideFrame, set))
			return
		}
		resp.Sets = append(resp.Sets, setInterval{
			Set:      labels,
			Interval: service.EvaluateSet(m, set),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}
