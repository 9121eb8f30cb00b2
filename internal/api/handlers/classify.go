package handlers

import (
	"net/http"

	"github.com/Harshitk-cp/dsfusion/internal/service"
)

type ClassifyHandler struct {
	classifier *service.ClassificationService
	samples    *service.SampleService
}

func NewClassifyHandler(classifier *service.ClassificationService, samples *service.SampleService) *ClassifyHandler {
	return &ClassifyHandler{
		classifier: classifier,
		samples:    samples,
	}
}

type classifyRequest struct {
	Observation map[string]float64 `json:"observation"`
}

// Classify fuses the evidence of every observed dimension.
// POST /v1/classify
func (h *ClassifyHandler) Classify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.classifier.Classify(r.Context(), service.Observation(req.Observation))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Profile summarizes the sample data per dimension and hypothesis.
// GET /v1/samples/profile
func (h *ClassifyHandler) Profile(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.samples.Profile(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"dimensions": profiles})
}
