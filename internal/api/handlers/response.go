package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Harshitk-cp/dsfusion/internal/domain"
	"github.com/Harshitk-cp/dsfusion/internal/service"
)

// maxBodyBytes caps request bodies; mass assignments are small.
const maxBodyBytes = 1 << 20

// writeJSON encodes v before writing the header, so a value that cannot be
// encoded turns into a 500 instead of an empty 200.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		buf.Reset()
		_ = json.NewEncoder(&buf).Encode(map[string]string{"error": "internal error"})
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// statusFor maps engine and service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrTotalConflict):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrEmptyFrame),
		errors.Is(err, domain.ErrInvalidHypothesis),
		errors.Is(err, domain.ErrOutsideFrame),
		errors.Is(err, domain.ErrFrameMismatch),
		errors.Is(err, domain.ErrInvalidMass),
		errors.Is(err, domain.ErrDuplicateFocal),
		errors.Is(err, service.ErrNoEvidence),
		errors.Is(err, service.ErrUnknownDimension):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}

func toFrame(labels []string) (domain.Frame, error) {
	hs := make([]domain.Hypothesis, len(labels))
	for i, l := range labels {
		hs[i] = domain.Hypothesis(l)
	}
	return domain.NewFrame(hs...)
}
