package api

import (
	"encoding/json"
	"net/http"

	"github.com/sketchbomb/runorder/pkg/errors"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError emits the legacy error shape: success false, empty order,
// zeroed metrics.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, optimizeResponse{
		Success: false,
		Error:   message,
		Order:   []orderedSlot{},
		Metrics: metrics{},
	})
}

// writeErrorFor maps structured error codes to HTTP statuses.
func writeErrorFor(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), errors.UserMessage(err))
}

func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidAnchor,
		errors.ErrCodeInvalidOrder, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidCSV:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	case errors.ErrCodeInfeasible, errors.ErrCodeResourceExhausted:
		// A show with no conflict-free arrangement is a legitimate outcome,
		// not a malformed request.
		return http.StatusOK
	case errors.ErrCodeNotFound, errors.ErrCodeShowNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
